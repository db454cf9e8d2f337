package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"budget-server/entities"

	"github.com/shopspring/decimal"
)

// apiClient talks to the budget server's JSON API.
type apiClient struct {
	baseURL string
	http    *http.Client
}

func newAPIClient(baseURL string) *apiClient {
	return &apiClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *apiClient) getOrCreateUser(ctx context.Context, username string) (*entities.User, error) {
	var user entities.User
	if err := c.do(ctx, http.MethodPost, "/api/user", map[string]string{"username": username}, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *apiClient) setIncome(ctx context.Context, userID uint, income decimal.Decimal) error {
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/api/user/%d/income", userID), map[string]decimal.Decimal{"income": income}, nil)
}

func (c *apiClient) categories(ctx context.Context, userID uint) ([]entities.Category, error) {
	var categories []entities.Category
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/user/%d/categories", userID), nil, &categories)
	return categories, err
}

func (c *apiClient) updateBudget(ctx context.Context, categoryID uint, budget decimal.Decimal) error {
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/api/category/%d", categoryID), map[string]decimal.Decimal{"budget": budget}, nil)
}

func (c *apiClient) weeklyExpenses(ctx context.Context, userID uint) ([]entities.WeeklyExpense, error) {
	var weeks []entities.WeeklyExpense
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/user/%d/weekly-expenses", userID), nil, &weeks)
	return weeks, err
}

func (c *apiClient) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("server not reachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var apiErr struct {
			Error string `json:"error"`
		}
		raw, _ := io.ReadAll(resp.Body)
		if json.Unmarshal(raw, &apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("server returned %d: %s", resp.StatusCode, apiErr.Error)
		}
		return fmt.Errorf("server returned %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
