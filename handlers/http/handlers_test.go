package httpHandler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"budget-server/confs"
	"budget-server/db"
	"budget-server/entities"
	"budget-server/repositories"
	"budget-server/usecases"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	database, err := db.OpenSQLite(dsn, confs.DatabaseConfig{MaxOpenConns: 1, MaxIdleConns: 1, LogLevel: "silent"}, log)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = database.Close() })
	if err := db.Migrate(context.Background(), database, log); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	txnRepo := repositories.NewTransactionGormRepository(database)
	return buildRouter(
		NewUserHandler(usecases.NewUserUseCase(repositories.NewUserGormRepository(database))),
		NewCategoryHandler(usecases.NewCategoryUseCase(repositories.NewCategoryGormRepository(database))),
		NewTransactionHandler(usecases.NewTransactionUseCase(txnRepo)),
		NewAnalyticsHandler(usecases.NewAnalyticsUseCase(txnRepo)),
	)
}

func buildRouter(users *UserHandler, categories *CategoryHandler, txns *TransactionHandler, analytics *AnalyticsHandler) *gin.Engine {
	r := gin.New()
	api := r.Group("/api")
	api.POST("/user", users.GetOrCreateUser)
	api.PUT("/user/:userId/income", users.SetIncome)
	api.DELETE("/user/:userId/reset", users.ResetUser)
	api.GET("/user/:userId/categories", categories.GetCategories)
	api.PUT("/category/:id", categories.UpdateBudget)
	api.GET("/user/:userId/transactions", txns.GetTransactions)
	api.POST("/user/:userId/transactions", txns.CreateTransaction)
	api.PUT("/transaction/:id", txns.UpdateTransaction)
	api.DELETE("/transaction/:id", txns.DeleteTransaction)
	api.GET("/user/:userId/weekly-expenses", analytics.GetWeeklyExpenses)
	return r
}

func do(t *testing.T, r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
	return out
}

func createUser(t *testing.T, r http.Handler, name string) entities.User {
	t.Helper()
	w := do(t, r, http.MethodPost, "/api/user", `{"username":"`+name+`"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("create user: %d %s", w.Code, w.Body.String())
	}
	return decode[entities.User](t, w)
}

func TestUserEndpoints(t *testing.T) {
	r := newTestRouter(t)

	user := createUser(t, r, "alice")
	if user.ID == 0 || user.Username != "alice" {
		t.Fatalf("got %+v", user)
	}
	again := createUser(t, r, "alice")
	if again.ID != user.ID {
		t.Errorf("second POST created a new user: %d vs %d", again.ID, user.ID)
	}

	w := do(t, r, http.MethodPut, fmt.Sprintf("/api/user/%d/income", user.ID), `{"income":"52000.50"}`)
	if w.Code != http.StatusOK || w.Body.String() != `{"success":true}` {
		t.Fatalf("income: %d %s", w.Code, w.Body.String())
	}
	w = do(t, r, http.MethodPost, "/api/user", `{"username":"alice"}`)
	body := decode[map[string]any](t, w)
	if body["income"] != "52000.5" {
		t.Errorf("income = %v, want \"52000.5\"", body["income"])
	}

	w = do(t, r, http.MethodPut, fmt.Sprintf("/api/user/%d/income", user.ID), `{"income":1200}`)
	if w.Code != http.StatusOK {
		t.Errorf("numeric income rejected: %d", w.Code)
	}
}

func TestCategoryEndpoints(t *testing.T) {
	r := newTestRouter(t)
	user := createUser(t, r, "alice")

	w := do(t, r, http.MethodGet, fmt.Sprintf("/api/user/%d/categories", user.ID), "")
	if w.Code != http.StatusOK {
		t.Fatalf("list: %d", w.Code)
	}
	cats := decode[[]entities.Category](t, w)
	if len(cats) != 7 {
		t.Fatalf("got %d categories", len(cats))
	}

	w = do(t, r, http.MethodPut, fmt.Sprintf("/api/category/%d", cats[0].ID), `{"budget":9000}`)
	if w.Code != http.StatusOK {
		t.Fatalf("update: %d %s", w.Code, w.Body.String())
	}
	cats = decode[[]entities.Category](t, do(t, r, http.MethodGet, fmt.Sprintf("/api/user/%d/categories", user.ID), ""))
	if !cats[0].Budget.Equal(decimal.NewFromInt(9000)) {
		t.Errorf("budget = %s", cats[0].Budget)
	}

	w = do(t, r, http.MethodGet, "/api/user/31337/categories", "")
	if w.Code != http.StatusOK || w.Body.String() != "[]" {
		t.Errorf("unknown user: %d %s, want 200 []", w.Code, w.Body.String())
	}
}

func TestTransactionEndpoints(t *testing.T) {
	r := newTestRouter(t)
	user := createUser(t, r, "alice")
	base := fmt.Sprintf("/api/user/%d/transactions", user.ID)

	w := do(t, r, http.MethodPost, base, `{"date":"2024-05-02","description":"coffee","category":"Food","amount":-3.5}`)
	if w.Code != http.StatusOK {
		t.Fatalf("create: %d %s", w.Code, w.Body.String())
	}
	created := decode[map[string]any](t, w)
	if created["date"] != "2024-05-02" || created["amount"] != "-3.5" || created["description"] != "coffee" {
		t.Errorf("created = %v", created)
	}
	id := uint(created["id"].(float64))

	do(t, r, http.MethodPost, base, `{"date":"2024-05-03","amount":"10"}`)

	list := decode[[]map[string]any](t, do(t, r, http.MethodGet, base, ""))
	if len(list) != 2 || list[0]["date"] != "2024-05-03" {
		t.Fatalf("list = %v", list)
	}
	if list[0]["description"] != nil {
		t.Errorf("omitted description should be null, got %v", list[0]["description"])
	}

	w = do(t, r, http.MethodPut, fmt.Sprintf("/api/transaction/%d", id), `{"date":"2024-05-04","amount":7}`)
	if w.Code != http.StatusOK {
		t.Fatalf("update: %d %s", w.Code, w.Body.String())
	}
	list = decode[[]map[string]any](t, do(t, r, http.MethodGet, base, ""))
	if list[0]["id"].(float64) != float64(id) || list[0]["category"] != nil {
		t.Errorf("update not a full overwrite: %v", list[0])
	}

	for i := 0; i < 2; i++ {
		w = do(t, r, http.MethodDelete, fmt.Sprintf("/api/transaction/%d", id), "")
		if w.Code != http.StatusOK {
			t.Fatalf("delete #%d: %d", i+1, w.Code)
		}
	}

	w = do(t, r, http.MethodDelete, fmt.Sprintf("/api/user/%d/reset", user.ID), "")
	if w.Code != http.StatusOK {
		t.Fatalf("reset: %d", w.Code)
	}
	if body := do(t, r, http.MethodGet, base, "").Body.String(); body != "[]" {
		t.Errorf("after reset = %s", body)
	}
}

func TestWeeklyExpensesEndpoint(t *testing.T) {
	r := newTestRouter(t)
	user := createUser(t, r, "alice")

	w := do(t, r, http.MethodGet, fmt.Sprintf("/api/user/%d/weekly-expenses", user.ID), "")
	if w.Code != http.StatusOK || w.Body.String() != "[]" {
		t.Fatalf("empty: %d %s", w.Code, w.Body.String())
	}
}

func TestErrorEnvelope(t *testing.T) {
	r := newTestRouter(t)
	user := createUser(t, r, "alice")

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		status int
	}{
		{"empty username", http.MethodPost, "/api/user", `{"username":"  "}`, http.StatusBadRequest},
		{"malformed json", http.MethodPost, "/api/user", `{"username":`, http.StatusBadRequest},
		{"non-numeric user id", http.MethodGet, "/api/user/abc/transactions", "", http.StatusBadRequest},
		{"zero id", http.MethodDelete, "/api/transaction/0", "", http.StatusBadRequest},
		{"missing income", http.MethodPut, fmt.Sprintf("/api/user/%d/income", user.ID), `{}`, http.StatusBadRequest},
		{"bad amount", http.MethodPost, fmt.Sprintf("/api/user/%d/transactions", user.ID), `{"date":"2024-01-01","amount":"ten"}`, http.StatusBadRequest},
		{"bad date", http.MethodPost, fmt.Sprintf("/api/user/%d/transactions", user.ID), `{"date":"yesterday","amount":1}`, http.StatusBadRequest},
		{"unknown user", http.MethodPost, "/api/user/9999/transactions", `{"date":"2024-01-01","amount":1}`, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, r, tt.method, tt.path, tt.body)
			if w.Code != tt.status {
				t.Fatalf("status = %d, want %d (%s)", w.Code, tt.status, w.Body.String())
			}
			body := decode[map[string]any](t, w)
			if msg, ok := body["error"].(string); !ok || msg == "" {
				t.Errorf("missing error message: %s", w.Body.String())
			}
		})
	}
}

func TestTransactionDateBinding(t *testing.T) {
	r := newTestRouter(t)
	user := createUser(t, r, "alice")
	base := fmt.Sprintf("/api/user/%d/transactions", user.ID)

	w := do(t, r, http.MethodPost, base, `{"date":"2024-05-02T23:15:00Z","amount":1}`)
	if w.Code != http.StatusOK {
		t.Fatalf("timestamp date: %d %s", w.Code, w.Body.String())
	}
	if created := decode[map[string]any](t, w); created["date"] != "2024-05-02" {
		t.Errorf("date = %v, want 2024-05-02", created["date"])
	}

	tests := []struct {
		name string
		body string
		want string
	}{
		{"malformed", `{"date":"05/02/2024","amount":1}`, `invalid date "05/02/2024": use YYYY-MM-DD`},
		{"numeric", `{"date":20240502,"amount":1}`, "invalid date: must be a YYYY-MM-DD string"},
		{"missing", `{"amount":1}`, "date is required"},
		{"empty", `{"date":"","amount":1}`, "date is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, r, http.MethodPost, base, tt.body)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", w.Code)
			}
			if got := decode[map[string]any](t, w)["error"]; got != tt.want {
				t.Errorf("error = %q, want %q", got, tt.want)
			}
		})
	}
}

type failingCategoryRepo struct{}

func (failingCategoryRepo) GetByUserID(ctx context.Context, userID uint) ([]entities.Category, error) {
	return nil, errors.New("connection reset")
}

func (failingCategoryRepo) UpdateBudget(ctx context.Context, id uint, budget decimal.Decimal) error {
	return errors.New("connection reset")
}

func TestStoreFailureIs500(t *testing.T) {
	h := NewCategoryHandler(usecases.NewCategoryUseCase(failingCategoryRepo{}))
	r := gin.New()
	r.GET("/api/user/:userId/categories", h.GetCategories)

	w := do(t, r, http.MethodGet, "/api/user/1/categories", "")
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", w.Code)
	}
	if w.Body.String() != `{"error":"failed to load categories"}` {
		t.Errorf("body = %s", w.Body.String())
	}
}
