package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"budget-server/entities"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

const defaultAPIURL = "http://localhost:3000"

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			MarginBottom(1)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("170")).
			Bold(true).
			PaddingLeft(2)

	normalStyle = lipgloss.NewStyle().
			PaddingLeft(4)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	inputStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86"))

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

type step int

const (
	stepEnteringUsername step = iota
	stepLoadingUser
	stepEnteringIncome
	stepSavingIncome
	stepCategories
	stepEditingBudget
	stepSavingBudget
	stepWeekly
)

type model struct {
	api          *apiClient
	step         step
	user         *entities.User
	categories   []entities.Category
	weeks        []entities.WeeklyExpense
	cursor       int
	currentInput string
	message      string
	quitting     bool
}

type userLoadedMsg struct{ user *entities.User }
type incomeSavedMsg struct{ income decimal.Decimal }
type categoriesLoadedMsg []entities.Category
type budgetSavedMsg struct{ name string }
type weeklyLoadedMsg []entities.WeeklyExpense
type errMsg struct{ err error }

func (e errMsg) Error() string { return e.err.Error() }

func initialModel(api *apiClient) model {
	return model{
		api:  api,
		step: stepEnteringUsername,
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func requestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 10*time.Second)
}

func loadUser(api *apiClient, username string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := requestContext()
		defer cancel()
		user, err := api.getOrCreateUser(ctx, username)
		if err != nil {
			return errMsg{err}
		}
		return userLoadedMsg{user: user}
	}
}

func saveIncome(api *apiClient, userID uint, income decimal.Decimal) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := requestContext()
		defer cancel()
		if err := api.setIncome(ctx, userID, income); err != nil {
			return errMsg{err}
		}
		return incomeSavedMsg{income: income}
	}
}

func loadCategories(api *apiClient, userID uint) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := requestContext()
		defer cancel()
		categories, err := api.categories(ctx, userID)
		if err != nil {
			return errMsg{err}
		}
		return categoriesLoadedMsg(categories)
	}
}

func saveBudget(api *apiClient, category entities.Category, budget decimal.Decimal) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := requestContext()
		defer cancel()
		if err := api.updateBudget(ctx, category.ID, budget); err != nil {
			return errMsg{err}
		}
		return budgetSavedMsg{name: category.Name}
	}
}

func loadWeekly(api *apiClient, userID uint) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := requestContext()
		defer cancel()
		weeks, err := api.weeklyExpenses(ctx, userID)
		if err != nil {
			return errMsg{err}
		}
		return weeklyLoadedMsg(weeks)
	}
}

func (m model) typing() bool {
	return m.step == stepEnteringUsername || m.step == stepEnteringIncome || m.step == stepEditingBudget
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case userLoadedMsg:
		m.user = msg.user
		m.step = stepEnteringIncome
		m.currentInput = msg.user.Income.String()
		m.message = successStyle.Render("✓ Signed in as " + msg.user.Username)

	case incomeSavedMsg:
		m.user.Income = msg.income
		m.step = stepCategories
		m.message = successStyle.Render("✓ Income saved")
		return m, loadCategories(m.api, m.user.ID)

	case categoriesLoadedMsg:
		m.categories = []entities.Category(msg)
		if m.cursor >= len(m.categories) {
			m.cursor = 0
		}
		m.step = stepCategories

	case budgetSavedMsg:
		m.step = stepCategories
		m.message = successStyle.Render("✓ Budget for " + msg.name + " saved")
		return m, loadCategories(m.api, m.user.ID)

	case weeklyLoadedMsg:
		m.weeks = []entities.WeeklyExpense(msg)
		m.step = stepWeekly

	case errMsg:
		m.message = errorStyle.Render("✗ " + msg.err.Error())
		switch m.step {
		case stepLoadingUser:
			m.step = stepEnteringUsername
		case stepSavingIncome:
			m.step = stepEnteringIncome
		case stepSavingBudget:
			m.step = stepEditingBudget
		}
	}

	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "ctrl+c" || (key == "q" && !m.typing()) {
		m.quitting = true
		return m, tea.Quit
	}

	switch key {
	case "up", "k":
		if m.step == stepCategories && m.cursor > 0 {
			m.cursor--
			return m, nil
		}

	case "down", "j":
		if m.step == stepCategories && m.cursor < len(m.categories)-1 {
			m.cursor++
			return m, nil
		}

	case "w":
		if m.step == stepCategories {
			m.message = ""
			return m, loadWeekly(m.api, m.user.ID)
		}

	case "esc":
		switch m.step {
		case stepEditingBudget, stepWeekly:
			m.currentInput = ""
			m.step = stepCategories
		}
		return m, nil

	case "backspace":
		if len(m.currentInput) > 0 {
			runes := []rune(m.currentInput)
			m.currentInput = string(runes[:len(runes)-1])
		}
		return m, nil

	case "enter":
		return m.submit()
	}

	if m.typing() && msg.Type == tea.KeyRunes {
		m.currentInput += string(msg.Runes)
	} else if m.typing() && msg.Type == tea.KeySpace {
		m.currentInput += " "
	}
	return m, nil
}

func (m model) submit() (tea.Model, tea.Cmd) {
	switch m.step {
	case stepEnteringUsername:
		username := strings.TrimSpace(m.currentInput)
		if username == "" {
			return m, nil
		}
		m.currentInput = ""
		m.step = stepLoadingUser
		m.message = "Signing in..."
		return m, loadUser(m.api, username)

	case stepEnteringIncome:
		income, err := decimal.NewFromString(strings.TrimSpace(m.currentInput))
		if err != nil {
			m.message = errorStyle.Render("✗ Income must be a number")
			return m, nil
		}
		m.currentInput = ""
		m.step = stepSavingIncome
		m.message = "Saving income..."
		return m, saveIncome(m.api, m.user.ID, income)

	case stepCategories:
		if len(m.categories) == 0 {
			return m, nil
		}
		m.currentInput = m.categories[m.cursor].Budget.String()
		m.step = stepEditingBudget
		m.message = ""

	case stepEditingBudget:
		budget, err := decimal.NewFromString(strings.TrimSpace(m.currentInput))
		if err != nil {
			m.message = errorStyle.Render("✗ Budget must be a number")
			return m, nil
		}
		m.currentInput = ""
		m.step = stepSavingBudget
		m.message = "Saving budget..."
		return m, saveBudget(m.api, m.categories[m.cursor], budget)

	case stepWeekly:
		m.step = stepCategories
	}
	return m, nil
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	var s strings.Builder

	s.WriteString(titleStyle.Render("Budget Setup"))
	s.WriteString("\n")

	switch m.step {
	case stepEnteringUsername:
		if m.message != "" {
			s.WriteString(m.message + "\n\n")
		}
		s.WriteString(promptStyle.Render("Enter your username:"))
		s.WriteString("\n")
		s.WriteString(inputStyle.Render("> " + m.currentInput))
		s.WriteString("\n\nPress Enter\n")

	case stepEnteringIncome:
		s.WriteString(m.message + "\n\n")
		s.WriteString(promptStyle.Render("Monthly income:"))
		s.WriteString("\n")
		s.WriteString(inputStyle.Render("> " + m.currentInput))
		s.WriteString("\n\nPress Enter\n")

	case stepCategories:
		if m.message != "" {
			s.WriteString(m.message + "\n\n")
		}
		s.WriteString(promptStyle.Render(fmt.Sprintf("Categories (income %s):", m.user.Income.StringFixed(2))))
		s.WriteString("\n\n")
		for i, c := range m.categories {
			cursor := " "
			style := normalStyle
			if m.cursor == i {
				cursor = ">"
				style = selectedStyle
			}
			s.WriteString(fmt.Sprintf("%s %s %s\n", cursor, style.Render(fmt.Sprintf("%-14s", c.Name)), c.Budget.StringFixed(2)))
		}
		s.WriteString(mutedStyle.Render("\nUse ↑/↓, Enter to edit budget, w for weekly expenses, q to quit"))
		s.WriteString("\n")

	case stepEditingBudget:
		if m.message != "" {
			s.WriteString(m.message + "\n\n")
		}
		s.WriteString(promptStyle.Render("New budget for " + m.categories[m.cursor].Name + ":"))
		s.WriteString("\n")
		s.WriteString(inputStyle.Render("> " + m.currentInput))
		s.WriteString("\n\nPress Enter to save, Esc to cancel\n")

	case stepWeekly:
		s.WriteString(promptStyle.Render("Weekly expenses (last 12 weeks):"))
		s.WriteString("\n\n")
		if len(m.weeks) == 0 {
			s.WriteString(normalStyle.Render("No transactions yet"))
			s.WriteString("\n")
		}
		for _, w := range m.weeks {
			s.WriteString(normalStyle.Render(fmt.Sprintf("%s  %12s", w.Week, w.Total.StringFixed(2))))
			s.WriteString("\n")
		}
		s.WriteString(mutedStyle.Render("\nPress Enter or Esc to go back, q to quit"))
		s.WriteString("\n")

	default:
		s.WriteString(m.message + "\n")
	}

	return s.String()
}

func main() {
	baseURL := os.Getenv("BUDGET_API_URL")
	if baseURL == "" {
		baseURL = defaultAPIURL
	}

	p := tea.NewProgram(initialModel(newAPIClient(baseURL)))
	if _, err := p.Run(); err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}
}
