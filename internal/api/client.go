package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"fintrack/internal/core"
)

// TokenSource supplies the bearer credential attached to every call.
// Clear is invoked once on any 401 so a dead token never outlives the
// response that killed it; reacting (re-login, redirect) is the
// caller's job.
type TokenSource interface {
	Token() string
	Clear()
}

// Client talks JSON to the finance API under a single base path.
type Client struct {
	base   string
	http   *http.Client
	tokens TokenSource
}

func NewClient(baseURL string, timeout time.Duration, tokens TokenSource) *Client {
	return &Client{
		base:   strings.TrimRight(baseURL, "/"),
		http:   &http.Client{Timeout: timeout},
		tokens: tokens,
	}
}

// AuthResponse is the envelope /auth endpoints reply with.
type AuthResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    struct {
		Token     string    `json:"token"`
		TokenType string    `json:"tokenType"`
		User      core.User `json:"user"`
	} `json:"data"`
}

// TransactionStats mirrors /transactions/stats.
type TransactionStats struct {
	TotalIncome   float64 `json:"totalIncome"`
	TotalExpenses float64 `json:"totalExpenses"`
	NetFlow       float64 `json:"netFlow"`
	Count         int     `json:"count"`
}

func (c *Client) Login(ctx context.Context, creds core.Credentials) (AuthResponse, error) {
	var out AuthResponse
	err := c.do(ctx, "login", http.MethodPost, "/auth/login", creds, &out)
	return out, err
}

func (c *Client) Register(ctx context.Context, reg core.Registration) (AuthResponse, error) {
	var out AuthResponse
	err := c.do(ctx, "register", http.MethodPost, "/auth/register", reg, &out)
	return out, err
}

func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, "health check", http.MethodGet, "/health", nil, nil)
}

func (c *Client) ListAccounts(ctx context.Context) ([]core.Account, error) {
	var out []core.Account
	err := c.do(ctx, "list accounts", http.MethodGet, "/accounts", nil, &out)
	return out, err
}

func (c *Client) GetAccount(ctx context.Context, id int64) (core.Account, error) {
	var out core.Account
	err := c.do(ctx, "get account", http.MethodGet, fmt.Sprintf("/accounts/%d", id), nil, &out)
	return out, err
}

func (c *Client) CreateAccount(ctx context.Context, p core.AccountPayload) (core.Account, error) {
	var out core.Account
	err := c.do(ctx, "create account", http.MethodPost, "/accounts", p, &out)
	return out, err
}

func (c *Client) UpdateAccount(ctx context.Context, id int64, p core.AccountPayload) (core.Account, error) {
	var out core.Account
	err := c.do(ctx, "update account", http.MethodPut, fmt.Sprintf("/accounts/%d", id), p, &out)
	return out, err
}

func (c *Client) DeleteAccount(ctx context.Context, id int64) error {
	return c.do(ctx, "delete account", http.MethodDelete, fmt.Sprintf("/accounts/%d", id), nil, nil)
}

func (c *Client) ListCategories(ctx context.Context) ([]core.Category, error) {
	var out []core.Category
	err := c.do(ctx, "list categories", http.MethodGet, "/categories", nil, &out)
	return out, err
}

func (c *Client) GetCategory(ctx context.Context, id int64) (core.Category, error) {
	var out core.Category
	err := c.do(ctx, "get category", http.MethodGet, fmt.Sprintf("/categories/%d", id), nil, &out)
	return out, err
}

func (c *Client) CreateCategory(ctx context.Context, p core.CategoryPayload) (core.Category, error) {
	var out core.Category
	err := c.do(ctx, "create category", http.MethodPost, "/categories", p, &out)
	return out, err
}

func (c *Client) UpdateCategory(ctx context.Context, id int64, p core.CategoryPayload) (core.Category, error) {
	var out core.Category
	err := c.do(ctx, "update category", http.MethodPut, fmt.Sprintf("/categories/%d", id), p, &out)
	return out, err
}

func (c *Client) DeleteCategory(ctx context.Context, id int64) error {
	return c.do(ctx, "delete category", http.MethodDelete, fmt.Sprintf("/categories/%d", id), nil, nil)
}

func (c *Client) ListTransactions(ctx context.Context) ([]core.Transaction, error) {
	var out []core.Transaction
	err := c.do(ctx, "list transactions", http.MethodGet, "/transactions", nil, &out)
	return out, err
}

func (c *Client) GetTransaction(ctx context.Context, id int64) (core.Transaction, error) {
	var out core.Transaction
	err := c.do(ctx, "get transaction", http.MethodGet, fmt.Sprintf("/transactions/%d", id), nil, &out)
	return out, err
}

func (c *Client) CreateTransaction(ctx context.Context, p core.TransactionPayload) (core.Transaction, error) {
	var out core.Transaction
	err := c.do(ctx, "create transaction", http.MethodPost, "/transactions", p, &out)
	return out, err
}

func (c *Client) UpdateTransaction(ctx context.Context, id int64, p core.TransactionPayload) (core.Transaction, error) {
	var out core.Transaction
	err := c.do(ctx, "update transaction", http.MethodPut, fmt.Sprintf("/transactions/%d", id), p, &out)
	return out, err
}

func (c *Client) DeleteTransaction(ctx context.Context, id int64) error {
	return c.do(ctx, "delete transaction", http.MethodDelete, fmt.Sprintf("/transactions/%d", id), nil, nil)
}

func (c *Client) GetTransactionStats(ctx context.Context) (TransactionStats, error) {
	var out TransactionStats
	err := c.do(ctx, "transaction stats", http.MethodGet, "/transactions/stats", nil, &out)
	return out, err
}

func (c *Client) ListBudgets(ctx context.Context) ([]core.Budget, error) {
	var out []core.Budget
	err := c.do(ctx, "list budgets", http.MethodGet, "/budgets", nil, &out)
	return out, err
}

func (c *Client) GetBudget(ctx context.Context, id int64) (core.Budget, error) {
	var out core.Budget
	err := c.do(ctx, "get budget", http.MethodGet, fmt.Sprintf("/budgets/%d", id), nil, &out)
	return out, err
}

func (c *Client) CreateBudget(ctx context.Context, p core.BudgetPayload) (core.Budget, error) {
	var out core.Budget
	err := c.do(ctx, "create budget", http.MethodPost, "/budgets", p, &out)
	return out, err
}

func (c *Client) UpdateBudget(ctx context.Context, id int64, p core.BudgetPayload) (core.Budget, error) {
	var out core.Budget
	err := c.do(ctx, "update budget", http.MethodPut, fmt.Sprintf("/budgets/%d", id), p, &out)
	return out, err
}

func (c *Client) DeleteBudget(ctx context.Context, id int64) error {
	return c.do(ctx, "delete budget", http.MethodDelete, fmt.Sprintf("/budgets/%d", id), nil, nil)
}

func (c *Client) ListGoals(ctx context.Context) ([]core.Goal, error) {
	var out []core.Goal
	err := c.do(ctx, "list goals", http.MethodGet, "/goals", nil, &out)
	return out, err
}

func (c *Client) GetGoal(ctx context.Context, id int64) (core.Goal, error) {
	var out core.Goal
	err := c.do(ctx, "get goal", http.MethodGet, fmt.Sprintf("/goals/%d", id), nil, &out)
	return out, err
}

func (c *Client) CreateGoal(ctx context.Context, p core.GoalPayload) (core.Goal, error) {
	var out core.Goal
	err := c.do(ctx, "create goal", http.MethodPost, "/goals", p, &out)
	return out, err
}

func (c *Client) UpdateGoal(ctx context.Context, id int64, p core.GoalPayload) (core.Goal, error) {
	var out core.Goal
	err := c.do(ctx, "update goal", http.MethodPut, fmt.Sprintf("/goals/%d", id), p, &out)
	return out, err
}

func (c *Client) DeleteGoal(ctx context.Context, id int64) error {
	return c.do(ctx, "delete goal", http.MethodDelete, fmt.Sprintf("/goals/%d", id), nil, nil)
}

// AddGoalProgress records an additional saved amount against a goal.
func (c *Client) AddGoalProgress(ctx context.Context, id int64, amount float64) (core.Goal, error) {
	var out core.Goal
	body := map[string]float64{"amount": amount}
	err := c.do(ctx, "add goal progress", http.MethodPost, fmt.Sprintf("/goals/%d/progress", id), body, &out)
	return out, err
}

func (c *Client) GetDashboardStats(ctx context.Context) (core.DashboardStats, error) {
	var out core.DashboardStats
	err := c.do(ctx, "dashboard stats", http.MethodGet, "/dashboard/stats", nil, &out)
	return out, err
}

// errorBody is the shape the server uses for failure responses.
type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

func (c *Client) do(ctx context.Context, op, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: encode request: %w", op, err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, reader)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		if resp.StatusCode == http.StatusUnauthorized && c.tokens != nil {
			slog.WarnContext(ctx, "Credential rejected, clearing session", "op", op)
			c.tokens.Clear()
		}
		return &RequestError{Op: op, Status: resp.StatusCode, Message: readErrorMessage(resp.Body)}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("%s: decode response: %w", op, err)
		}
	}
	return nil
}

func readErrorMessage(r io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(r, 64*1024))
	if err != nil {
		return ""
	}
	var body errorBody
	if err := json.Unmarshal(raw, &body); err != nil {
		return ""
	}
	if body.Message != "" {
		return body.Message
	}
	return body.Error
}
