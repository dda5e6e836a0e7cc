package services

import (
	"context"

	"fintrack/internal/api"
	"fintrack/internal/core"
)

// Ports for the remote API, split per entity so tests fake only what
// they touch.
type (
	AccountsAPI interface {
		ListAccounts(ctx context.Context) ([]core.Account, error)
		CreateAccount(ctx context.Context, p core.AccountPayload) (core.Account, error)
		UpdateAccount(ctx context.Context, id int64, p core.AccountPayload) (core.Account, error)
		DeleteAccount(ctx context.Context, id int64) error
	}

	CategoriesAPI interface {
		ListCategories(ctx context.Context) ([]core.Category, error)
		CreateCategory(ctx context.Context, p core.CategoryPayload) (core.Category, error)
		UpdateCategory(ctx context.Context, id int64, p core.CategoryPayload) (core.Category, error)
		DeleteCategory(ctx context.Context, id int64) error
	}

	TransactionsAPI interface {
		ListTransactions(ctx context.Context) ([]core.Transaction, error)
		CreateTransaction(ctx context.Context, p core.TransactionPayload) (core.Transaction, error)
		UpdateTransaction(ctx context.Context, id int64, p core.TransactionPayload) (core.Transaction, error)
		DeleteTransaction(ctx context.Context, id int64) error
	}

	BudgetsAPI interface {
		ListBudgets(ctx context.Context) ([]core.Budget, error)
		CreateBudget(ctx context.Context, p core.BudgetPayload) (core.Budget, error)
		UpdateBudget(ctx context.Context, id int64, p core.BudgetPayload) (core.Budget, error)
		DeleteBudget(ctx context.Context, id int64) error
	}

	GoalsAPI interface {
		ListGoals(ctx context.Context) ([]core.Goal, error)
		CreateGoal(ctx context.Context, p core.GoalPayload) (core.Goal, error)
		UpdateGoal(ctx context.Context, id int64, p core.GoalPayload) (core.Goal, error)
		DeleteGoal(ctx context.Context, id int64) error
		AddGoalProgress(ctx context.Context, id int64, amount float64) (core.Goal, error)
	}

	DashboardAPI interface {
		GetDashboardStats(ctx context.Context) (core.DashboardStats, error)
	}

	// API is the full remote surface the services need.
	API interface {
		AccountsAPI
		CategoriesAPI
		TransactionsAPI
		BudgetsAPI
		GoalsAPI
		DashboardAPI
	}
)

// Ensure interface conformance
var _ API = (*api.Client)(nil)
