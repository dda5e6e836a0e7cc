package services

import (
	"context"

	"fintrack/internal/core"
	"fintrack/internal/query"
)

// Queries is the read side: each call goes through the server-state
// cache under its stable key, fetching from the API only when the
// entry is missing or stale.
type Queries struct {
	api   API
	cache *query.Cache
}

func NewQueries(api API, cache *query.Cache) *Queries {
	return &Queries{api: api, cache: cache}
}

func (q *Queries) Accounts(ctx context.Context) ([]core.Account, error) {
	return query.ReadAs(ctx, q.cache, query.KeyAccounts, q.api.ListAccounts)
}

func (q *Queries) Categories(ctx context.Context) ([]core.Category, error) {
	return query.ReadAs(ctx, q.cache, query.KeyCategories, q.api.ListCategories)
}

func (q *Queries) Transactions(ctx context.Context) ([]core.Transaction, error) {
	return query.ReadAs(ctx, q.cache, query.KeyTransactions, q.api.ListTransactions)
}

func (q *Queries) Budgets(ctx context.Context) ([]core.Budget, error) {
	return query.ReadAs(ctx, q.cache, query.KeyBudgets, q.api.ListBudgets)
}

func (q *Queries) Goals(ctx context.Context) ([]core.Goal, error) {
	return query.ReadAs(ctx, q.cache, query.KeyGoals, q.api.ListGoals)
}

func (q *Queries) DashboardStats(ctx context.Context) (core.DashboardStats, error) {
	return query.ReadAs(ctx, q.cache, query.KeyDashboardStats, q.api.GetDashboardStats)
}
