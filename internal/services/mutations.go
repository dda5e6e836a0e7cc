package services

import (
	"context"
	"errors"

	"fintrack/internal/api"
	"fintrack/internal/core"
	"fintrack/internal/notify"
	"fintrack/internal/query"
)

// ErrBusy is returned when a form already has a mutation in flight;
// the submission is ignored.
var ErrBusy = errors.New("mutation already in flight")

// mutationKeys is the invalidation rule table: every cache key a
// mutation against an entity can affect. Invalidation happens only
// after the success response is observed, never speculatively.
var mutationKeys = map[string][]string{
	"account":     {query.KeyAccounts, query.KeyDashboardStats},
	"category":    {query.KeyCategories},
	"transaction": {query.KeyTransactions, query.KeyAccounts, query.KeyDashboardStats},
	"budget":      {query.KeyBudgets, query.KeyDashboardStats},
	"goal":        {query.KeyGoals, query.KeyDashboardStats},
}

// Mutator coordinates create/update/delete calls: on success it
// invalidates the dependent cache keys and surfaces a notification; on
// failure it leaves the cache untouched and keeps the form open. It
// never retries.
type Mutator struct {
	api    API
	cache  *query.Cache
	notify notify.Notifier
}

func NewMutator(api API, cache *query.Cache, n notify.Notifier) *Mutator {
	return &Mutator{api: api, cache: cache, notify: n}
}

// run drives one mutation through the form state machine. Auth errors
// skip the per-call error notification; the outer shell handles 401
// globally.
func run[T any](ctx context.Context, m *Mutator, form *Form, entity, success, fallback string, call func(context.Context) (T, error)) (T, error) {
	var zero T
	if form != nil && !form.begin() {
		return zero, ErrBusy
	}

	v, err := call(ctx)
	if err != nil {
		if form != nil {
			form.fail()
		}
		if !api.IsAuth(err) {
			m.notify.Error(api.ErrorMessage(err, fallback))
		}
		return zero, err
	}

	m.cache.Invalidate(mutationKeys[entity]...)
	m.notify.Success(success)
	if form != nil {
		form.resolve()
	}
	return v, nil
}

// reject surfaces a local validation failure without touching the form
// state machine; the form never leaves idle and can be resubmitted.
func (m *Mutator) reject(err error) error {
	m.notify.Error(err.Error())
	return err
}

func (m *Mutator) CreateAccount(ctx context.Context, form *Form, p core.AccountPayload) (core.Account, error) {
	if err := p.Validate(); err != nil {
		return core.Account{}, m.reject(err)
	}
	return run(ctx, m, form, "account", "Account created", "Failed to create account",
		func(ctx context.Context) (core.Account, error) { return m.api.CreateAccount(ctx, p) })
}

func (m *Mutator) UpdateAccount(ctx context.Context, form *Form, id int64, p core.AccountPayload) (core.Account, error) {
	if err := p.Validate(); err != nil {
		return core.Account{}, m.reject(err)
	}
	return run(ctx, m, form, "account", "Account updated", "Failed to update account",
		func(ctx context.Context) (core.Account, error) { return m.api.UpdateAccount(ctx, id, p) })
}

func (m *Mutator) DeleteAccount(ctx context.Context, form *Form, id int64) error {
	_, err := run(ctx, m, form, "account", "Account deleted", "Failed to delete account",
		func(ctx context.Context) (struct{}, error) { return struct{}{}, m.api.DeleteAccount(ctx, id) })
	return err
}

func (m *Mutator) CreateCategory(ctx context.Context, form *Form, p core.CategoryPayload) (core.Category, error) {
	if err := p.Validate(); err != nil {
		return core.Category{}, m.reject(err)
	}
	return run(ctx, m, form, "category", "Category created", "Failed to create category",
		func(ctx context.Context) (core.Category, error) { return m.api.CreateCategory(ctx, p) })
}

func (m *Mutator) UpdateCategory(ctx context.Context, form *Form, id int64, p core.CategoryPayload) (core.Category, error) {
	if err := p.Validate(); err != nil {
		return core.Category{}, m.reject(err)
	}
	return run(ctx, m, form, "category", "Category updated", "Failed to update category",
		func(ctx context.Context) (core.Category, error) { return m.api.UpdateCategory(ctx, id, p) })
}

func (m *Mutator) DeleteCategory(ctx context.Context, form *Form, id int64) error {
	_, err := run(ctx, m, form, "category", "Category deleted", "Failed to delete category",
		func(ctx context.Context) (struct{}, error) { return struct{}{}, m.api.DeleteCategory(ctx, id) })
	return err
}

func (m *Mutator) CreateTransaction(ctx context.Context, form *Form, p core.TransactionPayload) (core.Transaction, error) {
	if err := p.Validate(); err != nil {
		return core.Transaction{}, m.reject(err)
	}
	return run(ctx, m, form, "transaction", "Transaction created", "Failed to create transaction",
		func(ctx context.Context) (core.Transaction, error) { return m.api.CreateTransaction(ctx, p) })
}

func (m *Mutator) UpdateTransaction(ctx context.Context, form *Form, id int64, p core.TransactionPayload) (core.Transaction, error) {
	if err := p.Validate(); err != nil {
		return core.Transaction{}, m.reject(err)
	}
	return run(ctx, m, form, "transaction", "Transaction updated", "Failed to update transaction",
		func(ctx context.Context) (core.Transaction, error) { return m.api.UpdateTransaction(ctx, id, p) })
}

func (m *Mutator) DeleteTransaction(ctx context.Context, form *Form, id int64) error {
	_, err := run(ctx, m, form, "transaction", "Transaction deleted", "Failed to delete transaction",
		func(ctx context.Context) (struct{}, error) { return struct{}{}, m.api.DeleteTransaction(ctx, id) })
	return err
}

func (m *Mutator) CreateBudget(ctx context.Context, form *Form, p core.BudgetPayload) (core.Budget, error) {
	if err := p.Validate(); err != nil {
		return core.Budget{}, m.reject(err)
	}
	return run(ctx, m, form, "budget", "Budget created", "Failed to create budget",
		func(ctx context.Context) (core.Budget, error) { return m.api.CreateBudget(ctx, p) })
}

func (m *Mutator) UpdateBudget(ctx context.Context, form *Form, id int64, p core.BudgetPayload) (core.Budget, error) {
	if err := p.Validate(); err != nil {
		return core.Budget{}, m.reject(err)
	}
	return run(ctx, m, form, "budget", "Budget updated", "Failed to update budget",
		func(ctx context.Context) (core.Budget, error) { return m.api.UpdateBudget(ctx, id, p) })
}

func (m *Mutator) DeleteBudget(ctx context.Context, form *Form, id int64) error {
	_, err := run(ctx, m, form, "budget", "Budget deleted", "Failed to delete budget",
		func(ctx context.Context) (struct{}, error) { return struct{}{}, m.api.DeleteBudget(ctx, id) })
	return err
}

func (m *Mutator) CreateGoal(ctx context.Context, form *Form, p core.GoalPayload) (core.Goal, error) {
	if err := p.Validate(); err != nil {
		return core.Goal{}, m.reject(err)
	}
	return run(ctx, m, form, "goal", "Goal created", "Failed to create goal",
		func(ctx context.Context) (core.Goal, error) { return m.api.CreateGoal(ctx, p) })
}

func (m *Mutator) UpdateGoal(ctx context.Context, form *Form, id int64, p core.GoalPayload) (core.Goal, error) {
	if err := p.Validate(); err != nil {
		return core.Goal{}, m.reject(err)
	}
	return run(ctx, m, form, "goal", "Goal updated", "Failed to update goal",
		func(ctx context.Context) (core.Goal, error) { return m.api.UpdateGoal(ctx, id, p) })
}

func (m *Mutator) DeleteGoal(ctx context.Context, form *Form, id int64) error {
	_, err := run(ctx, m, form, "goal", "Goal deleted", "Failed to delete goal",
		func(ctx context.Context) (struct{}, error) { return struct{}{}, m.api.DeleteGoal(ctx, id) })
	return err
}

func (m *Mutator) AddGoalProgress(ctx context.Context, form *Form, id int64, amount float64) (core.Goal, error) {
	if amount <= 0 {
		return core.Goal{}, m.reject(core.ErrInvalidAmount)
	}
	return run(ctx, m, form, "goal", "Goal progress added", "Failed to add goal progress",
		func(ctx context.Context) (core.Goal, error) { return m.api.AddGoalProgress(ctx, id, amount) })
}
