package services

import (
	"context"
	"errors"
	"net/http"
	"runtime"
	"sync"
	"testing"

	"fintrack/internal/api"
	"fintrack/internal/core"
	"fintrack/internal/notify"
	"fintrack/internal/query"
)

// fakeAPI counts list calls and lets tests inject mutation outcomes.
type fakeAPI struct {
	mu        sync.Mutex
	listCalls map[string]int

	mutationErr error
	block       chan struct{} // when set, create calls wait on it
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{listCalls: make(map[string]int)}
}

func (f *fakeAPI) counted(key string) {
	f.mu.Lock()
	f.listCalls[key]++
	f.mu.Unlock()
}

func (f *fakeAPI) calls(key string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.listCalls[key]
}

func (f *fakeAPI) mutate() error {
	if f.block != nil {
		<-f.block
	}
	return f.mutationErr
}

func (f *fakeAPI) ListAccounts(ctx context.Context) ([]core.Account, error) {
	f.counted(query.KeyAccounts)
	return []core.Account{{ID: 1, Name: "Main"}}, nil
}

func (f *fakeAPI) CreateAccount(ctx context.Context, p core.AccountPayload) (core.Account, error) {
	return core.Account{ID: 2, Name: p.Name}, f.mutate()
}

func (f *fakeAPI) UpdateAccount(ctx context.Context, id int64, p core.AccountPayload) (core.Account, error) {
	return core.Account{ID: id, Name: p.Name}, f.mutate()
}

func (f *fakeAPI) DeleteAccount(ctx context.Context, id int64) error { return f.mutate() }

func (f *fakeAPI) ListCategories(ctx context.Context) ([]core.Category, error) {
	f.counted(query.KeyCategories)
	return []core.Category{{ID: 1, Name: "Food"}}, nil
}

func (f *fakeAPI) CreateCategory(ctx context.Context, p core.CategoryPayload) (core.Category, error) {
	return core.Category{ID: 2, Name: p.Name}, f.mutate()
}

func (f *fakeAPI) UpdateCategory(ctx context.Context, id int64, p core.CategoryPayload) (core.Category, error) {
	return core.Category{ID: id, Name: p.Name}, f.mutate()
}

func (f *fakeAPI) DeleteCategory(ctx context.Context, id int64) error { return f.mutate() }

func (f *fakeAPI) ListTransactions(ctx context.Context) ([]core.Transaction, error) {
	f.counted(query.KeyTransactions)
	return []core.Transaction{{ID: 1, Description: "Coffee"}}, nil
}

func (f *fakeAPI) CreateTransaction(ctx context.Context, p core.TransactionPayload) (core.Transaction, error) {
	return core.Transaction{ID: 2, Description: p.Description}, f.mutate()
}

func (f *fakeAPI) UpdateTransaction(ctx context.Context, id int64, p core.TransactionPayload) (core.Transaction, error) {
	return core.Transaction{ID: id, Description: p.Description}, f.mutate()
}

func (f *fakeAPI) DeleteTransaction(ctx context.Context, id int64) error { return f.mutate() }

func (f *fakeAPI) ListBudgets(ctx context.Context) ([]core.Budget, error) {
	f.counted(query.KeyBudgets)
	return []core.Budget{{ID: 1, Name: "Groceries"}}, nil
}

func (f *fakeAPI) CreateBudget(ctx context.Context, p core.BudgetPayload) (core.Budget, error) {
	return core.Budget{ID: 2, Name: p.Name}, f.mutate()
}

func (f *fakeAPI) UpdateBudget(ctx context.Context, id int64, p core.BudgetPayload) (core.Budget, error) {
	return core.Budget{ID: id, Name: p.Name}, f.mutate()
}

func (f *fakeAPI) DeleteBudget(ctx context.Context, id int64) error { return f.mutate() }

func (f *fakeAPI) ListGoals(ctx context.Context) ([]core.Goal, error) {
	f.counted(query.KeyGoals)
	return []core.Goal{{ID: 1, Name: "Vacation"}}, nil
}

func (f *fakeAPI) CreateGoal(ctx context.Context, p core.GoalPayload) (core.Goal, error) {
	return core.Goal{ID: 2, Name: p.Name}, f.mutate()
}

func (f *fakeAPI) UpdateGoal(ctx context.Context, id int64, p core.GoalPayload) (core.Goal, error) {
	return core.Goal{ID: id, Name: p.Name}, f.mutate()
}

func (f *fakeAPI) DeleteGoal(ctx context.Context, id int64) error { return f.mutate() }

func (f *fakeAPI) AddGoalProgress(ctx context.Context, id int64, amount float64) (core.Goal, error) {
	return core.Goal{ID: id, CurrentAmount: amount}, f.mutate()
}

func (f *fakeAPI) GetDashboardStats(ctx context.Context) (core.DashboardStats, error) {
	f.counted(query.KeyDashboardStats)
	return core.DashboardStats{TotalBalance: 100}, nil
}

var _ API = (*fakeAPI)(nil)

func setup() (*fakeAPI, *query.Cache, *Queries, *Mutator, *notify.Recorder) {
	fake := newFakeAPI()
	cache := query.New()
	rec := &notify.Recorder{}
	return fake, cache, NewQueries(fake, cache), NewMutator(fake, cache, rec), rec
}

// prime fills every cache key once.
func prime(t *testing.T, q *Queries) {
	t.Helper()
	ctx := context.Background()
	if _, err := q.Accounts(ctx); err != nil {
		t.Fatal(err)
	}
	if _, err := q.Categories(ctx); err != nil {
		t.Fatal(err)
	}
	if _, err := q.Transactions(ctx); err != nil {
		t.Fatal(err)
	}
	if _, err := q.Budgets(ctx); err != nil {
		t.Fatal(err)
	}
	if _, err := q.Goals(ctx); err != nil {
		t.Fatal(err)
	}
	if _, err := q.DashboardStats(ctx); err != nil {
		t.Fatal(err)
	}
}

func TestTransactionCreateInvalidatesDependents(t *testing.T) {
	fake, _, queries, mutator, _ := setup()
	ctx := context.Background()
	prime(t, queries)

	_, err := mutator.CreateTransaction(ctx, NewForm(), core.TransactionPayload{
		Description: "Coffee", Amount: 3.5, Type: core.TxExpense, AccountID: 1, Date: "2024-01-10",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Affected keys re-fetch.
	prime(t, queries)
	if got := fake.calls(query.KeyTransactions); got != 2 {
		t.Fatalf("transactions should re-fetch, got %d calls", got)
	}
	if got := fake.calls(query.KeyAccounts); got != 2 {
		t.Fatalf("accounts should re-fetch, got %d calls", got)
	}
	if got := fake.calls(query.KeyDashboardStats); got != 2 {
		t.Fatalf("dashboard-stats should re-fetch, got %d calls", got)
	}
	// Unaffected keys stay cached.
	if got := fake.calls(query.KeyCategories); got != 1 {
		t.Fatalf("categories should stay cached, got %d calls", got)
	}
	if got := fake.calls(query.KeyBudgets); got != 1 {
		t.Fatalf("budgets should stay cached, got %d calls", got)
	}
	if got := fake.calls(query.KeyGoals); got != 1 {
		t.Fatalf("goals should stay cached, got %d calls", got)
	}
}

func TestCategoryMutationOnlyTouchesCategories(t *testing.T) {
	fake, _, queries, mutator, _ := setup()
	ctx := context.Background()
	prime(t, queries)

	if err := mutator.DeleteCategory(ctx, nil, 1); err != nil {
		t.Fatal(err)
	}

	prime(t, queries)
	if got := fake.calls(query.KeyCategories); got != 2 {
		t.Fatalf("categories should re-fetch, got %d calls", got)
	}
	if got := fake.calls(query.KeyAccounts); got != 1 {
		t.Fatalf("accounts should stay cached, got %d calls", got)
	}
	if got := fake.calls(query.KeyDashboardStats); got != 1 {
		t.Fatalf("dashboard-stats should stay cached, got %d calls", got)
	}
}

func TestSuccessNotifiesAndClosesForm(t *testing.T) {
	_, _, _, mutator, rec := setup()
	form := NewForm()

	_, err := mutator.CreateAccount(context.Background(), form, core.AccountPayload{
		Name: "Main", Type: core.AccountChecking,
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(rec.Successes) != 1 || rec.Successes[0] != "Account created" {
		t.Fatalf("expected success notification, got %v", rec.Successes)
	}
	if form.Open() {
		t.Fatal("form should close on success")
	}
	if form.State() != FormResolved {
		t.Fatalf("expected resolved state, got %v", form.State())
	}
}

func TestFailedMutationLeavesCacheAndFormOpen(t *testing.T) {
	fake, _, queries, mutator, rec := setup()
	ctx := context.Background()
	prime(t, queries)

	fake.mutationErr = &api.RequestError{Op: "create account", Status: http.StatusBadRequest, Message: "name required"}
	form := NewForm()

	_, err := mutator.CreateAccount(ctx, form, core.AccountPayload{Name: "Main", Type: core.AccountChecking})
	if err == nil {
		t.Fatal("expected error")
	}

	// Cache untouched: no key re-fetches.
	prime(t, queries)
	for _, key := range []string{query.KeyAccounts, query.KeyDashboardStats, query.KeyCategories} {
		if got := fake.calls(key); got != 1 {
			t.Fatalf("%s should stay cached after failed mutation, got %d calls", key, got)
		}
	}

	if !form.Open() {
		t.Fatal("form must stay open after failure")
	}
	if form.State() != FormFailed {
		t.Fatalf("expected failed state, got %v", form.State())
	}
	if len(rec.Errors) != 1 || rec.Errors[0] != "name required" {
		t.Fatalf("expected server message verbatim, got %v", rec.Errors)
	}
	if len(rec.Successes) != 0 {
		t.Fatalf("no success notification expected, got %v", rec.Successes)
	}
}

func TestServerErrorUsesFallbackMessage(t *testing.T) {
	fake, _, _, mutator, rec := setup()
	fake.mutationErr = &api.RequestError{Op: "delete budget", Status: http.StatusInternalServerError}

	if err := mutator.DeleteBudget(context.Background(), NewForm(), 1); err == nil {
		t.Fatal("expected error")
	}
	if len(rec.Errors) != 1 || rec.Errors[0] != "Failed to delete budget" {
		t.Fatalf("expected fallback message, got %v", rec.Errors)
	}
}

func TestAuthErrorSkipsLocalNotification(t *testing.T) {
	fake, _, _, mutator, rec := setup()
	fake.mutationErr = &api.RequestError{Op: "create goal", Status: http.StatusUnauthorized}

	_, err := mutator.CreateGoal(context.Background(), NewForm(), core.GoalPayload{
		Name: "Vacation", TargetAmount: 100, Type: core.GoalTravel,
	})
	if !api.IsAuth(err) {
		t.Fatalf("expected auth error, got %v", err)
	}
	if len(rec.Errors) != 0 {
		t.Fatalf("auth errors are handled globally, got local %v", rec.Errors)
	}
}

func TestSecondSubmissionWhilePendingIsIgnored(t *testing.T) {
	fake, _, _, mutator, _ := setup()
	fake.block = make(chan struct{})
	form := NewForm()
	ctx := context.Background()

	done := make(chan error, 1)
	go func() {
		_, err := mutator.CreateBudget(ctx, form, core.BudgetPayload{
			Name: "Groceries", Amount: 400, Period: core.PeriodMonthly,
		})
		done <- err
	}()

	// Wait for the first submission to be in flight.
	for !form.Busy() {
		runtime.Gosched()
	}

	_, err := mutator.CreateBudget(ctx, form, core.BudgetPayload{
		Name: "Groceries", Amount: 400, Period: core.PeriodMonthly,
	})
	if !errors.Is(err, ErrBusy) {
		t.Fatalf("expected ErrBusy, got %v", err)
	}

	close(fake.block)
	if err := <-done; err != nil {
		t.Fatalf("first submission should succeed: %v", err)
	}
}

func TestValidationRejectionSkipsAPI(t *testing.T) {
	fake, _, _, mutator, rec := setup()
	fake.mutationErr = errors.New("api should not be reached")
	form := NewForm()

	_, err := mutator.CreateAccount(context.Background(), form, core.AccountPayload{Name: ""})
	if !errors.Is(err, core.ErrEmptyName) {
		t.Fatalf("expected ErrEmptyName, got %v", err)
	}
	if len(rec.Errors) != 1 {
		t.Fatalf("expected one error notification, got %v", rec.Errors)
	}
	if form.State() != FormIdle {
		t.Fatal("form should remain idle so the user can fix and resubmit")
	}
	if !form.Open() {
		t.Fatal("form should stay open")
	}
}

func TestGoalProgressInvalidatesGoals(t *testing.T) {
	fake, _, queries, mutator, _ := setup()
	ctx := context.Background()
	prime(t, queries)

	if _, err := mutator.AddGoalProgress(ctx, nil, 1, 50); err != nil {
		t.Fatal(err)
	}

	prime(t, queries)
	if got := fake.calls(query.KeyGoals); got != 2 {
		t.Fatalf("goals should re-fetch, got %d calls", got)
	}
	if got := fake.calls(query.KeyDashboardStats); got != 2 {
		t.Fatalf("dashboard-stats should re-fetch, got %d calls", got)
	}
}

func TestResolvedFormIgnoresFurtherSubmissions(t *testing.T) {
	_, _, _, mutator, _ := setup()
	form := NewForm()
	ctx := context.Background()

	if _, err := mutator.CreateCategory(ctx, form, core.CategoryPayload{Name: "Food", Type: core.CategoryExpense}); err != nil {
		t.Fatal(err)
	}
	_, err := mutator.CreateCategory(ctx, form, core.CategoryPayload{Name: "Food", Type: core.CategoryExpense})
	if !errors.Is(err, ErrBusy) {
		t.Fatalf("closed form should ignore submissions, got %v", err)
	}
}

func TestFailedFormAllowsRetry(t *testing.T) {
	fake, _, _, mutator, _ := setup()
	form := NewForm()
	ctx := context.Background()

	fake.mutationErr = &api.RequestError{Op: "create category", Status: http.StatusBadRequest, Message: "duplicate"}
	if _, err := mutator.CreateCategory(ctx, form, core.CategoryPayload{Name: "Food", Type: core.CategoryExpense}); err == nil {
		t.Fatal("expected error")
	}

	fake.mutationErr = nil
	if _, err := mutator.CreateCategory(ctx, form, core.CategoryPayload{Name: "Food", Type: core.CategoryExpense}); err != nil {
		t.Fatalf("retry should succeed: %v", err)
	}
	if form.Open() {
		t.Fatal("form should close after successful retry")
	}
}
