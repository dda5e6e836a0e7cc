package core

import "time"

// Alert levels for budget progress bars.
const (
	AlertNormal   AlertLevel = "normal"
	AlertWarning  AlertLevel = "warning"
	AlertCritical AlertLevel = "critical"
)

type AlertLevel string

// warningThreshold is fixed at 80%. A budget's own AlertThreshold is
// captured but not consulted here; the server pages never wired it in.
const warningThreshold = 80.0

// nearCompletionThreshold marks goals worth calling out before they hit 100%.
const nearCompletionThreshold = 80.0

// BudgetProgress returns spent/amount as a percentage clamped to
// [0, 100]. Overspend is reported separately by BudgetOverage.
func BudgetProgress(b Budget) float64 {
	if b.Amount <= 0 {
		return 0
	}
	pct := b.SpentAmount / b.Amount * 100
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

// BudgetOverage returns how far past its limit a budget has gone, or 0.
func BudgetOverage(b Budget) float64 {
	if over := b.SpentAmount - b.Amount; over > 0 {
		return over
	}
	return 0
}

// BudgetAlertLevel maps a progress percentage to a display level.
func BudgetAlertLevel(progress float64) AlertLevel {
	switch {
	case progress >= 100:
		return AlertCritical
	case progress >= warningThreshold:
		return AlertWarning
	default:
		return AlertNormal
	}
}

// GoalState holds the presentation values derived from a goal snapshot.
type GoalState struct {
	RemainingAmount    float64
	PercentageComplete float64 // uncapped, may exceed 100
	IsCompleted        bool
	IsOverdue          bool
	IsNearCompletion   bool
	HasTargetDate      bool
	DaysRemaining      int // negative when overdue, 0 without a target date
}

// DeriveGoalState computes a goal's derived fields at the given
// instant. now is injected so the result is a pure function of its
// inputs.
func DeriveGoalState(g Goal, now time.Time) GoalState {
	s := GoalState{RemainingAmount: g.TargetAmount - g.CurrentAmount}

	if g.TargetAmount > 0 {
		s.PercentageComplete = g.CurrentAmount / g.TargetAmount * 100
	}
	s.IsCompleted = g.Status == GoalCompleted || s.PercentageComplete >= 100
	s.IsNearCompletion = s.PercentageComplete >= nearCompletionThreshold && s.PercentageComplete < 100

	if g.TargetDate != nil {
		s.HasTargetDate = true
		// Completed goals are never overdue.
		s.IsOverdue = g.TargetDate.Before(now) && !s.IsCompleted
		s.DaysRemaining = int(g.TargetDate.Sub(now).Hours() / 24)
	}
	return s
}

// NetFlow folds transactions into a single signed total: INCOME adds,
// EXPENSE subtracts, TRANSFER and ADJUSTMENT pass their amount through
// unchanged (the server pre-encodes their sign).
func NetFlow(txs []Transaction) float64 {
	var sum float64
	for _, t := range txs {
		switch t.Type {
		case TxIncome:
			sum += t.Amount
		case TxExpense:
			sum -= t.Amount
		default:
			sum += t.Amount
		}
	}
	return sum
}

// TotalIncome sums INCOME transaction amounts.
func TotalIncome(txs []Transaction) float64 {
	var sum float64
	for _, t := range txs {
		if t.Type == TxIncome {
			sum += t.Amount
		}
	}
	return sum
}

// TotalExpenses sums EXPENSE transaction amounts (as magnitudes).
func TotalExpenses(txs []Transaction) float64 {
	var sum float64
	for _, t := range txs {
		if t.Type == TxExpense {
			sum += t.Amount
		}
	}
	return sum
}

// TotalBalance sums current balances across accounts.
func TotalBalance(accounts []Account) float64 {
	var sum float64
	for _, a := range accounts {
		sum += a.CurrentBalance
	}
	return sum
}

// ActiveAccounts counts accounts in ACTIVE status.
func ActiveAccounts(accounts []Account) int {
	n := 0
	for _, a := range accounts {
		if a.Status == StatusActive {
			n++
		}
	}
	return n
}

// TotalBudgeted sums budget limits.
func TotalBudgeted(budgets []Budget) float64 {
	var sum float64
	for _, b := range budgets {
		sum += b.Amount
	}
	return sum
}

// TotalSpent sums server-computed running totals across budgets.
func TotalSpent(budgets []Budget) float64 {
	var sum float64
	for _, b := range budgets {
		sum += b.SpentAmount
	}
	return sum
}

// TotalTarget sums goal targets.
func TotalTarget(goals []Goal) float64 {
	var sum float64
	for _, g := range goals {
		sum += g.TargetAmount
	}
	return sum
}

// TotalSaved sums current goal amounts.
func TotalSaved(goals []Goal) float64 {
	var sum float64
	for _, g := range goals {
		sum += g.CurrentAmount
	}
	return sum
}

// CountByAccountType buckets accounts by type for summary cards.
func CountByAccountType(accounts []Account) map[AccountType]int {
	counts := make(map[AccountType]int, len(accounts))
	for _, a := range accounts {
		counts[a.Type]++
	}
	return counts
}

// CountByCategoryType buckets categories by type.
func CountByCategoryType(categories []Category) map[CategoryType]int {
	counts := make(map[CategoryType]int, len(categories))
	for _, c := range categories {
		counts[c.Type]++
	}
	return counts
}
