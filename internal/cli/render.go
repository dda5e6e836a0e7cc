package cli

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"fintrack/internal/core"
)

func money(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

func day(t time.Time) string {
	return t.Format("2006-01-02")
}

// RenderAccounts prints an account table followed by balance totals.
func RenderAccounts(w io.Writer, accounts []core.Account) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tTYPE\tSTATUS\tBALANCE")
	for _, a := range accounts {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", a.ID, a.Name, a.Type, a.Status, money(a.CurrentBalance))
	}
	tw.Flush()

	fmt.Fprintf(w, "\n%d accounts (%d active), total balance %s\n",
		len(accounts), core.ActiveAccounts(accounts), money(core.TotalBalance(accounts)))
}

func RenderCategories(w io.Writer, categories []core.Category) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tTYPE\tSTATUS")
	for _, c := range categories {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", c.ID, c.Name, c.Type, c.Status)
	}
	tw.Flush()

	counts := core.CountByCategoryType(categories)
	fmt.Fprintf(w, "\n%d categories (%d income, %d expense)\n",
		len(categories), counts[core.CategoryIncome], counts[core.CategoryExpense])
}

// RenderTransactions prints a transaction table followed by the income,
// expense, and net flow summary.
func RenderTransactions(w io.Writer, txs []core.Transaction) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDATE\tDESCRIPTION\tTYPE\tAMOUNT\tACCOUNT\tCATEGORY")
	for _, t := range txs {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			t.ID, day(t.Date), t.Description, t.Type, money(t.Amount), t.AccountName, t.CategoryName)
	}
	tw.Flush()

	fmt.Fprintf(w, "\nincome %s, expenses %s, net %s\n",
		money(core.TotalIncome(txs)), money(core.TotalExpenses(txs)), money(core.NetFlow(txs)))
}

// RenderBudgets prints each budget with its clamped progress, alert
// level, and any overage.
func RenderBudgets(w io.Writer, budgets []core.Budget) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tPERIOD\tSPENT\tLIMIT\tPROGRESS\tALERT")
	for _, b := range budgets {
		progress := core.BudgetProgress(b)
		line := fmt.Sprintf("%d\t%s\t%s\t%s\t%s\t%.0f%%\t%s",
			b.ID, b.Name, b.Period, money(b.SpentAmount), money(b.Amount),
			progress, core.BudgetAlertLevel(progress))
		if over := core.BudgetOverage(b); over > 0 {
			line += fmt.Sprintf(" (over by %s)", money(over))
		}
		fmt.Fprintln(tw, line)
	}
	tw.Flush()

	fmt.Fprintf(w, "\n%d budgets, %s spent of %s budgeted\n",
		len(budgets), money(core.TotalSpent(budgets)), money(core.TotalBudgeted(budgets)))
}

// RenderGoals prints each goal with its derived state at now.
func RenderGoals(w io.Writer, goals []core.Goal, now time.Time) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tTYPE\tSAVED\tTARGET\tPROGRESS\tSTATE")
	for _, g := range goals {
		s := core.DeriveGoalState(g, now)
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%.0f%%\t%s\n",
			g.ID, g.Name, g.Type, money(g.CurrentAmount), money(g.TargetAmount),
			s.PercentageComplete, goalStateLabel(s))
	}
	tw.Flush()

	fmt.Fprintf(w, "\n%d goals, %s saved of %s targeted\n",
		len(goals), money(core.TotalSaved(goals)), money(core.TotalTarget(goals)))
}

func goalStateLabel(s core.GoalState) string {
	switch {
	case s.IsCompleted:
		return "completed"
	case s.IsOverdue:
		return fmt.Sprintf("overdue by %d days", -s.DaysRemaining)
	case s.IsNearCompletion:
		return "almost there"
	case s.HasTargetDate:
		return fmt.Sprintf("%d days left", s.DaysRemaining)
	default:
		return "on track"
	}
}

// RenderDashboard prints the server-computed overview plus recent
// activity and alerts.
func RenderDashboard(w io.Writer, stats core.DashboardStats, now time.Time) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Total balance\t%s\n", money(stats.TotalBalance))
	fmt.Fprintf(tw, "Net worth\t%s\n", money(stats.NetWorth))
	fmt.Fprintf(tw, "Monthly income\t%s\n", money(stats.MonthlyIncome))
	fmt.Fprintf(tw, "Monthly expenses\t%s\n", money(stats.MonthlyExpenses))
	fmt.Fprintf(tw, "Active budgets\t%d\n", stats.ActiveBudgets)
	fmt.Fprintf(tw, "Active goals\t%d\n", stats.ActiveGoals)
	tw.Flush()

	if len(stats.RecentTransactions) > 0 {
		fmt.Fprintln(w, "\nRecent transactions:")
		RenderTransactions(w, stats.RecentTransactions)
	}
	if len(stats.BudgetAlerts) > 0 {
		fmt.Fprintln(w, "\nBudget alerts:")
		RenderBudgets(w, stats.BudgetAlerts)
	}
	if len(stats.GoalAlerts) > 0 {
		fmt.Fprintln(w, "\nGoal alerts:")
		RenderGoals(w, stats.GoalAlerts, now)
	}
}
