package core

import (
	"errors"
	"math"
	"time"
)

const (
	AccountChecking   AccountType = "CHECKING"
	AccountSavings    AccountType = "SAVINGS"
	AccountCreditCard AccountType = "CREDIT_CARD"
	AccountInvestment AccountType = "INVESTMENT"
	AccountLoan       AccountType = "LOAN"
	AccountOther      AccountType = "OTHER"

	StatusActive   EntityStatus = "ACTIVE"
	StatusInactive EntityStatus = "INACTIVE"
	StatusClosed   EntityStatus = "CLOSED"

	CategoryIncome   CategoryType = "INCOME"
	CategoryExpense  CategoryType = "EXPENSE"
	CategoryTransfer CategoryType = "TRANSFER"

	TxIncome     TransactionType = "INCOME"
	TxExpense    TransactionType = "EXPENSE"
	TxTransfer   TransactionType = "TRANSFER"
	TxAdjustment TransactionType = "ADJUSTMENT"

	TxPending   TransactionStatus = "PENDING"
	TxCompleted TransactionStatus = "COMPLETED"
	TxCancelled TransactionStatus = "CANCELLED"
	TxFailed    TransactionStatus = "FAILED"

	PeriodWeekly    BudgetPeriod = "WEEKLY"
	PeriodMonthly   BudgetPeriod = "MONTHLY"
	PeriodQuarterly BudgetPeriod = "QUARTERLY"
	PeriodYearly    BudgetPeriod = "YEARLY"

	GoalSavings       GoalType = "SAVINGS"
	GoalDebtPayoff    GoalType = "DEBT_PAYOFF"
	GoalEmergencyFund GoalType = "EMERGENCY_FUND"
	GoalInvestment    GoalType = "INVESTMENT"
	GoalPurchase      GoalType = "PURCHASE"
	GoalTravel        GoalType = "TRAVEL"
	GoalEducation     GoalType = "EDUCATION"
	GoalOther         GoalType = "OTHER"

	GoalActive    GoalStatus = "ACTIVE"
	GoalCompleted GoalStatus = "COMPLETED"
	GoalPaused    GoalStatus = "PAUSED"
	GoalCancelled GoalStatus = "CANCELLED"
)

type (
	AccountType       string
	EntityStatus      string
	CategoryType      string
	TransactionType   string
	TransactionStatus string
	BudgetPeriod      string
	GoalType          string
	GoalStatus        string

	// Account is a snapshot of a server-side account. Balances are
	// server-computed; the client never derives them locally.
	Account struct {
		ID              int64        `json:"id"`
		Name            string       `json:"name"`
		AccountNumber   string       `json:"accountNumber,omitempty"`
		InstitutionName string       `json:"institutionName,omitempty"`
		Type            AccountType  `json:"type"`
		Status          EntityStatus `json:"status"`
		CurrentBalance  float64      `json:"currentBalance"`
		InitialBalance  float64      `json:"initialBalance"`
		IsDefault       bool         `json:"isDefault"`
		CreatedAt       time.Time    `json:"createdAt"`
		UpdatedAt       time.Time    `json:"updatedAt"`
		UserID          int64        `json:"userId"`
	}

	Category struct {
		ID          int64        `json:"id"`
		Name        string       `json:"name"`
		Description string       `json:"description,omitempty"`
		Type        CategoryType `json:"type"`
		Status      EntityStatus `json:"status"`
		IsDefault   bool         `json:"isDefault"`
		CreatedAt   time.Time    `json:"createdAt"`
		UpdatedAt   time.Time    `json:"updatedAt"`
		UserID      int64        `json:"userId"`
	}

	Transaction struct {
		ID           int64             `json:"id"`
		Description  string            `json:"description"`
		Amount       float64           `json:"amount"`
		Type         TransactionType   `json:"type"`
		Status       TransactionStatus `json:"status"`
		Date         time.Time         `json:"transactionDate"`
		Reference    string            `json:"referenceNumber,omitempty"`
		Notes        string            `json:"notes,omitempty"`
		AccountID    int64             `json:"accountId"`
		AccountName  string            `json:"accountName,omitempty"`
		CategoryID   *int64            `json:"categoryId,omitempty"`
		CategoryName string            `json:"categoryName,omitempty"`
		CreatedAt    time.Time         `json:"createdAt"`
		UpdatedAt    time.Time         `json:"updatedAt"`
		UserID       int64             `json:"userId"`
	}

	Budget struct {
		ID             int64        `json:"id"`
		Name           string       `json:"name"`
		Description    string       `json:"description,omitempty"`
		Amount         float64      `json:"amount"`
		SpentAmount    float64      `json:"spentAmount"`
		Period         BudgetPeriod `json:"period"`
		StartDate      time.Time    `json:"startDate"`
		EndDate        *time.Time   `json:"endDate,omitempty"`
		AlertThreshold *float64     `json:"alertThreshold,omitempty"`
		Status         EntityStatus `json:"status"`
		CategoryID     *int64       `json:"categoryId,omitempty"`
		CategoryName   string       `json:"categoryName,omitempty"`
		CreatedAt      time.Time    `json:"createdAt"`
		UpdatedAt      time.Time    `json:"updatedAt"`
		UserID         int64        `json:"userId"`
	}

	Goal struct {
		ID            int64      `json:"id"`
		Name          string     `json:"name"`
		Description   string     `json:"description,omitempty"`
		TargetAmount  float64    `json:"targetAmount"`
		CurrentAmount float64    `json:"currentAmount"`
		Type          GoalType   `json:"type"`
		Status        GoalStatus `json:"status"`
		TargetDate    *time.Time `json:"targetDate,omitempty"`
		CreatedAt     time.Time  `json:"createdAt"`
		UpdatedAt     time.Time  `json:"updatedAt"`
		UserID        int64      `json:"userId"`
	}

	// DashboardStats is a server-computed read model; the client only
	// displays it.
	DashboardStats struct {
		TotalBalance       float64       `json:"totalBalance"`
		MonthlyIncome      float64       `json:"monthlyIncome"`
		MonthlyExpenses    float64       `json:"monthlyExpenses"`
		NetWorth           float64       `json:"netWorth"`
		ActiveBudgets      int           `json:"activeBudgets"`
		ActiveGoals        int           `json:"activeGoals"`
		RecentTransactions []Transaction `json:"recentTransactions"`
		BudgetAlerts       []Budget      `json:"budgetAlerts"`
		GoalAlerts         []Goal        `json:"goalAlerts"`
	}

	User struct {
		ID        int64  `json:"id"`
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
		Email     string `json:"email"`
		Currency  string `json:"currency"`
		TimeZone  string `json:"timeZone"`
		Status    string `json:"status"`
	}
)

var (
	ErrEmptyName        = errors.New("empty name")
	ErrEmptyDescription = errors.New("empty description")
	ErrEmptyEmail       = errors.New("empty email")
	ErrEmptyPassword    = errors.New("empty password")
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrInvalidType      = errors.New("invalid type")
	ErrInvalidPeriod    = errors.New("invalid period")
	ErrMissingAccount   = errors.New("missing account")
)

func (t AccountType) Valid() bool {
	switch t {
	case AccountChecking, AccountSavings, AccountCreditCard,
		AccountInvestment, AccountLoan, AccountOther:
		return true
	}
	return false
}

func (t CategoryType) Valid() bool {
	switch t {
	case CategoryIncome, CategoryExpense, CategoryTransfer:
		return true
	}
	return false
}

func (t TransactionType) Valid() bool {
	switch t {
	case TxIncome, TxExpense, TxTransfer, TxAdjustment:
		return true
	}
	return false
}

func (p BudgetPeriod) Valid() bool {
	switch p {
	case PeriodWeekly, PeriodMonthly, PeriodQuarterly, PeriodYearly:
		return true
	}
	return false
}

func (t GoalType) Valid() bool {
	switch t {
	case GoalSavings, GoalDebtPayoff, GoalEmergencyFund, GoalInvestment,
		GoalPurchase, GoalTravel, GoalEducation, GoalOther:
		return true
	}
	return false
}

func validAmount(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
