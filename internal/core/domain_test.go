package core

import (
	"math"
	"testing"
)

func TestAccountPayloadValidate(t *testing.T) {
	good := AccountPayload{Name: "Main", Type: AccountChecking, InitialBalance: 100}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	bads := []AccountPayload{
		{Name: "", Type: AccountChecking},
		{Name: "   ", Type: AccountChecking},
		{Name: "a", Type: "PIGGY_BANK"},
		{Name: "a", Type: AccountSavings, InitialBalance: math.NaN()},
	}
	for i, p := range bads {
		if err := p.Validate(); err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestCategoryPayloadValidate(t *testing.T) {
	if err := (CategoryPayload{Name: "Food", Type: CategoryExpense}).Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if err := (CategoryPayload{Name: "", Type: CategoryExpense}).Validate(); err != ErrEmptyName {
		t.Fatalf("expected ErrEmptyName, got %v", err)
	}
	if err := (CategoryPayload{Name: "x", Type: "FUN"}).Validate(); err != ErrInvalidType {
		t.Fatalf("expected ErrInvalidType, got %v", err)
	}
}

func TestTransactionPayloadValidate(t *testing.T) {
	good := TransactionPayload{Description: "Coffee", Amount: 3.50, Type: TxExpense, AccountID: 1, Date: "2024-01-10"}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	bads := []TransactionPayload{
		{Description: "", Amount: 1, Type: TxExpense, AccountID: 1},
		{Description: "a", Amount: math.Inf(1), Type: TxExpense, AccountID: 1},
		{Description: "a", Amount: 1, Type: "REFUND", AccountID: 1},
		{Description: "a", Amount: 1, Type: TxExpense, AccountID: 0},
	}
	for i, p := range bads {
		if err := p.Validate(); err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestBudgetPayloadValidate(t *testing.T) {
	good := BudgetPayload{Name: "Groceries", Amount: 400, Period: PeriodMonthly, StartDate: "2024-01-01"}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if err := (BudgetPayload{Name: "x", Amount: 0, Period: PeriodMonthly}).Validate(); err != ErrInvalidAmount {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
	if err := (BudgetPayload{Name: "x", Amount: 10, Period: "FORTNIGHTLY"}).Validate(); err != ErrInvalidPeriod {
		t.Fatalf("expected ErrInvalidPeriod, got %v", err)
	}
}

func TestGoalPayloadValidate(t *testing.T) {
	good := GoalPayload{Name: "Vacation", TargetAmount: 2000, Type: GoalTravel}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if err := (GoalPayload{Name: "x", TargetAmount: -5, Type: GoalTravel}).Validate(); err != ErrInvalidAmount {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
}

func TestCredentialsValidate(t *testing.T) {
	if err := (Credentials{Email: "a@b.c", Password: "pw"}).Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if err := (Credentials{Email: "", Password: "pw"}).Validate(); err != ErrEmptyEmail {
		t.Fatalf("expected ErrEmptyEmail, got %v", err)
	}
	if err := (Credentials{Email: "a@b.c", Password: ""}).Validate(); err != ErrEmptyPassword {
		t.Fatalf("expected ErrEmptyPassword, got %v", err)
	}
}

func TestRegistrationValidate(t *testing.T) {
	good := Registration{Email: "a@b.c", Password: "pw", FirstName: "Ana", LastName: "Lima", Currency: "USD", TimeZone: "UTC"}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if err := (Registration{Email: "a@b.c", Password: "pw", FirstName: "", LastName: "Lima"}).Validate(); err != ErrEmptyName {
		t.Fatalf("expected ErrEmptyName, got %v", err)
	}
}

func TestEnumValidity(t *testing.T) {
	if !AccountCreditCard.Valid() || AccountType("WALLET").Valid() {
		t.Fatal("account type validity broken")
	}
	if !TxAdjustment.Valid() || TransactionType("REBATE").Valid() {
		t.Fatal("transaction type validity broken")
	}
	if !GoalEmergencyFund.Valid() || GoalType("LOTTERY").Valid() {
		t.Fatal("goal type validity broken")
	}
	if !PeriodQuarterly.Valid() || BudgetPeriod("DECADE").Valid() {
		t.Fatal("budget period validity broken")
	}
}
