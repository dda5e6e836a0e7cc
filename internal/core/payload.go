package core

import "strings"

// Payloads carry user input for create/update calls. Validation here is
// presence and shape only; business rules stay on the server and come
// back as request errors.
type (
	Credentials struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	Registration struct {
		Email     string `json:"email"`
		Password  string `json:"password"`
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
		Currency  string `json:"currency"`
		TimeZone  string `json:"timeZone"`
	}

	AccountPayload struct {
		Name            string      `json:"name"`
		Type            AccountType `json:"type"`
		InitialBalance  float64     `json:"initialBalance"`
		AccountNumber   string      `json:"accountNumber,omitempty"`
		InstitutionName string      `json:"institutionName,omitempty"`
	}

	CategoryPayload struct {
		Name        string       `json:"name"`
		Description string       `json:"description,omitempty"`
		Type        CategoryType `json:"type"`
	}

	TransactionPayload struct {
		Description string          `json:"description"`
		Amount      float64         `json:"amount"`
		Type        TransactionType `json:"type"`
		AccountID   int64           `json:"accountId"`
		CategoryID  *int64          `json:"categoryId,omitempty"`
		Date        string          `json:"transactionDate"`
		Notes       string          `json:"notes,omitempty"`
	}

	BudgetPayload struct {
		Name           string       `json:"name"`
		Description    string       `json:"description,omitempty"`
		Amount         float64      `json:"amount"`
		Period         BudgetPeriod `json:"period"`
		CategoryID     *int64       `json:"categoryId,omitempty"`
		StartDate      string       `json:"startDate"`
		EndDate        string       `json:"endDate,omitempty"`
		AlertThreshold *float64     `json:"alertThreshold,omitempty"`
	}

	GoalPayload struct {
		Name          string   `json:"name"`
		Description   string   `json:"description,omitempty"`
		TargetAmount  float64  `json:"targetAmount"`
		CurrentAmount *float64 `json:"currentAmount,omitempty"`
		Type          GoalType `json:"type"`
		TargetDate    string   `json:"targetDate,omitempty"`
	}
)

func (c Credentials) Validate() error {
	if strings.TrimSpace(c.Email) == "" {
		return ErrEmptyEmail
	}
	if c.Password == "" {
		return ErrEmptyPassword
	}
	return nil
}

func (r Registration) Validate() error {
	if strings.TrimSpace(r.Email) == "" {
		return ErrEmptyEmail
	}
	if r.Password == "" {
		return ErrEmptyPassword
	}
	if strings.TrimSpace(r.FirstName) == "" || strings.TrimSpace(r.LastName) == "" {
		return ErrEmptyName
	}
	return nil
}

func (p AccountPayload) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrEmptyName
	}
	if !p.Type.Valid() {
		return ErrInvalidType
	}
	if !validAmount(p.InitialBalance) {
		return ErrInvalidAmount
	}
	return nil
}

func (p CategoryPayload) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrEmptyName
	}
	if !p.Type.Valid() {
		return ErrInvalidType
	}
	return nil
}

func (p TransactionPayload) Validate() error {
	if strings.TrimSpace(p.Description) == "" {
		return ErrEmptyDescription
	}
	if !validAmount(p.Amount) {
		return ErrInvalidAmount
	}
	if !p.Type.Valid() {
		return ErrInvalidType
	}
	if p.AccountID <= 0 {
		return ErrMissingAccount
	}
	return nil
}

func (p BudgetPayload) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrEmptyName
	}
	if !validAmount(p.Amount) || p.Amount <= 0 {
		return ErrInvalidAmount
	}
	if !p.Period.Valid() {
		return ErrInvalidPeriod
	}
	return nil
}

func (p GoalPayload) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrEmptyName
	}
	if !validAmount(p.TargetAmount) || p.TargetAmount <= 0 {
		return ErrInvalidAmount
	}
	if !p.Type.Valid() {
		return ErrInvalidType
	}
	return nil
}
