package dto

import "github.com/shopspring/decimal"

// CreateExpenseRequest alta de un gasto. DueDate en formato 2006-01-02.
type CreateExpenseRequest struct {
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	CategoryID  int64           `json:"category_id"`
	DueDate     string          `json:"due_date"`
	IsRecurring bool            `json:"is_recurring"`
	Frequency   string          `json:"frequency"`
	AdvanceDays int             `json:"advance_days"`
	AutoRenew   bool            `json:"auto_renew"`
	Notes       string          `json:"notes"`
}

// UpdateExpenseRequest actualización parcial de un gasto.
type UpdateExpenseRequest struct {
	Description *string          `json:"description,omitempty"`
	Amount      *decimal.Decimal `json:"amount,omitempty"`
	CategoryID  *int64           `json:"category_id,omitempty"`
	DueDate     *string          `json:"due_date,omitempty"`
	IsRecurring *bool            `json:"is_recurring,omitempty"`
	Frequency   *string          `json:"frequency,omitempty"`
	AdvanceDays *int             `json:"advance_days,omitempty"`
	AutoRenew   *bool            `json:"auto_renew,omitempty"`
	Notes       *string          `json:"notes,omitempty"`
}

// ExpenseResponse representación API de un gasto, con derivados calculados
// contra "hoy": vencido, días restantes y próxima ocurrencia.
type ExpenseResponse struct {
	ID          int64           `json:"id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	CategoryID  int64           `json:"category_id"`
	DueDate     string          `json:"due_date"`
	IsPaid      bool            `json:"is_paid"`
	PaidDate    *string         `json:"paid_date,omitempty"`
	IsRecurring bool            `json:"is_recurring"`
	Frequency   string          `json:"frequency,omitempty"`
	AdvanceDays int             `json:"advance_days"`
	AutoRenew   bool            `json:"auto_renew"`
	Notes       string          `json:"notes,omitempty"`
	CreatedBy   string          `json:"created_by"`
	IsOverdue   bool            `json:"is_overdue"`
	DaysUntil   int             `json:"days_until"`
	NextDueDate *string         `json:"next_due_date,omitempty"`
	Status      string          `json:"status"` // paid | overdue | pending
}

// ExpenseListResponse listado paginado de gastos.
type ExpenseListResponse struct {
	Items []ExpenseResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// ExpenseCategoryResponse categoría de gasto.
type ExpenseCategoryResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Color       string `json:"color,omitempty"`
	Description string `json:"description,omitempty"`
}

// SyncRecurringResponse resultado del barrido de renovación de gastos recurrentes.
type SyncRecurringResponse struct {
	Created int `json:"created"`
}
