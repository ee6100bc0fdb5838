package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Frecuencias de recurrencia soportadas. Cualquier otro valor se trata como
// no-avance (ver recurrence.NextPeriodDate).
const (
	FrequencyDaily   = "daily"
	FrequencyWeekly  = "weekly"
	FrequencyMonthly = "monthly"
	FrequencyYearly  = "yearly"
)

// Expense es un gasto operativo, opcionalmente recurrente. DueDate es la fecha
// ancla: de ella se deriva la secuencia infinita de ocurrencias.
type Expense struct {
	ID          int64
	Description string
	Amount      decimal.Decimal
	CategoryID  int64
	DueDate     time.Time // solo fecha, normalizada a medianoche UTC
	IsPaid      bool
	PaidDate    *time.Time
	IsRecurring bool
	Frequency   string // daily, weekly, monthly, yearly
	AdvanceDays int    // ventana de aviso anticipado
	AutoRenew   bool
	Notes       string
	CreatedBy   string // UUID del usuario creador
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsOverdue reporta si el gasto está vencido a la fecha dada (no pagado y vencimiento pasado).
func (e *Expense) IsOverdue(today time.Time) bool {
	if e.IsPaid {
		return false
	}
	return e.DueDate.Before(DateOnly(today))
}

// DaysUntil devuelve los días hasta el vencimiento (negativo si ya venció, 0 si está pagado).
func (e *Expense) DaysUntil(today time.Time) int {
	if e.IsPaid {
		return 0
	}
	return int(e.DueDate.Sub(DateOnly(today)).Hours() / 24)
}

// DateOnly trunca un instante a su fecha en UTC (medianoche).
func DateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ExpenseCategory clasifica gastos (renta, servicios, nómina, ...).
type ExpenseCategory struct {
	ID          int64
	Name        string // único
	Color       string // para la UI
	Description string
	CreatedAt   time.Time
}
