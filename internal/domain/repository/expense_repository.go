package repository

import (
	"time"

	"github.com/lapstock/lapstock-api/internal/domain/entity"
)

// ExpenseRepository define el puerto de persistencia para gastos.
type ExpenseRepository interface {
	Create(expense *entity.Expense) error
	GetByID(id int64) (*entity.Expense, error)
	Update(expense *entity.Expense) error
	List(limit, offset int) ([]*entity.Expense, error)
	// ExistsByDescriptionAndDueDate evita materializar ocurrencias duplicadas al
	// renovar: misma descripción, mismo vencimiento y mismo creador.
	ExistsByDescriptionAndDueDate(description string, dueDate time.Time, createdBy string) (bool, error)
	// ListRecurringAutoRenew devuelve los gastos base del barrido de renovación.
	ListRecurringAutoRenew() ([]*entity.Expense, error)
	// LatestByDescription devuelve la ocurrencia más reciente (mayor vencimiento)
	// de una serie recurrente. (nil, nil) si no existe.
	LatestByDescription(description, createdBy string) (*entity.Expense, error)
}

// ExpenseCategoryRepository define el puerto de persistencia para categorías de gasto.
type ExpenseCategoryRepository interface {
	Create(category *entity.ExpenseCategory) error
	GetByID(id int64) (*entity.ExpenseCategory, error)
	List() ([]*entity.ExpenseCategory, error)
}
