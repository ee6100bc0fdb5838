package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/lapstock/lapstock-api/internal/domain"
	"github.com/lapstock/lapstock-api/internal/domain/entity"
	"github.com/lapstock/lapstock-api/internal/domain/repository"
)

var (
	_ repository.ExpenseRepository         = (*ExpenseRepo)(nil)
	_ repository.ExpenseCategoryRepository = (*ExpenseCategoryRepo)(nil)
)

// ExpenseRepo implementación del puerto ExpenseRepository sobre PostgreSQL (usable con pool o tx).
type ExpenseRepo struct {
	q Querier
}

// NewExpenseRepository construye el adaptador de persistencia para gastos. Pasar pool o tx (Querier).
func NewExpenseRepository(q Querier) *ExpenseRepo {
	return &ExpenseRepo{q: q}
}

const expenseColumns = `id, description, amount, category_id, due_date, is_paid, paid_date,
	is_recurring, frequency, advance_days, auto_renew, notes, created_by, created_at, updated_at`

// Create persiste un gasto nuevo y rellena su ID.
func (r *ExpenseRepo) Create(expense *entity.Expense) error {
	query := `
		INSERT INTO expenses (description, amount, category_id, due_date, is_paid, paid_date,
			is_recurring, frequency, advance_days, auto_renew, notes, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		expense.Description, expense.Amount, expense.CategoryID, expense.DueDate, expense.IsPaid, expense.PaidDate,
		expense.IsRecurring, expense.Frequency, expense.AdvanceDays, expense.AutoRenew, expense.Notes,
		expense.CreatedBy, expense.CreatedAt, expense.UpdatedAt,
	).Scan(&expense.ID)
	if err != nil {
		return fmt.Errorf("insert expense: %w", err)
	}
	return nil
}

// GetByID obtiene un gasto por ID. (nil, nil) si no existe.
func (r *ExpenseRepo) GetByID(id int64) (*entity.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get expense")
}

// Update actualiza un gasto existente.
func (r *ExpenseRepo) Update(expense *entity.Expense) error {
	query := `
		UPDATE expenses SET description = $2, amount = $3, category_id = $4, due_date = $5,
			is_paid = $6, paid_date = $7, is_recurring = $8, frequency = $9, advance_days = $10,
			auto_renew = $11, notes = $12, updated_at = $13
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		expense.ID, expense.Description, expense.Amount, expense.CategoryID, expense.DueDate,
		expense.IsPaid, expense.PaidDate, expense.IsRecurring, expense.Frequency, expense.AdvanceDays,
		expense.AutoRenew, expense.Notes, expense.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update expense: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista gastos con paginación, próximos vencimientos primero.
func (r *ExpenseRepo) List(limit, offset int) ([]*entity.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses ORDER BY due_date, id LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()
	var list []*entity.Expense
	for rows.Next() {
		exp, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		list = append(list, exp)
	}
	return list, rows.Err()
}

// ExistsByDescriptionAndDueDate reporta si ya existe una ocurrencia con la misma
// descripción, vencimiento y creador.
func (r *ExpenseRepo) ExistsByDescriptionAndDueDate(description string, dueDate time.Time, createdBy string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS (
			SELECT 1 FROM expenses
			WHERE lower(description) = lower($1) AND due_date = $2 AND created_by = $3)`,
		description, dueDate, createdBy,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists expense: %w", err)
	}
	return exists, nil
}

// ListRecurringAutoRenew devuelve los gastos recurrentes con auto-renovación
// (todas las ocurrencias; el caso de uso agrupa por serie).
func (r *ExpenseRepo) ListRecurringAutoRenew() ([]*entity.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE is_recurring AND auto_renew ORDER BY due_date, id`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list recurring expenses: %w", err)
	}
	defer rows.Close()
	var list []*entity.Expense
	for rows.Next() {
		exp, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		list = append(list, exp)
	}
	return list, rows.Err()
}

// LatestByDescription devuelve la ocurrencia con mayor vencimiento de una serie. (nil, nil) si no existe.
func (r *ExpenseRepo) LatestByDescription(description, createdBy string) (*entity.Expense, error) {
	query := `
		SELECT ` + expenseColumns + `
		FROM expenses
		WHERE lower(description) = lower($1) AND created_by = $2
		ORDER BY due_date DESC, id DESC LIMIT 1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, description, createdBy), "latest expense")
}

func (r *ExpenseRepo) scanOne(row pgx.Row, op string) (*entity.Expense, error) {
	exp, err := scanExpense(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return exp, nil
}

func scanExpense(row pgx.Row) (*entity.Expense, error) {
	var exp entity.Expense
	err := row.Scan(
		&exp.ID, &exp.Description, &exp.Amount, &exp.CategoryID, &exp.DueDate, &exp.IsPaid, &exp.PaidDate,
		&exp.IsRecurring, &exp.Frequency, &exp.AdvanceDays, &exp.AutoRenew, &exp.Notes,
		&exp.CreatedBy, &exp.CreatedAt, &exp.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &exp, nil
}

// ExpenseCategoryRepo implementación del puerto ExpenseCategoryRepository sobre PostgreSQL.
type ExpenseCategoryRepo struct {
	q Querier
}

// NewExpenseCategoryRepository construye el adaptador de categorías de gasto.
func NewExpenseCategoryRepository(q Querier) *ExpenseCategoryRepo {
	return &ExpenseCategoryRepo{q: q}
}

// Create persiste una categoría nueva y rellena su ID.
func (r *ExpenseCategoryRepo) Create(category *entity.ExpenseCategory) error {
	query := `
		INSERT INTO expense_categories (name, color, description, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		category.Name, category.Color, category.Description, category.CreatedAt,
	).Scan(&category.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert expense category: %w", err)
	}
	return nil
}

// GetByID obtiene una categoría por ID. (nil, nil) si no existe.
func (r *ExpenseCategoryRepo) GetByID(id int64) (*entity.ExpenseCategory, error) {
	var c entity.ExpenseCategory
	err := r.q.QueryRow(context.Background(),
		`SELECT id, name, color, description, created_at FROM expense_categories WHERE id = $1`, id,
	).Scan(&c.ID, &c.Name, &c.Color, &c.Description, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get expense category: %w", err)
	}
	return &c, nil
}

// List lista todas las categorías ordenadas por nombre.
func (r *ExpenseCategoryRepo) List() ([]*entity.ExpenseCategory, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id, name, color, description, created_at FROM expense_categories ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list expense categories: %w", err)
	}
	defer rows.Close()
	var list []*entity.ExpenseCategory
	for rows.Next() {
		var c entity.ExpenseCategory
		if err := rows.Scan(&c.ID, &c.Name, &c.Color, &c.Description, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan expense category: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}
