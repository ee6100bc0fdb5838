package expense

import (
	"strings"
	"time"

	"github.com/lapstock/lapstock-api/internal/application/dto"
	"github.com/lapstock/lapstock-api/internal/domain"
	"github.com/lapstock/lapstock-api/internal/domain/entity"
	"github.com/lapstock/lapstock-api/internal/domain/recurrence"
	"github.com/lapstock/lapstock-api/internal/domain/repository"
)

// dateLayout formato de fecha de la API de gastos.
const dateLayout = "2006-01-02"

// Topes del barrido de renovación: máximo de ocurrencias materializadas por
// serie y por pasada completa. Una serie diaria muy atrasada no debe monopolizar
// la pasada; lo que falte lo recoge la siguiente.
const (
	maxPerSeries = 24
	maxPerSweep  = 100
)

// UseCase gestiona gastos operativos y su renovación recurrente.
type UseCase struct {
	expenseRepo  repository.ExpenseRepository
	categoryRepo repository.ExpenseCategoryRepository
	now          func() time.Time
}

// NewUseCase construye el caso de uso.
func NewUseCase(expenseRepo repository.ExpenseRepository, categoryRepo repository.ExpenseCategoryRepository) *UseCase {
	return &UseCase{
		expenseRepo:  expenseRepo,
		categoryRepo: categoryRepo,
		now:          time.Now,
	}
}

// Create da de alta un gasto. DueDate llega como 2006-01-02 y se normaliza a
// medianoche UTC para que la aritmética de recurrencia sea estable.
func (uc *UseCase) Create(createdBy string, in dto.CreateExpenseRequest) (*dto.ExpenseResponse, error) {
	description := strings.TrimSpace(in.Description)
	if description == "" {
		return nil, domain.ErrInvalidInput
	}
	dueDate, err := time.Parse(dateLayout, in.DueDate)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}

	now := uc.now()
	exp := &entity.Expense{
		Description: description,
		Amount:      in.Amount,
		CategoryID:  in.CategoryID,
		DueDate:     entity.DateOnly(dueDate),
		IsRecurring: in.IsRecurring,
		Frequency:   strings.ToLower(strings.TrimSpace(in.Frequency)),
		AdvanceDays: in.AdvanceDays,
		AutoRenew:   in.AutoRenew,
		Notes:       in.Notes,
		CreatedBy:   createdBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.expenseRepo.Create(exp); err != nil {
		return nil, err
	}
	resp := uc.toResponse(exp)
	return &resp, nil
}

// GetByID devuelve un gasto o domain.ErrNotFound.
func (uc *UseCase) GetByID(id int64) (*dto.ExpenseResponse, error) {
	exp, err := uc.expenseRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if exp == nil {
		return nil, domain.ErrNotFound
	}
	resp := uc.toResponse(exp)
	return &resp, nil
}

// List lista gastos con paginación.
func (uc *UseCase) List(limit, offset int) (*dto.ExpenseListResponse, error) {
	expenses, err := uc.expenseRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ExpenseResponse, 0, len(expenses))
	for _, exp := range expenses {
		out = append(out, uc.toResponse(exp))
	}
	return &dto.ExpenseListResponse{
		Items: out,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Update actualización parcial de un gasto.
func (uc *UseCase) Update(id int64, in dto.UpdateExpenseRequest) (*dto.ExpenseResponse, error) {
	exp, err := uc.expenseRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if exp == nil {
		return nil, domain.ErrNotFound
	}

	if in.Description != nil && strings.TrimSpace(*in.Description) != "" {
		exp.Description = strings.TrimSpace(*in.Description)
	}
	if in.Amount != nil {
		exp.Amount = *in.Amount
	}
	if in.CategoryID != nil {
		exp.CategoryID = *in.CategoryID
	}
	if in.DueDate != nil {
		dueDate, err := time.Parse(dateLayout, *in.DueDate)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		exp.DueDate = entity.DateOnly(dueDate)
	}
	if in.IsRecurring != nil {
		exp.IsRecurring = *in.IsRecurring
	}
	if in.Frequency != nil {
		exp.Frequency = strings.ToLower(strings.TrimSpace(*in.Frequency))
	}
	if in.AdvanceDays != nil {
		exp.AdvanceDays = *in.AdvanceDays
	}
	if in.AutoRenew != nil {
		exp.AutoRenew = *in.AutoRenew
	}
	if in.Notes != nil {
		exp.Notes = *in.Notes
	}
	exp.UpdatedAt = uc.now()

	if err := uc.expenseRepo.Update(exp); err != nil {
		return nil, err
	}
	resp := uc.toResponse(exp)
	return &resp, nil
}

// MarkPaid marca un gasto como pagado y, si es recurrente con auto-renovación,
// materializa la ocurrencia del siguiente periodo (salvo que ya exista una con
// la misma descripción, vencimiento y creador). Marcar pagado dos veces es
// idempotente: la segunda llamada no genera nada.
func (uc *UseCase) MarkPaid(id int64) (*dto.ExpenseResponse, error) {
	exp, err := uc.expenseRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if exp == nil {
		return nil, domain.ErrNotFound
	}

	now := uc.now()
	alreadyPaid := exp.IsPaid
	exp.IsPaid = true
	if exp.PaidDate == nil {
		paid := entity.DateOnly(now)
		exp.PaidDate = &paid
	}
	exp.UpdatedAt = now
	if err := uc.expenseRepo.Update(exp); err != nil {
		return nil, err
	}

	if !alreadyPaid && exp.IsRecurring && exp.AutoRenew {
		if _, err := uc.renewFrom(exp, now); err != nil {
			return nil, err
		}
	}

	resp := uc.toResponse(exp)
	return &resp, nil
}

// SyncRecurring barrido de catch-up: para cada serie recurrente con
// auto-renovación, materializa las ocurrencias que falten desde la más reciente
// hasta dejar exactamente una con vencimiento futuro. Acotado por serie y por
// pasada; idempotente gracias al chequeo de duplicados.
func (uc *UseCase) SyncRecurring() (*dto.SyncRecurringResponse, error) {
	bases, err := uc.expenseRepo.ListRecurringAutoRenew()
	if err != nil {
		return nil, err
	}

	today := entity.DateOnly(uc.now())
	created := 0

	// Una serie = (descripción, creador). El ancla de la serie es el vencimiento
	// más antiguo visto: de él sale el día del mes para el clamp mensual.
	type seriesKey struct {
		description string
		createdBy   string
	}
	anchors := make(map[seriesKey]time.Time)
	for _, base := range bases {
		key := seriesKey{base.Description, base.CreatedBy}
		if anchor, ok := anchors[key]; !ok || base.DueDate.Before(anchor) {
			anchors[key] = base.DueDate
		}
	}

	for key, anchor := range anchors {
		if created >= maxPerSweep {
			break
		}
		latest, err := uc.expenseRepo.LatestByDescription(key.description, key.createdBy)
		if err != nil {
			return nil, err
		}
		if latest == nil {
			continue
		}

		anchorDay := anchor.Day()
		cur := entity.DateOnly(latest.DueDate)
		for steps := 0; !cur.After(today) && steps < maxPerSeries && created < maxPerSweep; steps++ {
			next := recurrence.NextPeriodDate(latest.Frequency, cur, anchorDay)
			if !next.After(cur) {
				break // frecuencia malformada: no avanza
			}
			exists, err := uc.expenseRepo.ExistsByDescriptionAndDueDate(key.description, next, key.createdBy)
			if err != nil {
				return nil, err
			}
			if !exists {
				occ := occurrenceOf(latest, next, uc.now())
				if err := uc.expenseRepo.Create(occ); err != nil {
					return nil, err
				}
				created++
			}
			cur = next
		}
	}

	return &dto.SyncRecurringResponse{Created: created}, nil
}

// ListCategories lista las categorías de gasto.
func (uc *UseCase) ListCategories() ([]dto.ExpenseCategoryResponse, error) {
	categories, err := uc.categoryRepo.List()
	if err != nil {
		return nil, err
	}
	out := make([]dto.ExpenseCategoryResponse, 0, len(categories))
	for _, c := range categories {
		out = append(out, dto.ExpenseCategoryResponse{
			ID:          c.ID,
			Name:        c.Name,
			Color:       c.Color,
			Description: c.Description,
		})
	}
	return out, nil
}

// renewFrom materializa la siguiente ocurrencia de un gasto recién pagado.
// Devuelve true si se creó (false si ya existía o no hay próxima ocurrencia).
func (uc *UseCase) renewFrom(exp *entity.Expense, now time.Time) (bool, error) {
	next := recurrence.GenerateNextOccurrence(exp, now)
	if next == nil {
		return false, nil
	}
	exists, err := uc.expenseRepo.ExistsByDescriptionAndDueDate(next.Description, next.DueDate, next.CreatedBy)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}
	next.CreatedAt = now
	next.UpdatedAt = now
	if err := uc.expenseRepo.Create(next); err != nil {
		return false, err
	}
	return true, nil
}

// occurrenceOf construye la fila de una ocurrencia concreta de la serie.
func occurrenceOf(base *entity.Expense, dueDate, now time.Time) *entity.Expense {
	return &entity.Expense{
		Description: base.Description,
		Amount:      base.Amount,
		CategoryID:  base.CategoryID,
		DueDate:     dueDate,
		IsPaid:      false,
		IsRecurring: true,
		Frequency:   base.Frequency,
		AdvanceDays: base.AdvanceDays,
		AutoRenew:   base.AutoRenew,
		Notes:       base.Notes,
		CreatedBy:   base.CreatedBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func (uc *UseCase) toResponse(exp *entity.Expense) dto.ExpenseResponse {
	today := uc.now()
	resp := dto.ExpenseResponse{
		ID:          exp.ID,
		Description: exp.Description,
		Amount:      exp.Amount,
		CategoryID:  exp.CategoryID,
		DueDate:     exp.DueDate.Format(dateLayout),
		IsPaid:      exp.IsPaid,
		IsRecurring: exp.IsRecurring,
		Frequency:   exp.Frequency,
		AdvanceDays: exp.AdvanceDays,
		AutoRenew:   exp.AutoRenew,
		Notes:       exp.Notes,
		CreatedBy:   exp.CreatedBy,
		IsOverdue:   exp.IsOverdue(today),
		DaysUntil:   exp.DaysUntil(today),
	}
	if exp.PaidDate != nil {
		paid := exp.PaidDate.Format(dateLayout)
		resp.PaidDate = &paid
	}
	if next := recurrence.NextDueDate(exp, today); next != nil {
		s := next.Format(dateLayout)
		resp.NextDueDate = &s
	}
	switch {
	case exp.IsPaid:
		resp.Status = "paid"
	case resp.IsOverdue:
		resp.Status = "overdue"
	default:
		resp.Status = "pending"
	}
	return resp
}
