// Package recurrence proyecta fechas de gastos recurrentes: calcula la próxima
// ocurrencia de una secuencia anclada en la fecha de vencimiento original y
// materializa (sin persistir) la instancia del siguiente periodo.
package recurrence

import (
	"time"

	"github.com/lapstock/lapstock-api/internal/domain/entity"
)

// maxAdvanceSteps acota el avance periodo a periodo. Una frecuencia malformada
// no avanza, así que sin tope el bucle no terminaría; al agotar el tope se
// responde "sin próxima ocurrencia" en lugar de un error.
const maxAdvanceSteps = 100

// NextPeriodDate avanza una fecha exactamente un periodo según la frecuencia.
// anchorDay es el día del mes del vencimiento ORIGINAL: en avances mensuales el
// día destino es min(anchorDay, último día del mes destino), recalculado en cada
// paso — Ene 31 -> Feb 28 -> Mar 31, no Mar 28. Una frecuencia desconocida
// devuelve la misma fecha (no avanza).
func NextPeriodDate(frequency string, from time.Time, anchorDay int) time.Time {
	from = entity.DateOnly(from)
	switch frequency {
	case entity.FrequencyDaily:
		return from.AddDate(0, 0, 1)
	case entity.FrequencyWeekly:
		return from.AddDate(0, 0, 7)
	case entity.FrequencyMonthly:
		year, month := from.Year(), from.Month()+1
		if month > time.December {
			month = time.January
			year++
		}
		day := anchorDay
		if last := lastDayOfMonth(year, month); day > last {
			day = last
		}
		return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	case entity.FrequencyYearly:
		year := from.Year() + 1
		day := from.Day()
		if last := lastDayOfMonth(year, from.Month()); day > last {
			day = last // 29 Feb -> 28 Feb en años no bisiestos
		}
		return time.Date(year, from.Month(), day, 0, 0, 0, 0, time.UTC)
	}
	return from
}

// NextDueDate calcula la fecha de la próxima ocurrencia de un gasto recurrente
// respecto de today. Es una consulta pura: no muta el gasto.
//   - nil si el gasto no es recurrente o no tiene fecha de vencimiento.
//   - Si el vencimiento ancla es futuro estricto, esa es la próxima ocurrencia.
//   - Si no, avanza ocurrencia a ocurrencia desde el ancla hasta superar today.
//   - nil si se agota el tope de avances sin superar today (frecuencia malformada).
func NextDueDate(e *entity.Expense, today time.Time) *time.Time {
	if !e.IsRecurring || e.DueDate.IsZero() {
		return nil
	}

	today = entity.DateOnly(today)
	next := entity.DateOnly(e.DueDate)
	if next.After(today) {
		return &next
	}

	anchorDay := e.DueDate.Day()
	for steps := 0; !next.After(today); steps++ {
		if steps >= maxAdvanceSteps {
			return nil
		}
		next = NextPeriodDate(e.Frequency, next, anchorDay)
	}
	return &next
}

// GenerateNextOccurrence construye la instancia del siguiente periodo: un gasto
// NUEVO sin pagar con la próxima fecha de vencimiento, copiando descripción,
// monto, categoría, frecuencia, aviso, auto-renovación, notas y creador.
// No persiste nada (el commit es responsabilidad del caller). Devuelve nil si
// el gasto no es recurrente o no hay próxima ocurrencia.
func GenerateNextOccurrence(e *entity.Expense, today time.Time) *entity.Expense {
	if !e.IsRecurring {
		return nil
	}
	next := NextDueDate(e, today)
	if next == nil {
		return nil
	}
	return &entity.Expense{
		Description: e.Description,
		Amount:      e.Amount,
		CategoryID:  e.CategoryID,
		DueDate:     *next,
		IsPaid:      false,
		IsRecurring: true,
		Frequency:   e.Frequency,
		AdvanceDays: e.AdvanceDays,
		AutoRenew:   e.AutoRenew,
		Notes:       e.Notes,
		CreatedBy:   e.CreatedBy,
	}
}

// lastDayOfMonth devuelve el último día válido del mes (el día 0 del mes
// siguiente normaliza al último del anterior).
func lastDayOfMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
