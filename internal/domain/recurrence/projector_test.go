package recurrence_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lapstock/lapstock-api/internal/domain/entity"
	"github.com/lapstock/lapstock-api/internal/domain/recurrence"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func recurring(due time.Time, frequency string) *entity.Expense {
	return &entity.Expense{
		Description: "Renta local",
		Amount:      decimal.NewFromInt(500),
		CategoryID:  1,
		DueDate:     due,
		IsRecurring: true,
		Frequency:   frequency,
		AdvanceDays: 7,
		AutoRenew:   true,
		CreatedBy:   "00000000-0000-0000-0000-000000000001",
	}
}

// ── Avance por periodo ────────────────────────────────────────────────────────

func TestNextPeriodDate_DiariaYSemanal(t *testing.T) {
	from := date(2025, time.March, 10)

	assert.Equal(t, date(2025, time.March, 11),
		recurrence.NextPeriodDate(entity.FrequencyDaily, from, 10))
	assert.Equal(t, date(2025, time.March, 17),
		recurrence.NextPeriodDate(entity.FrequencyWeekly, from, 10))
}

func TestNextPeriodDate_MensualRecortaMesesCortos(t *testing.T) {
	// 31 Ene -> 28 Feb (no bisiesto), nunca 3 Mar
	got := recurrence.NextPeriodDate(entity.FrequencyMonthly, date(2025, time.January, 31), 31)
	assert.Equal(t, date(2025, time.February, 28), got)

	// En bisiesto el recorte es al 29
	got = recurrence.NextPeriodDate(entity.FrequencyMonthly, date(2024, time.January, 31), 31)
	assert.Equal(t, date(2024, time.February, 29), got)
}

// El día objetivo sale SIEMPRE del ancla original, recalculado en cada paso:
// el recorte de febrero no se arrastra a marzo.
func TestNextPeriodDate_RecorteNoSeArrastra(t *testing.T) {
	anchorDay := 31 // ancla 31 Ene 2024 (bisiesto)

	paso1 := recurrence.NextPeriodDate(entity.FrequencyMonthly, date(2024, time.January, 31), anchorDay)
	paso2 := recurrence.NextPeriodDate(entity.FrequencyMonthly, paso1, anchorDay)
	paso3 := recurrence.NextPeriodDate(entity.FrequencyMonthly, paso2, anchorDay)

	assert.Equal(t, date(2024, time.February, 29), paso1, "Ene 31 -> Feb 29 (bisiesto)")
	assert.Equal(t, date(2024, time.March, 31), paso2, "Feb 29 -> Mar 31, no Mar 29")
	assert.Equal(t, date(2024, time.April, 30), paso3, "Mar 31 -> Abr 30")
}

func TestNextPeriodDate_MensualDiciembreEnero(t *testing.T) {
	got := recurrence.NextPeriodDate(entity.FrequencyMonthly, date(2024, time.December, 15), 15)
	assert.Equal(t, date(2025, time.January, 15), got, "diciembre debe avanzar al enero del año siguiente")
}

func TestNextPeriodDate_AnualRecortaBisiesto(t *testing.T) {
	// 29 Feb 2024 -> 28 Feb 2025
	got := recurrence.NextPeriodDate(entity.FrequencyYearly, date(2024, time.February, 29), 29)
	assert.Equal(t, date(2025, time.February, 28), got)

	// Fechas normales conservan mes y día
	got = recurrence.NextPeriodDate(entity.FrequencyYearly, date(2024, time.July, 4), 4)
	assert.Equal(t, date(2025, time.July, 4), got)
}

func TestNextPeriodDate_FrecuenciaDesconocidaNoAvanza(t *testing.T) {
	from := date(2025, time.March, 10)
	assert.Equal(t, from, recurrence.NextPeriodDate("quincenal", from, 10))
	assert.Equal(t, from, recurrence.NextPeriodDate("", from, 10))
}

// ── Próxima ocurrencia ────────────────────────────────────────────────────────

func TestNextDueDate_AnclaFuturaEsLaProxima(t *testing.T) {
	e := recurring(date(2025, time.June, 20), entity.FrequencyMonthly)

	got := recurrence.NextDueDate(e, date(2025, time.June, 1))
	require.NotNil(t, got)
	assert.Equal(t, date(2025, time.June, 20), *got, "un ancla futura no necesita avance")
}

func TestNextDueDate_AvanzaDesdeAnclaPasada(t *testing.T) {
	e := recurring(date(2025, time.January, 15), entity.FrequencyMonthly)

	got := recurrence.NextDueDate(e, date(2025, time.March, 1))
	require.NotNil(t, got)
	assert.Equal(t, date(2025, time.March, 15), *got)
}

func TestNextDueDate_NoRecurrenteEsNil(t *testing.T) {
	e := recurring(date(2025, time.January, 15), entity.FrequencyMonthly)
	e.IsRecurring = false

	assert.Nil(t, recurrence.NextDueDate(e, date(2025, time.March, 1)))
}

func TestNextDueDate_SinVencimientoEsNil(t *testing.T) {
	e := recurring(time.Time{}, entity.FrequencyMonthly)

	assert.Nil(t, recurrence.NextDueDate(e, date(2025, time.March, 1)))
}

// Una frecuencia malformada no avanza; el tope de seguridad debe responder
// "sin próxima ocurrencia" en lugar de colgarse.
func TestNextDueDate_FrecuenciaMalformadaDevuelveNil(t *testing.T) {
	e := recurring(date(2024, time.January, 1), "cada-luna-llena")

	assert.Nil(t, recurrence.NextDueDate(e, date(2025, time.March, 1)))
}

func TestNextDueDate_AnclaMuyAntiguaDentroDelTope(t *testing.T) {
	// ~26 meses de atraso: muy por debajo de los 100 avances permitidos
	e := recurring(date(2023, time.January, 31), entity.FrequencyMonthly)

	got := recurrence.NextDueDate(e, date(2025, time.March, 10))
	require.NotNil(t, got)
	assert.Equal(t, date(2025, time.March, 31), *got)
}

// ── Materialización ───────────────────────────────────────────────────────────

func TestGenerateNextOccurrence_CopiaCamposYNoPaga(t *testing.T) {
	e := recurring(date(2025, time.January, 15), entity.FrequencyMonthly)
	e.Notes = "pago en efectivo"

	next := recurrence.GenerateNextOccurrence(e, date(2025, time.March, 1))
	require.NotNil(t, next)

	assert.Equal(t, date(2025, time.March, 15), next.DueDate)
	assert.False(t, next.IsPaid, "la nueva ocurrencia nace sin pagar")
	assert.Nil(t, next.PaidDate)
	assert.Zero(t, next.ID, "es una instancia nueva, no una mutación de la base")
	assert.Equal(t, e.Description, next.Description)
	assert.True(t, e.Amount.Equal(next.Amount))
	assert.Equal(t, e.CategoryID, next.CategoryID)
	assert.Equal(t, e.Frequency, next.Frequency)
	assert.Equal(t, e.AdvanceDays, next.AdvanceDays)
	assert.Equal(t, e.AutoRenew, next.AutoRenew)
	assert.Equal(t, e.Notes, next.Notes)
	assert.Equal(t, e.CreatedBy, next.CreatedBy)
}

func TestGenerateNextOccurrence_NoRecurrenteEsNil(t *testing.T) {
	e := recurring(date(2025, time.January, 15), entity.FrequencyMonthly)
	e.IsRecurring = false

	assert.Nil(t, recurrence.GenerateNextOccurrence(e, date(2025, time.March, 1)))
}

// ── Derivados simples ─────────────────────────────────────────────────────────

func TestIsOverdueYDaysUntil(t *testing.T) {
	today := date(2025, time.March, 10)

	vencido := recurring(date(2025, time.March, 1), entity.FrequencyMonthly)
	assert.True(t, vencido.IsOverdue(today))
	assert.Equal(t, -9, vencido.DaysUntil(today))

	porVencer := recurring(date(2025, time.March, 20), entity.FrequencyMonthly)
	assert.False(t, porVencer.IsOverdue(today))
	assert.Equal(t, 10, porVencer.DaysUntil(today))

	pagado := recurring(date(2025, time.March, 1), entity.FrequencyMonthly)
	pagado.IsPaid = true
	assert.False(t, pagado.IsOverdue(today), "un gasto pagado nunca está vencido")
	assert.Equal(t, 0, pagado.DaysUntil(today))
}
