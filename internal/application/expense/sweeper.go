package expense

import (
	"context"
	"time"

	"github.com/lapstock/lapstock-api/pkg/logger"
)

// Sweeper ejecuta SyncRecurring de forma periódica en segundo plano, para que
// las series recurrentes se renueven aunque nadie marque pagos ni llame al
// endpoint de sincronización.
type Sweeper struct {
	uc       *UseCase
	interval time.Duration
	log      *logger.Logger
}

// NewSweeper construye el barredor. interval <= 0 usa 1h.
func NewSweeper(uc *UseCase, interval time.Duration, log *logger.Logger) *Sweeper {
	if interval <= 0 {
		interval = time.Hour
	}
	return &Sweeper{uc: uc, interval: interval, log: log}
}

// Run bloquea hasta que el contexto se cancele. Hace una pasada inmediata al
// arrancar y luego una por tick. Los errores se loguean y no detienen el bucle.
func (s *Sweeper) Run(ctx context.Context) {
	s.log.Info().Dur("interval", s.interval).Msg("barrido de gastos recurrentes iniciado")

	s.sweep()
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.log.Info().Msg("barrido de gastos recurrentes detenido")
			return
		case <-ticker.C:
			s.sweep()
		}
	}
}

func (s *Sweeper) sweep() {
	res, err := s.uc.SyncRecurring()
	if err != nil {
		s.log.Error().Err(err).Msg("barrido de gastos recurrentes falló")
		return
	}
	if res.Created > 0 {
		s.log.Info().Int("created", res.Created).Msg("ocurrencias recurrentes materializadas")
	}
}
