package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Recepcion-api/internal/domain/entity"
)

const auditTimeout = 2 * time.Minute

// Auditor revisa la consistencia entre órdenes y product_warehouse.
type Auditor interface {
	Run(ctx context.Context) ([]entity.FulfillmentDiscrepancy, error)
}

// Scheduler ejecuta la auditoría periódica de recepciones.
type Scheduler struct {
	cron    *cron.Cron
	spec    string
	auditor Auditor
	log     zerolog.Logger
}

// New crea el scheduler. spec es una expresión cron estándar de 5 campos (min, hora, día, mes, día semana).
func New(spec string, auditor Auditor, log zerolog.Logger) *Scheduler {
	return &Scheduler{
		cron:    cron.New(),
		spec:    spec,
		auditor: auditor,
		log:     log.With().Str("component", "scheduler").Logger(),
	}
}

// Start registra la auditoría y arranca el cron. Una expresión inválida se devuelve como error.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.spec, s.runAudit); err != nil {
		return fmt.Errorf("programar auditoría %q: %w", s.spec, err)
	}
	s.log.Info().Str("cron", s.spec).Msg("scheduler iniciado")
	s.cron.Start()
	return nil
}

// Stop detiene el cron y espera a que termine la ejecución en curso o a que ctx expire.
func (s *Scheduler) Stop(ctx context.Context) {
	s.log.Info().Msg("deteniendo scheduler")
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
		s.log.Warn().Msg("auditoría en curso no terminó antes del apagado")
	}
}

func (s *Scheduler) runAudit() {
	ctx, cancel := context.WithTimeout(context.Background(), auditTimeout)
	defer cancel()

	start := time.Now()
	list, err := s.auditor.Run(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("auditoría de recepciones fallida")
		return
	}
	s.log.Info().
		Int("discrepancies", len(list)).
		Dur("elapsed", time.Since(start)).
		Msg("auditoría de recepciones completada")
}
