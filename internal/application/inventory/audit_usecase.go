package inventory

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/jhoicas/Recepcion-api/internal/domain"
	"github.com/jhoicas/Recepcion-api/internal/domain/entity"
	"github.com/jhoicas/Recepcion-api/internal/domain/repository"
)

// AuditUseCase revisa que fulfilled_at de cada orden concuerde con sus movimientos:
// una orden recibida tiene exactamente un movimiento y una orden sin recibir ninguno.
type AuditUseCase struct {
	movementRepo repository.StockMovementRepository
	log          zerolog.Logger
}

// NewAuditUseCase construye el caso de uso de auditoría.
func NewAuditUseCase(movementRepo repository.StockMovementRepository, log zerolog.Logger) *AuditUseCase {
	return &AuditUseCase{
		movementRepo: movementRepo,
		log:          log.With().Str("component", "fulfillment_audit").Logger(),
	}
}

// Run devuelve las discrepancias encontradas y registra cada una como error en el log.
func (uc *AuditUseCase) Run(ctx context.Context) ([]entity.FulfillmentDiscrepancy, error) {
	list, err := uc.movementRepo.FindDiscrepancies(ctx)
	if err != nil {
		return nil, domain.SystemFault("auditar recepciones", err)
	}
	for _, d := range list {
		ev := uc.log.Error().Int("id_order", d.OrderID).Int("movements", d.Movements)
		if d.FulfilledAt != nil {
			ev = ev.Time("fulfilled_at", *d.FulfilledAt)
		}
		ev.Msg("orden inconsistente con sus movimientos")
	}
	uc.log.Info().Int("discrepancies", len(list)).Msg("auditoría de recepciones terminada")
	return list, nil
}
