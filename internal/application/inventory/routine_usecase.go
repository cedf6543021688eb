package inventory

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/jhoicas/Recepcion-api/internal/domain"
	"github.com/jhoicas/Recepcion-api/internal/domain/fulfillment"
)

// FulfillViaRoutineUseCase delega la recepción completa al procedimiento almacenado
// add_product_to_warehouse. Solo valida la cantidad antes de delegar.
type FulfillViaRoutineUseCase struct {
	routine ExternalRoutine
	log     zerolog.Logger
}

// NewFulfillViaRoutineUseCase construye el caso de uso.
func NewFulfillViaRoutineUseCase(routine ExternalRoutine, log zerolog.Logger) *FulfillViaRoutineUseCase {
	return &FulfillViaRoutineUseCase{
		routine: routine,
		log:     log.With().Str("component", "fulfillment_routine").Logger(),
	}
}

// Fulfill devuelve el id creado por el procedimiento. Cualquier error del procedimiento se
// devuelve como domain.ErrRoutineRejected (entrada inválida) con el mensaje original.
func (uc *FulfillViaRoutineUseCase) Fulfill(ctx context.Context, in ReceiptInput) (int, error) {
	if err := fulfillment.ValidateAmount(in.Amount); err != nil {
		return 0, err
	}
	id, err := uc.routine.AddProductToWarehouse(ctx, in)
	if err != nil {
		uc.log.Info().Err(err).
			Int("id_warehouse", in.WarehouseID).
			Int("id_product", in.ProductID).
			Int("amount", in.Amount).
			Msg("procedimiento rechazó la recepción")
		return 0, fmt.Errorf("%w: %s", domain.ErrRoutineRejected, err.Error())
	}
	uc.log.Info().Int("id_product_warehouse", id).Msg("recepción registrada por procedimiento")
	return id, nil
}
