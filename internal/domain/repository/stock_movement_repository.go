package repository

import (
	"context"

	"github.com/jhoicas/Recepcion-api/internal/domain/entity"
)

// StockMovementRepository define el puerto de persistencia para movimientos de recepción
// (tabla product_warehouse).
type StockMovementRepository interface {
	// ExistsForOrder indica si la orden ya tiene un movimiento registrado.
	ExistsForOrder(ctx context.Context, orderID int) (bool, error)
	// Create inserta el movimiento y asigna movement.ID. Un segundo movimiento para la misma
	// orden devuelve domain.ErrConflict.
	Create(ctx context.Context, movement *entity.StockMovement) error
	// FindDiscrepancies lista órdenes cuyo fulfilled_at no concuerda con sus movimientos.
	FindDiscrepancies(ctx context.Context) ([]entity.FulfillmentDiscrepancy, error)
}
