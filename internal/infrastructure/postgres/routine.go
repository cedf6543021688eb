package postgres

import (
	"context"
	"errors"

	"github.com/jhoicas/Recepcion-api/internal/application/inventory"
)

var _ inventory.ExternalRoutine = (*RoutineAdapter)(nil)

// RoutineAdapter invoca el procedimiento almacenado add_product_to_warehouse, que ejecuta la
// recepción completa del lado del servidor.
type RoutineAdapter struct {
	q Querier
}

// NewRoutineAdapter construye el adaptador del procedimiento.
func NewRoutineAdapter(q Querier) *RoutineAdapter {
	return &RoutineAdapter{q: q}
}

// AddProductToWarehouse devuelve el id creado por el procedimiento. Los errores levantados por
// el procedimiento (RAISE EXCEPTION) se devuelven con el mensaje del servidor.
func (r *RoutineAdapter) AddProductToWarehouse(ctx context.Context, in inventory.ReceiptInput) (int, error) {
	var id int
	err := r.q.QueryRow(ctx,
		`SELECT add_product_to_warehouse($1, $2, $3, $4)`,
		in.WarehouseID, in.ProductID, in.Amount, in.ReceivedAt,
	).Scan(&id)
	if err != nil {
		return 0, errors.New(pgMessage(err))
	}
	return id, nil
}
