package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Recepcion-api/internal/domain"
	"github.com/jhoicas/Recepcion-api/internal/domain/entity"
	"github.com/jhoicas/Recepcion-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo implementación sobre la tabla product_warehouse (usable con pool o tx).
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// ExistsForOrder indica si la orden ya tiene movimiento.
func (r *StockMovementRepo) ExistsForOrder(ctx context.Context, orderID int) (bool, error) {
	var ok bool
	err := r.q.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM product_warehouse WHERE id_order = $1)`, orderID,
	).Scan(&ok)
	if err != nil {
		return false, fmt.Errorf("movement exists for order: %w", err)
	}
	return ok, nil
}

// Create persiste el movimiento y asigna el id generado. El UNIQUE sobre id_order
// convierte una segunda inserción para la misma orden en domain.ErrConflict.
func (r *StockMovementRepo) Create(ctx context.Context, movement *entity.StockMovement) error {
	query := `
		INSERT INTO product_warehouse (id_warehouse, id_product, id_order, amount, total_price, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id_product_warehouse`
	err := r.q.QueryRow(ctx, query,
		movement.WarehouseID, movement.ProductID, movement.OrderID,
		movement.Amount, movement.TotalPrice, movement.CreatedAt,
	).Scan(&movement.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("create stock movement: %w", err)
	}
	return nil
}

// FindDiscrepancies lista órdenes recibidas sin exactamente un movimiento y órdenes sin
// recibir que ya tienen movimientos.
func (r *StockMovementRepo) FindDiscrepancies(ctx context.Context) ([]entity.FulfillmentDiscrepancy, error) {
	query := `
		SELECT o.id_order, o.fulfilled_at, COUNT(pw.id_product_warehouse) AS movements
		FROM orders o
		LEFT JOIN product_warehouse pw ON pw.id_order = o.id_order
		GROUP BY o.id_order, o.fulfilled_at
		HAVING (o.fulfilled_at IS NULL AND COUNT(pw.id_product_warehouse) > 0)
		    OR (o.fulfilled_at IS NOT NULL AND COUNT(pw.id_product_warehouse) <> 1)
		ORDER BY o.id_order`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("find discrepancies: %w", err)
	}
	defer rows.Close()
	var list []entity.FulfillmentDiscrepancy
	for rows.Next() {
		var d entity.FulfillmentDiscrepancy
		if err := rows.Scan(&d.OrderID, &d.FulfilledAt, &d.Movements); err != nil {
			return nil, fmt.Errorf("scan discrepancy: %w", err)
		}
		list = append(list, d)
	}
	return list, rows.Err()
}
