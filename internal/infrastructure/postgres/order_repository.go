package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Recepcion-api/internal/domain"
	"github.com/jhoicas/Recepcion-api/internal/domain/entity"
	"github.com/jhoicas/Recepcion-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo implementación de OrderRepository sobre PostgreSQL (usable con pool o tx).
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador de órdenes. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

// FindMatching obtiene la orden más antigua (empate por menor id) del producto y cantidad dados,
// creada antes de receivedAt, y bloquea la fila (SELECT FOR UPDATE) hasta el fin de la tx.
func (r *OrderRepo) FindMatching(ctx context.Context, productID, amount int, receivedAt time.Time) (*entity.Order, error) {
	query := `
		SELECT id_order, id_product, amount, created_at, fulfilled_at
		FROM orders
		WHERE id_product = $1 AND amount = $2 AND created_at < $3
		ORDER BY created_at, id_order
		LIMIT 1
		FOR UPDATE`
	var o entity.Order
	err := r.q.QueryRow(ctx, query, productID, amount, receivedAt).Scan(
		&o.ID, &o.ProductID, &o.Amount, &o.CreatedAt, &o.FulfilledAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find matching order: %w", err)
	}
	return &o, nil
}

// MarkFulfilled fija fulfilled_at una sola vez.
func (r *OrderRepo) MarkFulfilled(ctx context.Context, id int, at time.Time) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE orders SET fulfilled_at = $2 WHERE id_order = $1 AND fulfilled_at IS NULL`,
		id, at,
	)
	if err != nil {
		return fmt.Errorf("mark order fulfilled: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrConflict
	}
	return nil
}
