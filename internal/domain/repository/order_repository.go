package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Recepcion-api/internal/domain/entity"
)

// OrderRepository define el puerto de persistencia para órdenes de compra.
type OrderRepository interface {
	// FindMatching busca la orden del producto y cantidad dados creada estrictamente antes de
	// receivedAt. Regla única: created_at más antiguo, empate por menor id. Dentro de una
	// transacción bloquea la fila elegida. Devuelve (nil, nil) si no hay coincidencia.
	FindMatching(ctx context.Context, productID, amount int, receivedAt time.Time) (*entity.Order, error)
	// MarkFulfilled fija fulfilled_at solo si aún es NULL; si no actualiza nada devuelve domain.ErrConflict.
	MarkFulfilled(ctx context.Context, id int, at time.Time) error
}
