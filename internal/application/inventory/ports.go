package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/Recepcion-api/internal/domain/entity"
	"github.com/jhoicas/Recepcion-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza atomicidad de la recepción: si fn devuelve error se hace Rollback de todo.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		orderRepo repository.OrderRepository,
		movementRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
	) error) error
}

// ReceiptInput datos de una recepción de mercancía en bodega.
type ReceiptInput struct {
	WarehouseID int
	ProductID   int
	Amount      int
	ReceivedAt  time.Time
}

// ExternalRoutine delega la recepción completa a un procedimiento almacenado.
// Devuelve el id del movimiento creado o el error que el procedimiento levante.
type ExternalRoutine interface {
	AddProductToWarehouse(ctx context.Context, in ReceiptInput) (int, error)
}

// EventPublisher notifica movimientos ya confirmados a otros sistemas.
type EventPublisher interface {
	PublishStockReceived(ctx context.Context, movement entity.StockMovement) error
}

// NopPublisher descarta los eventos (Kafka no configurado).
type NopPublisher struct{}

// PublishStockReceived no hace nada.
func (NopPublisher) PublishStockReceived(context.Context, entity.StockMovement) error { return nil }
