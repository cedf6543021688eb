package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Recepcion-api/internal/application/inventory"
	"github.com/jhoicas/Recepcion-api/internal/domain"
	"github.com/jhoicas/Recepcion-api/internal/domain/repository"
)

// Ensure TxRunner implements inventory.TxRunner.
var _ inventory.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	db TxBeginner
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(db TxBeginner) *TxRunner {
	return &TxRunner{db: db}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
// La conexión vuelve al pool en todas las salidas (Rollback tras Commit no tiene efecto).
func (r *TxRunner) Run(ctx context.Context, fn func(
	orderRepo repository.OrderRepository,
	movementRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
) error) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	orderRepo := NewOrderRepository(tx)
	movementRepo := NewStockMovementRepository(tx)
	productRepo := NewProductRepository(tx)

	if err := fn(orderRepo, movementRepo, productRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("commit transaction: %w", domain.ErrConflict)
		}
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
