package repository

import (
	"context"

	"github.com/shopspring/decimal"
)

// ProductRepository define el puerto de lectura de productos (DIP).
type ProductRepository interface {
	// Exists indica si el producto existe. La ausencia no es un error.
	Exists(ctx context.Context, id int) (bool, error)
	// UnitPrice devuelve el precio unitario vigente; domain.ErrPriceNotFound si no hay fila.
	UnitPrice(ctx context.Context, id int) (decimal.Decimal, error)
}
