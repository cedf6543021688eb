package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Recepcion-api/internal/domain"
	"github.com/jhoicas/Recepcion-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Exists indica si existe el producto.
func (r *ProductRepo) Exists(ctx context.Context, id int) (bool, error) {
	var ok bool
	err := r.q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM products WHERE id_product = $1)`, id).Scan(&ok)
	if err != nil {
		return false, fmt.Errorf("product exists: %w", err)
	}
	return ok, nil
}

// UnitPrice obtiene el precio unitario vigente del producto.
func (r *ProductRepo) UnitPrice(ctx context.Context, id int) (decimal.Decimal, error) {
	var price decimal.Decimal
	err := r.q.QueryRow(ctx, `SELECT price FROM products WHERE id_product = $1`, id).Scan(&price)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, domain.ErrPriceNotFound
		}
		return decimal.Zero, fmt.Errorf("get product price: %w", err)
	}
	return price, nil
}
