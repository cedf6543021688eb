// Package fulfillment contiene las reglas puras de la recepción de mercancía contra órdenes
// de compra (servicios de dominio sin I/O).
package fulfillment

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Recepcion-api/internal/domain"
	"github.com/jhoicas/Recepcion-api/internal/domain/entity"
)

// ValidateAmount exige una cantidad positiva.
func ValidateAmount(amount int) error {
	if amount <= 0 {
		return domain.ErrInvalidAmount
	}
	return nil
}

// TotalPrice calcula el valor del movimiento: PrecioUnitario * Cantidad.
func TotalPrice(unitPrice decimal.Decimal, amount int) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(amount)))
}

// Precedes indica si la orden fue colocada estrictamente antes de la recepción.
func Precedes(order entity.Order, receivedAt time.Time) bool {
	return order.CreatedAt.Before(receivedAt)
}

// Matches indica si la orden corresponde a la recepción: mismo producto, misma cantidad y
// colocada antes de receivedAt. El estado de recepción no forma parte de la coincidencia.
func Matches(order entity.Order, productID, amount int, receivedAt time.Time) bool {
	return order.ProductID == productID && order.Amount == amount && Precedes(order, receivedAt)
}

// PickMatch elige la orden que corresponde a la recepción entre varias candidatas.
// Regla: created_at más antiguo; empate por menor id. Es la misma regla que aplica la consulta
// SQL (ORDER BY created_at, id_order LIMIT 1).
func PickMatch(orders []entity.Order, productID, amount int, receivedAt time.Time) (entity.Order, bool) {
	var candidates []entity.Order
	for _, o := range orders {
		if Matches(o, productID, amount, receivedAt) {
			candidates = append(candidates, o)
		}
	}
	if len(candidates) == 0 {
		return entity.Order{}, false
	}
	sort.Slice(candidates, func(i, j int) bool {
		if !candidates[i].CreatedAt.Equal(candidates[j].CreatedAt) {
			return candidates[i].CreatedAt.Before(candidates[j].CreatedAt)
		}
		return candidates[i].ID < candidates[j].ID
	})
	return candidates[0], true
}
