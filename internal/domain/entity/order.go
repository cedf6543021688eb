package entity

import "time"

// Order representa una orden de compra colocada por el proceso de pedidos.
// FulfilledAt es nil hasta que una única recepción la marca; después no cambia.
type Order struct {
	ID          int
	ProductID   int
	Amount      int
	CreatedAt   time.Time
	FulfilledAt *time.Time
}

// IsFulfilled indica si la orden ya fue recibida.
func (o Order) IsFulfilled() bool {
	return o.FulfilledAt != nil
}
