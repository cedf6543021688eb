package entity

import "github.com/shopspring/decimal"

// Product representa un producto del catálogo. Price es el precio unitario vigente;
// la recepción de mercancía solo lo lee para congelar el valor del movimiento.
type Product struct {
	ID          int
	Name        string
	Description string
	Price       decimal.Decimal
}
