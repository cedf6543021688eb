package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockMovement es el registro inmutable de mercancía recibida en una bodega contra una orden
// (tabla product_warehouse). Existe a lo sumo uno por OrderID.
type StockMovement struct {
	ID          int
	WarehouseID int
	ProductID   int
	OrderID     int
	Amount      int
	TotalPrice  decimal.Decimal // precio unitario * cantidad, congelado al confirmar
	CreatedAt   time.Time       // fecha de recepción
}

// FulfillmentDiscrepancy describe una orden cuyo estado no concuerda con sus movimientos:
// marcada como recibida sin movimiento, con movimiento sin marca, o con más de un movimiento.
type FulfillmentDiscrepancy struct {
	OrderID     int
	FulfilledAt *time.Time
	Movements   int
}
