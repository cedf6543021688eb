package dto

import "time"

// ReceiveProductRequest body para POST /api/warehouse y POST /api/warehouse/procedure.
// CreatedAt es la fecha de recepción; la orden debe haberse colocado antes.
type ReceiveProductRequest struct {
	ProductID   int       `json:"idProduct"`
	WarehouseID int       `json:"idWarehouse"`
	Amount      int       `json:"amount"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ReceiveProductResponse id del registro creado en product_warehouse.
type ReceiveProductResponse struct {
	ID int `json:"id"`
}
