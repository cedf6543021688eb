package inventory

import (
	"context"

	"github.com/jhoicas/Recepcion-api/internal/application/dto"
)

// ToReceiptInput adapta el body HTTP a la entrada de los casos de uso de recepción.
func ToReceiptInput(in dto.ReceiveProductRequest) ReceiptInput {
	return ReceiptInput{
		WarehouseID: in.WarehouseID,
		ProductID:   in.ProductID,
		Amount:      in.Amount,
		ReceivedAt:  in.CreatedAt,
	}
}

// FulfillOrderFromRequest adapta el request HTTP al caso de uso FulfillOrder(ctx, ReceiptInput).
func (uc *FulfillOrderUseCase) FulfillOrderFromRequest(ctx context.Context, in dto.ReceiveProductRequest) (int, error) {
	return uc.FulfillOrder(ctx, ToReceiptInput(in))
}

// FulfillFromRequest adapta el request HTTP al caso de uso del procedimiento almacenado.
func (uc *FulfillViaRoutineUseCase) FulfillFromRequest(ctx context.Context, in dto.ReceiveProductRequest) (int, error) {
	return uc.Fulfill(ctx, ToReceiptInput(in))
}
