package inventory

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/jhoicas/Recepcion-api/internal/domain"
	"github.com/jhoicas/Recepcion-api/internal/domain/entity"
	"github.com/jhoicas/Recepcion-api/internal/domain/fulfillment"
	"github.com/jhoicas/Recepcion-api/internal/domain/repository"
)

const tracerName = "github.com/jhoicas/Recepcion-api/internal/application/inventory"

// FulfillOrderUseCase registra la recepción de mercancía contra una orden de compra:
// valida, busca la orden, verifica que no se haya recibido y confirma el movimiento valorizado,
// todo en orden fijo y cortando en la primera falla.
type FulfillOrderUseCase struct {
	txRunner      TxRunner
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
	publisher     EventPublisher
	log           zerolog.Logger
	tracer        trace.Tracer
	now           func() time.Time
}

// NewFulfillOrderUseCase construye el caso de uso. publisher puede ser nil (no publica eventos).
func NewFulfillOrderUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
	publisher EventPublisher,
	log zerolog.Logger,
) *FulfillOrderUseCase {
	if publisher == nil {
		publisher = NopPublisher{}
	}
	return &FulfillOrderUseCase{
		txRunner:      txRunner,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
		publisher:     publisher,
		log:           log.With().Str("component", "fulfillment").Logger(),
		tracer:        otel.Tracer(tracerName),
		now:           time.Now,
	}
}

// FulfillOrder ejecuta la recepción y devuelve el id del movimiento creado.
// Errores: domain.ErrInvalidInput, domain.ErrNotFound, domain.ErrConflict o domain.ErrSystemFault
// (clasificar con errors.Is). Un error nunca deja cambios persistidos.
func (uc *FulfillOrderUseCase) FulfillOrder(ctx context.Context, in ReceiptInput) (int, error) {
	ctx, span := uc.tracer.Start(ctx, "inventory.FulfillOrder", trace.WithAttributes(
		attribute.Int("warehouse.id", in.WarehouseID),
		attribute.Int("product.id", in.ProductID),
		attribute.Int("receipt.amount", in.Amount),
	))
	defer span.End()

	log := uc.log.With().
		Str("operation_id", uuid.NewString()).
		Int("id_warehouse", in.WarehouseID).
		Int("id_product", in.ProductID).
		Int("amount", in.Amount).
		Logger()

	movement, err := uc.fulfill(ctx, in)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		if errors.Is(err, domain.ErrSystemFault) {
			log.Error().Err(err).Msg("recepción fallida")
		} else {
			log.Info().Err(err).Msg("recepción rechazada")
		}
		return 0, err
	}

	span.SetAttributes(
		attribute.Int("order.id", movement.OrderID),
		attribute.Int("product_warehouse.id", movement.ID),
	)
	span.SetStatus(codes.Ok, "")
	log.Info().
		Int("id_order", movement.OrderID).
		Int("id_product_warehouse", movement.ID).
		Str("total_price", movement.TotalPrice.StringFixed(2)).
		Msg("recepción registrada")

	// El movimiento ya es durable: un fallo al notificar no revierte nada.
	if err := uc.publisher.PublishStockReceived(ctx, movement); err != nil {
		log.Warn().Err(err).Int("id_product_warehouse", movement.ID).Msg("publicar evento de recepción")
	}
	return movement.ID, nil
}

func (uc *FulfillOrderUseCase) fulfill(ctx context.Context, in ReceiptInput) (entity.StockMovement, error) {
	// 1. Cantidad
	if err := fulfillment.ValidateAmount(in.Amount); err != nil {
		return entity.StockMovement{}, err
	}

	// 2-3. Existencia de producto y bodega (lecturas fuera de la transacción)
	ok, err := uc.productRepo.Exists(ctx, in.ProductID)
	if err != nil {
		return entity.StockMovement{}, domain.SystemFault("verificar producto", err)
	}
	if !ok {
		return entity.StockMovement{}, domain.ErrProductNotFound
	}
	ok, err = uc.warehouseRepo.Exists(ctx, in.WarehouseID)
	if err != nil {
		return entity.StockMovement{}, domain.SystemFault("verificar bodega", err)
	}
	if !ok {
		return entity.StockMovement{}, domain.ErrWarehouseNotFound
	}

	// 4-6. Orden, control de recepción previa y confirmación en una sola transacción.
	// La transacción no se cancela con el caller: termina en Commit o Rollback.
	txCtx := context.WithoutCancel(ctx)
	var movement entity.StockMovement
	err = uc.txRunner.Run(txCtx, func(
		orderRepo repository.OrderRepository,
		movementRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
	) error {
		// FindMatching bloquea la fila de la orden: recepciones concurrentes se serializan aquí.
		order, err := orderRepo.FindMatching(txCtx, in.ProductID, in.Amount, in.ReceivedAt)
		if err != nil {
			return domain.SystemFault("buscar orden", err)
		}
		if order == nil {
			return domain.ErrNoMatchingOrder
		}

		fulfilled, err := movementRepo.ExistsForOrder(txCtx, order.ID)
		if err != nil {
			return domain.SystemFault("verificar recepción previa", err)
		}
		if fulfilled || order.IsFulfilled() {
			return domain.ErrOrderAlreadyFulfilled
		}

		m, err := uc.commit(txCtx, orderRepo, movementRepo, productRepo, order, in)
		if err != nil {
			return err
		}
		movement = m
		return nil
	})
	if err != nil {
		return entity.StockMovement{}, classify(err)
	}
	return movement, nil
}

// commit recalcula el precio, inserta el movimiento y marca la orden como recibida.
// Corre dentro de la transacción de fulfill.
func (uc *FulfillOrderUseCase) commit(
	ctx context.Context,
	orderRepo repository.OrderRepository,
	movementRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
	order *entity.Order,
	in ReceiptInput,
) (entity.StockMovement, error) {
	unitPrice, err := productRepo.UnitPrice(ctx, in.ProductID)
	if err != nil {
		if errors.Is(err, domain.ErrPriceNotFound) {
			return entity.StockMovement{}, err
		}
		return entity.StockMovement{}, domain.SystemFault("consultar precio", err)
	}

	movement := entity.StockMovement{
		WarehouseID: in.WarehouseID,
		ProductID:   in.ProductID,
		OrderID:     order.ID,
		Amount:      in.Amount,
		TotalPrice:  fulfillment.TotalPrice(unitPrice, in.Amount),
		CreatedAt:   in.ReceivedAt,
	}
	if err := movementRepo.Create(ctx, &movement); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return entity.StockMovement{}, domain.ErrOrderAlreadyFulfilled
		}
		return entity.StockMovement{}, domain.SystemFault("registrar movimiento", err)
	}
	if err := orderRepo.MarkFulfilled(ctx, order.ID, uc.now()); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return entity.StockMovement{}, domain.ErrOrderAlreadyFulfilled
		}
		return entity.StockMovement{}, domain.SystemFault("marcar orden recibida", err)
	}
	return movement, nil
}

// classify deja pasar los errores ya clasificados; el resto (begin/commit) es falla del sistema.
func classify(err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrNotFound),
		errors.Is(err, domain.ErrConflict),
		errors.Is(err, domain.ErrSystemFault):
		return err
	default:
		return domain.SystemFault("transacción", err)
	}
}
