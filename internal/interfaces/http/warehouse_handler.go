package http

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Recepcion-api/internal/application/dto"
	"github.com/jhoicas/Recepcion-api/internal/domain"
)

// OrderReceiver registra una recepción contra la orden pendiente (pipeline en la aplicación).
type OrderReceiver interface {
	FulfillOrderFromRequest(ctx context.Context, in dto.ReceiveProductRequest) (int, error)
}

// ProcedureReceiver registra una recepción delegando en el procedimiento almacenado.
type ProcedureReceiver interface {
	FulfillFromRequest(ctx context.Context, in dto.ReceiveProductRequest) (int, error)
}

// WarehouseHandler maneja las recepciones de mercancía en bodega.
type WarehouseHandler struct {
	receiver  OrderReceiver
	procedure ProcedureReceiver
	log       zerolog.Logger
}

// NewWarehouseHandler construye el handler.
func NewWarehouseHandler(receiver OrderReceiver, procedure ProcedureReceiver, log zerolog.Logger) *WarehouseHandler {
	return &WarehouseHandler{receiver: receiver, procedure: procedure, log: log}
}

// Receive godoc
// @Summary      Registrar recepción de mercancía
// @Description  Valida producto, bodega y cantidad, busca la orden pendiente colocada antes de createdAt
// @Description  y registra el movimiento valorizado marcando la orden como recibida (una sola vez).
// @Tags         warehouse
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ReceiveProductRequest  true  "idProduct, idWarehouse, amount, createdAt"
// @Success      201   {object}  dto.ReceiveProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/warehouse [post]
func (h *WarehouseHandler) Receive(c *fiber.Ctx) error {
	in, ok := h.parse(c)
	if !ok {
		return nil
	}
	id, err := h.receiver.FulfillOrderFromRequest(c.UserContext(), in)
	if err != nil {
		return h.writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ReceiveProductResponse{ID: id})
}

// ReceiveViaProcedure godoc
// @Summary      Registrar recepción vía procedimiento almacenado
// @Description  Misma operación que POST /api/warehouse ejecutada por add_product_to_warehouse.
// @Description  Cualquier error del procedimiento se devuelve como 400 con su mensaje.
// @Tags         warehouse
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ReceiveProductRequest  true  "idProduct, idWarehouse, amount, createdAt"
// @Success      201   {object}  dto.ReceiveProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/warehouse/procedure [post]
func (h *WarehouseHandler) ReceiveViaProcedure(c *fiber.Ctx) error {
	in, ok := h.parse(c)
	if !ok {
		return nil
	}
	id, err := h.procedure.FulfillFromRequest(c.UserContext(), in)
	if err != nil {
		return h.writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ReceiveProductResponse{ID: id})
}

// parse lee el body; si falla ya escribió la respuesta 400.
func (h *WarehouseHandler) parse(c *fiber.Ctx) (dto.ReceiveProductRequest, bool) {
	var in dto.ReceiveProductRequest
	if err := c.BodyParser(&in); err != nil {
		_ = c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
		return in, false
	}
	if in.CreatedAt.IsZero() {
		_ = c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "createdAt es requerido"})
		return in, false
	}
	return in, true
}

// writeError traduce el tipo de error de dominio a código HTTP.
func (h *WarehouseHandler) writeError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: err.Error()})
	default:
		h.log.Error().Err(err).Str("path", c.Path()).Msg("error interno")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno del servidor"})
	}
}
