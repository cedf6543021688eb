package domain

import (
	"errors"
	"fmt"
)

// Tipos de error de dominio (sin dependencias externas).
// Los errores específicos envuelven uno de estos tipos: clasificar con errors.Is.
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrConflict     = errors.New("conflicto con el estado actual")
	ErrSystemFault  = errors.New("falla del sistema")
)

// Errores específicos de la recepción de mercancía.
var (
	ErrInvalidAmount         = fmt.Errorf("%w: la cantidad debe ser mayor que cero", ErrInvalidInput)
	ErrProductNotFound       = fmt.Errorf("%w: producto", ErrNotFound)
	ErrWarehouseNotFound     = fmt.Errorf("%w: bodega", ErrNotFound)
	ErrPriceNotFound         = fmt.Errorf("%w: precio del producto", ErrNotFound)
	ErrNoMatchingOrder       = fmt.Errorf("%w: ninguna orden coincide con producto, cantidad y fecha", ErrInvalidInput)
	ErrOrderAlreadyFulfilled = fmt.Errorf("%w: la orden ya fue recibida", ErrConflict)
	ErrRoutineRejected       = fmt.Errorf("%w: el procedimiento almacenado rechazó la operación", ErrInvalidInput)
)

// SystemFault envuelve una falla de infraestructura (conexión, transacción) como ErrSystemFault
// conservando la causa original.
func SystemFault(op string, cause error) error {
	return fmt.Errorf("%w: %s: %w", ErrSystemFault, op, cause)
}
