package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

// Pinger verifica la conexión a la base de datos (pgxpool.Pool lo implementa).
type Pinger interface {
	Ping(ctx context.Context) error
}

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Receiver  OrderReceiver
	Procedure ProcedureReceiver
	DB        Pinger
	Log       zerolog.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", healthHandler(deps.DB))

	api := app.Group("/api")

	warehouse := api.Group("/warehouse")
	warehouseHandler := NewWarehouseHandler(deps.Receiver, deps.Procedure, deps.Log)
	warehouse.Post("/", warehouseHandler.Receive)
	warehouse.Post("/procedure", warehouseHandler.ReceiveViaProcedure)
}

// healthHandler godoc
// @Summary      Estado del servicio
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      503  {object}  map[string]string
// @Router       /health [get]
func healthHandler(db Pinger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if db != nil {
			ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
			defer cancel()
			if err := db.Ping(ctx); err != nil {
				return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "database": "unreachable"})
			}
		}
		return c.JSON(fiber.Map{"status": "ok"})
	}
}
