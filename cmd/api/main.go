// @title        Recepción API
// @version      1.0
// @description  Recepción de mercancía en bodega contra órdenes de compra.
// @BasePath     /
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	_ "github.com/jhoicas/Recepcion-api/docs"
	"github.com/jhoicas/Recepcion-api/internal/application/inventory"
	"github.com/jhoicas/Recepcion-api/internal/infrastructure/events"
	"github.com/jhoicas/Recepcion-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Recepcion-api/internal/interfaces/http"
	"github.com/jhoicas/Recepcion-api/internal/scheduler"
	"github.com/jhoicas/Recepcion-api/pkg/config"
	"github.com/jhoicas/Recepcion-api/pkg/logger"
	"github.com/jhoicas/Recepcion-api/pkg/telemetry"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.Log.Level,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()

	shutdownTracing, err := telemetry.Setup(ctx, cfg.App.Name, version, cfg.Telemetry)
	if err != nil {
		log.Fatal().Err(err).Msg("configurar trazas")
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	productRepo := postgres.NewProductRepository(pool)
	warehouseRepo := postgres.NewWarehouseRepository(pool)
	movementRepo := postgres.NewStockMovementRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Eventos de recepción: solo si hay brokers configurados.
	var publisher inventory.EventPublisher = inventory.NopPublisher{}
	var kafkaPublisher *events.Publisher
	if cfg.Kafka.Enabled() {
		kafkaPublisher = events.NewPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		publisher = kafkaPublisher
		log.Info().Strs("brokers", cfg.Kafka.Brokers).Str("topic", cfg.Kafka.Topic).Msg("publicación de eventos activa")
	}

	fulfillUC := inventory.NewFulfillOrderUseCase(txRunner, productRepo, warehouseRepo, publisher, log.Zerolog())
	routineUC := inventory.NewFulfillViaRoutineUseCase(postgres.NewRoutineAdapter(pool), log.Zerolog())
	auditUC := inventory.NewAuditUseCase(movementRepo, log.Zerolog())

	var sched *scheduler.Scheduler
	if cfg.Audit.Enabled {
		sched = scheduler.New(cfg.Audit.Cron, auditUC, log.Zerolog())
		if err := sched.Start(); err != nil {
			log.Fatal().Err(err).Msg("iniciar scheduler")
		}
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(requestid.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Recepción API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		Receiver:  fulfillUC,
		Procedure: routineUC,
		DB:        pool,
		Log:       log.Zerolog(),
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
	if sched != nil {
		sched.Stop(shutdownCtx)
	}
	if kafkaPublisher != nil {
		if err := kafkaPublisher.Close(); err != nil {
			log.Error().Err(err).Msg("cerrar publicador Kafka")
		}
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("vaciar trazas")
	}

	log.Info().Msg("aplicación detenida")
}
