package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dulceria/dulces-api/internal/application/consulta"
	"github.com/dulceria/dulces-api/internal/application/ingreso"
	"github.com/dulceria/dulces-api/internal/application/salida"
	"github.com/dulceria/dulces-api/internal/application/scanner"
	"github.com/dulceria/dulces-api/internal/domain/repository"
	"github.com/dulceria/dulces-api/internal/infrastructure/excel"
	"github.com/dulceria/dulces-api/internal/infrastructure/memstore"
	infrapdf "github.com/dulceria/dulces-api/internal/infrastructure/pdf"
	"github.com/dulceria/dulces-api/internal/infrastructure/postgres"
	"github.com/dulceria/dulces-api/internal/infrastructure/zxing"
	httpRouter "github.com/dulceria/dulces-api/internal/interfaces/http"
	"github.com/dulceria/dulces-api/pkg/config"
	"github.com/dulceria/dulces-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()

	// En modo demo el inventario vive en memoria; en cualquier otro entorno
	// se migra y conecta PostgreSQL.
	var dulceRepo repository.DulceRepository
	if cfg.App.Env == "demo" {
		dulceRepo = memstore.NewDulceRepository()
		log.Warn().Msg("modo demo: inventario en memoria, sin persistencia")
	} else {
		dsn := cfg.DB.ConnectionString()
		if err := postgres.Migrate(dsn, cfg.DB.MigrationsDir); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		dulceRepo = postgres.NewDulceRepository(pool)
	}

	scanAdapter := scanner.NewAdapter(zxing.NewDecoder(), log)
	ticketGen := infrapdf.NewMarotoTicketGenerator()
	exporter := excel.NewExporter()

	ingresoUC := ingreso.NewUseCase(dulceRepo, log)
	salidaUC := salida.NewUseCase(dulceRepo, ticketGen, log)
	consultaUC := consulta.NewUseCase(dulceRepo, exporter, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    8 * 1024 * 1024, // cuadros de cámara
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Inventario Dulces API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	if cfg.Metrics.Enabled {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		Scanner:    scanAdapter,
		IngresoUC:  ingresoUC,
		SalidaUC:   salidaUC,
		ConsultaUC: consultaUC,
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

	log.Info().Msg("aplicación detenida")
}
