package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/lapstock/lapstock-api/internal/application/auth"
	appcatalog "github.com/lapstock/lapstock-api/internal/application/catalog"
	"github.com/lapstock/lapstock-api/internal/application/enrichment"
	"github.com/lapstock/lapstock-api/internal/application/expense"
	"github.com/lapstock/lapstock-api/internal/application/laptop"
	"github.com/lapstock/lapstock-api/internal/infrastructure/icecat"
	"github.com/lapstock/lapstock-api/internal/infrastructure/postgres"
	httpRouter "github.com/lapstock/lapstock-api/internal/interfaces/http"
	"github.com/lapstock/lapstock-api/pkg/config"
	"github.com/lapstock/lapstock-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	catalogRepo := postgres.NewCatalogRepository(pool)
	laptopRepo := postgres.NewLaptopRepository(pool)
	expenseRepo := postgres.NewExpenseRepository(pool)
	categoryRepo := postgres.NewExpenseCategoryRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	authUC := auth.NewUseCase(userRepo, cfg.JWT)
	catalogUC := appcatalog.NewUseCase(catalogRepo, txRunner)
	laptopUC := laptop.NewUseCase(laptopRepo, txRunner)
	expenseUC := expense.NewUseCase(expenseRepo, categoryRepo)

	// Proveedor de datos de producto: solo si hay credenciales configuradas.
	var provider enrichment.ProductDataProvider
	if cfg.Icecat.User != "" {
		provider = icecat.NewClient(cfg.Icecat, log)
		log.Info().Str("base_url", cfg.Icecat.BaseURL).Msg("proveedor de datos de producto habilitado")
	}
	enrichmentUC := enrichment.NewUseCase(provider, laptopUC)

	if cfg.Sweep.Enabled {
		sweeper := expense.NewSweeper(expenseUC, time.Duration(cfg.Sweep.Interval)*time.Minute, log)
		go sweeper.Run(ctx)
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Lapstock API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		CatalogUC:    catalogUC,
		LaptopUC:     laptopUC,
		ExpenseUC:    expenseUC,
		EnrichmentUC: enrichmentUC,
		JWTSecret:    cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	<-ctx.Done()

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
