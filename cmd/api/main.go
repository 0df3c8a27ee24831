package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	appanalytics "github.com/jhoicas/Alianzas-api/internal/application/analytics"
	"github.com/jhoicas/Alianzas-api/internal/application/auth"
	"github.com/jhoicas/Alianzas-api/internal/application/collaboration"
	"github.com/jhoicas/Alianzas-api/internal/application/report"
	"github.com/jhoicas/Alianzas-api/internal/application/usecase"
	"github.com/jhoicas/Alianzas-api/internal/infrastructure/export"
	"github.com/jhoicas/Alianzas-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Alianzas-api/internal/interfaces/http"
	"github.com/jhoicas/Alianzas-api/pkg/config"
	"github.com/jhoicas/Alianzas-api/pkg/logger"
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

	ctx := context.Background()
	if cfg.DB.Migrate {
		if err := postgres.RunMigrations(ctx, cfg.DB.ConnectionString()); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
		log.Info().Msg("migraciones aplicadas")
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	partnerRepo := postgres.NewPartnerRepository(pool)
	startupRepo := postgres.NewStartupRepository(pool)
	collabRepo := postgres.NewCollaborationRepository(pool)
	reviewRepo := postgres.NewReviewRepository(pool)
	reportRepo := postgres.NewReportRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	collabUC := collaboration.NewUseCase(collabRepo, partnerRepo, startupRepo, txRunner, log)
	reportUC := report.NewUseCase(reportRepo, export.NewExcelReportExporter(), export.NewPDFReportExporter())
	dashboardUC := appanalytics.NewDashboardUseCase(partnerRepo, startupRepo, collabRepo, reviewRepo, collabUC)
	authUC := auth.NewAuthUseCase(userRepo, startupRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30, // la exportación PDF/XLSX puede tardar
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(httpRouter.RequestLogger(log))
	if cfg.HTTP.CORSOrigins != "" {
		app.Use(cors.New(cors.Config{
			AllowOrigins:     strings.ReplaceAll(cfg.HTTP.CORSOrigins, " ", ""),
			AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
			ExposeHeaders:    "Content-Disposition",
			AllowCredentials: false,
		}))
	}

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Alianzas API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:          authUC,
		CategoryUC:      usecase.NewCategoryUseCase(categoryRepo, partnerRepo),
		PartnerUC:       usecase.NewPartnerUseCase(partnerRepo, categoryRepo, collabRepo),
		StartupUC:       usecase.NewStartupUseCase(startupRepo, collabRepo, txRunner),
		ReviewUC:        usecase.NewReviewUseCase(reviewRepo, collabRepo, partnerRepo, startupRepo),
		CollaborationUC: collabUC,
		ReportUC:        reportUC,
		DashboardUC:     dashboardUC,
		JWTSecret:       cfg.JWT.Secret,
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
