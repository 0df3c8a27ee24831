// seed carga datos de demostración: un usuario ADMIN, categorías, partners y startups
// (cada startup con su cuenta STARTUP).
//
// Uso: go run ./cmd/seed [-admin-email admin@alianzas.local] [-password demo-password]
// Aplica las migraciones antes de sembrar. Si el ADMIN ya existe no hace nada.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Alianzas-api/internal/application/auth"
	"github.com/jhoicas/Alianzas-api/internal/application/dto"
	"github.com/jhoicas/Alianzas-api/internal/application/usecase"
	"github.com/jhoicas/Alianzas-api/internal/domain"
	"github.com/jhoicas/Alianzas-api/internal/domain/entity"
	"github.com/jhoicas/Alianzas-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Alianzas-api/pkg/config"
	"github.com/jhoicas/Alianzas-api/pkg/logger"
)

type demoPartner struct {
	name, category, benefits string
	serviceType              entity.ServiceType
	code                     string
	saving                   int64
}

var (
	demoCategories = []dto.CategoryRequest{
		{Name: "Cloud", Description: "Créditos de infraestructura", Color: "#3b82f6"},
		{Name: "Legal", Description: "Asesoría legal y contable", Color: "#10b981"},
		{Name: "Marketing", Description: "Herramientas de crecimiento", Color: "#f59e0b"},
	}
	demoPartners = []demoPartner{
		{name: "Cloud Credits", category: "Cloud", benefits: "USD 5.000 en créditos", serviceType: entity.ServiceTypeSelfService, code: "CLOUD-DEMO-2025", saving: 6_500_000},
		{name: "Legal Advisory", category: "Legal", benefits: "Constitución de sociedad sin costo", serviceType: entity.ServiceTypeApprovalRequired, saving: 3_000_000},
		{name: "Growth Suite", category: "Marketing", benefits: "12 meses del plan Pro", serviceType: entity.ServiceTypeSelfService, code: "GROWTH-DEMO", saving: 1_200_000},
		{name: "Tax Partners", category: "Legal", benefits: "Auditoría anual con descuento", serviceType: entity.ServiceTypeApprovalRequired, saving: 2_000_000},
	}
	demoStartups = []dto.CreateStartupRequest{
		{Name: "Alpha Labs", Category: "Fintech", ContactName: "Ana Gómez", ContactEmail: "ana@alpha.io", AccountEmail: "founder@alpha.io"},
		{Name: "Beta Health", Category: "Healthtech", ContactName: "Luis Pardo", ContactEmail: "luis@beta.health", AccountEmail: "founder@beta.health"},
	}
)

func main() {
	adminEmail := flag.String("admin-email", "admin@alianzas.local", "email del usuario ADMIN")
	password := flag.String("password", "demo-password", "contraseña para todas las cuentas de demo")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	ctx := context.Background()
	if err := postgres.RunMigrations(ctx, cfg.DB.ConnectionString()); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
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

	authUC := auth.NewAuthUseCase(userRepo, startupRepo, auth.JWTConfig{Secret: cfg.JWT.Secret, Issuer: cfg.JWT.Issuer})
	_, err = authUC.RegisterUser(ctx, dto.RegisterRequest{
		Email: *adminEmail, Password: *password, Name: "Administrador", Role: entity.RoleAdmin,
	})
	if errors.Is(err, domain.ErrEmailAlreadyExists) {
		log.Info().Str("email", *adminEmail).Msg("el ADMIN ya existe, nada que sembrar")
		return
	}
	if err != nil {
		log.Fatal().Err(err).Msg("crear ADMIN")
	}

	categoryUC := usecase.NewCategoryUseCase(categoryRepo, partnerRepo)
	categoryIDs := make(map[string]string, len(demoCategories))
	for _, in := range demoCategories {
		out, err := categoryUC.Create(ctx, in)
		if err != nil {
			log.Fatal().Err(err).Str("category", in.Name).Msg("crear categoría")
		}
		categoryIDs[in.Name] = out.ID
	}

	partnerUC := usecase.NewPartnerUseCase(partnerRepo, categoryRepo, collabRepo)
	for _, p := range demoPartners {
		catID := categoryIDs[p.category]
		saving := decimal.NewFromInt(p.saving)
		in := dto.CreatePartnerRequest{
			Name:            p.name,
			CategoryID:      &catID,
			ServiceType:     string(p.serviceType),
			Benefits:        p.benefits,
			EstimatedSaving: &saving,
		}
		if p.code != "" {
			code := p.code
			in.SelfServiceInfo = &code
		}
		if _, err := partnerUC.Create(ctx, in); err != nil {
			log.Fatal().Err(err).Str("partner", p.name).Msg("crear partner")
		}
	}

	startupUC := usecase.NewStartupUseCase(startupRepo, collabRepo, postgres.NewTxRunner(pool))
	for _, in := range demoStartups {
		in.AccountPassword = *password
		if _, err := startupUC.Create(ctx, in); err != nil {
			log.Fatal().Err(err).Str("startup", in.Name).Msg("crear startup")
		}
	}

	log.Info().
		Int("categories", len(demoCategories)).
		Int("partners", len(demoPartners)).
		Int("startups", len(demoStartups)).
		Msg("datos de demo cargados")
}
