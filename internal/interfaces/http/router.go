package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/Alianzas-api/internal/application/analytics"
	"github.com/jhoicas/Alianzas-api/internal/application/auth"
	"github.com/jhoicas/Alianzas-api/internal/application/collaboration"
	"github.com/jhoicas/Alianzas-api/internal/application/report"
	"github.com/jhoicas/Alianzas-api/internal/application/usecase"
	"github.com/jhoicas/Alianzas-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC          *auth.AuthUseCase
	CategoryUC      *usecase.CategoryUseCase
	PartnerUC       *usecase.PartnerUseCase
	StartupUC       *usecase.StartupUseCase
	ReviewUC        *usecase.ReviewUseCase
	CollaborationUC *collaboration.UseCase
	ReportUC        *report.UseCase
	DashboardUC     *appanalytics.DashboardUseCase
	JWTSecret       string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	anyRole := RequireRole(entity.RoleAdmin, entity.RoleStartup)
	adminOnly := RequireRole(entity.RoleAdmin)

	protected.Post("/auth/register", adminOnly, authHandler.Register)

	categories := protected.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Get("/", anyRole, categoryHandler.List)
	categories.Get("/:id", anyRole, categoryHandler.GetByID)
	categories.Post("/", adminOnly, categoryHandler.Create)
	categories.Put("/:id", adminOnly, categoryHandler.Update)
	categories.Delete("/:id", adminOnly, categoryHandler.Delete)

	partners := protected.Group("/partners")
	partnerHandler := NewPartnerHandler(deps.PartnerUC)
	partners.Get("/", anyRole, partnerHandler.List)
	partners.Get("/:id", anyRole, partnerHandler.GetByID)
	partners.Post("/", adminOnly, partnerHandler.Create)
	partners.Put("/:id", adminOnly, partnerHandler.Update)
	partners.Delete("/:id", adminOnly, partnerHandler.Delete)

	startups := protected.Group("/startups")
	startupHandler := NewStartupHandler(deps.StartupUC)
	startups.Get("/", adminOnly, startupHandler.List)
	startups.Get("/:id", anyRole, startupHandler.GetByID) // el caso de uso valida la propiedad
	startups.Post("/", adminOnly, startupHandler.Create)
	startups.Put("/:id", adminOnly, startupHandler.Update)
	startups.Delete("/:id", adminOnly, startupHandler.Delete)

	collaborations := protected.Group("/collaborations")
	collabHandler := NewCollaborationHandler(deps.CollaborationUC)
	collaborations.Get("/", anyRole, collabHandler.List)
	collaborations.Get("/:id", anyRole, collabHandler.GetByID)
	collaborations.Post("/", anyRole, collabHandler.Create)
	collaborations.Put("/:id", adminOnly, collabHandler.Update)
	collaborations.Delete("/:id", adminOnly, collabHandler.Delete)

	reviews := protected.Group("/reviews")
	reviewHandler := NewReviewHandler(deps.ReviewUC)
	reviews.Get("/", anyRole, reviewHandler.List)
	reviews.Post("/", anyRole, reviewHandler.Create)
	reviews.Delete("/:id", adminOnly, reviewHandler.Delete)

	reports := protected.Group("/reports", adminOnly)
	reportHandler := NewReportHandler(deps.ReportUC)
	reports.Get("/", reportHandler.Generate)
	reports.Get("/export", reportHandler.Export)

	dashboard := protected.Group("/dashboard", adminOnly)
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	dashboard.Get("/summary", dashboardHandler.GetSummary)
}
