package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/Alianzas-api/internal/application/analytics"
)

// DashboardHandler maneja los endpoints del módulo de Dashboard.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetSummary devuelve los indicadores del programa de partners.
// GET /api/dashboard/summary
//
// Respuesta: DashboardSummaryDTO (partners activos, startups, colaboraciones por estado,
// valoración promedio y las 5 colaboraciones más recientes).
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	summary, err := h.uc.GetSummary(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(summary)
}
