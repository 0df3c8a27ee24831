package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Alianzas-api/internal/application/dto"
	"github.com/jhoicas/Alianzas-api/internal/application/report"
)

// ReportHandler reporte de impacto y su exportación.
type ReportHandler struct {
	uc *report.UseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *report.UseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Generate godoc
// @Summary      Reporte de impacto del período
// @Description  Sin fechas = todo el histórico. endDate es inclusivo.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        startDate  query  string  false  "Inicio (YYYY-MM-DD)"
// @Param        endDate    query  string  false  "Fin inclusivo (YYYY-MM-DD)"
// @Success      200  {object}  dto.ReportResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports [get]
func (h *ReportHandler) Generate(c *fiber.Ctx) error {
	var req dto.ReportRequest
	if err := c.QueryParser(&req); err != nil {
		return badQuery(c)
	}
	out, err := h.uc.Generate(c.UserContext(), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Export godoc
// @Summary      Exportar reporte de impacto
// @Tags         reports
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Produce      application/pdf
// @Param        startDate  query  string  false  "Inicio (YYYY-MM-DD)"
// @Param        endDate    query  string  false  "Fin inclusivo (YYYY-MM-DD)"
// @Param        format     query  string  false  "xlsx (default) | pdf"
// @Success      200  {file}  binary
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/export [get]
func (h *ReportHandler) Export(c *fiber.Ctx) error {
	var req dto.ReportRequest
	if err := c.QueryParser(&req); err != nil {
		return badQuery(c)
	}
	file, err := h.uc.Export(c.UserContext(), req)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, file.ContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, file.Filename))
	return c.Send(file.Data)
}
