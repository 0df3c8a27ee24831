package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Alianzas-api/internal/application/collaboration"
	"github.com/jhoicas/Alianzas-api/internal/application/dto"
)

// CollaborationHandler ciclo de vida de las colaboraciones startup↔partner.
type CollaborationHandler struct {
	uc *collaboration.UseCase
}

// NewCollaborationHandler construye el handler.
func NewCollaborationHandler(uc *collaboration.UseCase) *CollaborationHandler {
	return &CollaborationHandler{uc: uc}
}

// Create godoc
// @Summary      Solicitar colaboración con un partner
// @Description  SELF_SERVICE queda SELF_ACTIVATED de inmediato; APPROVAL_REQUIRED queda REQUESTED.
// @Description  Para rol STARTUP la startup se toma del token.
// @Tags         collaborations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCollaborationRequest  true  "partner_id (y startup_id si ADMIN)"
// @Success      201   {object}  dto.CollaborationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/collaborations [post]
func (h *CollaborationHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCollaborationRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), GetActor(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar colaboraciones (STARTUP solo ve las propias)
// @Tags         collaborations
// @Security     Bearer
// @Produce      json
// @Param        status      query  string  false  "REQUESTED|REVIEWING|IN_PROGRESS|COMPLETED|CANCELLED|SELF_ACTIVATED"
// @Param        startupId   query  string  false  "Filtrar por startup (ADMIN); acepta startup_id"
// @Param        partnerId   query  string  false  "Filtrar por partner; acepta partner_id"
// @Success      200  {array}  dto.CollaborationResponse
// @Router       /api/collaborations [get]
func (h *CollaborationHandler) List(c *fiber.Ctx) error {
	var f dto.CollaborationFilter
	if err := c.QueryParser(&f); err != nil {
		return badQuery(c)
	}
	if f.StartupID == "" {
		f.StartupID = c.Query("startup_id")
	}
	if f.PartnerID == "" {
		f.PartnerID = c.Query("partner_id")
	}
	out, err := h.uc.List(c.UserContext(), GetActor(c), f)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener colaboración
// @Tags         collaborations
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la colaboración"
// @Success      200  {object}  dto.CollaborationResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/collaborations/{id} [get]
func (h *CollaborationHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), GetActor(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Cambiar estado y/o notas (solo ADMIN)
// @Description  status: REVIEWING, IN_PROGRESS (aprobar), CANCELLED (rechazar, exige rejectionReason),
// @Description  COMPLETED (acepta actualSaving). Transición ilegal = 409.
// @Tags         collaborations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                          true  "ID de la colaboración"
// @Param        body  body  dto.UpdateCollaborationRequest  true  "status, rejectionReason, actualSaving, notes"
// @Success      200   {object}  dto.CollaborationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/collaborations/{id} [put]
func (h *CollaborationHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateCollaborationRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar colaboración (solo ADMIN)
// @Tags         collaborations
// @Security     Bearer
// @Param        id   path  string  true  "ID de la colaboración"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/collaborations/{id} [delete]
func (h *CollaborationHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
