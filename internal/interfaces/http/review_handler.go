package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Alianzas-api/internal/application/dto"
	"github.com/jhoicas/Alianzas-api/internal/application/usecase"
)

// ReviewHandler reseñas de colaboraciones finalizadas.
type ReviewHandler struct {
	uc *usecase.ReviewUseCase
}

// NewReviewHandler construye el handler.
func NewReviewHandler(uc *usecase.ReviewUseCase) *ReviewHandler {
	return &ReviewHandler{uc: uc}
}

// Create godoc
// @Summary      Reseñar una colaboración COMPLETED o SELF_ACTIVATED
// @Tags         reviews
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateReviewRequest  true  "collaboration_id, rating (1-5), comment"
// @Success      201   {object}  dto.ReviewResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/reviews [post]
func (h *ReviewHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateReviewRequest
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
// @Summary      Listar reseñas
// @Tags         reviews
// @Security     Bearer
// @Produce      json
// @Param        collaboration_id  query  string  false  "Filtrar por colaboración"
// @Param        partner_id        query  string  false  "Filtrar por partner"
// @Param        startup_id        query  string  false  "Filtrar por startup"
// @Success      200  {array}  dto.ReviewResponse
// @Router       /api/reviews [get]
func (h *ReviewHandler) List(c *fiber.Ctx) error {
	var f dto.ReviewFilter
	if err := c.QueryParser(&f); err != nil {
		return badQuery(c)
	}
	out, err := h.uc.List(c.UserContext(), f)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar reseña (solo ADMIN)
// @Tags         reviews
// @Security     Bearer
// @Param        id   path  string  true  "ID de la reseña"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/reviews/{id} [delete]
func (h *ReviewHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
