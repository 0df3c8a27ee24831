package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Alianzas-api/internal/application/dto"
	"github.com/jhoicas/Alianzas-api/internal/application/usecase"
)

// StartupHandler CRUD de startups.
type StartupHandler struct {
	uc *usecase.StartupUseCase
}

// NewStartupHandler construye el handler.
func NewStartupHandler(uc *usecase.StartupUseCase) *StartupHandler {
	return &StartupHandler{uc: uc}
}

// Create godoc
// @Summary      Crear startup (opcionalmente con cuenta STARTUP)
// @Tags         startups
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateStartupRequest  true  "Datos de la startup"
// @Success      201   {object}  dto.StartupResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/startups [post]
func (h *StartupHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateStartupRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar startups
// @Tags         startups
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.StartupResponse
// @Router       /api/startups [get]
func (h *StartupHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener startup (ADMIN o la propia startup)
// @Tags         startups
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la startup"
// @Success      200  {object}  dto.StartupResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/startups/{id} [get]
func (h *StartupHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), GetActor(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar startup (parcial)
// @Tags         startups
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "ID de la startup"
// @Param        body  body  dto.UpdateStartupRequest  true  "Campos a modificar"
// @Success      200   {object}  dto.StartupResponse
// @Router       /api/startups/{id} [put]
func (h *StartupHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateStartupRequest
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
// @Summary      Eliminar startup (409 si tiene colaboraciones)
// @Tags         startups
// @Security     Bearer
// @Param        id   path  string  true  "ID de la startup"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/startups/{id} [delete]
func (h *StartupHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
