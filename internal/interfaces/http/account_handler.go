package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Contable-api/internal/application/dto"
	"github.com/jhoicas/Contable-api/internal/application/usecase"
)

// AccountHandler maneja el plan de cuentas (PUC) de la empresa.
type AccountHandler struct {
	uc *usecase.AccountUseCase
}

// NewAccountHandler construye el handler.
func NewAccountHandler(uc *usecase.AccountUseCase) *AccountHandler {
	return &AccountHandler{uc: uc}
}

// Create godoc
// @Summary      Crear cuenta contable
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreateAccountRequest  true  "Cuenta"
// @Success      201   {object}  dto.AccountResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/accounts [post]
func (h *AccountHandler) Create(c *fiber.Ctx) error {
	companyID, ok := companyFromToken(c)
	if !ok {
		return nil
	}
	var in dto.CreateAccountRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(companyID, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID GET /api/accounts/:id
func (h *AccountHandler) GetByID(c *fiber.Ctx) error {
	companyID, ok := companyFromToken(c)
	if !ok {
		return nil
	}
	out, err := h.uc.GetByID(companyID, c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// List GET /api/accounts (ordenado por código)
func (h *AccountHandler) List(c *fiber.Ctx) error {
	companyID, ok := companyFromToken(c)
	if !ok {
		return nil
	}
	list, err := h.uc.List(companyID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(list)
}

// Update PUT /api/accounts/:id
func (h *AccountHandler) Update(c *fiber.Ctx) error {
	companyID, ok := companyFromToken(c)
	if !ok {
		return nil
	}
	var in dto.UpdateAccountRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(companyID, c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
