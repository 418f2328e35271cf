package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Contable-api/internal/application/dto"
	"github.com/jhoicas/Contable-api/internal/application/usecase"
)

// BusinessEntityHandler maneja las peticiones HTTP de terceros (clientes/proveedores, protegido).
type BusinessEntityHandler struct {
	uc *usecase.BusinessEntityUseCase
}

// NewBusinessEntityHandler construye el handler.
func NewBusinessEntityHandler(uc *usecase.BusinessEntityUseCase) *BusinessEntityHandler {
	return &BusinessEntityHandler{uc: uc}
}

// Create POST /api/business-entities
func (h *BusinessEntityHandler) Create(c *fiber.Ctx) error {
	companyID, ok := companyFromToken(c)
	if !ok {
		return nil
	}
	var in dto.CreateBusinessEntityRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(companyID, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID GET /api/business-entities/:id
func (h *BusinessEntityHandler) GetByID(c *fiber.Ctx) error {
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

// List GET /api/business-entities?limit=20&offset=0
func (h *BusinessEntityHandler) List(c *fiber.Ctx) error {
	companyID, ok := companyFromToken(c)
	if !ok {
		return nil
	}
	list, err := h.uc.List(companyID, pageFromQuery(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(list)
}

// Update PUT /api/business-entities/:id
func (h *BusinessEntityHandler) Update(c *fiber.Ctx) error {
	companyID, ok := companyFromToken(c)
	if !ok {
		return nil
	}
	var in dto.UpdateBusinessEntityRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(companyID, c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
