package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Contable-api/internal/application/dto"
	"github.com/jhoicas/Contable-api/internal/application/usecase"
)

// GroupHandler maneja grupos de terceros/ítems y sus membresías.
type GroupHandler struct {
	uc *usecase.GroupUseCase
}

// NewGroupHandler construye el handler.
func NewGroupHandler(uc *usecase.GroupUseCase) *GroupHandler {
	return &GroupHandler{uc: uc}
}

// Create POST /api/groups
func (h *GroupHandler) Create(c *fiber.Ctx) error {
	companyID, ok := companyFromToken(c)
	if !ok {
		return nil
	}
	var in dto.CreateGroupRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(companyID, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List GET /api/groups?kind=business_entity|item
func (h *GroupHandler) List(c *fiber.Ctx) error {
	companyID, ok := companyFromToken(c)
	if !ok {
		return nil
	}
	list, err := h.uc.List(companyID, c.Query("kind"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(list)
}

// AddMember POST /api/groups/:id/members
func (h *GroupHandler) AddMember(c *fiber.Ctx) error {
	companyID, ok := companyFromToken(c)
	if !ok {
		return nil
	}
	var in dto.AddGroupMemberRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.AddMember(companyID, c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListMembers GET /api/groups/:id/members
func (h *GroupHandler) ListMembers(c *fiber.Ctx) error {
	companyID, ok := companyFromToken(c)
	if !ok {
		return nil
	}
	list, err := h.uc.ListMembers(companyID, c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(list)
}

// RemoveMember DELETE /api/groups/:id/members/:memberId
func (h *GroupHandler) RemoveMember(c *fiber.Ctx) error {
	companyID, ok := companyFromToken(c)
	if !ok {
		return nil
	}
	if err := h.uc.RemoveMember(companyID, c.Params("id"), c.Params("memberId")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
