package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Contable-api/internal/application/dto"
	"github.com/jhoicas/Contable-api/internal/application/ledger"
	"github.com/jhoicas/Contable-api/internal/application/usecase"
)

// FiscalPeriodHandler maneja periodos contables y sus reportes.
type FiscalPeriodHandler struct {
	uc     *usecase.FiscalPeriodUseCase
	ledger *ledger.UseCase
}

// NewFiscalPeriodHandler construye el handler.
func NewFiscalPeriodHandler(uc *usecase.FiscalPeriodUseCase, ledgerUC *ledger.UseCase) *FiscalPeriodHandler {
	return &FiscalPeriodHandler{uc: uc, ledger: ledgerUC}
}

// Create POST /api/fiscal-periods
func (h *FiscalPeriodHandler) Create(c *fiber.Ctx) error {
	companyID, ok := companyFromToken(c)
	if !ok {
		return nil
	}
	var in dto.CreateFiscalPeriodRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(companyID, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID GET /api/fiscal-periods/:id
func (h *FiscalPeriodHandler) GetByID(c *fiber.Ctx) error {
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

// List GET /api/fiscal-periods
func (h *FiscalPeriodHandler) List(c *fiber.Ctx) error {
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

// Close POST /api/fiscal-periods/:id/close
func (h *FiscalPeriodHandler) Close(c *fiber.Ctx) error {
	companyID, ok := companyFromToken(c)
	if !ok {
		return nil
	}
	out, err := h.uc.Close(companyID, c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Reopen POST /api/fiscal-periods/:id/reopen
func (h *FiscalPeriodHandler) Reopen(c *fiber.Ctx) error {
	companyID, ok := companyFromToken(c)
	if !ok {
		return nil
	}
	out, err := h.uc.Reopen(companyID, c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// TrialBalance godoc
// @Summary      Balance de prueba del periodo
// @Tags         fiscal-periods
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "ID del periodo"
// @Success      200  {object}  dto.TrialBalanceResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/fiscal-periods/{id}/trial-balance [get]
func (h *FiscalPeriodHandler) TrialBalance(c *fiber.Ctx) error {
	companyID, ok := companyFromToken(c)
	if !ok {
		return nil
	}
	out, err := h.ledger.TrialBalance(companyID, c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Export descarga el libro diario del periodo en XML.
// GET /api/fiscal-periods/:id/export
func (h *FiscalPeriodHandler) Export(c *fiber.Ctx) error {
	companyID, ok := companyFromToken(c)
	if !ok {
		return nil
	}
	data, filename, err := h.ledger.ExportPeriodXML(companyID, c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return sendAttachment(c, fiber.MIMEApplicationXMLCharsetUTF8, filename, data)
}
