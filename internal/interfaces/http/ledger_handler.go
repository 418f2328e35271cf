package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Contable-api/internal/application/dto"
	"github.com/jhoicas/Contable-api/internal/application/ledger"
)

// LedgerHandler maneja los comprobantes contables.
type LedgerHandler struct {
	uc *ledger.UseCase
}

// NewLedgerHandler construye el handler.
func NewLedgerHandler(uc *ledger.UseCase) *LedgerHandler {
	return &LedgerHandler{uc: uc}
}

// Post godoc
// @Summary      Registrar comprobante
// @Description  Débitos y créditos deben cuadrar; el periodo debe estar abierto y contener la fecha.
// @Tags         ledger
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.PostTransactionRequest  true  "Comprobante"
// @Success      201   {object}  dto.LedgerTransactionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/ledger/transactions [post]
func (h *LedgerHandler) Post(c *fiber.Ctx) error {
	companyID, ok := companyFromToken(c)
	if !ok {
		return nil
	}
	var in dto.PostTransactionRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.PostTransaction(c.Context(), companyID, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID GET /api/ledger/transactions/:id
func (h *LedgerHandler) GetByID(c *fiber.Ctx) error {
	companyID, ok := companyFromToken(c)
	if !ok {
		return nil
	}
	out, err := h.uc.GetTransaction(companyID, c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListByPeriod GET /api/ledger/transactions?period_id=...
func (h *LedgerHandler) ListByPeriod(c *fiber.Ctx) error {
	companyID, ok := companyFromToken(c)
	if !ok {
		return nil
	}
	periodID := c.Query("period_id")
	if periodID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "period_id es requerido"})
	}
	list, err := h.uc.ListByPeriod(companyID, periodID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(list)
}
