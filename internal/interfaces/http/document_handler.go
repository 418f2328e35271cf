package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Contable-api/internal/application/dto"
	"github.com/jhoicas/Contable-api/internal/application/taxation"
)

// DocumentHandler maneja documentos comerciales y la resolución de sus impuestos (protegido).
type DocumentHandler struct {
	docs  *taxation.DocumentUseCase
	taxes *taxation.TaxResolutionUseCase
	pdf   *taxation.PDFUseCase
}

// NewDocumentHandler construye el handler.
func NewDocumentHandler(docs *taxation.DocumentUseCase, taxes *taxation.TaxResolutionUseCase, pdf *taxation.PDFUseCase) *DocumentHandler {
	return &DocumentHandler{docs: docs, taxes: taxes, pdf: pdf}
}

// Create crea un documento con sus líneas.
// POST /api/documents
func (h *DocumentHandler) Create(c *fiber.Ctx) error {
	companyID, ok := companyFromToken(c)
	if !ok {
		return nil
	}
	var in dto.CreateDocumentRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	doc, err := h.docs.CreateDocument(c.Context(), companyID, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(doc)
}

// GetByID obtiene el documento con sus líneas.
// GET /api/documents/:id
func (h *DocumentHandler) GetByID(c *fiber.Ctx) error {
	companyID, ok := companyFromToken(c)
	if !ok {
		return nil
	}
	doc, err := h.docs.GetDocument(companyID, c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(doc)
}

// List GET /api/documents?limit=20&offset=0
func (h *DocumentHandler) List(c *fiber.Ctx) error {
	companyID, ok := companyFromToken(c)
	if !ok {
		return nil
	}
	out, err := h.docs.ListDocuments(companyID, pageFromQuery(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Taxes godoc
// @Summary      Impuestos aplicables al documento
// @Description  Resuelve impuestos de documento y de línea según las reglas vigentes y calcula totales.
// @Tags         documents
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "ID del documento"
// @Success      200  {object}  dto.DocumentTaxesResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/documents/{id}/taxes [get]
func (h *DocumentHandler) Taxes(c *fiber.Ctx) error {
	companyID, ok := companyFromToken(c)
	if !ok {
		return nil
	}
	out, err := h.taxes.ResolveDocumentTaxes(companyID, c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ExplainTaxes godoc
// @Summary      Regla decisiva por impuesto
// @Tags         documents
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "ID del documento"
// @Success      200  {object}  dto.TaxExplanationResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/documents/{id}/taxes/explain [get]
func (h *DocumentHandler) ExplainTaxes(c *fiber.Ctx) error {
	companyID, ok := companyFromToken(c)
	if !ok {
		return nil
	}
	out, err := h.taxes.ExplainDocumentTaxes(companyID, c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// TaxesPDF descarga el resumen de impuestos en PDF.
// GET /api/documents/:id/taxes/pdf
func (h *DocumentHandler) TaxesPDF(c *fiber.Ctx) error {
	companyID, ok := companyFromToken(c)
	if !ok {
		return nil
	}
	data, filename, err := h.pdf.TaxSummaryPDF(c.Context(), companyID, c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return sendAttachment(c, "application/pdf", filename, data)
}

func sendAttachment(c *fiber.Ctx, contentType, filename string, data []byte) error {
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(data)
}
