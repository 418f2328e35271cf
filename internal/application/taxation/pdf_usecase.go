package taxation

import (
	"context"
	"fmt"

	"github.com/jhoicas/Contable-api/internal/domain"
	"github.com/jhoicas/Contable-api/internal/domain/entity"
	"github.com/jhoicas/Contable-api/internal/domain/repository"
)

// PDFUseCase genera el PDF con el desglose de impuestos de un documento.
type PDFUseCase struct {
	resolver    *TaxResolutionUseCase
	docRepo     repository.DocumentRepository
	companyRepo repository.CompanyRepository
	entityRepo  repository.BusinessEntityRepository
	generator   TaxSummaryPDFGenerator
}

// NewPDFUseCase construye el caso de uso inyectando todas sus dependencias.
func NewPDFUseCase(
	resolver *TaxResolutionUseCase,
	docRepo repository.DocumentRepository,
	companyRepo repository.CompanyRepository,
	entityRepo repository.BusinessEntityRepository,
	generator TaxSummaryPDFGenerator,
) *PDFUseCase {
	return &PDFUseCase{
		resolver:    resolver,
		docRepo:     docRepo,
		companyRepo: companyRepo,
		entityRepo:  entityRepo,
		generator:   generator,
	}
}

// TaxSummaryPDF resuelve los impuestos del documento y genera el PDF.
//
// Retorna:
//   - (pdfBytes, filename, nil)  si todo sale bien.
//   - domain.ErrNotFound         si el documento no existe o no es de la empresa.
func (uc *PDFUseCase) TaxSummaryPDF(ctx context.Context, companyID, documentID string) (pdfBytes []byte, filename string, err error) {
	// ── 1. Desglose de impuestos ──────────────────────────────────────────────
	summary, err := uc.resolver.ResolveDocumentTaxes(companyID, documentID)
	if err != nil {
		return nil, "", err
	}

	// ── 2. Cabecera, empresa y tercero ────────────────────────────────────────
	doc, err := uc.docRepo.GetByID(documentID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener documento: %w", err)
	}
	if doc == nil {
		return nil, "", domain.ErrNotFound
	}
	company, err := uc.companyRepo.GetByID(companyID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener empresa: %w", err)
	}
	if company == nil {
		return nil, "", domain.ErrNotFound
	}
	var party *entity.BusinessEntity
	if doc.BusinessEntityID != "" {
		if party, err = uc.entityRepo.GetByID(doc.BusinessEntityID); err != nil {
			return nil, "", fmt.Errorf("pdf: obtener tercero: %w", err)
		}
	}

	// ── 3. Generar PDF ────────────────────────────────────────────────────────
	pdfBytes, err = uc.generator.GenerateTaxSummaryPDF(ctx, company, doc, party, summary)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}

	ref := doc.Number
	if ref == "" {
		ref = doc.ID
	}
	filename = fmt.Sprintf("impuestos_%s.pdf", ref)
	return pdfBytes, filename, nil
}
