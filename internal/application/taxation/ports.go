package taxation

import (
	"context"

	"github.com/jhoicas/Contable-api/internal/application/dto"
	"github.com/jhoicas/Contable-api/internal/domain/entity"
	"github.com/jhoicas/Contable-api/internal/domain/repository"
)

// DocumentTxRunner ejecuta una función dentro de una transacción con el repositorio de documentos.
// Si fn retorna error se hace rollback de cabecera y líneas.
type DocumentTxRunner interface {
	RunDocument(ctx context.Context, fn func(docRepo repository.DocumentRepository) error) error
}

// TaxSummaryPDFGenerator genera el PDF con el desglose de impuestos de un documento.
// party puede ser nil si el documento no tiene tercero.
type TaxSummaryPDFGenerator interface {
	GenerateTaxSummaryPDF(
		ctx context.Context,
		company *entity.Company,
		doc *entity.Document,
		party *entity.BusinessEntity,
		summary *dto.DocumentTaxesResponse,
	) ([]byte, error)
}
