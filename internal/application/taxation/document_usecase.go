package taxation

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Contable-api/internal/application/dto"
	"github.com/jhoicas/Contable-api/internal/domain"
	"github.com/jhoicas/Contable-api/internal/domain/entity"
	"github.com/jhoicas/Contable-api/internal/domain/repository"
)

// DocumentUseCase registra y consulta documentos comerciales.
type DocumentUseCase struct {
	txRunner   DocumentTxRunner
	docRepo    repository.DocumentRepository
	entityRepo repository.BusinessEntityRepository
	itemRepo   repository.ItemRepository
}

// NewDocumentUseCase construye el caso de uso.
func NewDocumentUseCase(
	txRunner DocumentTxRunner,
	docRepo repository.DocumentRepository,
	entityRepo repository.BusinessEntityRepository,
	itemRepo repository.ItemRepository,
) *DocumentUseCase {
	return &DocumentUseCase{
		txRunner:   txRunner,
		docRepo:    docRepo,
		entityRepo: entityRepo,
		itemRepo:   itemRepo,
	}
}

// CreateDocument valida tercero e ítems y guarda cabecera y líneas en una sola transacción.
// Precio unitario cero toma el precio del ítem.
func (uc *DocumentUseCase) CreateDocument(ctx context.Context, companyID string, in dto.CreateDocumentRequest) (*dto.DocumentResponse, error) {
	in.OperationCode = strings.TrimSpace(in.OperationCode)
	if in.OperationCode == "" {
		return nil, fmt.Errorf("%w: operation_code es obligatorio", domain.ErrInvalidInput)
	}
	if len(in.Lines) == 0 {
		return nil, fmt.Errorf("%w: el documento debe tener al menos una línea", domain.ErrInvalidInput)
	}

	if in.BusinessEntityID != "" {
		be, err := uc.entityRepo.GetByID(in.BusinessEntityID)
		if err != nil {
			return nil, err
		}
		if be == nil || be.CompanyID != companyID {
			return nil, fmt.Errorf("%w: tercero %s no existe", domain.ErrInvalidInput, in.BusinessEntityID)
		}
	}

	now := time.Now()
	date := in.Date
	if date.IsZero() {
		date = now
	}
	doc := &entity.Document{
		ID:               uuid.New().String(),
		CompanyID:        companyID,
		OperationCode:    in.OperationCode,
		BusinessEntityID: in.BusinessEntityID,
		Number:           strings.TrimSpace(in.Number),
		Date:             date,
		Notes:            in.Notes,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	lines := make([]*entity.DocumentLine, 0, len(in.Lines))
	for i, l := range in.Lines {
		if l.ItemID == "" || !l.Quantity.GreaterThan(decimal.Zero) || l.UnitPrice.IsNegative() {
			return nil, fmt.Errorf("%w: línea %d inválida", domain.ErrInvalidInput, i+1)
		}
		item, err := uc.itemRepo.GetByID(l.ItemID)
		if err != nil {
			return nil, err
		}
		if item == nil || item.CompanyID != companyID {
			return nil, fmt.Errorf("%w: ítem %s no existe", domain.ErrInvalidInput, l.ItemID)
		}
		price := l.UnitPrice
		if price.IsZero() {
			price = item.Price
		}
		desc := strings.TrimSpace(l.Description)
		if desc == "" {
			desc = item.Name
		}
		lines = append(lines, &entity.DocumentLine{
			ID:          uuid.New().String(),
			DocumentID:  doc.ID,
			LineNumber:  i + 1,
			ItemID:      l.ItemID,
			Description: desc,
			Quantity:    l.Quantity,
			UnitPrice:   price,
		})
	}

	err := uc.txRunner.RunDocument(ctx, func(docRepo repository.DocumentRepository) error {
		if err := docRepo.Create(doc); err != nil {
			return err
		}
		for _, line := range lines {
			if err := docRepo.CreateLine(line); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toDocumentResponse(doc, lines), nil
}

// GetDocument devuelve el documento con sus líneas.
func (uc *DocumentUseCase) GetDocument(companyID, id string) (*dto.DocumentResponse, error) {
	doc, lines, err := loadDocument(uc.docRepo, companyID, id)
	if err != nil {
		return nil, err
	}
	return toDocumentResponse(doc, lines), nil
}

// ListDocuments lista los documentos de la empresa (sin líneas).
func (uc *DocumentUseCase) ListDocuments(companyID string, page dto.PageRequest) (*dto.DocumentListResponse, error) {
	page.DefaultPage()
	list, err := uc.docRepo.ListByCompany(companyID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return &dto.DocumentListResponse{
		Items: lo.Map(list, func(d *entity.Document, _ int) dto.DocumentResponse { return *toDocumentResponse(d, nil) }),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// loadDocument carga cabecera y líneas validando que el documento sea de la empresa.
func loadDocument(repo repository.DocumentRepository, companyID, id string) (*entity.Document, []*entity.DocumentLine, error) {
	doc, err := repo.GetByID(id)
	if err != nil {
		return nil, nil, err
	}
	if doc == nil || doc.CompanyID != companyID {
		return nil, nil, domain.ErrNotFound
	}
	lines, err := repo.GetLines(id)
	if err != nil {
		return nil, nil, err
	}
	return doc, lines, nil
}

func toDocumentResponse(d *entity.Document, lines []*entity.DocumentLine) *dto.DocumentResponse {
	return &dto.DocumentResponse{
		ID:               d.ID,
		CompanyID:        d.CompanyID,
		OperationCode:    d.OperationCode,
		BusinessEntityID: d.BusinessEntityID,
		Number:           d.Number,
		Date:             d.Date,
		Notes:            d.Notes,
		CreatedAt:        d.CreatedAt,
		Lines: lo.Map(lines, func(l *entity.DocumentLine, _ int) dto.DocumentLineResponse {
			return dto.DocumentLineResponse{
				ID:          l.ID,
				LineNumber:  l.LineNumber,
				ItemID:      l.ItemID,
				Description: l.Description,
				Quantity:    l.Quantity,
				UnitPrice:   l.UnitPrice,
				Subtotal:    l.Subtotal(),
			}
		}),
	}
}
