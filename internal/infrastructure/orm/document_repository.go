package orm

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/jhoicas/Contable-api/internal/domain"
	"github.com/jhoicas/Contable-api/internal/domain/entity"
	"github.com/jhoicas/Contable-api/internal/domain/repository"
)

var _ repository.DocumentRepository = (*DocumentRepo)(nil)

// DocumentRepo implementación gorm de DocumentRepository.
type DocumentRepo struct {
	db *gorm.DB
}

// NewDocumentRepository construye el repositorio sobre db (o una tx de gorm).
func NewDocumentRepository(db *gorm.DB) *DocumentRepo {
	return &DocumentRepo{db: db}
}

// Create persiste la cabecera del documento.
func (r *DocumentRepo) Create(d *entity.Document) error {
	if err := r.db.Create(documentFromEntity(d)).Error; err != nil {
		if isDuplicateKeyErr(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert document: %w", err)
	}
	return nil
}

// CreateLine persiste una línea del documento.
func (r *DocumentRepo) CreateLine(l *entity.DocumentLine) error {
	if err := r.db.Create(documentLineFromEntity(l)).Error; err != nil {
		return fmt.Errorf("insert document line: %w", err)
	}
	return nil
}

// GetByID obtiene la cabecera de un documento.
func (r *DocumentRepo) GetByID(id string) (*entity.Document, error) {
	var m documentModel
	if err := r.db.Where("id = ?", id).First(&m).Error; err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get document: %w", err)
	}
	return m.toEntity(), nil
}

// GetLines obtiene las líneas de un documento ordenadas por número de línea.
func (r *DocumentRepo) GetLines(documentID string) ([]*entity.DocumentLine, error) {
	var rows []documentLineModel
	if err := r.db.Where("document_id = ?", documentID).Order("line_number").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list document lines: %w", err)
	}
	list := make([]*entity.DocumentLine, 0, len(rows))
	for i := range rows {
		list = append(list, rows[i].toEntity())
	}
	return list, nil
}

// ListByCompany lista documentos de la empresa, más recientes primero.
func (r *DocumentRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Document, error) {
	var rows []documentModel
	err := r.db.Where("company_id = ?", companyID).
		Order("date DESC").Order("created_at DESC").
		Limit(limit).Offset(offset).Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	list := make([]*entity.Document, 0, len(rows))
	for i := range rows {
		list = append(list, rows[i].toEntity())
	}
	return list, nil
}
