package repository

import "github.com/jhoicas/Contable-api/internal/domain/entity"

// DocumentRepository define el puerto de persistencia para documentos comerciales y sus líneas.
type DocumentRepository interface {
	Create(doc *entity.Document) error
	CreateLine(line *entity.DocumentLine) error
	GetByID(id string) (*entity.Document, error)
	// GetLines devuelve las líneas ordenadas por número de línea.
	GetLines(documentID string) ([]*entity.DocumentLine, error)
	ListByCompany(companyID string, limit, offset int) ([]*entity.Document, error)
}
