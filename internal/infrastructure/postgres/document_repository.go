package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Contable-api/internal/domain"
	"github.com/jhoicas/Contable-api/internal/domain/entity"
	"github.com/jhoicas/Contable-api/internal/domain/repository"
)

var _ repository.DocumentRepository = (*DocumentRepo)(nil)

// DocumentRepo implementación de DocumentRepository (usable con pool o tx).
type DocumentRepo struct {
	q Querier
}

// NewDocumentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDocumentRepository(q Querier) *DocumentRepo {
	return &DocumentRepo{q: q}
}

const documentSelect = `
	SELECT id, company_id, operation_code, COALESCE(business_entity_id::text, ''),
	       number, date, notes, created_at, updated_at
	FROM documents`

// Create persiste la cabecera del documento.
func (r *DocumentRepo) Create(doc *entity.Document) error {
	query := `
		INSERT INTO documents (id, company_id, operation_code, business_entity_id, number, date, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		doc.ID, doc.CompanyID, doc.OperationCode, nullIfEmpty(doc.BusinessEntityID),
		doc.Number, doc.Date, doc.Notes, doc.CreatedAt, doc.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert document: %w", err)
	}
	return nil
}

// CreateLine persiste una línea del documento.
func (r *DocumentRepo) CreateLine(line *entity.DocumentLine) error {
	query := `
		INSERT INTO document_lines (id, document_id, line_number, item_id, description, quantity, unit_price)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		line.ID, line.DocumentID, line.LineNumber, nullIfEmpty(line.ItemID),
		line.Description, line.Quantity, line.UnitPrice,
	)
	if err != nil {
		return fmt.Errorf("insert document line: %w", err)
	}
	return nil
}

// GetByID obtiene la cabecera de un documento.
func (r *DocumentRepo) GetByID(id string) (*entity.Document, error) {
	if !isUUID(id) {
		return nil, nil
	}
	var d entity.Document
	err := r.q.QueryRow(context.Background(), documentSelect+` WHERE id = $1`, id).Scan(
		&d.ID, &d.CompanyID, &d.OperationCode, &d.BusinessEntityID,
		&d.Number, &d.Date, &d.Notes, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get document: %w", err)
	}
	return &d, nil
}

// GetLines obtiene las líneas de un documento ordenadas por número de línea.
func (r *DocumentRepo) GetLines(documentID string) ([]*entity.DocumentLine, error) {
	query := `
		SELECT id, document_id, line_number, COALESCE(item_id::text, ''), description, quantity, unit_price
		FROM document_lines WHERE document_id = $1 ORDER BY line_number`
	rows, err := r.q.Query(context.Background(), query, documentID)
	if err != nil {
		return nil, fmt.Errorf("list document lines: %w", err)
	}
	defer rows.Close()
	var list []*entity.DocumentLine
	for rows.Next() {
		var l entity.DocumentLine
		if err := rows.Scan(&l.ID, &l.DocumentID, &l.LineNumber, &l.ItemID, &l.Description, &l.Quantity, &l.UnitPrice); err != nil {
			return nil, fmt.Errorf("scan document line: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}

// ListByCompany lista documentos de la empresa, más recientes primero.
func (r *DocumentRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Document, error) {
	rows, err := r.q.Query(context.Background(),
		documentSelect+` WHERE company_id = $1 ORDER BY date DESC, created_at DESC LIMIT $2 OFFSET $3`,
		companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()
	var list []*entity.Document
	for rows.Next() {
		var d entity.Document
		if err := rows.Scan(&d.ID, &d.CompanyID, &d.OperationCode, &d.BusinessEntityID, &d.Number, &d.Date, &d.Notes, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}
