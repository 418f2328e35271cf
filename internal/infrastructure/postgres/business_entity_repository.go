package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Contable-api/internal/domain"
	"github.com/jhoicas/Contable-api/internal/domain/entity"
	"github.com/jhoicas/Contable-api/internal/domain/repository"
)

var _ repository.BusinessEntityRepository = (*BusinessEntityRepo)(nil)

// BusinessEntityRepo implementación de BusinessEntityRepository (usable con pool o tx).
type BusinessEntityRepo struct {
	q Querier
}

// NewBusinessEntityRepository construye el adaptador. Pasar pool o tx (Querier).
func NewBusinessEntityRepository(q Querier) *BusinessEntityRepo {
	return &BusinessEntityRepo{q: q}
}

const businessEntityColumns = `id, company_id, code, name, tax_id, kind, email, phone, created_at, updated_at`

// Create persiste un nuevo tercero.
func (r *BusinessEntityRepo) Create(be *entity.BusinessEntity) error {
	query := `INSERT INTO business_entities (` + businessEntityColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		be.ID, be.CompanyID, be.Code, be.Name, be.TaxID, be.Kind, be.Email, be.Phone,
		be.CreatedAt, be.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert business entity: %w", err)
	}
	return nil
}

// GetByID obtiene un tercero por ID.
func (r *BusinessEntityRepo) GetByID(id string) (*entity.BusinessEntity, error) {
	if !isUUID(id) {
		return nil, nil
	}
	return r.getOne(`SELECT `+businessEntityColumns+` FROM business_entities WHERE id = $1`, id)
}

// GetByCompanyAndCode obtiene un tercero por empresa y código.
func (r *BusinessEntityRepo) GetByCompanyAndCode(companyID, code string) (*entity.BusinessEntity, error) {
	return r.getOne(`SELECT `+businessEntityColumns+` FROM business_entities WHERE company_id = $1 AND code = $2`, companyID, code)
}

func (r *BusinessEntityRepo) getOne(query string, args ...any) (*entity.BusinessEntity, error) {
	var be entity.BusinessEntity
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&be.ID, &be.CompanyID, &be.Code, &be.Name, &be.TaxID, &be.Kind, &be.Email, &be.Phone,
		&be.CreatedAt, &be.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get business entity: %w", err)
	}
	return &be, nil
}

// ListByCompany lista terceros de la empresa con paginación.
func (r *BusinessEntityRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.BusinessEntity, error) {
	query := `SELECT ` + businessEntityColumns + ` FROM business_entities WHERE company_id = $1 ORDER BY name LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list business entities: %w", err)
	}
	defer rows.Close()
	var list []*entity.BusinessEntity
	for rows.Next() {
		var be entity.BusinessEntity
		if err := rows.Scan(&be.ID, &be.CompanyID, &be.Code, &be.Name, &be.TaxID, &be.Kind, &be.Email, &be.Phone, &be.CreatedAt, &be.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan business entity: %w", err)
		}
		list = append(list, &be)
	}
	return list, rows.Err()
}

// Update actualiza un tercero.
func (r *BusinessEntityRepo) Update(be *entity.BusinessEntity) error {
	query := `
		UPDATE business_entities SET code = $2, name = $3, tax_id = $4, kind = $5, email = $6, phone = $7, updated_at = $8
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		be.ID, be.Code, be.Name, be.TaxID, be.Kind, be.Email, be.Phone, be.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update business entity: %w", err)
	}
	return nil
}
