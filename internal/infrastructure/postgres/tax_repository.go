package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Contable-api/internal/domain"
	"github.com/jhoicas/Contable-api/internal/domain/entity"
	"github.com/jhoicas/Contable-api/internal/domain/repository"
)

var _ repository.TaxRepository = (*TaxRepo)(nil)

// TaxRepo implementación de TaxRepository (usable con pool o tx).
type TaxRepo struct {
	q Querier
}

// NewTaxRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTaxRepository(q Querier) *TaxRepo {
	return &TaxRepo{q: q}
}

const taxColumns = `id, company_id, code, name, kind, level, amount, percentage, enabled, included_in_price, created_at, updated_at`

// Create persiste un impuesto del catálogo.
func (r *TaxRepo) Create(t *entity.Tax) error {
	query := `INSERT INTO taxes (` + taxColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		t.ID, t.CompanyID, t.Code, t.Name, string(t.Kind), string(t.Level), t.Amount, t.Percentage,
		t.Enabled, t.IncludedInPrice, t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert tax: %w", err)
	}
	return nil
}

// GetByID obtiene un impuesto por ID.
func (r *TaxRepo) GetByID(id string) (*entity.Tax, error) {
	if !isUUID(id) {
		return nil, nil
	}
	row := r.q.QueryRow(context.Background(), `SELECT `+taxColumns+` FROM taxes WHERE id = $1`, id)
	return scanTaxRow(row)
}

// GetByCompanyAndCode obtiene un impuesto por empresa y código.
func (r *TaxRepo) GetByCompanyAndCode(companyID, code string) (*entity.Tax, error) {
	row := r.q.QueryRow(context.Background(),
		`SELECT `+taxColumns+` FROM taxes WHERE company_id = $1 AND code = $2`, companyID, code)
	return scanTaxRow(row)
}

// ListByCompany devuelve el catálogo de la empresa ordenado por código.
func (r *TaxRepo) ListByCompany(companyID string) ([]*entity.Tax, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT `+taxColumns+` FROM taxes WHERE company_id = $1 ORDER BY code`, companyID)
	if err != nil {
		return nil, fmt.Errorf("list taxes: %w", err)
	}
	defer rows.Close()
	var list []*entity.Tax
	for rows.Next() {
		t, err := scanTax(rows)
		if err != nil {
			return nil, fmt.Errorf("scan tax: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

// Update actualiza un impuesto.
func (r *TaxRepo) Update(t *entity.Tax) error {
	query := `
		UPDATE taxes SET code = $2, name = $3, kind = $4, level = $5, amount = $6, percentage = $7,
		       enabled = $8, included_in_price = $9, updated_at = $10
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		t.ID, t.Code, t.Name, string(t.Kind), string(t.Level), t.Amount, t.Percentage,
		t.Enabled, t.IncludedInPrice, t.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update tax: %w", err)
	}
	return nil
}

func scanTaxRow(row pgx.Row) (*entity.Tax, error) {
	t, err := scanTax(row)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get tax: %w", err)
	}
	return t, nil
}

func scanTax(row pgx.Row) (*entity.Tax, error) {
	var t entity.Tax
	var kind, level string
	err := row.Scan(&t.ID, &t.CompanyID, &t.Code, &t.Name, &kind, &level, &t.Amount, &t.Percentage,
		&t.Enabled, &t.IncludedInPrice, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	t.Kind = entity.TaxKind(kind)
	t.Level = entity.TaxLevel(level)
	return &t, nil
}
