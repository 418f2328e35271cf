package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Contable-api/internal/domain/entity"
	"github.com/jhoicas/Contable-api/internal/domain/repository"
)

var _ repository.FiscalPeriodRepository = (*FiscalPeriodRepo)(nil)

// FiscalPeriodRepo implementación de FiscalPeriodRepository (usable con pool o tx).
type FiscalPeriodRepo struct {
	q Querier
}

// NewFiscalPeriodRepository construye el adaptador. Pasar pool o tx (Querier).
func NewFiscalPeriodRepository(q Querier) *FiscalPeriodRepo {
	return &FiscalPeriodRepo{q: q}
}

const fiscalPeriodColumns = `id, company_id, name, start_date, end_date, status, created_at, updated_at`

// Create persiste un periodo contable.
func (r *FiscalPeriodRepo) Create(p *entity.FiscalPeriod) error {
	query := `INSERT INTO fiscal_periods (` + fiscalPeriodColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.CompanyID, p.Name, p.StartDate, p.EndDate, p.Status, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert fiscal period: %w", err)
	}
	return nil
}

// GetByID obtiene un periodo por ID.
func (r *FiscalPeriodRepo) GetByID(id string) (*entity.FiscalPeriod, error) {
	if !isUUID(id) {
		return nil, nil
	}
	var p entity.FiscalPeriod
	err := r.q.QueryRow(context.Background(), `SELECT `+fiscalPeriodColumns+` FROM fiscal_periods WHERE id = $1`, id).Scan(
		&p.ID, &p.CompanyID, &p.Name, &p.StartDate, &p.EndDate, &p.Status, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get fiscal period: %w", err)
	}
	return &p, nil
}

// ListByCompany devuelve los periodos ordenados por fecha de inicio.
func (r *FiscalPeriodRepo) ListByCompany(companyID string) ([]*entity.FiscalPeriod, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT `+fiscalPeriodColumns+` FROM fiscal_periods WHERE company_id = $1 ORDER BY start_date`, companyID)
	if err != nil {
		return nil, fmt.Errorf("list fiscal periods: %w", err)
	}
	defer rows.Close()
	var list []*entity.FiscalPeriod
	for rows.Next() {
		var p entity.FiscalPeriod
		if err := rows.Scan(&p.ID, &p.CompanyID, &p.Name, &p.StartDate, &p.EndDate, &p.Status, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan fiscal period: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// Update actualiza nombre y estado del periodo.
func (r *FiscalPeriodRepo) Update(p *entity.FiscalPeriod) error {
	query := `UPDATE fiscal_periods SET name = $2, status = $3, updated_at = $4 WHERE id = $1`
	if _, err := r.q.Exec(context.Background(), query, p.ID, p.Name, p.Status, p.UpdatedAt); err != nil {
		return fmt.Errorf("update fiscal period: %w", err)
	}
	return nil
}
