package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Contable-api/internal/domain"
	"github.com/jhoicas/Contable-api/internal/domain/entity"
	"github.com/jhoicas/Contable-api/internal/domain/repository"
)

var _ repository.AccountRepository = (*AccountRepo)(nil)

// AccountRepo implementación de AccountRepository (usable con pool o tx).
type AccountRepo struct {
	q Querier
}

// NewAccountRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAccountRepository(q Querier) *AccountRepo {
	return &AccountRepo{q: q}
}

const accountSelect = `
	SELECT id, company_id, COALESCE(parent_id::text, ''), code, name, type, active, created_at, updated_at
	FROM accounts`

// Create persiste una cuenta del plan de cuentas.
func (r *AccountRepo) Create(a *entity.Account) error {
	query := `
		INSERT INTO accounts (id, company_id, parent_id, code, name, type, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		a.ID, a.CompanyID, nullIfEmpty(a.ParentID), a.Code, a.Name, string(a.Type), a.Active, a.CreatedAt, a.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert account: %w", err)
	}
	return nil
}

// GetByID obtiene una cuenta por ID.
func (r *AccountRepo) GetByID(id string) (*entity.Account, error) {
	if !isUUID(id) {
		return nil, nil
	}
	return r.getOne(accountSelect+` WHERE id = $1`, id)
}

// GetByCompanyAndCode obtiene una cuenta por empresa y código.
func (r *AccountRepo) GetByCompanyAndCode(companyID, code string) (*entity.Account, error) {
	return r.getOne(accountSelect+` WHERE company_id = $1 AND code = $2`, companyID, code)
}

func (r *AccountRepo) getOne(query string, args ...any) (*entity.Account, error) {
	a, err := scanAccount(r.q.QueryRow(context.Background(), query, args...))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get account: %w", err)
	}
	return a, nil
}

// ListByCompany devuelve el plan de cuentas ordenado por código.
func (r *AccountRepo) ListByCompany(companyID string) ([]*entity.Account, error) {
	rows, err := r.q.Query(context.Background(), accountSelect+` WHERE company_id = $1 ORDER BY code`, companyID)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	defer rows.Close()
	var list []*entity.Account
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("scan account: %w", err)
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

// Update actualiza nombre, padre y estado de la cuenta.
func (r *AccountRepo) Update(a *entity.Account) error {
	query := `UPDATE accounts SET parent_id = $2, name = $3, active = $4, updated_at = $5 WHERE id = $1`
	if _, err := r.q.Exec(context.Background(), query, a.ID, nullIfEmpty(a.ParentID), a.Name, a.Active, a.UpdatedAt); err != nil {
		return fmt.Errorf("update account: %w", err)
	}
	return nil
}

func scanAccount(row pgx.Row) (*entity.Account, error) {
	var a entity.Account
	var typ string
	if err := row.Scan(&a.ID, &a.CompanyID, &a.ParentID, &a.Code, &a.Name, &typ, &a.Active, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return nil, err
	}
	a.Type = entity.AccountType(typ)
	return &a, nil
}
