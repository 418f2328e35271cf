package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Contable-api/internal/domain/entity"
	"github.com/jhoicas/Contable-api/internal/domain/repository"
)

var _ repository.TaxRuleRepository = (*TaxRuleRepo)(nil)

// TaxRuleRepo implementación de TaxRuleRepository (usable con pool o tx).
type TaxRuleRepo struct {
	q Querier
}

// NewTaxRuleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTaxRuleRepository(q Querier) *TaxRuleRepo {
	return &TaxRuleRepo{q: q}
}

// Los grupos son UUID opcionales: NULL en la tabla, "" en la entidad.
const taxRuleSelect = `
	SELECT id, company_id, tax_id, operation_code,
	       COALESCE(business_entity_group_id::text, ''), COALESCE(item_group_id::text, ''),
	       priority, enabled, description, created_at, updated_at
	FROM tax_rules`

// Create persiste una regla de impuesto.
func (r *TaxRuleRepo) Create(rule *entity.TaxRule) error {
	query := `
		INSERT INTO tax_rules (id, company_id, tax_id, operation_code, business_entity_group_id, item_group_id,
		                       priority, enabled, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		rule.ID, rule.CompanyID, rule.TaxID, rule.OperationCode,
		nullIfEmpty(rule.BusinessEntityGroupID), nullIfEmpty(rule.ItemGroupID),
		rule.Priority, rule.Enabled, rule.Description, rule.CreatedAt, rule.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert tax rule: %w", err)
	}
	return nil
}

// GetByID obtiene una regla por ID.
func (r *TaxRuleRepo) GetByID(id string) (*entity.TaxRule, error) {
	if !isUUID(id) {
		return nil, nil
	}
	rule, err := scanTaxRule(r.q.QueryRow(context.Background(), taxRuleSelect+` WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get tax rule: %w", err)
	}
	return rule, nil
}

// ListByCompany devuelve las reglas de la empresa ordenadas por prioridad (estable por fecha de creación).
func (r *TaxRuleRepo) ListByCompany(companyID string) ([]*entity.TaxRule, error) {
	return r.list(taxRuleSelect+` WHERE company_id = $1 ORDER BY priority, created_at, id`, companyID)
}

// ListByTax devuelve las reglas asociadas a un impuesto.
func (r *TaxRuleRepo) ListByTax(taxID string) ([]*entity.TaxRule, error) {
	return r.list(taxRuleSelect+` WHERE tax_id = $1 ORDER BY priority, created_at, id`, taxID)
}

func (r *TaxRuleRepo) list(query, arg string) ([]*entity.TaxRule, error) {
	rows, err := r.q.Query(context.Background(), query, arg)
	if err != nil {
		return nil, fmt.Errorf("list tax rules: %w", err)
	}
	defer rows.Close()
	var list []*entity.TaxRule
	for rows.Next() {
		rule, err := scanTaxRule(rows)
		if err != nil {
			return nil, fmt.Errorf("scan tax rule: %w", err)
		}
		list = append(list, rule)
	}
	return list, rows.Err()
}

// Update actualiza una regla.
func (r *TaxRuleRepo) Update(rule *entity.TaxRule) error {
	query := `
		UPDATE tax_rules SET tax_id = $2, operation_code = $3, business_entity_group_id = $4, item_group_id = $5,
		       priority = $6, enabled = $7, description = $8, updated_at = $9
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		rule.ID, rule.TaxID, rule.OperationCode,
		nullIfEmpty(rule.BusinessEntityGroupID), nullIfEmpty(rule.ItemGroupID),
		rule.Priority, rule.Enabled, rule.Description, rule.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update tax rule: %w", err)
	}
	return nil
}

// Delete elimina una regla por ID.
func (r *TaxRuleRepo) Delete(id string) error {
	if _, err := r.q.Exec(context.Background(), `DELETE FROM tax_rules WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete tax rule: %w", err)
	}
	return nil
}

func scanTaxRule(row pgx.Row) (*entity.TaxRule, error) {
	var rule entity.TaxRule
	err := row.Scan(&rule.ID, &rule.CompanyID, &rule.TaxID, &rule.OperationCode,
		&rule.BusinessEntityGroupID, &rule.ItemGroupID,
		&rule.Priority, &rule.Enabled, &rule.Description, &rule.CreatedAt, &rule.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &rule, nil
}
