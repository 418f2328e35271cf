package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Contable-api/internal/domain"
	"github.com/jhoicas/Contable-api/internal/domain/entity"
	"github.com/jhoicas/Contable-api/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

// ItemRepo implementación de ItemRepository (usable con pool o tx).
type ItemRepo struct {
	q Querier
}

// NewItemRepository construye el adaptador. Pasar pool o tx (Querier).
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

const itemColumns = `id, company_id, code, name, price, unit_measure, created_at, updated_at`

// Create persiste un ítem.
func (r *ItemRepo) Create(it *entity.Item) error {
	query := `INSERT INTO items (` + itemColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		it.ID, it.CompanyID, it.Code, it.Name, it.Price, it.UnitMeasure, it.CreatedAt, it.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

// GetByID obtiene un ítem por ID.
func (r *ItemRepo) GetByID(id string) (*entity.Item, error) {
	if !isUUID(id) {
		return nil, nil
	}
	return r.getOne(`SELECT `+itemColumns+` FROM items WHERE id = $1`, id)
}

// GetByCompanyAndCode obtiene un ítem por empresa y código.
func (r *ItemRepo) GetByCompanyAndCode(companyID, code string) (*entity.Item, error) {
	return r.getOne(`SELECT `+itemColumns+` FROM items WHERE company_id = $1 AND code = $2`, companyID, code)
}

func (r *ItemRepo) getOne(query string, args ...any) (*entity.Item, error) {
	var it entity.Item
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&it.ID, &it.CompanyID, &it.Code, &it.Name, &it.Price, &it.UnitMeasure, &it.CreatedAt, &it.UpdatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	return &it, nil
}

// ListByCompany lista ítems con paginación.
func (r *ItemRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE company_id = $1 ORDER BY code LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()
	var list []*entity.Item
	for rows.Next() {
		var it entity.Item
		if err := rows.Scan(&it.ID, &it.CompanyID, &it.Code, &it.Name, &it.Price, &it.UnitMeasure, &it.CreatedAt, &it.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}

// Update actualiza un ítem.
func (r *ItemRepo) Update(it *entity.Item) error {
	query := `UPDATE items SET code = $2, name = $3, price = $4, unit_measure = $5, updated_at = $6 WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, it.ID, it.Code, it.Name, it.Price, it.UnitMeasure, it.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update item: %w", err)
	}
	return nil
}
