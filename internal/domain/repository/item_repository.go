package repository

import "github.com/jhoicas/Contable-api/internal/domain/entity"

// ItemRepository define el puerto de persistencia para Item (DIP).
type ItemRepository interface {
	Create(item *entity.Item) error
	GetByID(id string) (*entity.Item, error)
	GetByCompanyAndCode(companyID, code string) (*entity.Item, error)
	ListByCompany(companyID string, limit, offset int) ([]*entity.Item, error)
	Update(item *entity.Item) error
}
