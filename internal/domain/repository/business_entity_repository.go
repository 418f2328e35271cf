package repository

import "github.com/jhoicas/Contable-api/internal/domain/entity"

// BusinessEntityRepository define el puerto de persistencia para terceros.
type BusinessEntityRepository interface {
	Create(be *entity.BusinessEntity) error
	GetByID(id string) (*entity.BusinessEntity, error)
	GetByCompanyAndCode(companyID, code string) (*entity.BusinessEntity, error)
	ListByCompany(companyID string, limit, offset int) ([]*entity.BusinessEntity, error)
	Update(be *entity.BusinessEntity) error
}
