package repository

import "github.com/jhoicas/Contable-api/internal/domain/entity"

// AccountRepository define el puerto de persistencia para el plan de cuentas.
type AccountRepository interface {
	Create(account *entity.Account) error
	GetByID(id string) (*entity.Account, error)
	GetByCompanyAndCode(companyID, code string) (*entity.Account, error)
	// ListByCompany devuelve el plan de cuentas ordenado por código.
	ListByCompany(companyID string) ([]*entity.Account, error)
	Update(account *entity.Account) error
}
