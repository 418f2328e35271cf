package repository

import "github.com/jhoicas/Contable-api/internal/domain/entity"

// FiscalPeriodRepository define el puerto de persistencia para periodos contables.
type FiscalPeriodRepository interface {
	Create(period *entity.FiscalPeriod) error
	GetByID(id string) (*entity.FiscalPeriod, error)
	// ListByCompany devuelve los periodos ordenados por fecha de inicio.
	ListByCompany(companyID string) ([]*entity.FiscalPeriod, error)
	Update(period *entity.FiscalPeriod) error
}
