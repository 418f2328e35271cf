package repository

import "github.com/jhoicas/Contable-api/internal/domain/entity"

// TaxRepository define el puerto de persistencia para el catálogo de impuestos.
type TaxRepository interface {
	Create(tax *entity.Tax) error
	GetByID(id string) (*entity.Tax, error)
	GetByCompanyAndCode(companyID, code string) (*entity.Tax, error)
	// ListByCompany devuelve el catálogo completo ordenado por código.
	// El orden define el orden de salida del evaluador.
	ListByCompany(companyID string) ([]*entity.Tax, error)
	Update(tax *entity.Tax) error
}

// TaxRuleRepository define el puerto de persistencia para reglas de impuestos.
type TaxRuleRepository interface {
	Create(rule *entity.TaxRule) error
	GetByID(id string) (*entity.TaxRule, error)
	// ListByCompany devuelve las reglas ordenadas por prioridad ascendente.
	ListByCompany(companyID string) ([]*entity.TaxRule, error)
	ListByTax(taxID string) ([]*entity.TaxRule, error)
	Update(rule *entity.TaxRule) error
	Delete(id string) error
}
