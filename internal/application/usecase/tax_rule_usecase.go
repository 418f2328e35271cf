package usecase

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/jhoicas/Contable-api/internal/application/dto"
	"github.com/jhoicas/Contable-api/internal/domain"
	"github.com/jhoicas/Contable-api/internal/domain/entity"
	"github.com/jhoicas/Contable-api/internal/domain/repository"
)

// TaxRuleUseCase casos de uso de reglas de impuestos.
type TaxRuleUseCase struct {
	rules  repository.TaxRuleRepository
	taxes  repository.TaxRepository
	groups repository.GroupRepository
}

// NewTaxRuleUseCase construye el caso de uso.
func NewTaxRuleUseCase(rules repository.TaxRuleRepository, taxes repository.TaxRepository, groups repository.GroupRepository) *TaxRuleUseCase {
	return &TaxRuleUseCase{rules: rules, taxes: taxes, groups: groups}
}

// Create crea una regla. El impuesto y los grupos referenciados deben existir en la empresa
// y cada grupo debe ser del tipo que corresponde a su filtro.
func (uc *TaxRuleUseCase) Create(companyID string, in dto.CreateTaxRuleRequest) (*dto.TaxRuleResponse, error) {
	if in.TaxID == "" {
		return nil, fmt.Errorf("%w: tax_id es obligatorio", domain.ErrInvalidInput)
	}
	tax, err := uc.taxes.GetByID(in.TaxID)
	if err != nil {
		return nil, err
	}
	if tax == nil || tax.CompanyID != companyID {
		return nil, fmt.Errorf("%w: impuesto %s no existe", domain.ErrInvalidInput, in.TaxID)
	}
	now := time.Now()
	rule := &entity.TaxRule{
		ID:                    uuid.New().String(),
		CompanyID:             companyID,
		TaxID:                 in.TaxID,
		OperationCode:         strings.TrimSpace(in.OperationCode),
		BusinessEntityGroupID: in.BusinessEntityGroupID,
		ItemGroupID:           in.ItemGroupID,
		Priority:              in.Priority,
		Enabled:               in.Enabled == nil || *in.Enabled,
		Description:           in.Description,
		CreatedAt:             now,
		UpdatedAt:             now,
	}
	if err := uc.validate(rule); err != nil {
		return nil, err
	}
	if err := uc.rules.Create(rule); err != nil {
		return nil, err
	}
	return toTaxRuleResponse(rule), nil
}

// GetByID obtiene una regla de la empresa.
func (uc *TaxRuleUseCase) GetByID(companyID, id string) (*dto.TaxRuleResponse, error) {
	rule, err := uc.get(companyID, id)
	if err != nil {
		return nil, err
	}
	return toTaxRuleResponse(rule), nil
}

// List devuelve las reglas de la empresa en orden de evaluación (prioridad ascendente).
// taxID no vacío filtra por impuesto.
func (uc *TaxRuleUseCase) List(companyID, taxID string) ([]dto.TaxRuleResponse, error) {
	list, err := uc.rules.ListByCompany(companyID)
	if err != nil {
		return nil, err
	}
	if taxID != "" {
		list = lo.Filter(list, func(r *entity.TaxRule, _ int) bool { return r.TaxID == taxID })
	}
	return lo.Map(list, func(r *entity.TaxRule, _ int) dto.TaxRuleResponse { return *toTaxRuleResponse(r) }), nil
}

// Update aplica una actualización parcial y revalida referencias.
func (uc *TaxRuleUseCase) Update(companyID, id string, in dto.UpdateTaxRuleRequest) (*dto.TaxRuleResponse, error) {
	rule, err := uc.get(companyID, id)
	if err != nil {
		return nil, err
	}
	if in.OperationCode != nil {
		rule.OperationCode = strings.TrimSpace(*in.OperationCode)
	}
	if in.BusinessEntityGroupID != nil {
		rule.BusinessEntityGroupID = *in.BusinessEntityGroupID
	}
	if in.ItemGroupID != nil {
		rule.ItemGroupID = *in.ItemGroupID
	}
	if in.Priority != nil {
		rule.Priority = *in.Priority
	}
	if in.Enabled != nil {
		rule.Enabled = *in.Enabled
	}
	if in.Description != nil {
		rule.Description = *in.Description
	}
	if err := uc.validate(rule); err != nil {
		return nil, err
	}
	rule.UpdatedAt = time.Now()
	if err := uc.rules.Update(rule); err != nil {
		return nil, err
	}
	return toTaxRuleResponse(rule), nil
}

// Delete elimina una regla de la empresa.
func (uc *TaxRuleUseCase) Delete(companyID, id string) error {
	if _, err := uc.get(companyID, id); err != nil {
		return err
	}
	return uc.rules.Delete(id)
}

func (uc *TaxRuleUseCase) get(companyID, id string) (*entity.TaxRule, error) {
	rule, err := uc.rules.GetByID(id)
	if err != nil {
		return nil, err
	}
	if rule == nil || rule.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	return rule, nil
}

func (uc *TaxRuleUseCase) validate(rule *entity.TaxRule) error {
	if rule.Priority < 0 {
		return fmt.Errorf("%w: priority no puede ser negativa", domain.ErrInvalidInput)
	}
	if err := uc.checkGroup(rule.CompanyID, rule.BusinessEntityGroupID, entity.GroupKindBusinessEntity); err != nil {
		return err
	}
	return uc.checkGroup(rule.CompanyID, rule.ItemGroupID, entity.GroupKindItem)
}

func (uc *TaxRuleUseCase) checkGroup(companyID, groupID string, kind entity.GroupKind) error {
	if groupID == "" {
		return nil
	}
	g, err := uc.groups.GetByID(groupID)
	if err != nil {
		return err
	}
	if g == nil || g.CompanyID != companyID {
		return fmt.Errorf("%w: grupo %s no existe", domain.ErrInvalidInput, groupID)
	}
	if g.Kind != kind {
		return fmt.Errorf("%w: el grupo %s es de tipo %s, se esperaba %s", domain.ErrInvalidInput, g.Code, g.Kind, kind)
	}
	return nil
}

func toTaxRuleResponse(r *entity.TaxRule) *dto.TaxRuleResponse {
	return &dto.TaxRuleResponse{
		ID:                    r.ID,
		TaxID:                 r.TaxID,
		OperationCode:         r.OperationCode,
		BusinessEntityGroupID: r.BusinessEntityGroupID,
		ItemGroupID:           r.ItemGroupID,
		Priority:              r.Priority,
		Enabled:               r.Enabled,
		Description:           r.Description,
		CreatedAt:             r.CreatedAt,
		UpdatedAt:             r.UpdatedAt,
	}
}
