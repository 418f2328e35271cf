package usecase

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Contable-api/internal/application/dto"
	"github.com/jhoicas/Contable-api/internal/domain"
	"github.com/jhoicas/Contable-api/internal/domain/entity"
	"github.com/jhoicas/Contable-api/internal/domain/repository"
)

var hundred = decimal.NewFromInt(100)

// TaxUseCase casos de uso del catálogo de impuestos.
type TaxUseCase struct {
	repo repository.TaxRepository
}

// NewTaxUseCase construye el caso de uso.
func NewTaxUseCase(repo repository.TaxRepository) *TaxUseCase {
	return &TaxUseCase{repo: repo}
}

// Create crea un impuesto. El código es único por empresa (domain.ErrDuplicate).
func (uc *TaxUseCase) Create(companyID string, in dto.CreateTaxRequest) (*dto.TaxResponse, error) {
	in.Code = strings.TrimSpace(in.Code)
	in.Name = strings.TrimSpace(in.Name)
	if in.Code == "" || in.Name == "" {
		return nil, fmt.Errorf("%w: code y name son obligatorios", domain.ErrInvalidInput)
	}
	existing, err := uc.repo.GetByCompanyAndCode(companyID, in.Code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	tax := &entity.Tax{
		ID:              uuid.New().String(),
		CompanyID:       companyID,
		Code:            in.Code,
		Name:            in.Name,
		Kind:            entity.TaxKind(in.Kind),
		Level:           entity.TaxLevel(in.Level),
		Amount:          in.Amount,
		Percentage:      in.Percentage,
		Enabled:         in.Enabled == nil || *in.Enabled,
		IncludedInPrice: in.IncludedInPrice,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := validateTax(tax); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(tax); err != nil {
		return nil, err
	}
	return toTaxResponse(tax), nil
}

// GetByID obtiene un impuesto de la empresa.
func (uc *TaxUseCase) GetByID(companyID, id string) (*dto.TaxResponse, error) {
	tax, err := uc.get(companyID, id)
	if err != nil {
		return nil, err
	}
	return toTaxResponse(tax), nil
}

// List devuelve el catálogo de la empresa.
func (uc *TaxUseCase) List(companyID string) ([]dto.TaxResponse, error) {
	list, err := uc.repo.ListByCompany(companyID)
	if err != nil {
		return nil, err
	}
	return lo.Map(list, func(t *entity.Tax, _ int) dto.TaxResponse { return *toTaxResponse(t) }), nil
}

// Update aplica una actualización parcial y revalida el impuesto completo.
func (uc *TaxUseCase) Update(companyID, id string, in dto.UpdateTaxRequest) (*dto.TaxResponse, error) {
	tax, err := uc.get(companyID, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		tax.Name = strings.TrimSpace(*in.Name)
	}
	if in.Kind != nil {
		tax.Kind = entity.TaxKind(*in.Kind)
	}
	if in.Level != nil {
		tax.Level = entity.TaxLevel(*in.Level)
	}
	if in.Amount != nil {
		tax.Amount = *in.Amount
	}
	if in.Percentage != nil {
		tax.Percentage = *in.Percentage
	}
	if in.Enabled != nil {
		tax.Enabled = *in.Enabled
	}
	if in.IncludedInPrice != nil {
		tax.IncludedInPrice = *in.IncludedInPrice
	}
	if err := validateTax(tax); err != nil {
		return nil, err
	}
	tax.UpdatedAt = time.Now()
	if err := uc.repo.Update(tax); err != nil {
		return nil, err
	}
	return toTaxResponse(tax), nil
}

// Disable deshabilita el impuesto: ninguna regla podrá aplicarlo.
func (uc *TaxUseCase) Disable(companyID, id string) (*dto.TaxResponse, error) {
	disabled := false
	return uc.Update(companyID, id, dto.UpdateTaxRequest{Enabled: &disabled})
}

func (uc *TaxUseCase) get(companyID, id string) (*entity.Tax, error) {
	tax, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if tax == nil || tax.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	return tax, nil
}

func validateTax(t *entity.Tax) error {
	if t.Name == "" {
		return fmt.Errorf("%w: name es obligatorio", domain.ErrInvalidInput)
	}
	if !t.Kind.Valid() {
		return fmt.Errorf("%w: kind inválido %q", domain.ErrInvalidInput, t.Kind)
	}
	if !t.Level.Valid() {
		return fmt.Errorf("%w: level inválido %q", domain.ErrInvalidInput, t.Level)
	}
	if t.Amount.IsNegative() {
		return fmt.Errorf("%w: amount no puede ser negativo", domain.ErrInvalidInput)
	}
	if t.Kind == entity.TaxKindPercentage && (t.Percentage.IsNegative() || t.Percentage.GreaterThan(hundred)) {
		return fmt.Errorf("%w: percentage debe estar entre 0 y 100", domain.ErrInvalidInput)
	}
	return nil
}

func toTaxResponse(t *entity.Tax) *dto.TaxResponse {
	return &dto.TaxResponse{
		ID:              t.ID,
		CompanyID:       t.CompanyID,
		Code:            t.Code,
		Name:            t.Name,
		Kind:            string(t.Kind),
		Level:           string(t.Level),
		Amount:          t.Amount,
		Percentage:      t.Percentage,
		Enabled:         t.Enabled,
		IncludedInPrice: t.IncludedInPrice,
		CreatedAt:       t.CreatedAt,
		UpdatedAt:       t.UpdatedAt,
	}
}
