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

// BusinessEntityUseCase casos de uso para terceros (clientes y proveedores).
type BusinessEntityUseCase struct {
	repo repository.BusinessEntityRepository
}

// NewBusinessEntityUseCase construye el caso de uso.
func NewBusinessEntityUseCase(repo repository.BusinessEntityRepository) *BusinessEntityUseCase {
	return &BusinessEntityUseCase{repo: repo}
}

var businessEntityKinds = []string{entity.BusinessEntityCustomer, entity.BusinessEntitySupplier, entity.BusinessEntityBoth}

// Create crea un nuevo tercero. Kind vacío = customer.
func (uc *BusinessEntityUseCase) Create(companyID string, in dto.CreateBusinessEntityRequest) (*dto.BusinessEntityResponse, error) {
	in.Code = strings.TrimSpace(in.Code)
	in.Name = strings.TrimSpace(in.Name)
	if in.Code == "" || in.Name == "" {
		return nil, fmt.Errorf("%w: code y name son obligatorios", domain.ErrInvalidInput)
	}
	if in.Kind == "" {
		in.Kind = entity.BusinessEntityCustomer
	}
	if !lo.Contains(businessEntityKinds, in.Kind) {
		return nil, fmt.Errorf("%w: kind inválido %q", domain.ErrInvalidInput, in.Kind)
	}
	existing, err := uc.repo.GetByCompanyAndCode(companyID, in.Code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	be := &entity.BusinessEntity{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		Code:      in.Code,
		Name:      in.Name,
		TaxID:     in.TaxID,
		Kind:      in.Kind,
		Email:     in.Email,
		Phone:     in.Phone,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(be); err != nil {
		return nil, err
	}
	return toBusinessEntityResponse(be), nil
}

// GetByID obtiene un tercero de la empresa.
func (uc *BusinessEntityUseCase) GetByID(companyID, id string) (*dto.BusinessEntityResponse, error) {
	be, err := uc.get(companyID, id)
	if err != nil {
		return nil, err
	}
	return toBusinessEntityResponse(be), nil
}

// List lista terceros de la empresa.
func (uc *BusinessEntityUseCase) List(companyID string, page dto.PageRequest) ([]dto.BusinessEntityResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.ListByCompany(companyID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return lo.Map(list, func(be *entity.BusinessEntity, _ int) dto.BusinessEntityResponse {
		return *toBusinessEntityResponse(be)
	}), nil
}

// Update actualiza un tercero (campos opcionales).
func (uc *BusinessEntityUseCase) Update(companyID, id string, in dto.UpdateBusinessEntityRequest) (*dto.BusinessEntityResponse, error) {
	be, err := uc.get(companyID, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return nil, fmt.Errorf("%w: name es obligatorio", domain.ErrInvalidInput)
		}
		be.Name = strings.TrimSpace(*in.Name)
	}
	if in.TaxID != nil {
		be.TaxID = *in.TaxID
	}
	if in.Kind != nil {
		if !lo.Contains(businessEntityKinds, *in.Kind) {
			return nil, fmt.Errorf("%w: kind inválido %q", domain.ErrInvalidInput, *in.Kind)
		}
		be.Kind = *in.Kind
	}
	if in.Email != nil {
		be.Email = *in.Email
	}
	if in.Phone != nil {
		be.Phone = *in.Phone
	}
	be.UpdatedAt = time.Now()
	if err := uc.repo.Update(be); err != nil {
		return nil, err
	}
	return toBusinessEntityResponse(be), nil
}

func (uc *BusinessEntityUseCase) get(companyID, id string) (*entity.BusinessEntity, error) {
	be, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if be == nil || be.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	return be, nil
}

func toBusinessEntityResponse(be *entity.BusinessEntity) *dto.BusinessEntityResponse {
	return &dto.BusinessEntityResponse{
		ID:        be.ID,
		CompanyID: be.CompanyID,
		Code:      be.Code,
		Name:      be.Name,
		TaxID:     be.TaxID,
		Kind:      be.Kind,
		Email:     be.Email,
		Phone:     be.Phone,
		CreatedAt: be.CreatedAt,
		UpdatedAt: be.UpdatedAt,
	}
}
