package usecase

import (
	"errors"
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

// AccountUseCase casos de uso del plan de cuentas.
type AccountUseCase struct {
	repo repository.AccountRepository
}

// NewAccountUseCase construye el caso de uso.
func NewAccountUseCase(repo repository.AccountRepository) *AccountUseCase {
	return &AccountUseCase{repo: repo}
}

// Create crea una cuenta. Si ParentID viene informado, la cuenta padre debe existir en la empresa.
func (uc *AccountUseCase) Create(companyID string, in dto.CreateAccountRequest) (*dto.AccountResponse, error) {
	in.Code = strings.TrimSpace(in.Code)
	in.Name = strings.TrimSpace(in.Name)
	if in.Code == "" || in.Name == "" {
		return nil, fmt.Errorf("%w: code y name son obligatorios", domain.ErrInvalidInput)
	}
	accType := entity.AccountType(in.Type)
	if !accType.Valid() {
		return nil, fmt.Errorf("%w: type inválido %q", domain.ErrInvalidInput, in.Type)
	}
	if in.ParentID != "" {
		if _, err := uc.get(companyID, in.ParentID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, fmt.Errorf("%w: cuenta padre no existe", domain.ErrInvalidInput)
			}
			return nil, err
		}
	}
	existing, err := uc.repo.GetByCompanyAndCode(companyID, in.Code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	acc := &entity.Account{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		ParentID:  in.ParentID,
		Code:      in.Code,
		Name:      in.Name,
		Type:      accType,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(acc); err != nil {
		return nil, err
	}
	return toAccountResponse(acc), nil
}

// GetByID obtiene una cuenta de la empresa.
func (uc *AccountUseCase) GetByID(companyID, id string) (*dto.AccountResponse, error) {
	acc, err := uc.get(companyID, id)
	if err != nil {
		return nil, err
	}
	return toAccountResponse(acc), nil
}

// List devuelve el plan de cuentas ordenado por código.
func (uc *AccountUseCase) List(companyID string) ([]dto.AccountResponse, error) {
	list, err := uc.repo.ListByCompany(companyID)
	if err != nil {
		return nil, err
	}
	return lo.Map(list, func(a *entity.Account, _ int) dto.AccountResponse { return *toAccountResponse(a) }), nil
}

// Update cambia nombre y/o estado de la cuenta. Código y clase no se modifican.
func (uc *AccountUseCase) Update(companyID, id string, in dto.UpdateAccountRequest) (*dto.AccountResponse, error) {
	acc, err := uc.get(companyID, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return nil, fmt.Errorf("%w: name es obligatorio", domain.ErrInvalidInput)
		}
		acc.Name = strings.TrimSpace(*in.Name)
	}
	if in.Active != nil {
		acc.Active = *in.Active
	}
	acc.UpdatedAt = time.Now()
	if err := uc.repo.Update(acc); err != nil {
		return nil, err
	}
	return toAccountResponse(acc), nil
}

func (uc *AccountUseCase) get(companyID, id string) (*entity.Account, error) {
	acc, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if acc == nil || acc.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	return acc, nil
}

func toAccountResponse(a *entity.Account) *dto.AccountResponse {
	return &dto.AccountResponse{
		ID:        a.ID,
		ParentID:  a.ParentID,
		Code:      a.Code,
		Name:      a.Name,
		Type:      string(a.Type),
		Active:    a.Active,
		CreatedAt: a.CreatedAt,
	}
}
