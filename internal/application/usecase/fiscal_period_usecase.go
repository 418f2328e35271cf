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

// FiscalPeriodUseCase casos de uso de periodos contables.
type FiscalPeriodUseCase struct {
	repo repository.FiscalPeriodRepository
}

// NewFiscalPeriodUseCase construye el caso de uso.
func NewFiscalPeriodUseCase(repo repository.FiscalPeriodRepository) *FiscalPeriodUseCase {
	return &FiscalPeriodUseCase{repo: repo}
}

// Create abre un periodo. Las fechas se truncan al día y no puede solaparse con otro periodo de la empresa.
func (uc *FiscalPeriodUseCase) Create(companyID string, in dto.CreateFiscalPeriodRequest) (*dto.FiscalPeriodResponse, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return nil, fmt.Errorf("%w: name es obligatorio", domain.ErrInvalidInput)
	}
	if in.StartDate.IsZero() || in.EndDate.IsZero() {
		return nil, fmt.Errorf("%w: start_date y end_date son obligatorias", domain.ErrInvalidInput)
	}
	start, end := day(in.StartDate), day(in.EndDate)
	if end.Before(start) {
		return nil, fmt.Errorf("%w: end_date anterior a start_date", domain.ErrInvalidInput)
	}
	now := time.Now()
	period := &entity.FiscalPeriod{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		Name:      in.Name,
		StartDate: start,
		EndDate:   end,
		Status:    entity.PeriodStatusOpen,
		CreatedAt: now,
		UpdatedAt: now,
	}
	existing, err := uc.repo.ListByCompany(companyID)
	if err != nil {
		return nil, err
	}
	if other, found := lo.Find(existing, period.Overlaps); found {
		return nil, fmt.Errorf("%w: se solapa con el periodo %s", domain.ErrConflict, other.Name)
	}
	if err := uc.repo.Create(period); err != nil {
		return nil, err
	}
	return toFiscalPeriodResponse(period), nil
}

// GetByID obtiene un periodo de la empresa.
func (uc *FiscalPeriodUseCase) GetByID(companyID, id string) (*dto.FiscalPeriodResponse, error) {
	p, err := uc.get(companyID, id)
	if err != nil {
		return nil, err
	}
	return toFiscalPeriodResponse(p), nil
}

// List lista los periodos de la empresa por fecha de inicio.
func (uc *FiscalPeriodUseCase) List(companyID string) ([]dto.FiscalPeriodResponse, error) {
	list, err := uc.repo.ListByCompany(companyID)
	if err != nil {
		return nil, err
	}
	return lo.Map(list, func(p *entity.FiscalPeriod, _ int) dto.FiscalPeriodResponse {
		return *toFiscalPeriodResponse(p)
	}), nil
}

// Close cierra el periodo; deja de admitir comprobantes.
func (uc *FiscalPeriodUseCase) Close(companyID, id string) (*dto.FiscalPeriodResponse, error) {
	return uc.setStatus(companyID, id, entity.PeriodStatusClosed)
}

// Reopen reabre un periodo cerrado.
func (uc *FiscalPeriodUseCase) Reopen(companyID, id string) (*dto.FiscalPeriodResponse, error) {
	return uc.setStatus(companyID, id, entity.PeriodStatusOpen)
}

func (uc *FiscalPeriodUseCase) setStatus(companyID, id, status string) (*dto.FiscalPeriodResponse, error) {
	p, err := uc.get(companyID, id)
	if err != nil {
		return nil, err
	}
	if p.Status == status {
		return nil, fmt.Errorf("%w: el periodo ya está %s", domain.ErrConflict, status)
	}
	p.Status = status
	p.UpdatedAt = time.Now()
	if err := uc.repo.Update(p); err != nil {
		return nil, err
	}
	return toFiscalPeriodResponse(p), nil
}

func (uc *FiscalPeriodUseCase) get(companyID, id string) (*entity.FiscalPeriod, error) {
	p, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil || p.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

func day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func toFiscalPeriodResponse(p *entity.FiscalPeriod) *dto.FiscalPeriodResponse {
	return &dto.FiscalPeriodResponse{
		ID:        p.ID,
		Name:      p.Name,
		StartDate: p.StartDate,
		EndDate:   p.EndDate,
		Status:    p.Status,
	}
}
