package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Contable-api/internal/application/dto"
	"github.com/jhoicas/Contable-api/internal/domain"
	"github.com/jhoicas/Contable-api/internal/domain/entity"
)

// companyChecker es el contrato mínimo que necesita el middleware para consultar la empresa.
// Lo implementa *usecase.CompanyUseCase.
type companyChecker interface {
	GetByID(id string) (*dto.CompanyResponse, error)
}

// RequireActiveCompany verifica que la empresa del token exista y esté activa.
// Debe usarse DESPUÉS de AuthMiddleware (necesita LocalCompanyID).
//
// Comportamiento:
//   - 401 Unauthorized → no hay company_id en el contexto o la empresa no existe.
//   - 403 Forbidden → empresa inactiva.
//   - 503 Service Unavailable → fallo de infraestructura al consultar la DB.
func RequireActiveCompany(checker companyChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		companyID := GetCompanyID(c)
		if companyID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "UNAUTHORIZED",
				Message: "company_id no encontrado en el token",
			})
		}

		company, err := checker.GetByID(companyID)
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "UNKNOWN_COMPANY",
				Message: "la empresa del token no existe",
			})
		}
		if err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Code:    "COMPANY_CHECK_FAILED",
				Message: "no se pudo verificar la empresa, intente más tarde",
			})
		}

		if company.Status != entity.CompanyStatusActive {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "COMPANY_INACTIVE",
				Message: "la empresa '" + company.Name + "' no está activa",
			})
		}

		return c.Next()
	}
}
