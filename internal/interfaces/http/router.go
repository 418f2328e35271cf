package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Contable-api/internal/application/ledger"
	"github.com/jhoicas/Contable-api/internal/application/taxation"
	"github.com/jhoicas/Contable-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CompanyUC        *usecase.CompanyUseCase
	TaxUC            *usecase.TaxUseCase
	TaxRuleUC        *usecase.TaxRuleUseCase
	GroupUC          *usecase.GroupUseCase
	BusinessEntityUC *usecase.BusinessEntityUseCase
	ItemUC           *usecase.ItemUseCase
	AccountUC        *usecase.AccountUseCase
	FiscalPeriodUC   *usecase.FiscalPeriodUseCase
	DocumentUC       *taxation.DocumentUseCase
	TaxResolutionUC  *taxation.TaxResolutionUseCase
	PDFUC            *taxation.PDFUseCase
	LedgerUC         *ledger.UseCase
	// HealthCheck opcional; si falla, /health responde 503.
	HealthCheck func() error
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		if deps.HealthCheck != nil {
			if err := deps.HealthCheck(); err != nil {
				return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "down", "error": err.Error()})
			}
		}
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")

	// Companies (público; el alta de empresas la hace el onboarding)
	companies := api.Group("/companies")
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	companies.Get("/", companyHandler.List)
	companies.Post("/", companyHandler.Create)
	companies.Get("/:id", companyHandler.GetByID)

	// Rutas protegidas (Bearer Token + empresa activa). Lectura: cualquier rol.
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret), RequireActiveCompany(deps.CompanyUC))
	write := RequireRole(RoleAdmin, RoleContador)

	taxes := protected.Group("/taxes")
	taxHandler := NewTaxHandler(deps.TaxUC)
	taxes.Post("/", write, taxHandler.Create)
	taxes.Get("/", taxHandler.List)
	taxes.Get("/:id", taxHandler.GetByID)
	taxes.Put("/:id", write, taxHandler.Update)
	taxes.Post("/:id/disable", write, taxHandler.Disable)

	rules := protected.Group("/tax-rules")
	ruleHandler := NewTaxRuleHandler(deps.TaxRuleUC)
	rules.Post("/", write, ruleHandler.Create)
	rules.Get("/", ruleHandler.List)
	rules.Get("/:id", ruleHandler.GetByID)
	rules.Put("/:id", write, ruleHandler.Update)
	rules.Delete("/:id", write, ruleHandler.Delete)

	groups := protected.Group("/groups")
	groupHandler := NewGroupHandler(deps.GroupUC)
	groups.Post("/", write, groupHandler.Create)
	groups.Get("/", groupHandler.List)
	groups.Get("/:id/members", groupHandler.ListMembers)
	groups.Post("/:id/members", write, groupHandler.AddMember)
	groups.Delete("/:id/members/:memberId", write, groupHandler.RemoveMember)

	entities := protected.Group("/business-entities")
	entityHandler := NewBusinessEntityHandler(deps.BusinessEntityUC)
	entities.Post("/", write, entityHandler.Create)
	entities.Get("/", entityHandler.List)
	entities.Get("/:id", entityHandler.GetByID)
	entities.Put("/:id", write, entityHandler.Update)

	items := protected.Group("/items")
	itemHandler := NewItemHandler(deps.ItemUC)
	items.Post("/", write, itemHandler.Create)
	items.Get("/", itemHandler.List)
	items.Get("/:id", itemHandler.GetByID)
	items.Put("/:id", write, itemHandler.Update)

	documents := protected.Group("/documents")
	documentHandler := NewDocumentHandler(deps.DocumentUC, deps.TaxResolutionUC, deps.PDFUC)
	documents.Post("/", write, documentHandler.Create)
	documents.Get("/", documentHandler.List)
	documents.Get("/:id", documentHandler.GetByID)
	documents.Get("/:id/taxes", documentHandler.Taxes)
	documents.Get("/:id/taxes/explain", documentHandler.ExplainTaxes)
	documents.Get("/:id/taxes/pdf", documentHandler.TaxesPDF)

	accounts := protected.Group("/accounts")
	accountHandler := NewAccountHandler(deps.AccountUC)
	accounts.Post("/", write, accountHandler.Create)
	accounts.Get("/", accountHandler.List)
	accounts.Get("/:id", accountHandler.GetByID)
	accounts.Put("/:id", write, accountHandler.Update)

	periods := protected.Group("/fiscal-periods")
	periodHandler := NewFiscalPeriodHandler(deps.FiscalPeriodUC, deps.LedgerUC)
	periods.Post("/", write, periodHandler.Create)
	periods.Get("/", periodHandler.List)
	periods.Get("/:id", periodHandler.GetByID)
	periods.Post("/:id/close", write, periodHandler.Close)
	periods.Post("/:id/reopen", write, periodHandler.Reopen)
	periods.Get("/:id/trial-balance", periodHandler.TrialBalance)
	periods.Get("/:id/export", periodHandler.Export)

	transactions := protected.Group("/ledger/transactions")
	ledgerHandler := NewLedgerHandler(deps.LedgerUC)
	transactions.Post("/", write, ledgerHandler.Post)
	transactions.Get("/", ledgerHandler.ListByPeriod)
	transactions.Get("/:id", ledgerHandler.GetByID)
}
