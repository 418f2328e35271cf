package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/Contable-api/internal/application/ledger"
	"github.com/jhoicas/Contable-api/internal/application/taxation"
	"github.com/jhoicas/Contable-api/internal/application/usecase"
	"github.com/jhoicas/Contable-api/internal/infrastructure/export"
	infrapdf "github.com/jhoicas/Contable-api/internal/infrastructure/pdf"
	httpRouter "github.com/jhoicas/Contable-api/internal/interfaces/http"
	"github.com/jhoicas/Contable-api/pkg/config"
	"github.com/jhoicas/Contable-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("persistence", cfg.Persistence.Backend).
		Msg("iniciando aplicación")

	ctx := context.Background()
	store, err := openBacking(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar persistencia")
	}
	defer store.close()

	companyUC := usecase.NewCompanyUseCase(store.companies)
	taxUC := usecase.NewTaxUseCase(store.taxes)
	taxRuleUC := usecase.NewTaxRuleUseCase(store.rules, store.taxes, store.groups)
	groupUC := usecase.NewGroupUseCase(store.groups, store.entities, store.items)
	entityUC := usecase.NewBusinessEntityUseCase(store.entities)
	itemUC := usecase.NewItemUseCase(store.items)
	accountUC := usecase.NewAccountUseCase(store.accounts)
	periodUC := usecase.NewFiscalPeriodUseCase(store.periods)

	documentUC := taxation.NewDocumentUseCase(store.tx, store.documents, store.entities, store.items)
	resolutionUC := taxation.NewTaxResolutionUseCase(store.documents, store.taxes, store.rules, store.groups, log)

	// PDF: resumen de impuestos por documento
	pdfUC := taxation.NewPDFUseCase(resolutionUC, store.documents, store.companies, store.entities, infrapdf.NewMarotoPDFGenerator())

	ledgerUC := ledger.NewUseCase(
		store.tx, store.ledger, store.periods, store.accounts,
		store.documents, store.companies, export.NewJournalXMLExporter(), log,
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Contable API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		CompanyUC:        companyUC,
		TaxUC:            taxUC,
		TaxRuleUC:        taxRuleUC,
		GroupUC:          groupUC,
		BusinessEntityUC: entityUC,
		ItemUC:           itemUC,
		AccountUC:        accountUC,
		FiscalPeriodUC:   periodUC,
		DocumentUC:       documentUC,
		TaxResolutionUC:  resolutionUC,
		PDFUC:            pdfUC,
		LedgerUC:         ledgerUC,
		HealthCheck:      store.ping,
		JWTSecret:        cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
