// Package ledger contiene los casos de uso del libro mayor: registro de comprobantes,
// consultas, balance de prueba y exportación del libro diario.
package ledger

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/jhoicas/Contable-api/internal/application/dto"
	"github.com/jhoicas/Contable-api/internal/domain"
	"github.com/jhoicas/Contable-api/internal/domain/entity"
	domainledger "github.com/jhoicas/Contable-api/internal/domain/ledger"
	"github.com/jhoicas/Contable-api/internal/domain/repository"
	"github.com/jhoicas/Contable-api/pkg/logger"
)

// UseCase casos de uso del libro mayor.
type UseCase struct {
	txRunner    TxRunner
	ledgerRepo  repository.LedgerRepository
	periodRepo  repository.FiscalPeriodRepository
	accountRepo repository.AccountRepository
	docRepo     repository.DocumentRepository
	companyRepo repository.CompanyRepository
	exporter    JournalExporter
	log         *logger.Logger
}

// NewUseCase construye el caso de uso. log nil = sin logs.
func NewUseCase(
	txRunner TxRunner,
	ledgerRepo repository.LedgerRepository,
	periodRepo repository.FiscalPeriodRepository,
	accountRepo repository.AccountRepository,
	docRepo repository.DocumentRepository,
	companyRepo repository.CompanyRepository,
	exporter JournalExporter,
	log *logger.Logger,
) *UseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &UseCase{
		txRunner:    txRunner,
		ledgerRepo:  ledgerRepo,
		periodRepo:  periodRepo,
		accountRepo: accountRepo,
		docRepo:     docRepo,
		companyRepo: companyRepo,
		exporter:    exporter,
		log:         log.Component("ledger"),
	}
}

// PostTransaction registra un comprobante cuadrado en un periodo abierto.
// Las validaciones de periodo y cuentas se repiten dentro de la transacción (periodo bloqueado).
func (uc *UseCase) PostTransaction(ctx context.Context, companyID string, in dto.PostTransactionRequest) (*dto.LedgerTransactionResponse, error) {
	if in.PeriodID == "" || in.Date.IsZero() {
		return nil, fmt.Errorf("%w: period_id y date son obligatorios", domain.ErrInvalidInput)
	}
	if in.DocumentID != "" {
		doc, err := uc.docRepo.GetByID(in.DocumentID)
		if err != nil {
			return nil, err
		}
		if doc == nil || doc.CompanyID != companyID {
			return nil, fmt.Errorf("%w: documento %s no existe", domain.ErrInvalidInput, in.DocumentID)
		}
	}

	txID := uuid.New().String()
	entries := lo.Map(in.Entries, func(e dto.LedgerEntryRequest, i int) *entity.LedgerEntry {
		return &entity.LedgerEntry{
			ID:            uuid.New().String(),
			TransactionID: txID,
			LineNumber:    i + 1,
			AccountID:     e.AccountID,
			Debit:         e.Debit,
			Credit:        e.Credit,
			Memo:          strings.TrimSpace(e.Memo),
		}
	})
	if err := domainledger.ValidateBalanced(entries); err != nil {
		return nil, err
	}

	tx := &entity.LedgerTransaction{
		ID:          txID,
		CompanyID:   companyID,
		PeriodID:    in.PeriodID,
		Date:        in.Date,
		Reference:   strings.TrimSpace(in.Reference),
		Description: strings.TrimSpace(in.Description),
		DocumentID:  in.DocumentID,
		Entries:     entries,
		CreatedAt:   time.Now(),
	}

	err := uc.txRunner.RunLedger(ctx, in.PeriodID, func(
		ledgerRepo repository.LedgerRepository,
		periodRepo repository.FiscalPeriodRepository,
		accountRepo repository.AccountRepository,
	) error {
		period, err := periodRepo.GetByID(in.PeriodID)
		if err != nil {
			return err
		}
		if period == nil || period.CompanyID != companyID {
			return fmt.Errorf("%w: periodo %s no existe", domain.ErrInvalidInput, in.PeriodID)
		}
		if !period.IsOpen() {
			return domain.ErrPeriodClosed
		}
		if !period.Contains(in.Date) {
			return fmt.Errorf("%w: la fecha %s está fuera del periodo %s",
				domain.ErrInvalidInput, in.Date.Format(time.DateOnly), period.Name)
		}
		seen := make(map[string]struct{}, len(entries))
		for _, e := range entries {
			if _, ok := seen[e.AccountID]; ok {
				continue
			}
			seen[e.AccountID] = struct{}{}
			acc, err := accountRepo.GetByID(e.AccountID)
			if err != nil {
				return err
			}
			if acc == nil || acc.CompanyID != companyID {
				return fmt.Errorf("%w: cuenta %s no existe", domain.ErrInvalidInput, e.AccountID)
			}
			if !acc.Active {
				return fmt.Errorf("%w: cuenta %s inactiva", domain.ErrInvalidInput, acc.Code)
			}
		}
		return ledgerRepo.Create(tx)
	})
	if err != nil {
		return nil, err
	}

	debit, _ := tx.Totals()
	uc.log.Debug().
		Str("transaction_id", tx.ID).
		Str("period_id", tx.PeriodID).
		Int("entries", len(entries)).
		Str("total", debit.String()).
		Msg("comprobante registrado")
	return toTransactionResponse(tx), nil
}

// GetTransaction devuelve un comprobante con sus movimientos.
func (uc *UseCase) GetTransaction(companyID, id string) (*dto.LedgerTransactionResponse, error) {
	tx, err := uc.ledgerRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if tx == nil || tx.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	return toTransactionResponse(tx), nil
}

// ListByPeriod lista los comprobantes de un periodo.
func (uc *UseCase) ListByPeriod(companyID, periodID string) ([]dto.LedgerTransactionResponse, error) {
	if _, err := uc.period(companyID, periodID); err != nil {
		return nil, err
	}
	list, err := uc.ledgerRepo.ListByPeriod(periodID)
	if err != nil {
		return nil, err
	}
	return lo.Map(list, func(t *entity.LedgerTransaction, _ int) dto.LedgerTransactionResponse {
		return *toTransactionResponse(t)
	}), nil
}

// TrialBalance devuelve los totales débito/crédito por cuenta del periodo, ordenados por código.
// Balance se expresa en la naturaleza de la cuenta.
func (uc *UseCase) TrialBalance(companyID, periodID string) (*dto.TrialBalanceResponse, error) {
	period, err := uc.period(companyID, periodID)
	if err != nil {
		return nil, err
	}
	balances, err := uc.ledgerRepo.TrialBalance(periodID)
	if err != nil {
		return nil, err
	}
	accounts, err := uc.accountRepo.ListByCompany(companyID)
	if err != nil {
		return nil, err
	}
	byID := lo.KeyBy(accounts, func(a *entity.Account) string { return a.ID })

	out := &dto.TrialBalanceResponse{
		PeriodID:   period.ID,
		PeriodName: period.Name,
		Lines:      make([]dto.TrialBalanceLine, 0, len(balances)),
	}
	for _, b := range balances {
		line := dto.TrialBalanceLine{AccountID: b.AccountID, Debit: b.Debit, Credit: b.Credit}
		if acc, ok := byID[b.AccountID]; ok {
			line.AccountCode = acc.Code
			line.AccountName = acc.Name
			line.Type = string(acc.Type)
			if acc.Type.DebitNature() {
				line.Balance = b.Debit.Sub(b.Credit)
			} else {
				line.Balance = b.Credit.Sub(b.Debit)
			}
		}
		out.TotalDebit = out.TotalDebit.Add(b.Debit)
		out.TotalCredit = out.TotalCredit.Add(b.Credit)
		out.Lines = append(out.Lines, line)
	}
	return out, nil
}

// ExportPeriodXML genera el libro diario del periodo en XML.
func (uc *UseCase) ExportPeriodXML(companyID, periodID string) (data []byte, filename string, err error) {
	period, err := uc.period(companyID, periodID)
	if err != nil {
		return nil, "", err
	}
	company, err := uc.companyRepo.GetByID(companyID)
	if err != nil {
		return nil, "", fmt.Errorf("export: obtener empresa: %w", err)
	}
	if company == nil {
		return nil, "", domain.ErrNotFound
	}
	txs, err := uc.ledgerRepo.ListByPeriod(periodID)
	if err != nil {
		return nil, "", err
	}
	accounts, err := uc.accountRepo.ListByCompany(companyID)
	if err != nil {
		return nil, "", err
	}
	var buf bytes.Buffer
	if err := uc.exporter.ExportJournal(&buf, company, period, accounts, txs); err != nil {
		return nil, "", fmt.Errorf("export: %w", err)
	}
	return buf.Bytes(), fmt.Sprintf("diario_%s.xml", period.Name), nil
}

func (uc *UseCase) period(companyID, periodID string) (*entity.FiscalPeriod, error) {
	p, err := uc.periodRepo.GetByID(periodID)
	if err != nil {
		return nil, err
	}
	if p == nil || p.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

func toTransactionResponse(t *entity.LedgerTransaction) *dto.LedgerTransactionResponse {
	debit, credit := t.Totals()
	return &dto.LedgerTransactionResponse{
		ID:          t.ID,
		PeriodID:    t.PeriodID,
		Date:        t.Date,
		Reference:   t.Reference,
		Description: t.Description,
		DocumentID:  t.DocumentID,
		Entries: lo.Map(t.Entries, func(e *entity.LedgerEntry, _ int) dto.LedgerEntryResponse {
			return dto.LedgerEntryResponse{
				ID:         e.ID,
				LineNumber: e.LineNumber,
				AccountID:  e.AccountID,
				Debit:      e.Debit,
				Credit:     e.Credit,
				Memo:       e.Memo,
			}
		}),
		TotalDebit:  debit,
		TotalCredit: credit,
		CreatedAt:   t.CreatedAt,
	}
}
