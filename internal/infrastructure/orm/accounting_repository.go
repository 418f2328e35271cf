package orm

import (
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/jhoicas/Contable-api/internal/domain"
	"github.com/jhoicas/Contable-api/internal/domain/entity"
	"github.com/jhoicas/Contable-api/internal/domain/repository"
)

var (
	_ repository.AccountRepository      = (*AccountRepo)(nil)
	_ repository.FiscalPeriodRepository = (*FiscalPeriodRepo)(nil)
	_ repository.LedgerRepository       = (*LedgerRepo)(nil)
)

// AccountRepo implementación gorm de AccountRepository.
type AccountRepo struct {
	db *gorm.DB
}

// NewAccountRepository construye el repositorio sobre db (o una tx de gorm).
func NewAccountRepository(db *gorm.DB) *AccountRepo {
	return &AccountRepo{db: db}
}

// Create persiste una cuenta del plan de cuentas.
func (r *AccountRepo) Create(a *entity.Account) error {
	if err := r.db.Create(accountFromEntity(a)).Error; err != nil {
		if isDuplicateKeyErr(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert account: %w", err)
	}
	return nil
}

// GetByID obtiene una cuenta por ID.
func (r *AccountRepo) GetByID(id string) (*entity.Account, error) {
	return r.first(r.db.Where("id = ?", id))
}

// GetByCompanyAndCode obtiene una cuenta por empresa y código.
func (r *AccountRepo) GetByCompanyAndCode(companyID, code string) (*entity.Account, error) {
	return r.first(r.db.Where("company_id = ? AND code = ?", companyID, code))
}

func (r *AccountRepo) first(q *gorm.DB) (*entity.Account, error) {
	var m accountModel
	if err := q.First(&m).Error; err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get account: %w", err)
	}
	return m.toEntity(), nil
}

// ListByCompany devuelve el plan de cuentas ordenado por código.
func (r *AccountRepo) ListByCompany(companyID string) ([]*entity.Account, error) {
	var rows []accountModel
	if err := r.db.Where("company_id = ?", companyID).Order("code").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	list := make([]*entity.Account, 0, len(rows))
	for i := range rows {
		list = append(list, rows[i].toEntity())
	}
	return list, nil
}

// Update actualiza nombre, padre y estado de la cuenta.
func (r *AccountRepo) Update(a *entity.Account) error {
	err := r.db.Model(&accountModel{}).Where("id = ?", a.ID).Updates(map[string]any{
		"parent_id":  a.ParentID,
		"name":       a.Name,
		"active":     a.Active,
		"updated_at": a.UpdatedAt,
	}).Error
	if err != nil {
		return fmt.Errorf("update account: %w", err)
	}
	return nil
}

// FiscalPeriodRepo implementación gorm de FiscalPeriodRepository.
type FiscalPeriodRepo struct {
	db *gorm.DB
}

// NewFiscalPeriodRepository construye el repositorio sobre db (o una tx de gorm).
func NewFiscalPeriodRepository(db *gorm.DB) *FiscalPeriodRepo {
	return &FiscalPeriodRepo{db: db}
}

// Create persiste un periodo contable.
func (r *FiscalPeriodRepo) Create(p *entity.FiscalPeriod) error {
	if err := r.db.Create(fiscalPeriodFromEntity(p)).Error; err != nil {
		return fmt.Errorf("insert fiscal period: %w", err)
	}
	return nil
}

// GetByID obtiene un periodo por ID.
func (r *FiscalPeriodRepo) GetByID(id string) (*entity.FiscalPeriod, error) {
	var m fiscalPeriodModel
	if err := r.db.Where("id = ?", id).First(&m).Error; err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get fiscal period: %w", err)
	}
	return m.toEntity(), nil
}

// ListByCompany devuelve los periodos ordenados por fecha de inicio.
func (r *FiscalPeriodRepo) ListByCompany(companyID string) ([]*entity.FiscalPeriod, error) {
	var rows []fiscalPeriodModel
	if err := r.db.Where("company_id = ?", companyID).Order("start_date").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list fiscal periods: %w", err)
	}
	list := make([]*entity.FiscalPeriod, 0, len(rows))
	for i := range rows {
		list = append(list, rows[i].toEntity())
	}
	return list, nil
}

// Update actualiza nombre y estado del periodo.
func (r *FiscalPeriodRepo) Update(p *entity.FiscalPeriod) error {
	err := r.db.Model(&fiscalPeriodModel{}).Where("id = ?", p.ID).Updates(map[string]any{
		"name":       p.Name,
		"status":     p.Status,
		"updated_at": p.UpdatedAt,
	}).Error
	if err != nil {
		return fmt.Errorf("update fiscal period: %w", err)
	}
	return nil
}

// LedgerRepo implementación gorm de LedgerRepository.
type LedgerRepo struct {
	db *gorm.DB
}

// NewLedgerRepository construye el repositorio sobre db (o una tx de gorm).
func NewLedgerRepository(db *gorm.DB) *LedgerRepo {
	return &LedgerRepo{db: db}
}

// Create persiste la cabecera y los movimientos (gorm crea la asociación Entries).
func (r *LedgerRepo) Create(t *entity.LedgerTransaction) error {
	if err := r.db.Create(ledgerTransactionFromEntity(t)).Error; err != nil {
		return fmt.Errorf("insert ledger transaction: %w", err)
	}
	return nil
}

// GetByID obtiene un comprobante con sus movimientos.
func (r *LedgerRepo) GetByID(id string) (*entity.LedgerTransaction, error) {
	var m ledgerTransactionModel
	err := r.db.Preload("Entries", func(db *gorm.DB) *gorm.DB { return db.Order("line_number") }).
		Where("id = ?", id).First(&m).Error
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get ledger transaction: %w", err)
	}
	return m.toEntity(), nil
}

// ListByPeriod devuelve los comprobantes del periodo ordenados por fecha.
func (r *LedgerRepo) ListByPeriod(periodID string) ([]*entity.LedgerTransaction, error) {
	var rows []ledgerTransactionModel
	err := r.db.Preload("Entries", func(db *gorm.DB) *gorm.DB { return db.Order("line_number") }).
		Where("period_id = ?", periodID).
		Order("date").Order("created_at").Order("id").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list ledger transactions: %w", err)
	}
	list := make([]*entity.LedgerTransaction, 0, len(rows))
	for i := range rows {
		list = append(list, rows[i].toEntity())
	}
	return list, nil
}

// TrialBalance suma débitos y créditos por cuenta dentro del periodo.
// Los montos se suman en Go sobre decimal: cada dialecto devuelve NUMERIC con un tipo distinto.
func (r *LedgerRepo) TrialBalance(periodID string) ([]*entity.AccountBalance, error) {
	type row struct {
		AccountID string
		Code      string
		Debit     decimal.Decimal
		Credit    decimal.Decimal
	}
	var rows []row
	err := r.db.Table("ledger_entries AS e").
		Select("e.account_id, a.code, e.debit, e.credit").
		Joins("JOIN ledger_transactions t ON t.id = e.transaction_id").
		Joins("JOIN accounts a ON a.id = e.account_id").
		Where("t.period_id = ?", periodID).
		Order("a.code").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("trial balance: %w", err)
	}
	var list []*entity.AccountBalance
	byAccount := make(map[string]*entity.AccountBalance)
	for _, rw := range rows {
		b, ok := byAccount[rw.AccountID]
		if !ok {
			b = &entity.AccountBalance{AccountID: rw.AccountID}
			byAccount[rw.AccountID] = b
			list = append(list, b)
		}
		b.Debit = b.Debit.Add(rw.Debit)
		b.Credit = b.Credit.Add(rw.Credit)
	}
	return list, nil
}
