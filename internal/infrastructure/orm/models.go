package orm

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Contable-api/internal/domain/entity"
)

// Los modelos gorm viven aquí para que las entidades de dominio no dependan del ORM.
// Los IDs son varchar(36) para que el mismo esquema funcione en postgres y sqlite.

type companyModel struct {
	ID        string    `gorm:"type:varchar(36);primaryKey"`
	Name      string    `gorm:"type:varchar(200);not null"`
	NIT       string    `gorm:"column:nit;type:varchar(30);not null;uniqueIndex"`
	Address   string    `gorm:"type:varchar(300);not null;default:''"`
	Phone     string    `gorm:"type:varchar(50);not null;default:''"`
	Email     string    `gorm:"type:varchar(200);not null;default:''"`
	Currency  string    `gorm:"type:varchar(3);not null;default:'COP'"`
	Status    string    `gorm:"type:varchar(20);not null"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (companyModel) TableName() string { return "companies" }

func companyFromEntity(c *entity.Company) *companyModel {
	return &companyModel{
		ID: c.ID, Name: c.Name, NIT: c.NIT, Address: c.Address, Phone: c.Phone, Email: c.Email,
		Currency: c.Currency, Status: c.Status, CreatedAt: c.CreatedAt, UpdatedAt: c.UpdatedAt,
	}
}

func (m *companyModel) toEntity() *entity.Company {
	return &entity.Company{
		ID: m.ID, Name: m.Name, NIT: m.NIT, Address: m.Address, Phone: m.Phone, Email: m.Email,
		Currency: m.Currency, Status: m.Status, CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt,
	}
}

type taxModel struct {
	ID              string          `gorm:"type:varchar(36);primaryKey"`
	CompanyID       string          `gorm:"type:varchar(36);not null;uniqueIndex:ux_taxes_company_code,priority:1"`
	Code            string          `gorm:"type:varchar(30);not null;uniqueIndex:ux_taxes_company_code,priority:2"`
	Name            string          `gorm:"type:varchar(200);not null"`
	Kind            string          `gorm:"type:varchar(20);not null"`
	Level           string          `gorm:"type:varchar(20);not null"`
	Amount          decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Percentage      decimal.Decimal `gorm:"type:decimal(7,4);not null"`
	Enabled         bool            `gorm:"not null"`
	IncludedInPrice bool            `gorm:"not null"`
	CreatedAt       time.Time       `gorm:"not null"`
	UpdatedAt       time.Time       `gorm:"not null"`
}

func (taxModel) TableName() string { return "taxes" }

func taxFromEntity(t *entity.Tax) *taxModel {
	return &taxModel{
		ID: t.ID, CompanyID: t.CompanyID, Code: t.Code, Name: t.Name,
		Kind: string(t.Kind), Level: string(t.Level), Amount: t.Amount, Percentage: t.Percentage,
		Enabled: t.Enabled, IncludedInPrice: t.IncludedInPrice, CreatedAt: t.CreatedAt, UpdatedAt: t.UpdatedAt,
	}
}

func (m *taxModel) toEntity() *entity.Tax {
	return &entity.Tax{
		ID: m.ID, CompanyID: m.CompanyID, Code: m.Code, Name: m.Name,
		Kind: entity.TaxKind(m.Kind), Level: entity.TaxLevel(m.Level), Amount: m.Amount, Percentage: m.Percentage,
		Enabled: m.Enabled, IncludedInPrice: m.IncludedInPrice, CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt,
	}
}

type taxRuleModel struct {
	ID                    string    `gorm:"type:varchar(36);primaryKey"`
	CompanyID             string    `gorm:"type:varchar(36);not null;index:ix_tax_rules_company_priority,priority:1"`
	TaxID                 string    `gorm:"type:varchar(36);not null;index"`
	OperationCode         string    `gorm:"type:varchar(50);not null;default:''"`
	BusinessEntityGroupID string    `gorm:"type:varchar(36);not null;default:''"`
	ItemGroupID           string    `gorm:"type:varchar(36);not null;default:''"`
	Priority              int       `gorm:"not null;index:ix_tax_rules_company_priority,priority:2"`
	Enabled               bool      `gorm:"not null"`
	Description           string    `gorm:"type:varchar(300);not null;default:''"`
	CreatedAt             time.Time `gorm:"not null"`
	UpdatedAt             time.Time `gorm:"not null"`
}

func (taxRuleModel) TableName() string { return "tax_rules" }

func taxRuleFromEntity(r *entity.TaxRule) *taxRuleModel {
	return &taxRuleModel{
		ID: r.ID, CompanyID: r.CompanyID, TaxID: r.TaxID, OperationCode: r.OperationCode,
		BusinessEntityGroupID: r.BusinessEntityGroupID, ItemGroupID: r.ItemGroupID,
		Priority: r.Priority, Enabled: r.Enabled, Description: r.Description,
		CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt,
	}
}

func (m *taxRuleModel) toEntity() *entity.TaxRule {
	return &entity.TaxRule{
		ID: m.ID, CompanyID: m.CompanyID, TaxID: m.TaxID, OperationCode: m.OperationCode,
		BusinessEntityGroupID: m.BusinessEntityGroupID, ItemGroupID: m.ItemGroupID,
		Priority: m.Priority, Enabled: m.Enabled, Description: m.Description,
		CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt,
	}
}

type groupModel struct {
	ID        string    `gorm:"type:varchar(36);primaryKey"`
	CompanyID string    `gorm:"type:varchar(36);not null;uniqueIndex:ux_tax_groups_company_code,priority:1"`
	Code      string    `gorm:"type:varchar(30);not null;uniqueIndex:ux_tax_groups_company_code,priority:2"`
	Name      string    `gorm:"type:varchar(200);not null"`
	Kind      string    `gorm:"type:varchar(20);not null"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (groupModel) TableName() string { return "tax_groups" }

func groupFromEntity(g *entity.Group) *groupModel {
	return &groupModel{
		ID: g.ID, CompanyID: g.CompanyID, Code: g.Code, Name: g.Name, Kind: string(g.Kind),
		CreatedAt: g.CreatedAt, UpdatedAt: g.UpdatedAt,
	}
}

func (m *groupModel) toEntity() *entity.Group {
	return &entity.Group{
		ID: m.ID, CompanyID: m.CompanyID, Code: m.Code, Name: m.Name, Kind: entity.GroupKind(m.Kind),
		CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt,
	}
}

type groupMembershipModel struct {
	ID        string    `gorm:"type:varchar(36);primaryKey"`
	GroupID   string    `gorm:"type:varchar(36);not null;uniqueIndex:ux_group_memberships_group_member,priority:1"`
	MemberID  string    `gorm:"type:varchar(36);not null;index;uniqueIndex:ux_group_memberships_group_member,priority:2"`
	Kind      string    `gorm:"type:varchar(20);not null"`
	CreatedAt time.Time `gorm:"not null"`
}

func (groupMembershipModel) TableName() string { return "group_memberships" }

func membershipFromEntity(m *entity.GroupMembership) *groupMembershipModel {
	return &groupMembershipModel{ID: m.ID, GroupID: m.GroupID, MemberID: m.MemberID, Kind: string(m.Kind), CreatedAt: m.CreatedAt}
}

func (m *groupMembershipModel) toEntity() *entity.GroupMembership {
	return &entity.GroupMembership{ID: m.ID, GroupID: m.GroupID, MemberID: m.MemberID, Kind: entity.GroupKind(m.Kind), CreatedAt: m.CreatedAt}
}

type businessEntityModel struct {
	ID        string    `gorm:"type:varchar(36);primaryKey"`
	CompanyID string    `gorm:"type:varchar(36);not null;uniqueIndex:ux_business_entities_company_code,priority:1"`
	Code      string    `gorm:"type:varchar(30);not null;uniqueIndex:ux_business_entities_company_code,priority:2"`
	Name      string    `gorm:"type:varchar(200);not null"`
	TaxID     string    `gorm:"type:varchar(30);not null;default:''"`
	Kind      string    `gorm:"type:varchar(20);not null"`
	Email     string    `gorm:"type:varchar(200);not null;default:''"`
	Phone     string    `gorm:"type:varchar(50);not null;default:''"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (businessEntityModel) TableName() string { return "business_entities" }

func businessEntityFromEntity(b *entity.BusinessEntity) *businessEntityModel {
	return &businessEntityModel{
		ID: b.ID, CompanyID: b.CompanyID, Code: b.Code, Name: b.Name, TaxID: b.TaxID, Kind: b.Kind,
		Email: b.Email, Phone: b.Phone, CreatedAt: b.CreatedAt, UpdatedAt: b.UpdatedAt,
	}
}

func (m *businessEntityModel) toEntity() *entity.BusinessEntity {
	return &entity.BusinessEntity{
		ID: m.ID, CompanyID: m.CompanyID, Code: m.Code, Name: m.Name, TaxID: m.TaxID, Kind: m.Kind,
		Email: m.Email, Phone: m.Phone, CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt,
	}
}

type itemModel struct {
	ID          string          `gorm:"type:varchar(36);primaryKey"`
	CompanyID   string          `gorm:"type:varchar(36);not null;uniqueIndex:ux_items_company_code,priority:1"`
	Code        string          `gorm:"type:varchar(50);not null;uniqueIndex:ux_items_company_code,priority:2"`
	Name        string          `gorm:"type:varchar(200);not null"`
	Price       decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	UnitMeasure string          `gorm:"type:varchar(20);not null"`
	CreatedAt   time.Time       `gorm:"not null"`
	UpdatedAt   time.Time       `gorm:"not null"`
}

func (itemModel) TableName() string { return "items" }

func itemFromEntity(i *entity.Item) *itemModel {
	return &itemModel{
		ID: i.ID, CompanyID: i.CompanyID, Code: i.Code, Name: i.Name, Price: i.Price,
		UnitMeasure: i.UnitMeasure, CreatedAt: i.CreatedAt, UpdatedAt: i.UpdatedAt,
	}
}

func (m *itemModel) toEntity() *entity.Item {
	return &entity.Item{
		ID: m.ID, CompanyID: m.CompanyID, Code: m.Code, Name: m.Name, Price: m.Price,
		UnitMeasure: m.UnitMeasure, CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt,
	}
}

type documentModel struct {
	ID               string    `gorm:"type:varchar(36);primaryKey"`
	CompanyID        string    `gorm:"type:varchar(36);not null;index"`
	OperationCode    string    `gorm:"type:varchar(50);not null"`
	BusinessEntityID string    `gorm:"type:varchar(36);not null;default:''"`
	Number           string    `gorm:"type:varchar(50);not null;default:''"`
	Date             time.Time `gorm:"not null"`
	Notes            string    `gorm:"type:text;not null;default:''"`
	CreatedAt        time.Time `gorm:"not null"`
	UpdatedAt        time.Time `gorm:"not null"`
}

func (documentModel) TableName() string { return "documents" }

func documentFromEntity(d *entity.Document) *documentModel {
	return &documentModel{
		ID: d.ID, CompanyID: d.CompanyID, OperationCode: d.OperationCode, BusinessEntityID: d.BusinessEntityID,
		Number: d.Number, Date: d.Date, Notes: d.Notes, CreatedAt: d.CreatedAt, UpdatedAt: d.UpdatedAt,
	}
}

func (m *documentModel) toEntity() *entity.Document {
	return &entity.Document{
		ID: m.ID, CompanyID: m.CompanyID, OperationCode: m.OperationCode, BusinessEntityID: m.BusinessEntityID,
		Number: m.Number, Date: m.Date, Notes: m.Notes, CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt,
	}
}

type documentLineModel struct {
	ID          string          `gorm:"type:varchar(36);primaryKey"`
	DocumentID  string          `gorm:"type:varchar(36);not null;uniqueIndex:ux_document_lines_number,priority:1"`
	LineNumber  int             `gorm:"not null;uniqueIndex:ux_document_lines_number,priority:2"`
	ItemID      string          `gorm:"type:varchar(36);not null;default:''"`
	Description string          `gorm:"type:varchar(300);not null;default:''"`
	Quantity    decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
}

func (documentLineModel) TableName() string { return "document_lines" }

func documentLineFromEntity(l *entity.DocumentLine) *documentLineModel {
	return &documentLineModel{
		ID: l.ID, DocumentID: l.DocumentID, LineNumber: l.LineNumber, ItemID: l.ItemID,
		Description: l.Description, Quantity: l.Quantity, UnitPrice: l.UnitPrice,
	}
}

func (m *documentLineModel) toEntity() *entity.DocumentLine {
	return &entity.DocumentLine{
		ID: m.ID, DocumentID: m.DocumentID, LineNumber: m.LineNumber, ItemID: m.ItemID,
		Description: m.Description, Quantity: m.Quantity, UnitPrice: m.UnitPrice,
	}
}

type accountModel struct {
	ID        string    `gorm:"type:varchar(36);primaryKey"`
	CompanyID string    `gorm:"type:varchar(36);not null;uniqueIndex:ux_accounts_company_code,priority:1"`
	ParentID  string    `gorm:"type:varchar(36);not null;default:''"`
	Code      string    `gorm:"type:varchar(20);not null;uniqueIndex:ux_accounts_company_code,priority:2"`
	Name      string    `gorm:"type:varchar(200);not null"`
	Type      string    `gorm:"type:varchar(20);not null"`
	Active    bool      `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (accountModel) TableName() string { return "accounts" }

func accountFromEntity(a *entity.Account) *accountModel {
	return &accountModel{
		ID: a.ID, CompanyID: a.CompanyID, ParentID: a.ParentID, Code: a.Code, Name: a.Name,
		Type: string(a.Type), Active: a.Active, CreatedAt: a.CreatedAt, UpdatedAt: a.UpdatedAt,
	}
}

func (m *accountModel) toEntity() *entity.Account {
	return &entity.Account{
		ID: m.ID, CompanyID: m.CompanyID, ParentID: m.ParentID, Code: m.Code, Name: m.Name,
		Type: entity.AccountType(m.Type), Active: m.Active, CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt,
	}
}

type fiscalPeriodModel struct {
	ID        string    `gorm:"type:varchar(36);primaryKey"`
	CompanyID string    `gorm:"type:varchar(36);not null;index"`
	Name      string    `gorm:"type:varchar(50);not null"`
	StartDate time.Time `gorm:"not null"`
	EndDate   time.Time `gorm:"not null"`
	Status    string    `gorm:"type:varchar(20);not null"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (fiscalPeriodModel) TableName() string { return "fiscal_periods" }

func fiscalPeriodFromEntity(p *entity.FiscalPeriod) *fiscalPeriodModel {
	return &fiscalPeriodModel{
		ID: p.ID, CompanyID: p.CompanyID, Name: p.Name, StartDate: p.StartDate, EndDate: p.EndDate,
		Status: p.Status, CreatedAt: p.CreatedAt, UpdatedAt: p.UpdatedAt,
	}
}

func (m *fiscalPeriodModel) toEntity() *entity.FiscalPeriod {
	return &entity.FiscalPeriod{
		ID: m.ID, CompanyID: m.CompanyID, Name: m.Name, StartDate: m.StartDate, EndDate: m.EndDate,
		Status: m.Status, CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt,
	}
}

type ledgerTransactionModel struct {
	ID          string             `gorm:"type:varchar(36);primaryKey"`
	CompanyID   string             `gorm:"type:varchar(36);not null;index"`
	PeriodID    string             `gorm:"type:varchar(36);not null;index"`
	Date        time.Time          `gorm:"not null"`
	Reference   string             `gorm:"type:varchar(50);not null;default:''"`
	Description string             `gorm:"type:varchar(300);not null;default:''"`
	DocumentID  string             `gorm:"type:varchar(36);not null;default:''"`
	Entries     []ledgerEntryModel `gorm:"foreignKey:TransactionID"`
	CreatedAt   time.Time          `gorm:"not null"`
}

func (ledgerTransactionModel) TableName() string { return "ledger_transactions" }

type ledgerEntryModel struct {
	ID            string          `gorm:"type:varchar(36);primaryKey"`
	TransactionID string          `gorm:"type:varchar(36);not null;index"`
	LineNumber    int             `gorm:"not null;default:0"`
	AccountID     string          `gorm:"type:varchar(36);not null;index"`
	Debit         decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Credit        decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Memo          string          `gorm:"type:varchar(300);not null;default:''"`
}

func (ledgerEntryModel) TableName() string { return "ledger_entries" }

func ledgerTransactionFromEntity(t *entity.LedgerTransaction) *ledgerTransactionModel {
	m := &ledgerTransactionModel{
		ID: t.ID, CompanyID: t.CompanyID, PeriodID: t.PeriodID, Date: t.Date, Reference: t.Reference,
		Description: t.Description, DocumentID: t.DocumentID, CreatedAt: t.CreatedAt,
	}
	for _, e := range t.Entries {
		m.Entries = append(m.Entries, ledgerEntryModel{
			ID: e.ID, TransactionID: t.ID, LineNumber: e.LineNumber, AccountID: e.AccountID, Debit: e.Debit, Credit: e.Credit, Memo: e.Memo,
		})
	}
	return m
}

func (m *ledgerTransactionModel) toEntity() *entity.LedgerTransaction {
	t := &entity.LedgerTransaction{
		ID: m.ID, CompanyID: m.CompanyID, PeriodID: m.PeriodID, Date: m.Date, Reference: m.Reference,
		Description: m.Description, DocumentID: m.DocumentID, CreatedAt: m.CreatedAt,
	}
	for i := range m.Entries {
		e := m.Entries[i]
		t.Entries = append(t.Entries, &entity.LedgerEntry{
			ID: e.ID, TransactionID: e.TransactionID, LineNumber: e.LineNumber, AccountID: e.AccountID, Debit: e.Debit, Credit: e.Credit, Memo: e.Memo,
		})
	}
	return t
}
