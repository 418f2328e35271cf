package usecase_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Contable-api/internal/application/dto"
	"github.com/jhoicas/Contable-api/internal/application/usecase"
	"github.com/jhoicas/Contable-api/internal/domain"
	"github.com/jhoicas/Contable-api/internal/infrastructure/orm"
	"github.com/jhoicas/Contable-api/internal/infrastructure/orm/ormtest"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type fixture struct {
	companyID string
	companies *usecase.CompanyUseCase
	taxes     *usecase.TaxUseCase
	rules     *usecase.TaxRuleUseCase
	groups    *usecase.GroupUseCase
	entities  *usecase.BusinessEntityUseCase
	items     *usecase.ItemUseCase
	accounts  *usecase.AccountUseCase
	periods   *usecase.FiscalPeriodUseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := ormtest.New(t)
	taxRepo := orm.NewTaxRepository(db)
	groupRepo := orm.NewGroupRepository(db)
	entityRepo := orm.NewBusinessEntityRepository(db)
	itemRepo := orm.NewItemRepository(db)
	f := &fixture{
		companies: usecase.NewCompanyUseCase(orm.NewCompanyRepository(db)),
		taxes:     usecase.NewTaxUseCase(taxRepo),
		rules:     usecase.NewTaxRuleUseCase(orm.NewTaxRuleRepository(db), taxRepo, groupRepo),
		groups:    usecase.NewGroupUseCase(groupRepo, entityRepo, itemRepo),
		entities:  usecase.NewBusinessEntityUseCase(entityRepo),
		items:     usecase.NewItemUseCase(itemRepo),
		accounts:  usecase.NewAccountUseCase(orm.NewAccountRepository(db)),
		periods:   usecase.NewFiscalPeriodUseCase(orm.NewFiscalPeriodRepository(db)),
	}
	c, err := f.companies.Create(dto.CreateCompanyRequest{Name: "Comercial Andina SAS", NIT: "900123456"})
	require.NoError(t, err)
	f.companyID = c.ID
	return f
}

func (f *fixture) iva(t *testing.T) *dto.TaxResponse {
	t.Helper()
	tax, err := f.taxes.Create(f.companyID, dto.CreateTaxRequest{
		Code: "IVA19", Name: "IVA 19%", Kind: "percentage", Level: "line", Percentage: decimal.NewFromInt(19),
	})
	require.NoError(t, err)
	return tax
}

// ──────────────────────────────────────────────────────────────────────────────
// Empresas
// ──────────────────────────────────────────────────────────────────────────────

func TestCompanyUseCase_CrearConMonedaPorDefecto(t *testing.T) {
	f := newFixture(t)

	got, err := f.companies.GetByID(f.companyID)
	require.NoError(t, err)
	assert.Equal(t, "COP", got.Currency)

	_, err = f.companies.Create(dto.CreateCompanyRequest{Name: "Otra", NIT: "900123456"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = f.companies.Create(dto.CreateCompanyRequest{Name: "  ", NIT: "1"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Impuestos
// ──────────────────────────────────────────────────────────────────────────────

func TestTaxUseCase_Validaciones(t *testing.T) {
	f := newFixture(t)

	cases := []struct {
		name string
		in   dto.CreateTaxRequest
	}{
		{"sin código", dto.CreateTaxRequest{Name: "IVA", Kind: "percentage", Level: "line"}},
		{"tipo desconocido", dto.CreateTaxRequest{Code: "X", Name: "X", Kind: "otro", Level: "line"}},
		{"nivel desconocido", dto.CreateTaxRequest{Code: "X", Name: "X", Kind: "percentage", Level: "factura"}},
		{"porcentaje mayor a 100", dto.CreateTaxRequest{Code: "X", Name: "X", Kind: "percentage", Level: "line", Percentage: decimal.NewFromInt(101)}},
		{"valor negativo", dto.CreateTaxRequest{Code: "X", Name: "X", Kind: "fixed_amount", Level: "document", Amount: decimal.NewFromInt(-1)}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.taxes.Create(f.companyID, tc.in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestTaxUseCase_CrearActualizarDeshabilitar(t *testing.T) {
	f := newFixture(t)
	tax := f.iva(t)
	assert.True(t, tax.Enabled)

	_, err := f.taxes.Create(f.companyID, dto.CreateTaxRequest{Code: "IVA19", Name: "Duplicado", Kind: "percentage", Level: "line"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	name := "IVA general"
	updated, err := f.taxes.Update(f.companyID, tax.ID, dto.UpdateTaxRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "IVA general", updated.Name)

	disabled, err := f.taxes.Disable(f.companyID, tax.ID)
	require.NoError(t, err)
	assert.False(t, disabled.Enabled)

	_, err = f.taxes.GetByID("otra-empresa", tax.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Grupos y reglas
// ──────────────────────────────────────────────────────────────────────────────

func TestGroupUseCase_MiembroDebeExistirConElTipoDelGrupo(t *testing.T) {
	f := newFixture(t)

	be, err := f.entities.Create(f.companyID, dto.CreateBusinessEntityRequest{Code: "C001", Name: "Cliente Uno"})
	require.NoError(t, err)
	assert.Equal(t, "customer", be.Kind)
	item, err := f.items.Create(f.companyID, dto.CreateItemRequest{Code: "P001", Name: "Arroz", Price: decimal.NewFromInt(5000)})
	require.NoError(t, err)
	assert.Equal(t, "UND", item.UnitMeasure)

	g, err := f.groups.Create(f.companyID, dto.CreateGroupRequest{Code: "GC", Name: "Grandes contribuyentes", Kind: "business_entity"})
	require.NoError(t, err)

	_, err = f.groups.AddMember(f.companyID, g.ID, dto.AddGroupMemberRequest{MemberID: item.ID})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	m, err := f.groups.AddMember(f.companyID, g.ID, dto.AddGroupMemberRequest{MemberID: be.ID})
	require.NoError(t, err)
	assert.Equal(t, "business_entity", m.Kind)

	_, err = f.groups.AddMember(f.companyID, g.ID, dto.AddGroupMemberRequest{MemberID: be.ID})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	members, err := f.groups.ListMembers(f.companyID, g.ID)
	require.NoError(t, err)
	assert.Len(t, members, 1)

	require.NoError(t, f.groups.RemoveMember(f.companyID, g.ID, be.ID))
	assert.ErrorIs(t, f.groups.RemoveMember(f.companyID, g.ID, be.ID), domain.ErrNotFound)
}

func TestTaxRuleUseCase_ValidaReferencias(t *testing.T) {
	f := newFixture(t)
	tax := f.iva(t)
	entityGroup, err := f.groups.Create(f.companyID, dto.CreateGroupRequest{Code: "GC", Name: "Grandes contribuyentes", Kind: "business_entity"})
	require.NoError(t, err)

	_, err = f.rules.Create(f.companyID, dto.CreateTaxRuleRequest{TaxID: "no-existe"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.rules.Create(f.companyID, dto.CreateTaxRuleRequest{TaxID: tax.ID, ItemGroupID: entityGroup.ID})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "un grupo de terceros no sirve como filtro de ítems")

	_, err = f.rules.Create(f.companyID, dto.CreateTaxRuleRequest{TaxID: tax.ID, Priority: -1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	off := false
	late, err := f.rules.Create(f.companyID, dto.CreateTaxRuleRequest{TaxID: tax.ID, Priority: 20, Enabled: &off, BusinessEntityGroupID: entityGroup.ID})
	require.NoError(t, err)
	assert.False(t, late.Enabled)

	// Sin "enabled" en el cuerpo la regla nace habilitada (asigna el impuesto).
	var in dto.CreateTaxRuleRequest
	require.NoError(t, json.Unmarshal([]byte(`{"tax_id":"`+tax.ID+`","priority":10,"operation_code":"Invoice"}`), &in))
	early, err := f.rules.Create(f.companyID, in)
	require.NoError(t, err)
	assert.True(t, early.Enabled)

	list, err := f.rules.List(f.companyID, tax.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, early.ID, list[0].ID)
	assert.Equal(t, late.ID, list[1].ID)

	prio := 5
	updated, err := f.rules.Update(f.companyID, late.ID, dto.UpdateTaxRuleRequest{Priority: &prio})
	require.NoError(t, err)
	assert.Equal(t, 5, updated.Priority)

	require.NoError(t, f.rules.Delete(f.companyID, late.ID))
	_, err = f.rules.GetByID(f.companyID, late.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Plan de cuentas y periodos
// ──────────────────────────────────────────────────────────────────────────────

func TestAccountUseCase_PadreDebeExistir(t *testing.T) {
	f := newFixture(t)

	_, err := f.accounts.Create(f.companyID, dto.CreateAccountRequest{Code: "1105", Name: "Caja", Type: "asset", ParentID: "no-existe"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.accounts.Create(f.companyID, dto.CreateAccountRequest{Code: "1105", Name: "Caja", Type: "activo"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	parent, err := f.accounts.Create(f.companyID, dto.CreateAccountRequest{Code: "11", Name: "Disponible", Type: "asset"})
	require.NoError(t, err)
	child, err := f.accounts.Create(f.companyID, dto.CreateAccountRequest{Code: "1105", Name: "Caja", Type: "asset", ParentID: parent.ID})
	require.NoError(t, err)
	assert.True(t, child.Active)

	inactive := false
	updated, err := f.accounts.Update(f.companyID, child.ID, dto.UpdateAccountRequest{Active: &inactive})
	require.NoError(t, err)
	assert.False(t, updated.Active)

	chart, err := f.accounts.List(f.companyID)
	require.NoError(t, err)
	require.Len(t, chart, 2)
	assert.Equal(t, "11", chart[0].Code)
	assert.Equal(t, parent.ID, chart[1].ParentID)
}

func TestFiscalPeriodUseCase_SinSolapamientoYCierre(t *testing.T) {
	f := newFixture(t)
	jan := dto.CreateFiscalPeriodRequest{
		Name:      "2025-01",
		StartDate: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 1, 31, 23, 59, 0, 0, time.UTC),
	}
	p, err := f.periods.Create(f.companyID, jan)
	require.NoError(t, err)
	assert.Equal(t, "open", p.Status)
	assert.Equal(t, 0, p.EndDate.Hour())

	_, err = f.periods.Create(f.companyID, dto.CreateFiscalPeriodRequest{
		Name: "solapado", StartDate: time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC), EndDate: time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC),
	})
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = f.periods.Create(f.companyID, dto.CreateFiscalPeriodRequest{
		Name: "invertido", StartDate: time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC), EndDate: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	closed, err := f.periods.Close(f.companyID, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "closed", closed.Status)

	_, err = f.periods.Close(f.companyID, p.ID)
	assert.ErrorIs(t, err, domain.ErrConflict)

	reopened, err := f.periods.Reopen(f.companyID, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "open", reopened.Status)
}

// ──────────────────────────────────────────────────────────────────────────────
// Terceros e ítems
// ──────────────────────────────────────────────────────────────────────────────

func TestItemUseCase_PrecioNegativoYActualizacion(t *testing.T) {
	f := newFixture(t)

	_, err := f.items.Create(f.companyID, dto.CreateItemRequest{Code: "P1", Name: "X", Price: decimal.NewFromInt(-1)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	item, err := f.items.Create(f.companyID, dto.CreateItemRequest{Code: "P1", Name: "Bolsa", Price: decimal.NewFromInt(100), UnitMeasure: "UN"})
	require.NoError(t, err)

	price := decimal.NewFromInt(150)
	updated, err := f.items.Update(f.companyID, item.ID, dto.UpdateItemRequest{Price: &price})
	require.NoError(t, err)
	assert.True(t, price.Equal(updated.Price))

	list, err := f.items.List(f.companyID, dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = f.entities.Create(f.companyID, dto.CreateBusinessEntityRequest{Code: "C1", Name: "X", Kind: "socio"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
