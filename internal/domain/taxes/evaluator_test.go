package taxes_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Contable-api/internal/domain"
	"github.com/jhoicas/Contable-api/internal/domain/entity"
	"github.com/jhoicas/Contable-api/internal/domain/taxes"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fixtures
// ──────────────────────────────────────────────────────────────────────────────

const (
	entityID     = "be-1"
	itemID       = "item-1"
	entityGroup  = "grp-grandes-contribuyentes"
	itemGroup    = "grp-bienes-exentos"
	otherGroup   = "grp-otro"
	opInvoice    = entity.OperationInvoice
	opCreditNote = entity.OperationCreditNote
)

func lineTax(id string) *entity.Tax {
	return &entity.Tax{
		ID: id, Code: id, Name: id,
		Kind: entity.TaxKindPercentage, Level: entity.TaxLevelLine,
		Percentage: decimal.NewFromInt(19), Enabled: true,
	}
}

func documentTax(id string) *entity.Tax {
	t := lineTax(id)
	t.Level = entity.TaxLevelDocument
	return t
}

func memberships() []*entity.GroupMembership {
	return []*entity.GroupMembership{
		{ID: "m1", GroupID: entityGroup, MemberID: entityID, Kind: entity.GroupKindBusinessEntity},
		{ID: "m2", GroupID: itemGroup, MemberID: itemID, Kind: entity.GroupKindItem},
	}
}

func invoice() *entity.Document {
	return &entity.Document{ID: "doc-1", OperationCode: opInvoice, BusinessEntityID: entityID}
}

func line() *entity.DocumentLine {
	return &entity.DocumentLine{ID: "line-1", DocumentID: "doc-1", ItemID: itemID, Quantity: decimal.NewFromInt(1)}
}

func ids(list []*entity.Tax) []string {
	out := make([]string, 0, len(list))
	for _, t := range list {
		out = append(out, t.ID)
	}
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Escenario base
// ──────────────────────────────────────────────────────────────────────────────

// T1 de nivel documento con regla para "Invoice" sin filtros: aplica al documento y no a las líneas.
func TestEvaluator_ReglaSimpleNivelDocumento(t *testing.T) {
	t1 := documentTax("T1")
	rules := []*entity.TaxRule{{ID: "R", TaxID: "T1", OperationCode: opInvoice, Priority: 1, Enabled: true}}
	ev := taxes.NewEvaluator(rules, []*entity.Tax{t1}, memberships())

	docTaxes, err := ev.ResolveDocumentTaxes(invoice(), opInvoice)
	require.NoError(t, err)
	assert.Equal(t, []string{"T1"}, ids(docTaxes))

	lineTaxes, err := ev.ResolveLineTaxes(invoice(), opInvoice, line())
	require.NoError(t, err)
	assert.Empty(t, lineTaxes, "un impuesto de nivel documento nunca aparece en la línea")
}

func TestEvaluator_OperacionDistintaNoAplica(t *testing.T) {
	rules := []*entity.TaxRule{{ID: "R", TaxID: "T1", OperationCode: opInvoice, Priority: 1, Enabled: true}}
	ev := taxes.NewEvaluator(rules, []*entity.Tax{documentTax("T1")}, memberships())

	got, err := ev.ResolveDocumentTaxes(invoice(), opCreditNote)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestEvaluator_OperacionVaciaEnReglaAplicaACualquiera(t *testing.T) {
	rules := []*entity.TaxRule{{ID: "R", TaxID: "T1", Priority: 1, Enabled: true}}
	ev := taxes.NewEvaluator(rules, []*entity.Tax{lineTax("T1")}, memberships())

	for _, op := range []string{opInvoice, opCreditNote, ""} {
		got, err := ev.ResolveLineTaxes(invoice(), op, line())
		require.NoError(t, err)
		assert.Equal(t, []string{"T1"}, ids(got), "operación %q", op)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Prioridad y especificidad
// ──────────────────────────────────────────────────────────────────────────────

// R1 (prioridad 1, sin grupo de ítem, excluye) y R2 (prioridad 2, con grupo de ítem, aplica):
// la regla específica sobrescribe la decisión previa.
func TestEvaluator_ReglaEspecificaSobrescribePrioridad(t *testing.T) {
	rules := []*entity.TaxRule{
		{ID: "R1", TaxID: "T1", Priority: 1, Enabled: false},
		{ID: "R2", TaxID: "T1", ItemGroupID: itemGroup, Priority: 2, Enabled: true},
	}
	ev := taxes.NewEvaluator(rules, []*entity.Tax{lineTax("T1")}, memberships())

	got, err := ev.ResolveLineTaxes(invoice(), opInvoice, line())
	require.NoError(t, err)
	assert.Equal(t, []string{"T1"}, ids(got))

	decisions, err := ev.ExplainLine(invoice(), opInvoice, line())
	require.NoError(t, err)
	require.Len(t, decisions, 1)
	assert.Equal(t, "R2", decisions[0].RuleID)
	assert.True(t, decisions[0].Applied)
}

// La regla específica también gana si tiene prioridad menor: una regla genérica posterior no la pisa.
func TestEvaluator_ReglaGenericaPosteriorNoSobrescribe(t *testing.T) {
	rules := []*entity.TaxRule{
		{ID: "R2", TaxID: "T1", Priority: 5, Enabled: false},
		{ID: "R1", TaxID: "T1", ItemGroupID: itemGroup, Priority: 1, Enabled: true},
	}
	ev := taxes.NewEvaluator(rules, []*entity.Tax{lineTax("T1")}, memberships())

	got, err := ev.ResolveLineTaxes(invoice(), opInvoice, line())
	require.NoError(t, err)
	assert.Equal(t, []string{"T1"}, ids(got))
}

// Sin grupo de ítem la primera regla por prioridad decide y las siguientes se ignoran.
func TestEvaluator_PrimeraReglaPorPrioridadDecide(t *testing.T) {
	rules := []*entity.TaxRule{
		{ID: "R-late", TaxID: "T1", Priority: 10, Enabled: true},
		{ID: "R-early", TaxID: "T1", BusinessEntityGroupID: entityGroup, Priority: 1, Enabled: false},
	}
	ev := taxes.NewEvaluator(rules, []*entity.Tax{documentTax("T1")}, memberships())

	got, err := ev.ResolveDocumentTaxes(invoice(), opInvoice)
	require.NoError(t, err)
	assert.Empty(t, got, "la regla de prioridad 1 excluye el impuesto")

	decisions, err := ev.ExplainDocument(invoice(), opInvoice)
	require.NoError(t, err)
	require.Len(t, decisions, 1)
	assert.Equal(t, "R-early", decisions[0].RuleID)
	assert.False(t, decisions[0].Apply)
}

// Dos reglas con grupo de ítem: la última en orden de prioridad gana.
func TestEvaluator_DosReglasEspecificasGanaLaUltima(t *testing.T) {
	rules := []*entity.TaxRule{
		{ID: "R1", TaxID: "T1", ItemGroupID: itemGroup, Priority: 1, Enabled: true},
		{ID: "R2", TaxID: "T1", ItemGroupID: itemGroup, Priority: 2, Enabled: false},
	}
	ev := taxes.NewEvaluator(rules, []*entity.Tax{lineTax("T1")}, memberships())

	got, err := ev.ResolveLineTaxes(invoice(), opInvoice, line())
	require.NoError(t, err)
	assert.Empty(t, got)
}

// Empate de prioridad: se conserva el orden original y la regla con grupo de ítem prevalece.
func TestEvaluator_EmpatePrefiereReglaEspecifica(t *testing.T) {
	specificFirst := []*entity.TaxRule{
		{ID: "R-item", TaxID: "T1", ItemGroupID: itemGroup, Priority: 3, Enabled: true},
		{ID: "R-any", TaxID: "T1", Priority: 3, Enabled: false},
	}
	genericFirst := []*entity.TaxRule{specificFirst[1], specificFirst[0]}

	for name, rules := range map[string][]*entity.TaxRule{"específica primero": specificFirst, "genérica primero": genericFirst} {
		ev := taxes.NewEvaluator(rules, []*entity.Tax{lineTax("T1")}, memberships())
		got, err := ev.ResolveLineTaxes(invoice(), opInvoice, line())
		require.NoError(t, err)
		assert.Equal(t, []string{"T1"}, ids(got), name)
	}
}

// La regla con grupo de ítem se descarta a nivel documento (conjunto de grupos de ítem vacío).
func TestEvaluator_ReglaConGrupoDeItemNoAplicaAlDocumento(t *testing.T) {
	rules := []*entity.TaxRule{{ID: "R", TaxID: "T1", ItemGroupID: itemGroup, Priority: 1, Enabled: true}}
	ev := taxes.NewEvaluator(rules, []*entity.Tax{documentTax("T1")}, memberships())

	got, err := ev.ResolveDocumentTaxes(invoice(), opInvoice)
	require.NoError(t, err)
	assert.Empty(t, got)
}

// ──────────────────────────────────────────────────────────────────────────────
// Grupos
// ──────────────────────────────────────────────────────────────────────────────

func TestEvaluator_TerceroSinGruposConReglasQueExigenGrupo(t *testing.T) {
	rules := []*entity.TaxRule{
		{ID: "R1", TaxID: "T1", BusinessEntityGroupID: entityGroup, Priority: 1, Enabled: true},
		{ID: "R2", TaxID: "T2", BusinessEntityGroupID: otherGroup, Priority: 1, Enabled: true},
	}
	ev := taxes.NewEvaluator(rules, []*entity.Tax{documentTax("T1"), lineTax("T2")}, nil)

	docTaxes, err := ev.ResolveDocumentTaxes(invoice(), opInvoice)
	require.NoError(t, err)
	assert.Empty(t, docTaxes)

	lineTaxes, err := ev.ResolveLineTaxes(invoice(), opInvoice, line())
	require.NoError(t, err)
	assert.Empty(t, lineTaxes)
}

func TestEvaluator_GrupoDeTerceroYGrupoDeItem(t *testing.T) {
	rules := []*entity.TaxRule{
		{ID: "R1", TaxID: "T1", BusinessEntityGroupID: entityGroup, ItemGroupID: itemGroup, Priority: 1, Enabled: true},
		{ID: "R2", TaxID: "T2", BusinessEntityGroupID: otherGroup, Priority: 1, Enabled: true},
	}
	ev := taxes.NewEvaluator(rules, []*entity.Tax{lineTax("T1"), lineTax("T2")}, memberships())

	got, err := ev.ResolveLineTaxes(invoice(), opInvoice, line())
	require.NoError(t, err)
	assert.Equal(t, []string{"T1"}, ids(got))
}

// Un ID de miembro presente en grupos de ítems no cuenta como grupo de tercero.
func TestEvaluator_TipoDeMembresiaSeRespeta(t *testing.T) {
	ms := []*entity.GroupMembership{{ID: "m", GroupID: entityGroup, MemberID: entityID, Kind: entity.GroupKindItem}}
	rules := []*entity.TaxRule{{ID: "R", TaxID: "T1", BusinessEntityGroupID: entityGroup, Priority: 1, Enabled: true}}
	ev := taxes.NewEvaluator(rules, []*entity.Tax{documentTax("T1")}, ms)

	got, err := ev.ResolveDocumentTaxes(invoice(), opInvoice)
	require.NoError(t, err)
	assert.Empty(t, got)
}

// ──────────────────────────────────────────────────────────────────────────────
// Catálogo y casos borde
// ──────────────────────────────────────────────────────────────────────────────

func TestEvaluator_ImpuestoDeshabilitadoNuncaAplica(t *testing.T) {
	disabled := lineTax("T1")
	disabled.Enabled = false
	rules := []*entity.TaxRule{
		{ID: "R1", TaxID: "T1", Priority: 1, Enabled: true},
		{ID: "R2", TaxID: "T1", ItemGroupID: itemGroup, Priority: 2, Enabled: true},
	}
	ev := taxes.NewEvaluator(rules, []*entity.Tax{disabled}, memberships())

	got, err := ev.ResolveLineTaxes(invoice(), opInvoice, line())
	require.NoError(t, err)
	assert.Empty(t, got)

	decisions, err := ev.ExplainLine(invoice(), opInvoice, line())
	require.NoError(t, err)
	require.Len(t, decisions, 1)
	assert.True(t, decisions[0].Apply)
	assert.False(t, decisions[0].TaxEnabled)
	assert.False(t, decisions[0].Applied)
}

func TestEvaluator_ImpuestoSinReglaNoAplica(t *testing.T) {
	ev := taxes.NewEvaluator(nil, []*entity.Tax{lineTax("T1"), documentTax("T2")}, memberships())

	docTaxes, err := ev.ResolveDocumentTaxes(invoice(), opInvoice)
	require.NoError(t, err)
	assert.Empty(t, docTaxes)

	lineTaxes, err := ev.ResolveLineTaxes(invoice(), opInvoice, line())
	require.NoError(t, err)
	assert.Empty(t, lineTaxes)
}

func TestEvaluator_ResultadoEnOrdenDelCatalogo(t *testing.T) {
	rules := []*entity.TaxRule{
		{ID: "R3", TaxID: "T3", Priority: 1, Enabled: true},
		{ID: "R1", TaxID: "T1", Priority: 2, Enabled: true},
		{ID: "R2", TaxID: "T2", Priority: 3, Enabled: true},
	}
	ev := taxes.NewEvaluator(rules, []*entity.Tax{lineTax("T1"), lineTax("T2"), lineTax("T3")}, memberships())

	got, err := ev.ResolveLineTaxes(invoice(), opInvoice, line())
	require.NoError(t, err)
	assert.Equal(t, []string{"T1", "T2", "T3"}, ids(got))
}

func TestEvaluator_DocumentoSinTerceroDevuelveVacio(t *testing.T) {
	rules := []*entity.TaxRule{{ID: "R", TaxID: "T1", Priority: 1, Enabled: true}}
	ev := taxes.NewEvaluator(rules, []*entity.Tax{documentTax("T1"), lineTax("T2")}, memberships())
	doc := &entity.Document{ID: "doc-2", OperationCode: opInvoice}

	got, err := ev.ResolveDocumentTaxes(doc, opInvoice)
	require.NoError(t, err, "documento sin tercero no es un error")
	assert.NotNil(t, got)
	assert.Empty(t, got)

	lines, err := ev.ResolveLineTaxes(doc, opInvoice, line())
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestEvaluator_LineaSinItemDevuelveVacio(t *testing.T) {
	rules := []*entity.TaxRule{{ID: "R", TaxID: "T1", Priority: 1, Enabled: true}}
	ev := taxes.NewEvaluator(rules, []*entity.Tax{lineTax("T1")}, memberships())

	got, err := ev.ResolveLineTaxes(invoice(), opInvoice, &entity.DocumentLine{ID: "l"})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestEvaluator_ArgumentosNulos(t *testing.T) {
	ev := taxes.NewEvaluator(nil, nil, nil)

	_, err := ev.ResolveDocumentTaxes(nil, opInvoice)
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)

	_, err = ev.ResolveLineTaxes(invoice(), opInvoice, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidArgument, "línea nil debe fallar")

	_, err = ev.ResolveLineTaxes(nil, opInvoice, line())
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)

	_, err = ev.ExplainLine(invoice(), opInvoice, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}
