// Package taxes contiene los servicios de dominio de impuestos: resolución de reglas
// (qué impuestos aplican a un documento o línea) y cálculo de valores.
package taxes

import (
	"sort"

	"github.com/samber/lo"

	"github.com/jhoicas/Contable-api/internal/domain"
	"github.com/jhoicas/Contable-api/internal/domain/entity"
)

// Decision resultado de la evaluación de reglas para un impuesto.
// RuleID es la regla que tomó la decisión final.
type Decision struct {
	TaxID      string
	RuleID     string
	Apply      bool
	TaxEnabled bool
	Applied    bool // Apply && TaxEnabled
}

// Evaluator resuelve qué impuestos aplican a un documento o a una línea.
// Reglas, impuestos y membresías se toman como foto de solo lectura al construirlo;
// no hace I/O ni usa locks, por lo que es seguro para lecturas concurrentes.
type Evaluator struct {
	rules  []*entity.TaxRule
	taxes  []*entity.Tax
	groups map[entity.GroupKind]map[string][]string // kind -> member -> grupos
}

// NewEvaluator construye el evaluador con reglas (en su orden original), catálogo de impuestos y membresías.
func NewEvaluator(rules []*entity.TaxRule, taxes []*entity.Tax, memberships []*entity.GroupMembership) *Evaluator {
	e := &Evaluator{
		rules:  lo.Filter(rules, func(r *entity.TaxRule, _ int) bool { return r != nil }),
		taxes:  lo.Filter(taxes, func(t *entity.Tax, _ int) bool { return t != nil }),
		groups: make(map[entity.GroupKind]map[string][]string),
	}
	for _, m := range memberships {
		if m == nil {
			continue
		}
		byMember, ok := e.groups[m.Kind]
		if !ok {
			byMember = make(map[string][]string)
			e.groups[m.Kind] = byMember
		}
		byMember[m.MemberID] = append(byMember[m.MemberID], m.GroupID)
	}
	return e
}

// ResolveDocumentTaxes devuelve los impuestos de nivel documento aplicables.
// Documento nil → domain.ErrInvalidArgument. Documento sin tercero → lista vacía.
func (e *Evaluator) ResolveDocumentTaxes(doc *entity.Document, operationCode string) ([]*entity.Tax, error) {
	decisions, err := e.documentDecisions(doc, operationCode)
	if err != nil || decisions == nil {
		return []*entity.Tax{}, err
	}
	return e.applicable(decisions, entity.TaxLevelDocument), nil
}

// ResolveLineTaxes devuelve los impuestos de nivel línea aplicables.
// Documento o línea nil → domain.ErrInvalidArgument. Sin tercero o sin ítem → lista vacía.
func (e *Evaluator) ResolveLineTaxes(doc *entity.Document, operationCode string, line *entity.DocumentLine) ([]*entity.Tax, error) {
	decisions, err := e.lineDecisions(doc, operationCode, line)
	if err != nil || decisions == nil {
		return []*entity.Tax{}, err
	}
	return e.applicable(decisions, entity.TaxLevelLine), nil
}

// ExplainDocument devuelve la decisión de cada impuesto de nivel documento que tuvo regla.
func (e *Evaluator) ExplainDocument(doc *entity.Document, operationCode string) ([]Decision, error) {
	decisions, err := e.documentDecisions(doc, operationCode)
	if err != nil || decisions == nil {
		return []Decision{}, err
	}
	return e.explain(decisions, entity.TaxLevelDocument), nil
}

// ExplainLine devuelve la decisión de cada impuesto de nivel línea que tuvo regla.
func (e *Evaluator) ExplainLine(doc *entity.Document, operationCode string, line *entity.DocumentLine) ([]Decision, error) {
	decisions, err := e.lineDecisions(doc, operationCode, line)
	if err != nil || decisions == nil {
		return []Decision{}, err
	}
	return e.explain(decisions, entity.TaxLevelLine), nil
}

func (e *Evaluator) documentDecisions(doc *entity.Document, operationCode string) (map[string]Decision, error) {
	if doc == nil {
		return nil, domain.ErrInvalidArgument
	}
	if doc.BusinessEntityID == "" {
		return nil, nil
	}
	entityGroups := e.groupsOf(entity.GroupKindBusinessEntity, doc.BusinessEntityID)
	return e.decide(operationCode, entityGroups, map[string]struct{}{}), nil
}

func (e *Evaluator) lineDecisions(doc *entity.Document, operationCode string, line *entity.DocumentLine) (map[string]Decision, error) {
	if doc == nil || line == nil {
		return nil, domain.ErrInvalidArgument
	}
	if doc.BusinessEntityID == "" || line.ItemID == "" {
		return nil, nil
	}
	entityGroups := e.groupsOf(entity.GroupKindBusinessEntity, doc.BusinessEntityID)
	itemGroups := e.groupsOf(entity.GroupKindItem, line.ItemID)
	return e.decide(operationCode, entityGroups, itemGroups), nil
}

// decide recorre las reglas candidatas por prioridad ascendente. La primera regla fija la
// decisión de su impuesto; una regla posterior solo la sobrescribe si filtra por grupo de ítems.
func (e *Evaluator) decide(operationCode string, entityGroups, itemGroups map[string]struct{}) map[string]Decision {
	candidates := lo.Filter(e.rules, func(r *entity.TaxRule, _ int) bool {
		if r.OperationCode != "" && r.OperationCode != operationCode {
			return false
		}
		if r.BusinessEntityGroupID != "" {
			if _, ok := entityGroups[r.BusinessEntityGroupID]; !ok {
				return false
			}
		}
		if r.ItemGroupID != "" {
			if _, ok := itemGroups[r.ItemGroupID]; !ok {
				return false
			}
		}
		return true
	})
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Priority < candidates[j].Priority
	})

	decisions := make(map[string]Decision, len(candidates))
	for _, r := range candidates {
		if _, ok := decisions[r.TaxID]; !ok || r.HasItemGroup() {
			decisions[r.TaxID] = Decision{TaxID: r.TaxID, RuleID: r.ID, Apply: r.Enabled}
		}
	}
	return decisions
}

func (e *Evaluator) applicable(decisions map[string]Decision, level entity.TaxLevel) []*entity.Tax {
	return lo.Filter(e.taxes, func(t *entity.Tax, _ int) bool {
		d, ok := decisions[t.ID]
		return ok && d.Apply && t.Enabled && t.Level == level
	})
}

func (e *Evaluator) explain(decisions map[string]Decision, level entity.TaxLevel) []Decision {
	out := make([]Decision, 0, len(decisions))
	for _, t := range e.taxes {
		d, ok := decisions[t.ID]
		if !ok || t.Level != level {
			continue
		}
		d.TaxEnabled = t.Enabled
		d.Applied = d.Apply && t.Enabled
		out = append(out, d)
	}
	return out
}

func (e *Evaluator) groupsOf(kind entity.GroupKind, memberID string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, g := range e.groups[kind][memberID] {
		set[g] = struct{}{}
	}
	return set
}
