package taxation

import (
	"fmt"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Contable-api/internal/application/dto"
	"github.com/jhoicas/Contable-api/internal/domain/entity"
	"github.com/jhoicas/Contable-api/internal/domain/repository"
	"github.com/jhoicas/Contable-api/internal/domain/taxes"
	"github.com/jhoicas/Contable-api/pkg/logger"
)

// TaxResolutionUseCase resuelve y calcula los impuestos de un documento a partir de
// las reglas, el catálogo y las membresías de la empresa.
type TaxResolutionUseCase struct {
	docRepo   repository.DocumentRepository
	taxRepo   repository.TaxRepository
	ruleRepo  repository.TaxRuleRepository
	groupRepo repository.GroupRepository
	log       *logger.Logger
}

// NewTaxResolutionUseCase construye el caso de uso. log nil = sin logs.
func NewTaxResolutionUseCase(
	docRepo repository.DocumentRepository,
	taxRepo repository.TaxRepository,
	ruleRepo repository.TaxRuleRepository,
	groupRepo repository.GroupRepository,
	log *logger.Logger,
) *TaxResolutionUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &TaxResolutionUseCase{
		docRepo:   docRepo,
		taxRepo:   taxRepo,
		ruleRepo:  ruleRepo,
		groupRepo: groupRepo,
		log:       log.Component("tax_resolution"),
	}
}

// ResolveDocumentTaxes devuelve el desglose de impuestos por línea y de nivel documento.
//
// Base de línea: subtotal (cantidad × precio). Base de documento: suma de subtotales menos
// los impuestos de línea incluidos en el precio; amount_per_unit usa la cantidad total.
// GrandTotal = NetTotal + impuestos no incluidos en el precio.
func (uc *TaxResolutionUseCase) ResolveDocumentTaxes(companyID, documentID string) (*dto.DocumentTaxesResponse, error) {
	doc, lines, err := loadDocument(uc.docRepo, companyID, documentID)
	if err != nil {
		return nil, err
	}
	ev, _, err := uc.evaluator(companyID)
	if err != nil {
		return nil, err
	}

	out := &dto.DocumentTaxesResponse{
		DocumentID:    doc.ID,
		OperationCode: doc.OperationCode,
		Lines:         make([]dto.LineTaxesDTO, 0, len(lines)),
	}
	var included []decimal.Decimal
	var excluded decimal.Decimal
	totalQty := decimal.Zero

	for _, line := range lines {
		subtotal := line.Subtotal()
		out.NetTotal = out.NetTotal.Add(subtotal)
		totalQty = totalQty.Add(line.Quantity)

		applicable, err := ev.ResolveLineTaxes(doc, doc.OperationCode, line)
		if err != nil {
			return nil, fmt.Errorf("resolver impuestos de línea %d: %w", line.LineNumber, err)
		}
		lt := dto.LineTaxesDTO{
			LineID:     line.ID,
			LineNumber: line.LineNumber,
			ItemID:     line.ItemID,
			Subtotal:   subtotal,
			Taxes:      make([]dto.AppliedTaxDTO, 0, len(applicable)),
		}
		for _, t := range applicable {
			applied := toAppliedTax(t, subtotal, taxes.Amount(t, subtotal, line.Quantity))
			if t.IncludedInPrice {
				included = append(included, applied.Amount)
			} else {
				excluded = excluded.Add(applied.Amount)
			}
			out.TaxTotal = out.TaxTotal.Add(applied.Amount)
			lt.Taxes = append(lt.Taxes, applied)
		}
		out.Lines = append(out.Lines, lt)
	}

	docBase := taxes.NetBase(out.NetTotal, included)
	docTaxes, err := ev.ResolveDocumentTaxes(doc, doc.OperationCode)
	if err != nil {
		return nil, fmt.Errorf("resolver impuestos de documento: %w", err)
	}
	out.DocumentTaxes = make([]dto.AppliedTaxDTO, 0, len(docTaxes))
	for _, t := range docTaxes {
		applied := toAppliedTax(t, docBase, taxes.Amount(t, docBase, totalQty))
		if !t.IncludedInPrice {
			excluded = excluded.Add(applied.Amount)
		}
		out.TaxTotal = out.TaxTotal.Add(applied.Amount)
		out.DocumentTaxes = append(out.DocumentTaxes, applied)
	}
	out.GrandTotal = out.NetTotal.Add(excluded)

	uc.log.Debug().
		Str("document_id", doc.ID).
		Str("operation", doc.OperationCode).
		Int("lines", len(lines)).
		Int("document_taxes", len(out.DocumentTaxes)).
		Str("tax_total", out.TaxTotal.String()).
		Msg("impuestos resueltos")
	return out, nil
}

// ExplainDocumentTaxes devuelve la regla decisiva de cada impuesto, por documento y por línea.
func (uc *TaxResolutionUseCase) ExplainDocumentTaxes(companyID, documentID string) (*dto.TaxExplanationResponse, error) {
	doc, lines, err := loadDocument(uc.docRepo, companyID, documentID)
	if err != nil {
		return nil, err
	}
	ev, catalog, err := uc.evaluator(companyID)
	if err != nil {
		return nil, err
	}
	codes := lo.SliceToMap(catalog, func(t *entity.Tax) (string, string) { return t.ID, t.Code })
	toDTO := func(d taxes.Decision, _ int) dto.TaxDecisionDTO {
		return dto.TaxDecisionDTO{
			TaxID:      d.TaxID,
			TaxCode:    codes[d.TaxID],
			RuleID:     d.RuleID,
			Apply:      d.Apply,
			TaxEnabled: d.TaxEnabled,
			Applied:    d.Applied,
		}
	}

	docDecisions, err := ev.ExplainDocument(doc, doc.OperationCode)
	if err != nil {
		return nil, err
	}
	out := &dto.TaxExplanationResponse{
		DocumentID: doc.ID,
		Document:   lo.Map(docDecisions, toDTO),
		Lines:      make([]dto.LineDecisionsDTO, 0, len(lines)),
	}
	for _, line := range lines {
		decisions, err := ev.ExplainLine(doc, doc.OperationCode, line)
		if err != nil {
			return nil, err
		}
		out.Lines = append(out.Lines, dto.LineDecisionsDTO{
			LineID:     line.ID,
			LineNumber: line.LineNumber,
			Decisions:  lo.Map(decisions, toDTO),
		})
	}
	return out, nil
}

// evaluator arma el evaluador con la foto actual de reglas, impuestos y membresías de la empresa.
// Devuelve también el catálogo leído para que el llamador no lo vuelva a consultar.
func (uc *TaxResolutionUseCase) evaluator(companyID string) (*taxes.Evaluator, []*entity.Tax, error) {
	rules, err := uc.ruleRepo.ListByCompany(companyID)
	if err != nil {
		return nil, nil, fmt.Errorf("cargar reglas: %w", err)
	}
	catalog, err := uc.taxRepo.ListByCompany(companyID)
	if err != nil {
		return nil, nil, fmt.Errorf("cargar impuestos: %w", err)
	}
	memberships, err := uc.groupRepo.ListMembershipsByCompany(companyID)
	if err != nil {
		return nil, nil, fmt.Errorf("cargar membresías: %w", err)
	}
	uc.log.Debug().
		Str("company_id", companyID).
		Int("rules", len(rules)).
		Int("taxes", len(catalog)).
		Int("memberships", len(memberships)).
		Msg("evaluador construido")
	return taxes.NewEvaluator(rules, catalog, memberships), catalog, nil
}

func toAppliedTax(t *entity.Tax, base, amount decimal.Decimal) dto.AppliedTaxDTO {
	rate := t.Amount
	if t.Kind == entity.TaxKindPercentage {
		rate = t.Percentage
	}
	return dto.AppliedTaxDTO{
		TaxID:           t.ID,
		Code:            t.Code,
		Name:            t.Name,
		Kind:            string(t.Kind),
		Level:           string(t.Level),
		Rate:            rate,
		Base:            base,
		Amount:          amount,
		IncludedInPrice: t.IncludedInPrice,
	}
}
