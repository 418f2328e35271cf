// Package pdf genera el resumen de impuestos de un documento comercial en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Razón Social + NIT  │  Operación + N° + Fecha      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TERCERO: Nombre + NIT/CC + contacto                         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA LÍNEAS: # | Ítem | Impuesto | Tarifa | Base | Valor   │
//	│  TABLA DOCUMENTO: Impuesto | Tarifa | Base | Valor           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Subtotal neto / Impuestos / TOTAL                  │
//	│  FOOTER: QR de verificación + leyenda                        │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Contable-api/internal/application/dto"
	"github.com/jhoicas/Contable-api/internal/application/taxation"
	"github.com/jhoicas/Contable-api/internal/domain/entity"
)

var _ taxation.TaxSummaryPDFGenerator = (*MarotoPDFGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa taxation.TaxSummaryPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateTaxSummaryPDF genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateTaxSummaryPDF(
	_ context.Context,
	company *entity.Company,
	doc *entity.Document,
	party *entity.BusinessEntity,
	summary *dto.DocumentTaxesResponse,
) ([]byte, error) {
	if company == nil || doc == nil || summary == nil {
		return nil, fmt.Errorf("pdf: empresa, documento y desglose son obligatorios")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Resumen de impuestos", true).
		WithAuthor(company.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(doc, company))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(partyRow(party))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(sectionRow("IMPUESTOS POR LÍNEA"))
	m.AddRows(lineTableHeaderRow())
	m.AddRows(lineTaxRows(summary.Lines)...)

	if len(summary.DocumentTaxes) > 0 {
		m.AddRows(line.NewRow(3))
		m.AddRows(sectionRow("IMPUESTOS DE DOCUMENTO"))
		m.AddRows(documentTableHeaderRow())
		m.AddRows(documentTaxRows(summary.DocumentTaxes)...)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(summary, company.Currency))
	m.AddRows(line.NewRow(3))
	m.AddRows(footerRow(doc, summary))

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return out.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(doc *entity.Document, company *entity.Company) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(company.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("NIT: "+company.NIT, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("RESUMEN DE IMPUESTOS · "+strings.ToUpper(doc.OperationCode), props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(nonEmpty(doc.Number, "Sin número"), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Fecha: "+doc.Date.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// partyRow: datos del tercero; los documentos sin tercero no tienen impuestos por regla.
func partyRow(party *entity.BusinessEntity) core.Row {
	if party == nil {
		return row.New(8).Add(col.New(12).Add(
			text.New("Documento sin tercero asociado", props.Text{Size: 8, Top: 2, Color: colorGray}),
		))
	}
	return row.New(14).Add(
		col.New(12).Add(
			text.New("TERCERO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(party.Name, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("NIT/CC: %s   |   Email: %s   |   Tel: %s",
				nonEmpty(party.TaxID, "-"),
				nonEmpty(party.Email, "-"),
				nonEmpty(party.Phone, "-"),
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

func sectionRow(title string) core.Row {
	return row.New(6).Add(col.New(12).Add(
		text.New(title, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
	))
}

func headerCell(label string, size int, a align.Type) core.Col {
	return col.New(size).Add(text.New(label, props.Text{
		Style: fontstyle.Bold, Size: 8, Align: a, Top: 2, Left: 1, Right: 1,
	}))
}

func cell(value string, size int, a align.Type) core.Col {
	return col.New(size).Add(text.New(value, props.Text{Size: 8, Align: a, Top: 1, Left: 1, Right: 1}))
}

func lineTableHeaderRow() core.Row {
	return row.New(8).Add(
		headerCell("#", 1, align.Center),
		headerCell("Subtotal", 2, align.Right),
		headerCell("Impuesto", 3, align.Left),
		headerCell("Tarifa", 2, align.Right),
		headerCell("Base", 2, align.Right),
		headerCell("Valor", 2, align.Right),
	)
}

// lineTaxRows: una fila por impuesto aplicado; las líneas sin impuestos muestran solo el subtotal.
func lineTaxRows(lines []dto.LineTaxesDTO) []core.Row {
	result := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		if len(l.Taxes) == 0 {
			result = append(result, row.New(7).Add(
				cell(fmt.Sprint(l.LineNumber), 1, align.Center),
				cell(money(l.Subtotal), 2, align.Right),
				cell("Sin impuestos", 9, align.Left),
			))
			continue
		}
		for i, t := range l.Taxes {
			num, sub := "", ""
			if i == 0 {
				num, sub = fmt.Sprint(l.LineNumber), money(l.Subtotal)
			}
			result = append(result, row.New(7).Add(
				cell(num, 1, align.Center),
				cell(sub, 2, align.Right),
				cell(taxLabel(t), 3, align.Left),
				cell(rate(t), 2, align.Right),
				cell(money(t.Base), 2, align.Right),
				cell(money(t.Amount), 2, align.Right),
			))
		}
	}
	return result
}

func documentTableHeaderRow() core.Row {
	return row.New(8).Add(
		headerCell("Impuesto", 6, align.Left),
		headerCell("Tarifa", 2, align.Right),
		headerCell("Base", 2, align.Right),
		headerCell("Valor", 2, align.Right),
	)
}

func documentTaxRows(list []dto.AppliedTaxDTO) []core.Row {
	result := make([]core.Row, 0, len(list))
	for _, t := range list {
		result = append(result, row.New(7).Add(
			cell(taxLabel(t), 6, align.Left),
			cell(rate(t), 2, align.Right),
			cell(money(t.Base), 2, align.Right),
			cell(money(t.Amount), 2, align.Right),
		))
	}
	return result
}

func totalsRow(s *dto.DocumentTaxesResponse, currency string) core.Row {
	label := func(v string) core.Component {
		return text.New(v, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2})
	}
	value := func(v string) core.Component {
		return text.New(v, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	grand := func(v string) core.Component {
		return text.New(v, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 1,
		})
	}
	return row.New(26).Add(
		col.New(3),
		col.New(3).Add(
			label("Subtotal neto:"),
			label("Impuestos:"),
			label(strings.TrimSpace("TOTAL "+currency)+":"),
		),
		col.New(3).Add(
			value(money(s.NetTotal)),
			value(money(s.TaxTotal)),
			grand(money(s.GrandTotal)),
		),
		col.New(3),
	)
}

// footerRow: QR con la referencia del documento y su total.
func footerRow(doc *entity.Document, s *dto.DocumentTaxesResponse) core.Row {
	qr := fmt.Sprintf("doc=%s;op=%s;net=%s;tax=%s;total=%s",
		doc.ID, doc.OperationCode, s.NetTotal.StringFixed(2), s.TaxTotal.StringFixed(2), s.GrandTotal.StringFixed(2))
	return row.New(40).Add(
		col.New(3).Add(code.NewQr(qr, props.Rect{Percent: 95, Center: true})),
		col.New(9).Add(
			text.New("Los impuestos marcados (incl.) ya están incluidos en el precio y no suman al total.", props.Text{
				Size: 8, Top: 4, Left: 3, Color: colorGray,
			}),
			text.New("Documento: "+doc.ID, props.Text{Size: 7, Top: 14, Left: 3, Color: colorGray}),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func taxLabel(t dto.AppliedTaxDTO) string {
	label := t.Code + " " + t.Name
	if t.IncludedInPrice {
		label += " (incl.)"
	}
	return label
}

func rate(t dto.AppliedTaxDTO) string {
	if t.Kind == string(entity.TaxKindPercentage) {
		return t.Rate.String() + "%"
	}
	return money(t.Rate)
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// money formatea con separador de miles y dos decimales. Ej: 1234567.5 → "$1.234.567,50".
func money(d decimal.Decimal) string {
	s := d.Abs().StringFixed(2)
	intPart, frac := s[:len(s)-3], s[len(s)-2:]
	sign := ""
	if d.IsNegative() {
		sign = "-"
	}
	return sign + "$" + formatThousands(intPart) + "," + frac
}

// formatThousands inserta puntos de miles en un string numérico sin decimales.
// Ej: "25000" → "25.000", "1000000" → "1.000.000"
func formatThousands(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return string(buf)
}
