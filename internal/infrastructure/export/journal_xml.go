// Package export serializa el libro diario de un periodo contable en XML.
package export

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Contable-api/internal/application/ledger"
	"github.com/jhoicas/Contable-api/internal/domain/entity"
)

var _ ledger.JournalExporter = (*JournalXMLExporter)(nil)

// JournalXMLExporter genera el libro diario con etree.
//
//	<Journal company="..." nit="..." currency="COP">
//	  <Period id="..." name="2025-01" start="2025-01-01" end="2025-01-31" status="open"/>
//	  <Transaction id="..." date="2025-01-15" reference="..." document="...">
//	    <Description>...</Description>
//	    <Entry account="110505" name="Caja general" debit="100.00" credit="0.00">memo</Entry>
//	  </Transaction>
//	  <Totals debit="..." credit="..." transactions="N"/>
//	</Journal>
type JournalXMLExporter struct {
	indent int
}

// NewJournalXMLExporter crea el exportador con indentación de dos espacios.
func NewJournalXMLExporter() *JournalXMLExporter {
	return &JournalXMLExporter{indent: 2}
}

// ExportJournal escribe el XML del periodo en w.
func (x *JournalXMLExporter) ExportJournal(
	w io.Writer,
	company *entity.Company,
	period *entity.FiscalPeriod,
	accounts []*entity.Account,
	txs []*entity.LedgerTransaction,
) error {
	if company == nil || period == nil {
		return fmt.Errorf("export: empresa y periodo son obligatorios")
	}
	byID := make(map[string]*entity.Account, len(accounts))
	for _, a := range accounts {
		byID[a.ID] = a
	}

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	root := doc.CreateElement("Journal")
	root.CreateAttr("company", company.Name)
	root.CreateAttr("nit", company.NIT)
	root.CreateAttr("currency", company.Currency)
	root.CreateAttr("generated", time.Now().UTC().Format(time.RFC3339))

	p := root.CreateElement("Period")
	p.CreateAttr("id", period.ID)
	p.CreateAttr("name", period.Name)
	p.CreateAttr("start", period.StartDate.Format(time.DateOnly))
	p.CreateAttr("end", period.EndDate.Format(time.DateOnly))
	p.CreateAttr("status", period.Status)

	totalDebit, totalCredit := decimal.Zero, decimal.Zero
	for _, tx := range txs {
		el := root.CreateElement("Transaction")
		el.CreateAttr("id", tx.ID)
		el.CreateAttr("date", tx.Date.Format(time.DateOnly))
		if tx.Reference != "" {
			el.CreateAttr("reference", tx.Reference)
		}
		if tx.DocumentID != "" {
			el.CreateAttr("document", tx.DocumentID)
		}
		if tx.Description != "" {
			el.CreateElement("Description").SetText(tx.Description)
		}
		for _, e := range tx.Entries {
			entry := el.CreateElement("Entry")
			if acc, ok := byID[e.AccountID]; ok {
				entry.CreateAttr("account", acc.Code)
				entry.CreateAttr("name", acc.Name)
			} else {
				entry.CreateAttr("account", e.AccountID)
			}
			entry.CreateAttr("debit", e.Debit.StringFixed(2))
			entry.CreateAttr("credit", e.Credit.StringFixed(2))
			if e.Memo != "" {
				entry.SetText(e.Memo)
			}
		}
		d, c := tx.Totals()
		totalDebit = totalDebit.Add(d)
		totalCredit = totalCredit.Add(c)
	}

	totals := root.CreateElement("Totals")
	totals.CreateAttr("debit", totalDebit.StringFixed(2))
	totals.CreateAttr("credit", totalCredit.StringFixed(2))
	totals.CreateAttr("transactions", strconv.Itoa(len(txs)))

	doc.Indent(x.indent)
	if _, err := doc.WriteTo(w); err != nil {
		return fmt.Errorf("export: escribir XML: %w", err)
	}
	return nil
}
