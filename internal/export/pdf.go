package export

import (
	"bytes"
	"fmt"

	"github.com/SscSPs/cashbook_backend/internal/core/domain"
	"github.com/SscSPs/cashbook_backend/internal/utils"
	"github.com/phpdave11/gofpdf"
	"github.com/shopspring/decimal"
)

var ledgerColumns = []struct {
	title string
	width float64
	align string
}{
	{"Date", 24, "L"},
	{"Description", 70, "L"},
	{"Debit", 30, "R"},
	{"Credit", 30, "R"},
	{"Balance", 28, "R"},
}

// PartyLedgerPDF renders a party statement on A4 pages.
func PartyLedgerPDF(businessName, currency string, ledger domain.PartyLedger, period string) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(14, 14, 14)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, businessName)
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, "Statement of account: "+ledger.Party.Name)
	pdf.Ln(5)
	if period != "" {
		pdf.SetTextColor(80, 80, 80)
		pdf.Cell(0, 6, "Period: "+period)
		pdf.Ln(5)
		pdf.SetTextColor(20, 20, 20)
	}
	pdf.Cell(0, 6, fmt.Sprintf("Opening balance (%s): %s", currency, money(ledger.OpeningBalance)))
	pdf.Ln(10)

	header := func() {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.SetFillColor(248, 248, 248)
		pdf.SetDrawColor(200, 200, 200)
		for _, c := range ledgerColumns {
			pdf.CellFormat(c.width, 8, c.title, "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Helvetica", "", 9)
	}
	header()

	_, pageHeight := pdf.GetPageSize()
	_, _, _, bottom := pdf.GetMargins()
	for _, e := range ledger.Entries {
		if pdf.GetY()+7 > pageHeight-bottom {
			pdf.AddPage()
			header()
		}
		values := []string{
			e.EntryDate.Format(dateLayout),
			truncate(deref(e.Description), 42),
			blankZero(e.Debit),
			blankZero(e.Credit),
			money(e.RunningBalance),
		}
		for i, c := range ledgerColumns {
			pdf.CellFormat(c.width, 7, values[i], "1", 0, c.align, false, 0, "")
		}
		pdf.Ln(-1)
	}

	pdf.SetFont("Helvetica", "B", 10)
	totals := []string{"", "Total", money(ledger.TotalDebit), money(ledger.TotalCredit), money(ledger.NetBalance)}
	for i, c := range ledgerColumns {
		pdf.CellFormat(c.width, 8, totals[i], "1", 0, c.align, true, 0, "")
	}
	pdf.Ln(-1)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func money(d decimal.Decimal) string {
	return utils.FormatDisplayAmount(d)
}

func blankZero(d decimal.Decimal) string {
	if d.IsZero() {
		return ""
	}
	return money(d)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
