// Package export renders cashbook data as downloadable spreadsheets and statements.
package export

import (
	"bytes"
	"fmt"

	"github.com/SscSPs/cashbook_backend/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const (
	XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	PDFContentType  = "application/pdf"

	dateLayout  = "2006-01-02"
	amountStyle = "#,##0.00"
)

// CashbookRow is one exported cashbook line with its running balance.
type CashbookRow struct {
	Entry   domain.CashEntry
	Balance decimal.Decimal
}

type sheetWriter struct {
	f     *excelize.File
	sheet string
	row   int
	money int
	bold  int
}

func newSheetWriter(sheet string) (*sheetWriter, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}
	money, err := f.NewStyle(&excelize.Style{CustomNumFmt: strPtr(amountStyle)})
	if err != nil {
		return nil, err
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}
	return &sheetWriter{f: f, sheet: sheet, money: money, bold: bold}, nil
}

// writeRow appends values to the next row. decimal values get the money format.
func (w *sheetWriter) writeRow(bold bool, values ...any) error {
	w.row++
	for i, v := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, w.row)
		if err != nil {
			return err
		}
		style := 0
		switch val := v.(type) {
		case decimal.Decimal:
			v = val.InexactFloat64()
			style = w.money
		case *string:
			v = deref(val)
		}
		if err := w.f.SetCellValue(w.sheet, cell, v); err != nil {
			return err
		}
		if bold {
			style = w.bold
		}
		if style != 0 {
			if err := w.f.SetCellStyle(w.sheet, cell, cell, style); err != nil {
				return err
			}
		}
	}
	return nil
}

func (w *sheetWriter) bytes() ([]byte, error) {
	defer w.f.Close()
	var buf bytes.Buffer
	if _, err := w.f.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// CashbookXLSX renders cashbook rows, oldest first, followed by the totals.
func CashbookXLSX(rows []CashbookRow, summary domain.CashbookSummary) ([]byte, error) {
	w, err := newSheetWriter("Cashbook")
	if err != nil {
		return nil, err
	}
	if err := w.writeRow(true, "Date", "Type", "Category", "Party", "Description", "Amount", "Balance"); err != nil {
		return nil, err
	}
	for _, r := range rows {
		e := r.Entry
		if err := w.writeRow(false, e.EntryDate.Format(dateLayout), string(e.EntryType), e.CategoryName, e.PartyName, e.Description, e.Amount, r.Balance); err != nil {
			return nil, err
		}
	}
	w.row++
	for _, total := range []struct {
		label string
		value decimal.Decimal
	}{
		{"Total income", summary.TotalIncome},
		{"Total expense", summary.TotalExpense},
		{"Net balance", summary.NetBalance},
	} {
		if err := w.writeRow(false, total.label, "", "", "", "", total.value); err != nil {
			return nil, err
		}
	}
	_ = w.f.SetColWidth(w.sheet, "A", "A", 12)
	_ = w.f.SetColWidth(w.sheet, "E", "E", 40)
	return w.bytes()
}

// PartyLedgerXLSX renders a party statement.
func PartyLedgerXLSX(ledger domain.PartyLedger) ([]byte, error) {
	w, err := newSheetWriter("Ledger")
	if err != nil {
		return nil, err
	}
	if err := w.writeRow(true, "Party", ledger.Party.Name); err != nil {
		return nil, err
	}
	if err := w.writeRow(false, "Opening balance", ledger.OpeningBalance); err != nil {
		return nil, err
	}
	w.row++
	if err := w.writeRow(true, "Date", "Description", "Debit", "Credit", "Balance"); err != nil {
		return nil, err
	}
	for _, e := range ledger.Entries {
		if err := w.writeRow(false, e.EntryDate.Format(dateLayout), e.Description, e.Debit, e.Credit, e.RunningBalance); err != nil {
			return nil, err
		}
	}
	if err := w.writeRow(true, "Total", "", ledger.TotalDebit, ledger.TotalCredit, ledger.NetBalance); err != nil {
		return nil, err
	}
	_ = w.f.SetColWidth(w.sheet, "B", "B", 40)
	return w.bytes()
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func strPtr(s string) *string { return &s }
