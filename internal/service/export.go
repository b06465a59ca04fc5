package service

import (
	"fmt"
	"io"
	"time"

	"muhasebe-api/internal/core/domain"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const summarySheet = "Summary"

var (
	summaryTitleStyle = &excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 14},
	}
	summaryHeaderStyle = &excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	}
	summaryAmountStyle = &excelize.Style{NumFmt: 4} // #,##0.00
)

// sheetWriter keeps the first excelize error and skips later writes.
type sheetWriter struct {
	f     *excelize.File
	sheet string
	err   error
}

func (w *sheetWriter) newStyle(style *excelize.Style) int {
	if w.err != nil {
		return 0
	}
	id, err := w.f.NewStyle(style)
	if err != nil {
		w.err = fmt.Errorf("creating style: %w", err)
	}
	return id
}

func (w *sheetWriter) set(axis string, value any) {
	if w.err != nil {
		return
	}
	if err := w.f.SetCellValue(w.sheet, axis, value); err != nil {
		w.err = fmt.Errorf("setting %s: %w", axis, err)
	}
}

func (w *sheetWriter) style(from, to string, id int) {
	if w.err != nil {
		return
	}
	if err := w.f.SetCellStyle(w.sheet, from, to, id); err != nil {
		w.err = fmt.Errorf("styling %s:%s: %w", from, to, err)
	}
}

func (w *sheetWriter) width(col string, width float64) {
	if w.err != nil {
		return
	}
	if err := w.f.SetColWidth(w.sheet, col, col, width); err != nil {
		w.err = fmt.Errorf("sizing column %s: %w", col, err)
	}
}

// ExportSummary writes summary as a single-sheet XLSX workbook.
func (s *reportService) ExportSummary(summary *domain.Summary, w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return fmt.Errorf("renaming sheet: %w", err)
	}

	sw := &sheetWriter{f: f, sheet: summarySheet}
	titleStyle := sw.newStyle(summaryTitleStyle)
	headerStyle := sw.newStyle(summaryHeaderStyle)
	amountStyle := sw.newStyle(summaryAmountStyle)

	sw.set("A1", "Accounting Summary")
	sw.style("A1", "A1", titleStyle)
	sw.set("A2", "Generated")
	sw.set("B2", summary.GeneratedAt.Format(time.RFC3339))

	row := 3
	if summary.Range != nil {
		sw.set("A3", "Interval")
		sw.set("B3", fmt.Sprintf("%s (%s - %s)",
			summary.Interval,
			summary.Range.Start.Format("2006-01-02"),
			summary.Range.End.Format("2006-01-02"),
		))
		row++
	}

	row++
	sw.set(cell("A", row), "Metric")
	sw.set(cell("B", row), "Amount")
	sw.style(cell("A", row), cell("B", row), headerStyle)

	lines := []struct {
		label  string
		amount decimal.Decimal
	}{
		{"Transaction income (Gelir)", summary.TransactionIncome},
		{"Transaction expense (Gider)", summary.TransactionExpense},
		{"Fixed income", summary.FixedIncome},
		{"Fixed expense", summary.FixedExpense},
		{"Total income", summary.TotalIncome},
		{"Total expense", summary.TotalExpense},
		{"Balance", summary.Balance},
		{"Transaction balance", summary.TransactionBalance},
	}
	for _, l := range lines {
		row++
		sw.set(cell("A", row), l.label)
		sw.set(cell("B", row), l.amount.InexactFloat64())
		sw.style(cell("B", row), cell("B", row), amountStyle)
	}

	row++
	sw.set(cell("A", row), "Records")
	sw.set(cell("B", row), summary.RecordCount)
	sw.width("A", 32)
	sw.width("B", 40)
	if sw.err != nil {
		return sw.err
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
