package report

import (
	"fmt"
	"io"

	"github.com/faktura/backend/internal/domain/report"
	"github.com/xuri/excelize/v2"
)

// XLSXContentType is the media type of the exported workbook
const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

const (
	openItemsSheet = "Offene Posten"
	agingSheet     = "Altersstruktur"

	numFmtAmount = 4  // #,##0.00
	numFmtDate   = 14 // locale short date
)

var openItemsHeadings = []string{
	"Rechnungsnummer",
	"Kunde",
	"Rechnungsdatum",
	"Fällig am",
	"Tage überfällig",
	"Altersklasse",
	"Mahnstufe",
	"Mahnsperre",
	"Brutto",
	"Offene Forderung",
	"Offene Mahngebühren",
	"Offene Zinsen",
	"Offen gesamt",
}

// OpenItemsFileName returns the download name of an exported report
func OpenItemsFileName(r *report.OpenItemsReport) string {
	return fmt.Sprintf("offene-posten-%s.xlsx", r.AsOf.Format("2006-01-02"))
}

// WriteOpenItemsXLSX writes the report as a workbook with one sheet of items
// and one sheet of bucket totals
func WriteOpenItemsXLSX(w io.Writer, r *report.OpenItemsReport) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", openItemsSheet); err != nil {
		return err
	}
	styles, err := newSheetStyles(f)
	if err != nil {
		return err
	}
	if err := writeItems(f, styles, r); err != nil {
		return err
	}
	if err := writeAging(f, styles, r); err != nil {
		return err
	}
	f.SetActiveSheet(0)

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

type sheetStyles struct {
	header int
	amount int
	date   int
	total  int
}

func newSheetStyles(f *excelize.File) (sheetStyles, error) {
	var s sheetStyles
	var err error
	if s.header, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"DDEBF7"}},
	}); err != nil {
		return s, err
	}
	if s.amount, err = f.NewStyle(&excelize.Style{NumFmt: numFmtAmount}); err != nil {
		return s, err
	}
	if s.date, err = f.NewStyle(&excelize.Style{NumFmt: numFmtDate}); err != nil {
		return s, err
	}
	s.total, err = f.NewStyle(&excelize.Style{NumFmt: numFmtAmount, Font: &excelize.Font{Bold: true}})
	return s, err
}

func writeItems(f *excelize.File, styles sheetStyles, r *report.OpenItemsReport) error {
	if err := f.SetSheetRow(openItemsSheet, "A1", &openItemsHeadings); err != nil {
		return err
	}
	if err := f.SetCellStyle(openItemsSheet, "A1", cellName(len(openItemsHeadings), 1), styles.header); err != nil {
		return err
	}

	for i, item := range r.Items {
		row := i + 2
		blocked := ""
		if item.DunningBlocked {
			blocked = "ja"
		}
		values := []any{
			item.Number,
			item.CustomerName,
			item.IssueDate,
			item.DueDate,
			item.DaysOverdue,
			string(item.Bucket),
			item.DunningLevel,
			blocked,
			item.GrossTotal.InexactFloat64(),
			item.OpenPrincipal.InexactFloat64(),
			item.OpenFees.InexactFloat64(),
			item.OpenInterest.InexactFloat64(),
			item.OpenTotal.InexactFloat64(),
		}
		if err := f.SetSheetRow(openItemsSheet, cellName(1, row), &values); err != nil {
			return err
		}
		if err := f.SetCellStyle(openItemsSheet, cellName(3, row), cellName(4, row), styles.date); err != nil {
			return err
		}
		if err := f.SetCellStyle(openItemsSheet, cellName(9, row), cellName(13, row), styles.amount); err != nil {
			return err
		}
	}

	totalRow := len(r.Items) + 2
	if err := f.SetCellValue(openItemsSheet, cellName(1, totalRow), "Summe"); err != nil {
		return err
	}
	if err := f.SetCellValue(openItemsSheet, cellName(13, totalRow), r.Total.InexactFloat64()); err != nil {
		return err
	}
	if err := f.SetCellStyle(openItemsSheet, cellName(1, totalRow), cellName(13, totalRow), styles.total); err != nil {
		return err
	}

	if err := f.SetColWidth(openItemsSheet, "A", "A", 18); err != nil {
		return err
	}
	if err := f.SetColWidth(openItemsSheet, "B", "B", 32); err != nil {
		return err
	}
	if err := f.SetColWidth(openItemsSheet, "C", "M", 16); err != nil {
		return err
	}
	return f.SetPanes(openItemsSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}

func writeAging(f *excelize.File, styles sheetStyles, r *report.OpenItemsReport) error {
	if _, err := f.NewSheet(agingSheet); err != nil {
		return err
	}
	if err := f.SetSheetRow(agingSheet, "A1", &[]any{"Stichtag", r.AsOf}); err != nil {
		return err
	}
	if err := f.SetCellStyle(agingSheet, "B1", "B1", styles.date); err != nil {
		return err
	}
	if err := f.SetSheetRow(agingSheet, "A3", &[]string{"Altersklasse", "Anzahl", "Betrag"}); err != nil {
		return err
	}
	if err := f.SetCellStyle(agingSheet, "A3", "C3", styles.header); err != nil {
		return err
	}

	for i, b := range r.Buckets {
		row := i + 4
		if err := f.SetSheetRow(agingSheet, cellName(1, row), &[]any{string(b.Bucket), b.Count, b.Amount.InexactFloat64()}); err != nil {
			return err
		}
		if err := f.SetCellStyle(agingSheet, cellName(3, row), cellName(3, row), styles.amount); err != nil {
			return err
		}
	}

	totalRow := len(r.Buckets) + 4
	if err := f.SetSheetRow(agingSheet, cellName(1, totalRow), &[]any{"Summe", r.TotalCount, r.Total.InexactFloat64()}); err != nil {
		return err
	}
	if err := f.SetCellStyle(agingSheet, cellName(1, totalRow), cellName(3, totalRow), styles.total); err != nil {
		return err
	}
	return f.SetColWidth(agingSheet, "A", "C", 16)
}

func cellName(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}
