package report

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/Apurer/shop-backoffice/internal/domains/analytics/domain"
	"github.com/Apurer/shop-backoffice/internal/domains/analytics/ports"
)

var _ ports.ReportWriter = (*XLSXWriter)(nil)

const (
	// RevenueSheet holds one row per product.
	RevenueSheet = "Product Revenue"
	summarySheet = "Summary"
)

// XLSXWriter renders product revenue as an Excel workbook.
type XLSXWriter struct{}

func NewXLSXWriter() *XLSXWriter {
	return &XLSXWriter{}
}

func (XLSXWriter) WriteProductRevenue(w io.Writer, window domain.Window, rows []domain.ProductRevenue) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", RevenueSheet); err != nil {
		return err
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
	})
	if err != nil {
		return err
	}
	moneyStyle, err := f.NewStyle(&excelize.Style{NumFmt: 4})
	if err != nil {
		return err
	}

	headers := []string{"Product ID", "Product", "Revenue"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(RevenueSheet, cell, h); err != nil {
			return err
		}
	}
	if err := f.SetCellStyle(RevenueSheet, "A1", "C1", headerStyle); err != nil {
		return err
	}
	for i, row := range rows {
		line := i + 2
		values := []any{row.ProductID, row.Name, row.Revenue}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, line)
			if err := f.SetCellValue(RevenueSheet, cell, v); err != nil {
				return err
			}
		}
	}
	if len(rows) > 0 {
		last := fmt.Sprintf("C%d", len(rows)+1)
		if err := f.SetCellStyle(RevenueSheet, "C2", last, moneyStyle); err != nil {
			return err
		}
	}
	_ = f.SetColWidth(RevenueSheet, "A", "A", 12)
	_ = f.SetColWidth(RevenueSheet, "B", "B", 36)
	_ = f.SetColWidth(RevenueSheet, "C", "C", 16)

	if _, err := f.NewSheet(summarySheet); err != nil {
		return err
	}
	summary := [][]any{
		{"From", formatBound(window.Start)},
		{"To", formatBound(window.End)},
		{"Products", len(rows)},
		{"Total revenue", domain.TotalRevenue(rows)},
	}
	for i, pair := range summary {
		line := i + 1
		if err := f.SetCellValue(summarySheet, fmt.Sprintf("A%d", line), pair[0]); err != nil {
			return err
		}
		if err := f.SetCellValue(summarySheet, fmt.Sprintf("B%d", line), pair[1]); err != nil {
			return err
		}
	}
	_ = f.SetColWidth(summarySheet, "A", "A", 16)
	_ = f.SetColWidth(summarySheet, "B", "B", 28)

	idx, err := f.GetSheetIndex(RevenueSheet)
	if err != nil {
		return err
	}
	f.SetActiveSheet(idx)
	return f.Write(w)
}

func formatBound(t *time.Time) string {
	if t == nil {
		return "open"
	}
	return t.UTC().Format(time.RFC3339)
}
