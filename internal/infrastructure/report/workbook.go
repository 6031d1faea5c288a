package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	admindomain "github.com/sngm3741/ecorating-services/api/internal/admin/domain"
	"github.com/sngm3741/ecorating-services/api/internal/sustainability"
)

const (
	SheetOverview   = "Overview"
	SheetInsights   = "Insights"
	SheetCategories = "Categories"
)

// WorkbookRenderer writes dashboard snapshots as .xlsx files.
type WorkbookRenderer struct{}

func NewWorkbookRenderer() *WorkbookRenderer {
	return &WorkbookRenderer{}
}

// Render lays out the overview and performance table, the insights and the category breakdown
// on separate sheets.
func (r *WorkbookRenderer) Render(d *admindomain.Dashboard) ([]byte, error) {
	if d == nil {
		return nil, fmt.Errorf("dashboard is nil")
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetOverview); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	for _, name := range []string{SheetInsights, SheetCategories} {
		if _, err := f.NewSheet(name); err != nil {
			return nil, fmt.Errorf("create sheet %s: %w", name, err)
		}
	}

	overview := [][]any{
		{"Metric", "Value"},
		{"Total Stores", d.Overview.TotalStores},
		{"Avg System Rating", sustainability.Round1(d.Overview.AvgSystemRating)},
		{"Total Reviews", d.Overview.TotalReviews},
		{"Avg Community Rating", sustainability.Round1(d.Overview.AvgCommunityRating)},
		{"Generated At", d.GeneratedAt.UTC().Format("2006-01-02 15:04:05")},
		{},
		{"Store", "Category", "System Score", "Reviews"},
	}
	for _, p := range d.Performance {
		overview = append(overview, []any{p.Name, p.Category, p.SystemScore, p.TotalReviews})
	}
	if err := writeRows(f, SheetOverview, overview); err != nil {
		return nil, err
	}

	insights := [][]any{{"Type", "Title", "Description", "Metric"}}
	for _, in := range d.Insights {
		insights = append(insights, []any{string(in.Type), in.Title, in.Description, in.Metric})
	}
	if err := writeRows(f, SheetInsights, insights); err != nil {
		return nil, err
	}

	categories := [][]any{{"Category", "Stores", "Avg Score"}}
	for _, c := range d.Categories {
		categories = append(categories, []any{c.Name, c.Stores, c.AvgScore})
	}
	if err := writeRows(f, SheetCategories, categories); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		values := row
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}

