// File: database/repository/sheet/interface.go
package sheetRepo

import "context"

// SheetRepository reads tab rows from a spreadsheet-backed data source.
// Rows come back as header-keyed mappings; the first row of a tab is its
// header row.
type SheetRepository interface {
	ReadTab(ctx context.Context, spreadsheetID, tabName string) ([]map[string]string, error)
}
