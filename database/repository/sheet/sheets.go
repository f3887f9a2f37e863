// File: database/repository/sheet/sheets.go
package sheetRepo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"heysheets/config"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

type googleSheetRepo struct {
	svc *sheets.Service
}

// NewGoogleSheetRepo constructs a SheetRepository over the Google Sheets API.
func NewGoogleSheetRepo(ctx context.Context) (SheetRepository, error) {
	var opts []option.ClientOption
	if config.AppConfig.GoogleCredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(config.AppConfig.GoogleCredentialsFile))
	} else {
		opts = append(opts, option.WithAPIKey(config.AppConfig.GoogleAPIKey))
	}

	svc, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return &googleSheetRepo{svc: svc}, nil
}

func (r *googleSheetRepo) ReadTab(ctx context.Context, spreadsheetID, tabName string) ([]map[string]string, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	// Quote the tab name so names with spaces resolve as a range.
	readRange := fmt.Sprintf("'%s'", strings.ReplaceAll(tabName, "'", ""))
	resp, err := r.svc.Spreadsheets.Values.Get(spreadsheetID, readRange).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read tab %q: %w", tabName, err)
	}
	if len(resp.Values) == 0 {
		return nil, nil
	}

	headers := make([]string, len(resp.Values[0]))
	for i, h := range resp.Values[0] {
		headers[i] = strings.TrimSpace(fmt.Sprintf("%v", h))
	}

	rows := make([]map[string]string, 0, len(resp.Values)-1)
	for _, raw := range resp.Values[1:] {
		row := make(map[string]string, len(headers))
		for i, header := range headers {
			if header == "" {
				continue
			}
			// Short rows are padded with empty strings.
			if i < len(raw) {
				row[header] = strings.TrimSpace(fmt.Sprintf("%v", raw[i]))
			} else {
				row[header] = ""
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}
