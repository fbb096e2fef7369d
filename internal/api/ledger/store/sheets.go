package store

import (
	"context"
	"encoding/base64"
	"fmt"

	"buyza_commerce/internal/logger"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// GoogleSheetStore implements SheetStore on a Google Sheets spreadsheet.
type GoogleSheetStore struct {
	service       *sheets.Service
	spreadsheetID string
}

// NewGoogleSheetStore builds a store from a base64-encoded service account
// JSON credential and a spreadsheet id.
func NewGoogleSheetStore(ctx context.Context, credentialsBase64 string, spreadsheetID string) (*GoogleSheetStore, error) {
	if credentialsBase64 == "" {
		return nil, fmt.Errorf("missing Google service account credentials")
	}
	if spreadsheetID == "" {
		return nil, fmt.Errorf("missing spreadsheet id")
	}

	credentials, err := base64.StdEncoding.DecodeString(credentialsBase64)
	if err != nil {
		return nil, fmt.Errorf("failed to decode Google credentials: %w", err)
	}

	service, err := sheets.NewService(ctx,
		option.WithCredentialsJSON(credentials),
		option.WithScopes(sheets.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create Sheets service: %w", err)
	}

	logger.GetAppLogger().WithField("spreadsheetId", spreadsheetID).Info("Google Sheets store initialized")

	return &GoogleSheetStore{
		service:       service,
		spreadsheetID: spreadsheetID,
	}, nil
}

// ReadRange returns the populated rows of the range as strings.
func (s *GoogleSheetStore) ReadRange(ctx context.Context, rangeA1 string) ([][]string, error) {
	resp, err := s.service.Spreadsheets.Values.Get(s.spreadsheetID, rangeA1).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("range read %q: %w", rangeA1, err)
	}

	rows := make([][]string, 0, len(resp.Values))
	for _, raw := range resp.Values {
		row := make([]string, len(raw))
		for i, cell := range raw {
			row[i] = fmt.Sprintf("%v", cell)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// AppendRow appends one row to the range's table with RAW input semantics.
func (s *GoogleSheetStore) AppendRow(ctx context.Context, rangeA1 string, row []string) error {
	body := &sheets.ValueRange{Values: [][]interface{}{toInterfaceRow(row)}}
	_, err := s.service.Spreadsheets.Values.Append(s.spreadsheetID, rangeA1, body).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("range append %q: %w", rangeA1, err)
	}
	return nil
}

// UpdateRange overwrites the cells of the range with RAW input semantics.
func (s *GoogleSheetStore) UpdateRange(ctx context.Context, rangeA1 string, rows [][]string) error {
	values := make([][]interface{}, len(rows))
	for i, row := range rows {
		values[i] = toInterfaceRow(row)
	}
	body := &sheets.ValueRange{Values: values}
	_, err := s.service.Spreadsheets.Values.Update(s.spreadsheetID, rangeA1, body).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("range update %q: %w", rangeA1, err)
	}
	return nil
}

// EnsureSheet probes A1 of the sheet and creates the sheet plus header row
// when the probe fails.
func (s *GoogleSheetStore) EnsureSheet(ctx context.Context, title string, headers []string) error {
	log := logger.GetAppLogger()

	_, err := s.service.Spreadsheets.Values.Get(s.spreadsheetID, title+"!A1").Context(ctx).Do()
	if err == nil {
		log.WithField("sheet", title).Info("Sheet exists")
		return nil
	}

	addSheet := &sheets.Request{
		AddSheet: &sheets.AddSheetRequest{
			Properties: &sheets.SheetProperties{Title: title},
		},
	}
	batch := &sheets.BatchUpdateSpreadsheetRequest{Requests: []*sheets.Request{addSheet}}
	if _, err := s.service.Spreadsheets.BatchUpdate(s.spreadsheetID, batch).Context(ctx).Do(); err != nil {
		return fmt.Errorf("create sheet %q: %w", title, err)
	}

	if err := s.UpdateRange(ctx, title+"!A1", [][]string{headers}); err != nil {
		return fmt.Errorf("write headers for %q: %w", title, err)
	}

	log.WithField("sheet", title).Info("Created sheet with headers")
	return nil
}

func toInterfaceRow(row []string) []interface{} {
	out := make([]interface{}, len(row))
	for i, cell := range row {
		out[i] = cell
	}
	return out
}
