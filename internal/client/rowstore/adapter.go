package rowstoreclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/Fersca/YieldMaster/internal/errs"
)

// Adapter exposes the minimal row-store contract over the Sheets and Drive
// APIs: read/write a range as 2-D string arrays, list by exact name, create
// with named sub-sheets. Services are built per call because every call runs
// under the session's own credential.
type Adapter struct{}

func NewAdapter() *Adapter {
	return &Adapter{}
}

func (a *Adapter) sheetsService(ctx context.Context, token string) (*sheets.Service, error) {
	return sheets.NewService(ctx, option.WithTokenSource(staticToken(token)))
}

func (a *Adapter) driveService(ctx context.Context, token string) (*drive.Service, error) {
	return drive.NewService(ctx, option.WithTokenSource(staticToken(token)))
}

// ReadRange returns the cell grid for the range. A 400 means the named sheet
// does not exist yet; that resolves to "no data", not an error.
func (a *Adapter) ReadRange(ctx context.Context, token, spreadsheetID, rangeExpr string) ([][]string, error) {
	svc, err := a.sheetsService(ctx, token)
	if err != nil {
		return nil, errs.NewTransientIOError("sheets", err.Error())
	}

	resp, err := svc.Spreadsheets.Values.Get(spreadsheetID, rangeExpr).Context(ctx).Do()
	if err != nil {
		var gerr *googleapi.Error
		if errors.As(err, &gerr) && gerr.Code == http.StatusBadRequest {
			return nil, nil
		}
		return nil, classify("sheets", err)
	}

	rows := make([][]string, 0, len(resp.Values))
	for _, row := range resp.Values {
		cells := make([]string, 0, len(row))
		for _, v := range row {
			cells = append(cells, fmt.Sprint(v))
		}
		rows = append(rows, cells)
	}
	return rows, nil
}

// WriteRange overwrites the range with raw values.
func (a *Adapter) WriteRange(ctx context.Context, token, spreadsheetID, rangeExpr string, values [][]string) error {
	svc, err := a.sheetsService(ctx, token)
	if err != nil {
		return errs.NewTransientIOError("sheets", err.Error())
	}

	grid := make([][]interface{}, 0, len(values))
	for _, row := range values {
		cells := make([]interface{}, 0, len(row))
		for _, v := range row {
			cells = append(cells, v)
		}
		grid = append(grid, cells)
	}

	_, err = svc.Spreadsheets.Values.
		Update(spreadsheetID, rangeExpr, &sheets.ValueRange{Values: grid}).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	if err != nil {
		return classify("sheets", err)
	}
	return nil
}

// FindByName resolves a non-trashed Drive file by exact name; "" when absent.
func (a *Adapter) FindByName(ctx context.Context, token, name string) (string, error) {
	svc, err := a.driveService(ctx, token)
	if err != nil {
		return "", errs.NewTransientIOError("drive", err.Error())
	}

	query := fmt.Sprintf("name='%s' and trashed=false", name)
	resp, err := svc.Files.List().Q(query).Fields("files(id)").Context(ctx).Do()
	if err != nil {
		return "", classify("drive", err)
	}
	if len(resp.Files) == 0 {
		return "", nil
	}
	return resp.Files[0].Id, nil
}

// CreateSpreadsheet provisions a fresh spreadsheet carrying the named sheets.
func (a *Adapter) CreateSpreadsheet(ctx context.Context, token, name string, sheetTitles []string) (string, error) {
	svc, err := a.sheetsService(ctx, token)
	if err != nil {
		return "", errs.NewTransientIOError("sheets", err.Error())
	}

	spec := &sheets.Spreadsheet{
		Properties: &sheets.SpreadsheetProperties{Title: name},
	}
	for _, title := range sheetTitles {
		spec.Sheets = append(spec.Sheets, &sheets.Sheet{
			Properties: &sheets.SheetProperties{Title: title},
		})
	}

	created, err := svc.Spreadsheets.Create(spec).Context(ctx).Do()
	if err != nil {
		return "", classify("sheets", err)
	}
	return created.SpreadsheetId, nil
}

// EnsureSheets adds any of the named sheets missing from an existing
// spreadsheet.
func (a *Adapter) EnsureSheets(ctx context.Context, token, spreadsheetID string, sheetTitles []string) error {
	svc, err := a.sheetsService(ctx, token)
	if err != nil {
		return errs.NewTransientIOError("sheets", err.Error())
	}

	info, err := svc.Spreadsheets.Get(spreadsheetID).Context(ctx).Do()
	if err != nil {
		return classify("sheets", err)
	}

	existing := make(map[string]bool, len(info.Sheets))
	for _, sh := range info.Sheets {
		if sh.Properties != nil {
			existing[sh.Properties.Title] = true
		}
	}

	var requests []*sheets.Request
	for _, title := range sheetTitles {
		if !existing[title] {
			requests = append(requests, &sheets.Request{
				AddSheet: &sheets.AddSheetRequest{
					Properties: &sheets.SheetProperties{Title: title},
				},
			})
		}
	}
	if len(requests) == 0 {
		return nil
	}

	_, err = svc.Spreadsheets.
		BatchUpdate(spreadsheetID, &sheets.BatchUpdateSpreadsheetRequest{Requests: requests}).
		Context(ctx).
		Do()
	if err != nil {
		return classify("sheets", err)
	}
	return nil
}

// ---- Helpers ----

func staticToken(token string) oauth2.TokenSource {
	return oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
}

// classify maps API failures onto the tracker's error taxonomy. 401 is the
// only condition that tears down the session.
func classify(service string, err error) error {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		switch gerr.Code {
		case http.StatusUnauthorized:
			return errs.NewSessionExpiredError()
		case http.StatusForbidden:
			return errs.NewInsufficientScopeError(service)
		}
	}
	return errs.NewTransientIOError(service, err.Error())
}
