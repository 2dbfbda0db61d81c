package google

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/sync/errgroup"
	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"

	"bizledger/internal/core"
	applog "bizledger/internal/log"
	ports "bizledger/internal/sheets"
)

// clearRange covers every column the report layout writes to.
const clearRange = "A:Q"

// Ensure interface conformance
var _ ports.Exporter = (*Exporter)(nil)

// Options configure New. Either CredentialsJSON or CredentialsFile must be set.
type Options struct {
	SpreadsheetID   string
	CredentialsFile string
	CredentialsJSON string
	SheetPrefix     string
	Logger          *applog.Logger

	// ClientOptions are appended to the credential options; tests use them
	// to point the client at a fake endpoint.
	ClientOptions []goption.ClientOption
}

// Exporter writes reports into a Google spreadsheet, one sheet per month.
type Exporter struct {
	svc           *gsheet.Service
	spreadsheetID string
	prefix        string
	logger        *applog.Logger
}

// New creates an exporter authenticated with a service account.
func New(ctx context.Context, opts Options) (*Exporter, error) {
	spreadsheetID := strings.TrimSpace(opts.SpreadsheetID)
	if spreadsheetID == "" {
		return nil, errors.New("missing GOOGLE_SPREADSHEET_ID")
	}

	clientOpts, err := credentialOptions(opts)
	if err != nil {
		return nil, err
	}
	clientOpts = append(clientOpts, opts.ClientOptions...)

	svc, err := gsheet.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return newExporter(svc, spreadsheetID, opts.SheetPrefix, opts.Logger), nil
}

func newExporter(svc *gsheet.Service, spreadsheetID, prefix string, logger *applog.Logger) *Exporter {
	if logger == nil {
		logger = applog.Discard()
	}
	if strings.TrimSpace(prefix) == "" {
		prefix = "Report"
	}
	return &Exporter{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		prefix:        prefix,
		logger:        logger.WithComponent(applog.ComponentSheets),
	}
}

// credentialOptions reads service account credentials, inline JSON first.
func credentialOptions(opts Options) ([]goption.ClientOption, error) {
	var credentialsJSON []byte
	switch {
	case strings.TrimSpace(opts.CredentialsJSON) != "":
		credentialsJSON = []byte(opts.CredentialsJSON)
	case strings.TrimSpace(opts.CredentialsFile) != "":
		data, err := os.ReadFile(opts.CredentialsFile)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
		credentialsJSON = data
	default:
		if len(opts.ClientOptions) > 0 {
			return nil, nil
		}
		return nil, errors.New("missing service account credentials (set GOOGLE_SERVICE_ACCOUNT_JSON or GOOGLE_SERVICE_ACCOUNT_FILE)")
	}
	return []goption.ClientOption{
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsScope),
	}, nil
}

// ExportReport replaces the month's sheet with the report layout.
func (e *Exporter) ExportReport(ctx context.Context, rep core.MonthlyReport) (string, error) {
	if rep.Month.IsZero() {
		return "", fmt.Errorf("export report: %w", core.ErrInvalidMonth)
	}
	return e.writeSheet(ctx, ports.ReportSheetName(e.prefix, rep.Month), ports.ReportBlocks(rep))
}

// ExportTasks replaces the task sheet.
func (e *Exporter) ExportTasks(ctx context.Context, tasks []core.Task) (string, error) {
	return e.writeSheet(ctx, ports.TaskSheetName(e.prefix), ports.TaskBlocks(tasks))
}

func (e *Exporter) writeSheet(ctx context.Context, name string, blocks []ports.Block) (string, error) {
	if e.svc == nil {
		return "", errors.New("sheets service not initialized")
	}

	if err := e.ensureSheet(ctx, name); err != nil {
		return "", err
	}

	rng := a1(name, clearRange)
	if _, err := e.svc.Spreadsheets.Values.Clear(e.spreadsheetID, rng, &gsheet.ClearValuesRequest{}).Context(ctx).Do(); err != nil {
		return "", fmt.Errorf("clear %s: %w", rng, err)
	}

	// Blocks never overlap, so they are written concurrently.
	g, gctx := errgroup.WithContext(ctx)
	for _, b := range blocks {
		g.Go(func() error {
			target := a1(name, b.Anchor)
			vr := &gsheet.ValueRange{Values: b.Rows}
			_, err := e.svc.Spreadsheets.Values.Update(e.spreadsheetID, target, vr).
				ValueInputOption("RAW").Context(gctx).Do()
			if err != nil {
				return fmt.Errorf("update %s: %w", target, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return "", err
	}

	ref := a1(name, clearRange)
	e.logger.InfoContext(ctx, "Exported sheet", applog.FieldSheetsRef, ref, "blocks", len(blocks))
	return ref, nil
}

// ensureSheet adds the sheet when the spreadsheet does not have it yet.
func (e *Exporter) ensureSheet(ctx context.Context, name string) error {
	ss, err := e.svc.Spreadsheets.Get(e.spreadsheetID).Fields("sheets.properties.title").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("read spreadsheet: %w", err)
	}
	for _, sh := range ss.Sheets {
		if sh.Properties != nil && sh.Properties.Title == name {
			return nil
		}
	}

	req := &gsheet.BatchUpdateSpreadsheetRequest{
		Requests: []*gsheet.Request{{
			AddSheet: &gsheet.AddSheetRequest{Properties: &gsheet.SheetProperties{Title: name}},
		}},
	}
	if _, err := e.svc.Spreadsheets.BatchUpdate(e.spreadsheetID, req).Context(ctx).Do(); err != nil {
		return fmt.Errorf("add sheet %q: %w", name, err)
	}
	e.logger.InfoContext(ctx, "Created sheet", "sheet", name)
	return nil
}

// a1 builds an A1 reference, quoting the sheet name.
func a1(sheet, cells string) string {
	return "'" + strings.ReplaceAll(sheet, "'", "''") + "'!" + cells
}
