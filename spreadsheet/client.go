package spreadsheet

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

const (
	SHEETS = "https://www.googleapis.com/auth/spreadsheets"
	DRIVE  = "https://www.googleapis.com/auth/drive"

	MimeType  = "application/vnd.google-apps.spreadsheet"
	Timestamp = "2006-01-02T15:04:05.000000"
)

type Config struct {
	Credentials string
	Spreadsheet string
	Worksheet   string

	// Base URLs for the Google APIs, for tests and private endpoints. Empty for
	// the public endpoints.
	SheetsEndpoint string
	DriveEndpoint  string
}

// Client appends log entries to a named worksheet in a named Google Sheets
// spreadsheet. It holds configuration only: every Append authorises and opens the
// spreadsheet afresh.
type Client struct {
	config Config
	now    func() time.Time
	client *http.Client
}

type Option func(*Client)

func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		c.now = now
	}
}

// WithHTTPClient replaces the service account authorisation with a preconfigured
// HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.client = client
	}
}

func NewClient(config Config, options ...Option) *Client {
	c := Client{
		config: config,
		now:    time.Now,
	}

	for _, opt := range options {
		opt(&c)
	}

	return &c
}

// Append adds a [timestamp, text] row to the end of the worksheet.
func (c *Client) Append(ctx context.Context, text string) error {
	timestamp := c.now().Format(Timestamp)

	client, err := c.authorize(ctx)
	if err != nil {
		return err
	}

	gdrive, err := drive.NewService(ctx, c.options(client, c.config.DriveEndpoint)...)
	if err != nil {
		return fail("drive", err)
	}

	google, err := sheets.NewService(ctx, c.options(client, c.config.SheetsEndpoint)...)
	if err != nil {
		return fail("sheets", err)
	}

	spreadsheetId, err := findSpreadsheet(ctx, gdrive, c.config.Spreadsheet)
	if err != nil {
		return fail("open spreadsheet", err)
	}

	spreadsheet, err := google.Spreadsheets.Get(spreadsheetId).Fields("spreadsheetId,sheets.properties").Context(ctx).Do()
	if err != nil {
		return fail("open spreadsheet", err)
	}

	sheet, err := getSheet(spreadsheet, c.config.Worksheet)
	if err != nil {
		return fail("open worksheet", err)
	}

	row := sheets.ValueRange{
		Values: [][]interface{}{
			[]interface{}{timestamp, text},
		},
	}

	if _, err := google.Spreadsheets.Values.Append(spreadsheet.SpreadsheetId, area(sheet.Properties.Title), &row).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do(); err != nil {
		return fail("append", err)
	}

	return nil
}

func (c *Client) authorize(ctx context.Context) (*http.Client, error) {
	if c.client != nil {
		return c.client, nil
	}

	b, err := os.ReadFile(c.config.Credentials)
	if err != nil {
		return nil, fail("credentials", err)
	}

	config, err := google.JWTConfigFromJSON(b, SHEETS, DRIVE)
	if err != nil {
		return nil, &WriteError{Kind: Auth, Op: "credentials", Err: err}
	}

	return config.Client(ctx), nil
}

func (c *Client) options(client *http.Client, endpoint string) []option.ClientOption {
	options := []option.ClientOption{option.WithHTTPClient(client)}
	if endpoint != "" {
		options = append(options, option.WithEndpoint(endpoint))
	}

	return options
}

func findSpreadsheet(ctx context.Context, gdrive *drive.Service, name string) (string, error) {
	q := fmt.Sprintf("name = '%s' and mimeType = '%s' and trashed = false", escape(name), MimeType)

	list, err := gdrive.Files.List().
		Q(q).
		Fields("files(id,name)").
		SupportsAllDrives(true).
		IncludeItemsFromAllDrives(true).
		Context(ctx).
		Do()
	if err != nil {
		return "", err
	}

	if len(list.Files) == 0 {
		return "", fmt.Errorf("spreadsheet '%s' %w", name, ErrNotFound)
	}

	return list.Files[0].Id, nil
}

func getSheet(spreadsheet *sheets.Spreadsheet, name string) (*sheets.Sheet, error) {
	for _, sheet := range spreadsheet.Sheets {
		if sheet.Properties != nil && normalise(sheet.Properties.Title) == normalise(name) {
			return sheet, nil
		}
	}

	return nil, fmt.Errorf("worksheet '%s' %w", name, ErrNotFound)
}

func area(title string) string {
	return fmt.Sprintf("'%s'!A1", strings.ReplaceAll(title, "'", "''"))
}

func escape(v string) string {
	return strings.ReplaceAll(strings.ReplaceAll(v, `\`, `\\`), `'`, `\'`)
}

func normalise(v string) string {
	return strings.ToLower(strings.TrimSpace(v))
}
