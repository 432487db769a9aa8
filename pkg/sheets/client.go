package sheets

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"
)

// RAW stores cell text as-is so values such as "=HYPERLINK(...)" or "+91 ..." never become formulas
const valueInput = "RAW"

// Client writes tabular data into Google Sheets
type Client struct {
	service *sheetsapi.Service
}

type Config struct {
	CredentialsPath string
	CredentialsJSON []byte
}

func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	var opts []option.ClientOption

	switch {
	case cfg.CredentialsPath != "":
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsPath))
	case len(cfg.CredentialsJSON) > 0:
		opts = append(opts, option.WithCredentialsJSON(cfg.CredentialsJSON))
	default:
		return nil, fmt.Errorf("sheets: credentials path or JSON is required")
	}
	opts = append(opts, option.WithScopes(sheetsapi.SpreadsheetsScope))

	return newClient(ctx, opts...)
}

func newClient(ctx context.Context, opts ...option.ClientOption) (*Client, error) {
	service, err := sheetsapi.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("sheets: create service: %w", err)
	}

	return &Client{service: service}, nil
}

// A1Range builds an A1 range on tab, quoting the sheet name so names with spaces or
// apostrophes ("Q3 Hires", "Ops' list") resolve
func A1Range(tab, cells string) string {
	quoted := "'" + strings.ReplaceAll(tab, "'", "''") + "'"
	if cells == "" {
		return quoted
	}
	return quoted + "!" + cells
}

// Append adds rows after the last non-empty row of rng
func (c *Client) Append(ctx context.Context, spreadsheetID, rng string, rows [][]interface{}) error {
	_, err := c.service.Spreadsheets.Values.Append(spreadsheetID, rng, &sheetsapi.ValueRange{Values: rows}).
		ValueInputOption(valueInput).
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("sheets: append %s: %w", rng, err)
	}
	return nil
}

// Replace clears tab and writes rows starting at A1
func (c *Client) Replace(ctx context.Context, spreadsheetID, tab string, rows [][]interface{}) error {
	_, err := c.service.Spreadsheets.Values.Clear(spreadsheetID, A1Range(tab, ""), &sheetsapi.ClearValuesRequest{}).
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("sheets: clear %s: %w", tab, err)
	}

	rng := A1Range(tab, "A1")
	_, err = c.service.Spreadsheets.Values.Update(spreadsheetID, rng, &sheetsapi.ValueRange{Values: rows}).
		ValueInputOption(valueInput).
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("sheets: update %s: %w", rng, err)
	}
	return nil
}
