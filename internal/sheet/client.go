package sheet

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/mechvault/catalog/internal/catalog"
	"github.com/mechvault/catalog/internal/config"
)

// maxResponseBytes bounds how much of the export response is read.
// Catalogs are hundreds of rows; anything near this limit is misconfiguration.
const maxResponseBytes = 16 << 20 // 16MB

// Client fetches the spreadsheet's CSV export over HTTPS.
// It implements catalog.RowSource and re-reads the sheet on every call.
type Client struct {
	url  string
	http *http.Client
}

// NewClient builds a sheet client from configuration.
// SHEET_URL, when set, overrides the Google export URL derived from SHEET_ID;
// tests point it at an httptest server.
func NewClient(cfg config.SheetConfig) *Client {
	target := cfg.URL
	if target == "" {
		target = exportURL(cfg.SheetID, cfg.GID, cfg.APIKey)
	}
	return &Client{
		url:  target,
		http: &http.Client{Timeout: cfg.FetchTimeout},
	}
}

// exportURL builds the CSV export URL for a Google spreadsheet.
func exportURL(sheetID, gid, apiKey string) string {
	u := fmt.Sprintf("https://docs.google.com/spreadsheets/d/%s/export?format=csv", url.PathEscape(sheetID))
	if gid != "" {
		u += "&gid=" + url.QueryEscape(gid)
	}
	if apiKey != "" {
		u += "&key=" + url.QueryEscape(apiKey)
	}
	return u
}

// Rows fetches and parses the full sheet.
func (c *Client) Rows(ctx context.Context) ([]catalog.SheetRow, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch sheet: %w", err)
	}
	req.Header.Set("Accept", "text/csv")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch sheet: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch sheet: unexpected status %s", resp.Status)
	}

	return Parse(io.LimitReader(resp.Body, maxResponseBytes))
}

// Ping verifies the sheet endpoint is reachable and parseable.
// Used at startup to fail fast on misconfiguration.
func (c *Client) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, err := c.Rows(ctx)
	return err
}
