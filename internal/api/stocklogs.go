package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"slices"

	"github.com/vbonduro/pantraqa/internal/domain"
)

// ExportFormats lists the export formats the API can render.
var ExportFormats = []string{"csv", "pdf"}

type LogPage struct {
	Logs       []domain.StockLog
	TotalPages int
}

// ListStockLogs fetches one page of the audit log. query carries the page and
// any filters. A response whose logs field is not an array is malformed.
func (c *Client) ListStockLogs(ctx context.Context, query url.Values) (*LogPage, error) {
	var out struct {
		Logs       json.RawMessage `json:"logs"`
		TotalPages int             `json:"totalPages"`
	}
	if err := c.do(ctx, http.MethodGet, "/stocklogs", query, nil, &out); err != nil {
		return nil, err
	}

	raw := bytes.TrimSpace(out.Logs)
	if len(raw) == 0 || raw[0] != '[' {
		return nil, fmt.Errorf("GET /stocklogs: %w: logs is not an array", ErrMalformedResponse)
	}
	var logs []domain.StockLog
	if err := json.Unmarshal(raw, &logs); err != nil {
		return nil, fmt.Errorf("GET /stocklogs: decode logs: %w: %v", ErrMalformedResponse, err)
	}
	return &LogPage{Logs: logs, TotalPages: out.TotalPages}, nil
}

// Export is a rendered log export. The caller must close Body.
type Export struct {
	Body        io.ReadCloser
	ContentType string
}

// ExportStockLogs requests the rendered export in format (csv or pdf). The
// filters are forwarded as-is.
func (c *Client) ExportStockLogs(ctx context.Context, format string, filters url.Values) (*Export, error) {
	if !slices.Contains(ExportFormats, format) {
		return nil, fmt.Errorf("unsupported export format %q", format)
	}
	req, err := c.newRequest(ctx, http.MethodGet, "/stocklogs/export/"+format, filters, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "*/*")

	resp, err := c.send(req)
	if err != nil {
		return nil, err
	}
	ct := resp.Header.Get("Content-Type")
	if ct == "" {
		ct = "application/octet-stream"
	}
	return &Export{Body: resp.Body, ContentType: ct}, nil
}

