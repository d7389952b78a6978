package prepared

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"veloviz.transitdata.no/internal/logging"
	"veloviz.transitdata.no/internal/models"
)

// Client retrieves prepared datasets from the fixed /prepared-data/ base
// path. It imposes no timeouts of its own; callers that need one wrap the
// context or supply an http.Client with a Timeout.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	Logger     *slog.Logger
}

func NewClient(baseURL string, logger *slog.Logger) *Client {
	return &Client{
		BaseURL:    strings.TrimSuffix(baseURL, "/"),
		HTTPClient: http.DefaultClient,
		Logger:     logger,
	}
}

func (c *Client) url(name string) string {
	return c.BaseURL + "/prepared-data/" + name
}

// FetchBytes retrieves a raw prepared file, such as a columnar table.
func (c *Client) FetchBytes(ctx context.Context, name string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url(name), nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer logging.SafeCloseWithLogging(resp.Body, c.Logger, "prepared_data_fetch")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &RetrievalError{Resource: name, StatusCode: resp.StatusCode}
	}
	return io.ReadAll(resp.Body)
}

// LoadDataset fetches an envelope-wrapped JSON dataset. The body must be a
// JSON object; null, arrays and primitives are rejected with a
// ValidationError. The shape of the data payload itself is the caller's
// contract and is not runtime-checked.
func LoadDataset[T any](ctx context.Context, c *Client, name string) (*models.Envelope[T], error) {
	body, err := c.FetchBytes(ctx, name)
	if err != nil {
		return nil, err
	}

	trimmed := bytes.TrimLeft(body, " \t\r\n")
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, &ValidationError{Resource: name, Reason: "body is not a JSON object"}
	}

	var env models.Envelope[T]
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return nil, &ValidationError{Resource: name, Reason: err.Error()}
	}
	return &env, nil
}
