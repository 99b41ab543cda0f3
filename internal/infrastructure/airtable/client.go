package airtable

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/swellfound/standards/internal/domain"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// DefaultBaseURL is the public Airtable REST endpoint.
const DefaultBaseURL = "https://api.airtable.com/v0"

// maxErrorBody bounds how much of an error response is kept for logs.
const maxErrorBody = 512

// ClientConfig holds the opaque store coordinates. None of the values are
// parsed; they are only placed into request paths and headers.
type ClientConfig struct {
	APIKey            string
	BaseURL           string
	BaseID            string
	Table             string
	View              string
	FilterFormula     string
	RequestsPerSecond float64
	// Timeout of zero leaves requests unbounded.
	Timeout time.Duration
}

// Client handles communication with the Airtable REST API
type Client struct {
	httpClient  *http.Client
	apiKey      string
	baseURL     string
	baseID      string
	table       string
	view        string
	formula     string
	rateLimiter *rate.Limiter
	logger      *zap.Logger
}

// ListOptions narrows a List call. FilterByFormula is evaluated server side;
// callers still re-filter locally.
type ListOptions struct {
	View            string
	FilterByFormula string
}

// Row is a raw table row. Field values are kept undecoded so that each one
// can be coerced independently.
type Row struct {
	ID          string                     `json:"id"`
	CreatedTime string                     `json:"createdTime,omitempty"`
	Fields      map[string]json.RawMessage `json:"fields"`
}

type listResponse struct {
	Records *[]Row `json:"records"`
	Offset  string `json:"offset,omitempty"`
}

type createRequest struct {
	Records []createRecord `json:"records"`
}

type createRecord struct {
	Fields map[string]string `json:"fields"`
}

type createResponse struct {
	Records []Row `json:"records"`
}

type apiError struct {
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// NewClient creates a new Airtable client
func NewClient(cfg ClientConfig, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	// Airtable allows 5 requests per second per base
	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = 5
	}
	burst := int(rps)
	if burst < 1 {
		burst = 1
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		apiKey:      cfg.APIKey,
		baseURL:     baseURL,
		baseID:      cfg.BaseID,
		table:       cfg.Table,
		view:        cfg.View,
		formula:     cfg.FilterFormula,
		rateLimiter: rate.NewLimiter(rate.Limit(rps), burst),
		logger:      logger.Named("airtable"),
	}
}

func (c *Client) tableURL() string {
	return fmt.Sprintf("%s/%s/%s", c.baseURL, url.PathEscape(c.baseID), url.PathEscape(c.table))
}

// doRequest executes an HTTP request with auth headers after waiting for the limiter
func (c *Client) doRequest(ctx context.Context, method, reqURL string, body io.Reader) (*http.Response, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter error: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("User-Agent", "standards-catalog/1.0")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.httpClient.Do(req)
}

// List reads every row of the table, following pagination offsets until the
// store reports no more pages.
func (c *Client) List(ctx context.Context, opts ListOptions) ([]Row, error) {
	var rows []Row
	offset := ""

	for page := 1; ; page++ {
		params := url.Values{}
		if opts.View != "" {
			params.Set("view", opts.View)
		}
		if opts.FilterByFormula != "" {
			params.Set("filterByFormula", opts.FilterByFormula)
		}
		if offset != "" {
			params.Set("offset", offset)
		}
		reqURL := c.tableURL()
		if len(params) > 0 {
			reqURL += "?" + params.Encode()
		}

		resp, err := c.doRequest(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrFetch, err)
		}
		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("%w: read body: %v", domain.ErrFetch, err)
		}
		if resp.StatusCode != http.StatusOK {
			c.logger.Warn("list failed",
				zap.Int("status", resp.StatusCode),
				zap.Int("page", page),
				zap.String("body", truncate(body)))
			return nil, statusError(domain.ErrFetch, resp.StatusCode, body)
		}

		var parsed listResponse
		if err := json.Unmarshal(body, &parsed); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrSchema, err)
		}
		if parsed.Records == nil {
			return nil, fmt.Errorf("%w: response has no records list", domain.ErrSchema)
		}
		rows = append(rows, *parsed.Records...)

		c.logger.Debug("list page",
			zap.Int("page", page),
			zap.Int("rows", len(*parsed.Records)))

		if parsed.Offset == "" {
			break
		}
		offset = parsed.Offset
	}

	return rows, nil
}

// Create writes one row and returns it as the store echoed it back.
func (c *Client) Create(ctx context.Context, fields map[string]string) (Row, error) {
	payload, err := json.Marshal(createRequest{Records: []createRecord{{Fields: fields}}})
	if err != nil {
		return Row{}, fmt.Errorf("%w: encode: %v", domain.ErrSubmit, err)
	}

	resp, err := c.doRequest(ctx, http.MethodPost, c.tableURL(), bytes.NewReader(payload))
	if err != nil {
		return Row{}, fmt.Errorf("%w: %v", domain.ErrSubmit, err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		c.logger.Warn("create failed",
			zap.Int("status", resp.StatusCode),
			zap.String("body", truncate(body)))
		return Row{}, statusError(domain.ErrSubmit, resp.StatusCode, body)
	}

	var parsed createResponse
	if err := json.Unmarshal(body, &parsed); err != nil || len(parsed.Records) == 0 {
		// The row exists even if the echo is unreadable.
		c.logger.Warn("create response unreadable", zap.String("body", truncate(body)))
		return Row{}, nil
	}

	c.logger.Info("record created", zap.String("id", parsed.Records[0].ID))
	return parsed.Records[0], nil
}

// FetchAll lists the configured view, maps every row and resolves related
// references within the same batch.
func (c *Client) FetchAll(ctx context.Context) ([]domain.Standard, error) {
	rows, err := c.List(ctx, ListOptions{View: c.view, FilterByFormula: c.formula})
	if err != nil {
		return nil, err
	}
	records := ResolveRelated(MapRows(rows))
	c.logger.Info("catalog fetched",
		zap.Int("rows", len(rows)),
		zap.Int("records", len(records)))
	return records, nil
}

// CreateRecord implements domain.RecordStore. Local state is left untouched.
func (c *Client) CreateRecord(ctx context.Context, fields map[string]string) error {
	_, err := c.Create(ctx, fields)
	return err
}

func statusError(sentinel error, status int, body []byte) error {
	var apiErr apiError
	if json.Unmarshal(body, &apiErr) == nil && apiErr.Error.Type != "" {
		if status == http.StatusTooManyRequests {
			return fmt.Errorf("%w: %w: %s", sentinel, domain.ErrRateLimited, apiErr.Error.Message)
		}
		return fmt.Errorf("%w: status %d: %s: %s", sentinel, status, apiErr.Error.Type, apiErr.Error.Message)
	}
	if status == http.StatusTooManyRequests {
		return fmt.Errorf("%w: %w", sentinel, domain.ErrRateLimited)
	}
	return fmt.Errorf("%w: status %d", sentinel, status)
}

func truncate(body []byte) string {
	if len(body) > maxErrorBody {
		return string(body[:maxErrorBody]) + "..."
	}
	return string(body)
}
