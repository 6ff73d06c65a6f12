package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"assetdirectory/pkg/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	listAssetsPath  = "/api/v1/asset/"
	assetQRPath     = "/api/v1/public/asset_qr/%s/"
	facilityPath    = "/api/v1/getallfacilities/%s/"
	requestIDHeader = "X-Request-ID"
	maxErrorBody    = 4 << 10
)

// HTTPError is a non-2xx answer from the catalog API.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("catalog responded with status %d: %s", e.StatusCode, e.Body)
}

// Client talks to the remote catalog API.
type Client struct {
	baseURL    *url.URL
	token      string
	httpClient *http.Client
	logger     *zap.Logger
}

var _ Catalog = (*Client)(nil)

type ClientOption func(*Client)

func WithToken(token string) ClientOption {
	return func(c *Client) {
		c.token = token
	}
}

func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

func WithLogger(logger *zap.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

func NewClient(baseURL string, opts ...ClientOption) (*Client, error) {
	parsed, err := url.Parse(strings.TrimSuffix(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid catalog url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("invalid catalog url %q: must be absolute", baseURL)
	}

	c := &Client{
		baseURL:    parsed,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

func (c *Client) Search(ctx context.Context, req SearchRequest) (*SearchResponse, error) {
	var resp SearchResponse
	if err := c.get(ctx, listAssetsPath, req.Values(), &resp); err != nil {
		return nil, fmt.Errorf("search assets: %w", err)
	}

	return &resp, nil
}

func (c *Client) LookupRegistry(ctx context.Context, code string) (*models.RegistryRecord, error) {
	var record models.RegistryRecord
	if err := c.get(ctx, fmt.Sprintf(assetQRPath, url.PathEscape(code)), nil, &record); err != nil {
		return nil, fmt.Errorf("lookup qr code %s: %w", code, err)
	}
	if record.AssetID == "" && record.QRCodeID == "" {
		return nil, fmt.Errorf("lookup qr code %s: %w", code, ErrNotFound)
	}

	return &record, nil
}

func (c *Client) Facility(ctx context.Context, id string) (*models.Facility, error) {
	var facility models.Facility
	if err := c.get(ctx, fmt.Sprintf(facilityPath, url.PathEscape(id)), nil, &facility); err != nil {
		return nil, fmt.Errorf("get facility %s: %w", id, err)
	}

	return &facility, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out interface{}) error {
	endpoint := c.baseURL.JoinPath(path)
	// JoinPath drops the trailing slash the API routes require.
	if strings.HasSuffix(path, "/") && !strings.HasSuffix(endpoint.Path, "/") {
		endpoint.Path += "/"
	}
	endpoint.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return err
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set(requestIDHeader, requestID)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	started := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("catalog request failed",
			zap.String("request_id", requestID),
			zap.String("path", endpoint.Path),
			zap.Error(err),
		)
		return err
	}
	defer resp.Body.Close()

	c.logger.Debug("catalog request",
		zap.String("request_id", requestID),
		zap.String("path", endpoint.Path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("took", time.Since(started)),
	)

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &HTTPError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}
