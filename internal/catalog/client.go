package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/cenkalti/backoff/v4"
	json "github.com/goccy/go-json"
	"github.com/rs/zerolog"
)

const (
	defaultBaseURL    = "https://prices.azure.com"
	defaultAPIVersion = "2023-01-01-preview"

	// serverPageMax is the largest page the catalog serves; $top below
	// this lets the server trim the first page for small requests.
	serverPageMax = 1000

	defaultMaxItems   = 100
	defaultTimeout    = 30 * time.Second
	defaultMaxRetries = 3
	defaultRetryBase  = 500 * time.Millisecond

	maxErrorBodyBytes = 4 << 10
)

// Config controls endpoint and retry behavior. The zero value selects
// the public endpoint with default timeouts.
type Config struct {
	BaseURL        string
	APIVersion     string
	HTTPTimeout    time.Duration
	MaxRetries     int
	RetryBaseDelay time.Duration
}

// Client fetches price records from the retail prices endpoint. A
// Client is safe for concurrent use; each Fetch call is an independent
// pagination pass with no cursor state retained between calls.
type Client struct {
	baseURL    string
	apiVersion string
	httpClient *http.Client
	maxRetries int
	retryBase  time.Duration
	logger     zerolog.Logger
}

// NewClient creates a catalog client. Zero-valued Config fields fall
// back to defaults.
func NewClient(cfg Config, logger zerolog.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.APIVersion == "" {
		cfg.APIVersion = defaultAPIVersion
	}
	if cfg.HTTPTimeout <= 0 {
		cfg.HTTPTimeout = defaultTimeout
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = defaultMaxRetries
	}
	if cfg.RetryBaseDelay <= 0 {
		cfg.RetryBaseDelay = defaultRetryBase
	}
	return &Client{
		baseURL:    cfg.BaseURL,
		apiVersion: cfg.APIVersion,
		httpClient: &http.Client{Timeout: cfg.HTTPTimeout},
		maxRetries: cfg.MaxRetries,
		retryBase:  cfg.RetryBaseDelay,
		logger:     logger,
	}
}

// Fetch retrieves records matching the filter expression, following
// NextPageLink continuations until the pages are exhausted or maxItems
// records have been collected. maxItems <= 0 selects a default cap.
// The fetch is all-or-nothing: any page-level failure discards records
// already collected so callers never see a partial view.
func (c *Client) Fetch(ctx context.Context, filter, currency string, maxItems int) (*Result, error) {
	if maxItems <= 0 {
		maxItems = defaultMaxItems
	}

	nextURL := c.firstPageURL(filter, currency, maxItems)
	result := &Result{}
	pages := 0

	for nextURL != "" {
		page, err := c.getPage(ctx, nextURL)
		if err != nil {
			return nil, err
		}
		pages++
		result.Records = append(result.Records, page.Items...)

		if len(result.Records) >= maxItems {
			if len(result.Records) > maxItems || page.NextPageLink != "" {
				result.Records = result.Records[:maxItems]
				result.Truncated = true
			}
			break
		}
		nextURL = page.NextPageLink
	}

	c.logger.Debug().
		Str("filter", filter).
		Str("currency", currency).
		Int("pages", pages).
		Int("records", len(result.Records)).
		Bool("truncated", result.Truncated).
		Msg("catalog fetch complete")

	return result, nil
}

func (c *Client) firstPageURL(filter, currency string, maxItems int) string {
	params := url.Values{}
	params.Set("api-version", c.apiVersion)
	if currency != "" {
		params.Set("currencyCode", currency)
	}
	if filter != "" {
		params.Set("$filter", filter)
	}
	if maxItems < serverPageMax {
		params.Set("$top", strconv.Itoa(maxItems))
	}
	return c.baseURL + "/api/retail/prices?" + params.Encode()
}

// getPage fetches and decodes one page, retrying transient failures
// (connection errors, 5xx) with exponential backoff. 4xx responses and
// decode failures are terminal.
func (c *Client) getPage(ctx context.Context, pageURL string) (*pricePage, error) {
	var page *pricePage
	attempts := 0

	operation := func() error {
		attempts++
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		res, err := c.httpClient.Do(req)
		if err != nil {
			c.logger.Warn().Err(err).Int("attempt", attempts).Msg("catalog request failed")
			return err
		}
		defer res.Body.Close()

		switch {
		case res.StatusCode >= 200 && res.StatusCode < 300:
			// fall through to decode
		case res.StatusCode >= 400 && res.StatusCode < 500:
			body, _ := io.ReadAll(io.LimitReader(res.Body, maxErrorBodyBytes))
			return backoff.Permanent(&BadFilterError{StatusCode: res.StatusCode, Message: string(body)})
		default:
			c.logger.Warn().Int("status", res.StatusCode).Int("attempt", attempts).Msg("catalog returned server error")
			return fmt.Errorf("status %d", res.StatusCode)
		}

		body, err := io.ReadAll(res.Body)
		if err != nil {
			return err
		}
		var decoded pricePage
		if err := json.Unmarshal(body, &decoded); err != nil {
			return backoff.Permanent(&ParseError{Err: err})
		}
		page = &decoded
		return nil
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = c.retryBase
	err := backoff.Retry(operation, backoff.WithContext(
		backoff.WithMaxRetries(policy, uint64(c.maxRetries)), ctx))
	if err != nil {
		var badFilter *BadFilterError
		var parseErr *ParseError
		if errors.As(err, &badFilter) || errors.As(err, &parseErr) {
			return nil, err
		}
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, &TransientError{Attempts: attempts, Err: err}
	}
	return page, nil
}
