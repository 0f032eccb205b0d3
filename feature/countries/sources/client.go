package sources

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"country-exchange/core/metrics"
	"country-exchange/feature/countries/models"

	"github.com/shopspring/decimal"
)

// Client fetches raw data from the configured endpoints. It never retries.
type Client struct {
	cfg  Config
	http *http.Client
}

// NewClient creates a Client. A nil httpClient gets one bounded by cfg.Timeout().
func NewClient(cfg Config, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout()}
	}
	return &Client{cfg: cfg, http: httpClient}
}

// CountriesSource returns the display name of the countries source.
func (c *Client) CountriesSource() string { return c.cfg.CountriesName }

// RatesSource returns the display name of the rates source.
func (c *Client) RatesSource() string { return c.cfg.RatesName }

// FetchCountries returns every country of the countries source.
// A body that is not a JSON array is a failure.
func (c *Client) FetchCountries(ctx context.Context) ([]models.RawCountry, error) {
	var out []models.RawCountry
	err := c.fetch(ctx, c.cfg.CountriesName, c.cfg.CountriesURL, func(body []byte) error {
		return json.Unmarshal(body, &out)
	})
	if err != nil {
		return nil, err
	}
	if out == nil {
		return nil, newSourceError(c.cfg.CountriesName, "malformed response: expected a JSON array")
	}
	return out, nil
}

type ratesPayload struct {
	Rates map[string]decimal.Decimal `json:"rates"`
}

// FetchRates returns the currency code to rate table of the rates source.
// A missing or null "rates" field is a failure.
func (c *Client) FetchRates(ctx context.Context) (map[string]decimal.Decimal, error) {
	var payload ratesPayload
	err := c.fetch(ctx, c.cfg.RatesName, c.cfg.RatesURL, func(body []byte) error {
		return json.Unmarshal(body, &payload)
	})
	if err != nil {
		return nil, err
	}
	if payload.Rates == nil {
		return nil, newSourceError(c.cfg.RatesName, "invalid response format: missing rates")
	}
	return payload.Rates, nil
}

func (c *Client) fetch(ctx context.Context, source, url string, decode func([]byte) error) (err error) {
	start := time.Now()
	defer func() {
		outcome := metrics.OutcomeSuccess
		if err != nil {
			outcome = metrics.OutcomeSourceUnavailable
		}
		metrics.SourceFetchDuration.WithLabelValues(source, outcome).Observe(time.Since(start).Seconds())
	}()

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout())
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return newSourceError(source, "invalid request: %v", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || isTimeout(err) {
			return newSourceError(source, "request timeout")
		}
		return newSourceError(source, "request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newSourceError(source, "unexpected status %d", resp.StatusCode)
	}

	limit := c.cfg.maxBody()
	body, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return newSourceError(source, "read body: %v", err)
	}
	if int64(len(body)) > limit {
		return newSourceError(source, "response body exceeds %d bytes", limit)
	}

	if err := decode(body); err != nil {
		return newSourceError(source, "malformed response: %v", err)
	}
	return nil
}

func isTimeout(err error) bool {
	var te interface{ Timeout() bool }
	return errors.As(err, &te) && te.Timeout()
}
