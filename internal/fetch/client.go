// Package fetch retrieves and aggregates per-chain wallet activity from the
// Covalent indexing API.
package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/sirupsen/logrus"
	"github.com/yourorg/onchain-wrapped/internal/model"
	"github.com/yourorg/onchain-wrapped/internal/types"
)

// Client talks to the Covalent HTTP API.
type Client struct {
	baseURL    string
	apiKey     string
	pageSize   int
	httpClient *http.Client
}

// NewClient creates a Covalent API client. The indexing endpoints are never
// retried: a failed page is treated as end of data by the fetch loop, so the
// retry count is pinned to zero.
func NewClient(baseURL, apiKey string, pageSize int) *Client {
	rc := retryablehttp.NewClient()
	rc.RetryMax = 0
	rc.HTTPClient.Timeout = 15 * time.Second
	rc.Logger = nil
	// Hand back the final response instead of a "giving up" error so the
	// caller can report the actual status code and body.
	rc.ErrorHandler = retryablehttp.PassthroughErrorHandler

	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		pageSize:   pageSize,
		httpClient: rc.StandardClient(),
	}
}

// TxPage fetches one fixed-size page of the address's transaction history on
// a chain, annotated with USD quote values.
func (c *Client) TxPage(ctx context.Context, chain types.Chain, address string, page int) ([]model.Transaction, error) {
	q := url.Values{}
	q.Set("key", c.apiKey)
	q.Set("quote-currency", "USD")
	q.Set("page-size", fmt.Sprintf("%d", c.pageSize))
	q.Set("page-number", fmt.Sprintf("%d", page))
	q.Set("no-logs", "false")

	u := fmt.Sprintf("%s/v1/%s/address/%s/transactions_v2/?%s", c.baseURL, chain.Name, address, q.Encode())

	var body model.TxPage
	if err := c.getJSON(ctx, u, &body); err != nil {
		return nil, err
	}
	if body.Error {
		return nil, fmt.Errorf("covalent error for %s: %s", chain.Name, body.ErrorMessage)
	}

	logrus.WithFields(logrus.Fields{
		"chain": chain.Label,
		"page":  page,
		"items": len(body.Data.Items),
	}).Debug("Fetched transaction page")

	return body.Data.Items, nil
}

// YearSummary fetches the whole-year bucketed transaction summary for the
// address on a chain. This endpoint is cheap and queried once per chain.
func (c *Client) YearSummary(ctx context.Context, chain types.Chain, address string) ([]model.SummaryBucket, error) {
	q := url.Values{}
	q.Set("key", c.apiKey)

	u := fmt.Sprintf("%s/v1/%s/address/%s/transactions_summary/?%s", c.baseURL, chain.Name, address, q.Encode())

	var body model.SummaryPage
	if err := c.getJSON(ctx, u, &body); err != nil {
		return nil, err
	}
	if body.Error {
		return nil, fmt.Errorf("covalent summary error for %s: %s", chain.Name, body.ErrorMessage)
	}

	return body.Data.Items, nil
}

// getJSON performs a GET request and decodes the JSON response into out.
func (c *Client) getJSON(ctx context.Context, u string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(snippet))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("error decoding response: %w", err)
	}
	return nil
}
