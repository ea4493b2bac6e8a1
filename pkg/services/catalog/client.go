package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/de-tools/sales-atlas/pkg/models/api"
	"github.com/de-tools/sales-atlas/pkg/models/domain"
	"github.com/rs/zerolog"
)

const (
	// DefaultBaseURL points at the public DummyJSON catalog.
	DefaultBaseURL = "https://dummyjson.com"
	// DefaultTimeout bounds the full-set fetch.
	DefaultTimeout = 10 * time.Second

	fetchLimit = 100
)

// Client fetches the product catalog over HTTP.
type Client struct {
	baseURL string
	client  *http.Client
}

// Options configure a catalog Client.
type Options struct {
	BaseURL string
	Timeout time.Duration
}

// NewClient creates a catalog client with a bounded request timeout.
func NewClient(opts Options) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	return &Client{
		baseURL: opts.BaseURL,
		client:  &http.Client{Timeout: opts.Timeout},
	}
}

// FetchCatalog retrieves the full product set and keys it by numeric id.
// Any failure (connection, timeout, bad status, malformed body) degrades
// to an empty catalog so enrichment can proceed with zero matches; the
// failure is logged, never fatal.
func (c *Client) FetchCatalog(ctx context.Context) domain.Catalog {
	logger := zerolog.Ctx(ctx)
	catalog := domain.Catalog{}

	url := fmt.Sprintf("%s/products?limit=%d", c.baseURL, fetchLimit)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		logger.Warn().Err(err).Str("url", url).Msg("failed to create catalog request")
		return catalog
	}

	resp, err := c.client.Do(req)
	if err != nil {
		logger.Warn().Err(err).Str("url", url).Msg("failed to fetch product catalog")
		return catalog
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger.Warn().Err(err).Msg("failed to close catalog response body")
		}
	}()

	if resp.StatusCode != http.StatusOK {
		logger.Warn().Int("status", resp.StatusCode).Str("url", url).Msg("catalog returned non-OK status")
		return catalog
	}

	var body api.ProductsResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		logger.Warn().Err(err).Msg("failed to decode catalog response")
		return catalog
	}

	for _, p := range body.Products {
		if p.ID == 0 {
			continue
		}
		catalog[p.ID] = domain.CatalogProduct{
			ID:       p.ID,
			Title:    p.Title,
			Category: p.Category,
			Brand:    p.Brand,
			Rating:   p.Rating,
		}
	}

	logger.Info().Int("products", len(catalog)).Msg("product catalog fetched")
	return catalog
}
