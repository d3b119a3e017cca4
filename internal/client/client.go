package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/utafrali/AngelsParadise/internal/domain"
	"github.com/utafrali/AngelsParadise/pkg/httpclient"
)

const remoteName = "storefront"

// ReviewDraft is the body of a review submission.
type ReviewDraft struct {
	ProductID string `json:"productId"`
	UserID    string `json:"userId,omitempty"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
}

// ProductDraft is the body of a product creation.
type ProductDraft struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Price       float64  `json:"price"`
	Image       string   `json:"image,omitempty"`
	Category    string   `json:"category,omitempty"`
	Sizes       []string `json:"sizes,omitempty"`
	Colors      []string `json:"colors,omitempty"`
	InStock     *bool    `json:"inStock,omitempty"`
	Featured    *bool    `json:"featured,omitempty"`
}

// CatalogParams selects one catalog page. Zero values are left to the server
// defaults.
type CatalogParams struct {
	Category string
	Sizes    []string
	Price    *domain.PriceRange
	Search   string
	Page     int
	PageSize int
}

// CatalogPage is one catalog page as returned by the storefront API.
type CatalogPage struct {
	domain.CatalogPage
	PriceBounds *domain.PriceRange `json:"priceBounds"`
}

// Client is a typed client for the storefront REST API.
type Client struct {
	doer    httpclient.Doer
	baseURL string
}

// New creates a client for the API at baseURL. doer is normally a
// circuit-breaker client wrapping httpclient.New.
func New(doer httpclient.Doer, baseURL string) *Client {
	return &Client{doer: doer, baseURL: strings.TrimRight(baseURL, "/")}
}

// RatingsSummary fetches the aggregate rating of a product.
func (c *Client) RatingsSummary(ctx context.Context, productID string) (domain.RatingsSummary, error) {
	var summary domain.RatingsSummary
	err := c.do(ctx, http.MethodGet, "/api/v1/reviews/summary/"+url.PathEscape(productID), nil, &summary)
	return summary, err
}

// Reviews fetches every review of a product, newest first.
func (c *Client) Reviews(ctx context.Context, productID string) ([]domain.Review, error) {
	var reviews []domain.Review
	err := c.do(ctx, http.MethodGet, "/api/v1/reviews/"+url.PathEscape(productID)+"?sort=newest", nil, &reviews)
	if reviews == nil {
		reviews = []domain.Review{}
	}
	return reviews, err
}

// SubmitReview posts a review and returns it as stored.
func (c *Client) SubmitReview(ctx context.Context, draft ReviewDraft) (*domain.Review, error) {
	var review domain.Review
	if err := c.do(ctx, http.MethodPost, "/api/v1/reviews", draft, &review); err != nil {
		return nil, err
	}
	return &review, nil
}

// CreateProduct adds a product to the catalog.
func (c *Client) CreateProduct(ctx context.Context, draft ProductDraft) (*domain.Product, error) {
	var product domain.Product
	if err := c.do(ctx, http.MethodPost, "/api/v1/products", draft, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// Catalog fetches one filtered catalog page.
func (c *Client) Catalog(ctx context.Context, params CatalogParams) (*CatalogPage, error) {
	q := url.Values{}
	if params.Category != "" {
		q.Set("category", params.Category)
	}
	for _, s := range params.Sizes {
		q.Add("size", s)
	}
	if params.Price != nil {
		q.Set("min_price", strconv.FormatFloat(params.Price.Min, 'f', -1, 64))
		q.Set("max_price", strconv.FormatFloat(params.Price.Max, 'f', -1, 64))
	}
	if params.Search != "" {
		q.Set("q", params.Search)
	}
	if params.Page > 0 {
		q.Set("page", strconv.Itoa(params.Page))
	}
	if params.PageSize > 0 {
		q.Set("page_size", strconv.Itoa(params.PageSize))
	}

	path := "/api/v1/catalog"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var page CatalogPage
	if err := c.do(ctx, http.MethodGet, path, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// do sends a JSON request and decodes the data envelope into out.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader = http.NoBody
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal %s %s body: %w", method, path, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("create %s %s request: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.doer.Do(ctx, req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return httpclient.ParseResponseError(resp, remoteName)
	}
	defer func() { _ = resp.Body.Close() }()

	envelope := struct {
		Data any `json:"data"`
	}{Data: out}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}
