// Package upstream talks to the company's news API.
package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/ascww/newsportal/cmd/newsportald/internal/config"
	"github.com/ascww/newsportal/cmd/newsportald/internal/metrics"
	"github.com/ascww/newsportal/models"
)

var ErrNotFound = errors.New("news item not found")

// StatusError is returned when the upstream answers with a non-2xx status.
type StatusError struct {
	Code int
	Body []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("upstream returned %d status code", e.Code)
}

func (e *StatusError) StatusCode() int {
	return e.Code
}

type Client struct {
	baseURL    string
	userAgent  string
	timeout    time.Duration
	httpClient *http.Client
}

func New(conf *config.Config) *Client {
	return &Client{
		baseURL:    strings.TrimSuffix(conf.UpstreamURL, "/"),
		userAgent:  conf.UserAgent,
		timeout:    conf.UpstreamTimeout,
		httpClient: new(http.Client),
	}
}

// Raw performs a GET against path, relative to the API base URL, and returns
// the undecoded body of a successful response.
func (c *Client) Raw(ctx context.Context, path string, query url.Values) ([]byte, error) {
	return c.get(ctx, "raw", path, query)
}

// ListNews returns one page of the news listing in upstream order.
func (c *Client) ListNews(ctx context.Context, page int) ([]models.NewsItem, error) {
	body, err := c.get(ctx, "list", "news", url.Values{"page": {strconv.Itoa(page)}})
	if err != nil {
		return nil, fmt.Errorf("fetch news page %d: %w", page, err)
	}

	var items []models.NewsItem
	if err := json.Unmarshal(body, &items); err != nil {
		return nil, fmt.Errorf("decode news page %d: %w", page, err)
	}
	return items, nil
}

// GetNews fetches a single item by id or slug.
func (c *Client) GetNews(ctx context.Context, idOrSlug string) (*models.NewsItem, error) {
	body, err := c.get(ctx, "detail", "news/"+url.PathEscape(idOrSlug), nil)
	if err != nil {
		return nil, fmt.Errorf("fetch news item %q: %w", idOrSlug, err)
	}

	// the detail endpoint answers with an array
	var items []models.NewsItem
	if err := json.Unmarshal(body, &items); err != nil {
		return nil, fmt.Errorf("decode news item %q: %w", idOrSlug, err)
	}
	if len(items) == 0 {
		return nil, ErrNotFound
	}
	return &items[0], nil
}

func (c *Client) get(ctx context.Context, operation, path string, query url.Values) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	target := c.baseURL + "/" + strings.TrimPrefix(path, "/")
	if len(query) != 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("make http request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.ObserveUpstream(operation, "error", time.Since(start))
		return nil, fmt.Errorf("do http request: %w", err)
	}

	body, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	metrics.ObserveUpstream(operation, strconv.Itoa(resp.StatusCode), time.Since(start))
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode/100 != 2 {
		return nil, &StatusError{Code: resp.StatusCode, Body: body}
	}

	return body, nil
}
