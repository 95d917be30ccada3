// Package demozoo is a read-only client for the Demozoo catalog API.
package demozoo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"
)

const defaultBaseURL = "https://demozoo.org/api/v1"

// ProductionTypeDemo is the catalog's production type ID for demos.
const ProductionTypeDemo = 1

// maxPages bounds pagination to prevent infinite loops on a
// misbehaving server.
const maxPages = 100

// Sentinel errors for Demozoo API responses.
var (
	ErrRateLimited       = errors.New("rate limited: too many requests")
	ErrMalformedResponse = errors.New("malformed response from demozoo")
)

// StatusError reports a non-success HTTP status from the catalog.
type StatusError struct {
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("demozoo API error: %s", e.Status)
}

// Client is a Demozoo API v1 client. The public catalog needs no
// authentication.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	log        *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL sets a custom base URL (for testing or mirrors).
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimSuffix(url, "/")
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithLogger sets a logger for debug output.
func WithLogger(log *slog.Logger) Option {
	return func(c *Client) {
		c.log = log.With("component", "demozoo")
	}
}

// New creates a new Demozoo API client.
func New(opts ...Option) *Client {
	c := &Client{
		baseURL:   defaultBaseURL,
		userAgent: "DemoscenePackBuilder",
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// get performs a GET against an absolute URL and decodes the JSON body
// into v.
func (c *Client) get(ctx context.Context, rawURL string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if err := checkResponse(resp); err != nil {
		return err
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return nil
}

// checkResponse maps non-success HTTP statuses to errors.
func checkResponse(resp *http.Response) error {
	switch resp.StatusCode {
	case http.StatusOK:
		return nil
	case http.StatusTooManyRequests:
		return ErrRateLimited
	default:
		return &StatusError{Code: resp.StatusCode, Status: resp.Status}
	}
}

// Platforms fetches the full platform list, sorted by ID.
func (c *Client) Platforms(ctx context.Context) ([]Platform, error) {
	start := time.Now()

	var all []Platform
	next := c.baseURL + "/platforms/"
	pages := 0
	for next != "" {
		var page platformsResponse
		if err := c.get(ctx, next, &page); err != nil {
			return nil, err
		}
		all = append(all, page.Results...)
		next = page.Next
		pages++
		if pages >= maxPages {
			if c.log != nil {
				c.log.Warn("hit pagination limit", "endpoint", "platforms", "pages", pages)
			}
			break
		}
	}

	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })

	if c.log != nil {
		c.log.Debug("fetched platforms", "count", len(all), "pages", pages, "duration_ms", time.Since(start).Milliseconds())
	}
	return all, nil
}

// ProductionQuery narrows a production search server-side. Narrowing is
// an optimization only; callers still filter the results themselves.
type ProductionQuery struct {
	PlatformID     int        // 0 = all platforms
	ProductionType int        // 0 = ProductionTypeDemo
	ReleasedSince  *time.Time // productions released on or after this date
	MinPlacing     *int       // best accepted competition placing
}

// productionFields is the field projection requested from the catalog;
// trimming the response keeps pages small.
var productionFields = []string{
	"id",
	"title",
	"demozoo_url",
	"release_date",
	"author_nicks",
	"platforms",
	"download_links",
	"competition_placing",
}

func (q ProductionQuery) encode() string {
	params := url.Values{}
	if q.PlatformID != 0 {
		params.Set("platform", strconv.Itoa(q.PlatformID))
	}
	pt := q.ProductionType
	if pt == 0 {
		pt = ProductionTypeDemo
	}
	params.Set("production_type", strconv.Itoa(pt))
	if q.ReleasedSince != nil {
		params.Set("released_since", q.ReleasedSince.Format("2006-01-02"))
	}
	if q.MinPlacing != nil {
		params.Set("competition_placing_min", strconv.Itoa(*q.MinPlacing))
	}
	params.Set("fields", strings.Join(productionFields, ","))
	return params.Encode()
}

// ProductionPages iterates a paginated production search one page at a
// time. The sequence is finite and not restartable; call
// SearchProductions again to re-fetch from the first page.
type ProductionPages struct {
	c     *Client
	next  string
	count int
	pages int
	done  bool
}

// SearchProductions starts a paginated search. No request is made until
// the first Next call.
func (c *Client) SearchProductions(q ProductionQuery) *ProductionPages {
	return &ProductionPages{
		c:    c,
		next: c.baseURL + "/productions/?" + q.encode(),
	}
}

// Next fetches the next page of results. A nil slice with a nil error
// means the sequence is exhausted.
func (p *ProductionPages) Next(ctx context.Context) ([]Production, error) {
	if p.done {
		return nil, nil
	}

	var page productionsResponse
	if err := p.c.get(ctx, p.next, &page); err != nil {
		return nil, err
	}
	p.count = page.Count
	p.next = page.Next
	p.pages++

	if p.next == "" {
		p.done = true
	} else if p.pages >= maxPages {
		if p.c.log != nil {
			p.c.log.Warn("hit pagination limit", "endpoint", "productions", "pages", p.pages)
		}
		p.done = true
	}
	return page.Results, nil
}

// Count returns the catalog's total match count, known after the first
// Next call.
func (p *ProductionPages) Count() int {
	return p.count
}

// AllProductions runs a search to completion and returns every
// matching production.
func (c *Client) AllProductions(ctx context.Context, q ProductionQuery) ([]Production, error) {
	start := time.Now()

	pages := c.SearchProductions(q)
	var all []Production
	for {
		batch, err := pages.Next(ctx)
		if err != nil {
			return nil, err
		}
		if batch == nil {
			break
		}
		all = append(all, batch...)
	}

	if c.log != nil {
		c.log.Debug("fetched productions", "count", len(all), "duration_ms", time.Since(start).Milliseconds())
	}
	return all, nil
}
