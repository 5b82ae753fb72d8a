// Package scorecard reads scored domains from the SecurityScorecard
// portfolio API.
//
// Fetching is all-or-nothing: any page failure aborts the whole read, so a
// partially fetched portfolio never reaches the matcher.
package scorecard

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/mgeis2/ssc-to-monday/internal/domain/model"
	"github.com/mgeis2/ssc-to-monday/internal/domain/normalize"
	"github.com/mgeis2/ssc-to-monday/pkg/logger"
)

// Default client configuration constants.
const (
	defaultBaseURL    = "https://api.securityscorecard.io"
	defaultPageSize   = 100
	defaultMaxDomains = 500
	defaultTimeout    = 30 * time.Second
)

// Client pages through one portfolio's scored companies.
type Client struct {
	apiKey      string
	portfolioID string

	baseURL    string
	httpClient *http.Client
	pageSize   int
	maxDomains int
	log        logger.Logger
}

// New constructs a Client for the given portfolio.
func New(apiKey, portfolioID string, opts ...Option) *Client {
	c := &Client{
		apiKey:      apiKey,
		portfolioID: portfolioID,
		baseURL:     defaultBaseURL,
		httpClient:  &http.Client{Timeout: defaultTimeout},
		pageSize:    defaultPageSize,
		maxDomains:  defaultMaxDomains,
		log:         logger.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type portfolioEntry struct {
	Domain string   `json:"domain"`
	Score  *float64 `json:"score"`
	Grade  string   `json:"grade"`
}

type portfolioPage struct {
	Entries []portfolioEntry `json:"entries"`
	// Only the presence of links.next matters; its shape does not.
	Links struct {
		Next json.RawMessage `json:"next"`
	} `json:"links"`
}

func (p *portfolioPage) hasNext() bool {
	return len(p.Links.Next) > 0 && string(p.Links.Next) != "null"
}

// Portfolio fetches every scored domain in the portfolio, up to the
// configured ceiling. Entries missing a score or grade are still returned
// with those fields absent; the matcher owns the skip decision.
func (c *Client) Portfolio(ctx context.Context) ([]model.ScoredDomain, error) {
	var out []model.ScoredDomain

	for offset := 0; ; offset += c.pageSize {
		page, err := c.fetchPage(ctx, offset)
		if err != nil {
			return nil, err
		}
		if len(page.Entries) == 0 {
			break
		}

		for _, e := range page.Entries {
			out = append(out, model.ScoredDomain{
				Domain: normalize.Key(e.Domain),
				Score:  e.Score,
				Grade:  e.Grade,
			})
			if len(out) >= c.maxDomains {
				c.log.Warn(ctx, "portfolio ceiling reached; truncating",
					logger.Int("max_domains", c.maxDomains))
				return out, nil
			}
		}

		c.log.Debug(ctx, "fetched portfolio page",
			logger.Int("offset", offset),
			logger.Int("entries", len(page.Entries)),
			logger.Int("total", len(out)))

		if !page.hasNext() {
			break
		}
	}

	return out, nil
}

func (c *Client) fetchPage(ctx context.Context, offset int) (*portfolioPage, error) {
	u := fmt.Sprintf("%s/portfolios/%s/companies", c.baseURL, url.PathEscape(c.portfolioID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, errPage(fmt.Errorf("build request: %w", err))
	}

	q := req.URL.Query()
	q.Set("limit", strconv.Itoa(c.pageSize))
	q.Set("offset", strconv.Itoa(offset))
	req.URL.RawQuery = q.Encode()
	req.Header.Set("Authorization", "Token "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errPage(err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, errAuth(resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		return nil, errPage(fmt.Errorf("unexpected status %d at offset %d", resp.StatusCode, offset))
	}

	var page portfolioPage
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, errPage(fmt.Errorf("decode page at offset %d: %w", offset, err))
	}
	return &page, nil
}
