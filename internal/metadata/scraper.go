// Package metadata turns a raw URL into a displayable page record by
// fetching the page once and extracting title, description and primary
// image from its HTML.
//
// Failures are sentinel errors, not panics: a bad or unreachable link
// is an expected, frequent outcome and callers branch on it with
// errors.Is rather than exception-style control flow.
package metadata

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net"
	"net/http"
	"strings"

	"github.com/hangarapp/hangar/internal/config"
)

var (
	// ErrInvalidLink covers network errors, non-HTML responses, parse
	// failures and pages missing a resolvable title.
	ErrInvalidLink = errors.New("invalid link")

	// ErrFetchTimeout is reported when the bounded fetch window is
	// exceeded, so slow targets are distinguishable from bad links.
	ErrFetchTimeout = errors.New("fetch timed out")
)

// PageMetadata is the normalized result of scraping one page.
type PageMetadata struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Image       string `json:"image,omitempty"`

	// CanonicalURL is the final URL after redirects. Relative asset
	// URLs in the page are resolved against it, not the input URL.
	CanonicalURL string `json:"canonical_url"`
}

// Scraper fetches pages and extracts their metadata. One outbound
// request per call, no caching, no retry.
type Scraper struct {
	httpClient   *http.Client
	maxBodyBytes int64
	userAgent    string
}

// NewScraper creates a scraper with a bounded fetch timeout and a cap
// on how much of the response body is read.
func NewScraper(cfg config.Scraper) *Scraper {
	maxBody := cfg.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = config.DefaultScraperMaxBodyBytes
	}
	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = config.DefaultScraperUserAgent
	}
	return &Scraper{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		maxBodyBytes: maxBody,
		userAgent:    userAgent,
	}
}

// Fetch performs a single GET of link and returns the extracted
// metadata. Any fault degrades to ErrInvalidLink (or ErrFetchTimeout
// when the deadline was the cause); no partial result is returned.
func (s *Scraper) Fetch(ctx context.Context, link string) (*PageMetadata, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, link, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidLink, err)
	}
	req.Header.Set("User-Agent", s.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		if isTimeout(err) {
			return nil, fmt.Errorf("%w: %v", ErrFetchTimeout, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidLink, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, fmt.Errorf("%w: status %d", ErrInvalidLink, resp.StatusCode)
	}
	if !isHTMLResponse(resp.Header.Get("Content-Type")) {
		return nil, fmt.Errorf("%w: not an HTML page", ErrInvalidLink)
	}

	// The request URL at this point reflects any redirects followed.
	finalURL := resp.Request.URL

	page, err := extractMetadata(io.LimitReader(resp.Body, s.maxBodyBytes), finalURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidLink, err)
	}
	if page.Title == "" {
		return nil, fmt.Errorf("%w: page has no title", ErrInvalidLink)
	}

	page.CanonicalURL = finalURL.String()
	return page, nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func isHTMLResponse(contentType string) bool {
	if contentType == "" {
		// Some servers omit the header; let the parser decide.
		return true
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediaType == "text/html" ||
		mediaType == "application/xhtml+xml" ||
		strings.HasSuffix(mediaType, "+html")
}
