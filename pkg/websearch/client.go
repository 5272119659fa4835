package websearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"

	"github.com/Achintharya/eightfold-bot/pkg/logger"
)

const (
	ddgEndpoint    = "https://html.duckduckgo.com/html/"
	serperEndpoint = "https://google.serper.dev/search"
	userAgent      = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

	maxPageBody   = 2 * 1024 * 1024
	summaryLength = 500
	contentLength = 3000
)

// Client implements Searcher against DuckDuckGo with a Serper API
// fallback, extracting page content via readability.
type Client struct {
	httpClient   *http.Client
	serperAPIKey string
	maxResults   int
	converter    *md.Converter
}

// Option configures a Client
type Option func(*Client)

// WithSerperAPIKey enables the Serper fallback
func WithSerperAPIKey(key string) Option {
	return func(c *Client) { c.serperAPIKey = key }
}

// WithMaxResults caps the number of URLs fetched per query
func WithMaxResults(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.maxResults = n
		}
	}
}

// WithTimeout sets the per-request HTTP timeout
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// NewClient creates a web search client
func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		maxResults: 5,
		converter:  md.NewConverter("", true, nil),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SearchAndExtract implements Searcher
func (c *Client) SearchAndExtract(ctx context.Context, query string) []SourceRecord {
	if strings.TrimSpace(query) == "" {
		return nil
	}

	urls := c.search(ctx, query)
	if len(urls) == 0 {
		logger.Warn("no search results for query %q", query)
		return nil
	}

	records := make([]SourceRecord, 0, len(urls))
	for _, u := range urls {
		records = append(records, c.extract(ctx, u, query))
	}
	return records
}

// search returns result URLs from DuckDuckGo, falling back to Serper
func (c *Client) search(ctx context.Context, query string) []string {
	urls, err := c.searchDuckDuckGo(ctx, query)
	if err != nil {
		logger.Warn("DuckDuckGo search failed: %v", err)
	}
	if len(urls) > 0 {
		return urls
	}

	if c.serperAPIKey != "" {
		urls, err = c.searchSerper(ctx, query)
		if err != nil {
			logger.Warn("Serper search failed: %v", err)
		}
	}
	return urls
}

func (c *Client) searchDuckDuckGo(ctx context.Context, query string) ([]string, error) {
	form := url.Values{"q": {query}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, ddgEndpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(io.LimitReader(resp.Body, maxPageBody))
	if err != nil {
		return nil, fmt.Errorf("failed to parse results page: %w", err)
	}

	return parseResultLinks(doc, c.maxResults), nil
}

// parseResultLinks pulls organic result URLs out of a DuckDuckGo HTML
// results document, decoding the uddg redirect parameter.
func parseResultLinks(doc *goquery.Document, limit int) []string {
	var urls []string
	doc.Find("a.result__a").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		href, ok := sel.Attr("href")
		if !ok {
			return true
		}
		if resolved := decodeResultHref(href); resolved != "" && allowedURL(resolved) {
			urls = append(urls, resolved)
		}
		return len(urls) < limit
	})
	return urls
}

func decodeResultHref(href string) string {
	if strings.HasPrefix(href, "//") {
		href = "https:" + href
	}
	parsed, err := url.Parse(href)
	if err != nil {
		return ""
	}
	if uddg := parsed.Query().Get("uddg"); uddg != "" {
		return uddg
	}
	if parsed.Scheme == "http" || parsed.Scheme == "https" {
		return href
	}
	return ""
}

func (c *Client) searchSerper(ctx context.Context, query string) ([]string, error) {
	payload, err := json.Marshal(map[string]any{"q": query, "num": c.maxResults})
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, serperEndpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-KEY", c.serperAPIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var result struct {
		Organic []struct {
			Link string `json:"link"`
		} `json:"organic"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	var urls []string
	for _, item := range result.Organic {
		if item.Link != "" && allowedURL(item.Link) {
			urls = append(urls, item.Link)
		}
		if len(urls) >= c.maxResults {
			break
		}
	}
	return urls, nil
}

// allowedURL filters out schemes and hosts we will not fetch
func allowedURL(raw string) bool {
	parsed, err := url.Parse(raw)
	if err != nil {
		return false
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return false
	}
	host := strings.ToLower(parsed.Hostname())
	if host == "" || host == "localhost" || host == "127.0.0.1" || host == "::1" {
		return false
	}
	if strings.HasSuffix(host, ".local") || strings.HasSuffix(host, ".internal") {
		return false
	}
	// Video hosts carry no extractable text
	if strings.Contains(host, "youtube.com") || strings.Contains(host, "youtu.be") {
		return false
	}
	return true
}

// extract fetches one URL and produces a source record. Failures are
// recorded on the record itself, not returned.
func (c *Client) extract(ctx context.Context, pageURL, query string) SourceRecord {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return SourceRecord{URL: pageURL, Summary: fmt.Sprintf("Error extracting from %s: %v", pageURL, err), Err: true}
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return SourceRecord{URL: pageURL, Summary: fmt.Sprintf("Error extracting from %s: %v", pageURL, err), Err: true}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return SourceRecord{URL: pageURL, Summary: fmt.Sprintf("Failed to fetch %s: status %d", pageURL, resp.StatusCode), Err: true}
	}

	parsed, _ := url.Parse(pageURL)
	article, err := readability.FromReader(io.LimitReader(resp.Body, maxPageBody), parsed)
	if err != nil {
		return SourceRecord{URL: pageURL, Summary: fmt.Sprintf("Error extracting from %s: %v", pageURL, err), Err: true}
	}

	text := articleText(c.converter, article)
	if text == "" {
		return SourceRecord{URL: pageURL, Summary: fmt.Sprintf("No readable content at %s", pageURL), Err: true}
	}

	return SourceRecord{
		URL:     pageURL,
		Summary: fmt.Sprintf("Content from %s about %s: %s", pageURL, query, truncate(text, summaryLength)),
	}
}

// articleText renders the extracted article as markdown, falling back
// to the plain text content when conversion fails.
func articleText(converter *md.Converter, article readability.Article) string {
	if article.Content != "" {
		if markdown, err := converter.ConvertString(article.Content); err == nil {
			return truncate(collapseWhitespace(markdown), contentLength)
		}
	}
	return truncate(collapseWhitespace(article.TextContent), contentLength)
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// truncate caps s at limit bytes without splitting a multi-byte rune.
func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	for limit > 0 && !utf8.RuneStart(s[limit]) {
		limit--
	}
	return s[:limit] + "..."
}
