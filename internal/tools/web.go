package tools

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/go-shiori/go-readability"

	"github.com/rekabot/rekabot/internal/schema"
)

const (
	webUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 14_7_2) AppleWebKit/537.36"
	maxRedirects = 5

	// scrapeMaxChars caps extracted page text before it re-enters the
	// conversation; unbounded payloads would blow up the next model call.
	scrapeMaxChars = 8000
)

// validateURL checks that rawURL is http(s) with a valid domain.
func validateURL(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("only http/https allowed, got %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("missing domain in URL")
	}
	return nil
}

// ---------------------------------------------------------------------------
// WebSearchTool
// ---------------------------------------------------------------------------

// WebSearchTool searches the web using the Brave Search API.
type WebSearchTool struct {
	apiKey     string
	maxResults int
	httpClient *http.Client
}

// NewWebSearchTool creates a WebSearchTool.
// apiKey is BRAVE_API_KEY; maxResults defaults to 5.
func NewWebSearchTool(apiKey string, maxResults int) *WebSearchTool {
	if maxResults <= 0 {
		maxResults = 5
	}
	return &WebSearchTool{
		apiKey:     apiKey,
		maxResults: maxResults,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (t *WebSearchTool) Name() string { return string(ToolWebSearch) }
func (t *WebSearchTool) Description() string {
	return "Search the web. Returns titles, URLs, and snippets."
}
func (t *WebSearchTool) Parameters() schema.ParameterSchema {
	return schema.ParameterSchema{
		Properties: map[string]schema.Property{
			"query": {Type: "string", Description: "Search query"},
			"count": {Type: "number", Description: "Results (1-10)"},
		},
		Required: []string{"query"},
	}
}

func (t *WebSearchTool) Execute(ctx context.Context, args map[string]any) schema.Result {
	if t.apiKey == "" {
		return schema.Errorf("web search is not configured (missing Brave API key)")
	}
	query := stringArg(args, "query")
	if query == "" {
		return schema.Errorf("query is empty")
	}

	n := t.maxResults
	if c, ok := args["count"].(float64); ok {
		n = int(c)
	}
	if n < 1 {
		n = 1
	}
	if n > 10 {
		n = 10
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		"https://api.search.brave.com/res/v1/web/search", nil)
	if err != nil {
		return schema.Errorf("build request: %v", err)
	}
	q := req.URL.Query()
	q.Set("q", query)
	q.Set("count", fmt.Sprintf("%d", n))
	req.URL.RawQuery = q.Encode()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Subscription-Token", t.apiKey)

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return schema.Errorf("search request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return schema.Errorf("search returned HTTP %d", resp.StatusCode)
	}

	var data struct {
		Web struct {
			Results []struct {
				Title       string `json:"title"`
				URL         string `json:"url"`
				Description string `json:"description"`
			} `json:"results"`
		} `json:"web"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return schema.Errorf("parse search response: %v", err)
	}

	results := make([]map[string]any, 0, n)
	for i, item := range data.Web.Results {
		if i >= n {
			break
		}
		results = append(results, map[string]any{
			"title":       item.Title,
			"url":         item.URL,
			"description": item.Description,
		})
	}

	return schema.Result{
		"success":   true,
		"query":     query,
		"results":   results,
		"formatted": fmt.Sprintf("%d results for: %s", len(results), query),
	}
}

// ---------------------------------------------------------------------------
// ScrapeTool
// ---------------------------------------------------------------------------

// ScrapeTool fetches a URL and extracts its readable text content.
type ScrapeTool struct {
	maxChars   int
	httpClient *http.Client
}

// NewScrapeTool creates a ScrapeTool. maxChars defaults to scrapeMaxChars.
func NewScrapeTool(maxChars int) *ScrapeTool {
	if maxChars <= 0 {
		maxChars = scrapeMaxChars
	}
	client := &http.Client{
		Timeout: 30 * time.Second,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= maxRedirects {
				return fmt.Errorf("stopped after %d redirects", maxRedirects)
			}
			return nil
		},
	}
	return &ScrapeTool{maxChars: maxChars, httpClient: client}
}

func (t *ScrapeTool) Name() string { return string(ToolScrape) }
func (t *ScrapeTool) Description() string {
	return "Fetch a web page and extract its readable text content"
}
func (t *ScrapeTool) Parameters() schema.ParameterSchema {
	return schema.ParameterSchema{
		Properties: map[string]schema.Property{
			"url": {Type: "string", Description: "URL to fetch"},
		},
		Required: []string{"url"},
	}
}

func (t *ScrapeTool) Execute(ctx context.Context, args map[string]any) schema.Result {
	rawURL := stringArg(args, "url")
	if err := validateURL(rawURL); err != nil {
		return schema.Errorf("URL validation failed: %v", err).With("url", rawURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return schema.Errorf("build request: %v", err).With("url", rawURL)
	}
	req.Header.Set("User-Agent", webUserAgent)

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return schema.Errorf("fetch failed: %v", err).With("url", rawURL)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return schema.Errorf("fetch returned HTTP %d", resp.StatusCode).With("url", rawURL)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 2<<20))
	if err != nil {
		return schema.Errorf("read body: %v", err).With("url", rawURL)
	}

	var text, title string
	switch {
	case strings.Contains(resp.Header.Get("Content-Type"), "text/html") || isHTMLPrefix(body):
		parsedURL, _ := url.Parse(rawURL)
		article, err := readability.FromReader(bytes.NewReader(body), parsedURL)
		if err == nil {
			title = article.Title
			text = stripHTMLTags(article.Content)
		} else {
			// Fallback: just strip tags.
			text = stripHTMLTags(string(body))
		}
	default:
		text = strings.TrimSpace(string(body))
	}

	truncated := len(text) > t.maxChars
	if truncated {
		text = text[:t.maxChars]
	}

	return schema.Result{
		"success":   true,
		"url":       rawURL,
		"title":     title,
		"status":    resp.StatusCode,
		"truncated": truncated,
		"length":    len(text),
		"text":      text,
	}
}

// isHTMLPrefix returns true if the body starts with an HTML declaration.
func isHTMLPrefix(b []byte) bool {
	n := len(b)
	if n > 256 {
		n = 256
	}
	prefix := strings.ToLower(strings.TrimSpace(string(b[:n])))
	return strings.HasPrefix(prefix, "<!doctype") || strings.HasPrefix(prefix, "<html")
}

// ---------------------------------------------------------------------------
// HTML → text helpers
// ---------------------------------------------------------------------------

var (
	reScript   = regexp.MustCompile(`(?is)<script[\s\S]*?</script>`)
	reStyle    = regexp.MustCompile(`(?is)<style[\s\S]*?</style>`)
	reTags     = regexp.MustCompile(`<[^>]+>`)
	reSpaces   = regexp.MustCompile(`[ \t]+`)
	reNewlines = regexp.MustCompile(`\n{3,}`)
)

// stripHTMLTags removes all HTML tags and normalizes whitespace.
func stripHTMLTags(text string) string {
	text = reScript.ReplaceAllString(text, "")
	text = reStyle.ReplaceAllString(text, "")
	text = reTags.ReplaceAllString(text, "")
	text = reSpaces.ReplaceAllString(text, " ")
	text = reNewlines.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}
