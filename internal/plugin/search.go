package plugin

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// SearchPlugin answers questions with a web lookup. It fetches the HTML
// results page and extracts titles and snippets with CSS selectors.
type SearchPlugin struct {
	client  *http.Client
	baseURL string
	limit   int
}

// SearchConfig configures the search plugin.
type SearchConfig struct {
	BaseURL string
	Timeout time.Duration
	Limit   int
}

// NewSearchPlugin creates the search plugin.
func NewSearchPlugin(cfg *SearchConfig) *SearchPlugin {
	if cfg == nil {
		cfg = &SearchConfig{}
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://html.duckduckgo.com/html/"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.Limit <= 0 {
		cfg.Limit = 3
	}
	return &SearchPlugin{
		client:  &http.Client{Timeout: cfg.Timeout},
		baseURL: cfg.BaseURL,
		limit:   cfg.Limit,
	}
}

func (p *SearchPlugin) Key() string         { return "search" }
func (p *SearchPlugin) DisplayName() string { return "Search" }
func (p *SearchPlugin) Icon() string        { return "🔍" }

func (p *SearchPlugin) Keywords() []string {
	return []string{"search", "look up", "google", "weather", "what is", "who is", "find out"}
}

func (p *SearchPlugin) Execute(ctx context.Context, params *Params) (*Result, error) {
	if params.Action != "search" {
		return &Result{Success: false, Message: fmt.Sprintf("Search can't do %q.", params.Action)}, nil
	}
	query := params.Str("query")
	if query == "" {
		return &Result{Success: false, Message: "What should I search for?"}, nil
	}
	// Saved location grounds vague local queries ("weather", "near me").
	if loc := params.Str("location"); loc != "" && !strings.Contains(strings.ToLower(query), strings.ToLower(loc)) {
		if strings.Contains(strings.ToLower(query), "weather") || strings.Contains(strings.ToLower(query), "near me") {
			query = query + " " + loc
		}
	}

	results, err := p.search(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", query, err)
	}
	if len(results) == 0 {
		return &Result{Success: false, Message: fmt.Sprintf("I couldn't find anything for %q.", query)}, nil
	}
	return &Result{
		Success: true,
		Message: fmt.Sprintf("Here's what I found for %q:", query),
		Data:    results,
	}, nil
}

func (p *SearchPlugin) search(ctx context.Context, query string) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		p.baseURL+"?q="+url.QueryEscape(query), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "smartassist/1.0")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search returned status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse results page: %w", err)
	}

	var results []string
	doc.Find(".result").EachWithBreak(func(i int, s *goquery.Selection) bool {
		title := strings.TrimSpace(s.Find(".result__a").First().Text())
		snippet := strings.TrimSpace(s.Find(".result__snippet").First().Text())
		if title == "" {
			return true
		}
		if snippet != "" {
			results = append(results, title+" — "+snippet)
		} else {
			results = append(results, title)
		}
		return len(results) < p.limit
	})
	return results, nil
}
