// Package metadata fetches Open Graph metadata from article pages, used to
// backfill images and descriptions the upstream API omits.
package metadata

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/net/html"
)

// PageMetadata holds the fields extracted from an article page.
type PageMetadata struct {
	Title       string
	Description string
	ImageURL    string
}

// Extractor fetches and parses article pages.
type Extractor struct {
	httpClient *http.Client
}

// NewExtractor creates a metadata extractor.
func NewExtractor() *Extractor {
	return &Extractor{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 10 {
					return fmt.Errorf("stopped after 10 redirects")
				}
				return nil
			},
		},
	}
}

// Extract fetches a page and pulls og: tags out of its head.
func (e *Extractor) Extract(ctx context.Context, pageURL string) (*PageMetadata, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "Veritas/1.0")
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)
	}

	// Heads are small; a megabyte is plenty and bounds memory on hostile
	// pages.
	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("failed to read page: %w", err)
	}

	doc, err := html.Parse(strings.NewReader(string(body)))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	meta := &PageMetadata{}
	walkMetaTags(doc, meta)
	return meta, nil
}

func walkMetaTags(n *html.Node, meta *PageMetadata) {
	if n.Type == html.ElementNode && n.Data == "meta" {
		property := attributeValue(n, "property")
		if property == "" {
			property = attributeValue(n, "name")
		}
		content := attributeValue(n, "content")

		switch property {
		case "og:title":
			if meta.Title == "" {
				meta.Title = content
			}
		case "og:description", "description":
			if meta.Description == "" {
				meta.Description = content
			}
		case "og:image":
			if meta.ImageURL == "" {
				meta.ImageURL = content
			}
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walkMetaTags(c, meta)
	}
}

func attributeValue(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}
