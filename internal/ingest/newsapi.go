package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"time"
)

const defaultBaseURL = "https://newsapi.org/v2/everything"

// RawArticle is one article as returned by NewsAPI.
type RawArticle struct {
	Source struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"source"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Content     string     `json:"content"`
	URL         string     `json:"url"`
	URLToImage  string     `json:"urlToImage"`
	PublishedAt *time.Time `json:"publishedAt"`
}

type everythingResponse struct {
	Status   string       `json:"status"`
	Message  string       `json:"message"`
	Articles []RawArticle `json:"articles"`
}

// Client is a minimal NewsAPI client.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

// NewClient creates a NewsAPI client using the NEWSAPI_KEY environment
// variable.
func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		baseURL:    defaultBaseURL,
		apiKey:     os.Getenv("NEWSAPI_KEY"),
	}
}

// FetchEverything queries NewsAPI for recent English articles matching the
// query.
func (c *Client) FetchEverything(ctx context.Context, query string, days, pageSize, page int) ([]RawArticle, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("NEWSAPI_KEY not configured")
	}

	to := time.Now().UTC()
	from := to.AddDate(0, 0, -days)

	params := url.Values{}
	params.Set("q", query)
	params.Set("from", from.Format("2006-01-02"))
	params.Set("to", to.Format("2006-01-02"))
	params.Set("sortBy", "publishedAt")
	params.Set("language", "en")
	params.Set("pageSize", strconv.Itoa(pageSize))
	params.Set("page", strconv.Itoa(page))
	params.Set("apiKey", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "Veritas/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch articles: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("NewsAPI HTTP %d: %.200s", resp.StatusCode, string(body))
	}

	var parsed everythingResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if parsed.Status != "ok" {
		return nil, fmt.Errorf("NewsAPI error: %s", parsed.Message)
	}

	return parsed.Articles, nil
}
