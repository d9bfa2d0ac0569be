package newsapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/iWorld-y/news_analyzer/pkg/source"
)

const baseURL = "https://newsapi.org/v2/everything"

// 瞬时错误（429/5xx）重试预算
const maxRetries = 3

// Client NewsAPI 客户端
type Client struct {
	apiKey string
	client *http.Client
}

// NewClient 创建一个新的 NewsAPI 客户端
func NewClient(apiKey string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		apiKey: apiKey,
		client: &http.Client{Timeout: timeout},
	}
}

// Ensure Client implements source.Provider
var _ source.Provider = (*Client)(nil)

// searchResponse NewsAPI /v2/everything 响应
type searchResponse struct {
	Status       string    `json:"status"`
	TotalResults int       `json:"totalResults"`
	Articles     []article `json:"articles"`
}

type article struct {
	Source struct {
		Name string `json:"name"`
	} `json:"source"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Content     string `json:"content"`
	URL         string `json:"url"`
	PublishedAt string `json:"publishedAt"`
}

// Fetch implements source.Provider
func (c *Client) Fetch(ctx context.Context, q source.Query) ([]source.Item, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, err
	}

	params := u.Query()
	params.Set("q", q.Query)
	params.Set("language", "en")
	params.Set("sortBy", "publishedAt")
	params.Set("pageSize", fmt.Sprintf("%d", q.MaxResults))
	params.Set("apiKey", c.apiKey)
	u.RawQuery = params.Encode()

	resp, err := c.doGet(ctx, u.String())
	if err != nil {
		return nil, err
	}

	var items []source.Item
	for _, a := range resp.Articles {
		items = append(items, source.Item{
			Title:         a.Title,
			Description:   a.Description,
			Content:       a.Content,
			Source:        a.Source.Name,
			URL:           a.URL,
			PublishedDate: a.PublishedAt,
		})
	}
	return items, nil
}

// doGet 执行请求，对 429/5xx 做有限次退避重试
func (c *Client) doGet(ctx context.Context, rawURL string) (*searchResponse, error) {
	var lastErr error

	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(time.Duration(attempt) * time.Second):
			}
		}

		req, err := http.NewRequestWithContext(ctx, "GET", rawURL, nil)
		if err != nil {
			return nil, fmt.Errorf("create request failed: %w", err)
		}

		res, err := c.client.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("request failed: %w", err)
			continue
		}

		body, err := io.ReadAll(res.Body)
		res.Body.Close()
		if err != nil {
			lastErr = fmt.Errorf("read body failed: %w", err)
			continue
		}

		if res.StatusCode == http.StatusTooManyRequests || res.StatusCode >= 500 {
			lastErr = fmt.Errorf("newsapi error (status %d): %s", res.StatusCode, string(body))
			continue
		}
		if res.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("newsapi error (status %d): %s", res.StatusCode, string(body))
		}

		var searchResp searchResponse
		if err := json.Unmarshal(body, &searchResp); err != nil {
			return nil, fmt.Errorf("unmarshal response failed: %w", err)
		}
		return &searchResp, nil
	}

	return nil, fmt.Errorf("max retries exceeded: %w", lastErr)
}
