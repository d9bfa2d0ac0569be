package rss

import (
	"context"
	"fmt"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/iWorld-y/news_analyzer/pkg/logger"
	"github.com/iWorld-y/news_analyzer/pkg/source"
)

// Client RSS 订阅源客户端，聚合多个 feed
type Client struct {
	feeds  []string
	parser *gofeed.Parser
}

// NewClient 创建 RSS 客户端
func NewClient(feeds []string) *Client {
	return &Client{
		feeds:  feeds,
		parser: gofeed.NewParser(),
	}
}

// Ensure Client implements source.Provider
var _ source.Provider = (*Client)(nil)

// Fetch implements source.Provider
// 逐个 feed 拉取，单个 feed 失败不影响其余
func (c *Client) Fetch(ctx context.Context, q source.Query) ([]source.Item, error) {
	var items []source.Item
	var lastErr error

	for _, feedURL := range c.feeds {
		feed, err := c.parser.ParseURLWithContext(feedURL, ctx)
		if err != nil {
			logger.Log.Warnf("RSS 拉取失败 [%s]: %v", feedURL, err)
			lastErr = err
			continue
		}

		for _, item := range feed.Items {
			if item.Link == "" {
				continue
			}

			content := item.Content
			if content == "" {
				content = item.Description
			}

			published := item.Published
			if item.PublishedParsed != nil {
				published = item.PublishedParsed.Format(time.RFC3339)
			}

			items = append(items, source.Item{
				Title:         item.Title,
				Description:   item.Description,
				Content:       content,
				Source:        feed.Title,
				URL:           item.Link,
				PublishedDate: published,
			})
			if q.MaxResults > 0 && len(items) >= q.MaxResults {
				return items, nil
			}
		}
	}

	if len(items) == 0 && lastErr != nil {
		return nil, fmt.Errorf("all feeds failed: %w", lastErr)
	}
	return items, nil
}
