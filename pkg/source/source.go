package source

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-shiori/go-readability"
	"github.com/google/uuid"

	"github.com/iWorld-y/news_analyzer/pkg/logger"
	dm "github.com/iWorld-y/news_analyzer/pkg/model"
)

const (
	// 内容不足 50 字符的文章在规范化阶段直接丢弃
	minContentLength = 50
	// 摘要短于该阈值时尝试抓取原文
	enrichThreshold = 200
	// 截断过长内容以防止超出 Token 限制
	maxContentLength = 5000
)

// Error 新闻源错误，属于致命错误，终止整个批次
type Error struct {
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Query 通用查询参数
type Query struct {
	Query      string
	MaxResults int
}

// Item 提供方返回的原始条目，尚未规范化
type Item struct {
	Title         string
	Description   string
	Content       string
	Source        string
	URL           string
	PublishedDate string
}

// Provider 定义通用的新闻获取接口
type Provider interface {
	Fetch(ctx context.Context, q Query) ([]Item, error)
}

// Fetcher 在具体提供方之上做规范化：去重、过滤、补全正文、生成 ID
type Fetcher struct {
	provider Provider
	query    Query
	enrich   bool
}

// NewFetcher 创建规范化抓取器；enrich 为真时对过短摘要抓取原文
func NewFetcher(provider Provider, q Query, enrich bool) *Fetcher {
	return &Fetcher{provider: provider, query: q, enrich: enrich}
}

// Fetch 返回有限且按 URL 去重的规范化文章序列
// 规范化后一篇不剩时视为源错误
func (f *Fetcher) Fetch(ctx context.Context) ([]*dm.Article, error) {
	items, err := f.provider.Fetch(ctx, f.query)
	if err != nil {
		return nil, &Error{Message: "failed to fetch news", Err: err}
	}

	articles := f.normalize(items)
	if len(articles) == 0 {
		return nil, &Error{Message: "no valid articles found after normalization"}
	}
	return articles, nil
}

func (f *Fetcher) normalize(items []Item) []*dm.Article {
	var articles []*dm.Article
	seen := make(map[string]bool)

	for _, item := range items {
		// 按 URL 去重
		if item.URL != "" && seen[item.URL] {
			continue
		}

		content := item.Content
		if content == "" {
			content = item.Description
		}

		if f.enrich && len(content) < enrichThreshold && item.URL != "" {
			fetched, err := fetchAndCleanContent(item.URL)
			if err == nil && len(fetched) > len(content) {
				content = fetched
			} else if err != nil {
				logger.Log.Warnf("原文抓取失败，使用源摘要 [%s]: %v", item.Title, err)
			}
		}
		if len(content) > maxContentLength {
			content = content[:maxContentLength]
		}

		title := strings.TrimSpace(item.Title)
		content = strings.TrimSpace(content)

		// 过滤不可用文章
		if title == "" || len(content) < minContentLength {
			continue
		}

		src := item.Source
		if src == "" {
			src = "Unknown"
		}

		articles = append(articles, &dm.Article{
			ID:          uuid.NewString(),
			Title:       title,
			Description: strings.TrimSpace(item.Description),
			Content:     content,
			Source:      src,
			URL:         item.URL,
			PublishedAt: item.PublishedDate,
		})
		if item.URL != "" {
			seen[item.URL] = true
		}
	}
	return articles
}

// fetchAndCleanContent 抓取 URL 并提取核心文本
func fetchAndCleanContent(url string) (string, error) {
	article, err := readability.FromURL(url, 30*time.Second)
	if err != nil {
		return "", err
	}
	return article.TextContent, nil
}
