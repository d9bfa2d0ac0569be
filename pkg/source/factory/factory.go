package factory

import (
	"fmt"
	"time"

	"github.com/iWorld-y/news_analyzer/pkg/config"
	"github.com/iWorld-y/news_analyzer/pkg/source"
	"github.com/iWorld-y/news_analyzer/pkg/source/newsapi"
	"github.com/iWorld-y/news_analyzer/pkg/source/rss"
	"github.com/iWorld-y/news_analyzer/pkg/source/tavily"
)

// NewProvider 根据配置创建新闻提供方实例，返回实例与展示名称
// 凭证缺失属于源级错误，在任何处理开始前终止
func NewProvider(cfg *config.Config) (source.Provider, string, error) {
	provider := cfg.News.Provider
	if provider == "" {
		// 默认回退逻辑：有 newsapi key 则使用 newsapi
		switch {
		case cfg.News.NewsAPI.APIKey != "":
			provider = "newsapi"
		case cfg.News.Tavily.APIKey != "":
			provider = "tavily"
		case len(cfg.News.RSS.Feeds) > 0:
			provider = "rss"
		default:
			return nil, "", &source.Error{Message: "news provider not configured"}
		}
	}

	switch provider {
	case "newsapi":
		if cfg.News.NewsAPI.APIKey == "" {
			return nil, "", &source.Error{Message: "missing NEWSAPI_API_KEY"}
		}
		timeout := time.Duration(cfg.News.Timeout) * time.Second
		return newsapi.NewClient(cfg.News.NewsAPI.APIKey, timeout), "NewsAPI", nil

	case "tavily":
		if cfg.News.Tavily.APIKey == "" {
			return nil, "", &source.Error{Message: "tavily api key is missing"}
		}
		return tavily.NewClient(cfg.News.Tavily.APIKey), "Tavily", nil

	case "rss":
		if len(cfg.News.RSS.Feeds) == 0 {
			return nil, "", &source.Error{Message: "rss feeds are not configured"}
		}
		return rss.NewClient(cfg.News.RSS.Feeds), "RSS", nil

	default:
		return nil, "", &source.Error{Message: fmt.Sprintf("unknown news provider: %s", provider)}
	}
}
