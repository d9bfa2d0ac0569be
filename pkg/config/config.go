package config

import (
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config 项目配置结构体
type Config struct {
	News     NewsConfig     `yaml:"news"`
	LLM      LLMConfig      `yaml:"llm"`
	Throttle ThrottleConfig `yaml:"throttle"`
	Log      LogConfig      `yaml:"log"`
	Output   OutputConfig   `yaml:"output"`
	DB       DBConfig       `yaml:"db"`
}

// NewsConfig 新闻源相关配置
type NewsConfig struct {
	Provider    string        `yaml:"provider"` // newsapi / tavily / rss
	Query       string        `yaml:"query"`
	MaxArticles int           `yaml:"max_articles"`
	Timeout     int           `yaml:"timeout"` // 请求超时（秒）
	NewsAPI     NewsAPIConfig `yaml:"newsapi"`
	Tavily      TavilyConfig  `yaml:"tavily"`
	RSS         RSSConfig     `yaml:"rss"`
}

// NewsAPIConfig NewsAPI 配置
type NewsAPIConfig struct {
	APIKey string `yaml:"api_key"`
}

// TavilyConfig Tavily 配置
type TavilyConfig struct {
	APIKey string `yaml:"api_key"`
}

// RSSConfig RSS 订阅源配置
type RSSConfig struct {
	Feeds []string `yaml:"feeds"`
}

// LLMConfig LLM 相关配置，两个模型走同一个 OpenAI 兼容端点
type LLMConfig struct {
	BaseURL        string `yaml:"base_url"`
	APIKey         string `yaml:"api_key"`
	Model          string `yaml:"model"`           // LLM#1 分析模型
	ValidatorModel string `yaml:"validator_model"` // LLM#2 校验模型，缺省同 model
}

// ThrottleConfig 模型调用限流配置
type ThrottleConfig struct {
	RPM   int `yaml:"rpm"`
	Burst int `yaml:"burst"`
}

// LogConfig 日志相关配置
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// OutputConfig 产物输出配置
type OutputConfig struct {
	Dir string `yaml:"dir"`
}

// DBConfig 数据库相关配置，host 为空时跳过归档
type DBConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
}

// LoadConfig 从指定路径加载配置；文件不存在时退回环境变量加默认值
func LoadConfig(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	if err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, err
		}
	}

	cfg.applyEnv()
	cfg.applyDefaults()
	return &cfg, nil
}

// applyEnv 环境变量优先级高于配置文件
func (c *Config) applyEnv() {
	if v := os.Getenv("NEWSAPI_API_KEY"); v != "" {
		c.News.NewsAPI.APIKey = v
	}
	if v := os.Getenv("TAVILY_API_KEY"); v != "" {
		c.News.Tavily.APIKey = v
	}
	if v := os.Getenv("NEWS_QUERY"); v != "" {
		c.News.Query = v
	}
	if v := os.Getenv("MAX_ARTICLES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.News.MaxArticles = n
		}
	}
	if v := os.Getenv("REQUEST_TIMEOUT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.News.Timeout = n
		}
	}
	if v := os.Getenv("LLM_API_KEY"); v != "" {
		c.LLM.APIKey = v
	}
	if v := os.Getenv("LLM_BASE_URL"); v != "" {
		c.LLM.BaseURL = v
	}
}

func (c *Config) applyDefaults() {
	if c.News.Query == "" {
		c.News.Query = "India politics"
	}
	if c.News.MaxArticles <= 0 {
		c.News.MaxArticles = 12
	}
	if c.News.Timeout <= 0 {
		c.News.Timeout = 10
	}
	if c.LLM.ValidatorModel == "" {
		c.LLM.ValidatorModel = c.LLM.Model
	}
	// 默认对应外部 API 的 5 次/分钟配额
	if c.Throttle.RPM <= 0 {
		c.Throttle.RPM = 5
	}
	if c.Throttle.Burst <= 0 {
		c.Throttle.Burst = 1
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Output.Dir == "" {
		c.Output.Dir = "output"
	}
}
