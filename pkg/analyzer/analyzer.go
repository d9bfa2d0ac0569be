package analyzer

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	dm "github.com/iWorld-y/news_analyzer/pkg/model"
)

// Error LLM#1 分析阶段错误，单篇可恢复，不终止批次
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

const systemPrompt = "You are a news intelligence analyst."

const promptTpl = `Analyze the following news article and provide:

1. **Gist**: A concise 1-2 sentence summary of the main news
2. **Sentiment**: Classify as Positive, Negative, or Neutral
3. **Tone**: Identify the tone (choose one: urgent, analytical, satirical, balanced, alarming, optimistic, critical, neutral)
4. **Key Entities**: List important people, organizations, or locations mentioned
5. **Why This Matters**: Brief explanation of significance

Article:
Title: %s
Description: %s
Content: %s

Format your response clearly with these exact headings:
GIST:
SENTIMENT:
TONE:
KEY ENTITIES:
WHY THIS MATTERS:`

// Analyzer LLM#1 客户端，对单篇文章产出自由文本分析
type Analyzer struct {
	cm model.ChatModel
}

// New 创建分析客户端，模型句柄由调用方注入
func New(cm model.ChatModel) *Analyzer {
	return &Analyzer{cm: cm}
}

// Analyze 调用 LLM#1，返回无固定结构的分析文本
func (a *Analyzer) Analyze(ctx context.Context, article *dm.Article) (string, error) {
	desc := article.Description
	if desc == "" {
		desc = "N/A"
	}

	messages := []*schema.Message{
		{Role: schema.System, Content: systemPrompt},
		{Role: schema.User, Content: fmt.Sprintf(promptTpl, article.Title, desc, article.Content)},
	}

	resp, err := a.cm.Generate(ctx, messages)
	if err != nil {
		return "", &Error{Message: "analysis request failed", Err: err}
	}
	return resp.Content, nil
}
