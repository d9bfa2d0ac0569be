package validator

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	dm "github.com/iWorld-y/news_analyzer/pkg/model"
)

// Error LLM#2 校验阶段的传输或 API 错误，单篇可恢复
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

const systemPrompt = "You are a validation expert. Your job is to validate whether an AI-generated analysis is accurate and high-quality."

const promptTpl = `ORIGINAL ARTICLE:
Title: %s
Description: %s
Content: %s

AI ANALYSIS TO VALIDATE:
%s

VALIDATION TASK:
1. Check if the summary accurately reflects the article content
2. Verify the sentiment classification is appropriate
3. Confirm key entities are correctly identified
4. Assess if "why this matters" is reasonable and insightful

Respond ONLY with a JSON object in this exact format:
{
  "verdict": "correct|partially_correct|incorrect",
  "confidence": 0.0-1.0,
  "issues": ["list of specific issues found, or empty array if none"],
  "strengths": ["list of what the analysis did well"],
  "overall_assessment": "brief overall evaluation"
}

Do not include any text before or after the JSON.`

// Validator LLM#2 客户端，对分析文本产出结构化校验结论
type Validator struct {
	cm model.ChatModel
}

// New 创建校验客户端，模型句柄由调用方注入
func New(cm model.ChatModel) *Validator {
	return &Validator{cm: cm}
}

// Validate 调用 LLM#2 并严格解析其 JSON 输出
// validated_at 留空，由编排器在校验完成时填写
func (v *Validator) Validate(ctx context.Context, article *dm.Article, analysis string) (*dm.ValidationRecord, error) {
	messages := []*schema.Message{
		{Role: schema.System, Content: systemPrompt},
		{Role: schema.User, Content: fmt.Sprintf(promptTpl, article.Title, article.Description, article.Content, analysis)},
	}

	resp, err := v.cm.Generate(ctx, messages)
	if err != nil {
		return nil, &Error{Message: "validation request failed", Err: err}
	}

	record, err := Parse(resp.Content)
	if err != nil {
		return nil, err
	}

	record.ArticleTitle = article.Title
	return record, nil
}
