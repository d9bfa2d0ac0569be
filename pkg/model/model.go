package model

// Status 流水线中单篇文章的处理状态
type Status string

const (
	StatusPending          Status = "pending"
	StatusAnalyzed         Status = "analyzed"
	StatusValidated        Status = "validated"
	StatusAnalysisFailed   Status = "analysis_failed"
	StatusValidationFailed Status = "validation_failed"
)

// 校验结论取值
const (
	VerdictCorrect          = "correct"
	VerdictPartiallyCorrect = "partially_correct"
	VerdictIncorrect        = "incorrect"
)

// Article 规范化后的新闻文章，抓取后不再修改
type Article struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Content     string `json:"content"`
	Source      string `json:"source"`
	URL         string `json:"url"`
	PublishedAt string `json:"published_at"`
}

// Valid 检查必填字段（title 与 content）是否齐全
func (a *Article) Valid() bool {
	return a != nil && a.Title != "" && a.Content != ""
}

// ValidationRecord LLM#2 返回的结构化校验结论
// article_title 由解析器补充，validated_at 由编排器在校验完成时填写
type ValidationRecord struct {
	Verdict           string   `json:"verdict"`
	Confidence        float64  `json:"confidence"`
	Issues            []string `json:"issues"`
	Strengths         []string `json:"strengths"`
	OverallAssessment string   `json:"overall_assessment"`
	ArticleTitle      string   `json:"article_title,omitempty"`
	ValidatedAt       string   `json:"validated_at,omitempty"`
}

// PipelineResult 单篇文章在两阶段流水线中的完整记录
// 由编排器独占持有，validation 非空当且仅当 status == validated
type PipelineResult struct {
	Article    *Article          `json:"article"`
	Analysis   string            `json:"analysis"`
	Validation *ValidationRecord `json:"validation"`
	Timestamp  string            `json:"timestamp"`
	Status     Status            `json:"status"`
	Error      string            `json:"error,omitempty"`
}
