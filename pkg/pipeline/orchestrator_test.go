package pipeline

import (
	"context"
	"errors"
	"fmt"
	"testing"

	dm "github.com/iWorld-y/news_analyzer/pkg/model"
)

// mockAnalyzer 模拟 LLM#1，按标题决定成功或失败
type mockAnalyzer struct {
	failTitles map[string]bool
	calls      int
}

func (m *mockAnalyzer) Analyze(ctx context.Context, article *dm.Article) (string, error) {
	m.calls++
	if m.failTitles[article.Title] {
		return "", errors.New("model unavailable")
	}
	return fmt.Sprintf("GIST: summary of %s\nSENTIMENT: Positive\nTONE: calm", article.Title), nil
}

// mockValidator 模拟 LLM#2
type mockValidator struct {
	failTitles map[string]bool
	calls      int
}

func (m *mockValidator) Validate(ctx context.Context, article *dm.Article, analysis string) (*dm.ValidationRecord, error) {
	m.calls++
	if m.failTitles[article.Title] {
		return nil, errors.New("bad json")
	}
	return &dm.ValidationRecord{
		Verdict:           dm.VerdictCorrect,
		Confidence:        0.9,
		Issues:            []string{},
		Strengths:         []string{"clear"},
		OverallAssessment: "fine",
		ArticleTitle:      article.Title,
	}, nil
}

func testArticle(title string) *dm.Article {
	return &dm.Article{
		ID:      title,
		Title:   title,
		Content: "long enough body text for the pipeline to accept this article",
		Source:  "Test",
		URL:     "https://example.com/" + title,
	}
}

// 测试用高配额，避免令牌桶拖慢用例
func fastOptions() Options {
	return Options{RPM: 60000, Burst: 100, Progress: func(string, int, int) {}}
}

func TestOrchestrator_Run(t *testing.T) {
	analyzer := &mockAnalyzer{failTitles: map[string]bool{"a2": true}}
	validator := &mockValidator{}
	o := New(analyzer, validator, fastOptions())

	articles := []*dm.Article{testArticle("a1"), testArticle("a2"), testArticle("a3")}
	results, err := o.Run(context.Background(), articles)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("len(results) = %d, want 3", len(results))
	}

	wantStatus := []dm.Status{dm.StatusValidated, dm.StatusAnalysisFailed, dm.StatusValidated}
	for i, want := range wantStatus {
		if results[i].Status != want {
			t.Errorf("results[%d].Status = %q, want %q", i, results[i].Status, want)
		}
	}

	// 失败文章不进入校验阶段
	if analyzer.calls != 3 {
		t.Errorf("analyzer.calls = %d, want 3", analyzer.calls)
	}
	if validator.calls != 2 {
		t.Errorf("validator.calls = %d, want 2", validator.calls)
	}

	if results[1].Error == "" {
		t.Errorf("results[1].Error is empty, want analysis failure recorded")
	}
	if results[1].Validation != nil {
		t.Errorf("results[1].Validation = %+v, want nil", results[1].Validation)
	}
	if results[0].Validation == nil || results[0].Validation.ValidatedAt == "" {
		t.Errorf("results[0].Validation missing validated_at timestamp")
	}

	// 结果顺序与输入顺序一致
	for i, title := range []string{"a1", "a2", "a3"} {
		if results[i].Article.Title != title {
			t.Errorf("results[%d].Article.Title = %q, want %q", i, results[i].Article.Title, title)
		}
	}
}

func TestOrchestrator_ValidationFailure(t *testing.T) {
	analyzer := &mockAnalyzer{}
	validator := &mockValidator{failTitles: map[string]bool{"a1": true}}
	o := New(analyzer, validator, fastOptions())

	results, err := o.Run(context.Background(), []*dm.Article{testArticle("a1")})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if results[0].Status != dm.StatusValidationFailed {
		t.Errorf("Status = %q, want %q", results[0].Status, dm.StatusValidationFailed)
	}
	// 校验失败时保留分析文本
	if results[0].Analysis == "" {
		t.Errorf("Analysis is empty, want analysis text preserved")
	}
	if results[0].Validation != nil {
		t.Errorf("Validation = %+v, want nil", results[0].Validation)
	}
	if results[0].Error == "" {
		t.Errorf("Error is empty, want validation failure recorded")
	}
}

// 必填字段不齐的文章整篇跳过，不产生结果
func TestOrchestrator_SkipsInvalidArticle(t *testing.T) {
	analyzer := &mockAnalyzer{}
	o := New(analyzer, &mockValidator{}, fastOptions())

	articles := []*dm.Article{
		{Title: "no content"},
		testArticle("ok"),
	}
	results, err := o.Run(context.Background(), articles)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("len(results) = %d, want 1", len(results))
	}
	if results[0].Article.Title != "ok" {
		t.Errorf("results[0].Article.Title = %q, want %q", results[0].Article.Title, "ok")
	}
	if analyzer.calls != 1 {
		t.Errorf("analyzer.calls = %d, want 1", analyzer.calls)
	}
}

func TestOrchestrator_EmptyInput(t *testing.T) {
	o := New(&mockAnalyzer{}, &mockValidator{}, fastOptions())

	results, err := o.Run(context.Background(), nil)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(results) != 0 {
		t.Errorf("len(results) = %d, want 0", len(results))
	}
}

func TestOrchestrator_CancelledContext(t *testing.T) {
	o := New(&mockAnalyzer{}, &mockValidator{}, fastOptions())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, err := o.Run(ctx, []*dm.Article{testArticle("a1")})
	if err == nil {
		t.Fatalf("Run() error = nil, want context error")
	}
	if len(results) != 0 {
		t.Errorf("len(results) = %d, want 0 on pre-cancelled context", len(results))
	}
}

func TestSummarize(t *testing.T) {
	results := []*dm.PipelineResult{
		{Status: dm.StatusValidated, Validation: &dm.ValidationRecord{Verdict: dm.VerdictCorrect}},
		{Status: dm.StatusValidated, Validation: &dm.ValidationRecord{Verdict: dm.VerdictPartiallyCorrect}},
		{Status: dm.StatusAnalysisFailed},
		{Status: dm.StatusAnalyzed},
	}

	s := Summarize(results)
	if s.Total != 4 {
		t.Errorf("Total = %d, want 4", s.Total)
	}
	if s.Analyzed != 3 {
		t.Errorf("Analyzed = %d, want 3", s.Analyzed)
	}
	if s.Validated != 2 {
		t.Errorf("Validated = %d, want 2", s.Validated)
	}
	if s.Correct != 1 || s.PartiallyCorrect != 1 || s.Incorrect != 0 {
		t.Errorf("verdict counts = %d/%d/%d, want 1/1/0", s.Correct, s.PartiallyCorrect, s.Incorrect)
	}
}
