package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/iWorld-y/news_analyzer/pkg/analyzer"
	dm "github.com/iWorld-y/news_analyzer/pkg/model"
)

// RawDocument raw_articles.json 的结构
type RawDocument struct {
	Metadata RawMetadata   `json:"metadata"`
	Articles []*dm.Article `json:"articles"`
}

// RawMetadata 抓取产物元数据
type RawMetadata struct {
	FetchedAt     string `json:"fetched_at"`
	TotalArticles int    `json:"total_articles"`
	Source        string `json:"source"`
}

// ResultsDocument analysis_results.json 的结构
type ResultsDocument struct {
	Metadata ResultsMetadata      `json:"metadata"`
	Results  []*dm.PipelineResult `json:"results"`
}

// ResultsMetadata 分析产物元数据，含情感与结论两类统计
type ResultsMetadata struct {
	AnalyzedAt         string         `json:"analyzed_at"`
	TotalArticles      int            `json:"total_articles"`
	SentimentBreakdown map[string]int `json:"sentiment_breakdown"`
	CorrectAnalyses    int            `json:"correct_analyses"`
	PartiallyCorrect   int            `json:"partially_correct"`
	IncorrectAnalyses  int            `json:"incorrect_analyses"`
}

// NewRawDocument 组装原始文章产物
func NewRawDocument(articles []*dm.Article, sourceName string) *RawDocument {
	return &RawDocument{
		Metadata: RawMetadata{
			FetchedAt:     time.Now().Format(time.RFC3339),
			TotalArticles: len(articles),
			Source:        sourceName,
		},
		Articles: articles,
	}
}

// NewResultsDocument 组装分析结果产物
func NewResultsDocument(results []*dm.PipelineResult) *ResultsDocument {
	doc := &ResultsDocument{
		Metadata: ResultsMetadata{
			AnalyzedAt:         time.Now().Format(time.RFC3339),
			TotalArticles:      len(results),
			SentimentBreakdown: SentimentBreakdown(results),
		},
		Results: results,
	}
	for _, r := range results {
		if r.Validation == nil {
			continue
		}
		switch r.Validation.Verdict {
		case dm.VerdictCorrect:
			doc.Metadata.CorrectAnalyses++
		case dm.VerdictPartiallyCorrect:
			doc.Metadata.PartiallyCorrect++
		case dm.VerdictIncorrect:
			doc.Metadata.IncorrectAnalyses++
		}
	}
	return doc
}

// SentimentBreakdown 从已校验结果的 SENTIMENT: 标签行统计情感分布
func SentimentBreakdown(results []*dm.PipelineResult) map[string]int {
	counts := make(map[string]int)
	for _, r := range results {
		if r.Status != dm.StatusValidated {
			continue
		}
		for _, line := range strings.Split(r.Analysis, "\n") {
			if !strings.Contains(line, "SENTIMENT:") {
				continue
			}
			sentiment := strings.TrimSpace(strings.Replace(line, "SENTIMENT:", "", 1))
			counts[sentiment]++
			break
		}
	}
	return counts
}

// SentimentWordCounts 按 Positive/Negative/Neutral 关键词在分析全文中出现统计
// 与 SentimentBreakdown 是两套独立的统计口径，markdown 报告用这一套
func SentimentWordCounts(results []*dm.PipelineResult) map[string]int {
	counts := map[string]int{"Positive": 0, "Negative": 0, "Neutral": 0}
	for _, r := range results {
		if r.Status != dm.StatusValidated {
			continue
		}
		switch {
		case strings.Contains(r.Analysis, "Positive"):
			counts["Positive"]++
		case strings.Contains(r.Analysis, "Negative"):
			counts["Negative"]++
		case strings.Contains(r.Analysis, "Neutral"):
			counts["Neutral"]++
		}
	}
	return counts
}

// BuildMarkdown 生成人类可读报告，只包含 validated 状态的文章
// 可选字段缺失一律取默认值，不报错
func BuildMarkdown(results []*dm.PipelineResult, sourceName string) string {
	validated := 0
	for _, r := range results {
		if r.Status == dm.StatusValidated {
			validated++
		}
	}
	sentiments := SentimentWordCounts(results)

	var sb strings.Builder
	fmt.Fprintf(&sb, "# News Analysis Report\n\n")
	fmt.Fprintf(&sb, "**Date:** %s\n", time.Now().Format("2006-01-02"))
	fmt.Fprintf(&sb, "**Articles Analyzed:** %d\n", validated)
	fmt.Fprintf(&sb, "**Source:** %s\n\n---\n\n", sourceName)

	sb.WriteString("## Summary\n\n")
	fmt.Fprintf(&sb, "- **Positive:** %d articles\n", sentiments["Positive"])
	fmt.Fprintf(&sb, "- **Negative:** %d articles\n", sentiments["Negative"])
	fmt.Fprintf(&sb, "- **Neutral:** %d articles\n\n---\n\n", sentiments["Neutral"])

	sb.WriteString("## Detailed Analysis\n\n")

	articleNum := 1
	for _, r := range results {
		if r.Status != dm.StatusValidated {
			continue
		}
		sb.WriteString(renderSection(articleNum, r))
		articleNum++
	}

	return sb.String()
}

func renderSection(num int, r *dm.PipelineResult) string {
	fields := analyzer.ParseFields(r.Analysis)

	title := "Untitled"
	src := "Unknown"
	link := "#"
	if r.Article != nil {
		if r.Article.Title != "" {
			title = r.Article.Title
		}
		if r.Article.Source != "" {
			src = r.Article.Source
		}
		if r.Article.URL != "" {
			link = r.Article.URL
		}
	}

	verdict := "unknown"
	assessment := "No validation details"
	if r.Validation != nil {
		if r.Validation.Verdict != "" {
			verdict = r.Validation.Verdict
		}
		if r.Validation.OverallAssessment != "" {
			assessment = r.Validation.OverallAssessment
		}
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "### Article %d: %q\n\n", num, title)
	fmt.Fprintf(&sb, "- **Source:** [%s](%s)\n", src, link)
	fmt.Fprintf(&sb, "- **Gist:** %s\n", fields.Gist)
	fmt.Fprintf(&sb, "- **LLM#1 Sentiment:** %s\n", fields.Sentiment)
	fmt.Fprintf(&sb, "- **LLM#2 Validation:** %s %s. %s\n", verdictGlyph(verdict), verdictTitle(verdict), assessment)
	fmt.Fprintf(&sb, "- **Tone:** %s\n\n---\n\n", fields.Tone)
	return sb.String()
}

func verdictGlyph(verdict string) string {
	switch verdict {
	case dm.VerdictCorrect:
		return "✓"
	case dm.VerdictPartiallyCorrect:
		return "~"
	case dm.VerdictIncorrect:
		return "✗"
	default:
		return "?"
	}
}

// verdictTitle partially_correct → Partially Correct
func verdictTitle(verdict string) string {
	words := strings.Split(strings.ReplaceAll(verdict, "_", " "), " ")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}
