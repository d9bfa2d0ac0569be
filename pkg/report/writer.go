package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	dm "github.com/iWorld-y/news_analyzer/pkg/model"
)

// 产物文件名固定，供下游消费方按名读取
const (
	RawArticlesFile     = "raw_articles.json"
	AnalysisResultsFile = "analysis_results.json"
	FinalReportFile     = "final_report.md"
)

// SaveRawArticles 在分析开始前持久化原始文章，返回文件路径
func SaveRawArticles(articles []*dm.Article, outputDir, sourceName string) (string, error) {
	doc := NewRawDocument(articles, sourceName)
	return writeJSON(outputDir, RawArticlesFile, doc)
}

// SaveAnalysisResults 持久化完整结果列表与统计元数据，返回文件路径
func SaveAnalysisResults(results []*dm.PipelineResult, outputDir string) (string, error) {
	doc := NewResultsDocument(results)
	return writeJSON(outputDir, AnalysisResultsFile, doc)
}

// SaveFinalReport 持久化 markdown 报告，返回文件路径
func SaveFinalReport(results []*dm.PipelineResult, outputDir, sourceName string) (string, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	path := filepath.Join(outputDir, FinalReportFile)
	if err := os.WriteFile(path, []byte(BuildMarkdown(results, sourceName)), 0o644); err != nil {
		return "", fmt.Errorf("failed to save final report: %w", err)
	}
	return path, nil
}

func writeJSON(outputDir, filename string, doc any) (string, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal %s: %w", filename, err)
	}

	path := filepath.Join(outputDir, filename)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to save %s: %w", filename, err)
	}
	return path, nil
}
