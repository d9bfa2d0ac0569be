package biz

import (
	"context"

	"github.com/go-kratos/kratos/v2/log"
)

// RunSummary 批次摘要信息
type RunSummary struct {
	ID            int    `json:"id"`
	Source        string `json:"source"`
	TotalArticles int    `json:"total_articles"`
	Analyzed      int    `json:"analyzed"`
	Validated     int    `json:"validated"`
	CreatedAt     string `json:"created_at"`
}

// ResultView 批次内单篇文章的展示视图
type ResultView struct {
	Title             string   `json:"title"`
	Source            string   `json:"source"`
	URL               string   `json:"url"`
	PublishedAt       string   `json:"published_at"`
	Status            string   `json:"status"`
	Analysis          string   `json:"analysis"`
	Error             string   `json:"error,omitempty"`
	Verdict           string   `json:"verdict,omitempty"`
	Confidence        float64  `json:"confidence,omitempty"`
	OverallAssessment string   `json:"overall_assessment,omitempty"`
	ValidatedAt       string   `json:"validated_at,omitempty"`
	Issues            []string `json:"issues,omitempty"`
	Strengths         []string `json:"strengths,omitempty"`
}

// RunDetail 批次详情
type RunDetail struct {
	RunSummary
	Results []*ResultView `json:"results"`
}

// RunRepo 批次归档仓库接口
type RunRepo interface {
	// ListRuns 分页获取批次摘要列表
	ListRuns(ctx context.Context, page, pageSize int) ([]*RunSummary, int, error)
	// GetRun 根据 ID 获取批次详情
	GetRun(ctx context.Context, id int) (*RunDetail, error)
}

// RunUseCase 批次查询业务逻辑
type RunUseCase struct {
	repo RunRepo
	log  *log.Helper
}

// NewRunUseCase 创建批次业务逻辑实例
func NewRunUseCase(repo RunRepo, logger log.Logger) *RunUseCase {
	return &RunUseCase{repo: repo, log: log.NewHelper(logger)}
}

// List 分页列出批次摘要
func (uc *RunUseCase) List(ctx context.Context, page, pageSize int) ([]*RunSummary, int, error) {
	return uc.repo.ListRuns(ctx, page, pageSize)
}

// Get 根据 ID 获取批次详情
func (uc *RunUseCase) Get(ctx context.Context, id int) (*RunDetail, error) {
	return uc.repo.GetRun(ctx, id)
}
