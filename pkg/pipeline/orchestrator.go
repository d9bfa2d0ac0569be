package pipeline

import (
	"context"
	"time"

	"golang.org/x/time/rate"

	"github.com/iWorld-y/news_analyzer/pkg/logger"
	dm "github.com/iWorld-y/news_analyzer/pkg/model"
)

// 默认对应外部 API 的 5 次/分钟配额
const defaultRPM = 5

// Analyzer LLM#1 客户端接口，测试时注入返回固定文本的假实现
type Analyzer interface {
	Analyze(ctx context.Context, article *dm.Article) (string, error)
}

// Validator LLM#2 客户端接口
type Validator interface {
	Validate(ctx context.Context, article *dm.Article, analysis string) (*dm.ValidationRecord, error)
}

// Options 编排器参数
type Options struct {
	RPM      int // 每分钟最大模型调用次数，缺省 5
	Burst    int // 令牌桶突发容量，缺省 1
	Progress func(stage string, current, total int)
}

// Orchestrator 驱动单篇文章的状态机：pending → analyzed → validated
// 两阶段均在同一个限流器下串行调度
type Orchestrator struct {
	analyzer  Analyzer
	validator Validator
	limiter   *rate.Limiter
	progress  func(stage string, current, total int)
}

// New 创建编排器实例
func New(a Analyzer, v Validator, opts Options) *Orchestrator {
	rpm := opts.RPM
	if rpm <= 0 {
		rpm = defaultRPM
	}
	burst := opts.Burst
	if burst <= 0 {
		burst = 1
	}

	progress := opts.Progress
	if progress == nil {
		progress = func(stage string, current, total int) {
			logger.Log.Infof("进度 [%s] %d/%d", stage, current, total)
		}
	}

	return &Orchestrator{
		analyzer:  a,
		validator: v,
		limiter:   rate.NewLimiter(rate.Limit(float64(rpm)/60.0), burst),
		progress:  progress,
	}
}

// Run 执行两阶段流水线，按输入顺序逐篇处理
// 单篇失败记录在结果上并继续；上下文取消时立即返回已积累的结果与错误，
// 由调用方决定是否保留部分结果
func (o *Orchestrator) Run(ctx context.Context, articles []*dm.Article) ([]*dm.PipelineResult, error) {
	var results []*dm.PipelineResult

	// 阶段一：LLM#1 分析
	for idx, article := range articles {
		o.progress("analyzing", idx, len(articles))

		// 必填字段不齐的文章整篇跳过，不产生结果记录
		if !article.Valid() {
			logger.Log.Warnf("跳过第 %d 篇文章：缺少必填字段", idx+1)
			continue
		}

		result := &dm.PipelineResult{
			Article:   article,
			Timestamp: time.Now().Format(time.RFC3339),
			Status:    dm.StatusPending,
		}

		if err := o.limiter.Wait(ctx); err != nil {
			return results, err
		}

		analysis, err := o.analyzer.Analyze(ctx, article)
		if err != nil {
			if ctx.Err() != nil {
				return results, ctx.Err()
			}
			logger.Log.Errorf("第 %d 篇文章分析失败: %v", idx+1, err)
			result.Status = dm.StatusAnalysisFailed
			result.Error = err.Error()
		} else {
			result.Analysis = analysis
			result.Status = dm.StatusAnalyzed
		}
		results = append(results, result)
	}
	o.progress("analyzing", len(articles), len(articles))

	// 阶段二：LLM#2 校验，只处理 analyzed 状态的结果，失败不再重试
	for idx, result := range results {
		if result.Status != dm.StatusAnalyzed {
			continue
		}
		o.progress("validating", idx, len(results))

		if err := o.limiter.Wait(ctx); err != nil {
			return results, err
		}

		validation, err := o.validator.Validate(ctx, result.Article, result.Analysis)
		if err != nil {
			if ctx.Err() != nil {
				return results, ctx.Err()
			}
			logger.Log.Warnf("第 %d 篇文章校验失败: %v", idx+1, err)
			result.Status = dm.StatusValidationFailed
			result.Error = err.Error()
			continue
		}

		// 时间戳反映校验完成时刻，而非模型响应时刻
		validation.ValidatedAt = time.Now().Format(time.RFC3339)
		result.Validation = validation
		result.Status = dm.StatusValidated
	}
	o.progress("validating", len(results), len(results))

	return results, nil
}
