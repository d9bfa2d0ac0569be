package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/cloudwego/eino-ext/components/model/openai"
	einomodel "github.com/cloudwego/eino/components/model"

	"github.com/iWorld-y/news_analyzer/internal/storage"
	"github.com/iWorld-y/news_analyzer/pkg/analyzer"
	"github.com/iWorld-y/news_analyzer/pkg/config"
	"github.com/iWorld-y/news_analyzer/pkg/logger"
	"github.com/iWorld-y/news_analyzer/pkg/pipeline"
	"github.com/iWorld-y/news_analyzer/pkg/report"
	"github.com/iWorld-y/news_analyzer/pkg/source"
	"github.com/iWorld-y/news_analyzer/pkg/source/factory"
	"github.com/iWorld-y/news_analyzer/pkg/validator"
)

var flagconf string

func init() {
	flag.StringVar(&flagconf, "conf", "configs/config.yaml", "config path, eg: -conf config.yaml")
}

func main() {
	flag.Parse()

	// 1. 加载配置
	cfg, err := config.LoadConfig(flagconf)
	if err != nil {
		log.Fatalf("无法加载配置文件: %v", err)
	}

	// 2. 初始化日志
	if err = logger.InitLogger(cfg.Log.Level, cfg.Log.File); err != nil {
		log.Fatalf("无法初始化日志: %v", err)
	}
	logger.Log.Info("启动新闻分析流水线...")

	// 用户中断时尽快停止，不写出部分产物
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. 初始化两个 LLM 模型句柄
	chatModel, err := newChatModel(ctx, cfg, cfg.LLM.Model)
	if err != nil {
		logger.Log.Fatalf("LLM 初始化失败: %v", err)
	}
	validatorModel := chatModel
	if cfg.LLM.ValidatorModel != cfg.LLM.Model {
		validatorModel, err = newChatModel(ctx, cfg, cfg.LLM.ValidatorModel)
		if err != nil {
			logger.Log.Fatalf("校验模型初始化失败: %v", err)
		}
	}

	// 4. 初始化新闻源
	provider, sourceName, err := factory.NewProvider(cfg)
	if err != nil {
		logger.Log.Fatalf("新闻源初始化失败: %v", err)
	}
	fetcher := source.NewFetcher(provider, source.Query{
		Query:      cfg.News.Query,
		MaxResults: cfg.News.MaxArticles,
	}, true)

	// 5. 抓取文章，源错误是致命错误
	logger.Log.Infof("正在抓取新闻 [%s]: %s", sourceName, cfg.News.Query)
	articles, err := fetcher.Fetch(ctx)
	if err != nil {
		logger.Log.Fatalf("抓取新闻失败: %v", err)
	}
	logger.Log.Infof("抓取完成，共 %d 篇有效文章", len(articles))

	// 原始文章先落盘，失败只告警
	if path, err := report.SaveRawArticles(articles, cfg.Output.Dir, sourceName); err != nil {
		logger.Log.Warnf("保存原始文章失败: %v", err)
	} else {
		logger.Log.Infof("原始文章已保存: %s", path)
	}

	// 6. 执行两阶段流水线
	orch := pipeline.New(
		analyzer.New(chatModel),
		validator.New(validatorModel),
		pipeline.Options{
			RPM:   cfg.Throttle.RPM,
			Burst: cfg.Throttle.Burst,
			Progress: func(stage string, current, total int) {
				logger.Log.Infof("进度 [%s] %d/%d", stage, current, total)
			},
		},
	)

	results, err := orch.Run(ctx, articles)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			logger.Log.Error("流水线被用户中断，丢弃未完成的结果")
		} else {
			logger.Log.Errorf("流水线中止: %v", err)
		}
		os.Exit(1)
	}

	// 7. 保存产物
	resultsPath, err := report.SaveAnalysisResults(results, cfg.Output.Dir)
	if err != nil {
		logger.Log.Errorf("保存分析结果失败: %v", err)
		return
	}
	logger.Log.Infof("分析结果已保存: %s", resultsPath)

	reportPath, err := report.SaveFinalReport(results, cfg.Output.Dir, sourceName)
	if err != nil {
		logger.Log.Errorf("保存最终报告失败: %v", err)
		return
	}
	logger.Log.Infof("最终报告已保存: %s", reportPath)

	summary := pipeline.Summarize(results)

	// 8. 归档到数据库（可选）
	if cfg.DB.Host != "" {
		store, err := storage.NewStorage(cfg.DB)
		if err != nil {
			logger.Log.Errorf("无法连接数据库，跳过归档: %v", err)
		} else {
			defer store.Close()
			if runID, err := store.SaveRun(results, summary, sourceName); err != nil {
				logger.Log.Errorf("归档批次失败: %v", err)
			} else {
				logger.Log.Infof("批次已归档到数据库 (run_id=%d)", runID)
			}
		}
	}

	// 9. 汇总
	logger.Log.Infof("总计抓取文章: %d", summary.Total)
	logger.Log.Infof("分析成功 (LLM#1): %d", summary.Analyzed)
	logger.Log.Infof("校验成功 (LLM#2): %d", summary.Validated)
	logger.Log.Infof("校验结论: ✓ correct=%d ~ partially_correct=%d ✗ incorrect=%d",
		summary.Correct, summary.PartiallyCorrect, summary.Incorrect)
	logger.Log.Info("✅ 流水线执行完毕")
}

func newChatModel(ctx context.Context, cfg *config.Config, model string) (einomodel.ChatModel, error) {
	return openai.NewChatModel(ctx, &openai.ChatModelConfig{
		BaseURL: cfg.LLM.BaseURL,
		APIKey:  cfg.LLM.APIKey,
		Model:   model,
	})
}
