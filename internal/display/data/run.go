package data

import (
	"context"
	"database/sql"
	"time"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"

	"github.com/iWorld-y/news_analyzer/internal/display/biz"
)

type runRepo struct {
	data *Data
	log  *log.Helper
}

// NewRunRepo 创建批次归档仓库
func NewRunRepo(data *Data, logger log.Logger) biz.RunRepo {
	return &runRepo{
		data: data,
		log:  log.NewHelper(logger),
	}
}

func (r *runRepo) ListRuns(ctx context.Context, page, pageSize int) ([]*biz.RunSummary, int, error) {
	offset := (page - 1) * pageSize

	rows, err := r.data.db.QueryContext(ctx, `
		SELECT id, source, total_articles, analyzed, validated, created_at
		FROM pipeline_runs
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var summaries []*biz.RunSummary
	for rows.Next() {
		var s biz.RunSummary
		var createdAt time.Time
		if err := rows.Scan(&s.ID, &s.Source, &s.TotalArticles, &s.Analyzed, &s.Validated, &createdAt); err != nil {
			return nil, 0, err
		}
		s.CreatedAt = createdAt.Format("2006-01-02 15:04:05")
		summaries = append(summaries, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int
	if err := r.data.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM pipeline_runs`).Scan(&total); err != nil {
		return nil, 0, err
	}

	return summaries, total, nil
}

func (r *runRepo) GetRun(ctx context.Context, id int) (*biz.RunDetail, error) {
	detail := &biz.RunDetail{}
	var createdAt time.Time

	err := r.data.db.QueryRowContext(ctx, `
		SELECT id, source, total_articles, analyzed, validated, created_at
		FROM pipeline_runs
		WHERE id = $1`, id).
		Scan(&detail.ID, &detail.Source, &detail.TotalArticles, &detail.Analyzed, &detail.Validated, &createdAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NotFound("RUN_NOT_FOUND", "run not found")
		}
		return nil, err
	}
	detail.CreatedAt = createdAt.Format("2006-01-02 15:04:05")

	rows, err := r.data.db.QueryContext(ctx, `
		SELECT pr.id, pr.title, pr.source, pr.url, pr.published_at, pr.status, pr.analysis, pr.error,
		       COALESCE(v.id, 0), COALESCE(v.verdict, ''), COALESCE(v.confidence, 0),
		       COALESCE(v.overall_assessment, ''), COALESCE(v.validated_at, '')
		FROM pipeline_results pr
		LEFT JOIN validations v ON v.result_id = pr.id
		WHERE pr.run_id = $1
		ORDER BY pr.id`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	validationIDs := make(map[int]*biz.ResultView)
	for rows.Next() {
		var rv biz.ResultView
		var resultID, validationID int
		if err := rows.Scan(&resultID, &rv.Title, &rv.Source, &rv.URL, &rv.PublishedAt,
			&rv.Status, &rv.Analysis, &rv.Error,
			&validationID, &rv.Verdict, &rv.Confidence, &rv.OverallAssessment, &rv.ValidatedAt); err != nil {
			return nil, err
		}
		detail.Results = append(detail.Results, &rv)
		if validationID > 0 {
			validationIDs[validationID] = &rv
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for validationID, rv := range validationIDs {
		issues, err := r.scanStrings(ctx, `SELECT issue FROM validation_issues WHERE validation_id = $1 ORDER BY id`, validationID)
		if err != nil {
			return nil, err
		}
		strengths, err := r.scanStrings(ctx, `SELECT strength FROM validation_strengths WHERE validation_id = $1 ORDER BY id`, validationID)
		if err != nil {
			return nil, err
		}
		rv.Issues = issues
		rv.Strengths = strengths
	}

	return detail, nil
}

func (r *runRepo) scanStrings(ctx context.Context, query string, arg any) ([]string, error) {
	rows, err := r.data.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var values []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, rows.Err()
}
