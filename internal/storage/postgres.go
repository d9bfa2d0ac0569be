package storage

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"

	"github.com/iWorld-y/news_analyzer/pkg/config"
	dm "github.com/iWorld-y/news_analyzer/pkg/model"
	"github.com/iWorld-y/news_analyzer/pkg/pipeline"
)

// Storage 已完成批次的 Postgres 归档
type Storage struct {
	db *sql.DB
}

// NewStorage 建立连接并初始化表结构
func NewStorage(cfg config.DBConfig) (*Storage, error) {
	connStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := &Storage{db: db}
	if err := s.initSchema(); err != nil {
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return s, nil
}

func (s *Storage) Close() error {
	return s.db.Close()
}

func (s *Storage) initSchema() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS pipeline_runs (
			id SERIAL PRIMARY KEY,
			source TEXT NOT NULL,
			total_articles INTEGER,
			analyzed INTEGER,
			validated INTEGER,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS pipeline_results (
			id SERIAL PRIMARY KEY,
			run_id INTEGER REFERENCES pipeline_runs(id),
			article_id TEXT,
			title TEXT,
			source TEXT,
			url TEXT,
			published_at TEXT,
			status TEXT,
			analysis TEXT,
			error TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS validations (
			id SERIAL PRIMARY KEY,
			result_id INTEGER REFERENCES pipeline_results(id),
			verdict TEXT,
			confidence REAL,
			overall_assessment TEXT,
			validated_at TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS validation_issues (
			id SERIAL PRIMARY KEY,
			validation_id INTEGER REFERENCES validations(id),
			issue TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS validation_strengths (
			id SERIAL PRIMARY KEY,
			validation_id INTEGER REFERENCES validations(id),
			strength TEXT
		)`,
	}

	for _, query := range queries {
		if _, err := s.db.Exec(query); err != nil {
			return fmt.Errorf("failed to execute query %s: %w", query, err)
		}
	}

	return nil
}

// SaveRun 在单个事务中归档一次批次的全部结果，返回批次 ID
func (s *Storage) SaveRun(results []*dm.PipelineResult, summary pipeline.Summary, sourceName string) (int, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	var runID int
	err = tx.QueryRow(`
		INSERT INTO pipeline_runs (source, total_articles, analyzed, validated)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		sourceName, summary.Total, summary.Analyzed, summary.Validated).Scan(&runID)
	if err != nil {
		return 0, fmt.Errorf("failed to insert pipeline run: %w", err)
	}

	for _, r := range results {
		var resultID int
		err = tx.QueryRow(`
			INSERT INTO pipeline_results (run_id, article_id, title, source, url, published_at, status, analysis, error)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			RETURNING id`,
			runID, r.Article.ID, r.Article.Title, r.Article.Source, r.Article.URL,
			r.Article.PublishedAt, string(r.Status), r.Analysis, r.Error).Scan(&resultID)
		if err != nil {
			return 0, fmt.Errorf("failed to insert pipeline result: %w", err)
		}

		if r.Validation == nil {
			continue
		}

		var validationID int
		err = tx.QueryRow(`
			INSERT INTO validations (result_id, verdict, confidence, overall_assessment, validated_at)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id`,
			resultID, r.Validation.Verdict, r.Validation.Confidence,
			r.Validation.OverallAssessment, r.Validation.ValidatedAt).Scan(&validationID)
		if err != nil {
			return 0, fmt.Errorf("failed to insert validation: %w", err)
		}

		for _, issue := range r.Validation.Issues {
			if _, err := tx.Exec(`
				INSERT INTO validation_issues (validation_id, issue)
				VALUES ($1, $2)`,
				validationID, issue); err != nil {
				return 0, fmt.Errorf("failed to insert validation issue: %w", err)
			}
		}
		for _, strength := range r.Validation.Strengths {
			if _, err := tx.Exec(`
				INSERT INTO validation_strengths (validation_id, strength)
				VALUES ($1, $2)`,
				validationID, strength); err != nil {
				return 0, fmt.Errorf("failed to insert validation strength: %w", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return runID, nil
}
