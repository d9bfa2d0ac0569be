package service

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/iWorld-y/news_analyzer/internal/display/biz"
)

// DisplayService 归档批次的只读查询服务
type DisplayService struct {
	ucRun *biz.RunUseCase
	log   *log.Helper
}

// NewDisplayService 创建展示服务实例
func NewDisplayService(ucRun *biz.RunUseCase, logger log.Logger) *DisplayService {
	return &DisplayService{
		ucRun: ucRun,
		log:   log.NewHelper(logger),
	}
}

// ListRuns GET /api/runs?page=1&page_size=10
func (s *DisplayService) ListRuns(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(r.URL.Query().Get("page_size"))
	if pageSize < 1 {
		pageSize = 10
	}

	runs, total, err := s.ucRun.List(r.Context(), page, pageSize)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, map[string]any{
		"runs":  runs,
		"total": total,
	})
}

// GetRun GET /api/runs/detail?id=1
func (s *DisplayService) GetRun(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.URL.Query().Get("id"))
	if err != nil || id < 1 {
		http.Error(w, "invalid run id", http.StatusBadRequest)
		return
	}

	detail, err := s.ucRun.Get(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, detail)
}

func (s *DisplayService) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Errorf("write response failed: %v", err)
	}
}

func (s *DisplayService) writeError(w http.ResponseWriter, err error) {
	s.log.Errorf("query failed: %v", err)
	http.Error(w, err.Error(), http.StatusInternalServerError)
}
