package biz

import (
	"context"
	"testing"

	"github.com/go-kratos/kratos/v2/log"
)

// mockRunRepo 模拟批次归档仓库
type mockRunRepo struct{}

func (m *mockRunRepo) ListRuns(ctx context.Context, page, pageSize int) ([]*RunSummary, int, error) {
	return []*RunSummary{{ID: 1, Source: "NewsAPI", TotalArticles: 3}}, 1, nil
}

func (m *mockRunRepo) GetRun(ctx context.Context, id int) (*RunDetail, error) {
	return &RunDetail{RunSummary: RunSummary{ID: id}}, nil
}

func TestRunUseCase_List(t *testing.T) {
	uc := NewRunUseCase(&mockRunRepo{}, log.DefaultLogger)

	runs, total, err := uc.List(context.Background(), 1, 10)
	if err != nil {
		t.Errorf("List() error = %v", err)
		return
	}
	if total != 1 {
		t.Errorf("List() total = %v, want 1", total)
	}
	if len(runs) != 1 || runs[0].Source != "NewsAPI" {
		t.Errorf("List() runs = %v", runs)
	}
}

func TestRunUseCase_Get(t *testing.T) {
	uc := NewRunUseCase(&mockRunRepo{}, log.DefaultLogger)

	detail, err := uc.Get(context.Background(), 7)
	if err != nil {
		t.Errorf("Get() error = %v", err)
		return
	}
	if detail.ID != 7 {
		t.Errorf("Get() id = %v, want 7", detail.ID)
	}
}
