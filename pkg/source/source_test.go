package source

import (
	"context"
	"errors"
	"strings"
	"testing"
)

// mockProvider 模拟新闻提供方
type mockProvider struct {
	items []Item
	err   error
}

func (m *mockProvider) Fetch(ctx context.Context, q Query) ([]Item, error) {
	return m.items, m.err
}

const goodContent = "This body is comfortably longer than the fifty character minimum required by normalization."

func TestFetcher_Fetch(t *testing.T) {
	provider := &mockProvider{items: []Item{
		{Title: "  Padded Title  ", Content: goodContent, Source: "Reuters", URL: "https://example.com/1", PublishedDate: "2026-08-27T10:00:00Z"},
	}}
	f := NewFetcher(provider, Query{Query: "test", MaxResults: 10}, false)

	articles, err := f.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if len(articles) != 1 {
		t.Fatalf("len(articles) = %d, want 1", len(articles))
	}

	a := articles[0]
	if a.ID == "" {
		t.Errorf("ID is empty, want generated id")
	}
	if a.Title != "Padded Title" {
		t.Errorf("Title = %q, want trimmed", a.Title)
	}
	if a.Content != goodContent {
		t.Errorf("Content = %q", a.Content)
	}
	if a.Source != "Reuters" {
		t.Errorf("Source = %q", a.Source)
	}
}

func TestFetcher_ProviderError(t *testing.T) {
	f := NewFetcher(&mockProvider{err: errors.New("dial timeout")}, Query{}, false)

	_, err := f.Fetch(context.Background())
	var se *Error
	if !errors.As(err, &se) {
		t.Fatalf("Fetch() error = %T, want *source.Error", err)
	}
	if !strings.Contains(se.Error(), "dial timeout") {
		t.Errorf("Error() = %q, want wrapped cause", se.Error())
	}
}

// 规范化后一篇不剩视为源错误
func TestFetcher_AllFiltered(t *testing.T) {
	provider := &mockProvider{items: []Item{
		{Title: "", Content: goodContent},
		{Title: "too short", Content: "tiny"},
	}}
	f := NewFetcher(provider, Query{}, false)

	_, err := f.Fetch(context.Background())
	var se *Error
	if !errors.As(err, &se) {
		t.Fatalf("Fetch() error = %T, want *source.Error", err)
	}
}

func TestFetcher_DedupByURL(t *testing.T) {
	provider := &mockProvider{items: []Item{
		{Title: "First", Content: goodContent, URL: "https://example.com/same"},
		{Title: "Duplicate", Content: goodContent, URL: "https://example.com/same"},
		{Title: "Other", Content: goodContent, URL: "https://example.com/other"},
	}}
	f := NewFetcher(provider, Query{}, false)

	articles, err := f.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if len(articles) != 2 {
		t.Fatalf("len(articles) = %d, want 2", len(articles))
	}
	if articles[0].Title != "First" || articles[1].Title != "Other" {
		t.Errorf("titles = %q, %q", articles[0].Title, articles[1].Title)
	}
}

// content 为空时回落 description
func TestFetcher_DescriptionFallback(t *testing.T) {
	provider := &mockProvider{items: []Item{
		{Title: "Desc only", Description: goodContent},
	}}
	f := NewFetcher(provider, Query{}, false)

	articles, err := f.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if articles[0].Content != goodContent {
		t.Errorf("Content = %q, want description fallback", articles[0].Content)
	}
}

func TestFetcher_DefaultSource(t *testing.T) {
	provider := &mockProvider{items: []Item{
		{Title: "No source", Content: goodContent},
	}}
	f := NewFetcher(provider, Query{}, false)

	articles, err := f.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if articles[0].Source != "Unknown" {
		t.Errorf("Source = %q, want %q", articles[0].Source, "Unknown")
	}
}

func TestFetcher_TruncatesLongContent(t *testing.T) {
	provider := &mockProvider{items: []Item{
		{Title: "Long", Content: strings.Repeat("x", maxContentLength+500)},
	}}
	f := NewFetcher(provider, Query{}, false)

	articles, err := f.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if len(articles[0].Content) != maxContentLength {
		t.Errorf("len(Content) = %d, want %d", len(articles[0].Content), maxContentLength)
	}
}

func TestFetcher_UniqueIDs(t *testing.T) {
	provider := &mockProvider{items: []Item{
		{Title: "A", Content: goodContent, URL: "https://example.com/a"},
		{Title: "B", Content: goodContent, URL: "https://example.com/b"},
	}}
	f := NewFetcher(provider, Query{}, false)

	articles, err := f.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if articles[0].ID == articles[1].ID {
		t.Errorf("duplicate article ids: %q", articles[0].ID)
	}
}
