package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"videocatalog/internal/config"
	"videocatalog/internal/models"
	"videocatalog/internal/repository"
)

func catalogFixture() []models.Card {
	return []models.Card{
		{ID: 1, Title: "Village Dance", Category: "desi girlfriend", NumberViews: 100},
		{ID: 2, Title: "Punjabi Wedding", Category: "punjabi desi", NumberViews: 500},
		{ID: 3, Title: "Beach Trip", Category: "mallu", NumberViews: 500},
		{ID: 4, Title: "Story", Category: "horny", NumberViews: 50, ImageLink: strPtr("https://x.test/2021/07/s.png")},
		{ID: 401, Title: "Hidden", Category: "desi", NumberViews: 9000},
	}
}

func newQueryService(repo *stubRepo) *CatalogQueryService {
	return &CatalogQueryService{Repo: repo, Config: config.DefaultCatalog(), Logger: zap.NewNop()}
}

func pageIDs(p CardPage) []int64 {
	out := make([]int64, 0, len(p.Items))
	for _, it := range p.Items {
		out = append(out, it.ID)
	}
	return out
}

func TestNormalizePage(t *testing.T) {
	tests := []struct {
		limit, offset         int
		wantLimit, wantOffset int
	}{
		{0, 0, 20, 0},
		{-3, -1, 1, 0},
		{1, 5, 1, 5},
		{100, 0, 100, 0},
		{101, 0, 100, 0},
	}
	for _, tt := range tests {
		l, o := NormalizePage(tt.limit, tt.offset)
		if l != tt.wantLimit || o != tt.wantOffset {
			t.Fatalf("NormalizePage(%d,%d)=(%d,%d) want (%d,%d)", tt.limit, tt.offset, l, o, tt.wantLimit, tt.wantOffset)
		}
	}
}

func TestListCardsEmptyCatalog(t *testing.T) {
	svc := newQueryService(&stubRepo{})
	page, err := svc.ListCards(context.Background(), ListCardsOptions{Category: "all", Limit: 20})
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if page.Total != 0 || page.Items == nil || len(page.Items) != 0 {
		t.Fatalf("page=%+v", page)
	}
}

func TestListCardsOrderingAndWindow(t *testing.T) {
	svc := newQueryService(&stubRepo{cards: catalogFixture()})
	page, err := svc.ListCards(context.Background(), ListCardsOptions{Category: "all"})
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	want := []int64{2, 3, 1, 4}
	got := pageIDs(page)
	if len(got) != len(want) {
		t.Fatalf("ids=%v want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("ids=%v want %v", got, want)
		}
	}
	if page.Total != 4 || page.Limit != 20 {
		t.Fatalf("total=%d limit=%d", page.Total, page.Limit)
	}
	if page.Items[3].ThumbnailURL != "./images/2021_7_s.png" || page.Items[0].ThumbnailURL != config.DefaultThumbnailPath {
		t.Fatalf("thumbnails %q %q", page.Items[3].ThumbnailURL, page.Items[0].ThumbnailURL)
	}
	if page.Items[0].FormattedViews != "500" {
		t.Fatalf("formatted=%q", page.Items[0].FormattedViews)
	}
}

func TestListCardsFilters(t *testing.T) {
	repo := &stubRepo{cards: catalogFixture()}
	svc := newQueryService(repo)

	page, err := svc.ListCards(context.Background(), ListCardsOptions{Category: "desi", Search: " punjabi "})
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if page.Total != 1 || len(page.Items) != 1 || page.Items[0].ID != 2 {
		t.Fatalf("page=%v total=%d", pageIDs(page), page.Total)
	}
	last := repo.listCalls[len(repo.listCalls)-1]
	if last.Category == nil || *last.Category != "desi" || last.Search == nil || *last.Search != "punjabi" {
		t.Fatalf("params=%+v", last)
	}

	page, err = svc.ListCards(context.Background(), ListCardsOptions{Category: "ALL"})
	if err != nil || page.Total != 4 {
		t.Fatalf("all: total=%d err=%v", page.Total, err)
	}
}

func TestListCardsPaginationBounds(t *testing.T) {
	repo := &stubRepo{cards: catalogFixture()}
	svc := newQueryService(repo)

	for offset := 0; offset <= 5; offset++ {
		page, err := svc.ListCards(context.Background(), ListCardsOptions{Limit: 2, Offset: offset})
		if err != nil {
			t.Fatalf("offset=%d err=%v", offset, err)
		}
		if len(page.Items) > 2 {
			t.Fatalf("offset=%d len=%d", offset, len(page.Items))
		}
		if int64(offset) < page.Total && int64(len(page.Items)+offset) > page.Total {
			t.Fatalf("offset=%d items=%d total=%d", offset, len(page.Items), page.Total)
		}
		if int64(offset) >= page.Total && len(page.Items) != 0 {
			t.Fatalf("offset=%d past total returned %d items", offset, len(page.Items))
		}
	}

	calls := len(repo.listCalls)
	if _, err := svc.ListCards(context.Background(), ListCardsOptions{Offset: 50}); err != nil {
		t.Fatalf("err=%v", err)
	}
	if len(repo.listCalls) != calls {
		t.Fatalf("page query issued past total")
	}

	page, err := svc.ListCards(context.Background(), ListCardsOptions{Limit: 1000, Offset: -4})
	if err != nil || page.Limit != 100 || page.Offset != 0 {
		t.Fatalf("page=%+v err=%v", page, err)
	}
}

func TestListCardsUnavailable(t *testing.T) {
	svc := newQueryService(&stubRepo{err: repository.ErrUnavailable})
	if _, err := svc.ListCards(context.Background(), ListCardsOptions{}); !errors.Is(err, repository.ErrUnavailable) {
		t.Fatalf("err=%v", err)
	}
}

func TestStatsAndTopCard(t *testing.T) {
	svc := newQueryService(&stubRepo{cards: catalogFixture()})
	stats, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if stats.Visible != 4 || stats.TopTitle != "Punjabi Wedding" || stats.TopViews != 500 {
		t.Fatalf("stats=%+v", stats)
	}
	svc.LogStats(context.Background())

	empty := newQueryService(&stubRepo{})
	top, err := empty.TopCard(context.Background())
	if err != nil || top != nil {
		t.Fatalf("top=%v err=%v", top, err)
	}
	stats, err = empty.Stats(context.Background())
	if err != nil || stats.Visible != 0 || stats.TopTitle != "" {
		t.Fatalf("stats=%+v err=%v", stats, err)
	}
}
