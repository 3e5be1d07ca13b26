package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"videocatalog/internal/config"
	"videocatalog/internal/repository"
)

const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
	// CategoryAll disables the category filter.
	CategoryAll = "all"
)

type CatalogQueryService struct {
	Repo   repository.CardRepository
	Config config.CatalogConfig
	Logger *zap.Logger
}

type ListCardsOptions struct {
	Category string
	Search   string
	// Limit 0 means the default page size; other values are clamped to
	// [1, MaxPageLimit]. Negative offsets are treated as 0.
	Limit  int
	Offset int
}

type CardPage struct {
	Items  []CardView
	Total  int64
	Limit  int
	Offset int
}

type CatalogStats struct {
	Visible      int64
	TopTitle     string
	TopViews     int64
	TopThumbnail string
}

// NormalizePage applies the listing's permissive pagination policy.
func NormalizePage(limit, offset int) (int, int) {
	switch {
	case limit == 0:
		limit = DefaultPageLimit
	case limit < 1:
		limit = 1
	case limit > MaxPageLimit:
		limit = MaxPageLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

func (s *CatalogQueryService) ListCards(ctx context.Context, opts ListCardsOptions) (CardPage, error) {
	limit, offset := NormalizePage(opts.Limit, opts.Offset)
	params := repository.ListCardsParams{
		MaxID:  s.Config.MaxVisibleID,
		Limit:  limit,
		Offset: offset,
	}
	if category := strings.TrimSpace(opts.Category); category != "" && !strings.EqualFold(category, CategoryAll) {
		params.Category = &category
	}
	if search := strings.TrimSpace(opts.Search); search != "" {
		params.Search = &search
	}

	total, err := s.Repo.CountCards(ctx, params)
	if err != nil {
		return CardPage{}, fmt.Errorf("count cards: %w", err)
	}
	page := CardPage{Items: []CardView{}, Total: total, Limit: limit, Offset: offset}
	if int64(offset) >= total {
		return page, nil
	}
	items, err := s.Repo.ListCards(ctx, params)
	if err != nil {
		return CardPage{}, fmt.Errorf("list cards: %w", err)
	}
	page.Items = make([]CardView, 0, len(items))
	for _, item := range items {
		page.Items = append(page.Items, newCardView(s.Config, item))
	}
	return page, nil
}

// TopCard returns the most viewed visible card, or nil for an empty catalog.
func (s *CatalogQueryService) TopCard(ctx context.Context) (*CardView, error) {
	items, err := s.Repo.ListCards(ctx, repository.ListCardsParams{
		MaxID: s.Config.MaxVisibleID,
		Limit: 1,
	})
	if err != nil {
		return nil, fmt.Errorf("top card: %w", err)
	}
	if len(items) == 0 {
		return nil, nil
	}
	view := newCardView(s.Config, items[0])
	return &view, nil
}

func (s *CatalogQueryService) Stats(ctx context.Context) (CatalogStats, error) {
	total, err := s.Repo.CountCards(ctx, repository.ListCardsParams{MaxID: s.Config.MaxVisibleID})
	if err != nil {
		return CatalogStats{}, fmt.Errorf("count visible cards: %w", err)
	}
	stats := CatalogStats{Visible: total}
	if total == 0 {
		return stats, nil
	}
	top, err := s.TopCard(ctx)
	if err != nil {
		return CatalogStats{}, err
	}
	if top != nil {
		stats.TopTitle = top.Title
		stats.TopViews = top.NumberViews
		stats.TopThumbnail = top.ThumbnailURL
	}
	return stats, nil
}

// LogStats reports catalog size and the top card's thumbnail.
func (s *CatalogQueryService) LogStats(ctx context.Context) {
	if s.Logger == nil {
		return
	}
	stats, err := s.Stats(ctx)
	if err != nil {
		s.Logger.Warn("catalog stats failed", zap.Error(err))
		return
	}
	s.Logger.Info("catalog stats",
		zap.Int64("visible_cards", stats.Visible),
		zap.Int64("max_visible_id", s.Config.MaxVisibleID),
		zap.String("top_title", stats.TopTitle),
		zap.Int64("top_views", stats.TopViews),
		zap.String("top_thumbnail", stats.TopThumbnail),
	)
}
