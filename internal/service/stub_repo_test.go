package service

import (
	"context"
	"sort"
	"strings"

	"videocatalog/internal/models"
	"videocatalog/internal/repository"
)

// stubRepo is an in-memory CardRepository with the same filter and ordering
// semantics as the gorm store.
type stubRepo struct {
	cards   []models.Card
	details []models.CardDetail
	err     error

	listCalls []repository.ListCardsParams
	counts    int
}

func (r *stubRepo) match(p repository.ListCardsParams) []models.Card {
	excluded := map[int64]bool{}
	for _, id := range p.ExcludeIDs {
		excluded[id] = true
	}
	var out []models.Card
	for _, c := range r.cards {
		if p.MaxID > 0 && c.ID > p.MaxID {
			continue
		}
		if excluded[c.ID] {
			continue
		}
		if p.Category != nil && !containsFold(c.Category, *p.Category) {
			continue
		}
		if p.Search != nil && !containsFold(c.Title, *p.Search) && !containsFold(c.Category, *p.Search) {
			continue
		}
		if len(p.TitleAny) > 0 {
			hit := false
			for _, kw := range p.TitleAny {
				if containsFold(c.Title, kw) {
					hit = true
					break
				}
			}
			if !hit {
				continue
			}
		}
		out = append(out, c)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].NumberViews != out[j].NumberViews {
			return out[i].NumberViews > out[j].NumberViews
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (r *stubRepo) CountCards(_ context.Context, p repository.ListCardsParams) (int64, error) {
	r.counts++
	if r.err != nil {
		return 0, r.err
	}
	return int64(len(r.match(p))), nil
}

func (r *stubRepo) ListCards(_ context.Context, p repository.ListCardsParams) ([]models.Card, error) {
	r.listCalls = append(r.listCalls, p)
	if r.err != nil {
		return nil, r.err
	}
	items := r.match(p)
	limit := p.Limit
	if limit <= 0 {
		limit = 20
	}
	if p.Offset >= len(items) {
		return []models.Card{}, nil
	}
	items = items[p.Offset:]
	if len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

func (r *stubRepo) FindCardsByIdentifier(_ context.Context, slugs []string, maxID int64) ([]models.Card, error) {
	if r.err != nil {
		return nil, r.err
	}
	var out []models.Card
	for _, c := range r.cards {
		if maxID > 0 && c.ID > maxID {
			continue
		}
		for _, s := range slugs {
			if containsFold(c.RealSlug, s) || strings.HasPrefix(strings.ToLower(c.MySlug), strings.ToLower(s)) {
				out = append(out, c)
				break
			}
		}
	}
	return out, nil
}

func (r *stubRepo) FindCardDetailsBySlug(_ context.Context, slug string) ([]models.CardDetail, error) {
	if r.err != nil {
		return nil, r.err
	}
	var out []models.CardDetail
	for _, d := range r.details {
		if strings.HasPrefix(strings.ToLower(d.MySlug), strings.ToLower(slug)) {
			out = append(out, d)
		}
	}
	return out, nil
}

func (r *stubRepo) Ping(context.Context) error { return r.err }

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(strings.TrimSpace(sub)))
}

func strPtr(s string) *string { return &s }

var _ repository.CardRepository = (*stubRepo)(nil)
