package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"go.uber.org/zap"

	"videocatalog/internal/config"
	"videocatalog/internal/models"
	"videocatalog/internal/repository"
)

const (
	// minCategoryMatches is the category tier size below which the keyword
	// tier is consulted.
	minCategoryMatches = 6
	maxTitleKeywords   = 5
	minKeywordRunes    = 4
)

type CardDetailService struct {
	Repo   repository.CardRepository
	Config config.CatalogConfig
	Logger *zap.Logger
}

// ResolveCard finds the visible card addressed by slug. mySlug is an optional
// second candidate sent by clients that already know the card's my_slug.
func (s *CardDetailService) ResolveCard(ctx context.Context, slug, mySlug string) (models.Card, error) {
	candidates := slugCandidates(slug, mySlug)
	if len(candidates) == 0 {
		return models.Card{}, ErrCardNotFound
	}
	cards, err := s.Repo.FindCardsByIdentifier(ctx, candidates, s.Config.MaxVisibleID)
	if err != nil {
		return models.Card{}, fmt.Errorf("find card %q: %w", slug, err)
	}
	card, ok := bestSlugMatch(cards, candidates)
	if !ok {
		return models.Card{}, ErrCardNotFound
	}
	return card, nil
}

// SelectRelated assembles up to maxResults cards related to card: same
// category first, then cards sharing a title keyword, then the most viewed
// cards overall. Each tier only runs while capacity remains.
func (s *CardDetailService) SelectRelated(ctx context.Context, card models.Card, maxResults int) ([]RelatedCard, error) {
	if maxResults <= 0 {
		maxResults = s.relatedLimit()
	}
	selected := make([]models.Card, 0, maxResults)
	exclude := []int64{card.ID}

	categoryCount := 0
	if category := strings.TrimSpace(card.Category); category != "" {
		items, err := s.Repo.ListCards(ctx, repository.ListCardsParams{
			MaxID:      s.Config.MaxVisibleID,
			Category:   &category,
			ExcludeIDs: exclude,
			Limit:      maxResults,
		})
		if err != nil {
			return nil, fmt.Errorf("related by category: %w", err)
		}
		selected, exclude = appendUnique(selected, exclude, items, maxResults)
		categoryCount = len(selected)
	}

	keywordCount := 0
	if categoryCount < minCategoryMatches && len(selected) < maxResults {
		if keywords := TitleKeywords(card.Title); len(keywords) > 0 {
			items, err := s.Repo.ListCards(ctx, repository.ListCardsParams{
				MaxID:      s.Config.MaxVisibleID,
				TitleAny:   keywords,
				ExcludeIDs: exclude,
				Limit:      maxResults - len(selected),
			})
			if err != nil {
				return nil, fmt.Errorf("related by keyword: %w", err)
			}
			before := len(selected)
			selected, exclude = appendUnique(selected, exclude, items, maxResults)
			keywordCount = len(selected) - before
		}
	}

	fallbackCount := 0
	if len(selected) < maxResults {
		items, err := s.Repo.ListCards(ctx, repository.ListCardsParams{
			MaxID:      s.Config.MaxVisibleID,
			ExcludeIDs: exclude,
			Limit:      maxResults - len(selected),
		})
		if err != nil {
			return nil, fmt.Errorf("related fallback: %w", err)
		}
		before := len(selected)
		selected, _ = appendUnique(selected, exclude, items, maxResults)
		fallbackCount = len(selected) - before
	}

	if s.Logger != nil {
		s.Logger.Debug("related cards selected",
			zap.Int64("card_id", card.ID),
			zap.Int("category", categoryCount),
			zap.Int("keyword", keywordCount),
			zap.Int("fallback", fallbackCount),
		)
	}

	out := make([]RelatedCard, 0, len(selected))
	for _, item := range selected {
		out = append(out, newRelatedCard(s.Config, item))
	}
	return out, nil
}

// GetCardDetail resolves a card and decorates it with its video source and
// related cards.
func (s *CardDetailService) GetCardDetail(ctx context.Context, slug, mySlug string) (CardDetailView, error) {
	card, err := s.ResolveCard(ctx, slug, mySlug)
	if err != nil {
		return CardDetailView{}, err
	}
	videoURL, err := s.videoURL(ctx, card)
	if err != nil {
		return CardDetailView{}, err
	}
	related, err := s.SelectRelated(ctx, card, s.relatedLimit())
	if err != nil {
		return CardDetailView{}, err
	}
	return CardDetailView{
		CardView:      newCardView(s.Config, card),
		VideoURL:      videoURL,
		RelatedVideos: related,
	}, nil
}

func (s *CardDetailService) videoURL(ctx context.Context, card models.Card) (string, error) {
	key := strings.ToLower(NormalizeSlug(card.MySlug))
	if key != "" {
		details, err := s.Repo.FindCardDetailsBySlug(ctx, key)
		if err != nil {
			return "", fmt.Errorf("find card detail %q: %w", key, err)
		}
		for _, d := range details {
			if strings.ToLower(NormalizeSlug(d.MySlug)) != key || d.VideoSrc == nil {
				continue
			}
			if src := strings.TrimSpace(*d.VideoSrc); src != "" {
				return src, nil
			}
		}
	}
	if s.Config.DefaultVideoURL != "" {
		return s.Config.DefaultVideoURL, nil
	}
	return config.DefaultVideoURL, nil
}

func (s *CardDetailService) relatedLimit() int {
	if s.Config.RelatedLimit > 0 {
		return s.Config.RelatedLimit
	}
	return config.DefaultRelatedLimit
}

// TitleKeywords extracts up to five lower-cased keywords longer than three
// characters from a title, ignoring punctuation.
func TitleKeywords(title string) []string {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			return r
		}
		return -1
	}, strings.ToLower(title))

	out := make([]string, 0, maxTitleKeywords)
	for _, token := range strings.Fields(cleaned) {
		if len([]rune(token)) < minKeywordRunes {
			continue
		}
		out = append(out, token)
		if len(out) == maxTitleKeywords {
			break
		}
	}
	return out
}

func appendUnique(selected []models.Card, exclude []int64, items []models.Card, limit int) ([]models.Card, []int64) {
	seen := make(map[int64]struct{}, len(exclude))
	for _, id := range exclude {
		seen[id] = struct{}{}
	}
	for _, item := range items {
		if len(selected) >= limit {
			break
		}
		if _, ok := seen[item.ID]; ok {
			continue
		}
		seen[item.ID] = struct{}{}
		selected = append(selected, item)
		exclude = append(exclude, item.ID)
	}
	return selected, exclude
}

// IsNotFound reports whether err means the slug matched no visible card.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrCardNotFound)
}
