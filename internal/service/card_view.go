package service

import (
	"strings"

	"videocatalog/internal/config"
	"videocatalog/internal/models"
)

const (
	relatedRatingPlaceholder = "N/A"
	uncategorizedLabel       = "Uncategorized"
)

// CardView is a card as served by the listing endpoint.
type CardView struct {
	models.Card
	FormattedViews string `json:"formattedViews"`
	ThumbnailURL   string `json:"thumbnail_url"`
}

// CardDetailView is a card with its playable source and related cards.
type CardDetailView struct {
	CardView
	VideoURL      string        `json:"video_url"`
	RelatedVideos []RelatedCard `json:"relatedVideos"`
}

// RelatedCard is the read-only projection shown next to a card.
type RelatedCard struct {
	MySlug         string `json:"my_slug"`
	Title          string `json:"title"`
	NumberViews    int64  `json:"number_views"`
	FormattedViews string `json:"formattedViews"`
	Category       string `json:"category"`
	Rating         string `json:"rating"`
	ThumbnailURL   string `json:"thumbnail_url"`
}

func newCardView(cfg config.CatalogConfig, card models.Card) CardView {
	return CardView{
		Card:           card,
		FormattedViews: FormatViews(card.NumberViews),
		ThumbnailURL:   thumbnailURL(cfg, card.ImageLink),
	}
}

func newRelatedCard(cfg config.CatalogConfig, card models.Card) RelatedCard {
	category := card.Category
	if strings.TrimSpace(category) == "" {
		category = uncategorizedLabel
	}
	return RelatedCard{
		MySlug:         NormalizeSlug(card.MySlug),
		Title:          card.Title,
		NumberViews:    card.NumberViews,
		FormattedViews: FormatViews(card.NumberViews),
		Category:       category,
		Rating:         relatedRatingPlaceholder,
		ThumbnailURL:   thumbnailURL(cfg, card.ImageLink),
	}
}
