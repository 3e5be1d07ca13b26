package repository

import (
	"context"
	"errors"

	"videocatalog/internal/models"
)

// ErrUnavailable marks failures where the backing store could not be reached.
// Callers surface it as "service unavailable" and do not retry.
var ErrUnavailable = errors.New("catalog store unavailable")

// CardRepository is the read-only storage boundary of the catalog.
//
// Every method restricts results to the visibility window (id <= MaxID) and
// orders by number_views descending, then id ascending. Substring filters are
// case-insensitive and treat their input literally.
type CardRepository interface {
	CountCards(ctx context.Context, params ListCardsParams) (int64, error)
	ListCards(ctx context.Context, params ListCardsParams) ([]models.Card, error)
	// FindCardsByIdentifier returns the coarse candidate set for slug lookup:
	// cards whose real_slug contains any slug or whose my_slug starts with any
	// slug. Exact matching is left to the caller.
	FindCardsByIdentifier(ctx context.Context, slugs []string, maxID int64) ([]models.Card, error)
	// FindCardDetailsBySlug returns detail rows whose my_slug starts with slug.
	FindCardDetailsBySlug(ctx context.Context, slug string) ([]models.CardDetail, error)
	Ping(ctx context.Context) error
}

type ListCardsParams struct {
	// MaxID is the inclusive upper bound of visible ids; <= 0 disables it.
	MaxID      int64
	Category   *string
	Search     *string
	TitleAny   []string
	ExcludeIDs []int64
	Limit      int
	Offset     int
}
