package gormrepository

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"videocatalog/internal/models"
	"videocatalog/internal/repository"
)

const (
	defaultListLimit = 20
	maxListLimit     = 500
)

// likeEscaper neutralises LIKE wildcards in user input. '!' is used as the
// escape character because backslash handling differs between dialects.
var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) CountCards(ctx context.Context, params repository.ListCardsParams) (int64, error) {
	if s == nil || s.db == nil {
		return 0, repository.ErrUnavailable
	}
	query := applyCardFilter(s.db.WithContext(ctx).Model(&models.Card{}), params)
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return 0, wrapErr(err)
	}
	return total, nil
}

func (s *Store) ListCards(ctx context.Context, params repository.ListCardsParams) ([]models.Card, error) {
	if s == nil || s.db == nil {
		return nil, repository.ErrUnavailable
	}
	query := applyCardFilter(s.db.WithContext(ctx).Model(&models.Card{}), params)
	query = applyPopularityOrder(query)
	limit := normalizeLimit(params.Limit, defaultListLimit)
	offset := normalizeOffset(params.Offset)
	items := make([]models.Card, 0, limit)
	if err := query.Limit(limit).Offset(offset).Find(&items).Error; err != nil {
		return nil, wrapErr(err)
	}
	return items, nil
}

func (s *Store) FindCardsByIdentifier(ctx context.Context, slugs []string, maxID int64) ([]models.Card, error) {
	if s == nil || s.db == nil {
		return nil, repository.ErrUnavailable
	}
	slugs = cleanStrings(slugs)
	if len(slugs) == 0 {
		return nil, nil
	}
	clauses := make([]string, 0, len(slugs))
	args := make([]any, 0, len(slugs)*2)
	for _, slug := range slugs {
		clauses = append(clauses, "LOWER(real_slug) LIKE ? ESCAPE '!' OR LOWER(my_slug) LIKE ? ESCAPE '!'")
		args = append(args, containsPattern(slug), prefixPattern(slug))
	}
	query := s.db.WithContext(ctx).
		Model(&models.Card{}).
		Where("("+strings.Join(clauses, " OR ")+")", args...)
	if maxID > 0 {
		query = query.Where("id <= ?", maxID)
	}
	var items []models.Card
	if err := query.Order("id asc").Find(&items).Error; err != nil {
		return nil, wrapErr(err)
	}
	return items, nil
}

func (s *Store) FindCardDetailsBySlug(ctx context.Context, slug string) ([]models.CardDetail, error) {
	if s == nil || s.db == nil {
		return nil, repository.ErrUnavailable
	}
	if strings.TrimSpace(slug) == "" {
		return nil, nil
	}
	var items []models.CardDetail
	err := s.db.WithContext(ctx).
		Model(&models.CardDetail{}).
		Where("LOWER(my_slug) LIKE ? ESCAPE '!'", prefixPattern(slug)).
		Order("id asc").
		Find(&items).Error
	if err != nil {
		return nil, wrapErr(err)
	}
	return items, nil
}

func (s *Store) Ping(ctx context.Context) error {
	if s == nil || s.db == nil {
		return repository.ErrUnavailable
	}
	sqlDB, err := s.db.DB()
	if err != nil {
		return wrapErr(err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: %w", repository.ErrUnavailable, err)
	}
	return nil
}

func applyCardFilter(query *gorm.DB, params repository.ListCardsParams) *gorm.DB {
	if params.MaxID > 0 {
		query = query.Where("id <= ?", params.MaxID)
	}
	if params.Category != nil && strings.TrimSpace(*params.Category) != "" {
		query = query.Where("LOWER(category) LIKE ? ESCAPE '!'", containsPattern(*params.Category))
	}
	if params.Search != nil && strings.TrimSpace(*params.Search) != "" {
		pattern := containsPattern(*params.Search)
		query = query.Where("(LOWER(title) LIKE ? ESCAPE '!' OR LOWER(category) LIKE ? ESCAPE '!')", pattern, pattern)
	}
	if keywords := cleanStrings(params.TitleAny); len(keywords) > 0 {
		clauses := make([]string, 0, len(keywords))
		args := make([]any, 0, len(keywords))
		for _, kw := range keywords {
			clauses = append(clauses, "LOWER(title) LIKE ? ESCAPE '!'")
			args = append(args, containsPattern(kw))
		}
		query = query.Where("("+strings.Join(clauses, " OR ")+")", args...)
	}
	if len(params.ExcludeIDs) > 0 {
		query = query.Where("id NOT IN ?", params.ExcludeIDs)
	}
	return query
}

// applyPopularityOrder is the single ordering used by every listing so pages
// stay stable across identical requests.
func applyPopularityOrder(query *gorm.DB) *gorm.DB {
	return query.Order("number_views desc").Order("id asc")
}

func containsPattern(value string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(strings.TrimSpace(value))) + "%"
}

func prefixPattern(value string) string {
	return likeEscaper.Replace(strings.ToLower(strings.TrimSpace(value))) + "%"
}

func wrapErr(err error) error {
	if err == nil {
		return nil
	}
	if isUnavailable(err) {
		return fmt.Errorf("%w: %w", repository.ErrUnavailable, err)
	}
	return err
}

func isUnavailable(err error) bool {
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, sql.ErrConnDone) {
		return true
	}
	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	// database/sql does not export its closed-pool error.
	return strings.Contains(err.Error(), "sql: database is closed")
}

func normalizeLimit(limit, fallback int) int {
	if limit <= 0 {
		return fallback
	}
	if limit > maxListLimit {
		return maxListLimit
	}
	return limit
}

func normalizeOffset(offset int) int {
	if offset < 0 {
		return 0
	}
	return offset
}

func cleanStrings(items []string) []string {
	out := make([]string, 0, len(items))
	seen := map[string]struct{}{}
	for _, raw := range items {
		val := strings.TrimSpace(raw)
		if val == "" {
			continue
		}
		if _, ok := seen[val]; ok {
			continue
		}
		seen[val] = struct{}{}
		out = append(out, val)
	}
	return out
}

var _ repository.CardRepository = (*Store)(nil)
