package v1

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/rashidq/logistics-portal/internal/core/domain"
	"github.com/rashidq/logistics-portal/middleware"
)

// DefaultSearchLimit caps results when the caller does not pass a limit.
const DefaultSearchLimit = 10

// maxSuggestions caps the suggestion list.
const maxSuggestions = 5

// minSuggestionQueryRunes is the shortest query that yields suggestions.
const minSuggestionQueryRunes = 2

// searchSuggestions is the static Arabic suggestion list shown while typing.
var searchSuggestions = []string{
	"تجديد الإقامة",
	"نقل كفالة",
	"زيادة الرصيد",
	"تأشيرة خروج وعودة",
	"استقدام عمالة منزلية",
	"رخصة العمل",
	"تتبع الشحنات",
	"تجديد جواز السفر",
	"طلب تحويل",
	"إصدار تأشيرة زيارة",
}

// popularSearchTags is a curated static list. It is intentionally not derived
// from the search-query log.
var popularSearchTags = []string{
	"تجديد الإقامة",
	"نقل كفالة",
	"زيادة الرصيد",
	"تأشيرة خروج وعودة",
	"رخصة العمل",
}

// SearchService implements catalog search, suggestions, and query logging.
type SearchService struct {
	services domain.ServiceRepository
	log      domain.SearchLogRepository
	logger   *zap.Logger
}

// NewSearchService creates a search service over the injected repositories.
func NewSearchService(services domain.ServiceRepository, log domain.SearchLogRepository, logger *zap.Logger) *SearchService {
	return &SearchService{services: services, log: log, logger: logger}
}

// Search runs the bilingual substring search and logs the query in the
// background so the caller never waits on the log write.
func (s *SearchService) Search(ctx context.Context, query string, limit int) (*domain.SearchResponse, error) {
	ctx, span := middleware.StartSpan(ctx, "search.query", trace.WithAttributes(
		attribute.String("layer", "logic"),
		attribute.String("search.query", query),
	))
	defer span.End()

	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	results, err := s.services.SearchServices(ctx, query, limit)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("search services: %w", err)
	}

	span.SetAttributes(attribute.Int("search.results", len(results)))
	middleware.ObserveSearch(len(results))
	s.trackQuery(query, len(results))

	return &domain.SearchResponse{Results: results, Total: len(results)}, nil
}

// trackQuery writes the log entry on a detached context so a cancelled
// request context cannot lose the entry.
func (s *SearchService) trackQuery(query string, results int) {
	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := s.log.LogSearchQuery(bgCtx, query, results); err != nil && s.logger != nil {
			s.logger.Warn("Failed to log search query", zap.Error(err))
		}
	}()
}

// Suggestions filters the static suggestion list by substring match.
// Queries shorter than two runes return an empty list.
func (s *SearchService) Suggestions(ctx context.Context, query string) []string {
	_, span := middleware.StartSpan(ctx, "search.suggestions", trace.WithAttributes(
		attribute.String("layer", "logic"),
	))
	defer span.End()

	out := make([]string, 0, maxSuggestions)
	if utf8.RuneCountInString(query) < minSuggestionQueryRunes {
		return out
	}

	for _, suggestion := range searchSuggestions {
		if strings.Contains(suggestion, query) {
			out = append(out, suggestion)
			if len(out) >= maxSuggestions {
				break
			}
		}
	}

	span.SetAttributes(attribute.Int("suggestions.count", len(out)))
	return out
}

// PopularTags returns the static popular-tags list.
func (s *SearchService) PopularTags(ctx context.Context) []string {
	_, span := middleware.StartSpan(ctx, "search.popular_tags", trace.WithAttributes(
		attribute.String("layer", "logic"),
	))
	defer span.End()

	tags := make([]string, len(popularSearchTags))
	copy(tags, popularSearchTags)
	return tags
}
