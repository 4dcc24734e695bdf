package v1

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rashidq/logistics-portal/internal/core/repository/memory"
)

func newSearchService() *SearchService {
	store := memory.NewStore()
	store.SeedServices(memory.DefaultServices())
	return NewSearchService(store, store, nil)
}

func TestSearchAppliesDefaultLimit(t *testing.T) {
	ctx := context.Background()
	svc := newSearchService()

	resp, err := svc.Search(ctx, "transfer", 0)
	require.NoError(t, err)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, 1, resp.Total)
	assert.Equal(t, "Transfer Request", resp.Results[0].NameEn)
}

func TestSearchArabicQuery(t *testing.T) {
	ctx := context.Background()
	svc := newSearchService()

	resp, err := svc.Search(ctx, "زيادة", 10)
	require.NoError(t, err)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, "Topping Up", resp.Results[0].NameEn)
}

func TestSearchZeroResults(t *testing.T) {
	ctx := context.Background()
	svc := newSearchService()

	resp, err := svc.Search(ctx, "nonexistent-zzz", 10)
	require.NoError(t, err)
	assert.Empty(t, resp.Results)
	assert.Zero(t, resp.Total)
}

func TestSuggestionsShortQueryReturnsEmpty(t *testing.T) {
	ctx := context.Background()
	svc := newSearchService()

	// One Arabic rune is several bytes; the cutoff counts runes, not bytes.
	assert.Empty(t, svc.Suggestions(ctx, "ا"))
	assert.Empty(t, svc.Suggestions(ctx, ""))
}

func TestSuggestionsSubstringMatch(t *testing.T) {
	ctx := context.Background()
	svc := newSearchService()

	out := svc.Suggestions(ctx, "تجديد")
	require.NotEmpty(t, out)
	assert.Contains(t, out, "تجديد الإقامة")
	assert.LessOrEqual(t, len(out), 5)
}

func TestSuggestionsCappedAtFive(t *testing.T) {
	ctx := context.Background()
	svc := newSearchService()

	// Every entry in the static list contains one of these common letters.
	out := svc.Suggestions(ctx, "ال")
	assert.LessOrEqual(t, len(out), 5)
}

func TestPopularTagsStaticList(t *testing.T) {
	ctx := context.Background()
	svc := newSearchService()

	tags := svc.PopularTags(ctx)
	require.NotEmpty(t, tags)
	assert.Contains(t, tags, "تجديد الإقامة")

	// Callers get a copy, not the shared backing array.
	tags[0] = "mutated"
	assert.NotContains(t, svc.PopularTags(ctx), "mutated")
}
