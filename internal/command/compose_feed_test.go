package command

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/indievibes/vibefeed/internal/datasources/mocks"
	"github.com/indievibes/vibefeed/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testFacets = []domain.Facet{domain.FacetTone, domain.FacetAesthetic}

// fakeFinder answers ExecuteFacets from a fixed table. Facets without an
// entry report ErrNotFound.
type fakeFinder struct {
	mu      sync.Mutex
	calls   []domain.GameID
	results map[domain.GameID]map[domain.Facet]FacetResult
	hook    func(ctx context.Context)
}

func (f *fakeFinder) ExecuteFacets(
	ctx context.Context,
	gameID domain.GameID,
	facets []domain.Facet,
	_ float64,
	_ int,
) map[domain.Facet]FacetResult {
	f.mu.Lock()
	f.calls = append(f.calls, gameID)
	f.mu.Unlock()

	if f.hook != nil {
		f.hook(ctx)
	}

	out := make(map[domain.Facet]FacetResult, len(facets))
	for _, facet := range facets {
		if r, ok := f.results[gameID][facet]; ok {
			out[facet] = r
		} else {
			out[facet] = FacetResult{Err: fmt.Errorf("no embedding: %w", domain.ErrNotFound)}
		}
	}
	return out
}

func cand(id domain.GameID, facet domain.Facet, score float64, source domain.GameID) domain.SimilarityCandidate {
	return domain.SimilarityCandidate{GameID: id, Facet: facet, Score: score, SourceGameID: source}
}

func found(cands ...domain.SimilarityCandidate) FacetResult {
	return FacetResult{Candidates: cands}
}

type feedMocks struct {
	games      *mocks.MockGameFetcher
	recent     *mocks.MockRecentGameLister
	pins       *mocks.MockPinnedCollectionLister
	enrichment *mocks.MockEnrichmentLister
}

func newTestComposeFeed(t *testing.T, finder SimilarGamesFinder) (*ComposeFeed, feedMocks) {
	m := feedMocks{
		games:      mocks.NewMockGameFetcher(t),
		recent:     mocks.NewMockRecentGameLister(t),
		pins:       mocks.NewMockPinnedCollectionLister(t),
		enrichment: mocks.NewMockEnrichmentLister(t),
	}

	config := DefaultComposeFeedConfig()
	config.Facets = testFacets

	return &ComposeFeed{
		Matcher:     finder,
		Games:       m.games,
		RecentGames: m.recent,
		Pins:        m.pins,
		Enrichment:  m.enrichment,
		Config:      config,
	}, m
}

// catalogOf returns a FetchGamesByID implementation serving the given games.
func catalogOf(games ...domain.Game) func(context.Context, []domain.GameID) ([]domain.Game, error) {
	byID := map[domain.GameID]domain.Game{}
	for _, g := range games {
		byID[g.ID] = g
	}
	return func(_ context.Context, ids []domain.GameID) ([]domain.Game, error) {
		var out []domain.Game
		for _, id := range ids {
			if g, ok := byID[id]; ok {
				out = append(out, g)
			}
		}
		return out, nil
	}
}

func keysOf(entries []domain.FeedEntry) []string {
	keys := make([]string, 0, len(entries))
	for _, e := range entries {
		keys = append(keys, e.Item.IdentityKey())
	}
	return keys
}

func TestComposeFeed_Execute_RelatedFeed(t *testing.T) {
	finder := &fakeFinder{results: map[domain.GameID]map[domain.Facet]FacetResult{
		1: {
			domain.FacetTone:      found(cand(2, domain.FacetTone, 0.8, 1), cand(3, domain.FacetTone, 0.7, 1)),
			domain.FacetAesthetic: found(cand(3, domain.FacetAesthetic, 0.85, 1), cand(4, domain.FacetAesthetic, 0.5, 1)),
		},
	}}
	cmd, m := newTestComposeFeed(t, finder)

	m.pins.EXPECT().ListPinnedCollections(mock.Anything).Return([]domain.CollectionPin{
		{ID: 8, Slug: "second", Position: 1},
		{ID: 7, Slug: "first", Position: 0},
	}, nil)
	m.enrichment.EXPECT().ListEnrichmentItems(mock.Anything, domain.GameID(1), 20).Return([]domain.EnrichmentItem{
		{ID: 100, GameID: 1, ContentKind: domain.EnrichmentKindVideo, Relevance: 0.95},
		{ID: 101, GameID: 1, ContentKind: domain.EnrichmentKindSnippet, Relevance: 1.4},
	}, nil)
	// Game 4 is unknown to the catalog and must be dropped.
	m.games.EXPECT().FetchGamesByID(mock.Anything, mock.Anything).RunAndReturn(catalogOf(
		domain.Game{ID: 2, Title: "Two", Tags: []string{"Puzzle"}},
		domain.Game{ID: 3, Title: "Three", Tags: []string{"Roguelike"}},
	))

	resp, err := cmd.Execute(testContext(), ComposeFeedRequest{
		SeedGameID:  1,
		Preferences: domain.UserPreferences{FavoriteGenres: []string{"roguelike"}},
	})
	require.NoError(t, err)
	assert.Nil(t, resp.NextCursor)

	assert.Equal(t, []string{
		"collection:7", "collection:8", "enrichment:101", "enrichment:100", "game:3", "game:2",
	}, keysOf(resp.Items))

	assert.InDelta(t, 3.0, resp.Items[0].Score, 1e-9)
	assert.InDelta(t, 2.5, resp.Items[1].Score, 1e-9)
	assert.InDelta(t, 1.0, resp.Items[2].Score, 1e-9)
	assert.InDelta(t, 0.9, resp.Items[4].Score, 1e-9)
	assert.InDelta(t, 0.8, resp.Items[5].Score, 1e-9)

	// The best scoring candidate for game 3 is the one kept.
	find, ok := resp.Items[4].Item.(domain.GameFind)
	require.True(t, ok)
	assert.Equal(t, domain.FacetAesthetic, find.Candidate.Facet)
	assert.Equal(t, "Three", find.Game.Title)
	assert.Equal(t, domain.GameID(1), find.ProvenanceGameID())
}

func TestComposeFeed_Execute_PaginationMatchesFullFeed(t *testing.T) {
	var tone, aesthetic []domain.SimilarityCandidate
	var games []domain.Game
	for i := domain.GameID(2); i < 40; i++ {
		// Repeating scores exercise the identity key tie-break across page boundaries.
		tone = append(tone, cand(i, domain.FacetTone, 0.4+float64(i%5)/10, 1))
		if i%3 == 0 {
			aesthetic = append(aesthetic, cand(i, domain.FacetAesthetic, 0.45+float64(i%4)/10, 1))
		}
		games = append(games, domain.Game{ID: i, Tags: []string{fmt.Sprintf("tag%d", i%2)}})
	}
	var enrichment []domain.EnrichmentItem
	for i := int64(1); i <= 7; i++ {
		enrichment = append(enrichment, domain.EnrichmentItem{ID: i, GameID: 1, Relevance: float64(i%3) / 2})
	}

	finder := &fakeFinder{results: map[domain.GameID]map[domain.Facet]FacetResult{
		1: {domain.FacetTone: found(tone...), domain.FacetAesthetic: found(aesthetic...)},
	}}
	cmd, m := newTestComposeFeed(t, finder)
	m.pins.EXPECT().ListPinnedCollections(mock.Anything).Return([]domain.CollectionPin{{ID: 1}, {ID: 2, Position: 1}}, nil)
	m.enrichment.EXPECT().ListEnrichmentItems(mock.Anything, domain.GameID(1), 20).Return(enrichment, nil)
	m.games.EXPECT().FetchGamesByID(mock.Anything, mock.Anything).RunAndReturn(catalogOf(games...))

	prefs := domain.UserPreferences{PreferredThemes: []string{"tag1"}}

	full, err := cmd.Execute(testContext(), ComposeFeedRequest{SeedGameID: 1, PageSize: 100, Preferences: prefs})
	require.NoError(t, err)
	require.Nil(t, full.NextCursor)
	require.Len(t, full.Items, 2+7+38)

	seen := map[string]bool{}
	for _, e := range full.Items {
		key := e.Item.IdentityKey()
		assert.False(t, seen[key], "duplicate key %s", key)
		seen[key] = true
	}

	for _, pageSize := range []int{1, 4, 7, 46, 47} {
		t.Run(fmt.Sprintf("page_size_%d", pageSize), func(t *testing.T) {
			var paged []domain.FeedEntry
			cursor := ""
			for pages := 0; ; pages++ {
				require.Less(t, pages, 100, "pagination did not terminate")

				resp, err := cmd.Execute(testContext(), ComposeFeedRequest{
					SeedGameID:  1,
					PageSize:    pageSize,
					Cursor:      cursor,
					Preferences: prefs,
				})
				require.NoError(t, err)
				require.LessOrEqual(t, len(resp.Items), pageSize)
				paged = append(paged, resp.Items...)

				if resp.NextCursor == nil {
					break
				}
				require.Len(t, resp.Items, pageSize)
				cursor = *resp.NextCursor
			}
			assert.Equal(t, keysOf(full.Items), keysOf(paged))
		})
	}
}

func TestComposeFeed_Execute_DegradesOnFacetFailure(t *testing.T) {
	finder := &fakeFinder{results: map[domain.GameID]map[domain.Facet]FacetResult{
		1: {
			domain.FacetTone:      found(cand(2, domain.FacetTone, 0.8, 1)),
			domain.FacetAesthetic: {Err: fmt.Errorf("%w: store down", domain.ErrUpstream)},
		},
	}}
	cmd, m := newTestComposeFeed(t, finder)
	m.pins.EXPECT().ListPinnedCollections(mock.Anything).Return(nil, errors.New("db down"))
	m.enrichment.EXPECT().ListEnrichmentItems(mock.Anything, domain.GameID(1), 20).Return(nil, nil)
	m.games.EXPECT().FetchGamesByID(mock.Anything, []domain.GameID{2}).Return([]domain.Game{{ID: 2}}, nil)

	resp, err := cmd.Execute(testContext(), ComposeFeedRequest{SeedGameID: 1})
	require.NoError(t, err)
	assert.Equal(t, []string{"game:2"}, keysOf(resp.Items))
}

func TestComposeFeed_Execute_NotFoundStreamsAreEmpty(t *testing.T) {
	cmd, m := newTestComposeFeed(t, &fakeFinder{})
	m.pins.EXPECT().ListPinnedCollections(mock.Anything).Return(nil, nil)
	m.enrichment.EXPECT().ListEnrichmentItems(mock.Anything, domain.GameID(1), 20).Return(nil, nil)

	resp, err := cmd.Execute(testContext(), ComposeFeedRequest{SeedGameID: 1})
	require.NoError(t, err)
	assert.Empty(t, resp.Items)
	assert.Nil(t, resp.NextCursor)
}

func TestComposeFeed_Execute_AllStreamsFail(t *testing.T) {
	upstream := FacetResult{Err: fmt.Errorf("%w: timeout", domain.ErrUpstream)}
	finder := &fakeFinder{results: map[domain.GameID]map[domain.Facet]FacetResult{
		1: {domain.FacetTone: upstream, domain.FacetAesthetic: upstream},
	}}
	cmd, m := newTestComposeFeed(t, finder)
	m.pins.EXPECT().ListPinnedCollections(mock.Anything).Return(nil, errors.New("db down"))
	m.enrichment.EXPECT().ListEnrichmentItems(mock.Anything, domain.GameID(1), 20).Return(nil, errors.New("db down"))

	_, err := cmd.Execute(testContext(), ComposeFeedRequest{SeedGameID: 1})
	require.ErrorIs(t, err, domain.ErrComposeFailed)
}

func TestComposeFeed_Execute_HydrationFailure(t *testing.T) {
	finder := &fakeFinder{results: map[domain.GameID]map[domain.Facet]FacetResult{
		1: {domain.FacetTone: found(cand(2, domain.FacetTone, 0.8, 1))},
	}}

	t.Run("other_streams_survive", func(t *testing.T) {
		cmd, m := newTestComposeFeed(t, finder)
		m.pins.EXPECT().ListPinnedCollections(mock.Anything).Return([]domain.CollectionPin{{ID: 5}}, nil)
		m.enrichment.EXPECT().ListEnrichmentItems(mock.Anything, domain.GameID(1), 20).Return(nil, nil)
		m.games.EXPECT().FetchGamesByID(mock.Anything, mock.Anything).Return(nil, errors.New("db down"))

		resp, err := cmd.Execute(testContext(), ComposeFeedRequest{SeedGameID: 1})
		require.NoError(t, err)
		assert.Equal(t, []string{"collection:5"}, keysOf(resp.Items))
	})

	t.Run("counts_as_similarity_failure", func(t *testing.T) {
		// Tone is the only stream that succeeds, so the feed fails only if the
		// hydration error counts against it.
		failing := &fakeFinder{results: map[domain.GameID]map[domain.Facet]FacetResult{
			1: {
				domain.FacetTone:      found(cand(2, domain.FacetTone, 0.8, 1)),
				domain.FacetAesthetic: {Err: fmt.Errorf("%w: down", domain.ErrUpstream)},
			},
		}}
		cmd, m := newTestComposeFeed(t, failing)
		m.pins.EXPECT().ListPinnedCollections(mock.Anything).Return(nil, errors.New("db down"))
		m.enrichment.EXPECT().ListEnrichmentItems(mock.Anything, domain.GameID(1), 20).Return(nil, errors.New("db down"))
		m.games.EXPECT().FetchGamesByID(mock.Anything, mock.Anything).Return(nil, errors.New("db down"))

		_, err := cmd.Execute(testContext(), ComposeFeedRequest{SeedGameID: 1})
		require.ErrorIs(t, err, domain.ErrComposeFailed)
	})
}

func TestComposeFeed_Execute_HomeFeed(t *testing.T) {
	finder := &fakeFinder{results: map[domain.GameID]map[domain.Facet]FacetResult{
		5: {domain.FacetTone: found(cand(9, domain.FacetTone, 0.6, 5), cand(6, domain.FacetTone, 0.5, 5))},
		6: {domain.FacetAesthetic: found(cand(9, domain.FacetAesthetic, 0.75, 6))},
	}}
	cmd, m := newTestComposeFeed(t, finder)
	m.recent.EXPECT().ListRecentlyUpdatedGameIDs(mock.Anything, 3).Return([]domain.GameID{5, 6, 5}, nil)
	m.pins.EXPECT().ListPinnedCollections(mock.Anything).Return(nil, nil)
	m.games.EXPECT().FetchGamesByID(mock.Anything, mock.Anything).RunAndReturn(catalogOf(
		domain.Game{ID: 6}, domain.Game{ID: 9},
	))

	resp, err := cmd.Execute(testContext(), ComposeFeedRequest{})
	require.NoError(t, err)

	assert.ElementsMatch(t, []domain.GameID{5, 6}, finder.calls)
	assert.Equal(t, []string{"game:9", "game:6"}, keysOf(resp.Items))

	find := resp.Items[0].Item.(domain.GameFind)
	assert.Equal(t, domain.GameID(6), find.ProvenanceGameID())
	assert.InDelta(t, 0.75, resp.Items[0].Score, 1e-9)
}

func TestComposeFeed_Execute_HomeSeedFailure(t *testing.T) {
	t.Run("pins_still_served", func(t *testing.T) {
		finder := &fakeFinder{}
		cmd, m := newTestComposeFeed(t, finder)
		m.recent.EXPECT().ListRecentlyUpdatedGameIDs(mock.Anything, 3).Return(nil, errors.New("db down"))
		m.pins.EXPECT().ListPinnedCollections(mock.Anything).Return([]domain.CollectionPin{{ID: 3}}, nil)

		resp, err := cmd.Execute(testContext(), ComposeFeedRequest{})
		require.NoError(t, err)
		assert.Equal(t, []string{"collection:3"}, keysOf(resp.Items))
		assert.Empty(t, finder.calls)
	})

	t.Run("everything_failed", func(t *testing.T) {
		cmd, m := newTestComposeFeed(t, &fakeFinder{})
		m.recent.EXPECT().ListRecentlyUpdatedGameIDs(mock.Anything, 3).Return(nil, errors.New("db down"))
		m.pins.EXPECT().ListPinnedCollections(mock.Anything).Return(nil, errors.New("db down"))

		_, err := cmd.Execute(testContext(), ComposeFeedRequest{})
		require.ErrorIs(t, err, domain.ErrComposeFailed)
	})
}

func TestComposeFeed_Execute_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(testContext())
	defer cancel()

	finder := &fakeFinder{
		results: map[domain.GameID]map[domain.Facet]FacetResult{
			1: {domain.FacetTone: found(cand(2, domain.FacetTone, 0.8, 1))},
		},
		hook: func(context.Context) { cancel() },
	}
	cmd, m := newTestComposeFeed(t, finder)
	m.pins.EXPECT().ListPinnedCollections(mock.Anything).Return(nil, nil).Maybe()
	m.enrichment.EXPECT().ListEnrichmentItems(mock.Anything, domain.GameID(1), 20).Return(nil, nil).Maybe()

	resp, err := cmd.Execute(ctx, ComposeFeedRequest{SeedGameID: 1})
	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, resp.Items)
}

func TestComposeFeed_Execute_Validation(t *testing.T) {
	cases := []struct {
		name string
		req  ComposeFeedRequest
	}{
		{name: "negative_seed", req: ComposeFeedRequest{SeedGameID: -1}},
		{name: "garbage_cursor", req: ComposeFeedRequest{Cursor: "%%%"}},
		{name: "cursor_without_key", req: ComposeFeedRequest{Cursor: domain.FeedCursor{Score: 1}.Encode()}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cmd, _ := newTestComposeFeed(t, &fakeFinder{})

			_, err := cmd.Execute(testContext(), tc.req)
			require.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestComposeFeed_Execute_PageSize(t *testing.T) {
	var pins []domain.CollectionPin
	for i := int64(1); i <= 150; i++ {
		pins = append(pins, domain.CollectionPin{ID: i, Position: int(i)})
	}

	cases := []struct {
		name     string
		pageSize int
		want     int
	}{
		{name: "default", pageSize: 0, want: 20},
		{name: "explicit", pageSize: 5, want: 5},
		{name: "clamped", pageSize: 1000, want: 100},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cmd, m := newTestComposeFeed(t, &fakeFinder{})
			m.recent.EXPECT().ListRecentlyUpdatedGameIDs(mock.Anything, 3).Return(nil, nil)
			m.pins.EXPECT().ListPinnedCollections(mock.Anything).Return(pins, nil)

			resp, err := cmd.Execute(testContext(), ComposeFeedRequest{PageSize: tc.pageSize})
			require.NoError(t, err)
			assert.Len(t, resp.Items, tc.want)
			assert.NotNil(t, resp.NextCursor)
		})
	}
}

func TestPinScore(t *testing.T) {
	assert.InDelta(t, 3.0, PinScore(0), 1e-9)
	assert.InDelta(t, 2.5, PinScore(1), 1e-9)
	assert.InDelta(t, 3.0, PinScore(-4), 1e-9)
	assert.Greater(t, PinScore(1000), 2.0)
}
