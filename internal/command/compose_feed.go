package command

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/indievibes/vibefeed/internal/datasources"
	"github.com/indievibes/vibefeed/internal/domain"
	"github.com/indievibes/vibefeed/internal/metrics"
	"golang.org/x/sync/errgroup"
)

// SimilarGamesFinder is the part of FindSimilarGames the feed depends on.
type SimilarGamesFinder interface {
	ExecuteFacets(
		ctx context.Context,
		gameID domain.GameID,
		facets []domain.Facet,
		threshold float64,
		limit int,
	) map[domain.Facet]FacetResult
}

type ComposeFeedConfig struct {
	// Facets queried for every seed game.
	Facets []domain.Facet
	// Threshold is the minimum similarity for a game to enter the feed.
	Threshold float64
	// CandidatesPerFacet bounds each similarity stream.
	CandidatesPerFacet int
	// HomeSeedCount is how many recently updated games seed the home feed.
	HomeSeedCount int
	// EnrichmentLimit bounds the enrichment stream of a related feed.
	EnrichmentLimit int
	DefaultPageSize int
	MaxPageSize     int
	Personalization domain.PersonalizationConfig
}

func DefaultComposeFeedConfig() ComposeFeedConfig {
	return ComposeFeedConfig{
		Facets:             domain.DefaultFeedFacets,
		Threshold:          0.4,
		CandidatesPerFacet: 50,
		HomeSeedCount:      3,
		EnrichmentLimit:    20,
		DefaultPageSize:    20,
		MaxPageSize:        100,
		Personalization:    domain.DefaultPersonalizationConfig(),
	}
}

type ComposeFeedRequest struct {
	// SeedGameID selects a feed related to one game; zero selects the home feed.
	SeedGameID domain.GameID
	PageSize   int
	// Cursor is the opaque token from a previous page, or empty for the first page.
	Cursor      string
	Preferences domain.UserPreferences
}

type ComposeFeedResponse struct {
	Items []domain.FeedEntry
	// NextCursor is nil when no entries remain after Items.
	NextCursor *string
}

// ComposeFeed merges similarity finds, enrichment and pinned collections into
// one ranked, deduplicated and paginated feed.
type ComposeFeed struct {
	Matcher     SimilarGamesFinder
	Games       datasources.GameFetcher
	RecentGames datasources.RecentGameLister
	Pins        datasources.PinnedCollectionLister
	Enrichment  datasources.EnrichmentLister
	Config      ComposeFeedConfig
	Metrics     *metrics.Metrics
}

var _ Command[ComposeFeedRequest, ComposeFeedResponse] = (*ComposeFeed)(nil)

func NewComposeFeed(
	matcher SimilarGamesFinder,
	catalog datasources.CatalogRepository,
	config ComposeFeedConfig,
	m *metrics.Metrics,
) *ComposeFeed {
	return &ComposeFeed{
		Matcher:     matcher,
		Games:       catalog,
		RecentGames: catalog,
		Pins:        catalog,
		Enrichment:  catalog,
		Config:      config,
		Metrics:     m,
	}
}

const (
	streamPinned     = "pinned"
	streamEnrichment = "enrichment"
	streamSeeds      = "seeds"
	streamSimilarity = "similarity"
)

// streamTally counts attempted and failed candidate streams for one request.
type streamTally struct {
	mu        sync.Mutex
	attempted int
	failed    int
}

func (t *streamTally) record(ok bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.attempted++
	if !ok {
		t.failed++
	}
}

type similarityStream struct {
	seed       domain.GameID
	facet      domain.Facet
	candidates []domain.SimilarityCandidate
}

func (c *ComposeFeed) Execute(ctx context.Context, req ComposeFeedRequest) (ComposeFeedResponse, error) {
	pageSize, cursor, err := c.validate(req)
	if err != nil {
		return ComposeFeedResponse{}, err
	}

	entries, err := c.compose(ctx, req)
	if err != nil {
		return ComposeFeedResponse{}, err
	}

	resp := paginate(entries, cursor, pageSize)
	c.Metrics.ObserveFeedPage(len(resp.Items))
	return resp, nil
}

func (c *ComposeFeed) validate(req ComposeFeedRequest) (int, *domain.FeedCursor, error) {
	if req.SeedGameID < 0 {
		return 0, nil, fmt.Errorf("%w: seed game id [%d] must be positive", domain.ErrValidation, req.SeedGameID)
	}

	pageSize := req.PageSize
	switch {
	case pageSize <= 0:
		pageSize = c.Config.DefaultPageSize
	case pageSize > c.Config.MaxPageSize:
		pageSize = c.Config.MaxPageSize
	}

	if req.Cursor == "" {
		return pageSize, nil, nil
	}
	cursor, err := domain.DecodeFeedCursor(req.Cursor)
	if err != nil {
		return 0, nil, err
	}
	return pageSize, &cursor, nil
}

func (c *ComposeFeed) compose(ctx context.Context, req ComposeFeedRequest) ([]domain.FeedEntry, error) {
	logger := domain.LoggerFromContext(ctx)
	tally := &streamTally{}

	seeds, err := c.seeds(ctx, req.SeedGameID)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("composing feed: %w", ctx.Err())
		}
		logger.WarnContext(ctx, "listing feed seeds failed", "error", err)
		c.Metrics.ObserveFeedStream(streamSeeds, "error")
		tally.record(false)
	}

	var (
		pins       []domain.CollectionPin
		enrichment []domain.EnrichmentItem
		mu         sync.Mutex
		similar    []similarityStream
	)

	var g errgroup.Group
	g.SetLimit(max(len(c.Config.Facets), 1))

	g.Go(func() error {
		result, err := c.Pins.ListPinnedCollections(ctx)
		if c.recordStream(ctx, tally, streamPinned, err) {
			pins = result
		}
		return nil
	})

	if req.SeedGameID != 0 {
		g.Go(func() error {
			result, err := c.Enrichment.ListEnrichmentItems(ctx, req.SeedGameID, c.Config.EnrichmentLimit)
			if c.recordStream(ctx, tally, streamEnrichment, err) {
				enrichment = result
			}
			return nil
		})
	}

	for _, seed := range seeds {
		g.Go(func() error {
			byFacet := c.Matcher.ExecuteFacets(ctx, seed, c.Config.Facets, c.Config.Threshold, c.Config.CandidatesPerFacet)
			for _, facet := range c.Config.Facets {
				result, ok := byFacet[facet]
				if !ok || !c.recordStream(ctx, tally, streamSimilarity, result.Err) {
					continue
				}
				mu.Lock()
				similar = append(similar, similarityStream{seed: seed, facet: facet, candidates: result.Candidates})
				mu.Unlock()
			}
			return nil
		})
	}

	_ = g.Wait()

	// Partial results of a cancelled request are discarded.
	if ctx.Err() != nil {
		return nil, fmt.Errorf("composing feed: %w", ctx.Err())
	}

	finds, err := c.hydrate(ctx, similar)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("composing feed: %w", ctx.Err())
		}
		logger.WarnContext(ctx, "hydrating game finds failed", "error", err, "streams", len(similar))
		c.Metrics.ObserveFeedStream(streamSimilarity, "hydration_error")
		tally.mu.Lock()
		tally.failed += len(similar)
		tally.mu.Unlock()
		finds = nil
	}

	if tally.attempted > 0 && tally.failed == tally.attempted {
		return nil, fmt.Errorf("%w: all %d candidate streams failed", domain.ErrComposeFailed, tally.attempted)
	}

	profile := domain.NewPersonalizationProfile(req.Preferences, c.Config.Personalization)
	return rankFeed(profile, finds, enrichment, pins), nil
}

// seeds returns the games whose similarity streams feed this request.
func (c *ComposeFeed) seeds(ctx context.Context, seed domain.GameID) ([]domain.GameID, error) {
	if seed != 0 {
		return []domain.GameID{seed}, nil
	}
	if c.Config.HomeSeedCount <= 0 {
		return nil, nil
	}

	ids, err := c.RecentGames.ListRecentlyUpdatedGameIDs(ctx, c.Config.HomeSeedCount)
	if err != nil {
		return nil, fmt.Errorf("listing recently updated games: %w", err)
	}

	seen := make(map[domain.GameID]bool, len(ids))
	seeds := make([]domain.GameID, 0, len(ids))
	for _, id := range ids {
		if id > 0 && !seen[id] {
			seen[id] = true
			seeds = append(seeds, id)
		}
	}
	return seeds, nil
}

// recordStream tallies one stream outcome and reports whether its result is usable.
// A missing resource is an empty success.
func (c *ComposeFeed) recordStream(ctx context.Context, tally *streamTally, kind string, err error) bool {
	switch {
	case err == nil:
		c.Metrics.ObserveFeedStream(kind, "ok")
		tally.record(true)
		return true
	case errors.Is(err, domain.ErrNotFound):
		c.Metrics.ObserveFeedStream(kind, "not_found")
		tally.record(true)
		return false
	default:
		if ctx.Err() == nil {
			domain.LoggerFromContext(ctx).WarnContext(ctx, "feed stream failed", "stream", kind, "error", err)
		}
		c.Metrics.ObserveFeedStream(kind, "error")
		tally.record(false)
		return false
	}
}

// hydrate resolves candidates to catalog games with a single batch fetch.
// Candidates the catalog does not know are dropped.
func (c *ComposeFeed) hydrate(ctx context.Context, streams []similarityStream) ([]domain.GameFind, error) {
	var ids []domain.GameID
	seen := map[domain.GameID]bool{}
	for _, s := range streams {
		for _, cand := range s.candidates {
			if !seen[cand.GameID] {
				seen[cand.GameID] = true
				ids = append(ids, cand.GameID)
			}
		}
	}
	if len(ids) == 0 {
		return nil, nil
	}

	games, err := c.Games.FetchGamesByID(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("fetching candidate games: %w", err)
	}

	byID := make(map[domain.GameID]domain.Game, len(games))
	for _, game := range games {
		byID[game.ID] = game
	}

	var finds []domain.GameFind
	for _, s := range streams {
		for _, cand := range s.candidates {
			if game, ok := byID[cand.GameID]; ok {
				finds = append(finds, domain.GameFind{Game: game, Candidate: cand})
			}
		}
	}
	return finds, nil
}

// PinScore ranks pinned collections above every other item, in curated order.
func PinScore(position int) float64 {
	if position < 0 {
		position = 0
	}
	return 2 + 1/float64(position+1)
}

// rankFeed scores every item, keeps the best-scored entry per identity key and
// sorts the result into feed order.
func rankFeed(
	profile domain.PersonalizationProfile,
	finds []domain.GameFind,
	enrichment []domain.EnrichmentItem,
	pins []domain.CollectionPin,
) []domain.FeedEntry {
	best := make(map[string]domain.FeedEntry, len(finds)+len(enrichment)+len(pins))
	add := func(item domain.FeedItem, score float64) {
		key := item.IdentityKey()
		if prev, ok := best[key]; ok && prev.Score >= score {
			return
		}
		best[key] = domain.FeedEntry{Item: item, Score: score}
	}

	for _, f := range finds {
		add(f, f.Candidate.Score+profile.BonusFor(f.Game.Tags))
	}
	for _, e := range enrichment {
		add(e, clampUnit(e.Relevance))
	}
	for _, p := range pins {
		add(p, PinScore(p.Position))
	}

	entries := make([]domain.FeedEntry, 0, len(best))
	for _, e := range best {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool {
		return domain.FeedEntryLess(entries[i], entries[j])
	})
	return entries
}

func paginate(entries []domain.FeedEntry, cursor *domain.FeedCursor, pageSize int) ComposeFeedResponse {
	start := 0
	if cursor != nil {
		start = sort.Search(len(entries), func(i int) bool {
			return !cursor.Precedes(entries[i])
		})
	}

	rest := entries[start:]
	if len(rest) <= pageSize {
		return ComposeFeedResponse{Items: rest}
	}

	page := rest[:pageSize]
	next := domain.CursorAfter(page[len(page)-1]).Encode()
	return ComposeFeedResponse{Items: page, NextCursor: &next}
}
