package datasources

import (
	"context"

	"github.com/indievibes/vibefeed/internal/domain"
)

// CatalogRepository combines the read and queue operations served by the catalog database.
type CatalogRepository interface {
	GameFetcher
	RecentGameLister
	PinnedCollectionLister
	EnrichmentLister
	UserPreferencesGetter
	GameSubmissionEnqueuer
}

// GameFetcher returns the games found for ids, in the order requested.
// Unknown ids are omitted rather than reported as errors.
type GameFetcher interface {
	FetchGamesByID(ctx context.Context, ids []domain.GameID) ([]domain.Game, error)
}

type RecentGameLister interface {
	ListRecentlyUpdatedGameIDs(ctx context.Context, limit int) ([]domain.GameID, error)
}

type PinnedCollectionLister interface {
	ListPinnedCollections(ctx context.Context) ([]domain.CollectionPin, error)
}

type EnrichmentLister interface {
	ListEnrichmentItems(ctx context.Context, gameID domain.GameID, limit int) ([]domain.EnrichmentItem, error)
}

// UserPreferencesGetter returns stored preferences; users without any get the zero value.
type UserPreferencesGetter interface {
	GetUserPreferences(ctx context.Context, userID string) (domain.UserPreferences, error)
}

// GameSubmissionEnqueuer queues catalog ids for the external ingestion pipeline.
// It returns how many ids were newly queued.
type GameSubmissionEnqueuer interface {
	EnqueueGameSubmissions(ctx context.Context, appIDs []domain.GameID, submittedBy string) (int, error)
}
