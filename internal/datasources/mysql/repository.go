package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/huandu/go-sqlbuilder"
	"github.com/indievibes/vibefeed/internal/datasources"
	"github.com/indievibes/vibefeed/internal/domain"
)

var _ datasources.CatalogRepository = (*Repository)(nil)

type Repository struct {
	db  *sql.DB
	now func() time.Time
}

func New(db *sql.DB) *Repository {
	return &Repository{db: db, now: time.Now}
}

func (r *Repository) FetchGamesByID(ctx context.Context, ids []domain.GameID) ([]domain.Game, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	sb := sqlbuilder.Select(
		"id", "title", "short_description", "long_description",
		"header_image_url", "screenshot_urls", "video_urls", "updated_at",
	)
	sb.From("games")
	sb.Where(sb.In("id", gameIDArgs(ids)...))

	query, args := sb.Build()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("fetching games by ID: %w", err)
	}
	defer func() { _ = rows.Close() }()

	gameMap := make(map[domain.GameID]domain.Game, len(ids))
	for rows.Next() {
		var (
			game                  domain.Game
			longDesc, headerImage sql.NullString
			screenshots, videos   []byte
		)
		if err := rows.Scan(
			&game.ID,
			&game.Title,
			&game.ShortDescription,
			&longDesc,
			&headerImage,
			&screenshots,
			&videos,
			&game.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning games: %w", err)
		}
		game.LongDescription = longDesc.String
		game.HeaderImageURL = headerImage.String
		if game.ScreenshotURLs, err = decodeStringList(screenshots); err != nil {
			return nil, fmt.Errorf("decoding screenshots of game [%d]: %w", game.ID, err)
		}
		if game.VideoURLs, err = decodeStringList(videos); err != nil {
			return nil, fmt.Errorf("decoding videos of game [%d]: %w", game.ID, err)
		}
		game.Tags = []string{}
		gameMap[game.ID] = game
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating game rows: %w", err)
	}

	if err := r.attachTags(ctx, gameMap); err != nil {
		return nil, err
	}

	// Build results in the same order as the input ids
	games := make([]domain.Game, 0, len(gameMap))
	seen := make(map[domain.GameID]bool, len(ids))
	for _, id := range ids {
		if game, ok := gameMap[id]; ok && !seen[id] {
			seen[id] = true
			games = append(games, game)
		}
	}

	return games, nil
}

func (r *Repository) attachTags(ctx context.Context, games map[domain.GameID]domain.Game) error {
	if len(games) == 0 {
		return nil
	}

	ids := make([]domain.GameID, 0, len(games))
	for id := range games {
		ids = append(ids, id)
	}

	sb := sqlbuilder.Select("game_id", "tag")
	sb.From("game_tags")
	sb.Where(sb.In("game_id", gameIDArgs(ids)...))
	sb.OrderBy("game_id", "tag")

	query, args := sb.Build()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("fetching game tags: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var (
			id  domain.GameID
			tag string
		)
		if err := rows.Scan(&id, &tag); err != nil {
			return fmt.Errorf("scanning game tags: %w", err)
		}
		game := games[id]
		game.Tags = append(game.Tags, tag)
		games[id] = game
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating game tag rows: %w", err)
	}

	return nil
}

func (r *Repository) ListRecentlyUpdatedGameIDs(ctx context.Context, limit int) ([]domain.GameID, error) {
	sb := sqlbuilder.Select("id")
	sb.From("games")
	sb.OrderBy("updated_at DESC", "id ASC")
	sb.Limit(limit)

	query, args := sb.Build()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing recently updated games: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var ids []domain.GameID
	for rows.Next() {
		var id domain.GameID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning game id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating game id rows: %w", err)
	}

	return ids, nil
}

func (r *Repository) ListPinnedCollections(ctx context.Context) ([]domain.CollectionPin, error) {
	sb := sqlbuilder.Select("id", "slug", "name", "position")
	sb.From("collections")
	sb.Where(sb.Equal("pinned", true))
	sb.OrderBy("position ASC", "id ASC")

	query, args := sb.Build()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing pinned collections: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var pins []domain.CollectionPin
	index := map[int64]int{}
	for rows.Next() {
		var pin domain.CollectionPin
		if err := rows.Scan(&pin.ID, &pin.Slug, &pin.Name, &pin.Position); err != nil {
			return nil, fmt.Errorf("scanning pinned collection: %w", err)
		}
		index[pin.ID] = len(pins)
		pins = append(pins, pin)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating pinned collection rows: %w", err)
	}
	if len(pins) == 0 {
		return nil, nil
	}

	collectionIDs := make([]interface{}, 0, len(pins))
	for _, pin := range pins {
		collectionIDs = append(collectionIDs, pin.ID)
	}

	gb := sqlbuilder.Select("collection_id", "game_id")
	gb.From("collection_games")
	gb.Where(gb.In("collection_id", collectionIDs...))
	gb.OrderBy("collection_id ASC", "position ASC", "game_id ASC")

	query, args = gb.Build()
	gameRows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing collection games: %w", err)
	}
	defer func() { _ = gameRows.Close() }()

	for gameRows.Next() {
		var (
			collectionID int64
			gameID       domain.GameID
		)
		if err := gameRows.Scan(&collectionID, &gameID); err != nil {
			return nil, fmt.Errorf("scanning collection game: %w", err)
		}
		if i, ok := index[collectionID]; ok {
			pins[i].GameIDs = append(pins[i].GameIDs, gameID)
		}
	}
	if err := gameRows.Err(); err != nil {
		return nil, fmt.Errorf("iterating collection game rows: %w", err)
	}

	return pins, nil
}

func (r *Repository) ListEnrichmentItems(
	ctx context.Context,
	gameID domain.GameID,
	limit int,
) ([]domain.EnrichmentItem, error) {
	sb := sqlbuilder.Select("id", "game_id", "kind", "title", "body", "url", "relevance", "published_at", "extra")
	sb.From("enrichment_items")
	sb.Where(sb.Equal("game_id", int64(gameID)))
	sb.OrderBy("relevance DESC", "id ASC")
	sb.Limit(limit)

	query, args := sb.Build()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing enrichment items for game [%d]: %w", gameID, err)
	}
	defer func() { _ = rows.Close() }()

	var items []domain.EnrichmentItem
	for rows.Next() {
		var (
			item        domain.EnrichmentItem
			body, url   sql.NullString
			publishedAt sql.NullTime
			extra       []byte
		)
		if err := rows.Scan(
			&item.ID,
			&item.GameID,
			&item.ContentKind,
			&item.Title,
			&body,
			&url,
			&item.Relevance,
			&publishedAt,
			&extra,
		); err != nil {
			return nil, fmt.Errorf("scanning enrichment item: %w", err)
		}
		item.Body = body.String
		item.URL = url.String
		item.PublishedAt = publishedAt.Time
		if len(extra) > 0 {
			if err := json.Unmarshal(extra, &item.Extra); err != nil {
				return nil, fmt.Errorf("decoding extra fields of enrichment item [%d]: %w", item.ID, err)
			}
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating enrichment item rows: %w", err)
	}

	return items, nil
}

func (r *Repository) GetUserPreferences(ctx context.Context, userID string) (domain.UserPreferences, error) {
	sb := sqlbuilder.Select("favorite_genres", "preferred_themes")
	sb.From("user_preferences")
	sb.Where(sb.Equal("user_id", userID))

	query, args := sb.Build()
	var genres, themes []byte
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&genres, &themes)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.UserPreferences{}, nil
	}
	if err != nil {
		return domain.UserPreferences{}, fmt.Errorf("getting user preferences: %w", err)
	}

	var prefs domain.UserPreferences
	if prefs.FavoriteGenres, err = decodeStringList(genres); err != nil {
		return domain.UserPreferences{}, fmt.Errorf("decoding favorite genres: %w", err)
	}
	if prefs.PreferredThemes, err = decodeStringList(themes); err != nil {
		return domain.UserPreferences{}, fmt.Errorf("decoding preferred themes: %w", err)
	}

	return prefs, nil
}

func (r *Repository) EnqueueGameSubmissions(
	ctx context.Context,
	appIDs []domain.GameID,
	submittedBy string,
) (int, error) {
	if len(appIDs) == 0 {
		return 0, nil
	}

	now := r.now().UTC()
	ib := sqlbuilder.InsertIgnoreInto("game_submissions")
	ib.Cols("app_id", "submitted_by", "submitted_at")
	for _, id := range appIDs {
		ib.Values(int64(id), submittedBy, now)
	}

	query, args := ib.Build()
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("enqueueing game submissions: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("counting enqueued game submissions: %w", err)
	}

	return int(n), nil
}

func gameIDArgs(ids []domain.GameID) []interface{} {
	args := make([]interface{}, 0, len(ids))
	for _, id := range ids {
		args = append(args, int64(id))
	}
	return args
}

func decodeStringList(raw []byte) ([]string, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, err
	}
	return list, nil
}
