package domain

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

type FeedItemKind string

const (
	FeedItemKindGameFind   FeedItemKind = "game_find"
	FeedItemKindEnrichment FeedItemKind = "enrichment"
	FeedItemKindCollection FeedItemKind = "collection"
)

// FeedItem is a closed union over the content kinds a feed can carry.
// The only implementations are GameFind, EnrichmentItem and CollectionPin.
type FeedItem interface {
	// IdentityKey is unique per piece of content and used for deduplication.
	IdentityKey() string
	// ProvenanceGameID is the game the item was derived from, or 0 for none.
	ProvenanceGameID() GameID
	Kind() FeedItemKind

	isFeedItem()
}

// GameFind is a game discovered through similarity to a source game.
type GameFind struct {
	Game      Game
	Candidate SimilarityCandidate
}

func (g GameFind) IdentityKey() string      { return "game:" + g.Game.ID.String() }
func (g GameFind) ProvenanceGameID() GameID { return g.Candidate.SourceGameID }
func (GameFind) Kind() FeedItemKind         { return FeedItemKindGameFind }
func (GameFind) isFeedItem()                {}

type EnrichmentKind string

const (
	EnrichmentKindSnippet EnrichmentKind = "snippet"
	EnrichmentKindVideo   EnrichmentKind = "video"
	EnrichmentKindArticle EnrichmentKind = "article"
)

// EnrichmentItem is externally sourced supplementary content about a game.
// Fields the source provides beyond the known schema land in Extra.
type EnrichmentItem struct {
	ID          int64
	GameID      GameID
	ContentKind EnrichmentKind
	Title       string
	Body        string
	URL         string
	Relevance   float64
	PublishedAt time.Time
	Extra       map[string]string
}

func (e EnrichmentItem) IdentityKey() string      { return "enrichment:" + strconv.FormatInt(e.ID, 10) }
func (e EnrichmentItem) ProvenanceGameID() GameID { return e.GameID }
func (EnrichmentItem) Kind() FeedItemKind         { return FeedItemKindEnrichment }
func (EnrichmentItem) isFeedItem()                {}

// CollectionPin is a curated, named list of games pinned to the top of the feed.
type CollectionPin struct {
	ID       int64
	Slug     string
	Name     string
	GameIDs  []GameID
	Position int
}

func (c CollectionPin) IdentityKey() string    { return "collection:" + strconv.FormatInt(c.ID, 10) }
func (CollectionPin) ProvenanceGameID() GameID { return 0 }
func (CollectionPin) Kind() FeedItemKind       { return FeedItemKindCollection }
func (CollectionPin) isFeedItem()              {}

// FeedEntry is a feed item with its composite ranking score.
type FeedEntry struct {
	Item  FeedItem
	Score float64
}

// FeedEntryLess orders entries by descending score, then ascending identity key.
func FeedEntryLess(a, b FeedEntry) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	return a.Item.IdentityKey() < b.Item.IdentityKey()
}

// FeedCursor marks the last entry emitted on a page.
type FeedCursor struct {
	Score float64 `json:"s"`
	Key   string  `json:"k"`
}

// CursorAfter returns the cursor positioned at e.
func CursorAfter(e FeedEntry) FeedCursor {
	return FeedCursor{Score: e.Score, Key: e.Item.IdentityKey()}
}

// Precedes reports whether e sorts at or before the cursor position,
// meaning it was already emitted on an earlier page.
func (c FeedCursor) Precedes(e FeedEntry) bool {
	if e.Score != c.Score {
		return e.Score > c.Score
	}
	return e.Item.IdentityKey() <= c.Key
}

// Encode returns the opaque token form of the cursor.
func (c FeedCursor) Encode() string {
	b, err := json.Marshal(c)
	if err != nil {
		return ""
	}
	return base64.RawURLEncoding.EncodeToString(b)
}

// DecodeFeedCursor parses a token produced by FeedCursor.Encode.
func DecodeFeedCursor(token string) (FeedCursor, error) {
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return FeedCursor{}, fmt.Errorf("%w: malformed cursor", ErrValidation)
	}

	var c FeedCursor
	if err := json.Unmarshal(raw, &c); err != nil {
		return FeedCursor{}, fmt.Errorf("%w: malformed cursor", ErrValidation)
	}
	if c.Key == "" {
		return FeedCursor{}, fmt.Errorf("%w: cursor missing key", ErrValidation)
	}

	return c, nil
}
