package pinecone

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/indievibes/vibefeed/internal/datasources"
	"github.com/indievibes/vibefeed/internal/domain"
	"github.com/pinecone-io/go-pinecone/pinecone"
	"google.golang.org/protobuf/types/known/structpb"
)

var _ datasources.EmbeddingStore = (*Client)(nil)

// maxTopK is the largest result count the index accepts for a single query.
const maxTopK = 10000

// Client serves vibe embeddings from a Pinecone index. Each facet and model
// pair lives in its own namespace, keyed by catalog id.
type Client struct {
	pinecone *pinecone.Client
	index    *pinecone.Index
}

func NewClient(
	ctx context.Context,
	apiKey string,
	indexName string,
) (*Client, error) {
	pc, err := pinecone.NewClient(pinecone.NewClientParams{
		ApiKey:     apiKey,
		Headers:    nil,
		Host:       "",
		RestClient: nil,
		SourceTag:  "",
	})
	if err != nil {
		return nil, fmt.Errorf("creating pinecone client: %w", err)
	}

	idx, err := pc.DescribeIndex(ctx, indexName)
	if err != nil {
		return nil, fmt.Errorf("retrieving pinecone index metadata for [%s]: %w", indexName, err)
	}

	return &Client{
		pinecone: pc,
		index:    idx,
	}, nil
}

// Namespace returns the index namespace holding vectors for facet and modelID.
func Namespace(facet domain.Facet, modelID string) string {
	return string(facet) + "." + modelID
}

func (c *Client) FetchEmbedding(
	ctx context.Context,
	gameID domain.GameID,
	facet domain.Facet,
	modelID string,
) (domain.VibeEmbedding, error) {
	idxConn, err := c.connect(facet, modelID)
	if err != nil {
		return domain.VibeEmbedding{}, err
	}
	defer func() { _ = idxConn.Close() }()

	id := gameID.String()
	resp, err := idxConn.FetchVectors(ctx, []string{id})
	if err != nil {
		return domain.VibeEmbedding{}, fmt.Errorf("fetching vector for game [%d]: %w", gameID, err)
	}

	vector, ok := resp.Vectors[id]
	if !ok || vector == nil {
		return domain.VibeEmbedding{}, fmt.Errorf("no [%s] vector for game [%d]: %w", facet, gameID, domain.ErrNotFound)
	}

	sourceType, createdAt := parseEmbeddingMetadata(vector.Metadata)
	return domain.VibeEmbedding{
		GameID:     gameID,
		Facet:      facet,
		ModelID:    modelID,
		Vector:     vector.Values,
		SourceType: sourceType,
		CreatedAt:  createdAt,
	}, nil
}

func (c *Client) QuerySimilar(
	ctx context.Context,
	facet domain.Facet,
	modelID string,
	vector []float32,
	excludeGameIDs []domain.GameID,
	threshold float64,
	limit int,
) ([]domain.ScoredGame, error) {
	if limit > maxTopK {
		return nil, fmt.Errorf("limit value too high [%d]", limit)
	}
	if limit <= 0 || len(vector) == 0 {
		return nil, nil
	}

	idxConn, err := c.connect(facet, modelID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = idxConn.Close() }()

	filter, err := exclusionFilter(excludeGameIDs)
	if err != nil {
		return nil, err
	}

	resp, err := idxConn.QueryByVectorValues(ctx, &pinecone.QueryByVectorValuesRequest{
		Vector:          vector,
		TopK:            uint32(limit), //nolint:gosec // bounded by maxTopK above
		MetadataFilter:  filter,
		IncludeValues:   false,
		IncludeMetadata: false,
		SparseValues:    nil,
	})
	if err != nil {
		return nil, fmt.Errorf("querying for similar vectors: %w", err)
	}

	results := make([]domain.ScoredGame, 0, len(resp.Matches))
	for _, match := range resp.Matches {
		if match == nil || match.Vector == nil {
			continue
		}
		score := float64(match.Score)
		if score < threshold {
			// Matches arrive best first, so nothing after this can qualify.
			break
		}

		id, err := strconv.ParseInt(match.Vector.Id, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("unexpected pinecone vector ID format [%s]", match.Vector.Id)
		}
		results = append(results, domain.ScoredGame{GameID: domain.GameID(id), Score: score})
	}

	return results, nil
}

func (c *Client) connect(facet domain.Facet, modelID string) (*pinecone.IndexConnection, error) {
	idxConn, err := c.pinecone.Index(pinecone.NewIndexConnParams{
		Host:      c.index.Host,
		Namespace: Namespace(facet, modelID),
	})
	if err != nil {
		return nil, fmt.Errorf("creating pinecone index connection: %w", err)
	}
	return idxConn, nil
}

func exclusionFilter(excludeGameIDs []domain.GameID) (*pinecone.MetadataFilter, error) {
	if len(excludeGameIDs) == 0 {
		return nil, nil
	}

	excluded := make([]any, 0, len(excludeGameIDs))
	for _, id := range excludeGameIDs {
		excluded = append(excluded, float64(id))
	}

	filter, err := structpb.NewStruct(map[string]any{
		"game_id": map[string]any{
			"$nin": excluded,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("creating metadata filter map: %w", err)
	}
	return filter, nil
}

func parseEmbeddingMetadata(md *structpb.Struct) (sourceType string, createdAt time.Time) {
	fields := md.GetFields()
	sourceType = fields["source_type"].GetStringValue()
	if ts := fields["created_at"].GetStringValue(); ts != "" {
		if t, err := time.Parse(time.RFC3339, ts); err == nil {
			createdAt = t
		}
	}
	return sourceType, createdAt
}
