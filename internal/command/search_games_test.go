package command

import (
	"errors"
	"strings"
	"testing"

	"github.com/indievibes/vibefeed/internal/datasources/mocks"
	"github.com/indievibes/vibefeed/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestSearchGames(t *testing.T) (*SearchGames, *mocks.MockEmbedder, *mocks.MockEmbeddingStore, *mocks.MockGameFetcher) {
	embedder := mocks.NewMockEmbedder(t)
	store := mocks.NewMockEmbeddingStore(t)
	games := mocks.NewMockGameFetcher(t)
	return &SearchGames{
		Embedder: embedder,
		Store:    store,
		Games:    games,
		Config:   DefaultFindSimilarGamesConfig(testModelID),
	}, embedder, store, games
}

func TestSearchGames_Execute(t *testing.T) {
	cmd, embedder, store, games := newTestSearchGames(t)

	embedder.EXPECT().ModelID().Return(testModelID)
	embedder.EXPECT().EmbedText(mock.Anything, "cozy rainy evenings").Return([]float32{0.3, 0.4}, nil)
	store.EXPECT().
		QuerySimilar(mock.Anything, domain.FacetAesthetic, testModelID, []float32{0.3, 0.4}, []domain.GameID(nil), 0.0, 5).
		Return([]domain.ScoredGame{{GameID: 8, Score: 0.6}, {GameID: 4, Score: 0.9}, {GameID: 99, Score: 0.5}}, nil)
	games.EXPECT().
		FetchGamesByID(mock.Anything, []domain.GameID{4, 8, 99}).
		Return([]domain.Game{{ID: 4, Title: "Four"}, {ID: 8, Title: "Eight"}}, nil)

	results, err := cmd.Execute(testContext(), SearchGamesRequest{
		Text:  "  cozy rainy evenings ",
		Facet: domain.FacetAesthetic,
		Limit: 5,
	})
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "Four", results[0].Game.Title)
	assert.InDelta(t, 0.9, results[0].Score, 1e-9)
	assert.Equal(t, "Eight", results[1].Game.Title)
}

func TestSearchGames_Execute_Validation(t *testing.T) {
	cases := []struct {
		name string
		req  SearchGamesRequest
	}{
		{name: "empty_text", req: SearchGamesRequest{Text: "   "}},
		{name: "long_text", req: SearchGamesRequest{Text: strings.Repeat("a", maxSearchTextLength+1)}},
		{name: "bad_facet", req: SearchGamesRequest{Text: "x", Facet: "NOPE"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cmd, _, _, _ := newTestSearchGames(t)
			_, err := cmd.Execute(testContext(), tc.req)
			require.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestSearchGames_Execute_ModelMismatch(t *testing.T) {
	cmd, embedder, _, _ := newTestSearchGames(t)
	embedder.EXPECT().ModelID().Return("other-model")

	_, err := cmd.Execute(testContext(), SearchGamesRequest{Text: "x"})
	require.ErrorIs(t, err, domain.ErrIncompatibleFacet)
}

func TestSearchGames_Execute_EmbedError(t *testing.T) {
	cmd, embedder, _, _ := newTestSearchGames(t)
	embedder.EXPECT().ModelID().Return(testModelID)
	embedder.EXPECT().EmbedText(mock.Anything, "x").Return(nil, domain.ErrUpstream).Twice()

	_, err := cmd.Execute(testContext(), SearchGamesRequest{Text: "x"})
	require.ErrorIs(t, err, domain.ErrUpstream)
}

func TestSearchGames_Execute_EmbedRetriedOnce(t *testing.T) {
	cmd, embedder, store, games := newTestSearchGames(t)
	embedder.EXPECT().ModelID().Return(testModelID)
	embedder.EXPECT().EmbedText(mock.Anything, "x").Return(nil, errors.New("connection reset")).Once()
	embedder.EXPECT().EmbedText(mock.Anything, "x").Return([]float32{1}, nil).Once()
	store.EXPECT().
		QuerySimilar(mock.Anything, domain.FacetTone, testModelID, []float32{1}, []domain.GameID(nil), 0.0, 10).
		Return([]domain.ScoredGame{{GameID: 3, Score: 0.7}}, nil)
	games.EXPECT().
		FetchGamesByID(mock.Anything, []domain.GameID{3}).
		Return([]domain.Game{{ID: 3, Title: "Three"}}, nil)

	results, err := cmd.Execute(testContext(), SearchGamesRequest{Text: "x"})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Three", results[0].Game.Title)
}

func TestSearchGames_Execute_EmbedFailureIsUpstream(t *testing.T) {
	cmd, embedder, _, _ := newTestSearchGames(t)
	embedder.EXPECT().ModelID().Return(testModelID)
	embedder.EXPECT().EmbedText(mock.Anything, "x").Return(nil, errors.New("connection reset")).Twice()

	_, err := cmd.Execute(testContext(), SearchGamesRequest{Text: "x"})
	require.ErrorIs(t, err, domain.ErrUpstream)
}

func TestSearchGames_Execute_StoreError(t *testing.T) {
	cmd, embedder, store, _ := newTestSearchGames(t)
	embedder.EXPECT().ModelID().Return(testModelID)
	embedder.EXPECT().EmbedText(mock.Anything, "x").Return([]float32{1}, nil)
	store.EXPECT().
		QuerySimilar(mock.Anything, domain.FacetTone, testModelID, mock.Anything, mock.Anything, 0.0, 10).
		Return(nil, errors.New("down")).
		Twice()

	_, err := cmd.Execute(testContext(), SearchGamesRequest{Text: "x"})
	require.ErrorIs(t, err, domain.ErrUpstream)
}
