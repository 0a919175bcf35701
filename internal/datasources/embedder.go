package datasources

import "context"

// Embedder is the external embedding producer: it turns text into a vector
// in the space of one model.
type Embedder interface {
	EmbedText(ctx context.Context, text string) ([]float32, error)
	ModelID() string
}

// NullEmbedder is a null implementation of Embedder.
type NullEmbedder struct{}

var _ Embedder = NullEmbedder{}

func (NullEmbedder) EmbedText(_ context.Context, _ string) ([]float32, error) {
	return nil, nil
}

func (NullEmbedder) ModelID() string {
	return ""
}
