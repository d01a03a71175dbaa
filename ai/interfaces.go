package ai

import (
	"context"

	"github.com/hack4good-26/GrantAI/core"
)

// Embedder generates vector embeddings from text for semantic similarity search.
// Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	// The returned vector represents the semantic meaning of the text.
	// Returns ErrEmptyEmbedding if the provider responds without a vector,
	// and a wrapped transport error if the provider is unreachable.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings in a batch.
	// Batch processing is more efficient than calling EmbedText multiple times.
	// The returned slice contains embeddings in the same order as the input texts.
	// Returns an error if any embedding generation fails.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// CandidateFilter narrows a retrieved candidate set with one holistic
// judgment call covering all candidates at once.
// Implementations must be thread-safe for concurrent use.
type CandidateFilter interface {
	// SelectCandidates asks the judgment provider to pick the candidates
	// most relevant to the query, returning zero-based indices into the
	// candidates slice. Indices are returned as parsed; callers are
	// responsible for bounds-checking and truncation. Returns an error
	// when the call fails or the response cannot be parsed, so callers
	// can fall back deterministically.
	SelectCandidates(ctx context.Context, query *core.Query, candidates []core.Candidate, targetN int) ([]int, error)
}

// MatchAnalyst produces a structured relevance judgment for a single
// candidate. Implementations must be thread-safe: the pipeline invokes
// AnalyzeMatch concurrently across candidates.
type MatchAnalyst interface {
	// AnalyzeMatch issues one judgment call for the candidate, supplying
	// query parameters and the grant's eligibility/funding/status fields
	// as context. The returned judgment has GrantId and SimilarityScore
	// left for the caller to fill in. Returns an error when the call
	// fails or the response cannot be parsed; the caller degrades to a
	// similarity-based judgment in that case.
	AnalyzeMatch(ctx context.Context, query *core.Query, candidate core.Candidate) (*core.Judgment, error)
}

// AIProvider aggregates AI services for convenient initialization and lifecycle management.
// A provider creates and manages the embedder, filter, and analyst instances,
// ensuring they share configuration and resources appropriately.
type AIProvider interface {
	// Embedder returns the text embedding service.
	// The returned Embedder is safe for concurrent use.
	Embedder() Embedder

	// CandidateFilter returns the holistic candidate selection service.
	// The returned CandidateFilter is safe for concurrent use.
	CandidateFilter() CandidateFilter

	// MatchAnalyst returns the per-candidate relevance scoring service.
	// The returned MatchAnalyst is safe for concurrent use.
	MatchAnalyst() MatchAnalyst

	// Close releases resources held by the provider and its services.
	// After Close is called, the provider and its services should not be used.
	Close() error
}
