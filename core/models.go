package core

import (
	"encoding/binary"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// It is generated using content-based hashing or database sequences.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// Recommendation is the decision attached to a relevance judgment.
type Recommendation string

const (
	// RecommendationApply means the grant is a strong fit worth applying to.
	RecommendationApply Recommendation = "APPLY"
	// RecommendationWatch means the grant is a partial fit worth monitoring.
	RecommendationWatch Recommendation = "WATCH"
	// RecommendationSkip means the grant is not worth pursuing.
	RecommendationSkip Recommendation = "SKIP"
)

// Query describes a funding request to match against the grant catalog.
// A Query is created once per matching request and is immutable afterwards.
type Query struct {
	Description    string   `json:"description"`
	Title          string   `json:"title,omitempty"`
	EstimatedCost  *float64 `json:"estimated_cost,omitempty"`
	TimelineMonths *int     `json:"timeline_months,omitempty"`
	KPICount       *int     `json:"kpi_count,omitempty"`
}

// Grant represents a single record in the grant catalog.
// The matching pipeline only reads grants; ingestion populates them.
type Grant struct {
	Id                ID        `json:"id"`
	Title             string    `json:"title"`
	Description       string    `json:"description"`
	AboutGrant        string    `json:"about_grant,omitempty"`
	WhoCanApply       string    `json:"who_can_apply,omitempty"`
	FundingInfo       string    `json:"funding_info,omitempty"`
	ApplicationStatus string    `json:"application_status,omitempty"`
	URL               string    `json:"url,omitempty"`
	Status            string    `json:"status,omitempty"`
	Vector            []float32 `json:"vector,omitempty"` // Embedding vector (populated by ingestion)
	InsertedAt        time.Time `json:"inserted_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// VectorHit is a raw nearest-neighbor hit from the vector index.
type VectorHit struct {
	GrantId  ID
	Distance float32 // Cosine distance in [0, 2]; lower is closer
}

// Candidate is a grant hydrated from a single retrieval hit.
// It exists only within a single pipeline run.
type Candidate struct {
	Grant      *Grant
	Distance   float32
	Similarity float32
}

// GrantHit is a scored catalog search result.
type GrantHit struct {
	Grant *Grant  `json:"grant"`
	Score float32 `json:"score"`
}

// SimilarityFromDistance maps a cosine distance in [0, 2] to a
// similarity in [0, 1]. Out-of-range distances clamp to zero.
func SimilarityFromDistance(distance float32) float32 {
	s := 1 - distance/2
	if s < 0 {
		return 0
	}
	return s
}

// Judgment is the structured relevance assessment for one candidate.
// Degraded judgments are produced by fallback logic when the scoring
// provider fails or returns unparsable output.
type Judgment struct {
	GrantId         ID             `json:"grant_id"`
	SimilarityScore float32        `json:"similarity_score"`
	MatchScore      int            `json:"match_score"`
	Reasoning       string         `json:"match_reasoning"`
	WhyFits         []string       `json:"why_fits"`
	Concerns        []string       `json:"concerns"`
	Recommendation  Recommendation `json:"decision_recommendation"`
	WinProbability  float32        `json:"win_probability"`
	Degraded        bool           `json:"degraded,omitempty"`

	// Grant is populated when a stored result is hydrated for display.
	Grant *Grant `json:"grant,omitempty"`
}

// MatchResult is the persisted outcome of one successful pipeline run.
// It is created exactly once and is immutable thereafter.
type MatchResult struct {
	Id                ID         `json:"id"`
	Title             string     `json:"title"`
	Description       string     `json:"description"`
	EstimatedCost     *float64   `json:"estimated_cost,omitempty"`
	TimelineMonths    *int       `json:"timeline_months,omitempty"`
	RecommendedGrants []Judgment `json:"recommended_grants"`
	CreatedAt         time.Time  `json:"created_at"`
}
