package core

import (
	"errors"
	"testing"
)

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }

func TestValidateQuery(t *testing.T) {
	tests := []struct {
		name    string
		query   *Query
		wantErr error
	}{
		{
			name: "valid minimal query",
			query: &Query{
				Description: "after-school tutoring for low-income teens",
			},
			wantErr: nil,
		},
		{
			name: "valid query with all optional fields",
			query: &Query{
				Description:    "mobile health clinic",
				Title:          "Health Outreach",
				EstimatedCost:  floatPtr(125000),
				TimelineMonths: intPtr(18),
				KPICount:       intPtr(4),
			},
			wantErr: nil,
		},
		{
			name: "zero kpi count is valid",
			query: &Query{
				Description: "community garden",
				KPICount:    intPtr(0),
			},
			wantErr: nil,
		},
		{
			name:    "nil query",
			query:   nil,
			wantErr: ErrInvalidQuery,
		},
		{
			name:    "empty description",
			query:   &Query{Description: ""},
			wantErr: ErrEmptyDescription,
		},
		{
			name:    "whitespace-only description",
			query:   &Query{Description: "   \t\n"},
			wantErr: ErrEmptyDescription,
		},
		{
			name: "zero cost",
			query: &Query{
				Description:   "literacy program",
				EstimatedCost: floatPtr(0),
			},
			wantErr: ErrNegativeCost,
		},
		{
			name: "negative timeline",
			query: &Query{
				Description:    "literacy program",
				TimelineMonths: intPtr(-3),
			},
			wantErr: ErrNegativeTimeline,
		},
		{
			name: "negative kpi count",
			query: &Query{
				Description: "literacy program",
				KPICount:    intPtr(-1),
			},
			wantErr: ErrNegativeKPICount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateQuery(tt.query)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateQuery() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateQuery() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateGrant(t *testing.T) {
	tests := []struct {
		name    string
		grant   *Grant
		wantErr error
	}{
		{
			name: "valid grant",
			grant: &Grant{
				Title:       "Community Youth Development Fund",
				Description: "Supports local youth programs",
			},
			wantErr: nil,
		},
		{
			name: "valid grant without vector",
			grant: &Grant{
				Title:  "Rural Health Grant",
				Vector: nil,
			},
			wantErr: nil,
		},
		{
			name:    "nil grant",
			grant:   nil,
			wantErr: ErrInvalidGrant,
		},
		{
			name:    "empty title",
			grant:   &Grant{Description: "no title"},
			wantErr: ErrEmptyGrantTitle,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateGrant(tt.grant)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateGrant() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateGrant() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateJudgment(t *testing.T) {
	tests := []struct {
		name     string
		judgment *Judgment
		wantErr  error
	}{
		{
			name: "valid judgment",
			judgment: &Judgment{
				GrantId:        1,
				MatchScore:     88,
				Recommendation: RecommendationApply,
				WinProbability: 0.7,
			},
			wantErr: nil,
		},
		{
			name: "boundary scores",
			judgment: &Judgment{
				MatchScore:     100,
				Recommendation: RecommendationSkip,
				WinProbability: 1,
			},
			wantErr: nil,
		},
		{
			name:     "nil judgment",
			judgment: nil,
			wantErr:  ErrInvalidJudgment,
		},
		{
			name: "score above 100",
			judgment: &Judgment{
				MatchScore:     101,
				Recommendation: RecommendationWatch,
			},
			wantErr: ErrMatchScoreOutOfRange,
		},
		{
			name: "negative score",
			judgment: &Judgment{
				MatchScore:     -1,
				Recommendation: RecommendationWatch,
			},
			wantErr: ErrMatchScoreOutOfRange,
		},
		{
			name: "win probability above 1",
			judgment: &Judgment{
				MatchScore:     50,
				Recommendation: RecommendationWatch,
				WinProbability: 1.5,
			},
			wantErr: ErrWinProbabilityOutOfRange,
		},
		{
			name: "unknown recommendation",
			judgment: &Judgment{
				MatchScore:     50,
				Recommendation: Recommendation("MAYBE"),
			},
			wantErr: ErrInvalidRecommendation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateJudgment(tt.judgment)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateJudgment() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateJudgment() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
