package openai

import (
	"fmt"
	"strings"

	"github.com/hack4good-26/GrantAI/core"
)

const filterPromptTemplate = `You are a grant matching expert. Analyze these grants and select the %d BEST matches for this funding request:

%s

AVAILABLE GRANTS:
%s

Select the grants that are MOST RELEVANT and BEST MATCHES. Consider:
- Alignment with the request goals
- Eligibility requirements
- Funding scope and appropriateness
- Realistic fit

Respond with ONLY a valid JSON array of grant indices (0-based, matching the list above), e.g. [0, 2, 4, 5, 7]
Do not include any other text, explanations, or markdown formatting.`

const analysisPromptTemplate = `You are a grant matching expert. Analyze if this grant matches the funding request.

%s

GRANT INFORMATION:
Title: %s
Description: %s
About: %s
Eligibility: %s
Funding: %s
Application Status: %s

Analyze the match and respond with ONLY a valid JSON object (no markdown, no code blocks):
{
  "match_score": <0-100 integer>,
  "why_fits": ["<reason 1>", "<reason 2>", "<reason 3>"],
  "concerns": ["<concern 1>", "<concern 2>"],
  "decision_recommendation": "<APPLY|WATCH|SKIP>",
  "win_probability": <0.0-1.0 float>,
  "match_reasoning": "<3-4 sentence explanation of why this grant does or doesn't match, citing at least two specific details from the request and grant>"
}`

// buildQueryContext renders the query parameters as the shared
// "FUNDING REQUEST" block used by both call shapes.
func buildQueryContext(query *core.Query) string {
	var b strings.Builder
	b.WriteString("FUNDING REQUEST:\n")
	b.WriteString(query.Description)
	if query.Title != "" {
		fmt.Fprintf(&b, "\nTitle: %s", query.Title)
	}
	if query.EstimatedCost != nil {
		fmt.Fprintf(&b, "\nEstimated Cost: $%.0f", *query.EstimatedCost)
	}
	if query.TimelineMonths != nil {
		fmt.Fprintf(&b, "\nTimeline: %d months", *query.TimelineMonths)
	}
	if query.KPICount != nil {
		fmt.Fprintf(&b, "\nKey KPIs to track: %d", *query.KPICount)
	}
	return b.String()
}

// buildFilterPrompt renders the holistic selection prompt listing every
// candidate with its zero-based index and similarity.
func buildFilterPrompt(query *core.Query, candidates []core.Candidate, targetN int) string {
	entries := make([]string, len(candidates))
	for i, c := range candidates {
		entries[i] = fmt.Sprintf("%d. %s (Similarity: %.1f%%)\n   %s",
			i, c.Grant.Title, c.Similarity*100, c.Grant.Description)
	}
	return fmt.Sprintf(filterPromptTemplate,
		targetN, buildQueryContext(query), strings.Join(entries, "\n\n"))
}

// buildAnalysisPrompt renders the per-candidate scoring prompt with the
// grant's eligibility, funding, and status fields as context.
func buildAnalysisPrompt(query *core.Query, candidate core.Candidate) string {
	grant := candidate.Grant
	return fmt.Sprintf(analysisPromptTemplate,
		buildQueryContext(query),
		grant.Title,
		orNotSpecified(grant.Description),
		orNotSpecified(grant.AboutGrant),
		orNotSpecified(grant.WhoCanApply),
		orNotSpecified(grant.FundingInfo),
		orNotSpecified(grant.ApplicationStatus),
	)
}

func orNotSpecified(s string) string {
	if s == "" {
		return "Not specified"
	}
	return s
}
