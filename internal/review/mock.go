package review

import (
	"math/rand"

	"reqdojo/internal/session"
)

// Mock produces a randomized local evaluation for explicit fallback or test
// mode. It is never substituted silently: callers reach for it only after
// Evaluate failed and the user chose to continue without a real review.
func Mock(rng *rand.Rand) session.ReviewResult {
	if rng == nil {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}
	return session.ReviewResult{
		Scores: session.Scores{
			Insight:         rng.Intn(30) + 60,
			Logic:           rng.Intn(30) + 65,
			AIFirst:         rng.Intn(30) + 55,
			Professionalism: rng.Intn(30) + 70,
			Feasibility:     rng.Intn(30) + 60,
		},
		Feedback: map[string]string{
			"insight":         "You captured some key information in the interview, but may have missed a hidden technical constraint.",
			"logic":           "The solution covers the main requirements, with room to improve around edge cases.",
			"aiFirst":         "The AI angle has some value but needs a stronger cost-benefit argument.",
			"professionalism": "The document is well structured; some wording could be more precise.",
			"feasibility":     "The solution is broadly buildable, but implementation cost and timeline need attention.",
		},
		Suggestions: []string{
			"Build a RAG-augmented support assistant that drafts replies from historical tickets.",
			"Use multi-agent collaboration for automatic ticket triage and routing.",
			"Add predictive analysis to flag high-risk tickets before they escalate.",
		},
		Overall: "Solid overall performance; requirements-analysis skills are above average. Push harder on uncovering hidden constraints.",
	}
}
