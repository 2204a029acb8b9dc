package ports

import "context"

// Progress is the dashboard view of a user's learning history.
type Progress struct {
	TotalFacts    int            `json:"total_facts"`
	CurrentStreak int            `json:"current_streak"`
	LongestStreak int            `json:"longest_streak"`
	Categories    map[string]int `json:"categories"`
	LastActivity  string         `json:"last_activity,omitempty"`
	FactsThisWeek int            `json:"facts_this_week"`
}

// ProgressService records learning activity and reports progress. The Add*
// methods are fire-and-forget from the pipeline's perspective: errors are
// logged by the implementation and must never fail the primary response.
type ProgressService interface {
	GetUserProgress(ctx context.Context, userID int64) (*Progress, error)
	AddSearchFact(ctx context.Context, userID int64, claim, sourceURL string) bool
	AddQuizFact(ctx context.Context, userID int64, claim, sourceURL string, questionCount int) bool
	AddQuizAnswers(ctx context.Context, userID int64) bool
}
