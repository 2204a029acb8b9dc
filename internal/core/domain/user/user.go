package user

import (
	"database/sql"
	"encoding/json"
	"time"
)

// Fact is one learned item in a user's history, stored as a JSON array on the
// user row.
type Fact struct {
	Content   string `json:"content"`
	Category  string `json:"category"`
	SourceURL string `json:"source_url,omitempty"`
	LearnedAt string `json:"learned_at"`
	Type      string `json:"type"`
	Questions int    `json:"questions,omitempty"`
}

// Fact types recorded against a user.
const (
	FactTypeSearch = "search"
	FactTypeQuiz   = "quiz"
)

// User is an account with gamified learning progress.
type User struct {
	ID               int64          `db:"id" json:"id"`
	Username         string         `db:"username" json:"username"`
	PasswordHash     string         `db:"password_hash" json:"-"`
	Email            sql.NullString `db:"email" json:"email,omitempty"`
	FactsLearned     string         `db:"facts_learned" json:"-"`
	CurrentStreak    int            `db:"current_streak" json:"current_streak"`
	LongestStreak    int            `db:"longest_streak" json:"longest_streak"`
	TotalFactsCount  int            `db:"total_facts_count" json:"total_facts_count"`
	LastActivityDate sql.NullString `db:"last_activity_date" json:"last_activity_date,omitempty"`
	CreatedAt        time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time      `db:"updated_at" json:"updated_at"`
}

// Facts parses the stored JSON history; malformed history is treated as empty
// rather than an error so one bad row cannot break progress reads.
func (u *User) Facts() []Fact {
	if u.FactsLearned == "" {
		return nil
	}
	var facts []Fact
	if err := json.Unmarshal([]byte(u.FactsLearned), &facts); err != nil {
		return nil
	}
	return facts
}

// SetFacts serializes the history back onto the row.
func (u *User) SetFacts(facts []Fact) {
	if facts == nil {
		facts = []Fact{}
	}
	data, err := json.Marshal(facts)
	if err != nil {
		return
	}
	u.FactsLearned = string(data)
}

// AddFact appends a fact with the current UTC timestamp and bumps the total.
func (u *User) AddFact(f Fact) {
	f.LearnedAt = time.Now().UTC().Format("2006-01-02T15:04:05Z")
	facts := append(u.Facts(), f)
	u.SetFacts(facts)
	u.TotalFactsCount++
}

// CategoryBreakdown counts facts per health category. Quiz-answer entries are
// skipped and unknown categories are folded into General so dashboard charts
// only show real health categories.
func (u *User) CategoryBreakdown(validCategories map[string]bool) map[string]int {
	breakdown := make(map[string]int)
	for _, f := range u.Facts() {
		category := f.Category
		if category == "Quiz" || category == "quiz_answer" {
			continue
		}
		if !validCategories[category] {
			category = "General"
		}
		breakdown[category]++
	}
	return breakdown
}
