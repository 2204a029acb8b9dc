package quiz

import "time"

// Candidate is the loosely-shaped item produced by a generator before
// validation. Generators (LLM or cloze) may fill CorrectIndex, a letter or
// textual CorrectAnswer, or both; validation resolves them into one canonical
// Item or rejects the candidate.
type Candidate struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectIndex  *int     `json:"correct_index,omitempty"`
	CorrectAnswer string   `json:"correct_answer,omitempty"`
	Explanation   string   `json:"explanation"`
	SourceURL     string   `json:"source_url"`
}

// Item is a validated multiple-choice question. Invariants: exactly four
// pairwise case-insensitively distinct options, CorrectIndex in [0,3], and
// SourceURL matching an allowlisted context URL.
type Item struct {
	Question     string   `json:"question"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correct_index"`
	Explanation  string   `json:"explanation"`
	SourceURL    string   `json:"source_url"`
}

// Meta describes how a generation request went; Reason and Error are only set
// on the empty-items path.
type Meta struct {
	ClaimHash   string `json:"claim_hash"`
	SourcesUsed int    `json:"sources_used"`
	Reason      string `json:"reason,omitempty"`
	Error       string `json:"error,omitempty"`
}

// Quiz is a generated quiz retained for grading.
type Quiz struct {
	ID        string    `json:"quiz_id"`
	Claim     string    `json:"claim"`
	Items     []Item    `json:"items"`
	CreatedAt time.Time `json:"created_at"`
}

// Key returns the answer key for a stored quiz.
func (q *Quiz) Key() []int {
	key := make([]int, len(q.Items))
	for i, it := range q.Items {
		key[i] = it.CorrectIndex
	}
	return key
}
