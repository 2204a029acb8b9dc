package factcard

import (
	"encoding/json"
	"time"
)

// Source is one citation attached to a fact card.
type Source struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet,omitempty"`
}

// FactCard is a saved verification result a user can revisit later.
type FactCard struct {
	ID          int64     `db:"id" json:"id"`
	UserID      int64     `db:"user_id" json:"user_id"`
	Title       string    `db:"title" json:"title"`
	Summary     string    `db:"summary" json:"summary"`
	Category    string    `db:"category" json:"category"`
	Confidence  string    `db:"confidence" json:"confidence,omitempty"`
	Sources     string    `db:"sources" json:"-"`
	SearchQuery string    `db:"search_query" json:"search_query"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// SourceList parses the stored sources JSON; malformed data reads as empty.
func (c *FactCard) SourceList() []Source {
	if c.Sources == "" {
		return nil
	}
	var sources []Source
	if err := json.Unmarshal([]byte(c.Sources), &sources); err != nil {
		return nil
	}
	return sources
}

// SetSources serializes sources onto the card.
func (c *FactCard) SetSources(sources []Source) {
	if sources == nil {
		sources = []Source{}
	}
	data, err := json.Marshal(sources)
	if err != nil {
		return
	}
	c.Sources = string(data)
}

// Stats summarizes a user's saved cards.
type Stats struct {
	TotalFactCards int            `json:"total_fact_cards"`
	Categories     []string       `json:"categories"`
	CategoryCounts map[string]int `json:"category_counts"`
}
