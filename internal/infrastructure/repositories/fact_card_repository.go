package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/threat0512/HealthFactAI/internal/core/domain/factcard"
	"github.com/threat0512/HealthFactAI/internal/core/ports"
	"github.com/threat0512/HealthFactAI/internal/infrastructure/db"
)

// FactCardRepository implements fact-card persistence on Postgres.
type FactCardRepository struct {
	db     *db.Database
	logger *logrus.Logger
}

// NewFactCardRepository creates a new fact card repository
func NewFactCardRepository(database *db.Database, logger *logrus.Logger) ports.FactCardRepository {
	return &FactCardRepository{
		db:     database,
		logger: logger,
	}
}

// Create inserts a card and fills in its generated ID.
func (r *FactCardRepository) Create(ctx context.Context, card *factcard.FactCard) error {
	query := `
		INSERT INTO fact_cards (user_id, title, summary, category, confidence, sources, search_query)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at`

	err := r.db.DB.QueryRowxContext(ctx, query,
		card.UserID, card.Title, card.Summary, card.Category,
		card.Confidence, card.Sources, card.SearchQuery).
		Scan(&card.ID, &card.CreatedAt, &card.UpdatedAt)
	if err != nil {
		if r.logger != nil {
			r.logger.WithFields(logrus.Fields{"user_id": card.UserID}).WithError(err).Error("db: failed to create fact card")
		}
		return fmt.Errorf("failed to create fact card: %w", err)
	}

	return nil
}

// GetByID retrieves one card scoped to its owner.
func (r *FactCardRepository) GetByID(ctx context.Context, id, userID int64) (*factcard.FactCard, error) {
	var card factcard.FactCard
	query := `
		SELECT id, user_id, title, summary, category, confidence, sources, search_query, created_at, updated_at
		FROM fact_cards
		WHERE id = $1 AND user_id = $2`

	err := r.db.DB.GetContext(ctx, &card, query, id, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("fact card with ID %d not found", id)
		}
		if r.logger != nil {
			r.logger.WithFields(logrus.Fields{"fact_card_id": id, "user_id": userID}).WithError(err).Error("db: failed to get fact card")
		}
		return nil, fmt.Errorf("failed to get fact card: %w", err)
	}

	return &card, nil
}

// ListByUser returns one page of a user's cards, newest first, with the total
// count for pagination. An empty category means all categories.
func (r *FactCardRepository) ListByUser(ctx context.Context, userID int64, category string, limit, offset int) ([]*factcard.FactCard, int, error) {
	var (
		cards []*factcard.FactCard
		total int
	)

	countQuery := `SELECT COUNT(*) FROM fact_cards WHERE user_id = $1 AND ($2 = '' OR category = $2)`
	if err := r.db.DB.GetContext(ctx, &total, countQuery, userID, category); err != nil {
		if r.logger != nil {
			r.logger.WithFields(logrus.Fields{"user_id": userID}).WithError(err).Error("db: failed to count fact cards")
		}
		return nil, 0, fmt.Errorf("failed to count fact cards: %w", err)
	}

	query := `
		SELECT id, user_id, title, summary, category, confidence, sources, search_query, created_at, updated_at
		FROM fact_cards
		WHERE user_id = $1 AND ($2 = '' OR category = $2)
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4`

	if err := r.db.DB.SelectContext(ctx, &cards, query, userID, category, limit, offset); err != nil {
		if r.logger != nil {
			r.logger.WithFields(logrus.Fields{"user_id": userID}).WithError(err).Error("db: failed to list fact cards")
		}
		return nil, 0, fmt.Errorf("failed to list fact cards: %w", err)
	}

	return cards, total, nil
}

// Delete removes a card scoped to its owner.
func (r *FactCardRepository) Delete(ctx context.Context, id, userID int64) error {
	query := `DELETE FROM fact_cards WHERE id = $1 AND user_id = $2`

	result, err := r.db.DB.ExecContext(ctx, query, id, userID)
	if err != nil {
		if r.logger != nil {
			r.logger.WithFields(logrus.Fields{"fact_card_id": id, "user_id": userID}).WithError(err).Error("db: failed to delete fact card")
		}
		return fmt.Errorf("failed to delete fact card: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("fact card with ID %d not found", id)
	}

	return nil
}

// Stats aggregates a user's saved cards by category.
func (r *FactCardRepository) Stats(ctx context.Context, userID int64) (*factcard.Stats, error) {
	rows := []struct {
		Category string `db:"category"`
		Count    int    `db:"count"`
	}{}

	query := `
		SELECT category, COUNT(*) AS count
		FROM fact_cards
		WHERE user_id = $1
		GROUP BY category
		ORDER BY category`

	if err := r.db.DB.SelectContext(ctx, &rows, query, userID); err != nil {
		if r.logger != nil {
			r.logger.WithFields(logrus.Fields{"user_id": userID}).WithError(err).Error("db: failed to aggregate fact card stats")
		}
		return nil, fmt.Errorf("failed to aggregate fact card stats: %w", err)
	}

	stats := &factcard.Stats{
		Categories:     make([]string, 0, len(rows)),
		CategoryCounts: make(map[string]int, len(rows)),
	}
	for _, row := range rows {
		stats.TotalFactCards += row.Count
		stats.Categories = append(stats.Categories, row.Category)
		stats.CategoryCounts[row.Category] = row.Count
	}

	return stats, nil
}
