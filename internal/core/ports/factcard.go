package ports

import (
	"context"

	"github.com/threat0512/HealthFactAI/internal/core/domain/evidence"
	"github.com/threat0512/HealthFactAI/internal/core/domain/factcard"
)

// FactCardRepository defines fact-card persistence operations.
type FactCardRepository interface {
	Create(ctx context.Context, card *factcard.FactCard) error
	GetByID(ctx context.Context, id, userID int64) (*factcard.FactCard, error)
	ListByUser(ctx context.Context, userID int64, category string, limit, offset int) ([]*factcard.FactCard, int, error)
	Delete(ctx context.Context, id, userID int64) error
	Stats(ctx context.Context, userID int64) (*factcard.Stats, error)
}

// FactCardService stores verification results as revisitable cards.
type FactCardService interface {
	SaveFromVerification(ctx context.Context, userID int64, query string, v *evidence.Verification) (*factcard.FactCard, error)
	List(ctx context.Context, userID int64, category string, limit, offset int) ([]*factcard.FactCard, int, error)
	Delete(ctx context.Context, id, userID int64) error
	Stats(ctx context.Context, userID int64) (*factcard.Stats, error)
}
