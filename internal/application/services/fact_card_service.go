package services

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/threat0512/HealthFactAI/internal/core/domain/evidence"
	"github.com/threat0512/HealthFactAI/internal/core/domain/factcard"
	"github.com/threat0512/HealthFactAI/internal/core/ports"
)

const defaultFactCardPageSize = 20

// FactCardService stores verification results as revisitable cards.
type FactCardService struct {
	repo       ports.FactCardRepository
	classifier ports.ClaimClassifier
	logger     *logrus.Logger
}

func NewFactCardService(repo ports.FactCardRepository, classifier ports.ClaimClassifier, logger *logrus.Logger) ports.FactCardService {
	return &FactCardService{
		repo:       repo,
		classifier: classifier,
		logger:     logger,
	}
}

// SaveFromVerification turns a verification result into a saved card.
func (s *FactCardService) SaveFromVerification(ctx context.Context, userID int64, query string, v *evidence.Verification) (*factcard.FactCard, error) {
	card := &factcard.FactCard{
		UserID:      userID,
		Title:       v.Claim,
		Summary:     v.Explanation,
		Category:    s.classifier.Classify(v.Claim),
		Confidence:  fmt.Sprintf("%.0f%%", v.Confidence*100),
		SearchQuery: query,
	}

	sources := make([]factcard.Source, 0, len(v.Sources))
	for _, src := range v.Sources {
		sources = append(sources, factcard.Source{Title: src.Title, URL: src.URL, Snippet: src.Snippet})
	}
	card.SetSources(sources)

	if err := s.repo.Create(ctx, card); err != nil {
		return nil, err
	}
	if s.logger != nil {
		s.logger.WithFields(logrus.Fields{"user_id": userID, "fact_card_id": card.ID, "category": card.Category}).Info("fact card saved")
	}
	return card, nil
}

// List returns one page of a user's cards.
func (s *FactCardService) List(ctx context.Context, userID int64, category string, limit, offset int) ([]*factcard.FactCard, int, error) {
	if limit <= 0 {
		limit = defaultFactCardPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.ListByUser(ctx, userID, category, limit, offset)
}

// Delete removes a card owned by the user.
func (s *FactCardService) Delete(ctx context.Context, id, userID int64) error {
	return s.repo.Delete(ctx, id, userID)
}

// Stats summarizes a user's saved cards.
func (s *FactCardService) Stats(ctx context.Context, userID int64) (*factcard.Stats, error) {
	return s.repo.Stats(ctx, userID)
}
