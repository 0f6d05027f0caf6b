// Package store defines the decision audit storage interface and implementations.
package store

import (
	"context"

	"github.com/hagglekit/strategy-engine/internal/domain"
)

// Store defines the interface for decision audit persistence. The engine
// itself never reads from it; decisions are derived from request history
// alone, and the store only records outcomes.
type Store interface {
	CreateDecision(ctx context.Context, rec *domain.DecisionRecord) error
	GetDecision(ctx context.Context, decisionID string) (*domain.DecisionRecord, error)
	ListSessionDecisions(ctx context.Context, sessionID string, limit int) ([]domain.DecisionRecord, error)

	Close() error
}
