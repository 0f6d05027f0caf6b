package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/hagglekit/strategy-engine/internal/domain"
)

// ErrGuardBlocked is returned when the admission policy refuses a request.
var ErrGuardBlocked = errors.New("request blocked by admission policy")

// Decide runs one negotiation decision: admission guard, then the policy
// cascade, then audit persistence. The policy itself is pure; everything
// with a side effect lives here.
func (s *Service) Decide(ctx context.Context, req domain.DecideRequest) (*domain.DecideResponse, error) {
	guardInput := map[string]interface{}{
		"session_id":    req.SessionID,
		"floor_price":   *req.FloorPrice,
		"listed_price":  *req.ListedPrice,
		"current_offer": *req.CurrentOffer,
	}

	verdict, err := s.guard.Evaluate(ctx, guardInput)
	if err != nil {
		return nil, fmt.Errorf("guard evaluation failed: %w", err)
	}
	if verdict == "block" {
		s.metrics.GuardBlocksTotal.Inc()
		return nil, ErrGuardBlocked
	}

	nc := domain.NegotiationContext{
		FloorPrice:   *req.FloorPrice,
		ListedPrice:  *req.ListedPrice,
		CurrentOffer: *req.CurrentOffer,
		Sentiment:    domain.ParseSentiment(req.Sentiment),
		Intent:       req.Intent,
		SessionID:    req.SessionID,
		History:      req.History,
	}

	start := time.Now()
	d := s.policy.Decide(nc)
	s.metrics.DecideDuration.Observe(time.Since(start).Seconds())
	s.metrics.DecisionsTotal.WithLabelValues(string(d.Action), d.ResponseKey).Inc()
	if clamps, ok := d.Metadata["clamps_applied"].([]string); ok {
		for _, kind := range clamps {
			s.metrics.ClampsTotal.WithLabelValues(kind).Inc()
		}
	}

	decisionID := "dec_" + uuid.New().String()

	md, err := json.Marshal(d.Metadata)
	if err != nil {
		md = nil
	}
	rec := &domain.DecisionRecord{
		DecisionID:    decisionID,
		SessionID:     req.SessionID,
		Action:        d.Action,
		ResponseKey:   d.ResponseKey,
		CounterPrice:  d.CounterPrice,
		CurrentOffer:  nc.CurrentOffer,
		PolicyVersion: d.PolicyVersion,
		Metadata:      md,
		CreatedAt:     time.Now(),
	}
	if err := s.store.CreateDecision(ctx, rec); err != nil {
		// Audit persistence must not fail the decision.
		log.Printf("failed to record decision %s: %v", decisionID, err)
	}

	return &domain.DecideResponse{
		DecisionID:       decisionID,
		Action:           d.Action,
		ResponseKey:      d.ResponseKey,
		CounterPrice:     d.CounterPrice,
		PolicyType:       d.PolicyType,
		PolicyVersion:    d.PolicyVersion,
		DecisionMetadata: d.Metadata,
	}, nil
}

// SessionDecisions returns the persisted audit trail for a session.
func (s *Service) SessionDecisions(ctx context.Context, sessionID string, limit int) ([]domain.DecisionRecord, error) {
	recs, err := s.store.ListSessionDecisions(ctx, sessionID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list session decisions: %w", err)
	}
	return recs, nil
}
