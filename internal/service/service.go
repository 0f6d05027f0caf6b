// Package service coordinates a decide call across the admission guard, the
// policy, the audit store, and metrics.
package service

import (
	"github.com/hagglekit/strategy-engine/internal/config"
	"github.com/hagglekit/strategy-engine/internal/guard"
	"github.com/hagglekit/strategy-engine/internal/metrics"
	"github.com/hagglekit/strategy-engine/internal/policy"
	"github.com/hagglekit/strategy-engine/internal/store"
)

type Service struct {
	store   store.Store
	policy  policy.Policy
	guard   *guard.Engine
	metrics *metrics.Metrics
	config  *config.Config
}

func New(st store.Store, pol policy.Policy, g *guard.Engine, m *metrics.Metrics, cfg *config.Config) *Service {
	return &Service{
		store:   st,
		policy:  pol,
		guard:   g,
		metrics: m,
		config:  cfg,
	}
}
