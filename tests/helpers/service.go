// Package helpers provides shared constructors for tests.
package helpers

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/hagglekit/strategy-engine/internal/config"
	"github.com/hagglekit/strategy-engine/internal/guard"
	"github.com/hagglekit/strategy-engine/internal/metrics"
	"github.com/hagglekit/strategy-engine/internal/policy"
	"github.com/hagglekit/strategy-engine/internal/service"
	"github.com/hagglekit/strategy-engine/internal/store"
)

// NewTestSQLiteStore returns an in-memory store that closes with the test.
func NewTestSQLiteStore(t *testing.T) *store.SQLiteStore {
	t.Helper()

	s, err := store.NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("failed to create sqlite store: %v", err)
	}

	t.Cleanup(func() {
		_ = s.Close()
	})

	return s
}

// NewTestService wires a full service with an in-memory store, the default
// guard and rule policy, and an isolated metrics registry.
func NewTestService(t *testing.T) (*service.Service, *store.SQLiteStore) {
	t.Helper()

	st := NewTestSQLiteStore(t)

	g, err := guard.New(context.Background(), guard.DefaultPolicy)
	if err != nil {
		t.Fatalf("failed to create guard: %v", err)
	}

	pol := policy.NewRulePolicy(policy.DefaultConfig())
	m := metrics.New(prometheus.NewRegistry())

	cfg := &config.Config{
		PolicyType: "rule-based",
		Policy:     policy.DefaultConfig(),
	}

	return service.New(st, pol, g, m, cfg), st
}
