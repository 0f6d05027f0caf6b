package v1

import (
	"testing"

	"github.com/hagglekit/strategy-engine/internal/store"
	"github.com/hagglekit/strategy-engine/tests/helpers"
)

func newTestHandler(t *testing.T) (*Handler, *store.SQLiteStore) {
	t.Helper()

	svc, st := helpers.NewTestService(t)
	return NewHandler(svc), st
}
