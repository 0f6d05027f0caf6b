// Package guard provides the OPA admission policy evaluated before a request
// reaches the decision engine.
package guard

import (
	"context"
	"fmt"

	"github.com/open-policy-agent/opa/rego"
)

// Engine evaluates the admission policy for decide requests.
type Engine struct {
	query rego.PreparedEvalQuery
}

// New creates a guard engine with the given policy content.
func New(ctx context.Context, policyContent string) (*Engine, error) {
	r := rego.New(
		rego.Query("data.decide_guard.decision"),
		rego.Module("decide_guard.rego", policyContent),
	)

	query, err := r.PrepareForEval(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare rego: %w", err)
	}

	return &Engine{query: query}, nil
}

// Evaluate checks the admission policy for one request.
// Input should be a map with keys: floor_price, listed_price, current_offer,
// session_id. Returns "allow" or "block".
func (e *Engine) Evaluate(ctx context.Context, input interface{}) (string, error) {
	results, err := e.query.Eval(ctx, rego.EvalInput(input))
	if err != nil {
		return "", fmt.Errorf("failed to evaluate guard policy: %w", err)
	}

	if len(results) == 0 || len(results[0].Expressions) == 0 {
		// The policy defines a default, so an empty result means allow.
		return "allow", nil
	}

	if s, ok := results[0].Expressions[0].Value.(string); ok {
		return s, nil
	}

	return "allow", nil
}

// DefaultPolicy blocks requests whose economics cannot produce a safe
// decision: a non-positive floor, or a listing below the floor.
const DefaultPolicy = `
package decide_guard

import rego.v1

default decision := "allow"

decision := "block" if {
	input.floor_price <= 0
}

decision := "block" if {
	input.listed_price < input.floor_price
}
`
