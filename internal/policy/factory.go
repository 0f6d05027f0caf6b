package policy

import (
	"fmt"

	"github.com/hagglekit/strategy-engine/internal/domain"
)

// New creates a policy of the given type. Only the rule-based cascade exists
// today; the indirection is the hook for swapping in a learned policy by
// configuration at service start.
func New(policyType string, cfg Config) (Policy, error) {
	switch domain.PolicyType(policyType) {
	case domain.PolicyTypeRuleBased:
		return NewRulePolicy(cfg), nil
	}
	return nil, fmt.Errorf("unknown policy type %q", policyType)
}
