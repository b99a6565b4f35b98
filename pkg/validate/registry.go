package validate

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/reclint-labs/reclint/pkg/rules"
)

// Validator checks one file against one rule. The rule's kind decides
// which validator runs; implementations may assume the concrete rule
// type that kind maps to.
type Validator interface {
	// Validate reports the rule's findings for the file. An error
	// means the check itself could not run, not that the file is in
	// violation.
	Validate(ctx context.Context, req *Request, rule rules.Rule) ([]Finding, error)
}

// globalRegistry is the single global registry for all validators.
var globalRegistry = &Registry{
	validators: make(map[string]Validator),
}

// Registry maps rule kinds to their validators.
type Registry struct {
	mu         sync.RWMutex
	validators map[string]Validator
}

// Register adds a validator for a rule kind to the global registry.
// Call this from init() functions in validator files.
func Register(kind string, v Validator) {
	globalRegistry.mu.Lock()
	defer globalRegistry.mu.Unlock()
	globalRegistry.validators[kind] = v
}

// Lookup returns the validator for a rule kind.
func Lookup(kind string) (Validator, bool) {
	globalRegistry.mu.RLock()
	defer globalRegistry.mu.RUnlock()
	v, ok := globalRegistry.validators[kind]
	return v, ok
}

// Kinds returns all registered rule kinds, sorted.
func Kinds() []string {
	globalRegistry.mu.RLock()
	defer globalRegistry.mu.RUnlock()

	kinds := make([]string, 0, len(globalRegistry.validators))
	for k := range globalRegistry.validators {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}

// Run dispatches one rule to its registered validator.
func Run(ctx context.Context, req *Request, rule rules.Rule) ([]Finding, error) {
	v, ok := Lookup(rule.Kind())
	if !ok {
		return nil, fmt.Errorf("no validator for rule kind %q", rule.Kind())
	}
	return v.Validate(ctx, req, rule)
}

// badRuleType reports a kind/type mismatch from a misregistered
// validator.
func badRuleType(kind string, rule rules.Rule) error {
	return fmt.Errorf("validator %q: unexpected rule type %T", kind, rule)
}
