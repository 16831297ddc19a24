package domain

import (
	"fmt"

	"dario.cat/mergo"
)

// MergeStates applies a stage's result over the state it received. Keys in
// result override keys in current; keys only in current survive. Neither
// input is mutated.
func MergeStates(current, result State) (State, error) {
	if len(current) == 0 {
		return result.Clone(), nil
	}
	if len(result) == 0 {
		return current.Clone(), nil
	}

	merged := map[string]interface{}(current.Clone())
	overlay := map[string]interface{}(result)

	if err := mergo.Merge(&merged, overlay, mergo.WithOverride); err != nil {
		return nil, fmt.Errorf("merge states: %w", err)
	}

	return State(merged), nil
}
