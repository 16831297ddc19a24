package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCollaboratorErrorUnwraps(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewCollaboratorError("catalog", "search", cause)

	assert.True(t, IsCollaboratorError(err))
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "catalog[search]")
}

func TestCollaboratorErrorSurvivesWrapping(t *testing.T) {
	err := fmt.Errorf("stage failed: %w", NewCollaboratorError("transcripts", "fetch", ErrNoTranscript))

	assert.True(t, IsCollaboratorError(err))
	assert.ErrorIs(t, err, ErrNoTranscript)
}

func TestErrorPredicates(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		check    func(error) bool
		expected bool
	}{
		{
			name:     "graph definition error",
			err:      NewGraphDefinitionError("discovery", "fetch", "unregistered"),
			check:    IsGraphDefinitionError,
			expected: true,
		},
		{
			name:     "routing error",
			err:      &RoutingError{Stage: "entry", Label: "sideways"},
			check:    IsRoutingError,
			expected: true,
		},
		{
			name:     "generation failure",
			err:      &GenerationFailure{Message: "refused"},
			check:    IsGenerationFailure,
			expected: true,
		},
		{
			name:     "not found sentinel",
			err:      fmt.Errorf("lookup: %w", ErrNotFound),
			check:    IsNotFound,
			expected: true,
		},
		{
			name:     "unrelated error",
			err:      errors.New("boom"),
			check:    IsRoutingError,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.check(tt.err))
		})
	}
}

func TestGraphDefinitionErrorMessage(t *testing.T) {
	withStage := NewGraphDefinitionError("script", "remix", "terminal stage has outgoing routing")
	assert.Contains(t, withStage.Error(), `"script"`)
	assert.Contains(t, withStage.Error(), `"remix"`)

	withoutStage := NewGraphDefinitionError("script", "", "no entry point")
	assert.NotContains(t, withoutStage.Error(), "stage")
}
