package domain

import (
	"errors"
	"fmt"
)

// GraphDefinitionError reports a malformed workflow graph. It is only ever
// produced at compile time, never during a run.
type GraphDefinitionError struct {
	Graph   string
	Stage   string
	Message string
}

func (e *GraphDefinitionError) Error() string {
	if e.Stage != "" {
		return fmt.Sprintf("graph %q: stage %q: %s", e.Graph, e.Stage, e.Message)
	}
	return fmt.Sprintf("graph %q: %s", e.Graph, e.Message)
}

func NewGraphDefinitionError(graph, stage, message string) *GraphDefinitionError {
	return &GraphDefinitionError{Graph: graph, Stage: stage, Message: message}
}

// RoutingError reports a conditional edge that produced a label with no mapped
// target. This is a programming error in the pipeline definition and is fatal
// to the run.
type RoutingError struct {
	Stage string
	Label string
}

func (e *RoutingError) Error() string {
	return fmt.Sprintf("stage %q: no route for label %q", e.Stage, e.Label)
}

// CollaboratorError wraps a failure from an external collaborator (catalog,
// transcripts, generation, storage). The executor propagates it unchanged.
type CollaboratorError struct {
	Collaborator string
	Op           string
	Err          error
}

func (e *CollaboratorError) Error() string {
	return fmt.Sprintf("%s[%s]: %v", e.Collaborator, e.Op, e.Err)
}

func (e *CollaboratorError) Unwrap() error {
	return e.Err
}

func NewCollaboratorError(collaborator, op string, err error) *CollaboratorError {
	return &CollaboratorError{Collaborator: collaborator, Op: op, Err: err}
}

// GenerationFailure reports that the text-generation collaborator refused the
// request. It is distinct from a transport error: the call succeeded but the
// output is unusable.
type GenerationFailure struct {
	Message string
}

func (e *GenerationFailure) Error() string {
	return e.Message
}

var (
	ErrNotFound      = errors.New("resource not found")
	ErrInvalidInput  = errors.New("invalid input")
	ErrNoTranscript  = errors.New("no transcript could be obtained")
	ErrStorageClosed = errors.New("storage closed")
)

func IsGraphDefinitionError(err error) bool {
	var defErr *GraphDefinitionError
	return errors.As(err, &defErr)
}

func IsRoutingError(err error) bool {
	var routeErr *RoutingError
	return errors.As(err, &routeErr)
}

func IsCollaboratorError(err error) bool {
	var collabErr *CollaboratorError
	return errors.As(err, &collabErr)
}

func IsGenerationFailure(err error) bool {
	var genErr *GenerationFailure
	return errors.As(err, &genErr)
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
