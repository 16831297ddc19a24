package ports

import "context"

// Generator is the external text-generation collaborator: prompt in, text
// out, fallible. No streaming; a single request/response per call. The
// returned text may be a refusal sentinel, which callers must recognize.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
