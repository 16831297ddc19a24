package workflow

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/eleven-am/trendflow/internal/domain"
)

// Runner is a compiled workflow graph. A Runner is immutable and safe for
// concurrent use; every Invoke runs on its own state.
type Runner struct {
	name         string
	stages       map[string]StageFunc
	edges        map[string]string
	conditionals map[string]conditional
	entry        string
	terminals    map[string]bool
	logger       *slog.Logger
}

// Invoke runs the graph from the entry stage over a copy of initial and
// returns the state produced by whichever terminal stage the path reaches.
// Execution is strictly sequential along one path. Stage errors propagate
// unchanged: there is no retry and no partial-state checkpointing, so a run
// is all-or-nothing from the runner's point of view.
func (r *Runner) Invoke(ctx context.Context, initial domain.State) (domain.State, error) {
	runID := uuid.New().String()
	logger := r.logger.With("run_id", runID)

	state := initial.Clone()
	current := r.entry
	started := time.Now()

	logger.Debug("workflow run starting", "entry", current)

	for {
		fn := r.stages[current]

		// The state as received here also feeds any conditional routing
		// decision out of this stage.
		received := state

		stageStarted := time.Now()
		result, err := fn(ctx, received)
		if err != nil {
			logger.Error("stage failed",
				"stage", current,
				"duration", time.Since(stageStarted),
				"error", err.Error(),
			)
			return nil, err
		}

		state, err = domain.MergeStates(received, result)
		if err != nil {
			return nil, err
		}

		logger.Debug("stage completed",
			"stage", current,
			"duration", time.Since(stageStarted),
		)

		if r.terminals[current] {
			logger.Debug("workflow run completed",
				"terminal", current,
				"duration", time.Since(started),
			)
			return state, nil
		}

		next, err := r.route(current, received)
		if err != nil {
			return nil, err
		}
		current = next
	}
}

func (r *Runner) route(current string, received domain.State) (string, error) {
	if to, ok := r.edges[current]; ok {
		return to, nil
	}

	cond := r.conditionals[current]
	label := cond.decide(received)
	target, ok := cond.targets[label]
	if !ok {
		return "", &domain.RoutingError{Stage: current, Label: string(label)}
	}

	r.logger.Debug("conditional route taken",
		"stage", current,
		"label", string(label),
		"target", target,
	)
	return target, nil
}
