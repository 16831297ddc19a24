// Package workflow implements a small interpreter for directed graphs of
// named stages. A graph is declared through a Builder, validated by Compile,
// and run by the resulting Runner, which threads a shared state along exactly
// one path from the entry stage to a terminal stage.
package workflow

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/eleven-am/trendflow/internal/domain"
)

// Label is the outcome of a decision function at a conditional branch point.
type Label string

// StageFunc is a single named unit of work. Stages are stateless and
// reentrant; they receive the accumulated state of their path and return the
// state with their additions applied.
type StageFunc func(ctx context.Context, state domain.State) (domain.State, error)

// DecisionFunc picks the outgoing label at a conditional branch point. It is
// evaluated against the state as received at the branching stage, before that
// stage's own output is applied.
type DecisionFunc func(state domain.State) Label

type conditional struct {
	decide  DecisionFunc
	targets map[Label]string
}

// Builder declares a workflow graph. Compile validates the declaration and
// returns a Runner.
type Builder struct {
	name         string
	stages       map[string]StageFunc
	edges        map[string]string
	conditionals map[string]conditional
	entry        string
	terminals    map[string]bool
}

func NewBuilder(name string) *Builder {
	return &Builder{
		name:         name,
		stages:       make(map[string]StageFunc),
		edges:        make(map[string]string),
		conditionals: make(map[string]conditional),
		terminals:    make(map[string]bool),
	}
}

func (b *Builder) AddStage(name string, fn StageFunc) *Builder {
	b.stages[name] = fn
	return b
}

// AddEdge declares an unconditional edge from one stage to another.
func (b *Builder) AddEdge(from, to string) *Builder {
	b.edges[from] = to
	return b
}

// AddConditionalEdges declares that routing out of from is decided at run
// time: decide is evaluated and its label looked up in targets.
func (b *Builder) AddConditionalEdges(from string, decide DecisionFunc, targets map[Label]string) *Builder {
	b.conditionals[from] = conditional{decide: decide, targets: targets}
	return b
}

func (b *Builder) SetEntryPoint(name string) *Builder {
	b.entry = name
	return b
}

// SetFinishPoint marks a stage as terminal. Reaching it ends the run.
func (b *Builder) SetFinishPoint(name string) *Builder {
	b.terminals[name] = true
	return b
}

// Compile validates the graph and returns a Runner. Every referenced stage
// must exist, every non-terminal stage must have exactly one outgoing route,
// terminal stages must have none, and the graph must be acyclic.
func (b *Builder) Compile(logger *slog.Logger) (*Runner, error) {
	if b.entry == "" {
		return nil, domain.NewGraphDefinitionError(b.name, "", "no entry point set")
	}
	if _, ok := b.stages[b.entry]; !ok {
		return nil, domain.NewGraphDefinitionError(b.name, b.entry, "entry stage not registered")
	}
	if len(b.terminals) == 0 {
		return nil, domain.NewGraphDefinitionError(b.name, "", "no finish point set")
	}

	for name := range b.terminals {
		if _, ok := b.stages[name]; !ok {
			return nil, domain.NewGraphDefinitionError(b.name, name, "finish point not registered")
		}
	}

	for from, to := range b.edges {
		if _, ok := b.stages[from]; !ok {
			return nil, domain.NewGraphDefinitionError(b.name, from, "edge source not registered")
		}
		if _, ok := b.stages[to]; !ok {
			return nil, domain.NewGraphDefinitionError(b.name, from, fmt.Sprintf("edge target %q not registered", to))
		}
	}

	for from, cond := range b.conditionals {
		if _, ok := b.stages[from]; !ok {
			return nil, domain.NewGraphDefinitionError(b.name, from, "conditional source not registered")
		}
		if cond.decide == nil {
			return nil, domain.NewGraphDefinitionError(b.name, from, "conditional edge has no decision function")
		}
		if len(cond.targets) == 0 {
			return nil, domain.NewGraphDefinitionError(b.name, from, "conditional edge has no targets")
		}
		for label, target := range cond.targets {
			if _, ok := b.stages[target]; !ok {
				return nil, domain.NewGraphDefinitionError(b.name, from,
					fmt.Sprintf("conditional target %q for label %q not registered", target, label))
			}
		}
	}

	for name := range b.stages {
		_, hasEdge := b.edges[name]
		_, hasConditional := b.conditionals[name]

		if b.terminals[name] {
			if hasEdge || hasConditional {
				return nil, domain.NewGraphDefinitionError(b.name, name, "terminal stage has outgoing routing")
			}
			continue
		}
		if hasEdge && hasConditional {
			return nil, domain.NewGraphDefinitionError(b.name, name, "stage has both unconditional and conditional routing")
		}
		if !hasEdge && !hasConditional {
			return nil, domain.NewGraphDefinitionError(b.name, name, "non-terminal stage has no outgoing edge")
		}
	}

	if cycle := b.findCycle(); cycle != "" {
		return nil, domain.NewGraphDefinitionError(b.name, cycle, "graph contains a cycle")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &Runner{
		name:         b.name,
		stages:       b.stages,
		edges:        b.edges,
		conditionals: b.conditionals,
		entry:        b.entry,
		terminals:    b.terminals,
		logger:       logger.With("component", "workflow", "graph", b.name),
	}, nil
}

// findCycle walks successors depth-first and returns a stage on a cycle, or
// empty when the graph is acyclic.
func (b *Builder) findCycle() string {
	const (
		unvisited = 0
		visiting  = 1
		done      = 2
	)
	colors := make(map[string]int, len(b.stages))

	var visit func(name string) string
	visit = func(name string) string {
		switch colors[name] {
		case visiting:
			return name
		case done:
			return ""
		}
		colors[name] = visiting
		for _, next := range b.successors(name) {
			if hit := visit(next); hit != "" {
				return hit
			}
		}
		colors[name] = done
		return ""
	}

	for name := range b.stages {
		if hit := visit(name); hit != "" {
			return hit
		}
	}
	return ""
}

func (b *Builder) successors(name string) []string {
	if to, ok := b.edges[name]; ok {
		return []string{to}
	}
	if cond, ok := b.conditionals[name]; ok {
		targets := make([]string, 0, len(cond.targets))
		for _, target := range cond.targets {
			targets = append(targets, target)
		}
		return targets
	}
	return nil
}
