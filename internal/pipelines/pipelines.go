// Package pipelines defines the two concrete workflow graphs: the
// discovery/ranking pipeline and the script pipeline. Stages close over the
// external collaborators; all control flow lives in the graphs themselves.
package pipelines

import (
	"log/slog"
	"time"

	"github.com/eleven-am/trendflow/internal/domain"
	"github.com/eleven-am/trendflow/internal/ports"
	"github.com/eleven-am/trendflow/internal/trends"
	"github.com/eleven-am/trendflow/internal/workflow"
)

// Deps are the external collaborators the pipeline stages call out to.
type Deps struct {
	Catalog     ports.Catalog
	Transcripts ports.TranscriptProvider
	Generator   ports.Generator
	Store       ports.Storage
	Config      *domain.Config
	Logger      *slog.Logger

	// Now is the clock used for view-velocity computation. Defaults to
	// time.Now.
	Now func() time.Time
}

// Pipelines holds the two compiled graphs.
type Pipelines struct {
	deps   Deps
	trends *trends.Aggregator
	logger *slog.Logger

	discovery *workflow.Runner
	script    *workflow.Runner
}

func New(deps Deps) (*Pipelines, error) {
	if deps.Config == nil {
		return nil, domain.NewConfigError("config", domain.ErrInvalidInput)
	}
	if deps.Logger == nil {
		deps.Logger = deps.Config.Logger
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}

	p := &Pipelines{
		deps:   deps,
		trends: trends.NewAggregator(deps.Store, deps.Config.Trends.MaxKeywords, deps.Logger),
		logger: deps.Logger.With("component", "pipelines"),
	}

	discovery, err := p.buildDiscoveryGraph()
	if err != nil {
		return nil, err
	}
	script, err := p.buildScriptGraph()
	if err != nil {
		return nil, err
	}

	p.discovery = discovery
	p.script = script
	return p, nil
}

// Discovery is the ranking/discovery pipeline:
// fetch_videos -> analyze_engagement -> detect_trends -> generate_titles -> format_output.
func (p *Pipelines) Discovery() *workflow.Runner {
	return p.discovery
}

// Script is the script-generation pipeline with its conditional entry fork.
func (p *Pipelines) Script() *workflow.Runner {
	return p.script
}
