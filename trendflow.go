// Package trendflow provides a content research and scripting engine for
// YouTube creators.
//
// Trendflow composes external collaborators (the video catalog, the timed-text
// transcript endpoint, and a text-generation service) into two sequential
// pipelines:
//   - Discovery: search, rank by performance metrics, detect trending
//     keywords, and draft video titles.
//   - Script: ground a new script on related transcripts and past work, or
//     remix a single source video.
//
// Basic usage:
//
//	config := trendflow.NewConfig("./data", catalogKey, generationKey, logger)
//	manager, err := trendflow.New(config)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer manager.Close()
//
//	result, err := manager.FindViralIdeas(ctx, trendflow.DiscoveryRequest{
//	    Query: "sourdough baking",
//	})
package trendflow

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/eleven-am/trendflow/internal/adapters/catalog"
	"github.com/eleven-am/trendflow/internal/adapters/generation"
	"github.com/eleven-am/trendflow/internal/adapters/storage"
	"github.com/eleven-am/trendflow/internal/adapters/transcripts"
	"github.com/eleven-am/trendflow/internal/domain"
	"github.com/eleven-am/trendflow/internal/pipelines"
)

// Config carries every tunable of the engine. NewConfig fills in working
// defaults for everything except the data directory and API keys.
type Config = domain.Config

// VideoRecord is a ranked video with its raw counters and derived metrics.
type VideoRecord = domain.VideoRecord

// TrendRecord is a persisted keyword counter with its representative video.
type TrendRecord = domain.TrendRecord

// ScriptRecord is a persisted generated script.
type ScriptRecord = domain.ScriptRecord

// GenerationFailure reports that the text-generation service refused the
// request; retrying with different input may succeed.
type GenerationFailure = domain.GenerationFailure

// NewConfig builds a configuration with default endpoints and limits.
func NewConfig(dataDir, catalogKey, generationKey string, logger *slog.Logger) *Config {
	return domain.NewConfigFromSimple(dataDir, catalogKey, generationKey, logger)
}

// DiscoveryRequest parameterizes one discovery run. Zero values mean
// "unfiltered": no minimum counters, no duration or upload-window constraint,
// and the configured default result count.
type DiscoveryRequest struct {
	Query            string
	MaxResults       int
	DurationCategory string
	MinViews         int
	MinSubscribers   int
	UploadWindow     string
	UserID           int
}

// DiscoveryResult is the projection of a discovery run: ranked videos,
// trending keywords in descending batch count, and drafted titles.
type DiscoveryResult struct {
	Videos          []*VideoRecord
	TrendingTopics  []string
	GeneratedTitles []string
}

// ScriptRequest parameterizes one script run. Setting Remix together with
// VideoURL switches the run to the remix path; otherwise the engine grounds a
// fresh script on related transcripts for Idea.
type ScriptRequest struct {
	Idea     string
	UserID   int
	Mode     string
	Tone     string
	Style    string
	Remix    bool
	VideoURL string
}

// ScriptResult is the outcome of a script run. Remixed reports which path the
// run took; SourceLinks is only populated on the grounded path.
type ScriptResult struct {
	Script      string
	ScriptID    string
	SourceLinks []string
	Remixed     bool
}

// Manager owns the durable store, the external collaborators, and the two
// compiled pipelines. A Manager is safe for concurrent use; runs never share
// state.
type Manager struct {
	config    *Config
	logger    *slog.Logger
	store     *storage.Store
	pipelines *pipelines.Pipelines
}

// New validates the configuration, opens the store, and compiles both
// pipelines. Errors here are configuration or storage problems; no network
// calls happen until the first run.
func New(config *Config) (*Manager, error) {
	if config == nil {
		return nil, domain.NewConfigError("config", domain.ErrInvalidInput)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	logger := config.Logger.With("component", "trendflow")

	store, err := storage.Open(config.DataDir, config.Logger)
	if err != nil {
		return nil, err
	}

	p, err := pipelines.New(pipelines.Deps{
		Catalog:     catalog.New(config.Catalog, config.Logger),
		Transcripts: transcripts.New(config.Transcripts, config.Logger),
		Generator:   generation.New(config.Generation, config.Logger),
		Store:       store,
		Config:      config,
		Logger:      config.Logger,
	})
	if err != nil {
		store.Close()
		return nil, err
	}

	return &Manager{
		config:    config,
		logger:    logger,
		store:     store,
		pipelines: p,
	}, nil
}

// FindViralIdeas runs the discovery pipeline for the request and projects the
// final state into a DiscoveryResult.
func (m *Manager) FindViralIdeas(ctx context.Context, req DiscoveryRequest) (*DiscoveryResult, error) {
	state := domain.State{
		"query":   req.Query,
		"user_id": req.UserID,
	}
	if req.MaxResults > 0 {
		state["max_results"] = req.MaxResults
	}
	if req.DurationCategory != "" {
		state["duration_category"] = req.DurationCategory
	}
	if req.MinViews > 0 {
		state["min_views"] = req.MinViews
	}
	if req.MinSubscribers > 0 {
		state["min_subscribers"] = req.MinSubscribers
	}
	if req.UploadWindow != "" {
		state["upload_date"] = req.UploadWindow
	}

	final, err := m.pipelines.Discovery().Invoke(ctx, state)
	if err != nil {
		return nil, err
	}

	result := &DiscoveryResult{
		Videos:          final.Videos("videos"),
		TrendingTopics:  final.Strings("trending_topics"),
		GeneratedTitles: final.Strings("generated_titles"),
	}
	if result.Videos == nil {
		result.Videos = []*VideoRecord{}
	}
	if result.TrendingTopics == nil {
		result.TrendingTopics = []string{}
	}
	if result.GeneratedTitles == nil {
		result.GeneratedTitles = []string{}
	}
	return result, nil
}

// GenerateScript runs the script pipeline. On the grounded path the produced
// script is persisted under the requesting user before returning, so later
// runs on the same idea can build on it; the remix path persists inside the
// pipeline.
func (m *Manager) GenerateScript(ctx context.Context, req ScriptRequest) (*ScriptResult, error) {
	state := domain.State{
		"idea":    req.Idea,
		"user_id": req.UserID,
		"remix":   req.Remix,
	}
	if req.Mode != "" {
		state["mode"] = req.Mode
	}
	if req.Tone != "" {
		state["tone"] = req.Tone
	}
	if req.Style != "" {
		state["style"] = req.Style
	}
	if req.VideoURL != "" {
		state["video_url"] = req.VideoURL
	}

	final, err := m.pipelines.Script().Invoke(ctx, state)
	if err != nil {
		return nil, err
	}

	// The remix terminal always sets both keys; the cleaned script itself may
	// legitimately be empty, so classify on key presence rather than content.
	if _, ok := final["remixed_script"]; ok {
		return &ScriptResult{
			Script:   final.StringOr("remixed_script", ""),
			ScriptID: final.StringOr("remixed_script_id", ""),
			Remixed:  true,
		}, nil
	}

	script, _ := final.String("generated_script")
	record := &ScriptRecord{
		ID:              uuid.New().String(),
		UserID:          req.UserID,
		InputTitle:      req.Idea,
		GeneratedScript: script,
	}
	if err := m.store.InsertScript(record); err != nil {
		return nil, domain.NewCollaboratorError("storage", "insert_script", err)
	}

	links := final.Strings("youtube_links")
	if links == nil {
		links = []string{}
	}
	return &ScriptResult{
		Script:      script,
		ScriptID:    record.ID,
		SourceLinks: links,
	}, nil
}

// Trends returns every persisted trend counter, highest count first.
func (m *Manager) Trends() ([]*TrendRecord, error) {
	return m.store.ListTrends()
}

// Close releases the durable store. Close is idempotent.
func (m *Manager) Close() error {
	return m.store.Close()
}
