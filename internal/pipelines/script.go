package pipelines

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/eleven-am/trendflow/internal/domain"
	"github.com/eleven-am/trendflow/internal/ports"
	"github.com/eleven-am/trendflow/internal/workflow"
)

const (
	routeLeft  workflow.Label = "left"
	routeRight workflow.Label = "right"
)

func (p *Pipelines) buildScriptGraph() (*workflow.Runner, error) {
	return workflow.NewBuilder("script").
		AddStage("entry", p.scriptEntry).
		AddStage("search", p.searchRelated).
		AddStage("transcript", p.collectTranscripts).
		AddStage("past_scripts", p.lookupPastScripts).
		AddStage("generate", p.generateScript).
		AddStage("remix", p.remixScript).
		AddConditionalEdges("entry", chooseEntryPath, map[workflow.Label]string{
			routeLeft:  "search",
			routeRight: "remix",
		}).
		AddEdge("search", "transcript").
		AddEdge("transcript", "past_scripts").
		AddEdge("past_scripts", "generate").
		SetEntryPoint("entry").
		SetFinishPoint("generate").
		SetFinishPoint("remix").
		Compile(p.logger)
}

// chooseEntryPath routes right only when the caller asked for a remix and
// supplied a source URL; everything else takes the standard generation path.
func chooseEntryPath(state domain.State) workflow.Label {
	if _, hasURL := state.String("video_url"); state.Bool("remix") && hasURL {
		return routeRight
	}
	return routeLeft
}

func (p *Pipelines) scriptEntry(ctx context.Context, state domain.State) (domain.State, error) {
	return state, nil
}

// searchRelated fetches a small set of related videos for the topic.
func (p *Pipelines) searchRelated(ctx context.Context, state domain.State) (domain.State, error) {
	topic := scriptTopic(state)

	items, err := p.deps.Catalog.Search(ctx, topic, p.deps.Config.Discovery.SearchResultsPerTopic, ports.SearchOptions{})
	if err != nil {
		return nil, err
	}

	videos := make([]*domain.VideoRecord, 0, len(items))
	for _, item := range items {
		videos = append(videos, &domain.VideoRecord{
			VideoID:  item.VideoID,
			Title:    item.Title,
			VideoURL: watchURL(item.VideoID),
		})
	}
	return domain.State{"videos": videos}, nil
}

// collectTranscripts fetches a transcript per candidate video. A failed fetch
// skips that video; one bad transcript never fails the whole run.
func (p *Pipelines) collectTranscripts(ctx context.Context, state domain.State) (domain.State, error) {
	transcripts := []string{}
	links := []string{}

	for _, video := range state.Videos("videos") {
		text, err := p.deps.Transcripts.Fetch(ctx, video.VideoURL)
		if err != nil {
			p.logger.Debug("skipping video without transcript",
				"video_id", video.VideoID,
				"error", err.Error(),
			)
			continue
		}
		transcripts = append(transcripts, text)
		links = append(links, video.VideoURL)
	}

	return domain.State{
		"transcripts":   transcripts,
		"youtube_links": links,
	}, nil
}

// lookupPastScripts loads the account's previous scripts on the same topic as
// extra grounding context.
func (p *Pipelines) lookupPastScripts(ctx context.Context, state domain.State) (domain.State, error) {
	userID := state.IntOr("user_id", 0)
	topic := scriptTopic(state)

	records, err := p.deps.Store.ScriptsByTopic(userID, topic)
	if err != nil {
		return nil, domain.NewCollaboratorError("storage", "scripts_by_topic", err)
	}

	parts := make([]string, 0, len(records))
	for _, record := range records {
		parts = append(parts, record.GeneratedScript)
	}
	return domain.State{"past_scripts_text": strings.Join(parts, "\n")}, nil
}

// generateScript is the left-path terminal: it grounds the generator on the
// collected transcripts plus past-script context and returns the cleaned
// script with the source links used.
func (p *Pipelines) generateScript(ctx context.Context, state domain.State) (domain.State, error) {
	combined := strings.Join(state.Strings("transcripts"), "\n")
	if past, ok := state.String("past_scripts_text"); ok {
		combined += "\n\n" + past
	}

	raw, err := p.deps.Generator.Generate(ctx, scriptPrompt(combined,
		state.StringOr("mode", "Short-form"),
		state.StringOr("tone", "Casual"),
		state.StringOr("style", "Casual"),
	))
	if err != nil {
		return nil, err
	}

	links := state.Strings("youtube_links")
	if links == nil {
		links = []string{}
	}

	return domain.State{
		"generated_script":    CleanScript(raw),
		"combined_transcript": combined,
		"youtube_links":       links,
	}, nil
}

// remixScript is the right-path terminal. Unlike the left path, a missing
// transcript aborts the run: without it the remix would be meaningless.
func (p *Pipelines) remixScript(ctx context.Context, state domain.State) (domain.State, error) {
	videoURL, ok := state.String("video_url")
	if !ok {
		return nil, fmt.Errorf("remix requested without a video URL")
	}

	transcript, err := p.deps.Transcripts.Fetch(ctx, videoURL)
	if err != nil {
		return nil, fmt.Errorf("failed to extract transcript for %s: %w", videoURL, err)
	}

	mode := state.StringOr("mode", "Short-form")
	style := state.StringOr("style", "Casual")

	raw, err := p.deps.Generator.Generate(ctx, scriptPrompt(transcript,
		mode,
		state.StringOr("tone", "Casual"),
		style,
	))
	if err != nil {
		return nil, err
	}

	cleaned := CleanScript(raw)
	if sentinel := p.deps.Config.Generation.RefusalSentinel; sentinel != "" && strings.Contains(cleaned, sentinel) {
		return nil, &domain.GenerationFailure{Message: "script generation failed, try modifying the input"}
	}

	record := &domain.RemixRecord{
		ID:            uuid.New().String(),
		UserID:        state.IntOr("user_id", 0),
		VideoURL:      videoURL,
		Mode:          mode,
		Style:         style,
		Transcript:    transcript,
		RemixedScript: cleaned,
	}
	if err := p.deps.Store.InsertRemix(record); err != nil {
		return nil, domain.NewCollaboratorError("storage", "insert_remix", err)
	}

	return domain.State{
		"remixed_script":    cleaned,
		"remixed_script_id": record.ID,
	}, nil
}

func scriptTopic(state domain.State) string {
	if idea, ok := state.String("idea"); ok {
		return idea
	}
	return state.StringOr("title", "")
}
