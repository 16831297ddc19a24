package pipelines

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/eleven-am/trendflow/internal/domain"
	"github.com/eleven-am/trendflow/internal/metrics"
	"github.com/eleven-am/trendflow/internal/ports"
	"github.com/eleven-am/trendflow/internal/workflow"
)

func (p *Pipelines) buildDiscoveryGraph() (*workflow.Runner, error) {
	return workflow.NewBuilder("discovery").
		AddStage("fetch_videos", p.fetchVideos).
		AddStage("analyze_engagement", p.analyzeEngagement).
		AddStage("detect_trends", p.detectTrends).
		AddStage("generate_titles", p.generateTitles).
		AddStage("format_output", p.formatOutput).
		AddEdge("fetch_videos", "analyze_engagement").
		AddEdge("analyze_engagement", "detect_trends").
		AddEdge("detect_trends", "generate_titles").
		AddEdge("generate_titles", "format_output").
		SetEntryPoint("fetch_videos").
		SetFinishPoint("format_output").
		Compile(p.logger)
}

// fetchVideos searches the catalog, filters the candidates, computes all
// derived metrics, ranks, and persists every surviving video.
func (p *Pipelines) fetchVideos(ctx context.Context, state domain.State) (domain.State, error) {
	query := state.StringOr("query", "")
	maxResults := state.IntOr("max_results", p.deps.Config.Discovery.DefaultMaxResults)
	durationCategory, _ := state.String("duration_category")
	minViews, hasMinViews := state.Int("min_views")
	minSubscribers, hasMinSubscribers := state.Int("min_subscribers")
	uploadWindow, _ := state.String("upload_date")

	items, err := p.deps.Catalog.Search(ctx, query, maxResults, ports.SearchOptions{
		DurationFilter: durationCategory,
		UploadWindow:   uploadWindow,
	})
	if err != nil {
		return nil, err
	}

	marker := strings.ToLower(p.deps.Config.Discovery.ShortFormMarker)
	candidates := make([]ports.SearchItem, 0, len(items))
	videoIDs := make([]string, 0, len(items))
	channelIDs := make([]string, 0, len(items))
	for _, item := range items {
		if marker != "" && strings.Contains(strings.ToLower(item.Title), marker) {
			continue
		}
		candidates = append(candidates, item)
		videoIDs = append(videoIDs, item.VideoID)
		channelIDs = append(channelIDs, item.ChannelID)
	}

	if len(candidates) == 0 {
		return domain.State{"videos": []*domain.VideoRecord{}}, nil
	}

	stats, err := p.deps.Catalog.Statistics(ctx, videoIDs)
	if err != nil {
		return nil, err
	}
	subscribers, err := p.deps.Catalog.ChannelStatistics(ctx, channelIDs)
	if err != nil {
		return nil, err
	}

	now := p.deps.Now()
	videos := make([]*domain.VideoRecord, 0, len(candidates))
	for _, item := range candidates {
		stat, ok := stats[item.VideoID]
		if !ok || stat.DurationSeconds == 0 {
			continue
		}

		label := durationLabel(stat.DurationSeconds)
		if durationCategory != "" && durationCategory != label {
			continue
		}
		if hasMinViews && stat.Views < int64(minViews) {
			continue
		}

		subs := subscribers[item.ChannelID]
		if hasMinSubscribers && subs < int64(minSubscribers) {
			continue
		}

		video := &domain.VideoRecord{
			VideoID:       item.VideoID,
			Title:         item.Title,
			ChannelID:     item.ChannelID,
			ChannelName:   item.ChannelName,
			UploadDate:    item.PublishedAt,
			Thumbnail:     item.ThumbnailURL,
			VideoURL:      watchURL(item.VideoID),
			Views:         stat.Views,
			Likes:         stat.Likes,
			Comments:      stat.Comments,
			Subscribers:   subs,
			DurationSec:   stat.DurationSeconds,
			DurationLabel: label,
		}
		video.ViewToSubscriberRatio = metrics.ViewToSubscriberRatio(video.Views, video.Subscribers)
		video.ViewVelocity = metrics.ViewVelocity(video.Views, video.UploadDate, now)
		video.EngagementRate = metrics.EngagementRate(video.Likes, video.Comments, video.Views)
		video.CTR = metrics.ClickThroughRate(video.Likes, video.Views)

		videos = append(videos, video)
	}

	rankVideos(videos)

	for _, video := range videos {
		if _, err := p.deps.Store.UpsertVideoIfAbsent(video); err != nil {
			return nil, domain.NewCollaboratorError("storage", "upsert_video", err)
		}
	}

	p.logger.Debug("fetch stage complete",
		"query", query,
		"candidates", len(candidates),
		"ranked", len(videos),
	)
	return domain.State{"videos": videos}, nil
}

// analyzeEngagement recomputes engagement rates defensively in case the video
// list was reshaped upstream. A missing or malformed list becomes an empty
// one.
func (p *Pipelines) analyzeEngagement(ctx context.Context, state domain.State) (domain.State, error) {
	videos := state.Videos("videos")
	if videos == nil {
		videos = []*domain.VideoRecord{}
	}
	for _, video := range videos {
		video.EngagementRate = metrics.EngagementRate(video.Likes, video.Comments, video.Views)
	}
	return domain.State{"videos": videos}, nil
}

func (p *Pipelines) detectTrends(ctx context.Context, state domain.State) (domain.State, error) {
	batch, err := p.trends.Detect(state.Videos("videos"))
	if err != nil {
		return nil, err
	}
	return domain.State{"trends": batch}, nil
}

// generateTitles asks the generator for titles on the top trend's keyword,
// falling back to the original query. With no topic at all it short-circuits
// to an empty title list.
func (p *Pipelines) generateTitles(ctx context.Context, state domain.State) (domain.State, error) {
	topic := state.StringOr("query", "")
	if batch, ok := state["trends"].([]*domain.TrendRecord); ok && len(batch) > 0 {
		topic = batch[0].Keyword
	}
	if topic == "" {
		return domain.State{"titles": []string{}}, nil
	}

	raw, err := p.deps.Generator.Generate(ctx, titlesPrompt(topic, ""))
	if err != nil {
		return nil, err
	}

	titles := processTitles(raw)

	set := &domain.GeneratedTitleSet{
		ID:         uuid.New().String(),
		UserID:     state.IntOr("user_id", 1),
		VideoTopic: topic,
		Titles:     titles,
	}
	if err := p.deps.Store.InsertTitleSet(set); err != nil {
		return nil, domain.NewCollaboratorError("storage", "insert_title_set", err)
	}

	return domain.State{"titles": titles}, nil
}

// formatOutput is the discovery terminal: it projects the run into the three
// output keys and nothing else.
func (p *Pipelines) formatOutput(ctx context.Context, state domain.State) (domain.State, error) {
	videos := state.Videos("videos")
	if videos == nil {
		videos = []*domain.VideoRecord{}
	}

	topics := []string{}
	if batch, ok := state["trends"].([]*domain.TrendRecord); ok {
		for _, record := range batch {
			topics = append(topics, record.Keyword)
		}
	}

	titles := state.Strings("titles")
	if titles == nil {
		titles = []string{}
	}

	return domain.State{
		"videos":           videos,
		"trending_topics":  topics,
		"generated_titles": titles,
	}, nil
}

// rankVideos sorts descending by (view-to-subscriber ratio, view velocity,
// engagement rate), lexicographically. The sort is stable so re-ranking an
// already ranked list leaves the order unchanged.
func rankVideos(videos []*domain.VideoRecord) {
	sort.SliceStable(videos, func(i, j int) bool {
		a, b := videos[i], videos[j]
		if a.ViewToSubscriberRatio != b.ViewToSubscriberRatio {
			return a.ViewToSubscriberRatio > b.ViewToSubscriberRatio
		}
		if a.ViewVelocity != b.ViewVelocity {
			return a.ViewVelocity > b.ViewVelocity
		}
		return a.EngagementRate > b.EngagementRate
	})
}

// durationLabel buckets a video length in seconds.
func durationLabel(seconds int) string {
	switch {
	case seconds < 240:
		return "short"
	case seconds <= 1200:
		return "medium"
	default:
		return "long"
	}
}

func watchURL(videoID string) string {
	return "https://www.youtube.com/watch?v=" + videoID
}
