package trends

import (
	"log/slog"
	"sort"

	"github.com/eleven-am/trendflow/internal/domain"
	"github.com/eleven-am/trendflow/internal/ports"
)

// Aggregator builds keyword counts over a batch of persisted videos and
// merges them into the trend store. It is a secondary index over the video
// store, not a primary store: videos that were never persisted are skipped.
type Aggregator struct {
	store    ports.Storage
	logger   *slog.Logger
	maxTerms int
}

func NewAggregator(store ports.Storage, maxTerms int, logger *slog.Logger) *Aggregator {
	return &Aggregator{
		store:    store,
		logger:   logger.With("component", "trend-aggregator"),
		maxTerms: maxTerms,
	}
}

// AggregateBatch extracts keywords from the titles of every video in the
// batch that exists in the durable video store and counts occurrences per
// keyword. The representative video for a keyword is the first video observed
// for it in this batch. Results are sorted by count descending, ties broken
// by first-seen order.
func (a *Aggregator) AggregateBatch(videos []*domain.VideoRecord) ([]*domain.TrendRecord, error) {
	counts := make(map[string]*domain.TrendRecord)
	var order []string

	for _, video := range videos {
		exists, err := a.store.VideoExists(video.VideoID)
		if err != nil {
			return nil, domain.NewCollaboratorError("storage", "video_exists", err)
		}
		if !exists {
			a.logger.Debug("skipping unpersisted video",
				"video_id", video.VideoID,
			)
			continue
		}

		for _, keyword := range ExtractKeywords(video.Title, a.maxTerms) {
			if record, ok := counts[keyword]; ok {
				record.Count++
				continue
			}
			counts[keyword] = &domain.TrendRecord{
				Keyword: keyword,
				VideoID: video.VideoID,
				Count:   1,
			}
			order = append(order, keyword)
		}
	}

	firstSeen := make(map[string]int, len(order))
	for i, keyword := range order {
		firstSeen[keyword] = i
	}

	batch := make([]*domain.TrendRecord, 0, len(order))
	for _, keyword := range order {
		batch = append(batch, counts[keyword])
	}

	sort.SliceStable(batch, func(i, j int) bool {
		if batch[i].Count != batch[j].Count {
			return batch[i].Count > batch[j].Count
		}
		return firstSeen[batch[i].Keyword] < firstSeen[batch[j].Keyword]
	})

	return batch, nil
}

// MergeIntoStore upserts every record of the batch. The conflict policy on an
// existing keyword is replace-count, not additive: cumulative totals require
// re-running aggregation over the full video population.
func (a *Aggregator) MergeIntoStore(batch []*domain.TrendRecord) error {
	for _, record := range batch {
		if err := a.store.UpsertTrend(record); err != nil {
			return domain.NewCollaboratorError("storage", "upsert_trend", err)
		}
	}
	return nil
}

// Detect runs aggregation over the batch and persists the result, returning
// the sorted batch counts.
func (a *Aggregator) Detect(videos []*domain.VideoRecord) ([]*domain.TrendRecord, error) {
	batch, err := a.AggregateBatch(videos)
	if err != nil {
		return nil, err
	}
	if err := a.MergeIntoStore(batch); err != nil {
		return nil, err
	}
	a.logger.Debug("trend detection complete",
		"videos", len(videos),
		"keywords", len(batch),
	)
	return batch, nil
}
