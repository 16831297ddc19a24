package trends

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eleven-am/trendflow/internal/adapters/storage"
	"github.com/eleven-am/trendflow/internal/domain"
)

func newTestAggregator(t *testing.T) (*Aggregator, *storage.Store) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store, err := storage.OpenInMemory(logger)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return NewAggregator(store, 5, logger), store
}

func persistVideos(t *testing.T, store *storage.Store, videos ...*domain.VideoRecord) {
	t.Helper()
	for _, video := range videos {
		_, err := store.UpsertVideoIfAbsent(video)
		require.NoError(t, err)
	}
}

func TestAggregateBatch(t *testing.T) {
	agg, store := newTestAggregator(t)

	videos := []*domain.VideoRecord{
		{VideoID: "vid00000001", Title: "Go concurrency patterns"},
		{VideoID: "vid00000002", Title: "Concurrency explained simply"},
		{VideoID: "vid00000003", Title: "Concurrency pitfalls"},
	}
	persistVideos(t, store, videos...)

	batch, err := agg.AggregateBatch(videos)
	require.NoError(t, err)
	require.NotEmpty(t, batch)

	assert.Equal(t, "concurrency", batch[0].Keyword)
	assert.Equal(t, 3, batch[0].Count)
	assert.Equal(t, "vid00000001", batch[0].VideoID, "representative video is the first seen")

	for i := 1; i < len(batch); i++ {
		assert.LessOrEqual(t, batch[i].Count, batch[i-1].Count)
	}
}

func TestAggregateBatchSkipsUnpersistedVideos(t *testing.T) {
	agg, store := newTestAggregator(t)

	persisted := &domain.VideoRecord{VideoID: "vid00000001", Title: "persisted topic"}
	persistVideos(t, store, persisted)

	batch, err := agg.AggregateBatch([]*domain.VideoRecord{
		persisted,
		{VideoID: "vid00000099", Title: "ghost topic"},
	})
	require.NoError(t, err)

	for _, record := range batch {
		assert.NotEqual(t, "ghost", record.Keyword)
		assert.Equal(t, "vid00000001", record.VideoID)
	}
}

func TestAggregateBatchEmptyInput(t *testing.T) {
	agg, _ := newTestAggregator(t)

	batch, err := agg.AggregateBatch(nil)
	require.NoError(t, err)
	assert.Empty(t, batch)
}

func TestAggregateBatchIsDeterministic(t *testing.T) {
	agg, store := newTestAggregator(t)

	videos := []*domain.VideoRecord{
		{VideoID: "vid00000001", Title: "alpha beta"},
		{VideoID: "vid00000002", Title: "beta gamma"},
		{VideoID: "vid00000003", Title: "gamma alpha"},
	}
	persistVideos(t, store, videos...)

	first, err := agg.AggregateBatch(videos)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := agg.AggregateBatch(videos)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestMergeIntoStoreReplacesCounts(t *testing.T) {
	agg, store := newTestAggregator(t)

	require.NoError(t, agg.MergeIntoStore([]*domain.TrendRecord{
		{Keyword: "pasta", VideoID: "vid00000001", Count: 5},
	}))
	require.NoError(t, agg.MergeIntoStore([]*domain.TrendRecord{
		{Keyword: "pasta", VideoID: "vid00000002", Count: 2},
	}))

	records, err := store.ListTrends()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 2, records[0].Count, "a later batch replaces the stored count")
	assert.Equal(t, "vid00000002", records[0].VideoID)
}

func TestDetectAggregatesAndPersists(t *testing.T) {
	agg, store := newTestAggregator(t)

	videos := []*domain.VideoRecord{
		{VideoID: "vid00000001", Title: "sourdough starter guide"},
		{VideoID: "vid00000002", Title: "sourdough mistakes"},
	}
	persistVideos(t, store, videos...)

	batch, err := agg.Detect(videos)
	require.NoError(t, err)
	require.NotEmpty(t, batch)
	assert.Equal(t, "sourdough", batch[0].Keyword)

	stored, err := store.ListTrends()
	require.NoError(t, err)
	assert.Len(t, stored, len(batch))
}
