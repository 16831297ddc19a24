package ports

import (
	"github.com/eleven-am/trendflow/internal/domain"
)

// Storage is the persistence collaborator. It is the only resource shared
// between concurrent pipeline runs, so implementations must serialize
// conflicting writes; in particular UpsertVideoIfAbsent must be atomic
// against concurrent duplicate inserts.
type Storage interface {
	// UpsertVideoIfAbsent inserts the video unless a record with the same
	// VideoID already exists. Reports whether an insert happened.
	UpsertVideoIfAbsent(video *domain.VideoRecord) (bool, error)

	VideoExists(videoID string) (bool, error)

	// UpsertTrend writes the trend record, replacing the stored count with the
	// record's count when the keyword already exists. The replace (not add)
	// conflict policy is intentional.
	UpsertTrend(trend *domain.TrendRecord) error

	ListTrends() ([]*domain.TrendRecord, error)

	InsertTitleSet(set *domain.GeneratedTitleSet) error

	InsertScript(script *domain.ScriptRecord) error

	// ScriptsByTopic returns the account's previously generated scripts whose
	// input title matches topic exactly.
	ScriptsByTopic(userID int, topic string) ([]*domain.ScriptRecord, error)

	InsertRemix(remix *domain.RemixRecord) error

	Close() error
}
