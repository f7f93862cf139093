package spacex

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/rshade/launchdeck/internal/launch"
)

// Result is the outcome of the single load.
// Records is empty whenever Err is non-nil.
type Result struct {
	Records  []launch.Record
	Err      error
	Duration time.Duration
}

// Loader runs a Fetcher exactly once and remembers the result.
type Loader struct {
	fetcher Fetcher
	logger  zerolog.Logger

	once   sync.Once
	result Result
}

// NewLoader wraps fetcher.
func NewLoader(fetcher Fetcher, logger zerolog.Logger) *Loader {
	return &Loader{fetcher: fetcher, logger: logger}
}

// Load fetches the collection on the first call and returns the cached result
// on every later call. A failed fetch is logged and yields no records.
func (l *Loader) Load(ctx context.Context) Result {
	l.once.Do(func() {
		start := time.Now()
		records, err := l.fetcher.FetchLaunches(ctx)
		elapsed := time.Since(start)

		if err != nil {
			l.logger.Error().Err(err).Dur("elapsed", elapsed).Msg("error fetching launches")
			l.result = Result{Err: err, Duration: elapsed}
			return
		}

		l.logger.Info().Int("count", len(records)).Dur("elapsed", elapsed).Msg("launches loaded")
		l.result = Result{Records: records, Duration: elapsed}
	})
	return l.result
}
