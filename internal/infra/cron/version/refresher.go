package version

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"github.com/lloydmeta/esversions/internal/domain/tracing"
	"github.com/lloydmeta/esversions/internal/domain/version"
)

// DefaultSchedule regenerates the table once a day, at midnight UTC
const DefaultSchedule = "@daily"

type refresherImpl struct {
	cron *cron.Cron

	schedule string

	registry *version.Swappable

	horizon uint

	source clockwork.Clock

	tracer tracing.Tracer

	mu sync.Mutex

	entryId *cron.EntryID
}

// Returns the default implementation of a Refresher that delegates scheduling to
// the standard robfig/cron.
//
// Each refresh regenerates the table for the source's current year and the given horizon and swaps
// it into registry, as long as it only appends to the current table.
func NewRefresher(registry *version.Swappable, horizon uint, schedule string, source clockwork.Clock, tracer tracing.Tracer) version.Refresher {
	if schedule == "" {
		schedule = DefaultSchedule
	}
	return &refresherImpl{
		cron:     cron.New(cron.WithLocation(time.UTC), cron.WithLogger(zeroLogCronLogger{})),
		schedule: schedule,
		registry: registry,
		horizon:  horizon,
		source:   source,
		tracer:   tracer,
	}
}

func (i *refresherImpl) Refresh() (bool, error) {
	next, err := version.New(version.WithClock(i.source), version.WithHorizon(i.horizon))
	if err != nil {
		return false, err
	}
	grew, err := i.registry.Swap(next)
	if err != nil {
		return false, err
	}
	if grew && log.Info().Enabled() {
		all := next.All()
		log.Info().
			Uint("horizon", i.horizon).
			Str("newest", string(all[len(all)-1].ID)).
			Int("versions", len(all)).
			Msg("Regenerated ECMAScript version table")
	}
	return grew, nil
}

func (i *refresherImpl) Start() error {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.entryId == nil {
		var job cron.Job = cron.FuncJob(func() {
			tx := i.tracer.BackgroundTx("es-versions-refresh")
			defer tx.End()
			if _, err := i.Refresh(); err != nil {
				log.Error().
					Err(err).
					Str("schedule", i.schedule).
					Msg("Failed to regenerate ECMAScript version table, keeping the current one")
			}
		})
		job = cron.NewChain(
			cron.Recover(zeroLogCronLogger{}),
			cron.SkipIfStillRunning(zeroLogCronLogger{}),
		).Then(job)

		entryId, err := i.cron.AddJob(i.schedule, job)
		if err != nil {
			return err
		}
		i.entryId = &entryId
		log.Info().Str("schedule", i.schedule).Msg("Scheduled ECMAScript version table refresh")
	}
	i.cron.Start()
	return nil
}

func (i *refresherImpl) Stop() {
	i.mu.Lock()
	defer i.mu.Unlock()
	<-i.cron.Stop().Done()
}
