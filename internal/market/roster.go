package market

import (
	"context"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/ternarybob/arbor"

	"github.com/isaacson-f/stock-bot/internal/interfaces"
	"github.com/isaacson-f/stock-bot/internal/models"
)

// DefaultRefreshSchedule refreshes the roster daily at 06:00.
const DefaultRefreshSchedule = "0 0 6 * * *"

// Roster keeps the latest constituent list of an index and refreshes it on
// a cron schedule.
type Roster struct {
	source interfaces.IndexProvider
	cron   *cron.Cron
	logger arbor.ILogger

	// loadMu serializes loads so concurrent first reads scrape once.
	loadMu sync.Mutex

	mu        sync.RWMutex
	members   []models.Constituent
	refreshed time.Time
}

// NewRoster creates an empty roster backed by source.
func NewRoster(source interfaces.IndexProvider, logger arbor.ILogger) *Roster {
	return &Roster{
		source: source,
		cron:   cron.New(cron.WithSeconds()),
		logger: logger,
	}
}

// Refresh reloads the constituent list. The previous list is kept on error.
func (r *Roster) Refresh(ctx context.Context) error {
	r.loadMu.Lock()
	defer r.loadMu.Unlock()
	return r.refresh(ctx)
}

func (r *Roster) refresh(ctx context.Context) error {
	members, err := r.source.Constituents(ctx)
	if err != nil {
		return err
	}

	r.mu.Lock()
	r.members = members
	r.refreshed = time.Now()
	r.mu.Unlock()

	if r.logger != nil {
		r.logger.Info().
			Int("constituents", len(members)).
			Msg("Index roster refreshed")
	}
	return nil
}

// Constituents returns a copy of the current list and when it was loaded.
// The list is loaded on first use.
func (r *Roster) Constituents(ctx context.Context) ([]models.Constituent, time.Time, error) {
	if !r.loaded() {
		r.loadMu.Lock()
		var err error
		if !r.loaded() {
			err = r.refresh(ctx)
		}
		r.loadMu.Unlock()
		if err != nil {
			return nil, time.Time{}, err
		}
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.Constituent, len(r.members))
	copy(out, r.members)
	return out, r.refreshed, nil
}

func (r *Roster) loaded() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.members != nil
}

// Start schedules periodic refreshes.
func (r *Roster) Start(schedule string) error {
	if schedule == "" {
		schedule = DefaultRefreshSchedule
	}

	_, err := r.cron.AddFunc(schedule, r.runRefresh)
	if err != nil {
		return err
	}

	r.cron.Start()
	if r.logger != nil {
		r.logger.Info().
			Str("schedule", schedule).
			Msg("Index roster refresh scheduled")
	}
	return nil
}

// Stop cancels scheduled refreshes and waits for a running one to finish.
func (r *Roster) Stop() {
	<-r.cron.Stop().Done()
	if r.logger != nil {
		r.logger.Info().Msg("Index roster refresh stopped")
	}
}

func (r *Roster) runRefresh() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := r.Refresh(ctx); err != nil && r.logger != nil {
		r.logger.Error().
			Err(err).
			Msg("Scheduled index refresh failed")
	}
}
