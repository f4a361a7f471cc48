package source

import (
	"context"
	"time"

	"github.com/datastax/cassandra-datatables/datatables"
	"github.com/datastax/cassandra-datatables/log"
	"go.uber.org/atomic"
)

// Updater keeps the snapshot of a table, reloading it from its source at a
// fixed interval. Readers always get a complete snapshot, a failed reload keeps
// the previous one.
type Updater struct {
	ctx            context.Context
	cancel         context.CancelFunc
	name           string
	source         Source
	updateInterval time.Duration
	table          atomic.Value
	loads          atomic.Int64
	lastErr        atomic.Error
	logger         log.Logger
}

// NewUpdater loads the table once, an error is returned if that first load fails
func NewUpdater(ctx context.Context, name string, source Source, updateInterval time.Duration, logger log.Logger) (*Updater, error) {
	updater := &Updater{
		name:           name,
		source:         source,
		updateInterval: updateInterval,
		logger:         logger.With("table", name),
	}
	updater.ctx, updater.cancel = context.WithCancel(context.Background())

	if err := updater.load(ctx); err != nil {
		updater.cancel()
		return nil, err
	}
	return updater, nil
}

func (u *Updater) Table() *datatables.Table {
	return u.table.Load().(*datatables.Table)
}

// Loads returns the number of successful loads
func (u *Updater) Loads() int64 {
	return u.loads.Load()
}

// LastError returns the error of the last reload, nil if it succeeded
func (u *Updater) LastError() error {
	return u.lastErr.Load()
}

// Start reloads the table until Stop is called. It blocks, and returns
// immediately when no interval is set.
func (u *Updater) Start() {
	if u.updateInterval <= 0 {
		return
	}
	for u.sleep() {
		u.update()
	}
}

func (u *Updater) Stop() {
	u.cancel()
}

func (u *Updater) update() {
	if err := u.load(u.ctx); err != nil {
		if u.ctx.Err() != nil {
			return
		}
		u.logger.Error("unable to reload table", "error", err)
	}
}

func (u *Updater) load(ctx context.Context) error {
	start := time.Now()
	records, err := u.source.Load(ctx)
	if err != nil {
		u.lastErr.Store(err)
		return err
	}

	u.table.Store(datatables.NewTable(records))
	u.lastErr.Store(nil)
	u.loads.Inc()

	u.logger.Debug("table loaded",
		"rows", len(records),
		"duration", time.Since(start))
	return nil
}

func (u *Updater) sleep() bool {
	select {
	case <-time.After(u.updateInterval):
		return true
	case <-u.ctx.Done():
		return false
	}
}
