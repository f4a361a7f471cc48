package source

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/datastax/cassandra-datatables/datatables"
	"github.com/datastax/cassandra-datatables/log"
	e "github.com/datastax/cassandra-datatables/rest/errors"
)

// Registry holds the tables served by the endpoints, by name
type Registry struct {
	mutex   sync.RWMutex
	tables  map[string]*registered
	options []datatables.Option
	logger  log.Logger
}

type registered struct {
	updater *Updater
	options []datatables.Option
}

// NewRegistry creates an empty registry. The options apply to the engines of
// every table, before the options of the table itself.
func NewRegistry(logger log.Logger, options ...datatables.Option) *Registry {
	return &Registry{
		tables:  make(map[string]*registered),
		options: options,
		logger:  logger,
	}
}

// Add loads the table and, when refreshInterval is positive, keeps reloading it
// in the background until Close is called.
func (r *Registry) Add(
	ctx context.Context,
	name string,
	source Source,
	refreshInterval time.Duration,
	options ...datatables.Option,
) error {
	r.mutex.RLock()
	_, exists := r.tables[name]
	r.mutex.RUnlock()
	if exists {
		return fmt.Errorf("table '%s' is already registered", name)
	}

	updater, err := NewUpdater(ctx, name, source, refreshInterval, r.logger)
	if err != nil {
		return fmt.Errorf("unable to load table '%s': %s", name, err)
	}

	r.mutex.Lock()
	if _, exists := r.tables[name]; exists {
		r.mutex.Unlock()
		updater.Stop()
		return fmt.Errorf("table '%s' is already registered", name)
	}
	r.tables[name] = &registered{updater: updater, options: options}
	r.mutex.Unlock()

	go updater.Start()

	r.logger.Info("table registered",
		"table", name,
		"rows", updater.Table().Len(),
		"refreshInterval", refreshInterval)
	return nil
}

// Names returns the registered table names, sorted
func (r *Registry) Names() []string {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	names := make([]string, 0, len(r.tables))
	for name := range r.tables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Table returns the current snapshot of a table
func (r *Registry) Table(name string) (*datatables.Table, error) {
	entry, err := r.lookup(name)
	if err != nil {
		return nil, err
	}
	return entry.updater.Table(), nil
}

// Engine returns an engine over the current snapshot of a table. Extra options
// are applied last.
func (r *Registry) Engine(name string, options ...datatables.Option) (*datatables.Engine, error) {
	entry, err := r.lookup(name)
	if err != nil {
		return nil, err
	}

	opts := make([]datatables.Option, 0, len(r.options)+len(entry.options)+len(options)+1)
	opts = append(opts, datatables.WithLogger(r.logger.With("table", name)))
	opts = append(opts, r.options...)
	opts = append(opts, entry.options...)
	opts = append(opts, options...)
	return datatables.NewEngine(entry.updater.Table(), opts...), nil
}

// Close stops the background reloads
func (r *Registry) Close() {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	for _, entry := range r.tables {
		entry.updater.Stop()
	}
}

func (r *Registry) lookup(name string) (*registered, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	entry, ok := r.tables[name]
	if !ok {
		return nil, e.NewNotFoundError(fmt.Sprintf("table '%s' not found", name))
	}
	return entry, nil
}
