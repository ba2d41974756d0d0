package engine

import (
	"context"
	"log/slog"
	"sync"

	"github.com/roach88/airdb/internal/event"
	"github.com/roach88/airdb/internal/store"
)

// Engine dispatches inbound events against the open airport database.
//
// The zero value is not usable; create engines with New.
type Engine struct {
	mu     sync.Mutex
	conn   connection
	logger *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used for diagnostics. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = l
	}
}

// New creates an engine with no open database.
func New(opts ...Option) *Engine {
	e := &Engine{
		conn:   closed{},
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Process handles one inbound event and returns the outbound events it
// produced, in order. A nil or empty result means "nothing to report".
func (e *Engine) Process(ctx context.Context, in event.Inbound) []event.Outbound {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.logger.Debug("processing event", "kind", kindOf(in))

	switch ev := in.(type) {
	case event.OpenDatabase:
		return e.openDatabase(ev.Path)
	case event.CloseDatabase:
		return e.closeDatabase()
	case event.QuitInitiated:
		return []event.Outbound{event.EndApplication{}}

	case event.StartContinentSearch:
		return e.searchContinents(ctx, ev)
	case event.LoadContinent:
		return e.loadContinent(ctx, ev)
	case event.SaveNewContinent:
		return e.saveNewContinent(ctx, ev)
	case event.SaveContinent:
		return e.saveContinent(ctx, ev)

	case event.StartCountrySearch:
		return e.searchCountries(ctx, ev)
	case event.LoadCountry:
		return e.loadCountry(ctx, ev)
	case event.SaveNewCountry:
		return e.saveNewCountry(ctx, ev)
	case event.SaveCountry:
		return e.saveCountry(ctx, ev)

	case event.StartRegionSearch:
		return e.searchRegions(ctx, ev)
	case event.LoadRegion:
		return e.loadRegion(ctx, ev)
	case event.SaveNewRegion:
		return e.saveNewRegion(ctx, ev)
	case event.SaveRegion:
		return e.saveRegion(ctx, ev)

	default:
		e.logger.Error("unhandled inbound event", "kind", kindOf(in))
		return nil
	}
}

// IsOpen reports whether a database is open.
func (e *Engine) IsOpen() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	_, ok := e.conn.(open)
	return ok
}

// Path returns the path of the open database, or "" when closed.
func (e *Engine) Path() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	if c, ok := e.conn.(open); ok {
		return c.path
	}
	return ""
}

// Close closes the open database, if any, without producing events.
// Hosts call it on shutdown.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	c, ok := e.conn.(open)
	if !ok {
		return nil
	}
	e.conn = closed{}
	return c.store.Close()
}

func (e *Engine) openDatabase(path string) []event.Outbound {
	if c, ok := e.conn.(open); ok {
		e.conn = closed{}
		if err := c.store.Close(); err != nil {
			e.logger.Warn("closing previous database failed", "path", c.path, "error", err)
		}
	}

	s, err := store.Open(path)
	if err != nil {
		e.logger.Info("open database failed", "path", path, "error", err)
		return []event.Outbound{event.DatabaseOpenFailed{Reason: err.Error()}}
	}

	e.conn = open{store: s, path: path}
	e.logger.Info("database opened", "path", path)
	return []event.Outbound{event.DatabaseOpened{Path: path}}
}

func (e *Engine) closeDatabase() []event.Outbound {
	c, ok := e.conn.(open)
	if !ok {
		return nil
	}

	e.conn = closed{}
	if err := c.store.Close(); err != nil {
		e.logger.Warn("close database failed", "path", c.path, "error", err)
	}
	e.logger.Info("database closed", "path", c.path)
	return []event.Outbound{event.DatabaseClosed{}}
}

// currentStore returns the open store or ErrDatabaseClosed.
func (e *Engine) currentStore() (*store.Store, error) {
	c, ok := e.conn.(open)
	if !ok {
		return nil, ErrDatabaseClosed
	}
	return c.store, nil
}

// readFailed reports a search or load error.
func (e *Engine) readFailed(kind string, err error) []event.Outbound {
	e.logger.Error("read failed", "kind", kind, "error", err)
	return []event.Outbound{event.Error{Message: err.Error()}}
}

func kindOf(in event.Inbound) string {
	if in == nil {
		return "<nil>"
	}
	return in.Kind()
}
