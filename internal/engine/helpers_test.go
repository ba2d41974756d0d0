package engine

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roach88/airdb/internal/event"
	"github.com/roach88/airdb/internal/model"
	"github.com/roach88/airdb/internal/testutil"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newOpenEngine returns an engine attached to a fresh airport database.
func newOpenEngine(t *testing.T) (*Engine, string) {
	t.Helper()
	path := testutil.NewAirportDB(t)
	e := New(WithLogger(quietLogger()))
	out := e.Process(t.Context(), event.OpenDatabase{Path: path})
	require.Equal(t, []event.Outbound{event.DatabaseOpened{Path: path}}, out)
	t.Cleanup(func() { e.Close() })
	return e, path
}

// mustSaveContinent inserts a continent through the engine.
func mustSaveContinent(t *testing.T, e *Engine, code, name string) model.Continent {
	t.Helper()
	out := e.Process(t.Context(), event.SaveNewContinent{Continent: model.Continent{ContinentCode: code, Name: name}})
	require.Len(t, out, 1)
	saved, ok := out[0].(event.ContinentSaved)
	require.True(t, ok, "got %#v", out[0])
	return saved.Continent
}

// mustSaveCountry inserts a country through the engine.
func mustSaveCountry(t *testing.T, e *Engine, c model.Country) model.Country {
	t.Helper()
	out := e.Process(t.Context(), event.SaveNewCountry{Country: c})
	require.Len(t, out, 1)
	saved, ok := out[0].(event.CountrySaved)
	require.True(t, ok, "got %#v", out[0])
	return saved.Country
}
