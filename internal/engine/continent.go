package engine

import (
	"context"

	"github.com/roach88/airdb/internal/event"
	"github.com/roach88/airdb/internal/model"
)

func (e *Engine) searchContinents(ctx context.Context, ev event.StartContinentSearch) []event.Outbound {
	s, err := e.currentStore()
	if err != nil {
		return e.readFailed(ev.Kind(), err)
	}

	rows, err := s.SearchContinents(ctx, model.ContinentFilter{
		ContinentCode: ev.ContinentCode,
		Name:          ev.Name,
	})
	if err != nil {
		return e.readFailed(ev.Kind(), err)
	}

	out := make([]event.Outbound, 0, len(rows))
	for _, c := range rows {
		out = append(out, event.ContinentSearchResult{Continent: c})
	}
	return out
}

func (e *Engine) loadContinent(ctx context.Context, ev event.LoadContinent) []event.Outbound {
	s, err := e.currentStore()
	if err != nil {
		return e.readFailed(ev.Kind(), err)
	}

	c, found, err := s.LoadContinent(ctx, ev.ContinentID)
	if err != nil {
		return e.readFailed(ev.Kind(), err)
	}
	if !found {
		return nil
	}
	return []event.Outbound{event.ContinentLoaded{Continent: c}}
}

func (e *Engine) saveNewContinent(ctx context.Context, ev event.SaveNewContinent) []event.Outbound {
	s, err := e.currentStore()
	if err != nil {
		return []event.Outbound{event.SaveContinentFailed{Reason: err.Error()}}
	}

	saved, err := s.InsertContinent(ctx, ev.Continent)
	if err != nil {
		e.logger.Info("save continent failed", "code", ev.Continent.ContinentCode, "error", err)
		return []event.Outbound{event.SaveContinentFailed{Reason: err.Error()}}
	}
	return []event.Outbound{event.ContinentSaved{Continent: saved}}
}

func (e *Engine) saveContinent(ctx context.Context, ev event.SaveContinent) []event.Outbound {
	s, err := e.currentStore()
	if err != nil {
		return []event.Outbound{event.SaveContinentFailed{Reason: err.Error()}}
	}

	if err := s.UpdateContinent(ctx, ev.Continent); err != nil {
		e.logger.Info("save continent failed", "id", ev.Continent.ContinentID, "error", err)
		return []event.Outbound{event.SaveContinentFailed{Reason: err.Error()}}
	}
	return []event.Outbound{event.ContinentSaved{Continent: ev.Continent}}
}
