package engine

import (
	"context"

	"github.com/roach88/airdb/internal/event"
	"github.com/roach88/airdb/internal/model"
)

func (e *Engine) searchCountries(ctx context.Context, ev event.StartCountrySearch) []event.Outbound {
	s, err := e.currentStore()
	if err != nil {
		return e.readFailed(ev.Kind(), err)
	}

	rows, err := s.SearchCountries(ctx, model.CountryFilter{
		CountryCode: ev.CountryCode,
		Name:        ev.Name,
	})
	if err != nil {
		return e.readFailed(ev.Kind(), err)
	}

	out := make([]event.Outbound, 0, len(rows))
	for _, c := range rows {
		out = append(out, event.CountrySearchResult{Country: c})
	}
	return out
}

func (e *Engine) loadCountry(ctx context.Context, ev event.LoadCountry) []event.Outbound {
	s, err := e.currentStore()
	if err != nil {
		return e.readFailed(ev.Kind(), err)
	}

	c, found, err := s.LoadCountry(ctx, ev.CountryID)
	if err != nil {
		return e.readFailed(ev.Kind(), err)
	}
	if !found {
		return nil
	}
	return []event.Outbound{event.CountryLoaded{Country: c}}
}

func (e *Engine) saveNewCountry(ctx context.Context, ev event.SaveNewCountry) []event.Outbound {
	s, err := e.currentStore()
	if err != nil {
		return []event.Outbound{event.SaveCountryFailed{Reason: err.Error()}}
	}

	saved, err := s.InsertCountry(ctx, ev.Country)
	if err != nil {
		e.logger.Info("save country failed", "code", ev.Country.CountryCode, "error", err)
		return []event.Outbound{event.SaveCountryFailed{Reason: err.Error()}}
	}
	return []event.Outbound{event.CountrySaved{Country: saved}}
}

func (e *Engine) saveCountry(ctx context.Context, ev event.SaveCountry) []event.Outbound {
	s, err := e.currentStore()
	if err != nil {
		return []event.Outbound{event.SaveCountryFailed{Reason: err.Error()}}
	}

	if err := s.UpdateCountry(ctx, ev.Country); err != nil {
		e.logger.Info("save country failed", "id", ev.Country.CountryID, "error", err)
		return []event.Outbound{event.SaveCountryFailed{Reason: err.Error()}}
	}
	return []event.Outbound{event.CountrySaved{Country: ev.Country}}
}
