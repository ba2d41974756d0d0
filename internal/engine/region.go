package engine

import (
	"context"

	"github.com/roach88/airdb/internal/event"
	"github.com/roach88/airdb/internal/model"
)

func (e *Engine) searchRegions(ctx context.Context, ev event.StartRegionSearch) []event.Outbound {
	s, err := e.currentStore()
	if err != nil {
		return e.readFailed(ev.Kind(), err)
	}

	rows, err := s.SearchRegions(ctx, model.RegionFilter{
		RegionCode: ev.RegionCode,
		LocalCode:  ev.LocalCode,
		Name:       ev.Name,
	})
	if err != nil {
		return e.readFailed(ev.Kind(), err)
	}

	out := make([]event.Outbound, 0, len(rows))
	for _, r := range rows {
		out = append(out, event.RegionSearchResult{Region: r})
	}
	return out
}

func (e *Engine) loadRegion(ctx context.Context, ev event.LoadRegion) []event.Outbound {
	s, err := e.currentStore()
	if err != nil {
		return e.readFailed(ev.Kind(), err)
	}

	r, found, err := s.LoadRegion(ctx, ev.RegionID)
	if err != nil {
		return e.readFailed(ev.Kind(), err)
	}
	if !found {
		return nil
	}
	return []event.Outbound{event.RegionLoaded{Region: r}}
}

func (e *Engine) saveNewRegion(ctx context.Context, ev event.SaveNewRegion) []event.Outbound {
	s, err := e.currentStore()
	if err != nil {
		return []event.Outbound{event.SaveRegionFailed{Reason: err.Error()}}
	}

	saved, err := s.InsertRegion(ctx, ev.Region)
	if err != nil {
		e.logger.Info("save region failed", "code", ev.Region.RegionCode, "error", err)
		return []event.Outbound{event.SaveRegionFailed{Reason: err.Error()}}
	}
	return []event.Outbound{event.RegionSaved{Region: saved}}
}

func (e *Engine) saveRegion(ctx context.Context, ev event.SaveRegion) []event.Outbound {
	s, err := e.currentStore()
	if err != nil {
		return []event.Outbound{event.SaveRegionFailed{Reason: err.Error()}}
	}

	if err := s.UpdateRegion(ctx, ev.Region); err != nil {
		e.logger.Info("save region failed", "id", ev.Region.RegionID, "error", err)
		return []event.Outbound{event.SaveRegionFailed{Reason: err.Error()}}
	}
	return []event.Outbound{event.RegionSaved{Region: ev.Region}}
}
