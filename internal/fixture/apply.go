package fixture

import (
	"context"
	"fmt"

	"github.com/roach88/airdb/internal/event"
	"github.com/roach88/airdb/internal/model"
)

// Processor handles one inbound event. *engine.Engine implements it.
type Processor interface {
	Process(ctx context.Context, in event.Inbound) []event.Outbound
}

// Report summarizes an Apply run.
type Report struct {
	Saved    int
	Failures []string // one entry per rejected record
}

// Failed returns the number of rejected records.
func (r Report) Failed() int {
	return len(r.Failures)
}

// Apply saves every record through p in dependency order. Id labels are
// replaced by the keys the database assigns; a reference to a label the
// fixture never defined is sent unchanged and so must name an existing row.
//
// Rejected records are reported and do not stop the run. A record that
// references a label whose record failed to save is rejected without being
// sent.
func (f *Fixture) Apply(ctx context.Context, p Processor) (Report, error) {
	var rep Report
	continents := newLabels(f.Continents, func(c model.Continent) int64 { return c.ContinentID })
	countries := newLabels(f.Countries, func(c model.Country) int64 { return c.CountryID })

	for _, c := range f.Continents {
		if err := ctx.Err(); err != nil {
			return rep, err
		}
		label := c.ContinentID
		switch out := single(p.Process(ctx, event.SaveNewContinent{Continent: c})).(type) {
		case event.ContinentSaved:
			rep.Saved++
			continents.assign(label, out.Continent.ContinentID)
		default:
			rep.Failures = append(rep.Failures, fmt.Sprintf("continent %s: %s", c.ContinentCode, reason(out)))
		}
	}

	for _, c := range f.Countries {
		if err := ctx.Err(); err != nil {
			return rep, err
		}
		label := c.CountryID
		continentID, ok := continents.resolve(c.ContinentID)
		if !ok {
			rep.Failures = append(rep.Failures, fmt.Sprintf("country %s: continent label %d was not saved", c.CountryCode, c.ContinentID))
			continue
		}
		c.ContinentID = continentID
		switch out := single(p.Process(ctx, event.SaveNewCountry{Country: c})).(type) {
		case event.CountrySaved:
			rep.Saved++
			countries.assign(label, out.Country.CountryID)
		default:
			rep.Failures = append(rep.Failures, fmt.Sprintf("country %s: %s", c.CountryCode, reason(out)))
		}
	}

	for _, r := range f.Regions {
		if err := ctx.Err(); err != nil {
			return rep, err
		}
		continentID, ok := continents.resolve(r.ContinentID)
		if !ok {
			rep.Failures = append(rep.Failures, fmt.Sprintf("region %s: continent label %d was not saved", r.RegionCode, r.ContinentID))
			continue
		}
		countryID, ok := countries.resolve(r.CountryID)
		if !ok {
			rep.Failures = append(rep.Failures, fmt.Sprintf("region %s: country label %d was not saved", r.RegionCode, r.CountryID))
			continue
		}
		r.ContinentID, r.CountryID = continentID, countryID
		switch out := single(p.Process(ctx, event.SaveNewRegion{Region: r})).(type) {
		case event.RegionSaved:
			rep.Saved++
		default:
			rep.Failures = append(rep.Failures, fmt.Sprintf("region %s: %s", r.RegionCode, reason(out)))
		}
	}

	return rep, nil
}

// single returns the only event of a save response, or nil.
func single(out []event.Outbound) event.Outbound {
	if len(out) != 1 {
		return nil
	}
	return out[0]
}

// labels maps the id labels defined in one fixture list to the keys the
// database assigned.
type labels struct {
	defined map[int64]bool
	keys    map[int64]int64
}

func newLabels[T any](records []T, label func(T) int64) labels {
	l := labels{defined: map[int64]bool{}, keys: map[int64]int64{}}
	for _, r := range records {
		if id := label(r); id != 0 {
			l.defined[id] = true
		}
	}
	return l
}

func (l labels) assign(label, key int64) {
	if label != 0 {
		l.keys[label] = key
	}
}

// resolve returns the key for id. An id the fixture never defined is an
// existing database key and passes through; a defined label whose record
// was not saved does not resolve.
func (l labels) resolve(id int64) (int64, bool) {
	if key, ok := l.keys[id]; ok {
		return key, true
	}
	return id, !l.defined[id]
}

func reason(o event.Outbound) string {
	switch ev := o.(type) {
	case event.SaveContinentFailed:
		return ev.Reason
	case event.SaveCountryFailed:
		return ev.Reason
	case event.SaveRegionFailed:
		return ev.Reason
	case event.Error:
		return ev.Message
	case nil:
		return "no response"
	default:
		return "unexpected " + ev.Kind()
	}
}
