package store

import (
	"context"
	"fmt"

	"github.com/roach88/airdb/internal/ir"
	"github.com/roach88/airdb/internal/model"
	"github.com/roach88/airdb/internal/queryir"
)

// SearchContinents returns the continents matching every set field of f,
// in continent_id order. An empty filter returns every continent.
//
// Returns an empty slice (not nil) when nothing matches.
func (s *Store) SearchContinents(ctx context.Context, f model.ContinentFilter) ([]model.Continent, error) {
	q := queryir.Select{
		From:    continentTable,
		Columns: continentColumns,
		Filter: queryir.AllOf(
			queryir.Optional("continent_id", ir.IRInt(f.ContinentID)),
			queryir.Optional("continent_code", ir.IRString(f.ContinentCode)),
			queryir.Optional("name", ir.IRString(f.Name)),
		),
		OrderBy: "continent_id",
	}
	return selectRows(ctx, s, q, scanContinent)
}

// LoadContinent reads one continent by key. found is false when no row
// has that key; a non-positive id never matches.
func (s *Store) LoadContinent(ctx context.Context, id int64) (c model.Continent, found bool, err error) {
	if id <= 0 {
		return model.Continent{}, false, nil
	}
	rows, err := s.SearchContinents(ctx, model.ContinentFilter{ContinentID: id})
	if err != nil || len(rows) == 0 {
		return model.Continent{}, false, err
	}
	return rows[0], true, nil
}

// SearchCountries returns the countries matching every set field of f,
// in country_id order.
func (s *Store) SearchCountries(ctx context.Context, f model.CountryFilter) ([]model.Country, error) {
	q := queryir.Select{
		From:    countryTable,
		Columns: countryColumns,
		Filter: queryir.AllOf(
			queryir.Optional("country_id", ir.IRInt(f.CountryID)),
			queryir.Optional("country_code", ir.IRString(f.CountryCode)),
			queryir.Optional("name", ir.IRString(f.Name)),
		),
		OrderBy: "country_id",
	}
	return selectRows(ctx, s, q, scanCountry)
}

// LoadCountry reads one country by key.
func (s *Store) LoadCountry(ctx context.Context, id int64) (c model.Country, found bool, err error) {
	if id <= 0 {
		return model.Country{}, false, nil
	}
	rows, err := s.SearchCountries(ctx, model.CountryFilter{CountryID: id})
	if err != nil || len(rows) == 0 {
		return model.Country{}, false, err
	}
	return rows[0], true, nil
}

// SearchRegions returns the regions matching every set field of f,
// in region_id order.
func (s *Store) SearchRegions(ctx context.Context, f model.RegionFilter) ([]model.Region, error) {
	q := queryir.Select{
		From:    regionTable,
		Columns: regionColumns,
		Filter: queryir.AllOf(
			queryir.Optional("region_id", ir.IRInt(f.RegionID)),
			queryir.Optional("region_code", ir.IRString(f.RegionCode)),
			queryir.Optional("local_code", ir.IRString(f.LocalCode)),
			queryir.Optional("name", ir.IRString(f.Name)),
		),
		OrderBy: "region_id",
	}
	return selectRows(ctx, s, q, scanRegion)
}

// LoadRegion reads one region by key.
func (s *Store) LoadRegion(ctx context.Context, id int64) (r model.Region, found bool, err error) {
	if id <= 0 {
		return model.Region{}, false, nil
	}
	rows, err := s.SearchRegions(ctx, model.RegionFilter{RegionID: id})
	if err != nil || len(rows) == 0 {
		return model.Region{}, false, err
	}
	return rows[0], true, nil
}

// selectRows compiles q, runs it and scans every row with scan.
func selectRows[T any](ctx context.Context, s *Store, q queryir.Select, scan func(scanner) (T, error)) ([]T, error) {
	if s.db == nil {
		return nil, fmt.Errorf("query %s: store is closed", q.From)
	}

	query, params, err := s.compiler.Compile(q)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", q.From, err)
	}

	rows, err := s.db.QueryContext(ctx, query, params...)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", q.From, err)
	}
	defer rows.Close()

	out := []T{}
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", q.From, err)
		}
		out = append(out, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", q.From, err)
	}

	return out, nil
}
