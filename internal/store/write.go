package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/roach88/airdb/internal/ir"
	"github.com/roach88/airdb/internal/model"
	"github.com/roach88/airdb/internal/queryir"
)

// InsertContinent inserts c (its key is ignored) and returns a copy carrying
// the generated continent_id.
func (s *Store) InsertContinent(ctx context.Context, c model.Continent) (model.Continent, error) {
	id, err := s.insert(ctx, queryir.Insert{Into: continentTable, Values: continentValues(c)})
	if err != nil {
		return model.Continent{}, fmt.Errorf("insert continent: %w", err)
	}
	return c.WithID(id), nil
}

// UpdateContinent rewrites every non-key column of the continent keyed by
// c.ContinentID. Returns ErrNotFound if no such continent exists.
func (s *Store) UpdateContinent(ctx context.Context, c model.Continent) error {
	err := s.update(ctx, queryir.Update{
		Table:  continentTable,
		Set:    continentValues(c),
		Filter: queryir.Equals{Field: "continent_id", Value: ir.IRInt(c.ContinentID)},
	})
	if err != nil {
		return fmt.Errorf("update continent %d: %w", c.ContinentID, err)
	}
	return nil
}

// InsertCountry inserts c and returns a copy carrying the generated
// country_id. The continent it references must exist (foreign key).
func (s *Store) InsertCountry(ctx context.Context, c model.Country) (model.Country, error) {
	id, err := s.insert(ctx, queryir.Insert{Into: countryTable, Values: countryValues(c)})
	if err != nil {
		return model.Country{}, fmt.Errorf("insert country: %w", err)
	}
	return c.WithID(id), nil
}

// UpdateCountry rewrites the country keyed by c.CountryID.
func (s *Store) UpdateCountry(ctx context.Context, c model.Country) error {
	err := s.update(ctx, queryir.Update{
		Table:  countryTable,
		Set:    countryValues(c),
		Filter: queryir.Equals{Field: "country_id", Value: ir.IRInt(c.CountryID)},
	})
	if err != nil {
		return fmt.Errorf("update country %d: %w", c.CountryID, err)
	}
	return nil
}

// InsertRegion inserts r and returns a copy carrying the generated region_id.
// Both the continent and the country it references must exist.
func (s *Store) InsertRegion(ctx context.Context, r model.Region) (model.Region, error) {
	id, err := s.insert(ctx, queryir.Insert{Into: regionTable, Values: regionValues(r)})
	if err != nil {
		return model.Region{}, fmt.Errorf("insert region: %w", err)
	}
	return r.WithID(id), nil
}

// UpdateRegion rewrites the region keyed by r.RegionID.
func (s *Store) UpdateRegion(ctx context.Context, r model.Region) error {
	err := s.update(ctx, queryir.Update{
		Table:  regionTable,
		Set:    regionValues(r),
		Filter: queryir.Equals{Field: "region_id", Value: ir.IRInt(r.RegionID)},
	})
	if err != nil {
		return fmt.Errorf("update region %d: %w", r.RegionID, err)
	}
	return nil
}

// insert runs q in its own transaction and returns the generated key.
func (s *Store) insert(ctx context.Context, q queryir.Insert) (int64, error) {
	var id int64
	err := s.withTx(ctx, q, func(result sql.Result) error {
		var err error
		id, err = result.LastInsertId()
		if err != nil {
			return fmt.Errorf("last insert id: %w", err)
		}
		return nil
	})
	return id, err
}

// update runs q in its own transaction. Zero affected rows is ErrNotFound
// and rolls back. SQLite counts matched rows, so rewriting identical values
// still affects one row.
func (s *Store) update(ctx context.Context, q queryir.Update) error {
	return s.withTx(ctx, q, func(result sql.Result) error {
		n, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("rows affected: %w", err)
		}
		if n == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// withTx compiles q, executes it in a fresh transaction, lets check inspect
// the result, and commits. Any error rolls the transaction back.
func (s *Store) withTx(ctx context.Context, q queryir.Query, check func(sql.Result) error) error {
	if s.db == nil {
		return fmt.Errorf("store is closed")
	}

	query, params, err := s.compiler.Compile(q)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	result, err := tx.ExecContext(ctx, query, params...)
	if err != nil {
		return err
	}

	if err := check(result); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	return nil
}
