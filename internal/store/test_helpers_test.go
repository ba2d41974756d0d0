package store

import (
	"testing"

	"github.com/roach88/airdb/internal/model"
	"github.com/roach88/airdb/internal/testutil"
)

// createTestStore opens a store on a fresh airport database.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(testutil.NewAirportDB(t))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// seedContinent inserts a continent through the store and fails the test on error.
func seedContinent(t *testing.T, s *Store, code, name string) model.Continent {
	t.Helper()
	c, err := s.InsertContinent(t.Context(), model.Continent{ContinentCode: code, Name: name})
	if err != nil {
		t.Fatalf("InsertContinent(%s) failed: %v", code, err)
	}
	return c
}

// seedCountry inserts a country through the store and fails the test on error.
func seedCountry(t *testing.T, s *Store, code, name string, continentID int64) model.Country {
	t.Helper()
	c, err := s.InsertCountry(t.Context(), model.Country{CountryCode: code, Name: name, ContinentID: continentID})
	if err != nil {
		t.Fatalf("InsertCountry(%s) failed: %v", code, err)
	}
	return c
}
