package store

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/airdb/internal/model"
	"github.com/roach88/airdb/internal/testutil"
)

func TestInsertContinent_AssignsKey(t *testing.T) {
	s := createTestStore(t)
	in := model.Continent{ContinentCode: "OC", Name: "Oceania"}

	saved, err := s.InsertContinent(t.Context(), in)
	require.NoError(t, err)

	assert.True(t, saved.HasID())
	assert.Equal(t, in.WithID(saved.ContinentID), saved)
	assert.False(t, in.HasID(), "input record is untouched")
}

func TestInsertContinent_RoundTrip(t *testing.T) {
	s := createTestStore(t)
	pairs := []model.Continent{
		{ContinentCode: "NA", Name: "North America"},
		{ContinentCode: "SA", Name: "South America"},
		{ContinentCode: "Q'", Name: `Quote "Land"`},
	}

	for _, in := range pairs {
		saved, err := s.InsertContinent(t.Context(), in)
		require.NoError(t, err)

		loaded, found, err := s.LoadContinent(t.Context(), saved.ContinentID)
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, in.ContinentCode, loaded.ContinentCode)
		assert.Equal(t, in.Name, loaded.Name)
	}
}

func TestInsertContinent_UniqueViolation(t *testing.T) {
	s := createTestStore(t)
	seedContinent(t, s, "EU", "Europe")

	_, err := s.InsertContinent(t.Context(), model.Continent{ContinentCode: "EU", Name: "Europe again"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "UNIQUE")
	assert.Equal(t, 1, testutil.Count(t, s.Path(), "continent"))
}

func TestUpdateContinent(t *testing.T) {
	s := createTestStore(t)
	eu := seedContinent(t, s, "EU", "Europe")

	edited := eu
	edited.Name = "Europa"
	require.NoError(t, s.UpdateContinent(t.Context(), edited))

	loaded, _, err := s.LoadContinent(t.Context(), eu.ContinentID)
	require.NoError(t, err)
	assert.Equal(t, edited, loaded)
}

func TestUpdateContinent_Idempotent(t *testing.T) {
	s := createTestStore(t)
	eu := seedContinent(t, s, "EU", "Europe")

	require.NoError(t, s.UpdateContinent(t.Context(), eu))
	require.NoError(t, s.UpdateContinent(t.Context(), eu))

	all, err := s.SearchContinents(t.Context(), model.ContinentFilter{})
	require.NoError(t, err)
	assert.Equal(t, []model.Continent{eu}, all)
}

func TestUpdateContinent_NotFound(t *testing.T) {
	s := createTestStore(t)

	err := s.UpdateContinent(t.Context(), model.Continent{ContinentID: 42, ContinentCode: "XX", Name: "Nowhere"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestInsertCountry_ForeignKeyRejected(t *testing.T) {
	s := createTestStore(t)

	_, err := s.InsertCountry(t.Context(), model.Country{CountryCode: "ZZ", Name: "Atlantis", ContinentID: 77})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "FOREIGN KEY")
	assert.Equal(t, 0, testutil.Count(t, s.Path(), "country"), "nothing committed")
}

func TestUpdateCountry_ForeignKeyRejected(t *testing.T) {
	s := createTestStore(t)
	as := seedContinent(t, s, "AS", "Asia")
	jp := seedCountry(t, s, "JP", "Japan", as.ContinentID)

	moved := jp
	moved.ContinentID = 99
	err := s.UpdateCountry(t.Context(), moved)
	require.Error(t, err)

	loaded, _, err := s.LoadCountry(t.Context(), jp.CountryID)
	require.NoError(t, err)
	assert.Equal(t, jp, loaded, "rejected update leaves the row unchanged")
}

func TestInsertCountry_AllFields(t *testing.T) {
	s := createTestStore(t)
	as := seedContinent(t, s, "AS", "Asia")
	in := model.Country{
		CountryCode:   "JP",
		Name:          "Japan",
		ContinentID:   as.ContinentID,
		WikipediaLink: "https://en.wikipedia.org/wiki/Japan",
		Keywords:      "Nippon, Nihon",
	}

	saved, err := s.InsertCountry(t.Context(), in)
	require.NoError(t, err)

	loaded, found, err := s.LoadCountry(t.Context(), saved.CountryID)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, saved, loaded)
}

func TestInsertCountry_EmptyTextIsStoredAsEmpty(t *testing.T) {
	s := createTestStore(t)
	as := seedContinent(t, s, "AS", "Asia")

	saved, err := s.InsertCountry(t.Context(), model.Country{CountryCode: "JP", Name: "Japan", ContinentID: as.ContinentID})
	require.NoError(t, err)

	var linkIsNull, keywordsIsNull bool
	var link, keywords string
	err = s.DB().QueryRowContext(t.Context(),
		"SELECT wikipedia_link IS NULL, keywords IS NULL, wikipedia_link, keywords FROM country WHERE country_id = ?",
		saved.CountryID,
	).Scan(&linkIsNull, &keywordsIsNull, &link, &keywords)
	require.NoError(t, err)

	assert.False(t, linkIsNull)
	assert.False(t, keywordsIsNull)
	assert.Equal(t, "", link)
	assert.Equal(t, "", keywords)
}

func TestUpdateRegion_EmptyTextIsStoredAsEmpty(t *testing.T) {
	s := createTestStore(t)
	as := seedContinent(t, s, "AS", "Asia")
	jp := seedCountry(t, s, "JP", "Japan", as.ContinentID)
	r, err := s.InsertRegion(t.Context(), model.Region{
		RegionCode: "JP-01", LocalCode: "01", Name: "Hokkaido",
		ContinentID: as.ContinentID, CountryID: jp.CountryID, Keywords: "Ezo",
	})
	require.NoError(t, err)

	r.Keywords = ""
	require.NoError(t, s.UpdateRegion(t.Context(), r))

	var nulls int
	err = s.DB().QueryRowContext(t.Context(),
		"SELECT COUNT(*) FROM region WHERE wikipedia_link IS NULL OR keywords IS NULL",
	).Scan(&nulls)
	require.NoError(t, err)
	assert.Equal(t, 0, nulls)
}

func TestInsertCountry_NotNullTextColumns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "strict.db")
	testutil.Exec(t, path, `
		CREATE TABLE continent (continent_id INTEGER PRIMARY KEY, continent_code TEXT NOT NULL, name TEXT NOT NULL);
		CREATE TABLE country (
			country_id INTEGER PRIMARY KEY, country_code TEXT NOT NULL, name TEXT NOT NULL,
			continent_id INTEGER NOT NULL REFERENCES continent (continent_id),
			wikipedia_link TEXT NOT NULL, keywords TEXT NOT NULL);
		CREATE TABLE region (
			region_id INTEGER PRIMARY KEY, region_code TEXT NOT NULL, local_code TEXT NOT NULL, name TEXT NOT NULL,
			continent_id INTEGER NOT NULL, country_id INTEGER NOT NULL,
			wikipedia_link TEXT NOT NULL, keywords TEXT NOT NULL);`)

	s, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	as := seedContinent(t, s, "AS", "Asia")
	_, err = s.InsertCountry(t.Context(), model.Country{CountryCode: "JP", Name: "Japan", ContinentID: as.ContinentID})
	require.NoError(t, err)
}

func TestInsertRegion_ForeignKeys(t *testing.T) {
	s := createTestStore(t)
	as := seedContinent(t, s, "AS", "Asia")
	jp := seedCountry(t, s, "JP", "Japan", as.ContinentID)

	_, err := s.InsertRegion(t.Context(), model.Region{
		RegionCode: "JP-01", LocalCode: "01", Name: "Hokkaido",
		ContinentID: as.ContinentID, CountryID: jp.CountryID + 100,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "FOREIGN KEY")
	assert.Equal(t, 0, testutil.Count(t, s.Path(), "region"))
}

func TestUpdateRegion(t *testing.T) {
	s := createTestStore(t)
	as := seedContinent(t, s, "AS", "Asia")
	jp := seedCountry(t, s, "JP", "Japan", as.ContinentID)
	r, err := s.InsertRegion(t.Context(), model.Region{
		RegionCode: "JP-01", LocalCode: "01", Name: "Hokkaido",
		ContinentID: as.ContinentID, CountryID: jp.CountryID,
	})
	require.NoError(t, err)

	r.Keywords = "Ezo"
	require.NoError(t, s.UpdateRegion(t.Context(), r))

	loaded, _, err := s.LoadRegion(t.Context(), r.RegionID)
	require.NoError(t, err)
	assert.Equal(t, "Ezo", loaded.Keywords)
}

func TestWrite_ClosedStore(t *testing.T) {
	s := createTestStore(t)
	require.NoError(t, s.Close())

	_, err := s.InsertContinent(t.Context(), model.Continent{ContinentCode: "EU", Name: "Europe"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "closed")
}
