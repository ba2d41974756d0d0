package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/airdb/internal/model"
	"github.com/roach88/airdb/internal/testutil"
)

func TestSearchContinents_EmptyFilterReturnsAll(t *testing.T) {
	s := createTestStore(t)
	eu := seedContinent(t, s, "EU", "Europe")
	as := seedContinent(t, s, "AS", "Asia")
	af := seedContinent(t, s, "AF", "Africa")

	got, err := s.SearchContinents(t.Context(), model.ContinentFilter{})
	require.NoError(t, err)

	assert.Equal(t, []model.Continent{eu, as, af}, got, "primary key order")
}

func TestSearchContinents_EmptyTable(t *testing.T) {
	s := createTestStore(t)

	got, err := s.SearchContinents(t.Context(), model.ContinentFilter{})
	require.NoError(t, err)

	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestSearchContinents_NameIsExactAndCaseSensitive(t *testing.T) {
	s := createTestStore(t)
	seedContinent(t, s, "EU", "Europe")
	as := seedContinent(t, s, "AS", "Asia")
	seedContinent(t, s, "XA", "asia")
	seedContinent(t, s, "XB", "Asia Minor")

	got, err := s.SearchContinents(t.Context(), model.ContinentFilter{Name: "Asia"})
	require.NoError(t, err)

	assert.Equal(t, []model.Continent{as}, got)
}

func TestSearchContinents_CodeAndName(t *testing.T) {
	s := createTestStore(t)
	seedContinent(t, s, "AS", "Asia")

	got, err := s.SearchContinents(t.Context(), model.ContinentFilter{ContinentCode: "AS", Name: "Europe"})
	require.NoError(t, err)
	assert.Empty(t, got, "filters are conjunctive")

	got, err = s.SearchContinents(t.Context(), model.ContinentFilter{ContinentCode: "AS", Name: "Asia"})
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestSearchContinents_QuoteInFilterIsLiteral(t *testing.T) {
	s := createTestStore(t)
	seedContinent(t, s, "EU", "Europe")
	odd := seedContinent(t, s, "OD", "O'Hare's")

	got, err := s.SearchContinents(t.Context(), model.ContinentFilter{Name: "x' OR '1'='1"})
	require.NoError(t, err)
	assert.Empty(t, got, "injected predicate must not match unrelated rows")

	got, err = s.SearchContinents(t.Context(), model.ContinentFilter{Name: "O'Hare's"})
	require.NoError(t, err)
	assert.Equal(t, []model.Continent{odd}, got)
}

func TestLoadContinent(t *testing.T) {
	s := createTestStore(t)
	seedContinent(t, s, "EU", "Europe")
	as := seedContinent(t, s, "AS", "Asia")

	got, found, err := s.LoadContinent(t.Context(), as.ContinentID)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, as, got)
}

func TestLoadContinent_NotFound(t *testing.T) {
	s := createTestStore(t)
	seedContinent(t, s, "EU", "Europe")

	_, found, err := s.LoadContinent(t.Context(), 999)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestLoadContinent_ZeroIDNeverMatches(t *testing.T) {
	s := createTestStore(t)
	seedContinent(t, s, "EU", "Europe")

	_, found, err := s.LoadContinent(t.Context(), 0)
	require.NoError(t, err)
	assert.False(t, found, "an unset key must not degrade into an unfiltered search")
}

func TestSearchCountries(t *testing.T) {
	s := createTestStore(t)
	as := seedContinent(t, s, "AS", "Asia")
	jp := seedCountry(t, s, "JP", "Japan", as.ContinentID)
	seedCountry(t, s, "KR", "South Korea", as.ContinentID)

	got, err := s.SearchCountries(t.Context(), model.CountryFilter{CountryCode: "JP"})
	require.NoError(t, err)
	assert.Equal(t, []model.Country{jp}, got)

	all, err := s.SearchCountries(t.Context(), model.CountryFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestSearchCountries_NullTextColumnsReadAsEmpty(t *testing.T) {
	s := createTestStore(t)
	as := seedContinent(t, s, "AS", "Asia")
	testutil.Exec(t, s.Path(),
		"INSERT INTO country (country_code, name, continent_id, wikipedia_link, keywords) VALUES (?, ?, ?, NULL, NULL)",
		"MN", "Mongolia", as.ContinentID)

	got, found, err := s.LoadCountry(t.Context(), 1)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "", got.WikipediaLink)
	assert.Equal(t, "", got.Keywords)
}

func TestSearchRegions_LocalCode(t *testing.T) {
	s := createTestStore(t)
	as := seedContinent(t, s, "AS", "Asia")
	jp := seedCountry(t, s, "JP", "Japan", as.ContinentID)

	tokyo, err := s.InsertRegion(t.Context(), model.Region{
		RegionCode: "JP-13", LocalCode: "13", Name: "Tokyo",
		ContinentID: as.ContinentID, CountryID: jp.CountryID,
	})
	require.NoError(t, err)
	_, err = s.InsertRegion(t.Context(), model.Region{
		RegionCode: "JP-27", LocalCode: "27", Name: "Osaka",
		ContinentID: as.ContinentID, CountryID: jp.CountryID,
	})
	require.NoError(t, err)

	got, err := s.SearchRegions(t.Context(), model.RegionFilter{LocalCode: "13"})
	require.NoError(t, err)
	assert.Equal(t, []model.Region{tokyo}, got)

	loaded, found, err := s.LoadRegion(t.Context(), tokyo.RegionID)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, tokyo, loaded)
}

func TestSearch_ClosedStore(t *testing.T) {
	s := createTestStore(t)
	require.NoError(t, s.Close())

	_, err := s.SearchContinents(t.Context(), model.ContinentFilter{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "closed")
}
