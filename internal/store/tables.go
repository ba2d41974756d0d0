package store

import (
	"database/sql"

	"github.com/roach88/airdb/internal/ir"
	"github.com/roach88/airdb/internal/model"
	"github.com/roach88/airdb/internal/queryir"
)

const (
	continentTable = "continent"
	countryTable   = "country"
	regionTable    = "region"
)

// Column lists are in table order; scan functions depend on it.
var (
	continentColumns = []string{"continent_id", "continent_code", "name"}
	countryColumns   = []string{"country_id", "country_code", "name", "continent_id", "wikipedia_link", "keywords"}
	regionColumns    = []string{"region_id", "region_code", "local_code", "name", "continent_id", "country_id", "wikipedia_link", "keywords"}
)

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// Text columns may hold NULL in real airport data; NULL reads as "".
func scanContinent(row scanner) (model.Continent, error) {
	var c model.Continent
	var code, name sql.NullString
	if err := row.Scan(&c.ContinentID, &code, &name); err != nil {
		return model.Continent{}, err
	}
	c.ContinentCode = code.String
	c.Name = name.String
	return c, nil
}

func scanCountry(row scanner) (model.Country, error) {
	var c model.Country
	var code, name, link, keywords sql.NullString
	var continentID sql.NullInt64
	if err := row.Scan(&c.CountryID, &code, &name, &continentID, &link, &keywords); err != nil {
		return model.Country{}, err
	}
	c.CountryCode = code.String
	c.Name = name.String
	c.ContinentID = continentID.Int64
	c.WikipediaLink = link.String
	c.Keywords = keywords.String
	return c, nil
}

func scanRegion(row scanner) (model.Region, error) {
	var r model.Region
	var code, local, name, link, keywords sql.NullString
	var continentID, countryID sql.NullInt64
	if err := row.Scan(&r.RegionID, &code, &local, &name, &continentID, &countryID, &link, &keywords); err != nil {
		return model.Region{}, err
	}
	r.RegionCode = code.String
	r.LocalCode = local.String
	r.Name = name.String
	r.ContinentID = continentID.Int64
	r.CountryID = countryID.Int64
	r.WikipediaLink = link.String
	r.Keywords = keywords.String
	return r, nil
}

// Non-key columns written by inserts and updates.

func continentValues(c model.Continent) []queryir.Assignment {
	return []queryir.Assignment{
		queryir.Set("continent_code", ir.IRString(c.ContinentCode)),
		queryir.Set("name", ir.IRString(c.Name)),
	}
}

func countryValues(c model.Country) []queryir.Assignment {
	return []queryir.Assignment{
		queryir.Set("country_code", ir.IRString(c.CountryCode)),
		queryir.Set("name", ir.IRString(c.Name)),
		queryir.Set("continent_id", ir.IRInt(c.ContinentID)),
		queryir.Set("wikipedia_link", ir.IRString(c.WikipediaLink)),
		queryir.Set("keywords", ir.IRString(c.Keywords)),
	}
}

func regionValues(r model.Region) []queryir.Assignment {
	return []queryir.Assignment{
		queryir.Set("region_code", ir.IRString(r.RegionCode)),
		queryir.Set("local_code", ir.IRString(r.LocalCode)),
		queryir.Set("name", ir.IRString(r.Name)),
		queryir.Set("continent_id", ir.IRInt(r.ContinentID)),
		queryir.Set("country_id", ir.IRInt(r.CountryID)),
		queryir.Set("wikipedia_link", ir.IRString(r.WikipediaLink)),
		queryir.Set("keywords", ir.IRString(r.Keywords)),
	}
}
