// Package model defines the airport-data records exchanged between the
// engine, the store and the presentation layer.
//
// Records are plain values. An "edit" builds a new value; nothing in this
// module mutates a record in place. A key of 0 means the record has not been
// persisted yet: SQLite assigns rowids starting at 1.
package model

// Continent mirrors one row of the continent table.
type Continent struct {
	ContinentID   int64  `json:"continent_id,omitempty" yaml:"continent_id,omitempty"`
	ContinentCode string `json:"continent_code" yaml:"continent_code"`
	Name          string `json:"name" yaml:"name"`
}

// HasID reports whether the continent carries a store-assigned key.
func (c Continent) HasID() bool { return c.ContinentID != 0 }

// WithID returns a copy of c carrying id.
func (c Continent) WithID(id int64) Continent {
	c.ContinentID = id
	return c
}

// Country mirrors one row of the country table.
type Country struct {
	CountryID     int64  `json:"country_id,omitempty" yaml:"country_id,omitempty"`
	CountryCode   string `json:"country_code" yaml:"country_code"`
	Name          string `json:"name" yaml:"name"`
	ContinentID   int64  `json:"continent_id" yaml:"continent_id"`
	WikipediaLink string `json:"wikipedia_link" yaml:"wikipedia_link"`
	Keywords      string `json:"keywords" yaml:"keywords"`
}

// HasID reports whether the country carries a store-assigned key.
func (c Country) HasID() bool { return c.CountryID != 0 }

// WithID returns a copy of c carrying id.
func (c Country) WithID(id int64) Country {
	c.CountryID = id
	return c
}

// Region mirrors one row of the region table.
type Region struct {
	RegionID      int64  `json:"region_id,omitempty" yaml:"region_id,omitempty"`
	RegionCode    string `json:"region_code" yaml:"region_code"`
	LocalCode     string `json:"local_code" yaml:"local_code"`
	Name          string `json:"name" yaml:"name"`
	ContinentID   int64  `json:"continent_id" yaml:"continent_id"`
	CountryID     int64  `json:"country_id" yaml:"country_id"`
	WikipediaLink string `json:"wikipedia_link" yaml:"wikipedia_link"`
	Keywords      string `json:"keywords" yaml:"keywords"`
}

// HasID reports whether the region carries a store-assigned key.
func (r Region) HasID() bool { return r.RegionID != 0 }

// WithID returns a copy of r carrying id.
func (r Region) WithID(id int64) Region {
	r.RegionID = id
	return r
}

// ContinentFilter selects continents. Zero fields do not constrain.
type ContinentFilter struct {
	ContinentID   int64
	ContinentCode string
	Name          string
}

// CountryFilter selects countries. Zero fields do not constrain.
type CountryFilter struct {
	CountryID   int64
	CountryCode string
	Name        string
}

// RegionFilter selects regions. Zero fields do not constrain.
type RegionFilter struct {
	RegionID   int64
	RegionCode string
	LocalCode  string
	Name       string
}
