package event

import "github.com/roach88/airdb/internal/model"

// Event is implemented by every inbound and outbound event.
type Event interface {
	Kind() string
}

// Inbound is a user-intent event consumed by the engine.
//
// This is a sealed interface - only types in this package implement it.
type Inbound interface {
	Event
	inboundEvent() // Marker method - seals interface to this package
}

// Inbound kinds.
const (
	KindOpenDatabase  = "open_database"
	KindCloseDatabase = "close_database"
	KindQuitInitiated = "quit_initiated"

	KindStartContinentSearch = "start_continent_search"
	KindLoadContinent        = "load_continent"
	KindSaveNewContinent     = "save_new_continent"
	KindSaveContinent        = "save_continent"

	KindStartCountrySearch = "start_country_search"
	KindLoadCountry        = "load_country"
	KindSaveNewCountry     = "save_new_country"
	KindSaveCountry        = "save_country"

	KindStartRegionSearch = "start_region_search"
	KindLoadRegion        = "load_region"
	KindSaveNewRegion     = "save_new_region"
	KindSaveRegion        = "save_region"
)

// OpenDatabase asks the engine to attach to the database at Path,
// replacing any open connection.
type OpenDatabase struct {
	Path string `json:"path"`
}

// CloseDatabase detaches from the open database, if any.
type CloseDatabase struct{}

// QuitInitiated asks the host to end the application.
type QuitInitiated struct{}

// StartContinentSearch searches continents. Empty fields do not constrain.
type StartContinentSearch struct {
	ContinentCode string `json:"continent_code"`
	Name          string `json:"name"`
}

// LoadContinent reads one continent by key.
type LoadContinent struct {
	ContinentID int64 `json:"continent_id"`
}

// SaveNewContinent inserts a continent; its key is ignored.
type SaveNewContinent struct {
	Continent model.Continent `json:"continent"`
}

// SaveContinent updates the continent keyed by Continent.ContinentID.
type SaveContinent struct {
	Continent model.Continent `json:"continent"`
}

// StartCountrySearch searches countries. Empty fields do not constrain.
type StartCountrySearch struct {
	CountryCode string `json:"country_code"`
	Name        string `json:"name"`
}

// LoadCountry reads one country by key.
type LoadCountry struct {
	CountryID int64 `json:"country_id"`
}

// SaveNewCountry inserts a country.
type SaveNewCountry struct {
	Country model.Country `json:"country"`
}

// SaveCountry updates the country keyed by Country.CountryID.
type SaveCountry struct {
	Country model.Country `json:"country"`
}

// StartRegionSearch searches regions. Empty fields do not constrain.
type StartRegionSearch struct {
	RegionCode string `json:"region_code"`
	LocalCode  string `json:"local_code"`
	Name       string `json:"name"`
}

// LoadRegion reads one region by key.
type LoadRegion struct {
	RegionID int64 `json:"region_id"`
}

// SaveNewRegion inserts a region.
type SaveNewRegion struct {
	Region model.Region `json:"region"`
}

// SaveRegion updates the region keyed by Region.RegionID.
type SaveRegion struct {
	Region model.Region `json:"region"`
}

func (OpenDatabase) Kind() string  { return KindOpenDatabase }
func (CloseDatabase) Kind() string { return KindCloseDatabase }
func (QuitInitiated) Kind() string { return KindQuitInitiated }

func (StartContinentSearch) Kind() string { return KindStartContinentSearch }
func (LoadContinent) Kind() string        { return KindLoadContinent }
func (SaveNewContinent) Kind() string     { return KindSaveNewContinent }
func (SaveContinent) Kind() string        { return KindSaveContinent }

func (StartCountrySearch) Kind() string { return KindStartCountrySearch }
func (LoadCountry) Kind() string        { return KindLoadCountry }
func (SaveNewCountry) Kind() string     { return KindSaveNewCountry }
func (SaveCountry) Kind() string        { return KindSaveCountry }

func (StartRegionSearch) Kind() string { return KindStartRegionSearch }
func (LoadRegion) Kind() string        { return KindLoadRegion }
func (SaveNewRegion) Kind() string     { return KindSaveNewRegion }
func (SaveRegion) Kind() string        { return KindSaveRegion }

func (OpenDatabase) inboundEvent()  {}
func (CloseDatabase) inboundEvent() {}
func (QuitInitiated) inboundEvent() {}

func (StartContinentSearch) inboundEvent() {}
func (LoadContinent) inboundEvent()        {}
func (SaveNewContinent) inboundEvent()     {}
func (SaveContinent) inboundEvent()        {}

func (StartCountrySearch) inboundEvent() {}
func (LoadCountry) inboundEvent()        {}
func (SaveNewCountry) inboundEvent()     {}
func (SaveCountry) inboundEvent()        {}

func (StartRegionSearch) inboundEvent() {}
func (LoadRegion) inboundEvent()        {}
func (SaveNewRegion) inboundEvent()     {}
func (SaveRegion) inboundEvent()        {}
