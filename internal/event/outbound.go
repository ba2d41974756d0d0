package event

import "github.com/roach88/airdb/internal/model"

// Outbound is a response event produced by the engine.
//
// This is a sealed interface - only types in this package implement it.
type Outbound interface {
	Event
	outboundEvent() // Marker method - seals interface to this package
}

// Outbound kinds.
const (
	KindDatabaseOpened     = "database_opened"
	KindDatabaseOpenFailed = "database_open_failed"
	KindDatabaseClosed     = "database_closed"
	KindEndApplication     = "end_application"
	KindError              = "error"

	KindContinentSearchResult = "continent_search_result"
	KindContinentLoaded       = "continent_loaded"
	KindContinentSaved        = "continent_saved"
	KindSaveContinentFailed   = "save_continent_failed"

	KindCountrySearchResult = "country_search_result"
	KindCountryLoaded       = "country_loaded"
	KindCountrySaved        = "country_saved"
	KindSaveCountryFailed   = "save_country_failed"

	KindRegionSearchResult = "region_search_result"
	KindRegionLoaded       = "region_loaded"
	KindRegionSaved        = "region_saved"
	KindSaveRegionFailed   = "save_region_failed"
)

// DatabaseOpened confirms that Path is now the open database.
type DatabaseOpened struct {
	Path string `json:"path"`
}

// DatabaseOpenFailed reports why a database could not be opened. The engine
// is left with no open database.
type DatabaseOpenFailed struct {
	Reason string `json:"reason"`
}

// DatabaseClosed confirms that the open database was closed.
type DatabaseClosed struct{}

// EndApplication tells the host to shut down.
type EndApplication struct{}

// Error reports a failed search or load.
type Error struct {
	Message string `json:"message"`
}

// ContinentSearchResult carries one continent matching a search.
type ContinentSearchResult struct {
	Continent model.Continent `json:"continent"`
}

// ContinentLoaded carries the continent read by key.
type ContinentLoaded struct {
	Continent model.Continent `json:"continent"`
}

// ContinentSaved carries the continent as persisted, key included.
type ContinentSaved struct {
	Continent model.Continent `json:"continent"`
}

// SaveContinentFailed reports a rejected continent write.
type SaveContinentFailed struct {
	Reason string `json:"reason"`
}

// CountrySearchResult carries one country matching a search.
type CountrySearchResult struct {
	Country model.Country `json:"country"`
}

// CountryLoaded carries the country read by key.
type CountryLoaded struct {
	Country model.Country `json:"country"`
}

// CountrySaved carries the country as persisted.
type CountrySaved struct {
	Country model.Country `json:"country"`
}

// SaveCountryFailed reports a rejected country write.
type SaveCountryFailed struct {
	Reason string `json:"reason"`
}

// RegionSearchResult carries one region matching a search.
type RegionSearchResult struct {
	Region model.Region `json:"region"`
}

// RegionLoaded carries the region read by key.
type RegionLoaded struct {
	Region model.Region `json:"region"`
}

// RegionSaved carries the region as persisted.
type RegionSaved struct {
	Region model.Region `json:"region"`
}

// SaveRegionFailed reports a rejected region write.
type SaveRegionFailed struct {
	Reason string `json:"reason"`
}

func (DatabaseOpened) Kind() string     { return KindDatabaseOpened }
func (DatabaseOpenFailed) Kind() string { return KindDatabaseOpenFailed }
func (DatabaseClosed) Kind() string     { return KindDatabaseClosed }
func (EndApplication) Kind() string     { return KindEndApplication }
func (Error) Kind() string              { return KindError }

func (ContinentSearchResult) Kind() string { return KindContinentSearchResult }
func (ContinentLoaded) Kind() string       { return KindContinentLoaded }
func (ContinentSaved) Kind() string        { return KindContinentSaved }
func (SaveContinentFailed) Kind() string   { return KindSaveContinentFailed }

func (CountrySearchResult) Kind() string { return KindCountrySearchResult }
func (CountryLoaded) Kind() string       { return KindCountryLoaded }
func (CountrySaved) Kind() string        { return KindCountrySaved }
func (SaveCountryFailed) Kind() string   { return KindSaveCountryFailed }

func (RegionSearchResult) Kind() string { return KindRegionSearchResult }
func (RegionLoaded) Kind() string       { return KindRegionLoaded }
func (RegionSaved) Kind() string        { return KindRegionSaved }
func (SaveRegionFailed) Kind() string   { return KindSaveRegionFailed }

func (DatabaseOpened) outboundEvent()     {}
func (DatabaseOpenFailed) outboundEvent() {}
func (DatabaseClosed) outboundEvent()     {}
func (EndApplication) outboundEvent()     {}
func (Error) outboundEvent()              {}

func (ContinentSearchResult) outboundEvent() {}
func (ContinentLoaded) outboundEvent()       {}
func (ContinentSaved) outboundEvent()        {}
func (SaveContinentFailed) outboundEvent()   {}

func (CountrySearchResult) outboundEvent() {}
func (CountryLoaded) outboundEvent()       {}
func (CountrySaved) outboundEvent()        {}
func (SaveCountryFailed) outboundEvent()   {}

func (RegionSearchResult) outboundEvent() {}
func (RegionLoaded) outboundEvent()       {}
func (RegionSaved) outboundEvent()        {}
func (SaveRegionFailed) outboundEvent()   {}
