// Package harness runs scripted conversations with the engine.
//
// A scenario is a YAML file listing inbound events to send and, for each,
// the outbound events the engine must answer with:
//
//	name: continent_roundtrip
//	description: "A saved continent can be found by name"
//	fixture: seed.cue
//	steps:
//	  - send: {type: save_new_continent, continent: {continent_code: OC, name: Oceania}}
//	    expect:
//	      - {type: continent_saved, continent: {continent_code: OC}}
//	  - send: {type: start_continent_search, name: Oceania}
//	    expect:
//	      - {type: continent_search_result}
//	assertions:
//	  - {type: final_state, table: continent, where: {continent_code: OC}, expect: {name: Oceania}}
//
// Every run gets a fresh airport database that the engine has already
// opened. The string "$DB" in a sent event stands for its path, and the
// path is written back as "$DB" in traces and comparisons so that
// traces are stable across runs.
//
// Expectations match exactly on the number and type of outbound events and
// as a subset on fields: an expected object only constrains the members it
// names. A step without expect is not checked. "expect: []" asserts that
// the step produced nothing.
//
// RunWithGolden additionally snapshots the full trace under
// testdata/golden/<name>.golden using goldie.
package harness
