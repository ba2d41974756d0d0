// Package engine routes inbound events to the airport store and produces
// the outbound events a presentation layer renders.
//
// The engine owns at most one open database at a time. Process is the
// whole API: one inbound event in, zero or more outbound events out. All
// side effects (opening, closing, committing) happen before the confirming
// event is returned.
//
// Failure policy:
//   - open failures become DatabaseOpenFailed and leave the engine closed
//   - write failures become Save<Entity>Failed and commit nothing
//   - search and load failures become Error
//   - closing when nothing is open yields no events
//
// Process is safe for concurrent use; calls are serialized, so the store is
// never touched by two goroutines at once.
package engine
