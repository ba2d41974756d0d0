// Package session hosts an engine on a pair of byte streams.
//
// Inbound events arrive as JSON lines on the input. A reader goroutine
// decodes them onto an unbounded FIFO queue; the Run loop takes one event at
// a time, passes it to the engine, and writes every outbound event as a
// line of the form
//
//	{"event":{"type":"database_opened","path":"a.db"},"seq":1}
//
// seq comes from a per-session logical clock and increases by one per
// outbound event. A line that cannot be decoded produces an "error" event
// and the session carries on.
//
// Run returns after EndApplication is written, when the input ends, or when
// the context is cancelled. The engine's database is closed on the way out.
package session
