package harness

import "github.com/roach88/airdb/internal/ir"

// Trace event directions.
const (
	Inbound  = "inbound"
	Outbound = "outbound"
)

// TraceEvent is one event sent to or produced by the engine.
type TraceEvent struct {
	Seq   int64       `json:"seq"`
	Type  string      `json:"type"`  // Inbound or Outbound
	Event ir.IRObject `json:"event"` // JSON form with "type", db path as "$DB"
}

// Kind returns the event's type member.
func (e TraceEvent) Kind() string {
	if s, ok := e.Event["type"].(ir.IRString); ok {
		return string(s)
	}
	return ""
}

// Result is the outcome of a scenario run.
type Result struct {
	// Pass indicates overall scenario success.
	// True if every expectation and assertion held.
	Pass bool `json:"pass"`

	// Trace contains every inbound and outbound step event in order.
	Trace []TraceEvent `json:"trace"`

	// Errors contains failure messages. Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Trace:  []TraceEvent{},
		Errors: []string{},
	}
}

// AddError adds a failure message and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// AddTrace appends an event to the trace.
func (r *Result) AddTrace(direction string, event ir.IRObject, seq int64) {
	r.Trace = append(r.Trace, TraceEvent{Seq: seq, Type: direction, Event: event})
}

// Outbound returns the outbound events of the trace.
func (r *Result) Outbound() []TraceEvent {
	var out []TraceEvent
	for _, e := range r.Trace {
		if e.Type == Outbound {
			out = append(out, e)
		}
	}
	return out
}
