package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/airdb/internal/ir"
)

func sampleTrace() []TraceEvent {
	return []TraceEvent{
		{Seq: 2, Type: Outbound, Event: ir.IRObject{
			"type":      ir.IRString("continent_saved"),
			"continent": ir.IRObject{"continent_id": ir.IRInt(1), "continent_code": ir.IRString("AS"), "name": ir.IRString("Asia")},
		}},
		{Seq: 4, Type: Outbound, Event: ir.IRObject{"type": ir.IRString("database_closed")}},
		{Seq: 6, Type: Outbound, Event: ir.IRObject{"type": ir.IRString("error"), "message": ir.IRString("no database is open")}},
	}
}

func TestAssertTraceContains(t *testing.T) {
	trace := sampleTrace()

	assert.NoError(t, assertTraceContains(trace, Assertion{Kind: "database_closed"}))
	assert.NoError(t, assertTraceContains(trace, Assertion{
		Kind:   "continent_saved",
		Fields: map[string]any{"continent": map[string]any{"name": "Asia", "continent_id": 1}},
	}))

	err := assertTraceContains(trace, Assertion{
		Kind:   "continent_saved",
		Fields: map[string]any{"continent": map[string]any{"name": "Europe"}},
	})
	require.Error(t, err)
	var ae *AssertionError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, AssertTraceContains, ae.Type)
	assert.Contains(t, err.Error(), "not found in trace")
}

func TestAssertTraceOrder(t *testing.T) {
	trace := sampleTrace()

	assert.NoError(t, assertTraceOrder(trace, Assertion{Kinds: []string{"continent_saved", "error"}}))

	err := assertTraceOrder(trace, Assertion{Kinds: []string{"error", "database_closed"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "should be before")

	err = assertTraceOrder(trace, Assertion{Kinds: []string{"continent_saved", "end_application"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing kind: end_application")
}

func TestAssertTraceCount(t *testing.T) {
	trace := sampleTrace()

	assert.NoError(t, assertTraceCount(trace, Assertion{Kind: "error", Count: 1}))
	assert.NoError(t, assertTraceCount(trace, Assertion{Kind: "continent_loaded", Count: 0}))

	err := assertTraceCount(trace, Assertion{Kind: "error", Count: 2})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2 occurrences of error")
}

func TestFinalStateQuery_SortedAndParameterized(t *testing.T) {
	q, err := finalStateQuery(Assertion{
		Table:  "country",
		Where:  map[string]any{"name": "Japan", "continent_id": 1},
		Expect: map[string]any{"keywords": nil, "country_code": "JP"},
	})
	require.NoError(t, err)

	assert.Equal(t, "country", q.From)
	assert.Equal(t, []string{"country_code", "keywords"}, q.Columns)
}

func TestEvaluateAssertions_FinalStateNeedsDatabase(t *testing.T) {
	errs := EvaluateAssertions(NewResult(), []Assertion{{Type: AssertFinalState, Table: "continent", Expect: map[string]any{"name": "Asia"}}}, nil)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "requires database context")
}

func TestSubsetMismatch(t *testing.T) {
	got := ir.IRObject{
		"type":      ir.IRString("continent_loaded"),
		"continent": ir.IRObject{"continent_id": ir.IRInt(3), "name": ir.IRString("Asia")},
	}

	_, mismatch := subsetMismatch(ir.IRObject{"continent": ir.IRObject{"continent_id": ir.IRInt(3)}}, got, "")
	assert.False(t, mismatch)

	path, mismatch := subsetMismatch(ir.IRObject{"continent": ir.IRObject{"continent_code": ir.IRString("AS")}}, got, "")
	assert.True(t, mismatch)
	assert.Equal(t, "continent.continent_code", path)

	path, mismatch = subsetMismatch(ir.IRObject{"continent": ir.IRString("Asia")}, got, "")
	assert.True(t, mismatch, "an object never equals a string")
	assert.Equal(t, "continent", path)
}

func TestExpectationError_ListsProducedEvents(t *testing.T) {
	err := checkExpectations(2, "load_continent",
		[]ir.IRObject{{"type": ir.IRString("continent_loaded")}},
		[]ir.IRObject{{"type": ir.IRString("error"), "message": ir.IRString("boom")}},
	)
	require.Error(t, err)

	var ee *ExpectationError
	require.ErrorAs(t, err, &ee)
	assert.Equal(t, 2, ee.Step)
	assert.Equal(t, []string{`{"message":"boom","type":"error"}`}, ee.Produced)
	assert.Contains(t, err.Error(), "steps[2] (load_continent): expected event 0 of type continent_loaded, got type error")
}
