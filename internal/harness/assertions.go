package harness

import (
	"context"
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/roach88/airdb/internal/ir"
	"github.com/roach88/airdb/internal/queryir"
	"github.com/roach88/airdb/internal/querysql"
	"github.com/roach88/airdb/internal/store"
)

// AssertionError is returned when an assertion fails.
// It includes detailed context to help debug the failure.
type AssertionError struct {
	Type     string       // Assertion type for categorization
	Expected string       // Human-readable expected outcome
	Actual   string       // Human-readable actual outcome
	Trace    []TraceEvent // Outbound events for debugging context
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	if len(e.Trace) > 0 {
		fmt.Fprintf(&buf, "\nOutbound events:\n")
		for _, ev := range e.Trace {
			fmt.Fprintf(&buf, "  [%d] %s\n", ev.Seq, describe(ev.Event))
		}
	}

	return buf.String()
}

// assertTraceContains checks that some outbound event of the given kind
// matches the assertion's fields (subset match).
func assertTraceContains(trace []TraceEvent, assertion Assertion) error {
	want, err := toObject(assertion.Fields)
	if err != nil {
		return fmt.Errorf("trace_contains fields: %w", err)
	}

	for _, ev := range trace {
		if ev.Kind() != assertion.Kind {
			continue
		}
		if _, mismatch := subsetMismatch(want, ev.Event, ""); !mismatch {
			return nil
		}
	}

	return &AssertionError{
		Type:     AssertTraceContains,
		Expected: fmt.Sprintf("%s with %s", assertion.Kind, describe(want)),
		Actual:   "not found in trace",
		Trace:    trace,
	}
}

// assertTraceOrder checks that the kinds first appear in the given order.
// Kinds don't need to be consecutive.
func assertTraceOrder(trace []TraceEvent, assertion Assertion) error {
	positions := make(map[string]int)
	for i, ev := range trace {
		if _, seen := positions[ev.Kind()]; !seen {
			positions[ev.Kind()] = i + 1 // 1-indexed for readability
		}
	}

	for _, kind := range assertion.Kinds {
		if positions[kind] == 0 {
			return &AssertionError{
				Type:     AssertTraceOrder,
				Expected: fmt.Sprintf("all kinds present: %v", assertion.Kinds),
				Actual:   fmt.Sprintf("missing kind: %s", kind),
				Trace:    trace,
			}
		}
	}

	for i := 1; i < len(assertion.Kinds); i++ {
		prev, curr := assertion.Kinds[i-1], assertion.Kinds[i]
		if positions[prev] >= positions[curr] {
			return &AssertionError{
				Type:     AssertTraceOrder,
				Expected: fmt.Sprintf("kinds in order: %v", assertion.Kinds),
				Actual: fmt.Sprintf("%s (pos %d) should be before %s (pos %d)",
					prev, positions[prev], curr, positions[curr]),
				Trace: trace,
			}
		}
	}

	return nil
}

// assertTraceCount checks that exactly Count outbound events have the kind.
func assertTraceCount(trace []TraceEvent, assertion Assertion) error {
	count := 0
	for _, ev := range trace {
		if ev.Kind() == assertion.Kind {
			count++
		}
	}

	if count != assertion.Count {
		return &AssertionError{
			Type:     AssertTraceCount,
			Expected: fmt.Sprintf("%d occurrences of %s", assertion.Count, assertion.Kind),
			Actual:   fmt.Sprintf("%d occurrences", count),
			Trace:    trace,
		}
	}

	return nil
}

// assertFinalState checks that exactly one row of the table matches Where
// and that it holds the Expect values. The query is built from the query IR,
// so table and column names are validated and values are bound parameters.
func assertFinalState(ctx context.Context, dbPath string, assertion Assertion) error {
	q, err := finalStateQuery(assertion)
	if err != nil {
		return err
	}

	sqlText, params, err := querysql.NewCompiler().Compile(q)
	if err != nil {
		return fmt.Errorf("final_state: %w", err)
	}

	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("final_state: %w", err)
	}
	defer st.Close()

	rows, err := st.DB().QueryContext(ctx, sqlText, params...)
	if err != nil {
		return &AssertionError{
			Type:     AssertFinalState,
			Expected: fmt.Sprintf("query table %s", assertion.Table),
			Actual:   fmt.Sprintf("query error: %v", err),
		}
	}
	defer rows.Close()

	whereDesc := formatWhereClause(assertion.Where)
	if !rows.Next() {
		return &AssertionError{
			Type:     AssertFinalState,
			Expected: fmt.Sprintf("row in %s where %s", assertion.Table, whereDesc),
			Actual:   "row not found",
		}
	}

	values := make([]any, len(q.Columns))
	ptrs := make([]any, len(q.Columns))
	for i := range values {
		ptrs[i] = &values[i]
	}
	if err := rows.Scan(ptrs...); err != nil {
		return fmt.Errorf("scan row: %w", err)
	}

	if rows.Next() {
		return &AssertionError{
			Type:     AssertFinalState,
			Expected: fmt.Sprintf("exactly one row in %s where %s", assertion.Table, whereDesc),
			Actual:   "multiple rows matched (assertion is ambiguous)",
		}
	}

	for i, col := range q.Columns {
		want, err := ir.FromGo(assertion.Expect[col])
		if err != nil {
			return fmt.Errorf("final_state expect %q: %w", col, err)
		}
		actual := values[i]
		if b, ok := actual.([]byte); ok {
			actual = string(b)
		}
		got, err := ir.FromGo(actual)
		if err != nil {
			return fmt.Errorf("final_state column %q: %w", col, err)
		}
		if !reflect.DeepEqual(want, got) {
			return &AssertionError{
				Type:     AssertFinalState,
				Expected: fmt.Sprintf("field %q = %v", col, assertion.Expect[col]),
				Actual:   fmt.Sprintf("field %q = %v", col, values[i]),
			}
		}
	}

	return nil
}

// finalStateQuery selects the Expect columns of the rows matching Where.
// Keys are sorted for deterministic SQL.
func finalStateQuery(assertion Assertion) (queryir.Select, error) {
	columns := make([]string, 0, len(assertion.Expect))
	for col := range assertion.Expect {
		columns = append(columns, col)
	}
	slices.Sort(columns)

	keys := make([]string, 0, len(assertion.Where))
	for k := range assertion.Where {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	preds := make([]queryir.Predicate, 0, len(keys))
	for _, k := range keys {
		v, err := ir.FromGo(assertion.Where[k])
		if err != nil {
			return queryir.Select{}, fmt.Errorf("final_state where %q: %w", k, err)
		}
		preds = append(preds, queryir.Equals{Field: k, Value: v})
	}

	return queryir.Select{
		From:    assertion.Table,
		Columns: columns,
		Filter:  queryir.And{Predicates: preds},
	}, nil
}

// formatWhereClause creates a human-readable description of WHERE conditions.
func formatWhereClause(where map[string]any) string {
	if len(where) == 0 {
		return "(no conditions)"
	}

	keys := make([]string, 0, len(where))
	for k := range where {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, where[k]))
	}
	return strings.Join(parts, " AND ")
}

// AssertionContext provides context for evaluating assertions.
type AssertionContext struct {
	DBPath string
	Ctx    context.Context
}

// EvaluateAssertions evaluates all assertions against the result.
// Returns a slice of error messages for failed assertions.
// The actx parameter provides database access for final_state assertions.
func EvaluateAssertions(result *Result, assertions []Assertion, actx *AssertionContext) []string {
	var errors []string
	trace := result.Outbound()

	for i, assertion := range assertions {
		var err error

		switch assertion.Type {
		case AssertTraceContains:
			err = assertTraceContains(trace, assertion)
		case AssertTraceOrder:
			err = assertTraceOrder(trace, assertion)
		case AssertTraceCount:
			err = assertTraceCount(trace, assertion)
		case AssertFinalState:
			if actx == nil || actx.DBPath == "" {
				err = fmt.Errorf("assertion[%d]: final_state requires database context", i)
			} else {
				err = assertFinalState(actx.Ctx, actx.DBPath, assertion)
			}
		default:
			err = fmt.Errorf("assertion[%d]: unknown assertion type %q", i, assertion.Type)
		}

		if err != nil {
			errors = append(errors, err.Error())
		}
	}

	return errors
}
