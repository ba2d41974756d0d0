package harness

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/roach88/airdb/internal/ir"
)

// ExpectationError describes a step whose outbound events differ from its
// expect list.
type ExpectationError struct {
	Step     int      // 0-based step index
	Send     string   // kind of the inbound event
	Expected string   // human-readable expected outcome
	Actual   string   // human-readable actual outcome
	Produced []string // canonical JSON of every produced event
}

func (e *ExpectationError) Error() string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "steps[%d] (%s): expected %s, got %s", e.Step, e.Send, e.Expected, e.Actual)
	for i, p := range e.Produced {
		fmt.Fprintf(&buf, "\n  [%d] %s", i, p)
	}
	return buf.String()
}

// checkExpectations compares the events produced by one step with its
// expect list. The first mismatch is reported.
func checkExpectations(step int, send string, want []ir.IRObject, got []ir.IRObject) error {
	fail := func(expected, actual string) error {
		produced := make([]string, len(got))
		for i, g := range got {
			produced[i] = describe(g)
		}
		return &ExpectationError{Step: step, Send: send, Expected: expected, Actual: actual, Produced: produced}
	}

	if len(want) != len(got) {
		return fail(fmt.Sprintf("%d events", len(want)), fmt.Sprintf("%d events", len(got)))
	}

	for i := range want {
		wantKind, gotKind := want[i]["type"], got[i]["type"]
		if !reflect.DeepEqual(wantKind, gotKind) {
			return fail(fmt.Sprintf("event %d of type %v", i, wantKind), fmt.Sprintf("type %v", gotKind))
		}
		if path, ok := subsetMismatch(want[i], got[i], ""); ok {
			return fail(fmt.Sprintf("event %d to match %s", i, describe(want[i])), fmt.Sprintf("mismatch at %s", path))
		}
	}
	return nil
}

// subsetMismatch reports the first member of want that got lacks or holds
// a different value for. Objects are compared recursively as subsets;
// everything else must be equal.
func subsetMismatch(want, got ir.IRObject, prefix string) (string, bool) {
	for _, key := range want.SortedKeys() {
		path := key
		if prefix != "" {
			path = prefix + "." + key
		}

		gotVal, exists := got[key]
		if !exists {
			return path, true
		}

		wantObj, wantIsObj := want[key].(ir.IRObject)
		gotObj, gotIsObj := gotVal.(ir.IRObject)
		if wantIsObj && gotIsObj {
			if p, ok := subsetMismatch(wantObj, gotObj, path); ok {
				return p, true
			}
			continue
		}

		if !reflect.DeepEqual(want[key], gotVal) {
			return path, true
		}
	}
	return "", false
}

// toObject converts a YAML-decoded map to an IR object.
func toObject(m map[string]any) (ir.IRObject, error) {
	v, err := ir.FromGo(m)
	if err != nil {
		return nil, err
	}
	obj, ok := v.(ir.IRObject)
	if !ok {
		return nil, fmt.Errorf("expected an object, got %T", v)
	}
	return obj, nil
}

// describe renders obj as canonical JSON, or with %v if that fails.
func describe(obj ir.IRObject) string {
	data, err := ir.MarshalCanonical(obj)
	if err != nil {
		return fmt.Sprintf("%v", obj)
	}
	return string(data)
}
