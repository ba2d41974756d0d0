package harness

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/roach88/airdb/internal/engine"
	"github.com/roach88/airdb/internal/event"
	"github.com/roach88/airdb/internal/fixture"
	"github.com/roach88/airdb/internal/ir"
	"github.com/roach88/airdb/internal/session"
	"github.com/roach88/airdb/internal/testutil"
)

// DBPlaceholder stands for the scenario database path in sent events and
// in traces.
const DBPlaceholder = "$DB"

// Harness drives one scenario against a private engine and database.
type Harness struct {
	engine *engine.Engine
	clock  *session.Clock
	dbPath string
	logger *slog.Logger
}

// Run executes a scenario and returns the result.
//
// Execution flow:
//  1. Create a fresh airport database in a temporary directory
//  2. Open it through the engine
//  3. Apply the fixture, if any; a rejected record aborts the run
//  4. Send every step, recording the trace and checking expect lists
//  5. Evaluate assertions against the trace and the database
//
// A returned error means the scenario could not be run; failed checks are
// reported in the Result instead.
func Run(ctx context.Context, scenario *Scenario) (*Result, error) {
	dir, err := os.MkdirTemp("", "airdb-scenario-*")
	if err != nil {
		return nil, fmt.Errorf("create scenario directory: %w", err)
	}
	defer os.RemoveAll(dir)

	dbPath := filepath.Join(dir, "airport.db")
	if err := testutil.CreateAirportDB(dbPath); err != nil {
		return nil, fmt.Errorf("create scenario database: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil)) // Suppress logs in scenarios
	eng := engine.New(engine.WithLogger(logger))
	defer eng.Close()

	out := eng.Process(ctx, event.OpenDatabase{Path: dbPath})
	if len(out) != 1 || out[0].Kind() != event.KindDatabaseOpened {
		return nil, fmt.Errorf("open scenario database: %v", out)
	}

	if scenario.Fixture != "" {
		f, err := fixture.Load(scenario.Fixture)
		if err != nil {
			return nil, fmt.Errorf("load fixture: %w", err)
		}
		rep, err := f.Apply(ctx, eng)
		if err != nil {
			return nil, fmt.Errorf("apply fixture: %w", err)
		}
		if rep.Failed() > 0 {
			return nil, fmt.Errorf("apply fixture: %d records rejected: %s", rep.Failed(), strings.Join(rep.Failures, "; "))
		}
	}

	h := &Harness{
		engine: eng,
		clock:  session.NewClock(),
		dbPath: dbPath,
		logger: logger,
	}

	result := NewResult()
	if err := h.executeSteps(ctx, scenario.Steps, result); err != nil {
		return nil, err
	}

	// Release the engine's connection before inspecting the file.
	if err := eng.Close(); err != nil {
		return nil, fmt.Errorf("close scenario database: %w", err)
	}

	actx := &AssertionContext{DBPath: dbPath, Ctx: ctx}
	for _, msg := range EvaluateAssertions(result, scenario.Assertions, actx) {
		result.AddError(msg)
	}

	return result, nil
}

// executeSteps sends every step and checks its expect list. Mismatches are
// recorded in result; only an unsendable step is an error.
func (h *Harness) executeSteps(ctx context.Context, steps []Step, result *Result) error {
	for i, step := range steps {
		in, err := h.decodeSend(step.Send)
		if err != nil {
			return fmt.Errorf("steps[%d]: %w", i, err)
		}

		inObj, err := h.traceObject(in)
		if err != nil {
			return fmt.Errorf("steps[%d]: %w", i, err)
		}
		result.AddTrace(Inbound, inObj, h.clock.Next())

		outs := h.engine.Process(ctx, in)
		got := make([]ir.IRObject, 0, len(outs))
		for _, o := range outs {
			obj, err := h.traceObject(o)
			if err != nil {
				return fmt.Errorf("steps[%d]: %w", i, err)
			}
			result.AddTrace(Outbound, obj, h.clock.Next())
			got = append(got, obj)
		}

		h.logger.Info("step completed", "step", i, "kind", in.Kind(), "events", len(outs))

		if !step.Expect.Set {
			continue
		}

		want := make([]ir.IRObject, 0, len(step.Expect.Events))
		for j, exp := range step.Expect.Events {
			obj, err := toObject(exp)
			if err != nil {
				return fmt.Errorf("steps[%d].expect[%d]: %w", i, j, err)
			}
			want = append(want, obj)
		}

		if err := checkExpectations(i, in.Kind(), want, got); err != nil {
			result.AddError(err.Error())
		}
	}
	return nil
}

// decodeSend turns a step's send map into an inbound event, substituting
// the database path for DBPlaceholder.
func (h *Harness) decodeSend(send map[string]any) (event.Inbound, error) {
	data, err := json.Marshal(h.substitute(send))
	if err != nil {
		return nil, fmt.Errorf("encode send: %w", err)
	}
	return event.Decode(data)
}

func (h *Harness) substitute(v any) any {
	switch val := v.(type) {
	case string:
		return strings.ReplaceAll(val, DBPlaceholder, h.dbPath)
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, elem := range val {
			out[k] = h.substitute(elem)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, elem := range val {
			out[i] = h.substitute(elem)
		}
		return out
	default:
		return v
	}
}

// traceObject returns e's JSON form with the database path scrubbed.
func (h *Harness) traceObject(e event.Event) (ir.IRObject, error) {
	fields, err := event.Fields(e)
	if err != nil {
		return nil, err
	}
	fields["type"] = ir.IRString(e.Kind())
	return h.scrub(fields).(ir.IRObject), nil
}

func (h *Harness) scrub(v ir.IRValue) ir.IRValue {
	switch val := v.(type) {
	case ir.IRString:
		return ir.IRString(strings.ReplaceAll(string(val), h.dbPath, DBPlaceholder))
	case ir.IRObject:
		out := make(ir.IRObject, len(val))
		for k, elem := range val {
			out[k] = h.scrub(elem)
		}
		return out
	case ir.IRArray:
		out := make(ir.IRArray, len(val))
		for i, elem := range val {
			out[i] = h.scrub(elem)
		}
		return out
	default:
		return v
	}
}
