package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Scenario defines a scripted engine conversation.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Fixture is an optional CUE seed file applied before the steps.
	// LoadScenario resolves it relative to the scenario file.
	Fixture string `yaml:"fixture,omitempty"`

	// Steps are sent to the engine in order.
	Steps []Step `yaml:"steps"`

	// Assertions are evaluated after the last step.
	// Supported types: trace_contains, trace_order, trace_count, final_state
	Assertions []Assertion `yaml:"assertions,omitempty"`
}

// Step sends one inbound event and optionally checks the answer.
type Step struct {
	// Send is the inbound event in its JSON shape, "type" included.
	Send map[string]any `yaml:"send"`

	// Expect lists the outbound events the step must produce.
	Expect Expectations `yaml:"expect,omitempty"`
}

// Expectations is the expect list of a step. Set distinguishes an absent
// list (unchecked) from an empty one (nothing may be produced).
type Expectations struct {
	Set    bool
	Events []map[string]any
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (e *Expectations) UnmarshalYAML(node *yaml.Node) error {
	e.Set = true
	return node.Decode(&e.Events)
}

// Expect builds a checked expectation list.
func Expect(events ...map[string]any) Expectations {
	if events == nil {
		events = []map[string]any{}
	}
	return Expectations{Set: true, Events: events}
}

// Assertion validates the trace or the final database state.
type Assertion struct {
	// Type specifies the assertion type:
	// - "trace_contains": an outbound event of Kind matches Fields
	// - "trace_order": the Kinds appear in this order among outbound events
	// - "trace_count": exactly Count outbound events of Kind
	// - "final_state": the single row of Table matching Where has Expect
	Type string `yaml:"type"`

	// Kind is an outbound event type (trace_contains, trace_count).
	Kind string `yaml:"kind,omitempty"`

	// Fields is a subset match on the event (trace_contains).
	Fields map[string]any `yaml:"fields,omitempty"`

	// Kinds is the expected order (trace_order).
	Kinds []string `yaml:"kinds,omitempty"`

	// Count is the expected number of occurrences (trace_count).
	Count int `yaml:"count,omitempty"`

	// Table, Where and Expect describe a row check (final_state).
	Table  string         `yaml:"table,omitempty"`
	Where  map[string]any `yaml:"where,omitempty"`
	Expect map[string]any `yaml:"expect,omitempty"`
}

// Assertion type constants.
const (
	AssertTraceContains = "trace_contains"
	AssertTraceOrder    = "trace_order"
	AssertTraceCount    = "trace_count"
	AssertFinalState    = "final_state"
)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	scenario, err := ParseScenario(data)
	if err != nil {
		return nil, err
	}

	if scenario.Fixture != "" && !filepath.IsAbs(scenario.Fixture) {
		scenario.Fixture = filepath.Join(filepath.Dir(path), scenario.Fixture)
	}
	if scenario.Fixture != "" {
		if _, err := os.Stat(scenario.Fixture); err != nil {
			return nil, fmt.Errorf("invalid scenario: fixture not found: %s", scenario.Fixture)
		}
	}

	return scenario, nil
}

// ParseScenario parses and validates scenario YAML. A relative fixture path
// is left as written.
func ParseScenario(data []byte) (*Scenario, error) {
	// Strict field validation catches typos like "assertion:" vs "assertions:"
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}

	for i, step := range s.Steps {
		if len(step.Send) == 0 {
			return fmt.Errorf("steps[%d]: send is required", i)
		}
		if _, ok := step.Send["type"].(string); !ok {
			return fmt.Errorf("steps[%d].send: type is required", i)
		}
		for j, exp := range step.Expect.Events {
			if _, ok := exp["type"].(string); !ok {
				return fmt.Errorf("steps[%d].expect[%d]: type is required", i, j)
			}
		}
	}

	for i, assertion := range s.Assertions {
		if err := validateAssertion(i, &assertion); err != nil {
			return err
		}
	}

	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	switch a.Type {
	case AssertTraceContains:
		if a.Kind == "" {
			return fmt.Errorf("assertions[%d]: kind is required for trace_contains", index)
		}
	case AssertTraceOrder:
		if len(a.Kinds) == 0 {
			return fmt.Errorf("assertions[%d]: kinds list is required for trace_order", index)
		}
	case AssertTraceCount:
		if a.Kind == "" {
			return fmt.Errorf("assertions[%d]: kind is required for trace_count", index)
		}
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for trace_count", index)
		}
	case AssertFinalState:
		if a.Table == "" {
			return fmt.Errorf("assertions[%d]: table is required for final_state", index)
		}
		if len(a.Expect) == 0 {
			return fmt.Errorf("assertions[%d]: expect is required for final_state", index)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}

	return nil
}
