package queryir

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/roach88/airdb/internal/ir"
)

// validIdentifier matches valid SQL identifiers (table/column names).
// Only allows alphanumeric and underscore, must start with letter or underscore.
var validIdentifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ValidationError describes one problem found in a statement.
type ValidationError struct {
	Node    string // "select", "insert", "update", "equals", ...
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Node, e.Message)
}

// Validate checks a statement before compilation. All problems are
// reported, joined with errors.Join.
//
// Validate is a pure function with no side effects.
func Validate(q Query) error {
	v := &validator{}
	v.validateQuery(q)
	return errors.Join(v.errs...)
}

// IsIdentifier reports whether name can be used as a table or column name.
func IsIdentifier(name string) bool {
	return validIdentifier.MatchString(name)
}

type validator struct {
	errs []error
}

func (v *validator) fail(node, format string, args ...any) {
	v.errs = append(v.errs, &ValidationError{Node: node, Message: fmt.Sprintf(format, args...)})
}

func (v *validator) identifier(node, role, name string) {
	if !IsIdentifier(name) {
		v.fail(node, "invalid %s %q", role, name)
	}
}

func (v *validator) validateQuery(q Query) {
	switch query := q.(type) {
	case nil:
		v.fail("query", "nil query")
	case Select:
		v.validateSelect(query)
	case *Select:
		v.validateSelect(*query)
	case Insert:
		v.validateInsert(query)
	case *Insert:
		v.validateInsert(*query)
	case Update:
		v.validateUpdate(query)
	case *Update:
		v.validateUpdate(*query)
	default:
		v.fail("query", "unknown query type %T", q)
	}
}

func (v *validator) validateSelect(s Select) {
	v.identifier("select", "table", s.From)
	if len(s.Columns) == 0 {
		v.fail("select", "explicit columns required")
	}
	for _, c := range s.Columns {
		v.identifier("select", "column", c)
	}
	if s.OrderBy != "" {
		v.identifier("select", "order column", s.OrderBy)
	}
	if s.Filter != nil {
		v.validatePredicate(s.Filter)
	}
}

func (v *validator) validateInsert(s Insert) {
	v.identifier("insert", "table", s.Into)
	if len(s.Values) == 0 {
		v.fail("insert", "at least one column required")
	}
	v.validateAssignments("insert", s.Values)
}

func (v *validator) validateUpdate(s Update) {
	v.identifier("update", "table", s.Table)
	if len(s.Set) == 0 {
		v.fail("update", "at least one column required")
	}
	v.validateAssignments("update", s.Set)
	if s.Filter == nil || isTautology(s.Filter) {
		v.fail("update", "filter required")
		return
	}
	v.validatePredicate(s.Filter)
}

func (v *validator) validateAssignments(node string, values []Assignment) {
	seen := make(map[string]bool, len(values))
	for _, a := range values {
		v.identifier(node, "column", a.Column)
		if seen[a.Column] {
			v.fail(node, "column %q assigned twice", a.Column)
		}
		seen[a.Column] = true
		v.scalar(node, a.Column, a.Value)
	}
}

func (v *validator) validatePredicate(p Predicate) {
	switch pred := p.(type) {
	case Equals:
		v.validateEquals(pred)
	case *Equals:
		v.validateEquals(*pred)
	case And:
		for _, sub := range pred.Predicates {
			v.validatePredicate(sub)
		}
	case *And:
		for _, sub := range pred.Predicates {
			v.validatePredicate(sub)
		}
	default:
		v.fail("predicate", "unknown predicate type %T", p)
	}
}

func (v *validator) validateEquals(eq Equals) {
	v.identifier("equals", "field", eq.Field)
	v.scalar("equals", eq.Field, eq.Value)
}

func (v *validator) scalar(node, column string, value ir.IRValue) {
	switch value.(type) {
	case ir.IRString, ir.IRInt, ir.IRBool, ir.IRNull:
	default:
		v.fail(node, "column %q: value %T is not a scalar", column, value)
	}
}

// isTautology reports whether p constrains nothing.
func isTautology(p Predicate) bool {
	switch pred := p.(type) {
	case And:
		for _, sub := range pred.Predicates {
			if !isTautology(sub) {
				return false
			}
		}
		return true
	case *And:
		return isTautology(*pred)
	default:
		return false
	}
}
