package querysql

import (
	"fmt"
	"strings"

	"github.com/roach88/airdb/internal/ir"
	"github.com/roach88/airdb/internal/queryir"
)

// Compiler compiles queryir statements to parameterized SQL for SQLite.
//
// CRITICAL: values are always bound through ? placeholders, never
// interpolated. Identifiers are checked by queryir.Validate first.
type Compiler struct{}

// NewCompiler creates a new Compiler.
func NewCompiler() *Compiler {
	return &Compiler{}
}

// Compile converts a statement to SQL plus its bound parameters, in
// placeholder order.
func (c *Compiler) Compile(q queryir.Query) (string, []any, error) {
	if err := queryir.Validate(q); err != nil {
		return "", nil, fmt.Errorf("invalid query: %w", err)
	}

	switch query := q.(type) {
	case queryir.Select:
		return c.compileSelect(query)
	case *queryir.Select:
		return c.compileSelect(*query)
	case queryir.Insert:
		return c.compileInsert(query)
	case *queryir.Insert:
		return c.compileInsert(*query)
	case queryir.Update:
		return c.compileUpdate(query)
	case *queryir.Update:
		return c.compileUpdate(*query)
	default:
		return "", nil, fmt.Errorf("unsupported query type: %T", q)
	}
}

// compileSelect always emits a WHERE clause; an absent filter compiles to
// the tautology so optional conjuncts can be appended uniformly.
func (c *Compiler) compileSelect(q queryir.Select) (string, []any, error) {
	where, params, err := c.compilePredicate(q.Filter)
	if err != nil {
		return "", nil, fmt.Errorf("compile filter: %w", err)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "SELECT %s FROM %s WHERE %s", strings.Join(q.Columns, ", "), q.From, where)
	if q.OrderBy != "" {
		fmt.Fprintf(&sb, " ORDER BY %s ASC", q.OrderBy)
	}
	return sb.String(), params, nil
}

func (c *Compiler) compileInsert(q queryir.Insert) (string, []any, error) {
	params, err := assignmentParams(q.Values)
	if err != nil {
		return "", nil, err
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(q.Values)), ", ")
	sql := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		q.Into,
		strings.Join(queryir.Columns(q.Values), ", "),
		placeholders)

	return sql, params, nil
}

func (c *Compiler) compileUpdate(q queryir.Update) (string, []any, error) {
	params, err := assignmentParams(q.Set)
	if err != nil {
		return "", nil, err
	}

	sets := make([]string, len(q.Set))
	for i, a := range q.Set {
		sets[i] = a.Column + " = ?"
	}

	where, whereParams, err := c.compilePredicate(q.Filter)
	if err != nil {
		return "", nil, fmt.Errorf("compile filter: %w", err)
	}

	sql := fmt.Sprintf("UPDATE %s SET %s WHERE %s", q.Table, strings.Join(sets, ", "), where)
	return sql, append(params, whereParams...), nil
}

// compilePredicate compiles a predicate to a WHERE fragment.
// CRITICAL: values are NEVER interpolated.
func (c *Compiler) compilePredicate(p queryir.Predicate) (string, []any, error) {
	if p == nil {
		return "1 = 1", nil, nil
	}

	switch pred := p.(type) {
	case queryir.Equals:
		return c.compileEquals(pred)
	case *queryir.Equals:
		return c.compileEquals(*pred)
	case queryir.And:
		return c.compileAnd(pred)
	case *queryir.And:
		return c.compileAnd(*pred)
	default:
		return "", nil, fmt.Errorf("unsupported predicate type: %T", p)
	}
}

// compileEquals compiles an Equals predicate to "field = ?".
func (c *Compiler) compileEquals(eq queryir.Equals) (string, []any, error) {
	param, err := ir.ToParam(eq.Value)
	if err != nil {
		return "", nil, fmt.Errorf("field %s: %w", eq.Field, err)
	}
	return eq.Field + " = ?", []any{param}, nil
}

// compileAnd starts from the tautology and appends one conjunct per
// predicate: "1 = 1 AND a = ? AND b = ?".
func (c *Compiler) compileAnd(and queryir.And) (string, []any, error) {
	parts := []string{"1 = 1"}
	var params []any

	for _, pred := range and.Predicates {
		sql, predParams, err := c.compilePredicate(pred)
		if err != nil {
			return "", nil, err
		}
		parts = append(parts, sql)
		params = append(params, predParams...)
	}

	return strings.Join(parts, " AND "), params, nil
}

func assignmentParams(values []queryir.Assignment) ([]any, error) {
	params := make([]any, len(values))
	for i, a := range values {
		p, err := ir.ToParam(a.Value)
		if err != nil {
			return nil, fmt.Errorf("column %s: %w", a.Column, err)
		}
		params[i] = p
	}
	return params, nil
}
