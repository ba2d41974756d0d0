package queryir

import "github.com/roach88/airdb/internal/ir"

// Query represents an abstract statement.
//
// This is a sealed interface - only Select, Insert and Update implement it.
type Query interface {
	queryNode() // Marker method - seals interface to this package
}

// Predicate represents a filter condition.
//
// This is a sealed interface - only Equals and And implement it.
type Predicate interface {
	predicateNode() // Marker method - seals interface to this package
}

// Select reads rows from a single table.
//
//	SELECT <columns> FROM <from> WHERE <filter> ORDER BY <order_by>
//
// Columns must be explicit; there is no SELECT *. OrderBy is optional.
type Select struct {
	From    string    // Table name
	Columns []string  // Selected columns, in scan order
	Filter  Predicate // WHERE conditions (nil = no filter)
	OrderBy string    // Column to order by ascending ("" = store order)
}

func (Select) queryNode() {}

// Insert adds one row.
//
//	INSERT INTO <into> (<columns>) VALUES (?, ...)
type Insert struct {
	Into   string
	Values []Assignment // Column order is preserved
}

func (Insert) queryNode() {}

// Update rewrites the rows matching Filter.
//
//	UPDATE <table> SET <col> = ?, ... WHERE <filter>
//
// Filter is mandatory: Validate rejects an update that would touch every row.
type Update struct {
	Table  string
	Set    []Assignment
	Filter Predicate
}

func (Update) queryNode() {}

// Assignment pairs a column with the value written to it.
type Assignment struct {
	Column string
	Value  ir.IRValue
}

// Set is a shorthand constructor for Assignment.
func Set(column string, value ir.IRValue) Assignment {
	return Assignment{Column: column, Value: value}
}

// Equals represents a field-equals-literal predicate.
//
//	<field> = ?
//
// Comparison is exact (no pattern matching, no case folding).
type Equals struct {
	Field string
	Value ir.IRValue
}

func (Equals) predicateNode() {}

// And represents a conjunction of predicates. An empty And is always true.
type And struct {
	Predicates []Predicate
}

func (And) predicateNode() {}

// Optional returns an Equals predicate for field, or nil when value is unset
// (see ir.IsZero). Unset means "do not filter on this column", never
// "match the empty value".
func Optional(field string, value ir.IRValue) Predicate {
	if ir.IsZero(value) {
		return nil
	}
	return Equals{Field: field, Value: value}
}

// AllOf conjoins the non-nil predicates.
func AllOf(preds ...Predicate) And {
	kept := make([]Predicate, 0, len(preds))
	for _, p := range preds {
		if p != nil {
			kept = append(kept, p)
		}
	}
	return And{Predicates: kept}
}

// Columns returns the column names of assignments, in order.
func Columns(values []Assignment) []string {
	cols := make([]string, len(values))
	for i, a := range values {
		cols[i] = a.Column
	}
	return cols
}
