// Package queryir provides the abstract statement representation used by
// the store to talk to SQLite.
//
// Statements are built as values and compiled to parameterized SQL by
// package querysql:
//
//	[store] → [queryir] → [querysql] → database/sql
//
// # Sealed interfaces
//
// Query and Predicate are sealed with marker methods, so backends can
// type-switch exhaustively over:
//
//	Query:     Select, Insert, Update
//	Predicate: Equals, And
//
// # Optional filters
//
// Searches constrain only the columns the caller supplied. Optional returns
// nil for an unset value (empty string, zero id) and AllOf drops nils, so
//
//	AllOf(Optional("continent_code", ir.IRString("")), Optional("name", ir.IRString("Asia")))
//
// is the single-conjunct predicate name = ?. An empty And is the tautology.
//
// # Identifiers vs values
//
// Values always travel as bound parameters. Table and column names cannot
// be bound, so Validate checks them against a strict identifier pattern
// before compilation.
package queryir
