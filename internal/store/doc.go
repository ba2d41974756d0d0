// Package store provides SQLite-backed access to an airport database.
//
// The store never creates or migrates a schema. Open attaches to an existing
// database file that already holds the tables
//
//	continent(continent_id PK, continent_code, name)
//	country(country_id PK, country_code, name, continent_id FK, wikipedia_link, keywords)
//	region(region_id PK, region_code, local_code, name, continent_id FK, country_id FK, wikipedia_link, keywords)
//
// and refuses anything else.
//
// # Statements
//
// Every statement is built as a queryir value and compiled by querysql, so
// filter values and written columns always travel as bound parameters.
// Searches apply only the filters that are set; rows come back in primary
// key order.
//
// # Writes
//
// Each insert or update runs in its own transaction and is committed before
// the call returns. A failed statement or commit rolls back; nothing is ever
// partially written. Inserts report the generated key.
//
// # Database Configuration
//
//   - mode=rw: the file must already exist
//   - foreign_keys=ON: enforce referential integrity on every connection
//   - busy_timeout=5000: wait for locks up to 5 seconds
//   - one open connection: SQLite has a single writer
package store
