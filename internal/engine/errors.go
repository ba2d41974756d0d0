package engine

import "errors"

// ErrDatabaseClosed is reported by every search, load and save received
// while no database is open.
var ErrDatabaseClosed = errors.New("no database is open")
