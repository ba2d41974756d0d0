package engine

import "github.com/roach88/airdb/internal/store"

// connection is the engine's database state: either closed or open.
//
// This is a sealed interface - only closed and open implement it.
type connection interface {
	connection()
}

type closed struct{}

type open struct {
	store *store.Store
	path  string
}

func (closed) connection() {}
func (open) connection()   {}
