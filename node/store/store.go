// Package store persists serialized node definitions.
//
// Front-ends build up catalogs of reusable node kinds; a Store keeps those
// definitions across sessions so a graph assembler can load them back
// through a node.Registry. Only individual definitions are stored here;
// graph structure persistence belongs to the assembler.
package store

import (
	"context"
	"errors"

	"github.com/dshills/graphgen-go/node"
)

// ErrNotFound is returned when a requested definition name does not exist.
var ErrNotFound = errors.New("definition not found")

// Store provides named persistence for node definitions.
//
// Implementations must be safe for concurrent use. Save overwrites an
// existing definition of the same name.
type Store interface {
	// Save persists a definition under name, replacing any previous one.
	Save(ctx context.Context, name string, def node.Definition) error

	// Load retrieves the definition saved under name.
	// Returns ErrNotFound if the name is unknown.
	Load(ctx context.Context, name string) (node.Definition, error)

	// List returns all saved names in lexical order.
	List(ctx context.Context) ([]string, error)

	// Delete removes the definition saved under name.
	// Returns ErrNotFound if the name is unknown.
	Delete(ctx context.Context, name string) error
}
