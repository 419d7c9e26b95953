package storage

import (
	"context"
	"errors"
)

var (
	ErrNotFound = errors.New("novadoc: document not found")
	ErrStorage  = errors.New("novadoc: storage failure")
)

// Backend is a flat blob store partitioned into namespaces, one per database.
// Object names never contain a path separator.
type Backend interface {
	CreateNamespace(ctx context.Context, ns string) error
	// DropNamespace removes the namespace and every object in it. Dropping a
	// missing namespace is not an error.
	DropNamespace(ctx context.Context, ns string) error
	NamespaceExists(ctx context.Context, ns string) (bool, error)

	// Get returns ErrNotFound when the object does not exist.
	Get(ctx context.Context, ns, name string) ([]byte, error)
	// Put replaces the object as a whole.
	Put(ctx context.Context, ns, name string, data []byte) error
	// Delete is a no-op for a missing object.
	Delete(ctx context.Context, ns, name string) error
}

// Document kinds stored per table.
const (
	docSchema = "schema"
	docData   = "data"
)

func objectName(table, doc string, c Codec) string {
	return table + "." + doc + c.Ext()
}
