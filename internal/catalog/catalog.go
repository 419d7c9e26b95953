package catalog

import "github.com/tuannm99/novadoc/internal/record"

// TableID identifies a table across databases.
type TableID struct {
	Database string
	Table    string
}

func (id TableID) String() string {
	return id.Database + "." + id.Table
}

// Catalog caches table schemas for the lifetime of a session. It is not safe
// for concurrent use.
type Catalog struct {
	tables map[TableID]record.Schema
}

func New() *Catalog {
	return &Catalog{tables: make(map[TableID]record.Schema)}
}

func (c *Catalog) Get(id TableID) (record.Schema, bool) {
	s, ok := c.tables[id]
	return s, ok
}

func (c *Catalog) Put(id TableID, s record.Schema) {
	c.tables[id] = s
}

func (c *Catalog) Evict(id TableID) {
	delete(c.tables, id)
}

// EvictDatabase drops every cached schema that belongs to db and returns how
// many were removed.
func (c *Catalog) EvictDatabase(db string) int {
	n := 0
	for id := range c.tables {
		if id.Database == db {
			delete(c.tables, id)
			n++
		}
	}
	return n
}

func (c *Catalog) Len() int { return len(c.tables) }
