package engine

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/tuannm99/novadoc/internal/catalog"
	"github.com/tuannm99/novadoc/internal/record"
	"github.com/tuannm99/novadoc/internal/storage"
)

// DocumentStore is what the engine needs from persistence.
type DocumentStore interface {
	CreateDatabase(ctx context.Context, db string) error
	DropDatabase(ctx context.Context, db string) error
	DatabaseExists(ctx context.Context, db string) (bool, error)

	SchemaExists(ctx context.Context, db, table string) (bool, error)
	LoadSchema(ctx context.Context, db, table string) (record.Schema, error)
	SaveSchema(ctx context.Context, db, table string, schema record.Schema) error
	LoadRows(ctx context.Context, db, table string) ([]record.Row, error)
	SaveRows(ctx context.Context, db, table string, rows []record.Row) error
	DropTable(ctx context.Context, db, table string) error
}

var _ DocumentStore = (*storage.Store)(nil)

// Database is a session handle: it tracks the active database and caches the
// schemas it has seen. Not safe for concurrent use.
type Database struct {
	store   DocumentStore
	catalog *catalog.Catalog
	current string
	logger  *zap.Logger
}

func NewDatabase(store DocumentStore, logger *zap.Logger) *Database {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Database{
		store:   store,
		catalog: catalog.New(),
		logger:  logger,
	}
}

// Current reports the active database, if any.
func (db *Database) Current() (string, bool) {
	return db.current, db.current != ""
}

func (db *Database) CreateDatabase(ctx context.Context, name string) error {
	ok, err := db.store.DatabaseExists(ctx, name)
	if err != nil {
		return err
	}
	if ok {
		return fmt.Errorf("%w: %s", ErrDatabaseAlreadyExists, name)
	}
	if err := db.store.CreateDatabase(ctx, name); err != nil {
		return err
	}
	db.logger.Info("database created", zap.String("db", name))
	return nil
}

// DropDatabase succeeds for a database that does not exist.
func (db *Database) DropDatabase(ctx context.Context, name string) error {
	if err := db.store.DropDatabase(ctx, name); err != nil {
		return err
	}
	evicted := db.catalog.EvictDatabase(name)
	if db.current == name {
		db.current = ""
	}
	db.logger.Info("database dropped", zap.String("db", name), zap.Int("evicted", evicted))
	return nil
}

func (db *Database) UseDatabase(ctx context.Context, name string) error {
	ok, err := db.store.DatabaseExists(ctx, name)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %s", ErrDatabaseNotFound, name)
	}
	db.current = name
	db.logger.Info("database selected", zap.String("db", name))
	return nil
}

func (db *Database) active() (string, error) {
	if db.current == "" {
		return "", ErrNoDatabaseSelected
	}
	return db.current, nil
}

func (db *Database) CreateTable(ctx context.Context, name string, schema record.Schema) error {
	cur, err := db.active()
	if err != nil {
		return err
	}
	if err := schema.Validate(); err != nil {
		return fmt.Errorf("table %s: %w", name, err)
	}
	exists, err := db.store.SchemaExists(ctx, cur, name)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("%w: %s", ErrTableAlreadyExists, name)
	}
	if err := db.store.SaveSchema(ctx, cur, name, schema); err != nil {
		return err
	}
	db.catalog.Put(catalog.TableID{Database: cur, Table: name}, schema)
	db.logger.Info("table created",
		zap.String("db", cur),
		zap.String("table", name),
		zap.Strings("fields", schema.Names()),
	)
	return nil
}

// DropTable succeeds for a table that does not exist.
func (db *Database) DropTable(ctx context.Context, name string) error {
	cur, err := db.active()
	if err != nil {
		return err
	}
	if err := db.store.DropTable(ctx, cur, name); err != nil {
		return err
	}
	db.catalog.Evict(catalog.TableID{Database: cur, Table: name})
	db.logger.Info("table dropped", zap.String("db", cur), zap.String("table", name))
	return nil
}

// TableSchema serves from the catalog and falls back to the store on a miss.
func (db *Database) TableSchema(ctx context.Context, name string) (record.Schema, error) {
	cur, err := db.active()
	if err != nil {
		return record.Schema{}, err
	}
	id := catalog.TableID{Database: cur, Table: name}
	if s, ok := db.catalog.Get(id); ok {
		return s, nil
	}
	s, err := db.store.LoadSchema(ctx, cur, name)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return record.Schema{}, fmt.Errorf("%w: %s", ErrTableNotFound, name)
		}
		return record.Schema{}, err
	}
	db.catalog.Put(id, s)
	return s, nil
}

func (db *Database) LoadRows(ctx context.Context, table string) ([]record.Row, error) {
	cur, err := db.active()
	if err != nil {
		return nil, err
	}
	return db.store.LoadRows(ctx, cur, table)
}

func (db *Database) SaveRows(ctx context.Context, table string, rows []record.Row) error {
	cur, err := db.active()
	if err != nil {
		return err
	}
	return db.store.SaveRows(ctx, cur, table, rows)
}
