package storage

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/tuannm99/novadoc/internal/record"
)

// Store persists each table as two whole documents, its schema and its row
// snapshot, inside the namespace of its database.
type Store struct {
	backend Backend
	codec   Codec
	logger  *zap.Logger
}

func NewStore(backend Backend, codec Codec, logger *zap.Logger) *Store {
	if codec == nil {
		codec = JSONCodec{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{backend: backend, codec: codec, logger: logger}
}

func (s *Store) Codec() Codec { return s.codec }

func (s *Store) CreateDatabase(ctx context.Context, db string) error {
	if err := s.backend.CreateNamespace(ctx, db); err != nil {
		return err
	}
	s.logger.Debug("namespace created", zap.String("db", db))
	return nil
}

func (s *Store) DropDatabase(ctx context.Context, db string) error {
	if err := s.backend.DropNamespace(ctx, db); err != nil {
		return err
	}
	s.logger.Debug("namespace removed", zap.String("db", db))
	return nil
}

func (s *Store) DatabaseExists(ctx context.Context, db string) (bool, error) {
	return s.backend.NamespaceExists(ctx, db)
}

// LoadSchema returns ErrNotFound when the table has no schema document.
func (s *Store) LoadSchema(ctx context.Context, db, table string) (record.Schema, error) {
	data, err := s.backend.Get(ctx, db, objectName(table, docSchema, s.codec))
	if err != nil {
		return record.Schema{}, err
	}
	doc, err := s.codec.DecodeSchema(data)
	if err != nil {
		return record.Schema{}, fmt.Errorf("%w: decode schema %s.%s: %w", ErrStorage, db, table, err)
	}
	schema, err := documentToSchema(doc)
	if err != nil {
		return record.Schema{}, fmt.Errorf("%w: schema %s.%s: %w", ErrStorage, db, table, err)
	}
	return schema, nil
}

func (s *Store) SchemaExists(ctx context.Context, db, table string) (bool, error) {
	_, err := s.backend.Get(ctx, db, objectName(table, docSchema, s.codec))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, ErrNotFound):
		return false, nil
	default:
		return false, err
	}
}

func (s *Store) SaveSchema(ctx context.Context, db, table string, schema record.Schema) error {
	data, err := s.codec.EncodeSchema(schemaToDocument(schema))
	if err != nil {
		return fmt.Errorf("%w: encode schema %s.%s: %w", ErrStorage, db, table, err)
	}
	if err := s.backend.Put(ctx, db, objectName(table, docSchema, s.codec), data); err != nil {
		return err
	}
	s.logger.Debug("schema written",
		zap.String("db", db),
		zap.String("table", table),
		zap.Int("fields", schema.NumFields()),
	)
	return nil
}

// LoadRows returns the full row snapshot. A table that was never written to
// has no data document and yields an empty set.
func (s *Store) LoadRows(ctx context.Context, db, table string) ([]record.Row, error) {
	data, err := s.backend.Get(ctx, db, objectName(table, docData, s.codec))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return []record.Row{}, nil
		}
		return nil, err
	}
	rows, err := s.codec.DecodeRows(data)
	if err != nil {
		return nil, fmt.Errorf("%w: decode rows %s.%s: %w", ErrStorage, db, table, err)
	}
	if rows == nil {
		rows = []record.Row{}
	}
	return rows, nil
}

// SaveRows replaces the whole snapshot.
func (s *Store) SaveRows(ctx context.Context, db, table string, rows []record.Row) error {
	data, err := s.codec.EncodeRows(rows)
	if err != nil {
		return fmt.Errorf("%w: encode rows %s.%s: %w", ErrStorage, db, table, err)
	}
	if err := s.backend.Put(ctx, db, objectName(table, docData, s.codec), data); err != nil {
		return err
	}
	s.logger.Debug("rows written",
		zap.String("db", db),
		zap.String("table", table),
		zap.Int("rows", len(rows)),
		zap.Int("bytes", len(data)),
	)
	return nil
}

// DropTable removes both documents. Either one may already be gone.
func (s *Store) DropTable(ctx context.Context, db, table string) error {
	err := multierr.Combine(
		s.backend.Delete(ctx, db, objectName(table, docSchema, s.codec)),
		s.backend.Delete(ctx, db, objectName(table, docData, s.codec)),
	)
	if err != nil {
		return err
	}
	s.logger.Debug("table documents removed", zap.String("db", db), zap.String("table", table))
	return nil
}
