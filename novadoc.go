package novadoc

import (
	"context"

	"go.uber.org/zap"

	"github.com/tuannm99/novadoc/internal"
	"github.com/tuannm99/novadoc/internal/engine"
	"github.com/tuannm99/novadoc/internal/sql/executor"
	"github.com/tuannm99/novadoc/internal/storage"
)

// Session is one user's connection to the store: an active-database cursor
// and a schema cache over a document store.
type Session struct {
	*executor.Executor

	DB    *engine.Database
	Store *storage.Store
}

// StorageOptions maps the storage section of cfg onto storage.Options.
func StorageOptions(cfg *Config) (storage.Options, error) {
	kind, err := storage.ParseBackendKind(cfg.Storage.Backend)
	if err != nil {
		return storage.Options{}, err
	}
	s3 := cfg.Storage.S3
	return storage.Options{
		Backend: kind,
		Root:    cfg.Storage.Root,
		Format:  cfg.Storage.Format,
		S3: storage.S3Options{
			Bucket:    s3.Bucket,
			Prefix:    s3.Prefix,
			Region:    s3.Region,
			Endpoint:  s3.Endpoint,
			AccessKey: s3.AccessKey,
			SecretKey: s3.SecretKey,
		},
	}, nil
}

// Open wires store, engine and executor for cfg. A nil cfg means defaults;
// a nil logger discards logs.
func Open(ctx context.Context, cfg *Config, logger *zap.Logger) (*Session, error) {
	if cfg == nil {
		def, err := internal.LoadConfig("")
		if err != nil {
			return nil, err
		}
		cfg = def
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	opts, err := StorageOptions(cfg)
	if err != nil {
		return nil, err
	}
	store, err := storage.Open(ctx, opts, logger.Named("storage"))
	if err != nil {
		return nil, err
	}
	db := engine.NewDatabase(store, logger.Named("engine"))
	return &Session{
		Executor: executor.NewExecutor(db, logger.Named("executor")),
		DB:       db,
		Store:    store,
	}, nil
}
