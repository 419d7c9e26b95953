package storage

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

type BackendKind string

const (
	BackendFS     BackendKind = "fs"
	BackendMemory BackendKind = "memory"
	BackendS3     BackendKind = "s3"
)

func ParseBackendKind(s string) (BackendKind, error) {
	switch k := BackendKind(strings.ToLower(s)); k {
	case BackendFS, BackendMemory, BackendS3:
		return k, nil
	case "":
		return BackendFS, nil
	default:
		return "", fmt.Errorf("%w: unknown backend %q", ErrStorage, s)
	}
}

type Options struct {
	Backend BackendKind
	Root    string
	Format  string
	S3      S3Options
}

// NewBackend builds the blob backend selected by opts.
func NewBackend(ctx context.Context, opts Options) (Backend, error) {
	switch opts.Backend {
	case BackendFS, "":
		root := opts.Root
		if root == "" {
			root = "databases"
		}
		return NewOSBackend(root)
	case BackendMemory:
		return NewMemoryBackend(), nil
	case BackendS3:
		if opts.S3.Bucket == "" {
			return nil, fmt.Errorf("%w: s3 backend requires a bucket", ErrStorage)
		}
		client, err := NewS3Client(ctx, opts.S3)
		if err != nil {
			return nil, err
		}
		return NewS3Backend(client, opts.S3.Bucket, opts.S3.Prefix), nil
	default:
		return nil, fmt.Errorf("%w: unknown backend %q", ErrStorage, opts.Backend)
	}
}

// Open builds a Store from opts.
func Open(ctx context.Context, opts Options, logger *zap.Logger) (*Store, error) {
	codec, err := CodecFor(opts.Format)
	if err != nil {
		return nil, err
	}
	backend, err := NewBackend(ctx, opts)
	if err != nil {
		return nil, err
	}
	if logger != nil {
		logger.Info("storage opened",
			zap.String("backend", string(opts.Backend)),
			zap.String("format", codec.Name()),
		)
	}
	return NewStore(backend, codec, logger), nil
}
