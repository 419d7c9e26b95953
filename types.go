package novadoc

import (
	"github.com/tuannm99/novadoc/internal"
	"github.com/tuannm99/novadoc/internal/engine"
	"github.com/tuannm99/novadoc/internal/sql/executor"
)

// Package novadoc is the top-level facade for the novadoc engine.
type (
	Config   = internal.NovaDocConfig
	Database = engine.Database
	Executor = executor.Executor
	Result   = executor.Result
)
