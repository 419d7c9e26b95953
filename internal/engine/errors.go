package engine

import "errors"

var (
	ErrNoDatabaseSelected    = errors.New("novadoc: no database selected")
	ErrDatabaseNotFound      = errors.New("novadoc: database not found")
	ErrDatabaseAlreadyExists = errors.New("novadoc: database already exists")
	ErrTableNotFound         = errors.New("novadoc: table not found")
	ErrTableAlreadyExists    = errors.New("novadoc: table already exists")
	ErrUnknownField          = errors.New("novadoc: unknown field")
	ErrMissingField          = errors.New("novadoc: missing field")
	ErrInvalidValue          = errors.New("novadoc: invalid value")
)
