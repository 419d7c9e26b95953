package parser

import "github.com/tuannm99/novadoc/internal/record"

type StatementType int

const (
	StmtUnknown StatementType = iota
	StmtCreateDatabase
	StmtDropDatabase
	StmtUseDatabase
	StmtCreateTable
	StmtDropTable
	StmtInsert
	StmtSelect
	StmtUpdate
	StmtDelete
)

func (t StatementType) String() string {
	switch t {
	case StmtCreateDatabase:
		return "CREATE DATABASE"
	case StmtDropDatabase:
		return "DROP DATABASE"
	case StmtUseDatabase:
		return "USE"
	case StmtCreateTable:
		return "CREATE TABLE"
	case StmtDropTable:
		return "DROP TABLE"
	case StmtInsert:
		return "INSERT"
	case StmtSelect:
		return "SELECT"
	case StmtUpdate:
		return "UPDATE"
	case StmtDelete:
		return "DELETE"
	default:
		return "UNKNOWN"
	}
}

// Statement is the root interface for all statements.
type Statement interface {
	stmtNode()
	Type() StatementType
}

// ----- DATABASE -----
type CreateDatabaseStmt struct {
	Name string
}

type DropDatabaseStmt struct {
	Name string
}

type UseDatabaseStmt struct {
	Name string
}

func (*CreateDatabaseStmt) stmtNode() {}
func (*DropDatabaseStmt) stmtNode()   {}
func (*UseDatabaseStmt) stmtNode()    {}

func (*CreateDatabaseStmt) Type() StatementType { return StmtCreateDatabase }
func (*DropDatabaseStmt) Type() StatementType   { return StmtDropDatabase }
func (*UseDatabaseStmt) Type() StatementType    { return StmtUseDatabase }

// ----- TABLE -----
type FieldDef struct {
	Name string
	Kind record.Kind
}

type CreateTableStmt struct {
	TableName string
	Fields    []FieldDef
}

type DropTableStmt struct {
	TableName string
}

func (*CreateTableStmt) stmtNode() {}
func (*DropTableStmt) stmtNode()   {}

func (*CreateTableStmt) Type() StatementType { return StmtCreateTable }
func (*DropTableStmt) Type() StatementType   { return StmtDropTable }

// ----- ROWS -----

// Assignment pairs a field with the literal text written to it.
type Assignment struct {
	Field string
	Value string
}

// WhereEq is the only supported predicate: field = literal, compared as text.
type WhereEq struct {
	Field string
	Value string
}

type InsertStmt struct {
	TableName string
	Values    []Assignment
}

type SelectStmt struct {
	TableName string
	Fields    []string // nil means '*'
	Where     *WhereEq
}

type UpdateStmt struct {
	TableName   string
	Assignments []Assignment
	Where       *WhereEq
}

type DeleteStmt struct {
	TableName string
	Where     *WhereEq
}

func (*InsertStmt) stmtNode() {}
func (*SelectStmt) stmtNode() {}
func (*UpdateStmt) stmtNode() {}
func (*DeleteStmt) stmtNode() {}

func (*InsertStmt) Type() StatementType { return StmtInsert }
func (*SelectStmt) Type() StatementType { return StmtSelect }
func (*UpdateStmt) Type() StatementType { return StmtUpdate }
func (*DeleteStmt) Type() StatementType { return StmtDelete }
