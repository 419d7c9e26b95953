package planner

import (
	"github.com/tuannm99/novadoc/internal/record"
)

// Plan is the interface for executable plans.
type Plan interface {
	planNode()
}

// ----- Database plans -----

type CreateDatabasePlan struct{ Name string }

type DropDatabasePlan struct{ Name string }

type UseDatabasePlan struct{ Name string }

func (*CreateDatabasePlan) planNode() {}
func (*DropDatabasePlan) planNode()   {}
func (*UseDatabasePlan) planNode()    {}

// ----- Table plans -----

type CreateTablePlan struct {
	TableName string
	Schema    record.Schema
}

type DropTablePlan struct {
	TableName string
}

// InsertPlan carries the supplied pairs in statement order.
type InsertPlan struct {
	TableName string
	Fields    []string
	Row       record.Row
}

// SeqScanPlan reads every row and keeps those accepted by Filter.
// A nil Projection means all schema fields in declared order.
type SeqScanPlan struct {
	TableName  string
	Projection []string
	Filter     *Filter
}

type UpdatePlan struct {
	TableName string
	Field     string
	Value     string
	Filter    *Filter
}

// DeletePlan removes the rows accepted by Filter; a nil Filter removes all.
type DeletePlan struct {
	TableName string
	Filter    *Filter
}

func (*CreateTablePlan) planNode() {}
func (*DropTablePlan) planNode()   {}
func (*InsertPlan) planNode()      {}
func (*SeqScanPlan) planNode()     {}
func (*UpdatePlan) planNode()      {}
func (*DeletePlan) planNode()      {}

// NeedsDatabase reports whether p can only run with an active database.
func NeedsDatabase(p Plan) bool {
	switch p.(type) {
	case *CreateDatabasePlan, *DropDatabasePlan, *UseDatabasePlan:
		return false
	default:
		return true
	}
}

// TableOf returns the table a plan targets, or "" for database plans.
func TableOf(p Plan) string {
	switch pl := p.(type) {
	case *CreateTablePlan:
		return pl.TableName
	case *DropTablePlan:
		return pl.TableName
	case *InsertPlan:
		return pl.TableName
	case *SeqScanPlan:
		return pl.TableName
	case *UpdatePlan:
		return pl.TableName
	case *DeletePlan:
		return pl.TableName
	default:
		return ""
	}
}
