package planner

import (
	"fmt"

	"github.com/tuannm99/novadoc/internal/record"
	"github.com/tuannm99/novadoc/internal/sql/parser"
)

// BuildPlan maps a parsed statement to its plan. It does not consult any
// schema; name resolution happens at execution.
func BuildPlan(stmt parser.Statement) (Plan, error) {
	switch s := stmt.(type) {
	case *parser.CreateDatabaseStmt:
		return &CreateDatabasePlan{Name: s.Name}, nil
	case *parser.DropDatabaseStmt:
		return &DropDatabasePlan{Name: s.Name}, nil
	case *parser.UseDatabaseStmt:
		return &UseDatabasePlan{Name: s.Name}, nil

	case *parser.CreateTableStmt:
		return buildCreateTablePlan(s), nil
	case *parser.DropTableStmt:
		return &DropTablePlan{TableName: s.TableName}, nil

	case *parser.InsertStmt:
		return buildInsertPlan(s), nil
	case *parser.SelectStmt:
		return &SeqScanPlan{
			TableName:  s.TableName,
			Projection: s.Fields,
			Filter:     buildFilter(s.Where),
		}, nil
	case *parser.UpdateStmt:
		if len(s.Assignments) != 1 {
			return nil, fmt.Errorf("%w: UPDATE supports exactly one assignment", parser.ErrSyntax)
		}
		return &UpdatePlan{
			TableName: s.TableName,
			Field:     s.Assignments[0].Field,
			Value:     s.Assignments[0].Value,
			Filter:    buildFilter(s.Where),
		}, nil
	case *parser.DeleteStmt:
		return &DeletePlan{TableName: s.TableName, Filter: buildFilter(s.Where)}, nil

	default:
		return nil, fmt.Errorf("planner: unsupported statement type %T", stmt)
	}
}

func buildCreateTablePlan(s *parser.CreateTableStmt) *CreateTablePlan {
	fields := make([]record.Field, len(s.Fields))
	for i, f := range s.Fields {
		fields[i] = record.Field{Name: f.Name, Kind: f.Kind}
	}
	return &CreateTablePlan{
		TableName: s.TableName,
		Schema:    record.NewSchema(fields...),
	}
}

func buildInsertPlan(s *parser.InsertStmt) *InsertPlan {
	p := &InsertPlan{
		TableName: s.TableName,
		Fields:    make([]string, len(s.Values)),
		Row:       make(record.Row, len(s.Values)),
	}
	for i, a := range s.Values {
		p.Fields[i] = a.Field
		p.Row[a.Field] = a.Value
	}
	return p
}

func buildFilter(w *parser.WhereEq) *Filter {
	if w == nil {
		return nil
	}
	return &Filter{Field: w.Field, Value: w.Value}
}
