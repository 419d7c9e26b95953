package executor

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/tuannm99/novadoc/internal/engine"
	"github.com/tuannm99/novadoc/internal/record"
	"github.com/tuannm99/novadoc/internal/sql/parser"
	"github.com/tuannm99/novadoc/internal/sql/planner"
)

// executorDB is a small seam for unit-testing Executor without a real store.
type executorDB interface {
	Current() (string, bool)

	CreateDatabase(ctx context.Context, name string) error
	DropDatabase(ctx context.Context, name string) error
	UseDatabase(ctx context.Context, name string) error

	CreateTable(ctx context.Context, table string, schema record.Schema) error
	DropTable(ctx context.Context, table string) error
	TableSchema(ctx context.Context, table string) (record.Schema, error)

	LoadRows(ctx context.Context, table string) ([]record.Row, error)
	SaveRows(ctx context.Context, table string, rows []record.Row) error
}

var _ executorDB = (*engine.Database)(nil)

// Executor runs statements against a session Database.
type Executor struct {
	DB     executorDB
	logger *zap.Logger
}

func NewExecutor(db *engine.Database, logger *zap.Logger) *Executor {
	return newExecutor(db, logger)
}

func newExecutor(db executorDB, logger *zap.Logger) *Executor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Executor{DB: db, logger: logger}
}

// ExecSQL is the top-level entry: one statement line -> Result.
func (e *Executor) ExecSQL(ctx context.Context, line string) (*Result, error) {
	stmt, err := parser.Parse(line)
	if err != nil {
		return nil, err
	}
	return e.Execute(ctx, stmt)
}

// Execute runs a parsed statement. Every statement except the database
// commands needs an active database.
func (e *Executor) Execute(ctx context.Context, stmt parser.Statement) (*Result, error) {
	plan, err := planner.BuildPlan(stmt)
	if err != nil {
		return nil, err
	}
	if _, ok := e.DB.Current(); !ok && planner.NeedsDatabase(plan) {
		return nil, engine.ErrNoDatabaseSelected
	}

	res, err := e.execPlan(ctx, plan)
	if err != nil {
		e.logger.Debug("statement failed",
			zap.Stringer("stmt", stmt.Type()),
			zap.String("table", planner.TableOf(plan)),
			zap.Error(err),
		)
		return nil, err
	}
	e.logger.Debug("statement executed",
		zap.Stringer("stmt", stmt.Type()),
		zap.String("table", planner.TableOf(plan)),
		zap.Int64("affected", res.AffectedRows),
	)
	return res, nil
}

func (e *Executor) execPlan(ctx context.Context, p planner.Plan) (*Result, error) {
	switch plan := p.(type) {
	case *planner.CreateDatabasePlan:
		if err := e.DB.CreateDatabase(ctx, plan.Name); err != nil {
			return nil, err
		}
		return message("Database %s created.", plan.Name), nil
	case *planner.DropDatabasePlan:
		if err := e.DB.DropDatabase(ctx, plan.Name); err != nil {
			return nil, err
		}
		return message("Database %s dropped.", plan.Name), nil
	case *planner.UseDatabasePlan:
		if err := e.DB.UseDatabase(ctx, plan.Name); err != nil {
			return nil, err
		}
		return message("Database changed to %s.", plan.Name), nil

	case *planner.CreateTablePlan:
		if err := e.DB.CreateTable(ctx, plan.TableName, plan.Schema); err != nil {
			return nil, err
		}
		return message("Table %s created.", plan.TableName), nil
	case *planner.DropTablePlan:
		if err := e.DB.DropTable(ctx, plan.TableName); err != nil {
			return nil, err
		}
		return message("Table %s dropped.", plan.TableName), nil

	case *planner.InsertPlan:
		return e.execInsert(ctx, plan)
	case *planner.SeqScanPlan:
		return e.execSeqScan(ctx, plan)
	case *planner.UpdatePlan:
		return e.execUpdate(ctx, plan)
	case *planner.DeletePlan:
		return e.execDelete(ctx, plan)

	default:
		return nil, fmt.Errorf("executor: unsupported plan type %T", p)
	}
}

func message(format string, args ...any) *Result {
	return &Result{Message: fmt.Sprintf(format, args...)}
}

func (e *Executor) execInsert(ctx context.Context, p *planner.InsertPlan) (*Result, error) {
	schema, err := e.DB.TableSchema(ctx, p.TableName)
	if err != nil {
		return nil, err
	}
	for _, name := range p.Fields {
		if err := checkValue(schema, name, p.Row[name]); err != nil {
			return nil, err
		}
	}

	rows, err := e.DB.LoadRows(ctx, p.TableName)
	if err != nil {
		return nil, err
	}
	rows = append(rows, p.Row.Clone())
	if err := e.DB.SaveRows(ctx, p.TableName, rows); err != nil {
		return nil, err
	}
	return &Result{AffectedRows: 1, Message: "1 row inserted."}, nil
}

func (e *Executor) execSeqScan(ctx context.Context, p *planner.SeqScanPlan) (*Result, error) {
	schema, err := e.DB.TableSchema(ctx, p.TableName)
	if err != nil {
		return nil, err
	}

	cols := p.Projection
	if cols == nil {
		cols = schema.Names()
	}
	for _, c := range cols {
		if err := checkField(schema, c); err != nil {
			return nil, err
		}
	}
	if err := checkFilter(schema, p.Filter); err != nil {
		return nil, err
	}

	rows, err := e.DB.LoadRows(ctx, p.TableName)
	if err != nil {
		return nil, err
	}

	out := make([][]string, 0, len(rows))
	for i, row := range rows {
		if !p.Filter.Match(row) {
			continue
		}
		cells := make([]string, len(cols))
		for j, c := range cols {
			v, ok := row[c]
			if !ok {
				return nil, fmt.Errorf("%w: %s in row %d", engine.ErrMissingField, c, i+1)
			}
			cells[j] = v
		}
		out = append(out, cells)
	}
	return &Result{Columns: cols, Rows: out}, nil
}

func (e *Executor) execUpdate(ctx context.Context, p *planner.UpdatePlan) (*Result, error) {
	schema, err := e.DB.TableSchema(ctx, p.TableName)
	if err != nil {
		return nil, err
	}
	if err := checkValue(schema, p.Field, p.Value); err != nil {
		return nil, err
	}
	if err := checkFilter(schema, p.Filter); err != nil {
		return nil, err
	}

	rows, err := e.DB.LoadRows(ctx, p.TableName)
	if err != nil {
		return nil, err
	}
	var updated int64
	for _, row := range rows {
		if p.Filter.Match(row) {
			row[p.Field] = p.Value
			updated++
		}
	}
	if err := e.DB.SaveRows(ctx, p.TableName, rows); err != nil {
		return nil, err
	}
	return &Result{AffectedRows: updated, Message: fmt.Sprintf("%d rows updated.", updated)}, nil
}

func (e *Executor) execDelete(ctx context.Context, p *planner.DeletePlan) (*Result, error) {
	schema, err := e.DB.TableSchema(ctx, p.TableName)
	if err != nil {
		return nil, err
	}
	if err := checkFilter(schema, p.Filter); err != nil {
		return nil, err
	}

	rows, err := e.DB.LoadRows(ctx, p.TableName)
	if err != nil {
		return nil, err
	}
	kept := make([]record.Row, 0, len(rows))
	if p.Filter != nil {
		for _, row := range rows {
			if !p.Filter.Match(row) {
				kept = append(kept, row)
			}
		}
	}
	deleted := int64(len(rows) - len(kept))
	if err := e.DB.SaveRows(ctx, p.TableName, kept); err != nil {
		return nil, err
	}
	return &Result{AffectedRows: deleted, Message: fmt.Sprintf("%d rows deleted.", deleted)}, nil
}

func checkField(schema record.Schema, name string) error {
	if _, ok := schema.Lookup(name); !ok {
		return fmt.Errorf("%w: %s", engine.ErrUnknownField, name)
	}
	return nil
}

func checkFilter(schema record.Schema, f *planner.Filter) error {
	if f == nil {
		return nil
	}
	return checkField(schema, f.Field)
}

// checkValue requires the field to exist and the text to be a valid literal
// of its kind.
func checkValue(schema record.Schema, name, text string) error {
	f, ok := schema.Lookup(name)
	if !ok {
		return fmt.Errorf("%w: %s", engine.ErrUnknownField, name)
	}
	if !record.IsValidLiteral(text, f.Kind) {
		return fmt.Errorf("%w for field %s: %q is not %s", engine.ErrInvalidValue, name, text, f.Kind)
	}
	return nil
}
