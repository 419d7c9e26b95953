package parser

import "fmt"

// validateShape is a structural pass over a parsed statement, independent of the
// grammar: whatever the per-verb parsers let through must still be complete.
func validateShape(stmt Statement) error {
	switch s := stmt.(type) {
	case *CreateDatabaseStmt:
		return checkName("database", s.Name)
	case *DropDatabaseStmt:
		return checkName("database", s.Name)
	case *UseDatabaseStmt:
		return checkName("database", s.Name)

	case *CreateTableStmt:
		if err := checkName("table", s.TableName); err != nil {
			return err
		}
		if len(s.Fields) == 0 {
			return shapeErr("CREATE TABLE needs at least one field")
		}
		names := make([]string, len(s.Fields))
		for i, f := range s.Fields {
			if f.Kind.String() == "UNKNOWN" {
				return shapeErr("field %s has no data type", f.Name)
			}
			names[i] = f.Name
		}
		return checkFieldNames(names)

	case *DropTableStmt:
		return checkName("table", s.TableName)

	case *InsertStmt:
		if err := checkName("table", s.TableName); err != nil {
			return err
		}
		if len(s.Values) == 0 {
			return shapeErr("INSERT needs at least one field")
		}
		names := make([]string, len(s.Values))
		for i, a := range s.Values {
			if a.Value == "" {
				return shapeErr("empty value for field %s", a.Field)
			}
			names[i] = a.Field
		}
		return checkFieldNames(names)

	case *SelectStmt:
		if err := checkName("table", s.TableName); err != nil {
			return err
		}
		if s.Fields != nil {
			if len(s.Fields) == 0 {
				return shapeErr("empty projection")
			}
			for _, f := range s.Fields {
				if err := checkName("field", f); err != nil {
					return err
				}
			}
		}
		return checkWhere(s.Where)

	case *UpdateStmt:
		if err := checkName("table", s.TableName); err != nil {
			return err
		}
		if len(s.Assignments) != 1 {
			return shapeErr("UPDATE supports exactly one assignment, got %d", len(s.Assignments))
		}
		if err := checkName("field", s.Assignments[0].Field); err != nil {
			return err
		}
		if s.Assignments[0].Value == "" {
			return shapeErr("empty value for field %s", s.Assignments[0].Field)
		}
		if s.Where == nil {
			return shapeErr("UPDATE requires a WHERE clause")
		}
		return checkWhere(s.Where)

	case *DeleteStmt:
		if err := checkName("table", s.TableName); err != nil {
			return err
		}
		return checkWhere(s.Where)

	case nil:
		return shapeErr("no statement")
	default:
		return shapeErr("unsupported statement %T", stmt)
	}
}

func shapeErr(format string, args ...any) error {
	return fmt.Errorf("%w: invalid query shape: %s", ErrSyntax, fmt.Sprintf(format, args...))
}

func checkName(what, name string) error {
	if name == "" {
		return shapeErr("missing %s name", what)
	}
	if _, err := parseIdent(name, what); err != nil {
		return fmt.Errorf("%w: %w", ErrSyntax, err)
	}
	return nil
}

func checkFieldNames(names []string) error {
	seen := make(map[string]struct{}, len(names))
	for _, n := range names {
		if err := checkName("field", n); err != nil {
			return err
		}
		if _, dup := seen[n]; dup {
			return shapeErr("duplicate field name %s", n)
		}
		seen[n] = struct{}{}
	}
	return nil
}

func checkWhere(w *WhereEq) error {
	if w == nil {
		return nil
	}
	if err := checkName("field", w.Field); err != nil {
		return err
	}
	if w.Value == "" {
		return shapeErr("empty WHERE value")
	}
	return nil
}
