package record

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidKind = errors.New("novadoc: invalid data type")

// Kind is the declared type of a field.
type Kind uint8

const (
	KindString Kind = iota + 1
	KindInt
	KindFloat
	KindBoolean
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "STRING"
	case KindInt:
		return "INT"
	case KindFloat:
		return "FLOAT"
	case KindBoolean:
		return "BOOLEAN"
	default:
		return "UNKNOWN"
	}
}

// ParseKind maps a type name (any case) to its Kind.
func ParseKind(s string) (Kind, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "STRING":
		return KindString, nil
	case "INT":
		return KindInt, nil
	case "FLOAT":
		return KindFloat, nil
	case "BOOLEAN":
		return KindBoolean, nil
	default:
		return 0, fmt.Errorf("%w: %s", ErrInvalidKind, s)
	}
}

type Field struct {
	Name string
	Kind Kind
}

// Schema is the ordered field list of a table.
type Schema struct {
	Fields []Field
}

func NewSchema(fields ...Field) Schema {
	return Schema{Fields: fields}
}

func (s Schema) NumFields() int { return len(s.Fields) }

// Lookup finds a field by exact name.
func (s Schema) Lookup(name string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Names returns field names in declaration order.
func (s Schema) Names() []string {
	out := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		out[i] = f.Name
	}
	return out
}

// Validate reports an empty field list, unnamed fields, unknown kinds and repeated names.
func (s Schema) Validate() error {
	if len(s.Fields) == 0 {
		return fmt.Errorf("novadoc: schema has no fields")
	}
	seen := make(map[string]struct{}, len(s.Fields))
	for _, f := range s.Fields {
		if f.Name == "" {
			return fmt.Errorf("novadoc: schema field without a name")
		}
		if f.Kind.String() == "UNKNOWN" {
			return fmt.Errorf("%w: field %s", ErrInvalidKind, f.Name)
		}
		if _, dup := seen[f.Name]; dup {
			return fmt.Errorf("novadoc: duplicate field name %q", f.Name)
		}
		seen[f.Name] = struct{}{}
	}
	return nil
}

// Row maps field names to the literal text that was written.
type Row map[string]string

func (r Row) Clone() Row {
	cp := make(Row, len(r))
	for k, v := range r {
		cp[k] = v
	}
	return cp
}
