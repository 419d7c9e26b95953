package storage

import (
	"fmt"
	"strings"

	"github.com/goccy/go-json"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/tuannm99/novadoc/internal/record"
)

// SchemaDocument is the persisted shape of a table schema.
type SchemaDocument struct {
	Fields []FieldDocument `json:"fields" bson:"fields"`
}

type FieldDocument struct {
	Name string `json:"name" bson:"name"`
	Type string `json:"type" bson:"type"`
}

// Codec turns schema and row documents into bytes and back.
type Codec interface {
	Name() string
	Ext() string
	EncodeSchema(doc SchemaDocument) ([]byte, error)
	DecodeSchema(data []byte) (SchemaDocument, error)
	EncodeRows(rows []record.Row) ([]byte, error)
	DecodeRows(data []byte) ([]record.Row, error)
}

func CodecFor(format string) (Codec, error) {
	switch strings.ToLower(format) {
	case "", "json":
		return JSONCodec{}, nil
	case "bson":
		return BSONCodec{}, nil
	default:
		return nil, fmt.Errorf("%w: unknown document format %q", ErrStorage, format)
	}
}

// JSONCodec writes 4-space indented JSON: an object for schemas and a bare
// array of row objects for data.
type JSONCodec struct{}

const jsonIndent = "    "

func (JSONCodec) Name() string { return "json" }
func (JSONCodec) Ext() string  { return ".json" }

func (JSONCodec) EncodeSchema(doc SchemaDocument) ([]byte, error) {
	return json.MarshalIndent(doc, "", jsonIndent)
}

func (JSONCodec) DecodeSchema(data []byte) (SchemaDocument, error) {
	var doc SchemaDocument
	err := json.Unmarshal(data, &doc)
	return doc, err
}

func (JSONCodec) EncodeRows(rows []record.Row) ([]byte, error) {
	if rows == nil {
		rows = []record.Row{}
	}
	return json.MarshalIndent(rows, "", jsonIndent)
}

func (JSONCodec) DecodeRows(data []byte) ([]record.Row, error) {
	var rows []record.Row
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// BSONCodec stores rows under a "rows" key since a BSON document cannot be a
// bare array.
type BSONCodec struct{}

type rowsDocument struct {
	Rows []record.Row `bson:"rows"`
}

func (BSONCodec) Name() string { return "bson" }
func (BSONCodec) Ext() string  { return ".bson" }

func (BSONCodec) EncodeSchema(doc SchemaDocument) ([]byte, error) {
	return bson.Marshal(doc)
}

func (BSONCodec) DecodeSchema(data []byte) (SchemaDocument, error) {
	var doc SchemaDocument
	err := bson.Unmarshal(data, &doc)
	return doc, err
}

func (BSONCodec) EncodeRows(rows []record.Row) ([]byte, error) {
	if rows == nil {
		rows = []record.Row{}
	}
	return bson.Marshal(rowsDocument{Rows: rows})
}

func (BSONCodec) DecodeRows(data []byte) ([]record.Row, error) {
	var doc rowsDocument
	if err := bson.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return doc.Rows, nil
}

func schemaToDocument(s record.Schema) SchemaDocument {
	doc := SchemaDocument{Fields: make([]FieldDocument, len(s.Fields))}
	for i, f := range s.Fields {
		doc.Fields[i] = FieldDocument{Name: f.Name, Type: f.Kind.String()}
	}
	return doc
}

func documentToSchema(doc SchemaDocument) (record.Schema, error) {
	fields := make([]record.Field, len(doc.Fields))
	for i, fd := range doc.Fields {
		k, err := record.ParseKind(fd.Type)
		if err != nil {
			return record.Schema{}, fmt.Errorf("field %s: %w", fd.Name, err)
		}
		fields[i] = record.Field{Name: fd.Name, Kind: k}
	}
	s := record.NewSchema(fields...)
	if err := s.Validate(); err != nil {
		return record.Schema{}, err
	}
	return s, nil
}
