package parser

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tuannm99/novadoc/internal/record"
)

var (
	ErrSyntax            = errors.New("novadoc: syntax error")
	ErrUnknownCommand    = errors.New("novadoc: unknown command")
	ErrInvalidIdentifier = errors.New("novadoc: invalid identifier")
)

// Parse parses a single statement into an AST.
// Policy: statement MUST end with ';'
func Parse(sql string) (Statement, error) {
	s := strings.TrimSpace(sql)
	if s == "" {
		return nil, fmt.Errorf("%w: empty statement", ErrSyntax)
	}
	if !strings.HasSuffix(s, ";") {
		return nil, fmt.Errorf("%w: missing ';' terminator", ErrSyntax)
	}
	s = strings.TrimSpace(strings.TrimSuffix(s, ";"))
	if s == "" {
		return nil, fmt.Errorf("%w: empty statement", ErrSyntax)
	}

	p := &parser{src: s, toks: tokenize(s)}
	stmt, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	if err := validateShape(stmt); err != nil {
		return nil, err
	}
	return stmt, nil
}

type parser struct {
	src  string
	toks []token
	pos  int
}

func (p *parser) peek() token {
	return p.toks[p.pos]
}

func (p *parser) next() token {
	t := p.toks[p.pos]
	if t.typ != tokEOF {
		p.pos++
	}
	return t
}

func (p *parser) syntaxErr(t token, format string, args ...any) error {
	return fmt.Errorf("%w: %s (at position %d, near %s)", ErrSyntax, fmt.Sprintf(format, args...), t.pos+1, t)
}

// isKeyword reports whether t is the word kw, ignoring case.
func isKeyword(t token, kw string) bool {
	return t.typ == tokWord && strings.EqualFold(t.text, kw)
}

func (p *parser) expectKeyword(kw string) error {
	t := p.next()
	if !isKeyword(t, kw) {
		return p.syntaxErr(t, "expected %s", kw)
	}
	return nil
}

func (p *parser) expect(typ tokenType) (token, error) {
	t := p.next()
	if t.typ != typ {
		return t, p.syntaxErr(t, "expected %s", typ)
	}
	return t, nil
}

func (p *parser) expectEnd() error {
	t := p.peek()
	if t.typ != tokEOF {
		return p.syntaxErr(t, "unexpected trailing input")
	}
	return nil
}

// ident consumes one word and validates it as a database, table or field name.
func (p *parser) ident(what string) (string, error) {
	t := p.next()
	if t.typ != tokWord {
		return "", p.syntaxErr(t, "expected %s name", what)
	}
	return parseIdent(t.text, what)
}

// wordLiteral consumes a literal made of adjacent tokens (no whitespace between them),
// stopping at whitespace, commas and parentheses.
func (p *parser) wordLiteral() (string, error) {
	first := p.peek()
	if first.typ != tokWord && first.typ != tokEquals {
		return "", p.syntaxErr(first, "expected literal value")
	}
	end := first.end
	p.next()
	for {
		t := p.peek()
		if t.pos != end || (t.typ != tokWord && t.typ != tokEquals) {
			break
		}
		end = t.end
		p.next()
	}
	return p.src[first.pos:end], nil
}

// identList parses "id [, id]*" up to (not including) the closing token.
func (p *parser) identList(what string) ([]string, error) {
	var out []string
	for {
		name, err := p.ident(what)
		if err != nil {
			return nil, err
		}
		out = append(out, name)
		if p.peek().typ != tokComma {
			return out, nil
		}
		p.next()
	}
}

func (p *parser) parseStatement() (Statement, error) {
	first := p.next()
	if first.typ != tokWord {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCommand, first.text)
	}

	switch strings.ToUpper(first.text) {
	case "CREATE":
		return p.parseCreate()
	case "DROP":
		return p.parseDrop()
	case "USE":
		return p.parseUse()
	case "INSERT":
		return p.parseInsert()
	case "SELECT":
		return p.parseSelect()
	case "UPDATE":
		return p.parseUpdate()
	case "DELETE":
		return p.parseDelete()
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownCommand, strings.ToUpper(first.text))
	}
}

func (p *parser) parseCreate() (Statement, error) {
	t := p.next()
	switch {
	case isKeyword(t, "DATABASE"):
		name, err := p.ident("database")
		if err != nil {
			return nil, err
		}
		if err := p.expectEnd(); err != nil {
			return nil, err
		}
		return &CreateDatabaseStmt{Name: name}, nil
	case isKeyword(t, "TABLE"):
		return p.parseCreateTable()
	default:
		return nil, p.syntaxErr(t, "expected DATABASE or TABLE after CREATE")
	}
}

// "CREATE TABLE users (id INT, name STRING, active BOOLEAN)"
func (p *parser) parseCreateTable() (Statement, error) {
	tableName, err := p.ident("table")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(tokLParen); err != nil {
		return nil, err
	}

	var fields []FieldDef
	for {
		name, err := p.ident("field")
		if err != nil {
			return nil, err
		}
		kt := p.next()
		if kt.typ != tokWord {
			return nil, p.syntaxErr(kt, "expected data type for field %s", name)
		}
		kind, err := record.ParseKind(kt.text)
		if err != nil {
			return nil, err
		}
		fields = append(fields, FieldDef{Name: name, Kind: kind})

		t := p.next()
		if t.typ == tokComma {
			continue
		}
		if t.typ == tokRParen {
			break
		}
		return nil, p.syntaxErr(t, "expected ',' or ')' in field list")
	}

	if err := p.expectEnd(); err != nil {
		return nil, err
	}
	return &CreateTableStmt{TableName: tableName, Fields: fields}, nil
}

func (p *parser) parseDrop() (Statement, error) {
	t := p.next()
	var stmt Statement
	switch {
	case isKeyword(t, "DATABASE"):
		name, err := p.ident("database")
		if err != nil {
			return nil, err
		}
		stmt = &DropDatabaseStmt{Name: name}
	case isKeyword(t, "TABLE"):
		name, err := p.ident("table")
		if err != nil {
			return nil, err
		}
		stmt = &DropTableStmt{TableName: name}
	default:
		return nil, p.syntaxErr(t, "expected DATABASE or TABLE after DROP")
	}
	if err := p.expectEnd(); err != nil {
		return nil, err
	}
	return stmt, nil
}

func (p *parser) parseUse() (Statement, error) {
	name, err := p.ident("database")
	if err != nil {
		return nil, err
	}
	if err := p.expectEnd(); err != nil {
		return nil, err
	}
	return &UseDatabaseStmt{Name: name}, nil
}

// "INSERT INTO users (id, name) VALUES (1, bob smith)"
//
// Values are taken verbatim: everything between the commas, trimmed. The value list
// runs to the final ')' of the statement.
func (p *parser) parseInsert() (Statement, error) {
	if err := p.expectKeyword("INTO"); err != nil {
		return nil, err
	}
	tableName, err := p.ident("table")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(tokLParen); err != nil {
		return nil, err
	}
	fields, err := p.identList("field")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(tokRParen); err != nil {
		return nil, err
	}
	if err := p.expectKeyword("VALUES"); err != nil {
		return nil, err
	}
	open, err := p.expect(tokLParen)
	if err != nil {
		return nil, err
	}

	last := len(p.toks) - 2 // token before EOF
	if last <= p.pos-1 || p.toks[last].typ != tokRParen {
		return nil, p.syntaxErr(p.toks[len(p.toks)-1], "expected ')' to close VALUES")
	}

	values, err := p.splitValues(open, p.toks[last])
	if err != nil {
		return nil, err
	}
	p.pos = last + 1

	if len(fields) != len(values) {
		return nil, fmt.Errorf("%w: Field and value count mismatch", ErrSyntax)
	}

	pairs := make([]Assignment, len(fields))
	for i := range fields {
		pairs[i] = Assignment{Field: fields[i], Value: values[i]}
	}
	return &InsertStmt{TableName: tableName, Values: pairs}, nil
}

// splitValues cuts the raw source between open and closing parens on comma tokens.
func (p *parser) splitValues(open, closing token) ([]string, error) {
	inner := strings.TrimSpace(p.src[open.end:closing.pos])
	if inner == "" {
		return nil, p.syntaxErr(closing, "empty VALUES list")
	}

	var out []string
	start := open.end
	for i := p.pos; i < len(p.toks); i++ {
		t := p.toks[i]
		if t.pos >= closing.pos {
			break
		}
		if t.typ != tokComma {
			continue
		}
		v := strings.TrimSpace(p.src[start:t.pos])
		if v == "" {
			return nil, p.syntaxErr(t, "empty value")
		}
		out = append(out, v)
		start = t.end
	}
	v := strings.TrimSpace(p.src[start:closing.pos])
	if v == "" {
		return nil, p.syntaxErr(closing, "empty value")
	}
	return append(out, v), nil
}

// "SELECT * FROM users [WHERE id = 10]"
// "SELECT id, name FROM users"
func (p *parser) parseSelect() (Statement, error) {
	var fields []string
	if t := p.peek(); t.typ == tokWord && t.text == "*" {
		p.next()
	} else {
		if isKeyword(t, "FROM") {
			return nil, p.syntaxErr(t, "expected '*' or field list")
		}
		list, err := p.identList("field")
		if err != nil {
			return nil, err
		}
		fields = list
	}

	if err := p.expectKeyword("FROM"); err != nil {
		return nil, err
	}
	tableName, err := p.ident("table")
	if err != nil {
		return nil, err
	}

	where, err := p.optionalWhere()
	if err != nil {
		return nil, err
	}
	if err := p.expectEnd(); err != nil {
		return nil, err
	}
	return &SelectStmt{TableName: tableName, Fields: fields, Where: where}, nil
}

// "UPDATE users SET name=carol WHERE id=1"
func (p *parser) parseUpdate() (Statement, error) {
	tableName, err := p.ident("table")
	if err != nil {
		return nil, err
	}
	if err := p.expectKeyword("SET"); err != nil {
		return nil, err
	}

	assign, err := p.equality("assignment")
	if err != nil {
		return nil, err
	}
	if t := p.peek(); t.typ == tokComma {
		return nil, p.syntaxErr(t, "only one assignment is supported")
	}

	t := p.peek()
	if !isKeyword(t, "WHERE") {
		return nil, p.syntaxErr(t, "UPDATE requires a WHERE clause")
	}
	where, err := p.optionalWhere()
	if err != nil {
		return nil, err
	}
	if err := p.expectEnd(); err != nil {
		return nil, err
	}

	return &UpdateStmt{
		TableName:   tableName,
		Assignments: []Assignment{{Field: assign.Field, Value: assign.Value}},
		Where:       where,
	}, nil
}

// "DELETE FROM t [WHERE col=literal]"
func (p *parser) parseDelete() (Statement, error) {
	if err := p.expectKeyword("FROM"); err != nil {
		return nil, err
	}
	tableName, err := p.ident("table")
	if err != nil {
		return nil, err
	}
	where, err := p.optionalWhere()
	if err != nil {
		return nil, err
	}
	if err := p.expectEnd(); err != nil {
		return nil, err
	}
	return &DeleteStmt{TableName: tableName, Where: where}, nil
}

func (p *parser) optionalWhere() (*WhereEq, error) {
	if !isKeyword(p.peek(), "WHERE") {
		return nil, nil
	}
	p.next()
	return p.equality("WHERE")
}

// equality parses "field = literal".
func (p *parser) equality(what string) (*WhereEq, error) {
	field, err := p.ident("field")
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", what, err)
	}
	if _, err := p.expect(tokEquals); err != nil {
		return nil, err
	}
	value, err := p.wordLiteral()
	if err != nil {
		return nil, err
	}
	return &WhereEq{Field: field, Value: value}, nil
}

// parseIdent validates an identifier (db/table/field name).
// Rules:
//   - first char: ASCII letter
//   - rest: ASCII letter/digit/'_'
func parseIdent(s, what string) (string, error) {
	if !isValidIdentifier(s) {
		return "", fmt.Errorf("%w: invalid %s name %q", ErrInvalidIdentifier, what, s)
	}
	return s, nil
}

func isValidIdentifier(s string) bool {
	if s == "" || !isLetter(s[0]) {
		return false
	}
	for i := 1; i < len(s); i++ {
		c := s[i]
		if !isLetter(c) && !(c >= '0' && c <= '9') && c != '_' {
			return false
		}
	}
	return true
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
