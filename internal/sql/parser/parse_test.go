package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuannm99/novadoc/internal/record"
)

func TestParse_RequireSemicolon(t *testing.T) {
	_, err := Parse("SELECT * FROM users")
	require.ErrorIs(t, err, ErrSyntax)
	require.Contains(t, err.Error(), "missing ';'")
}

func TestParse_Empty(t *testing.T) {
	for _, in := range []string{"", "   ", ";", "  ;  "} {
		_, err := Parse(in)
		require.ErrorIs(t, err, ErrSyntax, "Parse(%q)", in)
	}
}

func TestParse_CreateDatabase(t *testing.T) {
	stmt, err := Parse("CREATE DATABASE testdb;")
	require.NoError(t, err)

	s, ok := stmt.(*CreateDatabaseStmt)
	require.True(t, ok, "want *CreateDatabaseStmt, got %T", stmt)
	assert.Equal(t, "testdb", s.Name)
	assert.Equal(t, StmtCreateDatabase, s.Type())
}

func TestParse_CreateDatabase_ValidIdentifiers(t *testing.T) {
	for _, id := range []string{"a", "Z", "db1", "my_db", "A_1_b", "x__"} {
		stmt, err := Parse("CREATE DATABASE " + id + ";")
		require.NoError(t, err, "id=%q", id)
		assert.Equal(t, id, stmt.(*CreateDatabaseStmt).Name)
	}
}

func TestParse_CreateDatabase_InvalidIdentifiers(t *testing.T) {
	for _, id := range []string{"1x", "_db", "my-db", "db$", "é"} {
		_, err := Parse("CREATE DATABASE " + id + ";")
		require.ErrorIs(t, err, ErrInvalidIdentifier, "id=%q", id)
	}
}

func TestParse_CaseInsensitiveKeywords(t *testing.T) {
	stmt, err := Parse("create database Shop;")
	require.NoError(t, err)
	assert.Equal(t, "Shop", stmt.(*CreateDatabaseStmt).Name)

	stmt, err = Parse("sElEcT * fRoM t wHeRe id = 1;")
	require.NoError(t, err)
	assert.Equal(t, "t", stmt.(*SelectStmt).TableName)
}

func TestParse_CreateDatabase_RejectExtraTokens(t *testing.T) {
	_, err := Parse("CREATE DATABASE testdb ok;")
	require.ErrorIs(t, err, ErrSyntax)
}

func TestParse_CreateDatabase_Missing(t *testing.T) {
	_, err := Parse("CREATE DATABASE   ;")
	require.ErrorIs(t, err, ErrSyntax)
}

func TestParse_Create_BadObject(t *testing.T) {
	_, err := Parse("CREATE INDEX i;")
	require.ErrorIs(t, err, ErrSyntax)
}

func TestParse_DropDatabase(t *testing.T) {
	stmt, err := Parse("DROP DATABASE testdb;")
	require.NoError(t, err)

	s, ok := stmt.(*DropDatabaseStmt)
	require.True(t, ok, "want *DropDatabaseStmt, got %T", stmt)
	assert.Equal(t, "testdb", s.Name)
}

func TestParse_UseDatabase(t *testing.T) {
	stmt, err := Parse("USE testdb;")
	require.NoError(t, err)

	s, ok := stmt.(*UseDatabaseStmt)
	require.True(t, ok, "want *UseDatabaseStmt, got %T", stmt)
	assert.Equal(t, "testdb", s.Name)
}

func TestParse_UseDatabase_InvalidIdent(t *testing.T) {
	_, err := Parse("USE 123abc;")
	require.ErrorIs(t, err, ErrInvalidIdentifier)

	_, err = Parse("USE a b;")
	require.ErrorIs(t, err, ErrSyntax)
}

func TestParse_CreateTable(t *testing.T) {
	stmt, err := Parse("CREATE TABLE users (id INT, name STRING, score float, active Boolean);")
	require.NoError(t, err)

	s, ok := stmt.(*CreateTableStmt)
	require.True(t, ok, "want *CreateTableStmt, got %T", stmt)

	require.Equal(t, "users", s.TableName)
	require.Len(t, s.Fields, 4)

	assert.Equal(t, FieldDef{Name: "id", Kind: record.KindInt}, s.Fields[0])
	assert.Equal(t, FieldDef{Name: "name", Kind: record.KindString}, s.Fields[1])
	assert.Equal(t, FieldDef{Name: "score", Kind: record.KindFloat}, s.Fields[2])
	assert.Equal(t, FieldDef{Name: "active", Kind: record.KindBoolean}, s.Fields[3])
}

func TestParse_CreateTable_NoSpaceBeforeParen(t *testing.T) {
	stmt, err := Parse("CREATE TABLE t(id INT,name STRING);")
	require.NoError(t, err)

	s := stmt.(*CreateTableStmt)
	assert.Equal(t, "t", s.TableName)
	assert.Equal(t, []FieldDef{
		{Name: "id", Kind: record.KindInt},
		{Name: "name", Kind: record.KindString},
	}, s.Fields)
}

func TestParse_CreateTable_Invalid(t *testing.T) {
	_, err := Parse("CREATE TABLE users id INT, name STRING;")
	require.ErrorIs(t, err, ErrSyntax)

	_, err = Parse("CREATE TABLE users ();")
	require.Error(t, err)

	_, err = Parse("CREATE TABLE users (id);")
	require.ErrorIs(t, err, ErrSyntax)

	_, err = Parse("CREATE TABLE users (id INT extra);")
	require.ErrorIs(t, err, ErrSyntax)

	_, err = Parse("CREATE TABLE users (id INT) junk;")
	require.ErrorIs(t, err, ErrSyntax)
}

func TestParse_CreateTable_InvalidKind(t *testing.T) {
	_, err := Parse("CREATE TABLE users (id INTEGER);")
	require.ErrorIs(t, err, record.ErrInvalidKind)
}

func TestParse_CreateTable_InvalidTableName(t *testing.T) {
	_, err := Parse("CREATE TABLE users ok (id INT);")
	require.ErrorIs(t, err, ErrSyntax)

	_, err = Parse("CREATE TABLE 9users (id INT);")
	require.ErrorIs(t, err, ErrInvalidIdentifier)
}

func TestParse_CreateTable_InvalidFieldName(t *testing.T) {
	_, err := Parse("CREATE TABLE users (1id INT);")
	require.ErrorIs(t, err, ErrInvalidIdentifier)
}

func TestParse_CreateTable_DuplicateField(t *testing.T) {
	_, err := Parse("CREATE TABLE users (id INT, id STRING);")
	require.ErrorIs(t, err, ErrSyntax)
	require.Contains(t, err.Error(), "duplicate field name id")
}

func TestParse_DropTable(t *testing.T) {
	stmt, err := Parse("DROP TABLE users;")
	require.NoError(t, err)

	s, ok := stmt.(*DropTableStmt)
	require.True(t, ok, "want *DropTableStmt, got %T", stmt)
	assert.Equal(t, "users", s.TableName)

	_, err = Parse("DROP VIEW users;")
	require.ErrorIs(t, err, ErrSyntax)
}

func TestParse_Insert(t *testing.T) {
	stmt, err := Parse("INSERT INTO t(id,name) VALUES(1,bob);")
	require.NoError(t, err)

	s, ok := stmt.(*InsertStmt)
	require.True(t, ok, "want *InsertStmt, got %T", stmt)

	assert.Equal(t, "t", s.TableName)
	assert.Equal(t, []Assignment{
		{Field: "id", Value: "1"},
		{Field: "name", Value: "bob"},
	}, s.Values)
}

func TestParse_Insert_ValuesVerbatim(t *testing.T) {
	stmt, err := Parse("INSERT INTO users (id, name, note) VALUES ( 7 ,  bob smith , a=b );")
	require.NoError(t, err)

	s := stmt.(*InsertStmt)
	require.Len(t, s.Values, 3)
	assert.Equal(t, "7", s.Values[0].Value)
	assert.Equal(t, "bob smith", s.Values[1].Value)
	assert.Equal(t, "a=b", s.Values[2].Value)
}

func TestParse_Insert_QuotesAreLiteral(t *testing.T) {
	stmt, err := Parse("INSERT INTO t (name) VALUES ('bob');")
	require.NoError(t, err)
	assert.Equal(t, "'bob'", stmt.(*InsertStmt).Values[0].Value)
}

func TestParse_Insert_LowercaseKeywords(t *testing.T) {
	stmt, err := Parse("insert into users (id) values (1);")
	require.NoError(t, err)

	s, ok := stmt.(*InsertStmt)
	require.True(t, ok, "want *InsertStmt, got %T", stmt)
	assert.Equal(t, "users", s.TableName)
	assert.Equal(t, []Assignment{{Field: "id", Value: "1"}}, s.Values)
}

func TestParse_Insert_CountMismatch(t *testing.T) {
	_, err := Parse("INSERT INTO t(id,name) VALUES(1);")
	require.ErrorIs(t, err, ErrSyntax)
	require.Contains(t, err.Error(), "Field and value count mismatch")

	_, err = Parse("INSERT INTO t(id) VALUES(1,2);")
	require.ErrorIs(t, err, ErrSyntax)
}

func TestParse_Insert_Invalid(t *testing.T) {
	cases := []string{
		"INSERT t(id) VALUES(1);",
		"INSERT INTO users ok (id) VALUES (1);",
		"INSERT INTO t id VALUES (1);",
		"INSERT INTO t(id) (1);",
		"INSERT INTO t(id) VALUES 1;",
		"INSERT INTO t(id) VALUES (1;",
		"INSERT INTO t(id) VALUES ();",
		"INSERT INTO t(id,name) VALUES (1,);",
		"INSERT INTO t(id,name) VALUES (,1);",
		"INSERT INTO t(id,id) VALUES (1,2);",
	}
	for _, in := range cases {
		_, err := Parse(in)
		require.ErrorIs(t, err, ErrSyntax, "Parse(%q)", in)
	}
}

func TestParse_Insert_InvalidFieldName(t *testing.T) {
	_, err := Parse("INSERT INTO t(1id) VALUES(1);")
	require.ErrorIs(t, err, ErrInvalidIdentifier)
}

func TestParse_Select_Star(t *testing.T) {
	stmt, err := Parse("SELECT * FROM users;")
	require.NoError(t, err)

	s, ok := stmt.(*SelectStmt)
	require.True(t, ok, "want *SelectStmt, got %T", stmt)

	assert.Equal(t, "users", s.TableName)
	assert.Nil(t, s.Fields)
	assert.Nil(t, s.Where)
}

func TestParse_Select_Fields(t *testing.T) {
	stmt, err := Parse("SELECT id, name FROM users;")
	require.NoError(t, err)

	s := stmt.(*SelectStmt)
	assert.Equal(t, []string{"id", "name"}, s.Fields)

	stmt, err = Parse("SELECT name,id FROM users;")
	require.NoError(t, err)
	assert.Equal(t, []string{"name", "id"}, stmt.(*SelectStmt).Fields)
}

func TestParse_Select_WithWhere(t *testing.T) {
	stmt, err := Parse("SELECT * FROM users WHERE id = 10;")
	require.NoError(t, err)

	s := stmt.(*SelectStmt)
	require.NotNil(t, s.Where)
	assert.Equal(t, WhereEq{Field: "id", Value: "10"}, *s.Where)

	stmt, err = Parse("SELECT * FROM users WHERE name=bob;")
	require.NoError(t, err)
	assert.Equal(t, WhereEq{Field: "name", Value: "bob"}, *stmt.(*SelectStmt).Where)
}

func TestParse_Select_WhereLiteralIsOneWord(t *testing.T) {
	stmt, err := Parse("SELECT * FROM t WHERE expr=a=b;")
	require.NoError(t, err)
	assert.Equal(t, "a=b", stmt.(*SelectStmt).Where.Value)

	_, err = Parse("SELECT * FROM t WHERE name = bob smith;")
	require.ErrorIs(t, err, ErrSyntax)
}

func TestParse_Select_Invalid(t *testing.T) {
	cases := []string{
		"SELECT FROM users;",
		"SELECT * users;",
		"SELECT * FROM;",
		"SELECT id, FROM users;",
		"SELECT * FROM users WHERE;",
		"SELECT * FROM users WHERE id;",
		"SELECT * FROM users WHERE id =;",
		"SELECT * FROM users WHERE id > 3;",
		"SELECT * FROM a, b;",
	}
	for _, in := range cases {
		_, err := Parse(in)
		require.Error(t, err, "Parse(%q)", in)
	}
}

func TestParse_Select_InvalidWhereField(t *testing.T) {
	_, err := Parse("SELECT * FROM users WHERE 1id = 10;")
	require.ErrorIs(t, err, ErrInvalidIdentifier)
}

func TestParse_Update(t *testing.T) {
	stmt, err := Parse("UPDATE t SET name=carol WHERE id=1;")
	require.NoError(t, err)

	s, ok := stmt.(*UpdateStmt)
	require.True(t, ok, "want *UpdateStmt, got %T", stmt)

	assert.Equal(t, "t", s.TableName)
	assert.Equal(t, []Assignment{{Field: "name", Value: "carol"}}, s.Assignments)
	require.NotNil(t, s.Where)
	assert.Equal(t, WhereEq{Field: "id", Value: "1"}, *s.Where)
}

func TestParse_Update_RequiresWhere(t *testing.T) {
	_, err := Parse("UPDATE t SET name=carol;")
	require.ErrorIs(t, err, ErrSyntax)
}

func TestParse_Update_SingleAssignment(t *testing.T) {
	_, err := Parse("UPDATE users SET name=x, active=false WHERE id=1;")
	require.ErrorIs(t, err, ErrSyntax)
	require.Contains(t, err.Error(), "one assignment")
}

func TestParse_Update_InvalidMissingSet(t *testing.T) {
	_, err := Parse("UPDATE users WHERE id=1;")
	require.ErrorIs(t, err, ErrSyntax)
}

func TestParse_Update_InvalidAssignField(t *testing.T) {
	_, err := Parse("UPDATE users SET 1name=x WHERE id=1;")
	require.ErrorIs(t, err, ErrInvalidIdentifier)
}

func TestParse_Delete(t *testing.T) {
	stmt, err := Parse("DELETE FROM users WHERE id = 1;")
	require.NoError(t, err)

	s, ok := stmt.(*DeleteStmt)
	require.True(t, ok, "want *DeleteStmt, got %T", stmt)

	assert.Equal(t, "users", s.TableName)
	require.NotNil(t, s.Where)
	assert.Equal(t, "id", s.Where.Field)
	assert.Equal(t, "1", s.Where.Value)
}

func TestParse_Delete_All(t *testing.T) {
	stmt, err := Parse("DELETE FROM users;")
	require.NoError(t, err)
	assert.Nil(t, stmt.(*DeleteStmt).Where)

	_, err = Parse("DELETE users;")
	require.ErrorIs(t, err, ErrSyntax)
}

func TestParse_UnknownCommand(t *testing.T) {
	_, err := Parse("ALTER TABLE t ADD COLUMN x INT;")
	require.ErrorIs(t, err, ErrUnknownCommand)
	require.Contains(t, err.Error(), "ALTER")

	_, err = Parse("(;")
	require.ErrorIs(t, err, ErrUnknownCommand)
}

func TestIsValidIdentifier(t *testing.T) {
	assert.True(t, isValidIdentifier("a"))
	assert.True(t, isValidIdentifier("users_2024"))
	assert.False(t, isValidIdentifier(""))
	assert.False(t, isValidIdentifier("_a"))
	assert.False(t, isValidIdentifier("a-b"))
	assert.False(t, isValidIdentifier("a b"))
}
