// Package migrations holds the goose migrations for the links schema. They
// are Go migrations because column types differ per SQL dialect.
package migrations

// dialect is the goose dialect name of the database being migrated.
var dialect string

// SetDialect selects the DDL variant used by the migrations.
// Must be called before goose.Up. Valid values: "sqlite3", "postgres", "mysql".
func SetDialect(d string) {
	dialect = d
}
