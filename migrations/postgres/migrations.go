// Package migrations carries the ERP dashboard schema (companies, company
// members, projects) as embedded SQL.
package migrations

import (
	"embed"

	"github.com/uptrace/bun/migrate"
)

//go:embed *.sql
var schemaFS embed.FS

// FS exposes the embedded SQL for external runners.
var FS = schemaFS

// Migrations is a bun/migrate registry for this module.
var Migrations = migrate.NewMigrations()

func init() {
	_ = Migrations.Discover(schemaFS)
}
