// Package migrations embeds the goose SQL migrations so that binaries can
// apply them without the source tree.
package migrations

import (
	"database/sql"
	"embed"

	"github.com/pressly/goose/v3"
)

// FS holds every *.sql migration in this directory.
//
//go:embed *.sql
var FS embed.FS

// NewProvider returns a goose provider over db for the embedded migrations.
// The provider honours StatementBegin/End, which the plpgsql trigger
// function in the likes migration needs.
func NewProvider(db *sql.DB) (*goose.Provider, error) {
	return goose.NewProvider(goose.DialectPostgres, db, FS)
}
