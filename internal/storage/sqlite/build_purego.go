//go:build !sqlite_cgo

package sqlite

// Driver used: modernc.org/sqlite (pure Go, no C compiler required).

import (
	"github.com/go-faster/errors"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

const (
	// DriverName is the database/sql driver name
	DriverName = "sqlite"

	// BuildMode describes the current build configuration
	BuildMode = "purego"
)

func isUniqueViolation(err error) bool {
	var se *sqlite.Error
	if !errors.As(err, &se) {
		return false
	}
	code := se.Code()
	return code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY || code == sqlite3.SQLITE_CONSTRAINT_UNIQUE
}
