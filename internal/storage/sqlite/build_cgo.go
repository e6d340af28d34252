//go:build sqlite_cgo

package sqlite

// Driver used: github.com/mattn/go-sqlite3.
//
// Build command:
//   CGO_ENABLED=1 go build -tags sqlite_cgo ./...

import (
	"github.com/go-faster/errors"
	"github.com/mattn/go-sqlite3"
)

const (
	// DriverName is the database/sql driver name
	DriverName = "sqlite3"

	// BuildMode describes the current build configuration
	BuildMode = "cgo"
)

func isUniqueViolation(err error) bool {
	var se sqlite3.Error
	if !errors.As(err, &se) {
		return false
	}
	return se.ExtendedCode == sqlite3.ErrConstraintPrimaryKey || se.ExtendedCode == sqlite3.ErrConstraintUnique
}
