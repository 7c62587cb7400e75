package db

import (
	"database/sql/driver"
	"strings"
	"sync"

	"modernc.org/sqlite"
)

var registerLower = sync.OnceValue(func() error {
	return sqlite.RegisterDeterministicScalarFunction("lower", 1, unicodeLower)
})

// unicodeLower replaces SQLite's built-in LOWER, which folds ASCII only, so
// LOWER(column) agrees with strings.ToLower on accented text. Postgres LOWER
// is already Unicode aware.
func unicodeLower(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	switch v := args[0].(type) {
	case string:
		return strings.ToLower(v), nil
	case []byte:
		return strings.ToLower(string(v)), nil
	default:
		return v, nil
	}
}
