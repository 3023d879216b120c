package store

import (
	"errors"
	"strings"
	"time"

	"github.com/mattn/go-sqlite3"
)

// constraintKind returns the extended SQLite constraint code carried by err,
// or 0 if err is not a constraint failure.
func constraintKind(err error) sqlite3.ErrNoExtended {
	var se sqlite3.Error
	if errors.As(err, &se) && se.Code == sqlite3.ErrConstraint {
		return se.ExtendedCode
	}
	return 0
}

func isUniqueViolation(err error) bool {
	return constraintKind(err) == sqlite3.ErrConstraintUnique
}

func isForeignKeyViolation(err error) bool {
	return constraintKind(err) == sqlite3.ErrConstraintForeignKey
}

// isCausalityViolation matches the lexicon_causality and web_causality
// CHECK constraints by name; other CHECK failures are not causality errors.
func isCausalityViolation(err error) bool {
	return constraintKind(err) == sqlite3.ErrConstraintCheck &&
		strings.Contains(err.Error(), "_causality")
}

// toNanos converts a timestamp to its stored form.
func toNanos(t time.Time) int64 {
	return t.UnixNano()
}

// fromNanos converts a stored timestamp back to UTC time.
func fromNanos(n int64) time.Time {
	return time.Unix(0, n).UTC()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
