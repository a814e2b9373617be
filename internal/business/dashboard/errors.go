package dashboard

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrNotFound is returned when a single-entity lookup matches no rows.
	ErrNotFound = errors.New("not found")
	// ErrInvalidIdentifier is returned when a path identifier is not a positive integer.
	ErrInvalidIdentifier = errors.New("invalid identifier")
)

// QueryError wraps a failed record store query. The request it belongs to
// fails as a whole.
type QueryError struct {
	Collection string
	Op         string
	Err        error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Collection, e.Err)
}

func (e *QueryError) Unwrap() error { return e.Err }

func queryErr(collection, op string, err error) error {
	if err == nil {
		return nil
	}
	return &QueryError{Collection: collection, Op: op, Err: err}
}

// ParseID parses a numeric path identifier. Any integer is accepted; one that
// matches no row is a lookup miss, not a malformed identifier.
func ParseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidIdentifier, raw)
	}
	return id, nil
}
