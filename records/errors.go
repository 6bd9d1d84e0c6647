package records

import (
	"errors"
	"fmt"
)

// ErrNotFound is matched by errors.Is for every NotFoundError
var ErrNotFound = errors.New("record not found")

// DataSourceError reports a record set that could not be read or parsed
type DataSourceError struct {
	Source string
	Err    error
}

func (e *DataSourceError) Error() string {
	return fmt.Sprintf("Failed to read data from %s: %v", e.Source, e.Err)
}

func (e *DataSourceError) Unwrap() error { return e.Err }

// InvalidIdentifierError is returned by ParseID for input that is not an integer
type InvalidIdentifierError struct {
	Value string
}

func (e *InvalidIdentifierError) Error() string { return "User ID must be a number" }

// NotFoundError reports that no record in Collection has the given ID
type NotFoundError struct {
	Collection string
	ID         int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no record with id %d in %s", e.ID, e.Collection)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// IsDataSource reports whether err is a DataSourceError
func IsDataSource(err error) bool {
	var dse *DataSourceError
	return errors.As(err, &dse)
}

// IsInvalidIdentifier reports whether err is an InvalidIdentifierError
func IsInvalidIdentifier(err error) bool {
	var iie *InvalidIdentifierError
	return errors.As(err, &iie)
}
