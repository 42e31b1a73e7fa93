package records

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/roach88/clerk/internal/entity"
)

// Error represents a referential-integrity or lookup failure in the
// records layer.
//
// Errors include:
//   - Data integrity: a stored reference does not resolve
//   - Delete restricted: a non-cascading delete was blocked by dependents
//   - No data: an operation required a matching record and found none
//
// Storage and decoding failures are not wrapped in Error; they propagate
// as returned by the store.
type Error struct {
	// Code identifies the error category.
	Code ErrorCode

	// Kind is the record kind the error is about. For data integrity
	// errors it is the kind of the missing record.
	Kind entity.Kind

	// ID is the offending id. Zero for no-data errors.
	ID uuid.UUID

	// Message is a human-readable description.
	Message string
}

// ErrorCode categorizes records errors.
type ErrorCode string

const (
	// ErrCodeDataIntegrity indicates a stored id references no record.
	ErrCodeDataIntegrity ErrorCode = "DATA_INTEGRITY"

	// ErrCodeDeleteRestricted indicates dependents prevent a delete.
	ErrCodeDeleteRestricted ErrorCode = "DELETE_RESTRICTED"

	// ErrCodeNoData indicates no record matched.
	ErrCodeNoData ErrorCode = "NO_DATA"
)

// Error implements the error interface.
func (e *Error) Error() string {
	if e.ID != uuid.Nil {
		return fmt.Sprintf("%s: %s (%s %s)", e.Code, e.Message, e.Kind, e.ID)
	}
	return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Kind)
}

func hasCode(err error, code ErrorCode) bool {
	var re *Error
	if errors.As(err, &re) {
		return re.Code == code
	}
	return false
}

// IsDataIntegrity returns true if err is a data integrity error.
// Uses errors.As to handle wrapped errors.
func IsDataIntegrity(err error) bool {
	return hasCode(err, ErrCodeDataIntegrity)
}

// IsDeleteRestricted returns true if err is a delete restricted error.
func IsDeleteRestricted(err error) bool {
	return hasCode(err, ErrCodeDeleteRestricted)
}

// IsNoData returns true if err is a no data error.
func IsNoData(err error) bool {
	return hasCode(err, ErrCodeNoData)
}

// NewDataIntegrityError reports that id, expected to be a record of kind,
// does not exist. context names the referencing record.
func NewDataIntegrityError(kind entity.Kind, id uuid.UUID, context string) *Error {
	return &Error{
		Code:    ErrCodeDataIntegrity,
		Kind:    kind,
		ID:      id,
		Message: fmt.Sprintf("%s references a record which does not exist", context),
	}
}

// NewDeleteRestrictedError reports that the record kind/id has dependents.
func NewDeleteRestrictedError(kind entity.Kind, id uuid.UUID, dependents int, dependentKind entity.Kind) *Error {
	return &Error{
		Code:    ErrCodeDeleteRestricted,
		Kind:    kind,
		ID:      id,
		Message: fmt.Sprintf("%d %s still reference this record; delete with cascade or remove them first", dependents, dependentKind),
	}
}

// NewNoDataError reports that no record of kind matched.
func NewNoDataError(kind entity.Kind) *Error {
	return &Error{
		Code:    ErrCodeNoData,
		Kind:    kind,
		Message: "no matching records",
	}
}
