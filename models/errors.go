package models

import "errors"

// ErrorKind classifies every user-visible failure leaving the model layer.
// Raw storage errors never cross this boundary; they are logged and wrapped.
type ErrorKind string

const (
	ErrorKindValidation              ErrorKind = "Validation"
	ErrorKindStateConflict           ErrorKind = "StateConflict"
	ErrorKindNotFound                ErrorKind = "NotFound"
	ErrorKindUnsupportedBusinessType ErrorKind = "UnsupportedBusinessType"
)

// Stable codes for the failures callers branch on.
const (
	CodePeriodLocked      = "PeriodLocked"
	CodePeriodMismatch    = "PeriodMismatch"
	CodeUnbalancedEntry   = "UnbalancedEntry"
	CodeInvalidAccount    = "InvalidAccount"
	CodeInsufficientLines = "InsufficientLines"
	CodeOverlappingPeriod = "OverlappingPeriod"
	CodeDuplicateSlug     = "DuplicateSlug"
)

type ModelError struct {
	Kind   ErrorKind
	Code   string
	Reason string
}

func (e *ModelError) Error() string {
	return e.Reason
}

func validationError(code string, reason string) *ModelError {
	return &ModelError{Kind: ErrorKindValidation, Code: code, Reason: reason}
}

func stateConflict(code string, reason string) *ModelError {
	return &ModelError{Kind: ErrorKindStateConflict, Code: code, Reason: reason}
}

func notFound(reason string) *ModelError {
	return &ModelError{Kind: ErrorKindNotFound, Reason: reason}
}

func unsupportedBusinessType(reason string) *ModelError {
	return &ModelError{Kind: ErrorKindUnsupportedBusinessType, Reason: reason}
}

// ErrNebilagaRequiresSoleProprietorship refuses the NE-bilaga for business
// types that do not file one.
var ErrNebilagaRequiresSoleProprietorship = unsupportedBusinessType("the NE-bilaga applies to sole proprietorships only")

// ErrorIsKind reports whether err (or anything it wraps) is a ModelError of
// the given kind.
func ErrorIsKind(err error, kind ErrorKind) bool {
	var me *ModelError
	if errors.As(err, &me) {
		return me.Kind == kind
	}
	return false
}

// ErrorCode returns the stable code of a ModelError, or "" for other errors.
func ErrorCode(err error) string {
	var me *ModelError
	if errors.As(err, &me) {
		return me.Code
	}
	return ""
}
