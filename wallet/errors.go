package wallet

import "errors"

// Kind is a stable category for programmatic error handling.
//
// Callers should branch on Kind/RuleID (or errors.Is against the Err*
// sentinels) rather than matching error strings.
type Kind string

const (
	KindMalformedIdentity Kind = "MalformedIdentity"
	KindCapacityExceeded  Kind = "CapacityExceeded"
	KindNotFound          Kind = "NotFound"
	KindEncoding          Kind = "Encoding"
	KindInvalid           Kind = "Invalid"
)

// Sentinels usable with errors.Is. A *Error matches the sentinel of its Kind.
var (
	ErrMalformedIdentity = errors.New("wallet: malformed identity")
	ErrCapacityExceeded  = errors.New("wallet: asset capacity exceeded")
	ErrNotFound          = errors.New("wallet: not found")
	ErrEncoding          = errors.New("wallet: encoding")
	ErrInvalid           = errors.New("wallet: invalid")
)

// Error is the package's structured error type.
//
// RuleID is a stable identifier (e.g. ZW-ID-001, ZW-CAP-001) naming the
// violated rule. Message is intended for humans; do not match on it.
type Error struct {
	Kind    Kind
	RuleID  string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// Is lets errors.Is(err, ErrNotFound) and friends match on Kind.
func (e *Error) Is(target error) bool {
	if e == nil {
		return false
	}
	switch target {
	case ErrMalformedIdentity:
		return e.Kind == KindMalformedIdentity
	case ErrCapacityExceeded:
		return e.Kind == KindCapacityExceeded
	case ErrNotFound:
		return e.Kind == KindNotFound
	case ErrEncoding:
		return e.Kind == KindEncoding
	case ErrInvalid:
		return e.Kind == KindInvalid
	}
	return false
}

func newError(kind Kind, ruleID, msg string) error {
	return &Error{Kind: kind, RuleID: ruleID, Message: msg}
}

func wrapError(kind Kind, ruleID, msg string, cause error) error {
	if cause == nil {
		return newError(kind, ruleID, msg)
	}
	return &Error{Kind: kind, RuleID: ruleID, Message: msg, Cause: cause}
}

// IsKind reports whether err is (or wraps) a *Error with the given Kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Kind == kind
}

// RuleID returns the stable RuleID for a structured error, or "" if unknown.
func RuleID(err error) string {
	var e *Error
	if !errors.As(err, &e) {
		return ""
	}
	return e.RuleID
}
