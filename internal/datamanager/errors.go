package datamanager

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Kind is a stable machine-readable reason code surfaced to callers.
type Kind string

const (
	KindAlreadyEnrolled  Kind = "already_enrolled"
	KindNotEnrolled      Kind = "not_enrolled"
	KindDuplicateRequest Kind = "duplicate_request"
	KindInvalidState     Kind = "invalid_state"
	KindForbidden        Kind = "forbidden"
	KindNotFound         Kind = "not_found"
	KindOperationFailed  Kind = "operation_failed"
)

// Error carries a Kind alongside the message so HTTP handlers can map
// failures to a consistent vocabulary regardless of whether a race was
// caught by the pre-check validator or by a constraint at commit time.
type Error struct {
	Kind    Kind
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

func newError(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func wrapError(kind Kind, cause error, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), cause: cause}
}

// KindOf returns the Kind of err, or "" when err carries none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// IsValidation reports whether err is a precondition failure rather than an
// operational one. Validation failures are never retried.
func IsValidation(err error) bool {
	k := KindOf(err)
	return k != "" && k != KindOperationFailed
}

// SQLSTATE codes treated as transient. Classification is strictly by code,
// never by message text, so a duplicate-key violation can never be retried
// into a loop.
var transientCodes = map[string]bool{
	"40001": true, // serialization_failure
	"40P01": true, // deadlock_detected
	"57014": true, // query_canceled (statement timeout)
	"55P03": true, // lock_not_available
}

func isTransient(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if transientCodes[pgErr.Code] {
			return true
		}
		// class 08: connection exceptions
		return strings.HasPrefix(pgErr.Code, "08")
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return netErr.Timeout()
	}
	return false
}

// Unique indexes mapped back to the validation vocabulary.
var uniqueViolationKinds = map[string]Kind{
	"idx_enrollments_user_course": KindAlreadyEnrolled,
	"idx_student_progress_pair":   KindAlreadyEnrolled,
	"idx_qbank_enrollments_pair":  KindAlreadyEnrolled,
}

// constraintKind recognizes unique/foreign-key violations raised at commit
// despite a passing pre-check (the check-then-act race window) and maps them
// to the matching validation Kind. These are never retried.
func constraintKind(err error) (Kind, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			if k, ok := uniqueViolationKinds[pgErr.ConstraintName]; ok {
				return k, true
			}
			return KindAlreadyEnrolled, true
		case "23503": // foreign_key_violation
			return KindNotFound, true
		}
		return "", false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return KindAlreadyEnrolled, true
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return KindNotFound, true
	}
	return "", false
}
