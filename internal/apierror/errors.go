package apierror

import (
	"errors"
	"net/http"
)

// Kind classifies a domain failure. Services return *Error values carrying a
// Kind; handlers translate the Kind into an HTTP status.
type Kind string

const (
	KindUnauthenticated          Kind = "unauthenticated"
	KindInvalidCredential        Kind = "invalid_credential"
	KindInactiveEmployee         Kind = "inactive_employee"
	KindInsufficientPrivilege    Kind = "insufficient_privilege"
	KindCrossTenantAccess        Kind = "cross_tenant_access"
	KindSelfDeletionForbidden    Kind = "self_deletion_forbidden"
	KindProtectedAdminDeletion   Kind = "protected_admin_deletion"
	KindNotFound                 Kind = "not_found"
	KindConflict                 Kind = "conflict"
	KindReferentialDeleteBlocked Kind = "referential_delete_blocked"
	KindInsufficientStock        Kind = "insufficient_stock"
	KindInvalidInput             Kind = "invalid_input"
)

var statusByKind = map[Kind]int{
	KindUnauthenticated:          http.StatusUnauthorized,
	KindInvalidCredential:        http.StatusUnauthorized,
	KindInactiveEmployee:         http.StatusForbidden,
	KindInsufficientPrivilege:    http.StatusForbidden,
	KindCrossTenantAccess:        http.StatusForbidden,
	KindSelfDeletionForbidden:    http.StatusForbidden,
	KindProtectedAdminDeletion:   http.StatusForbidden,
	KindNotFound:                 http.StatusNotFound,
	KindConflict:                 http.StatusConflict,
	KindReferentialDeleteBlocked: http.StatusConflict,
	KindInsufficientStock:        http.StatusConflict,
	KindInvalidInput:             http.StatusBadRequest,
}

// Error is a domain error with a client-safe detail message.
type Error struct {
	Kind   Kind
	Detail string
}

func (e *Error) Error() string { return string(e.Kind) + ": " + e.Detail }

// Is matches any *Error with the same Kind, so errors.Is(err, apierror.ErrNotFound) works.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// Status returns the HTTP status code for the error's Kind.
func (e *Error) Status() int {
	if s, ok := statusByKind[e.Kind]; ok {
		return s
	}
	return http.StatusInternalServerError
}

// Envelope converts the error into the JSON body sent to clients.
func (e *Error) Envelope() *APIError {
	return &APIError{Detail: e.Detail, Code: e.Kind}
}

func E(kind Kind, detail string) *Error { return &Error{Kind: kind, Detail: detail} }

// Sentinels for errors.Is comparisons; their Detail is not meant for clients.
var (
	ErrUnauthenticated          = E(KindUnauthenticated, "")
	ErrInvalidCredential        = E(KindInvalidCredential, "")
	ErrInactiveEmployee         = E(KindInactiveEmployee, "")
	ErrInsufficientPrivilege    = E(KindInsufficientPrivilege, "")
	ErrCrossTenantAccess        = E(KindCrossTenantAccess, "")
	ErrSelfDeletionForbidden    = E(KindSelfDeletionForbidden, "")
	ErrProtectedAdminDeletion   = E(KindProtectedAdminDeletion, "")
	ErrNotFound                 = E(KindNotFound, "")
	ErrConflict                 = E(KindConflict, "")
	ErrReferentialDeleteBlocked = E(KindReferentialDeleteBlocked, "")
	ErrInsufficientStock        = E(KindInsufficientStock, "")
	ErrInvalidInput             = E(KindInvalidInput, "")
)

func Unauthenticated(detail string) *Error { return E(KindUnauthenticated, detail) }
func NotFound(detail string) *Error        { return E(KindNotFound, detail) }
func Conflict(detail string) *Error        { return E(KindConflict, detail) }
func InvalidInput(detail string) *Error    { return E(KindInvalidInput, detail) }

// As extracts the *Error from err's chain.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}
