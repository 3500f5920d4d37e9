// Package errs defines the error taxonomy shared by the purchase workflows.
//
// Every domain failure is an *Error carrying a Kind. Callers branch on the
// kind with errors.Is against the kind sentinels (ErrValidation, ErrNotFound,
// ErrPolicy, ErrTransport) and on the concrete failure with errors.Is against
// the package-level values declared by the use cases.
package errs

import "errors"

type Kind int

const (
	KindUnknown Kind = iota
	// KindValidation: caller input violates a precondition. Raised before any remote call.
	KindValidation
	// KindNotFound: a lookup matched no record.
	KindNotFound
	// KindPolicy: the input is well formed but the workflow is in the wrong state.
	KindPolicy
	// KindTransport: the collaborator service failed or was unreachable.
	KindTransport
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindPolicy:
		return "policy_violation"
	case KindTransport:
		return "transport"
	default:
		return "unknown"
	}
}

type Error struct {
	kind  Kind
	msg   string
	cause error
}

var (
	ErrValidation = &Error{kind: KindValidation}
	ErrNotFound   = &Error{kind: KindNotFound}
	ErrPolicy     = &Error{kind: KindPolicy}
	ErrTransport  = &Error{kind: KindTransport}
)

func Validation(msg string) *Error { return &Error{kind: KindValidation, msg: msg} }
func NotFound(msg string) *Error   { return &Error{kind: KindNotFound, msg: msg} }
func Policy(msg string) *Error     { return &Error{kind: KindPolicy, msg: msg} }

// Transport wraps a collaborator failure. A nil cause yields nil.
func Transport(cause error) error {
	if cause == nil {
		return nil
	}
	var e *Error
	if errors.As(cause, &e) && e.kind != KindUnknown {
		return cause
	}
	return &Error{kind: KindTransport, msg: "collaborator service failure", cause: cause}
}

func (e *Error) Kind() Kind { return e.kind }

func (e *Error) Error() string {
	msg := e.msg
	if msg == "" {
		msg = e.kind.String()
	}
	if e.cause != nil {
		return msg + ": " + e.cause.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.cause }

// Is matches identical values, and lets the message-less kind sentinels
// match any error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t == e {
		return true
	}
	return t.msg == "" && t.cause == nil && t.kind == e.kind
}

// KindOf reports the kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.kind
	}
	return KindUnknown
}
