// Package status maps checker failures onto the outcome codes consumed by
// the scoring system.
package status

import (
	"errors"
	"fmt"
)

// Status is an outcome code. Its integer value is the process exit code.
type Status int

const (
	OK           Status = 101
	Corrupt      Status = 102
	Mumble       Status = 103
	Down         Status = 104
	CheckerError Status = 110
)

// String returns the scoring-system name of the status.
func (s Status) String() string {
	switch s {
	case OK:
		return "OK"
	case Corrupt:
		return "CORRUPT"
	case Mumble:
		return "MUMBLE"
	case Down:
		return "DOWN"
	case CheckerError:
		return "CHECKER_ERROR"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// ExitCode returns the process exit code for the status.
func (s Status) ExitCode() int {
	return int(s)
}

// Kind categorizes a failure by where in the exchange it happened.
type Kind int

const (
	// KindInternal covers bad invocations and anything uncategorized.
	KindInternal Kind = iota
	// KindUnreachable is a network-layer failure: timeout, refusal, reset.
	KindUnreachable
	// KindProtocol means the remote answered but broke the wire contract.
	KindProtocol
	// KindSemantic means the remote followed the wire contract but the
	// operation did not take effect.
	KindSemantic
	// KindIntegrity means correctly shaped data failed verification.
	KindIntegrity
)

func (k Kind) String() string {
	switch k {
	case KindUnreachable:
		return "unreachable"
	case KindProtocol:
		return "protocol_violation"
	case KindSemantic:
		return "semantic_mismatch"
	case KindIntegrity:
		return "integrity_mismatch"
	default:
		return "internal_fault"
	}
}

// Error is a classified failure. Op names the pipeline step that failed.
type Error struct {
	Kind   Kind
	Status Status
	Op     string
	Err    error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Unreachable wraps a network failure. Maps to DOWN.
func Unreachable(op string, err error) error {
	return &Error{Kind: KindUnreachable, Status: Down, Op: op, Err: err}
}

// Protocol wraps a wire contract violation. Maps to MUMBLE.
func Protocol(op string, err error) error {
	return &Error{Kind: KindProtocol, Status: Mumble, Op: op, Err: err}
}

// Semantic wraps a well-formed response whose shape or value says the
// operation did not happen, e.g. create returned false or a field is missing.
// Maps to MUMBLE.
func Semantic(op string, err error) error {
	return &Error{Kind: KindSemantic, Status: Mumble, Op: op, Err: err}
}

// SemanticContent wraps a well-formed response with the wrong content, such
// as an unexpected number of records. Maps to CORRUPT.
func SemanticContent(op string, err error) error {
	return &Error{Kind: KindSemantic, Status: Corrupt, Op: op, Err: err}
}

// Integrity wraps a hash or text verification failure. Maps to CORRUPT.
func Integrity(op string, err error) error {
	return &Error{Kind: KindIntegrity, Status: Corrupt, Op: op, Err: err}
}

// Internal wraps a checker-side fault. Maps to CHECKER_ERROR.
func Internal(op string, err error) error {
	return &Error{Kind: KindInternal, Status: CheckerError, Op: op, Err: err}
}

// Classify returns the outcome for err. It is total: nil is OK and any error
// that was never classified is CHECKER_ERROR.
func Classify(err error) Status {
	if err == nil {
		return OK
	}
	var se *Error
	if errors.As(err, &se) {
		return se.Status
	}
	return CheckerError
}
