package errors

import (
	"errors"
	"fmt"
)

// indicates an unrecoverable error
var ErrPermanentFailure = errors.New("permanent failure, do not retry")

// Kind is the closed set of failures the analysis core reports.
type Kind int

const (
	MissingCredential Kind = iota + 1
	Extraction
	Completion
)

func (k Kind) String() string {
	switch k {
	case MissingCredential:
		return "missing_credential"
	case Extraction:
		return "extraction_error"
	case Completion:
		return "completion_error"
	default:
		return "unknown"
	}
}

// Error is returned by the credential loader, the pdf extractor and the
// completion client. Status holds the upstream HTTP status, if any.
type Error struct {
	Kind    Kind
	Message string
	Status  int
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func NewMissingCredential(name string) *Error {
	return &Error{
		Kind:    MissingCredential,
		Message: fmt.Sprintf("missing credential: environment variable %s is not set", name),
	}
}

func NewExtraction(message string, err error) *Error {
	return New(Extraction, message, err)
}

func NewCompletion(message string, status int, err error) *Error {
	return &Error{Kind: Completion, Message: message, Status: status, Err: err}
}

// KindOf returns the kind of the first *Error in err's chain, or 0.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// StatusOf returns the upstream HTTP status carried by err, or 0.
func StatusOf(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.Status
	}
	return 0
}
