package refresh

import (
	"errors"
	"fmt"
)

// Kind is the externally visible category of a refresh failure.
type Kind int

const (
	// KindSourceUnavailable means an upstream fetch failed. Nothing was written.
	KindSourceUnavailable Kind = iota + 1
	// KindInternal means persistence or coordination failed. Nothing was written.
	KindInternal
)

func (k Kind) String() string {
	switch k {
	case KindSourceUnavailable:
		return "source_unavailable"
	case KindInternal:
		return "internal"
	default:
		return "unknown"
	}
}

// Error is the only error type Refresh returns.
type Error struct {
	Kind Kind
	// Source names the failing upstream for KindSourceUnavailable.
	Source string
	Err    error
}

func (e *Error) Error() string {
	if e.Kind == KindSourceUnavailable {
		return fmt.Sprintf("external data source unavailable: %s: %v", e.Source, e.Err)
	}
	return fmt.Sprintf("refresh failed: %v", e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the Kind of a refresh error, or 0 when err is not one.
func KindOf(err error) Kind {
	var re *Error
	if errors.As(err, &re) {
		return re.Kind
	}
	return 0
}

func sourceUnavailable(source string, err error) *Error {
	return &Error{Kind: KindSourceUnavailable, Source: source, Err: err}
}

func internal(err error) *Error {
	return &Error{Kind: KindInternal, Err: err}
}
