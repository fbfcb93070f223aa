package domain

import (
	"errors"
	"fmt"
)

// Failure kinds returned by a weather fetch. Match with errors.Is.
var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrMissingCredential = errors.New("missing credential")
	ErrNetwork           = errors.New("network error")
	ErrProtocol          = errors.New("protocol error")
	ErrDecode            = errors.New("decode error")
)

// FetchError carries the failure kind, the upstream status code for protocol
// failures, and the underlying cause if there is one.
type FetchError struct {
	Kind       error
	StatusCode int
	Detail     string
	Err        error
}

func (e *FetchError) Error() string {
	msg := e.Kind.Error()
	if e.Kind == ErrProtocol && e.StatusCode != 0 {
		msg = fmt.Sprintf("%s: status %d", msg, e.StatusCode)
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap exposes both the kind and the cause to errors.Is / errors.As.
func (e *FetchError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func InvalidInput(detail string) *FetchError {
	return &FetchError{Kind: ErrInvalidInput, Detail: detail}
}

func MissingCredential(detail string) *FetchError {
	return &FetchError{Kind: ErrMissingCredential, Detail: detail}
}

func NetworkError(err error) *FetchError {
	return &FetchError{Kind: ErrNetwork, Err: err}
}

func ProtocolError(statusCode int, detail string) *FetchError {
	return &FetchError{Kind: ErrProtocol, StatusCode: statusCode, Detail: detail}
}

func DecodeError(err error) *FetchError {
	return &FetchError{Kind: ErrDecode, Err: err}
}

// StatusCodeOf returns the upstream status carried by a protocol failure, or 0.
func StatusCodeOf(err error) int {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe.StatusCode
	}
	return 0
}
