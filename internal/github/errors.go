package github

import (
	"errors"
	"fmt"
)

// ErrorKind classifies why a profile fetch failed.
type ErrorKind int

// Fetch failure kinds.
const (
	KindUnknown ErrorKind = iota
	KindInvalidURL
	KindInvalidResponse
	KindInvalidData
)

var kindNames = map[ErrorKind]string{
	KindUnknown:         "unknown",
	KindInvalidURL:      "invalid_url",
	KindInvalidResponse: "invalid_response",
	KindInvalidData:     "invalid_data",
}

// String returns the snake_case label of the kind.
func (k ErrorKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return kindNames[KindUnknown]
}

// Code returns the upper-case API error code of the kind, e.g. "INVALID_RESPONSE".
func (k ErrorKind) Code() string {
	switch k {
	case KindInvalidURL:
		return "INVALID_URL"
	case KindInvalidResponse:
		return "INVALID_RESPONSE"
	case KindInvalidData:
		return "INVALID_DATA"
	default:
		return "UNKNOWN"
	}
}

// FetchError is returned by Client.FetchUser for every failed fetch.
type FetchError struct {
	Kind     ErrorKind
	Username string
	// Status is the HTTP status code for KindInvalidResponse, zero otherwise.
	Status int
	Err    error
}

func (e *FetchError) Error() string {
	msg := fmt.Sprintf("github: fetch user %q: %s", e.Username, e.Kind)
	if e.Status != 0 {
		msg = fmt.Sprintf("%s (status %d)", msg, e.Status)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// KindOf returns the kind carried by err. Errors that are not a *FetchError
// are classified as KindUnknown.
func KindOf(err error) ErrorKind {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return KindUnknown
}
