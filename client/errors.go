package client

import (
	"errors"
)

const (
	// MessageInvalidCredentials is the backend's answer to a bad login. It is
	// never treated as an expired session, even at 401.
	MessageInvalidCredentials = "invalid_credentials"

	// GenericFailureMessage is used when a failed response carries no message.
	GenericFailureMessage = "request failed"

	// ConnectivityMessage is reported when no response was obtained.
	ConnectivityMessage = "could not reach the server; check that the backend is running"
)

// RequestError is an HTTP-level failure: a response arrived with a non-2xx status.
type RequestError struct {
	Message string
	Status  int
	Data    Payload
}

func (e *RequestError) Error() string {
	return e.Message
}

func newRequestError(p Payload) *RequestError {
	msg, ok := p.Message()
	if !ok {
		msg = GenericFailureMessage
	}
	return &RequestError{Message: msg, Status: p.Status, Data: p}
}

// ConnectivityError is a transport failure: no response was obtained.
type ConnectivityError struct {
	Err error
}

func (e *ConnectivityError) Error() string {
	return ConnectivityMessage
}

func (e *ConnectivityError) Unwrap() error {
	return e.Err
}

// StatusOf returns the HTTP status carried by a RequestError in err's chain.
func StatusOf(err error) (int, bool) {
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return reqErr.Status, true
	}
	return 0, false
}

func IsStatus(err error, status int) bool {
	s, ok := StatusOf(err)
	return ok && s == status
}

// MessageOf returns the backend message of a RequestError, or "".
func MessageOf(err error) string {
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return reqErr.Message
	}
	return ""
}

func IsConnectivity(err error) bool {
	var connErr *ConnectivityError
	return errors.As(err, &connErr)
}
