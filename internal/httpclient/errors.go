package httpclient

import (
	"context"
	"errors"
	"fmt"
	"net"
	"syscall"
)

// Transport error codes reported by TransportError.
const (
	CodeTimeout     = "ETIMEDOUT"
	CodeRefused     = "ECONNREFUSED"
	CodeReset       = "ECONNRESET"
	CodeNotFound    = "ENOTFOUND"
	CodeCanceled    = "ERR_CANCELED"
	CodeNetwork     = "ERR_NETWORK"
	CodeBadRequest  = "ERR_BAD_REQUEST"
	CodeBadResponse = "ERR_BAD_RESPONSE"
)

// TransportError means no HTTP response was received.
type TransportError struct {
	Code string
	Err  error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport error (%s): %v", e.Code, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// StatusError means a response arrived with a 4xx/5xx status.
type StatusError struct {
	Tag    string
	Status int
	Body   []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s request failed with status code %d", e.Tag, e.Status)
}

// Code classifies the status the same way TransportError codes are named.
func (e *StatusError) Code() string {
	if e.Status >= 500 {
		return CodeBadResponse
	}
	return CodeBadRequest
}

// ClassifyTransport maps a client.Do error to a short error code.
func ClassifyTransport(err error) string {
	var dnsErr *net.DNSError
	var netErr net.Error
	switch {
	case errors.Is(err, context.Canceled):
		return CodeCanceled
	case errors.Is(err, context.DeadlineExceeded):
		return CodeTimeout
	case errors.Is(err, syscall.ECONNREFUSED):
		return CodeRefused
	case errors.Is(err, syscall.ECONNRESET):
		return CodeReset
	case errors.As(err, &dnsErr):
		return CodeNotFound
	case errors.As(err, &netErr) && netErr.Timeout():
		return CodeTimeout
	default:
		return CodeNetwork
	}
}
