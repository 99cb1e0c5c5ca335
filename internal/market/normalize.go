package market

import (
	"errors"
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/kaleidoswap/market-explorer/internal/httpclient"
	"github.com/kaleidoswap/market-explorer/pkg/model"
)

// Normalize converts an executor error into a *model.FetchError carrying
// message. Errors that are neither transport nor HTTP failures come back
// wrapped in ErrUnexpected instead.
func Normalize(err error, message string) error {
	if err == nil {
		return nil
	}

	var statusErr *httpclient.StatusError
	var transportErr *httpclient.TransportError
	switch {
	case errors.As(err, &statusErr):
		details := ServerMessage(statusErr.Body)
		if details == "" {
			details = statusErr.Error()
		}
		return &model.FetchError{
			Message: message,
			Code:    statusErr.Code(),
			Details: details,
			Status:  statusErr.Status,
		}
	case errors.As(err, &transportErr):
		return &model.FetchError{
			Message: message,
			Code:    transportErr.Code,
			Details: transportErr.Err.Error(),
		}
	default:
		return fmt.Errorf("%w: %w", ErrUnexpected, err)
	}
}

// ServerMessage extracts the human-readable message from an error body,
// looking at "message", then "detail", then "error". Empty when absent.
func ServerMessage(body []byte) string {
	if len(body) == 0 || !gjson.ValidBytes(body) {
		return ""
	}
	for _, path := range []string{"message", "detail", "error"} {
		if r := gjson.GetBytes(body, path); r.Type == gjson.String && r.String() != "" {
			return r.String()
		}
	}
	return ""
}
