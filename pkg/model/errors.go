package model

// FetchError is the normalized shape of a failed market-data request.
// Message is a fixed human-readable summary; Code carries the transport or
// HTTP error class when known; Details carries the server message, or the
// raw error text as fallback.
type FetchError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
	Status  int    `json:"-"`
}

func (e *FetchError) Error() string {
	if e.Details != "" {
		return e.Message + ": " + e.Details
	}
	return e.Message
}
