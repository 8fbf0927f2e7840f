package holidays

import "fmt"

// GenericFetchMessage is reported when the service gives no usable detail
const GenericFetchMessage = "Failed to fetch holidays"

// RemoteFetchError is the single failure kind of the holiday client.
// It covers network failures, non-success statuses and malformed bodies.
type RemoteFetchError struct {
	Message    string
	StatusCode int // 0 when no response was received
	Err        error
}

func (e *RemoteFetchError) Error() string {
	return e.Message
}

func (e *RemoteFetchError) Unwrap() error {
	return e.Err
}

func newRemoteFetchError(status int, err error, format string, args ...interface{}) *RemoteFetchError {
	return &RemoteFetchError{
		Message:    fmt.Sprintf(format, args...),
		StatusCode: status,
		Err:        err,
	}
}
