package client

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by Get when the backend doesn't know the id.
var ErrNotFound = errors.New("analysis not found")

// RemoteError is a non-success response that carried a machine-readable
// reason. Its Detail is surfaced to the user verbatim.
type RemoteError struct {
	Status int
	Detail string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("server rejected request (%d): %s", e.Status, e.Detail)
}

// Message extracts the user-facing message for an error from this
// package: the verbatim detail for remote rejections, a plain sentence
// for unknown ids, and a generic transport message otherwise.
func Message(err error) string {
	var remote *RemoteError
	if errors.As(err, &remote) {
		return remote.Detail
	}
	if errors.Is(err, ErrNotFound) {
		return "analysis not found"
	}
	return "could not reach the parsing service"
}
