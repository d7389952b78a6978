package prepared

import "fmt"

// RetrievalError reports that a prepared-data resource could not be fetched:
// the server answered, but not with success.
type RetrievalError struct {
	Resource   string
	StatusCode int
}

func (e *RetrievalError) Error() string {
	return fmt.Sprintf("failed to load %s: %d", e.Resource, e.StatusCode)
}

// ValidationError reports that a prepared-data resource was fetched but its
// body is not the expected envelope shape. Distinct from RetrievalError so
// callers can tell "couldn't reach it" from "reached it but it's garbage".
type ValidationError struct {
	Resource string
	Reason   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid prepared data: %s: %s", e.Resource, e.Reason)
}
