package services

import "fmt"

// NotFoundError reports that an operation targeted an entity that does not
// exist. It is surfaced to the caller and never retried automatically.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

// ConnectivityError wraps a failure to reach the persistence layer. The state
// the operation started from is left unchanged, so the caller can retry.
type ConnectivityError struct {
	Op  string
	Err error
}

func (e ConnectivityError) Error() string {
	return fmt.Sprintf("%s: persistence layer unreachable: %v", e.Op, e.Err)
}

func (e ConnectivityError) Unwrap() error {
	return e.Err
}
