package authzed

import "fmt"

// OpError is a relation-store failure labelled with the operation that
// produced it.
type OpError struct {
	Op  string
	Err error
}

func (e *OpError) Error() string {
	return fmt.Sprintf("authzed %s: %v", e.Op, e.Err)
}

func (e *OpError) Unwrap() error {
	return e.Err
}
