package functions

import "fmt"

// InvocationError reports a function that ran but failed. Status and Body
// are set for HTTP invocations.
type InvocationError struct {
	Name   string
	Status int
	Body   string
	Err    error
}

func (e *InvocationError) Error() string {
	switch {
	case e.Err != nil:
		return fmt.Sprintf("function %s failed: %v", e.Name, e.Err)
	case e.Body != "":
		return fmt.Sprintf("function %s returned status %d: %s", e.Name, e.Status, e.Body)
	default:
		return fmt.Sprintf("function %s returned status %d", e.Name, e.Status)
	}
}

func (e *InvocationError) Unwrap() error {
	return e.Err
}
