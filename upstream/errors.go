package upstream

import "fmt"

// StatusError reports a non-success initial response from the completion
// endpoint. The formatted message is the diagnostic shown to the client.
type StatusError struct {
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("LM error %d: %s", e.Status, e.Body)
}
