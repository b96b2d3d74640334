package protocol

import "errors"

// ErrMissingFields is returned by TurnRequest.Validate when reg_no or
// content is empty after trimming. The message doubles as the error event
// text shown to the client.
var ErrMissingFields = errors.New("Missing reg_no or content")
