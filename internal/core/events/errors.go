package events

import "errors"

// ErrUnknownCategory is returned when a list request names a category
// outside the known event types.
var ErrUnknownCategory = errors.New("unknown event category")
