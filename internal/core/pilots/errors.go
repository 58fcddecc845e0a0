package pilots

import "errors"

// ErrPilotNotFound is returned when a CID has no pilot record locally.
var ErrPilotNotFound = errors.New("pilot not found")
