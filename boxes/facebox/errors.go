package facebox

import "errors"

// ErrFaceIDRequired is returned before any request is sent when an operation
// needs a face ID and none was given.
var ErrFaceIDRequired = errors.New("facebox: face ID required")
