package tagbox

import "errors"

// ErrTagIDRequired is returned before any request is sent when an operation
// needs a custom tag ID and none was given.
var ErrTagIDRequired = errors.New("tagbox: tag ID required")
