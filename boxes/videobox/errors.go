package videobox

import "errors"

// ErrVideoIDRequired is returned before any request is sent when an operation
// needs a video ID and none was given.
var ErrVideoIDRequired = errors.New("videobox: video ID required")
