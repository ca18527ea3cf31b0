package suggestionbox

import "errors"

// Validation errors returned before any request is sent.
var (
	ErrModelIDRequired  = errors.New("suggestionbox: model ID required")
	ErrRewardIDRequired = errors.New("suggestionbox: reward ID required")
)
