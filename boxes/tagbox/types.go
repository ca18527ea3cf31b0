package tagbox

// Tag describes an image.
type Tag struct {
	Tag string `json:"tag" validate:"required"`
	// Confidence is nil when the operation returns no score, which is
	// different from a score of 0.
	Confidence *float64 `json:"confidence,omitempty" validate:"omitempty,min=0,max=1"`
	// ID is the image ID given when a custom tag was taught.
	ID string `json:"id,omitempty"`
}

// CheckResponse lists the tags found by Check.
type CheckResponse struct {
	Tags []Tag `json:"tags" validate:"dive"`
	// CustomTags are the taught tags that match the image.
	CustomTags []Tag `json:"custom_tags" validate:"dive"`
}

type similarResponse struct {
	Similar []Tag `json:"similar" validate:"dive"`
}

type urlRequest struct {
	URL string `json:"url"`
}

type teachRequest struct {
	Tag string `json:"tag"`
	ID  string `json:"id,omitempty"`
	URL string `json:"url"`
}

type renameRequest struct {
	Tag string `json:"tag"`
}
