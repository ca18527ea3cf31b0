package facebox

// Face is a face detected in an image.
type Face struct {
	Rect Rect `json:"rect"`
	// ID and Name are set when the face matched a taught face.
	ID         string  `json:"id,omitempty"`
	Name       string  `json:"name,omitempty"`
	Matched    bool    `json:"matched"`
	Confidence float64 `json:"confidence" validate:"min=0,max=1"`
}

// Rect locates a face in pixels.
type Rect struct {
	Top    int `json:"top"`
	Left   int `json:"left"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// CheckResponse lists the faces found by Check.
type CheckResponse struct {
	Faces []Face `json:"faces" validate:"dive"`
}

// Matched returns the faces that matched a taught face.
func (r *CheckResponse) Matched() []Face {
	var out []Face
	for _, f := range r.Faces {
		if f.Matched {
			out = append(out, f)
		}
	}
	return out
}

// Similar is a taught face that looks like the searched one.
type Similar struct {
	ID   string `json:"id" validate:"required"`
	Name string `json:"name"`
}

// SimilarResponse lists similar faces.
type SimilarResponse struct {
	Similar []Similar `json:"similar" validate:"dive"`
}

type urlRequest struct {
	URL string `json:"url"`
}

type renameRequest struct {
	Name string `json:"name"`
}
