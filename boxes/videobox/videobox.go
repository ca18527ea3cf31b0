package videobox

import (
	"context"
	"net/url"

	"github.com/petal-labs/machinebox/core"
)

// BoxID identifies videobox in errors, telemetry and the box registry.
const BoxID = "videobox"

// Videobox is a client for a videobox instance.
// Videobox is safe for concurrent use. It does not poll; callers decide how
// often to call Status.
type Videobox struct {
	*core.Client
}

// New creates a videobox client for the box at baseURL.
func New(baseURL string, opts ...core.Option) *Videobox {
	opts = append([]core.Option{core.WithBoxID(BoxID)}, opts...)
	return &Videobox{Client: core.New(baseURL, opts...)}
}

func resultsPath(id string) string {
	return "/videobox/results/" + url.PathEscape(id)
}

// CheckURL starts processing the video at videoURL and returns the new job.
func (vb *Videobox) CheckURL(ctx context.Context, videoURL string, opts CheckOptions) (*Video, error) {
	form := core.Form{"url": {videoURL}}
	for k, v := range opts.values {
		form[k] = v
	}
	video, err := core.Call[Video](ctx, vb.Client, core.Post("check", "/videobox/check"), form)
	if err != nil {
		return nil, err
	}
	video.fillDefaults()
	return video, nil
}

// Status reports the progress of the job id.
func (vb *Videobox) Status(ctx context.Context, id string) (*Video, error) {
	if id == "" {
		return nil, ErrVideoIDRequired
	}
	video, err := core.Call[Video](ctx, vb.Client, core.Get("status", "/videobox/status/"+url.PathEscape(id)), nil)
	if err != nil {
		return nil, err
	}
	video.fillDefaults()
	return video, nil
}

// Results fetches the analysis of the job id. Call it once Status reports
// StatusComplete.
func (vb *Videobox) Results(ctx context.Context, id string) (*Analysis, error) {
	if id == "" {
		return nil, ErrVideoIDRequired
	}
	return core.Call[Analysis](ctx, vb.Client, core.Get("results", resultsPath(id)), nil)
}

// Delete discards the results of the job id.
func (vb *Videobox) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrVideoIDRequired
	}
	return core.Exec(ctx, vb.Client, core.Delete("delete", resultsPath(id)), nil)
}

// Compile-time check that Videobox implements core.Box.
var _ core.Box = (*Videobox)(nil)
