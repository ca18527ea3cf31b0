package tagbox

import (
	"context"
	"io"
	"net/url"

	"github.com/petal-labs/machinebox/core"
)

// BoxID identifies tagbox in errors, telemetry and the box registry.
const BoxID = "tagbox"

// Tagbox is a client for a tagbox instance.
// Tagbox is safe for concurrent use.
type Tagbox struct {
	*core.Client
}

// New creates a tagbox client for the box at baseURL.
func New(baseURL string, opts ...core.Option) *Tagbox {
	opts = append([]core.Option{core.WithBoxID(BoxID)}, opts...)
	return &Tagbox{Client: core.New(baseURL, opts...)}
}

var (
	checkEndpoint   = core.Post("check", "/tagbox/check")
	similarEndpoint = core.Post("similar", "/tagbox/similar")
	stateEndpoint   = core.Post("upload_state", "/tagbox/state")
)

func tagPath(id string) string {
	return "/tagbox/teach/" + url.PathEscape(id)
}

// Check tags the image read from r.
func (tb *Tagbox) Check(ctx context.Context, r io.Reader) (*CheckResponse, error) {
	return core.Call[CheckResponse](ctx, tb.Client, checkEndpoint, core.NewMultipart().File("file", "image", r))
}

// CheckURL tags the image at imageURL. The box downloads the image.
func (tb *Tagbox) CheckURL(ctx context.Context, imageURL string) (*CheckResponse, error) {
	return core.Call[CheckResponse](ctx, tb.Client, checkEndpoint, urlRequest{URL: imageURL})
}

// CheckBase64 tags a base64 encoded image.
func (tb *Tagbox) CheckBase64(ctx context.Context, data string) (*CheckResponse, error) {
	return core.Call[CheckResponse](ctx, tb.Client, checkEndpoint, core.Form{"base64": {data}})
}

// TeachURL teaches the box a custom tag for the image at imageURL. id names
// the taught image and may be empty, in which case the box picks one.
func (tb *Tagbox) TeachURL(ctx context.Context, imageURL, tag, id string) error {
	return core.Exec(ctx, tb.Client, core.Post("teach", "/tagbox/teach"), teachRequest{
		Tag: tag,
		ID:  id,
		URL: imageURL,
	})
}

// RemoveCustomTag forgets the taught image id.
func (tb *Tagbox) RemoveCustomTag(ctx context.Context, id string) error {
	if id == "" {
		return ErrTagIDRequired
	}
	return core.Exec(ctx, tb.Client, core.Delete("remove", tagPath(id)), nil)
}

// RenameCustomTag changes the custom tag of the taught image id.
func (tb *Tagbox) RenameCustomTag(ctx context.Context, id, tag string) error {
	if id == "" {
		return ErrTagIDRequired
	}
	return core.Exec(ctx, tb.Client, core.Patch("rename", tagPath(id)), renameRequest{Tag: tag})
}

// Similar finds taught images that look like the image read from r.
func (tb *Tagbox) Similar(ctx context.Context, r io.Reader) ([]Tag, error) {
	return tb.similar(ctx, core.NewMultipart().File("file", "image", r))
}

// SimilarURL finds taught images that look like the image at imageURL.
func (tb *Tagbox) SimilarURL(ctx context.Context, imageURL string) ([]Tag, error) {
	return tb.similar(ctx, core.Form{"url": {imageURL}})
}

// SimilarBase64 finds taught images that look like a base64 encoded image.
func (tb *Tagbox) SimilarBase64(ctx context.Context, data string) ([]Tag, error) {
	return tb.similar(ctx, core.Form{"base64": {data}})
}

func (tb *Tagbox) similar(ctx context.Context, payload any) ([]Tag, error) {
	resp, err := core.Call[similarResponse](ctx, tb.Client, similarEndpoint, payload)
	if err != nil {
		return nil, err
	}
	return resp.Similar, nil
}

// DownloadState writes the binary state of the box, every taught tag, to w.
func (tb *Tagbox) DownloadState(ctx context.Context, w io.Writer) (int64, error) {
	return core.Download(ctx, tb.Client, core.Get("download_state", "/tagbox/state"), w)
}

// UploadState replaces the box state with a state file read from r.
func (tb *Tagbox) UploadState(ctx context.Context, r io.Reader) error {
	return core.Exec(ctx, tb.Client, stateEndpoint, core.NewMultipart().File("file", "state.tagbox", r))
}

// UploadStateURL makes the box download its state from stateURL.
func (tb *Tagbox) UploadStateURL(ctx context.Context, stateURL string) error {
	return core.Exec(ctx, tb.Client, stateEndpoint, core.Form{"url": {stateURL}})
}

// Compile-time check that Tagbox implements core.Box.
var _ core.Box = (*Tagbox)(nil)
