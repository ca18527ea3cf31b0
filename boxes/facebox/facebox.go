package facebox

import (
	"context"
	"io"
	"net/url"

	"github.com/petal-labs/machinebox/core"
)

// BoxID identifies facebox in errors, telemetry and the box registry.
const BoxID = "facebox"

// Facebox is a client for a facebox instance.
// Facebox is safe for concurrent use.
type Facebox struct {
	*core.Client
}

// New creates a facebox client for the box at baseURL.
func New(baseURL string, opts ...core.Option) *Facebox {
	opts = append([]core.Option{core.WithBoxID(BoxID)}, opts...)
	return &Facebox{Client: core.New(baseURL, opts...)}
}

var (
	checkEndpoint   = core.Post("check", "/facebox/check")
	similarEndpoint = core.Post("similar", "/facebox/similar")
	teachEndpoint   = core.Post("teach", "/facebox/teach")
	stateEndpoint   = core.Post("upload_state", "/facebox/state")
)

func imageFile(r io.Reader) *core.Multipart {
	return core.NewMultipart().File("file", "image", r)
}

func facePath(id string) string {
	return "/facebox/teach/" + url.PathEscape(id)
}

// Check finds faces in the image read from r.
func (fb *Facebox) Check(ctx context.Context, r io.Reader) (*CheckResponse, error) {
	return core.Call[CheckResponse](ctx, fb.Client, checkEndpoint, imageFile(r))
}

// CheckURL finds faces in the image at imageURL. The box downloads the image.
func (fb *Facebox) CheckURL(ctx context.Context, imageURL string) (*CheckResponse, error) {
	return core.Call[CheckResponse](ctx, fb.Client, checkEndpoint, urlRequest{URL: imageURL})
}

// CheckBase64 finds faces in a base64 encoded image.
func (fb *Facebox) CheckBase64(ctx context.Context, data string) (*CheckResponse, error) {
	return core.Call[CheckResponse](ctx, fb.Client, checkEndpoint, core.Form{"base64": {data}})
}

// Similar finds taught faces that look like the face in the image read from r.
func (fb *Facebox) Similar(ctx context.Context, r io.Reader) (*SimilarResponse, error) {
	return core.Call[SimilarResponse](ctx, fb.Client, similarEndpoint, imageFile(r))
}

// SimilarURL finds taught faces that look like the face in the image at imageURL.
func (fb *Facebox) SimilarURL(ctx context.Context, imageURL string) (*SimilarResponse, error) {
	return core.Call[SimilarResponse](ctx, fb.Client, similarEndpoint, urlRequest{URL: imageURL})
}

// SimilarID finds taught faces that look like the taught face id.
func (fb *Facebox) SimilarID(ctx context.Context, id string) (*SimilarResponse, error) {
	if id == "" {
		return nil, ErrFaceIDRequired
	}
	ep := core.Get("similar", "/facebox/similar").WithQuery(url.Values{"id": {id}})
	return core.Call[SimilarResponse](ctx, fb.Client, ep, nil)
}

// SimilarBase64 finds taught faces that look like the face in a base64 encoded image.
func (fb *Facebox) SimilarBase64(ctx context.Context, data string) (*SimilarResponse, error) {
	return core.Call[SimilarResponse](ctx, fb.Client, similarEndpoint, core.Form{"base64": {data}})
}

// Teach teaches the face in the image read from r, under id and name.
// Several images may share a name; each needs its own id.
func (fb *Facebox) Teach(ctx context.Context, r io.Reader, id, name string) error {
	payload := core.NewMultipart().
		Field("id", id).
		Field("name", name).
		File("file", "image", r)
	return core.Exec(ctx, fb.Client, teachEndpoint, payload)
}

// TeachURL teaches the face in the image at imageURL, under id and name.
func (fb *Facebox) TeachURL(ctx context.Context, imageURL, id, name string) error {
	return core.Exec(ctx, fb.Client, teachEndpoint, core.Form{
		"url":  {imageURL},
		"id":   {id},
		"name": {name},
	})
}

// Remove forgets the taught face id.
func (fb *Facebox) Remove(ctx context.Context, id string) error {
	if id == "" {
		return ErrFaceIDRequired
	}
	return core.Exec(ctx, fb.Client, core.Delete("remove", facePath(id)), nil)
}

// Rename changes the name of the taught face id.
func (fb *Facebox) Rename(ctx context.Context, id, name string) error {
	if id == "" {
		return ErrFaceIDRequired
	}
	return core.Exec(ctx, fb.Client, core.Patch("rename", facePath(id)), renameRequest{Name: name})
}

// RenameAll renames every taught face called from to to. Face IDs do not change.
func (fb *Facebox) RenameAll(ctx context.Context, from, to string) error {
	return core.Exec(ctx, fb.Client, core.Post("rename_all", "/facebox/rename"), core.Form{
		"from": {from},
		"to":   {to},
	})
}

// DownloadState writes the binary state of the box, every taught face, to w.
func (fb *Facebox) DownloadState(ctx context.Context, w io.Writer) (int64, error) {
	return core.Download(ctx, fb.Client, core.Get("download_state", "/facebox/state"), w)
}

// UploadState replaces the box state with a state file read from r.
func (fb *Facebox) UploadState(ctx context.Context, r io.Reader) error {
	return core.Exec(ctx, fb.Client, stateEndpoint, core.NewMultipart().File("file", "state.facebox", r))
}

// UploadStateURL makes the box download its state from stateURL.
func (fb *Facebox) UploadStateURL(ctx context.Context, stateURL string) error {
	return core.Exec(ctx, fb.Client, stateEndpoint, core.Form{"url": {stateURL}})
}

// Compile-time check that Facebox implements core.Box.
var _ core.Box = (*Facebox)(nil)
