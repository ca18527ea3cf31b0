package textbox

import (
	"context"

	"github.com/petal-labs/machinebox/core"
)

// BoxID identifies textbox in errors, telemetry and the box registry.
const BoxID = "textbox"

// Textbox is a client for a textbox instance.
// Textbox is safe for concurrent use.
type Textbox struct {
	*core.Client
}

// New creates a textbox client for the box at baseURL.
func New(baseURL string, opts ...core.Option) *Textbox {
	opts = append([]core.Option{core.WithBoxID(BoxID)}, opts...)
	return &Textbox{Client: core.New(baseURL, opts...)}
}

type checkRequest struct {
	Text string `json:"text"`
}

// Check analyses text. Empty text is sent as is; the box decides whether to
// reject it. Sentences and entities keep the order the box returned them in.
func (tb *Textbox) Check(ctx context.Context, text string) (*Analysis, error) {
	return core.Call[Analysis](ctx, tb.Client, core.Post("check", "/textbox/check"), checkRequest{Text: text})
}

// Compile-time check that Textbox implements core.Box.
var _ core.Box = (*Textbox)(nil)
