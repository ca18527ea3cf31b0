package textbox

import (
	"github.com/petal-labs/machinebox/boxes"
	"github.com/petal-labs/machinebox/core"
)

func init() {
	boxes.Register(BoxID, func(baseURL string, opts ...core.Option) core.Box {
		return New(baseURL, opts...)
	})
}
