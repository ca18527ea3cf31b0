// Package boxes holds the registry of machinebox box clients.
//
// Each box is implemented in its own subpackage (e.g., boxes/textbox,
// boxes/suggestionbox). Box clients embed *core.Client, so every box
// implements core.Box and adds its own typed operations on top.
//
// # Box Interface
//
// All boxes implement core.Box:
//
//	type Box interface {
//	    ID() string
//	    BaseURL() string
//	    Info(ctx context.Context) (*BoxInfo, error)
//	    Health(ctx context.Context) (*Health, error)
//	    IsLive(ctx context.Context) (bool, error)
//	    IsReady(ctx context.Context) (bool, error)
//	}
//
// # Registry
//
// Box packages register a factory from init, so importing a box package is
// enough to make it available by name:
//
//	import _ "github.com/petal-labs/machinebox/boxes/textbox"
//
//	box, err := boxes.Create("textbox", "http://localhost:8080")
//
// # Concurrency
//
// Box clients are immutable and safe for concurrent calls.
package boxes

import "github.com/petal-labs/machinebox/core"

// Re-export core types for convenience.
type (
	// Box is the interface every box client implements.
	Box = core.Box

	// Option configures a box client.
	Option = core.Option
)
