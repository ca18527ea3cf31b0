package commands

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionDefaults(t *testing.T) {
	// Without -ldflags the build metadata keeps its placeholders.
	assert.NotEmpty(t, Version)
	assert.NotEmpty(t, Commit)
	assert.NotEmpty(t, BuildDate)
}

func TestVersionCommand(t *testing.T) {
	old := Version
	Version = "v1.2.3"
	t.Cleanup(func() { Version = old })

	res := newHarness(t).run("version")

	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "machinebox v1.2.3\n")
	assert.Contains(t, res.stdout, runtime.Version())
	assert.Contains(t, res.stdout, runtime.GOOS+"/"+runtime.GOARCH)
}
