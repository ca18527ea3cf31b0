//go:build integration

// Package integration runs the clients and the CLI against live boxes.
//
// Point MACHINEBOX_<BOX>_URL at running boxes, for example
//
//	docker run -p 8081:8080 -e "MB_KEY=$MB_KEY" machinebox/textbox
//	MACHINEBOX_TEXTBOX_URL=http://localhost:8081 go test -tags integration ./tests/integration
//
// Tests for boxes without a URL are skipped.
package integration

import (
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

// cliBinary is the machinebox binary under test.
var cliBinary string

// TestMain builds the CLI once, unless MACHINEBOX_CLI points at a binary
// that was already built, for example by a release job.
func TestMain(m *testing.M) {
	if prebuilt := os.Getenv("MACHINEBOX_CLI"); prebuilt != "" {
		cliBinary = prebuilt
		os.Exit(m.Run())
	}

	root, err := moduleRoot()
	if err != nil {
		log.Fatalf("find module root: %v", err)
	}

	tmpDir, err := os.MkdirTemp("", "machinebox-integration")
	if err != nil {
		log.Fatalf("create temp dir: %v", err)
	}

	cliBinary = filepath.Join(tmpDir, "machinebox")
	cmd := exec.Command("go", "build", "-o", cliBinary, "./cli/cmd/machinebox")
	cmd.Dir = root
	if output, err := cmd.CombinedOutput(); err != nil {
		os.RemoveAll(tmpDir)
		log.Fatalf("build CLI: %v\n%s", err, output)
	}

	code := m.Run()
	os.RemoveAll(tmpDir)
	os.Exit(code)
}

// moduleRoot walks up from the working directory to the nearest go.mod.
func moduleRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", os.ErrNotExist
		}
		dir = parent
	}
}

func getCliBinary() string {
	return cliBinary
}
