//go:build integration

package integration

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/petal-labs/machinebox/cli/config"
	"github.com/petal-labs/machinebox/core"
)

// isCI returns true if running in a CI environment.
// It checks for common CI environment variables.
func isCI() bool {
	// GitHub Actions, GitLab CI, CircleCI, Travis, Jenkins, etc.
	ciVars := []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "CIRCLECI", "TRAVIS", "JENKINS_URL"}
	for _, v := range ciVars {
		if os.Getenv(v) != "" {
			return true
		}
	}
	return false
}

// boxURL returns MACHINEBOX_<BOX>_URL or skips the test when it is unset.
// In CI, it fails unless MACHINEBOX_SKIP_INTEGRATION is set.
func boxURL(t *testing.T, box string) string {
	t.Helper()
	env := config.URLEnv(box)
	u := os.Getenv(env)
	if u != "" {
		return u
	}
	if isCI() && os.Getenv("MACHINEBOX_SKIP_INTEGRATION") == "" {
		t.Fatalf("%s not set (CI environment detected; set MACHINEBOX_SKIP_INTEGRATION=1 to skip)", env)
	}
	t.Skipf("%s not set", env)
	return ""
}

// waitReady polls the box readiness endpoint until it answers or the test
// deadline passes. Boxes load their models after starting.
func waitReady(t *testing.T, box core.Box) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	for {
		ready, err := box.IsReady(ctx)
		if err == nil && ready {
			return
		}
		select {
		case <-ctx.Done():
			t.Fatalf("box not ready: last error %v", err)
		case <-time.After(time.Second):
		}
	}
}

// cliResult holds the result of running a CLI command.
type cliResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// runCLI executes the machinebox CLI with the given arguments.
// It uses the pre-built binary from TestMain for efficiency.
func runCLI(t *testing.T, args ...string) cliResult {
	t.Helper()
	return runCLIWithStdin(t, "", args...)
}

// runCLIWithStdin executes the machinebox CLI with stdin input.
// It uses a temp config file so the user's config is never read.
func runCLIWithStdin(t *testing.T, stdin string, args ...string) cliResult {
	t.Helper()

	binaryPath := getCliBinary()
	if binaryPath == "" {
		t.Fatal("CLI binary not built - TestMain may not have run")
	}

	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	cmd := exec.Command(binaryPath, append([]string{"--config", cfgPath}, args...)...)
	cmd.Stdin = bytes.NewBufferString(stdin)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	exitCode := 0
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		} else {
			t.Fatalf("Failed to run CLI: %v", err)
		}
	}

	return cliResult{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		ExitCode: exitCode,
	}
}
