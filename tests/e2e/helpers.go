// Package e2e provides end-to-end tests for gaedeploy.
//
// These tests execute the full deployment flow through a real child
// process: a fake gcloud shell script that records its arguments and
// replies with canned JSON. They require a POSIX shell. Run with:
//
//	go test -v ./tests/e2e/...
package e2e

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// =============================================================================
// Fake gcloud
// =============================================================================

const deployJSON = `{
  "versions": [
    {
      "id": "20221215t102539",
      "project": "my-test-project",
      "service": "default"
    }
  ]
}`

const describeJSON = `{
  "name": "apps/my-test-project/services/default/versions/20221215t102539",
  "id": "20221215t102539",
  "runtime": "go121",
  "serviceAccount": "my-test-project@appspot.gserviceaccount.com",
  "servingStatus": "SERVING",
  "versionUrl": "https://20221215t102539-dot-my-test-project.appspot.com"
}`

// fakeGcloud is a shell script standing in for the real binary. Every
// invocation appends its argument line to recordPath; the responses mirror
// what gcloud prints for each subcommand.
type fakeGcloud struct {
	binPath    string
	recordPath string
}

// installFakeGcloud writes the script into a fresh temp dir and returns it.
// deployExit lets failure tests force a non-zero deploy exit.
func installFakeGcloud(t *testing.T, deployExit int) *fakeGcloud {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake gcloud script requires a POSIX shell")
	}

	dir := t.TempDir()
	f := &fakeGcloud{
		binPath:    filepath.Join(dir, "gcloud"),
		recordPath: filepath.Join(dir, "calls.log"),
	}

	script := fmt.Sprintf(`#!/bin/sh
echo "$*" >> %q
case "$*" in
  *"auth list"*)
    echo "ci-deployer@my-test-project.iam.gserviceaccount.com"
    ;;
  *"components install"*)
    ;;
  *"app deploy"*)
    if [ %d -ne 0 ]; then
      echo "ERROR: (gcloud.app.deploy) permission denied" >&2
      exit %d
    fi
    cat <<'EOF'
%s
EOF
    ;;
  *"app versions describe"*)
    cat <<'EOF'
%s
EOF
    ;;
  *)
    echo "unexpected invocation: $*" >&2
    exit 64
    ;;
esac
`, f.recordPath, deployExit, deployExit, deployJSON, describeJSON)

	if err := os.WriteFile(f.binPath, []byte(script), 0o755); err != nil {
		t.Fatalf("write fake gcloud: %v", err)
	}
	return f
}

// calls returns the recorded invocations, one argument line per call.
func (f *fakeGcloud) calls(t *testing.T) []string {
	t.Helper()
	data, err := os.ReadFile(f.recordPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		t.Fatalf("read call log: %v", err)
	}
	return strings.Split(strings.TrimSpace(string(data)), "\n")
}

// =============================================================================
// Workspace Helpers
// =============================================================================

// writeDescriptor drops a descriptor file into dir and returns its path.
func writeDescriptor(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

// listYaml returns the sorted yaml file names under dir.
func listYaml(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	var names []string
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".yaml") || strings.HasSuffix(e.Name(), ".yml") {
			names = append(names, e.Name())
		}
	}
	return names
}
