package main_test

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"
)

var (
	treeviewBinaryPath string
	treeviewBinaryDir  string
)

func TestMain(m *testing.M) {
	os.Setenv("TREEVIEW_TEST_MODE", "1")
	// Keep the user's configuration out of every run.
	os.Setenv("XDG_CONFIG_HOME", os.TempDir()+"/treeview-e2e-no-config")

	if err := buildTreeviewOnce(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to build treeview binary: %v\n", err)
		os.Exit(1)
	}

	code := m.Run()
	if treeviewBinaryDir != "" {
		_ = os.RemoveAll(treeviewBinaryDir)
	}
	os.Exit(code)
}

func buildTreeviewOnce() error {
	tempDir, err := os.MkdirTemp("", "treeview-e2e-build-*")
	if err != nil {
		return err
	}
	treeviewBinaryDir = tempDir

	binName := "treeview"
	if runtime.GOOS == "windows" {
		binName += ".exe"
	}
	binPath := filepath.Join(tempDir, binName)

	cmd := exec.Command("go", "build", "-o", binPath, "../../cmd/treeview")
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("go build failed: %v\n%s", err, out)
	}

	treeviewBinaryPath = binPath
	return nil
}

// treeviewBinary returns the path to the pre-built binary.
func treeviewBinary(t *testing.T) string {
	t.Helper()
	if treeviewBinaryPath == "" {
		t.Fatal("treeview binary not built")
	}
	return treeviewBinaryPath
}
