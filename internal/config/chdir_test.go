package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// chdir changes the working directory for the duration of the test. It stands
// in for testing.T.Chdir, which requires Go 1.24, and mirrors its behavior:
// the test fails if the directory cannot be entered, PWD is updated on POSIX
// platforms, and the original directory is restored during cleanup.
func chdir(t *testing.T, dir string) {
	t.Helper()
	oldwd, err := os.Open(".")
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	switch runtime.GOOS {
	case "windows", "plan9":
		// These platforms do not use the PWD variable.
	default:
		if !filepath.IsAbs(dir) {
			dir, err = os.Getwd()
			if err != nil {
				t.Fatal(err)
			}
		}
		t.Setenv("PWD", dir)
	}
	t.Cleanup(func() {
		err := oldwd.Chdir()
		oldwd.Close()
		if err != nil {
			panic("chdir: " + err.Error())
		}
	})
}
