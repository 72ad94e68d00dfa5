package testutil

import (
	"os"
	"testing"
)

// Chdir changes the working directory to dir for the duration of the test and
// restores the original directory on cleanup, mirroring testing.T.Chdir.
func Chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Errorf("restoring working directory: %v", err)
		}
	})
}
