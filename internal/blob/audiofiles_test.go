package blob

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLocationForCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "AudioFiles")
	a := New(dir, nil)

	loc := a.LocationFor("abc.m4a")
	if loc != filepath.Join(dir, "abc.m4a") {
		t.Errorf("Unexpected location: %s", loc)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Errorf("Audio directory not created: %v", err)
	}

	// Idempotent on repeat.
	if again := a.LocationFor("abc.m4a"); again != loc {
		t.Errorf("Location not stable: %s vs %s", again, loc)
	}
}

func TestPutAndExists(t *testing.T) {
	a := New(t.TempDir(), nil)
	loc := a.LocationFor("take1.m4a")

	if a.Exists(loc) {
		t.Fatal("File reported present before Put")
	}
	if err := a.Put(loc, strings.NewReader("audio-bytes")); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if !a.Exists(loc) {
		t.Error("File reported absent after Put")
	}

	data, err := os.ReadFile(loc)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(data) != "audio-bytes" {
		t.Errorf("Content mismatch: %q", data)
	}
}

func TestDeleteRemovesFile(t *testing.T) {
	a := New(t.TempDir(), nil)
	loc := a.LocationFor("gone.m4a")
	if err := a.Put(loc, strings.NewReader("x")); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	a.Delete(loc)
	if a.Exists(loc) {
		t.Error("File still present after Delete")
	}
}

func TestDeleteAbsentIsNonFatal(t *testing.T) {
	a := New(t.TempDir(), nil)
	// Must not panic or error; absence is a logged condition only.
	a.Delete(a.LocationFor("never-recorded.m4a"))
}
