package auth

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestStoreRoundTrip(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "readlaw-auth-test")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	store := NewStore(tmpDir)
	if store.LoggedIn() {
		t.Error("fresh store should not be logged in")
	}

	if err := store.SetToken("abc123"); err != nil {
		t.Fatalf("SetToken failed: %v", err)
	}
	if got := store.Token(); got != "abc123" {
		t.Errorf("expected token abc123, got %q", got)
	}

	// Verify permissions on the credentials file
	info, err := os.Stat(filepath.Join(tmpDir, "credentials.json"))
	if err != nil {
		t.Fatalf("credentials file missing: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("expected 0600 permissions, got %v", perm)
	}

	// A second store over the same directory picks up the session
	other := NewStore(tmpDir)
	if err := other.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got := other.Token(); got != "abc123" {
		t.Errorf("expected reloaded token abc123, got %q", got)
	}

	if err := other.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if other.LoggedIn() {
		t.Error("store should be logged out after Clear")
	}
	if _, err := os.Stat(filepath.Join(tmpDir, "credentials.json")); !os.IsNotExist(err) {
		t.Error("expected credentials file to be removed")
	}
}

func TestStoreLoadMissingFile(t *testing.T) {
	store := NewStore(t.TempDir())
	if err := store.Load(); err != nil {
		t.Fatalf("Load of missing file should not error: %v", err)
	}
	if store.Token() != "" {
		t.Error("expected empty token when no file exists")
	}
}

func TestStoreExpiry(t *testing.T) {
	store := NewStore(t.TempDir())
	if err := store.SetToken("stale"); err != nil {
		t.Fatalf("SetToken failed: %v", err)
	}

	// Pretend 25 hours have passed since login
	store.now = func() time.Time { return time.Now().Add(25 * time.Hour) }

	if got := store.Token(); got != "" {
		t.Errorf("expected expired token to read as absent, got %q", got)
	}
	if store.LoggedIn() {
		t.Error("expired session must not count as logged in")
	}
}
