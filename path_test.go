package collections

import (
	"errors"
	"testing"
)

func TestSplitPathBasic(t *testing.T) {
	parts, err := SplitPath("/configuration/runtime/logging")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(parts) != 3 {
		t.Fatalf("Expected 3 segments, got %d", len(parts))
	}
	if parts[0] != "configuration" || parts[1] != "runtime" || parts[2] != "logging" {
		t.Errorf("Unexpected segments: %v", parts)
	}
}

func TestSplitPathSingleSegment(t *testing.T) {
	parts, err := SplitPath("/a")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(parts) != 1 || parts[0] != "a" {
		t.Errorf("Unexpected segments: %v", parts)
	}
}

func TestSplitPathTrailingSlash(t *testing.T) {
	parts, err := SplitPath("/a/b/c/")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(parts) != 3 {
		t.Errorf("Expected 3 segments, got %v", parts)
	}
}

func TestSplitPathSegmentCharset(t *testing.T) {
	parts, err := SplitPath("/skip-devices/some_key/Mixed09")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(parts) != 3 {
		t.Errorf("Expected 3 segments, got %v", parts)
	}
}

func TestSplitPathInvalid(t *testing.T) {
	badPaths := []string{
		"",
		"/",
		"a/b",
		"/a//b",
		"/a/b c",
		"/a/b.c",
		"//",
	}
	for _, path := range badPaths {
		if _, err := SplitPath(path); !errors.Is(err, ErrInvalidPath) {
			t.Errorf("Expected ErrInvalidPath for %q, got %v", path, err)
		}
	}
}

func TestJoinPath(t *testing.T) {
	if got := JoinPath("a", "b", "c"); got != "/a/b/c" {
		t.Errorf("Expected /a/b/c, got %q", got)
	}
	parts, err := SplitPath(JoinPath("x", "y"))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(parts) != 2 || parts[0] != "x" || parts[1] != "y" {
		t.Errorf("Round trip failed: %v", parts)
	}
}
