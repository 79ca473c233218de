package errdef

import (
	"errors"
	"fmt"
	"testing"
)

func TestWrapNilReturnsNil(t *testing.T) {
	if err := Wrap(CodeTheme, nil, "decode"); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
}

func TestCodeOfUnwrapsThroughChain(t *testing.T) {
	base := New(CodeImport, "parse monaco theme")
	wrapped := fmt.Errorf("outer: %w", base)
	if code := CodeOf(wrapped); code != CodeImport {
		t.Fatalf("expected code %q, got %q", CodeImport, code)
	}
	if code := CodeOf(errors.New("plain")); code != CodeUnknown {
		t.Fatalf("expected code %q, got %q", CodeUnknown, code)
	}
}

func TestMessageIncludesCause(t *testing.T) {
	err := Wrap(CodeFilesystem, errors.New("permission denied"), "write theme file")
	got := Message(err)
	want := "write theme file: permission denied"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestMessageFallsBackToPlainError(t *testing.T) {
	err := errors.New("plain failure")
	if got := Message(err); got != "plain failure" {
		t.Fatalf("expected %q, got %q", "plain failure", got)
	}
	if got := Message(nil); got != "" {
		t.Fatalf("expected empty message, got %q", got)
	}
}
