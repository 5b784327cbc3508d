package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidDesign, "design has no slots on edge %s", "top")

	if err.Code != ErrCodeInvalidDesign {
		t.Errorf("expected code %s, got %s", ErrCodeInvalidDesign, err.Code)
	}
	if want := "INVALID_DESIGN: design has no slots on edge top"; err.Error() != want {
		t.Errorf("expected %q, got %q", want, err.Error())
	}
}

func TestWrap(t *testing.T) {
	cause := stderrors.New("file corrupt")
	err := Wrap(ErrCodeInternal, cause, "failed to load %s", "chip.toml")

	if !stderrors.Is(err, cause) {
		t.Error("wrapped error should match its cause via errors.Is")
	}
	if want := "INTERNAL_ERROR: failed to load chip.toml: file corrupt"; err.Error() != want {
		t.Errorf("expected %q, got %q", want, err.Error())
	}
}

func TestIs(t *testing.T) {
	err := New(ErrCodeRunNotFound, "run %s not found", "abc")

	if !Is(err, ErrCodeRunNotFound) {
		t.Error("Is should match the error's own code")
	}
	if Is(err, ErrCodeInternal) {
		t.Error("Is should not match a different code")
	}
	if Is(stderrors.New("plain"), ErrCodeInternal) {
		t.Error("Is should not match plain errors")
	}

	// Code matching works through wrapping layers.
	wrapped := fmt.Errorf("outer: %w", err)
	if !Is(wrapped, ErrCodeRunNotFound) {
		t.Error("Is should unwrap to find the code")
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeInvalidEdge, "bad edge")); got != ErrCodeInvalidEdge {
		t.Errorf("expected %s, got %s", ErrCodeInvalidEdge, got)
	}
	if got := GetCode(stderrors.New("plain")); got != "" {
		t.Errorf("expected empty code for plain error, got %s", got)
	}
}

func TestUserMessage(t *testing.T) {
	if got := UserMessage(New(ErrCodeInvalidInput, "bad input")); got != "bad input" {
		t.Errorf("expected message without code prefix, got %q", got)
	}
	if got := UserMessage(stderrors.New("plain")); got != "plain" {
		t.Errorf("expected plain error string, got %q", got)
	}
}
