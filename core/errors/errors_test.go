package errors

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(CodeEmptyAttributeList, "no attributes")

	var customErr *E
	if !errors.As(err, &customErr) {
		t.Fatal("Error should be of type *E")
	}

	if customErr.Code != CodeEmptyAttributeList {
		t.Errorf("Expected code %s, got %s", CodeEmptyAttributeList, customErr.Code)
	}

	if got := err.Error(); got != "EMPTY_ATTRIBUTE_LIST: no attributes" {
		t.Errorf("Unexpected message %q", got)
	}
}

func TestWrapKeepsCause(t *testing.T) {
	wrapped := Wrap(CodeIO, "generator.write", fs.ErrPermission)

	if !errors.Is(wrapped, fs.ErrPermission) {
		t.Error("Wrapped error should match its cause")
	}

	if got := wrapped.Error(); got != "IO_FAILURE generator.write: permission denied" {
		t.Errorf("Unexpected message %q", got)
	}
}

func TestWrapf(t *testing.T) {
	cause := errors.New("unexpected EOF")
	err := Wrapf(CodeDescriptorRead, "pom.load", cause, "parse %s", "pom.xml")

	if got := err.Error(); got != "DESCRIPTOR_READ pom.load: parse pom.xml: unexpected EOF" {
		t.Errorf("Unexpected message %q", got)
	}
}

func TestCodeOf(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected Code
	}{
		{"coded error", New(CodeUnknownIdentifier, "x"), CodeUnknownIdentifier},
		{"wrapped coded error", fmt.Errorf("outer: %w", New(CodePackageDerivation, "x")), CodePackageDerivation},
		{"standard error", errors.New("plain"), ""},
		{"nil error", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if code := CodeOf(tt.err); code != tt.expected {
				t.Errorf("Expected code %q, got %q", tt.expected, code)
			}
		})
	}
}

func TestIsCode(t *testing.T) {
	err := Wrap(CodeDescriptorWrite, "pom.save", errors.New("disk full"))
	if !IsCode(err, CodeDescriptorWrite) {
		t.Error("IsCode should match the wrapping code")
	}
	if IsCode(err, CodeDescriptorRead) {
		t.Error("IsCode should not match a different code")
	}
}

func TestBuilder(t *testing.T) {
	cause := errors.New("boom")
	err := Build(CodeUnknownIdentifier).
		WithOp("attribute.ResolveIDType").
		WithErr(cause).
		WithMsgf("identifier %q not found", "uuid").
		WithDetails("identifier", "uuid").
		Err()

	var customErr *E
	if !errors.As(err, &customErr) {
		t.Fatal("Error should be of type *E")
	}
	if customErr.Op != "attribute.ResolveIDType" {
		t.Errorf("Expected op, got %q", customErr.Op)
	}
	if customErr.Msg != `identifier "uuid" not found` {
		t.Errorf("Expected formatted message, got %q", customErr.Msg)
	}
	if len(customErr.Details) != 2 {
		t.Errorf("Expected 2 details, got %d", len(customErr.Details))
	}
	if !errors.Is(err, cause) {
		t.Error("Builder error should wrap its cause")
	}
}
