package apperr

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestIsUser(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", Userf("bad flag %q", "--to"))
	if !IsUser(err) {
		t.Fatalf("expected wrapped UserError to be detected")
	}
	if IsUser(errors.New("plain")) {
		t.Fatalf("plain error must not be a UserError")
	}
}

func TestTypedErrorsMatchSentinels(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
	}{
		{"parser", Parserf("oep-v1.4", "missing %s", "id"), ErrParse},
		{"decode", Decode("json", errors.New("unexpected EOF")), ErrDecode},
		{"metadata", Metadataf("unknown version %q", "x"), ErrMetadata},
		{"conversion", &ConversionError{From: "a", To: "b"}, ErrConversion},
		{"not implemented", NotImplemented("json", "License"), ErrNotImplemented},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := fmt.Errorf("ctx: %w", tt.err)
			if !errors.Is(wrapped, tt.sentinel) {
				t.Fatalf("errors.Is(%v, %v) = false", wrapped, tt.sentinel)
			}
		})
	}
}

func TestConversionErrorNamesBothEndpoints(t *testing.T) {
	err := &ConversionError{From: "OEP-1.5.2", To: "OEP-1.5.0"}
	msg := err.Error()
	if !strings.Contains(msg, "OEP-1.5.2") || !strings.Contains(msg, "OEP-1.5.0") {
		t.Fatalf("message %q must name both endpoints", msg)
	}
}

func TestDecodeErrorUnwraps(t *testing.T) {
	inner := errors.New("boom")
	err := Decode("yaml", inner)
	if !errors.Is(err, inner) {
		t.Fatalf("DecodeError must unwrap to its cause")
	}
	if got := err.Error(); got != "decode yaml: boom" {
		t.Fatalf("Error() = %q", got)
	}
}

func TestParserErrorMessage(t *testing.T) {
	err := Parserf("", "Resource field doesn't have any child entity")
	if err.Error() != "Resource field doesn't have any child entity" {
		t.Fatalf("Error() = %q", err.Error())
	}
}
