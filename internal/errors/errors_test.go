package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestErrorMessage(t *testing.T) {
	err := Input("fob price must be positive")
	if got := err.Error(); got != "[INVALID_INPUT] fob price must be positive" {
		t.Errorf("unexpected message: %s", got)
	}

	wrapped := Parsing("reference file", stderrors.New("unexpected token"))
	if got := wrapped.Error(); got != "[PARSING_ERROR] reference file: unexpected token" {
		t.Errorf("unexpected message: %s", got)
	}
}

func TestIsTypeThroughWrapping(t *testing.T) {
	base := Configf("container capacity must be positive, got %d", 0)
	outer := Wrap(TypeInternal, "building calculator", base)
	fmtWrapped := fmt.Errorf("startup: %w", outer)

	if !IsType(fmtWrapped, TypeConfig) {
		t.Error("expected CONFIG_ERROR to be found through the wrap chain")
	}
	if !IsType(fmtWrapped, TypeInternal) {
		t.Error("expected INTERNAL_ERROR on the outer error")
	}
	if IsType(fmtWrapped, TypeInput) {
		t.Error("did not expect INVALID_INPUT")
	}
	if IsType(stderrors.New("plain"), TypeInput) {
		t.Error("plain errors carry no type")
	}
	if IsType(nil, TypeInput) {
		t.Error("nil carries no type")
	}
}

func TestTypeOf(t *testing.T) {
	if got := TypeOf(NotFound("supplier", "acme")); got != TypeNotFound {
		t.Errorf("expected NOT_FOUND, got %s", got)
	}
	if got := TypeOf(stderrors.New("plain")); got != TypeInternal {
		t.Errorf("expected INTERNAL_ERROR for untyped error, got %s", got)
	}
}

func TestWithContext(t *testing.T) {
	err := Input("volume must be positive").WithContext("volume", 0)
	if err.Context["volume"] != 0 {
		t.Errorf("context not recorded: %v", err.Context)
	}
}
