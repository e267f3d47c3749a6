package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestMetadataForKnownCodes(t *testing.T) {
	t.Parallel()

	if meta := MetadataFor(CodeValidation); meta.HTTPStatus != http.StatusBadRequest {
		t.Fatalf("validation status = %d, want 400", meta.HTTPStatus)
	}
	if meta := MetadataFor(CodeNotFound); meta.HTTPStatus != http.StatusNotFound {
		t.Fatalf("not found status = %d, want 404", meta.HTTPStatus)
	}
	if meta := MetadataFor(Code("NOPE")); meta.HTTPStatus != http.StatusInternalServerError {
		t.Fatalf("unknown code should map to internal, got %d", meta.HTTPStatus)
	}
}

func TestWrapPreservesCause(t *testing.T) {
	t.Parallel()

	cause := stdErrors.New("redis down")
	err := Wrap(CodeDependency, cause, "load cart slot")

	if !stdErrors.Is(err, cause) {
		t.Fatal("expected wrapped cause to be discoverable via errors.Is")
	}
	if err.Error() != "DEPENDENCY_ERROR: load cart slot" {
		t.Fatalf("unexpected error string %q", err.Error())
	}
}

func TestAsUnwrapsThroughChain(t *testing.T) {
	t.Parallel()

	typed := New(CodeValidation, "quantity must be numeric").WithDetails(map[string]string{"quantity": "is invalid"})
	wrapped := fmt.Errorf("handling request: %w", typed)

	got := As(wrapped)
	if got == nil {
		t.Fatal("expected typed error from chain")
	}
	if got.Code() != CodeValidation {
		t.Fatalf("code = %s, want %s", got.Code(), CodeValidation)
	}
	if got.Details() == nil {
		t.Fatal("expected details to survive wrapping")
	}

	if As(stdErrors.New("plain")) != nil {
		t.Fatal("plain error should not convert")
	}
}

func TestDumpCollectsChain(t *testing.T) {
	t.Parallel()

	err := Wrap(CodeInternal, stdErrors.New("root"), "top")
	d := Dump(err)

	if d.Code != CodeInternal {
		t.Fatalf("dump code = %s, want %s", d.Code, CodeInternal)
	}
	if len(d.Chain) != 2 {
		t.Fatalf("chain length = %d, want 2", len(d.Chain))
	}
}
