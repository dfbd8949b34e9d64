package errors_test

import (
	"fmt"
	"net/http"
	"testing"

	pkgErrors "tailortalk/pkg/errors"
)

func TestAsHTTPError(t *testing.T) {
	wrapped := fmt.Errorf("handler: %w", pkgErrors.NewHTTPError(http.StatusConflict, "slot taken"))

	got, ok := pkgErrors.AsHTTPError(wrapped)
	if !ok {
		t.Fatal("expected to unwrap HTTPError")
	}
	if got.StatusCode != http.StatusConflict || got.Message != "slot taken" {
		t.Errorf("unexpected error: %+v", got)
	}

	if _, ok := pkgErrors.AsHTTPError(fmt.Errorf("plain")); ok {
		t.Error("plain error should not unwrap")
	}
}
