package apperr

import (
	"errors"
	"net/http"
	"testing"
)

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(KindInternal, "store document file", cause).WithOp("documents.AttachFile")

	if !errors.Is(err, cause) {
		t.Fatal("wrapped error does not unwrap to its cause")
	}
	if got, want := err.Error(), "documents.AttachFile: store document file: connection refused"; got != want {
		t.Fatalf("Error() = %q, want %q", got, want)
	}
	if err.HTTPStatus() != http.StatusInternalServerError {
		t.Fatalf("status = %d", err.HTTPStatus())
	}
}

func TestKindStatus(t *testing.T) {
	cases := []struct {
		err  *Error
		want int
	}{
		{NotFound("x"), http.StatusNotFound},
		{Validation("x"), http.StatusBadRequest},
		{Conflict("x"), http.StatusConflict},
		{Forbidden("x"), http.StatusForbidden},
		{Unauthorized("x"), http.StatusUnauthorized},
		{Precondition("x"), http.StatusPreconditionFailed},
	}

	for _, tc := range cases {
		if got := tc.err.HTTPStatus(); got != tc.want {
			t.Errorf("%v: status = %d, want %d", tc.err.Kind, got, tc.want)
		}
		if !Is(tc.err, tc.err.Kind) {
			t.Errorf("Is(%v) = false", tc.err.Kind)
		}
	}
}
