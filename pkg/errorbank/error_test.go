package errorbank

import (
	"errors"
	"net/http"
	"testing"

	"google.golang.org/grpc/codes"
)

func TestStatusCodeByKind(t *testing.T) {
	tests := []struct {
		err  *AppError
		want int
	}{
		{BadRequest("bad"), http.StatusBadRequest},
		{Unauthorized("nope"), http.StatusUnauthorized},
		{NotFound("missing"), http.StatusNotFound},
		{Conflict("clash"), http.StatusConflict},
		{Unprocessable("cannot"), http.StatusUnprocessableEntity},
		{Internal("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.err.Kind()), func(t *testing.T) {
			if got := tt.err.StatusCode(); got != tt.want {
				t.Errorf("StatusCode() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestGRPCCodeByKind(t *testing.T) {
	tests := []struct {
		err  *AppError
		want codes.Code
	}{
		{BadRequest("bad"), codes.InvalidArgument},
		{Unauthorized("nope"), codes.Unauthenticated},
		{NotFound("missing"), codes.NotFound},
		{Conflict("clash"), codes.AlreadyExists},
		{Unprocessable("cannot"), codes.FailedPrecondition},
		{Internal("boom"), codes.Internal},
	}

	for _, tt := range tests {
		t.Run(string(tt.err.Kind()), func(t *testing.T) {
			if got := tt.err.GRPCCode(); got != tt.want {
				t.Errorf("GRPCCode() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestFromWrapsUnknownErrors(t *testing.T) {
	cause := errors.New("connection refused")
	appErr := From(cause)
	if appErr.Kind() != KindInternal {
		t.Errorf("Kind() = %s, want internal", appErr.Kind())
	}
	if !errors.Is(appErr, cause) {
		t.Error("From lost the original cause")
	}
}

func TestFromPreservesAppErrors(t *testing.T) {
	original := NotFound("order not found", WithDetail("order_number", "ORD-20240315-AB12CD"))
	appErr := From(original)
	if appErr != original {
		t.Error("From re-wrapped an AppError")
	}
	if appErr.Details()["order_number"] != "ORD-20240315-AB12CD" {
		t.Errorf("Details lost: %v", appErr.Details())
	}
}

func TestWithCauseUnwrap(t *testing.T) {
	cause := errors.New("row not found")
	appErr := NotFound("order not found", WithCause(cause))
	if !errors.Is(appErr, cause) {
		t.Error("Unwrap chain broken")
	}
}
