package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
)

func TestAppError_New_Success(t *testing.T) {
	err := New(ErrCodeNotFound, "not found", http.StatusNotFound)
	if err.Code != ErrCodeNotFound {
		t.Errorf("expected code %s, got %s", ErrCodeNotFound, err.Code)
	}
	if err.Message != "not found" {
		t.Errorf("expected message 'not found', got %q", err.Message)
	}
	if err.HTTPStatus != http.StatusNotFound {
		t.Errorf("expected status %d, got %d", http.StatusNotFound, err.HTTPStatus)
	}
}

func TestAppError_NotFound_EmptyID(t *testing.T) {
	err := NotFound("entity", "")
	if _, ok := err.Details["id"]; ok {
		t.Error("expected no 'id' key in details when id is empty")
	}
	if err.Details["resource"] != "entity" {
		t.Errorf("expected resource=entity, got %v", err.Details["resource"])
	}
}

func TestAppError_Constructors_Table(t *testing.T) {
	tests := []struct {
		name   string
		err    *AppError
		code   ErrorCode
		status int
	}{
		{"InvalidInput", InvalidInput("center.latitude", "out of range"), ErrCodeInvalidInput, http.StatusBadRequest},
		{"Validation", Validation("bad"), ErrCodeInvalidInput, http.StatusBadRequest},
		{"MissingField", MissingField("container"), ErrCodeMissingField, http.StatusBadRequest},
		{"ProviderUnsupported", ProviderUnsupported("bing"), ErrCodeProviderUnsupported, http.StatusBadRequest},
		{"NotFound", NotFound("layer", "abc"), ErrCodeNotFound, http.StatusNotFound},
		{"AlreadyExists", AlreadyExists("source", "abc"), ErrCodeAlreadyExists, http.StatusConflict},
		{"ContainerNotMounted", ContainerNotMounted("map"), ErrCodeContainerNotMounted, http.StatusConflict},
		{"NativeSDK", NativeSDK("mapboxgl", "boom"), ErrCodeNativeSDK, http.StatusUnprocessableEntity},
		{"Internal", Internal(fmt.Errorf("x")), ErrCodeInternal, http.StatusInternalServerError},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.err.Code != tc.code {
				t.Errorf("expected code %s, got %s", tc.code, tc.err.Code)
			}
			if tc.err.HTTPStatus != tc.status {
				t.Errorf("expected status %d, got %d", tc.status, tc.err.HTTPStatus)
			}
			if tc.err.Message == "" {
				t.Error("expected non-empty message")
			}
		})
	}
}

func TestAppError_WithDetail_NilMap(t *testing.T) {
	err := &AppError{Code: ErrCodeInternal}
	err.WithDetail("layer_id", "l-1")
	if err.Details["layer_id"] != "l-1" {
		t.Errorf("expected layer_id=l-1, got %v", err.Details["layer_id"])
	}
}

func TestAppError_Error_Format(t *testing.T) {
	err := MissingField("container")
	if !strings.HasPrefix(err.Error(), "MISSING_FIELD: ") {
		t.Errorf("unexpected format %q", err.Error())
	}

	cause := fmt.Errorf("node detached")
	withCause := ContainerNotMounted("map").WithCause(cause)
	if !strings.Contains(withCause.Error(), "cause: node detached") {
		t.Errorf("expected cause in message, got %q", withCause.Error())
	}
	if !stderrors.Is(withCause, cause) {
		t.Error("expected errors.Is to reach the cause")
	}
}

func TestAppError_ToResponse_Success(t *testing.T) {
	resp := NotFound("entity", "42").ToResponse()
	if resp.Error.Code != ErrCodeNotFound {
		t.Errorf("expected NOT_FOUND, got %s", resp.Error.Code)
	}
	if resp.Error.Details["id"] != "42" {
		t.Errorf("expected id=42, got %v", resp.Error.Details["id"])
	}
}

func TestAsAppError_Wrapped(t *testing.T) {
	wrapped := fmt.Errorf("outer: %w", InvalidInput("zoom", "negative"))
	got, ok := AsAppError(wrapped)
	if !ok {
		t.Fatal("expected AsAppError to succeed for wrapped AppError")
	}
	if got.Code != ErrCodeInvalidInput {
		t.Errorf("expected INVALID_INPUT, got %s", got.Code)
	}

	if _, ok := AsAppError(fmt.Errorf("plain")); ok {
		t.Error("expected AsAppError to return false for non-AppError")
	}
}

func TestWrap(t *testing.T) {
	if Wrap(nil) != nil {
		t.Error("Wrap(nil) should return nil")
	}

	orig := NotFound("entity", "1")
	if Wrap(orig) != orig {
		t.Error("Wrap should return the original AppError unchanged")
	}

	plain := fmt.Errorf("something broke")
	got := Wrap(plain)
	if got.Code != ErrCodeInternal {
		t.Errorf("expected INTERNAL_ERROR, got %s", got.Code)
	}
	if got.Cause != plain {
		t.Error("expected cause to be the original error")
	}
}

func TestHasCode(t *testing.T) {
	err := fmt.Errorf("create map: %w", ContainerNotMounted("map"))
	if !HasCode(err, ErrCodeContainerNotMounted) {
		t.Error("expected HasCode to match wrapped code")
	}
	if HasCode(err, ErrCodeNotFound) {
		t.Error("expected HasCode to reject a different code")
	}
	if HasCode(fmt.Errorf("plain"), ErrCodeInternal) {
		t.Error("expected HasCode to reject non-AppError")
	}
}
