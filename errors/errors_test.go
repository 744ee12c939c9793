package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatusFromCode(t *testing.T) {
	tests := []struct {
		name string
		code ErrorCode
		want int
	}{
		{"invalid request", ErrCodeInvalidRequest, http.StatusBadRequest},
		{"unauthorized", ErrCodeUnauthorized, http.StatusUnauthorized},
		{"forbidden", ErrCodeForbidden, http.StatusForbidden},
		{"not found", ErrCodeNotFound, http.StatusNotFound},
		{"rate limit", ErrCodeRateLimitExceeded, http.StatusTooManyRequests},
		{"internal", ErrCodeInternal, http.StatusInternalServerError},
		{"unknown defaults to internal", ErrorCode("SOMETHING_ELSE"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatusFromCode(tt.code))
		})
	}
}

func TestCodeOfWrapped(t *testing.T) {
	base := NotFound("recipe")
	wrapped := fmt.Errorf("loading: %w", base)

	assert.Equal(t, ErrCodeNotFound, CodeOf(wrapped))
	assert.True(t, IsNotFound(wrapped))
	assert.Equal(t, ErrCodeInternal, CodeOf(errors.New("boom")))
	assert.False(t, IsNotFound(nil))
}

func TestStructuredErrorMessage(t *testing.T) {
	cause := errors.New("connection reset")
	err := Wrap(ErrCodeInternal, "failed to list recipes", cause)

	assert.Equal(t, "[INTERNAL] failed to list recipes: connection reset", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "[NOT_FOUND] tag not found", NotFound("tag").Error())
}

func TestFields(t *testing.T) {
	fields := Fields{}
	fields.Add("title", "This field is required.")
	fields.Add("title", "Ensure this field has no more than 255 characters.")

	err := Validation(fields)
	assert.Equal(t, ErrCodeInvalidRequest, err.Code)
	assert.Len(t, err.Fields["title"], 2)

	single := FieldError("image", "No file was submitted.")
	assert.Equal(t, []string{"No file was submitted."}, single.Fields["image"])
}
