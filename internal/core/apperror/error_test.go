package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAsAppError_WrappedChain(t *testing.T) {
	base := NewDuplicate("unit", "code", "KG")
	wrapped := fmt.Errorf("create unit: %w", base)

	appErr, ok := AsAppError(wrapped)
	assert.True(t, ok)
	assert.Equal(t, CodeDuplicate, appErr.Code)
	assert.Equal(t, http.StatusConflict, GetHTTPStatus(wrapped))
	assert.Equal(t, "KG", appErr.Details["value"])
}

func TestGetHTTPStatus_PlainError(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, GetHTTPStatus(errors.New("boom")))
}

func TestHasCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code string
		want bool
	}{
		{"form closed", NewFormClosed("unit"), CodeFormClosed, true},
		{"in flight", NewFormInFlight("unit"), CodeFormInFlight, true},
		{"other code", NewFormInFlight("unit"), CodeFormClosed, false},
		{"not found", NewNotFound("warehouse", "x"), CodeNotFound, true},
		{"plain", errors.New("x"), CodeNotFound, false},
		{"nil", nil, CodeNotFound, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HasCode(tt.err, tt.code))
		})
	}
}

func TestError_IncludesCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := NewDatabase(cause)

	assert.Contains(t, err.Error(), "connection reset")
	assert.ErrorIs(t, err, cause)
}

func TestWithDetail_InitializesMap(t *testing.T) {
	err := NewValidation("trName is required").WithDetail("field", "trName")
	assert.Equal(t, "trName", err.Details["field"])
}
