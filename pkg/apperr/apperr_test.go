package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{
			name: "Direct application error",
			err:  New(KindNotFound, "video not found"),
			want: KindNotFound,
		},
		{
			name: "Wrapped application error",
			err:  fmt.Errorf("toggle like: %w", New(KindForbidden, "not allowed")),
			want: KindForbidden,
		},
		{
			name: "Plain error",
			err:  errors.New("connection refused"),
			want: KindUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		kind   Kind
		status int
	}{
		{KindValidation, http.StatusBadRequest},
		{KindNotFound, http.StatusNotFound},
		{KindUnauthorized, http.StatusUnauthorized},
		{KindForbidden, http.StatusForbidden},
		{KindConflict, http.StatusConflict},
		{KindUnknown, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			assert.Equal(t, tt.status, HTTPStatus(New(tt.kind, "boom")))
		})
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("no rows")
	err := Wrap(KindNotFound, cause, "user %s not found", "abc")

	assert.True(t, errors.Is(err, cause))
	assert.True(t, IsNotFound(err))
	assert.Contains(t, err.Error(), "user abc not found")
}

func TestMessageHidesInternalErrors(t *testing.T) {
	assert.Equal(t, "internal server error", Message(errors.New("pq: deadlock detected")))
	assert.Equal(t, "channel not found", Message(New(KindNotFound, "channel not found")))
}
