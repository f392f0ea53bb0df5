package apperr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"Gin_memory_redis_rental_catalog/apperr"
)

func Test_KindsMapToStatus(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		kind   apperr.Kind
		status int
	}{
		{"validation", apperr.Validation("bad"), apperr.KindValidation, http.StatusBadRequest},
		{"not_found", apperr.NotFound("missing"), apperr.KindNotFound, http.StatusNotFound},
		{"conflict", apperr.Conflict("taken"), apperr.KindConflict, http.StatusConflict},
		{"unexpected", apperr.Unexpected(errors.New("boom")), apperr.KindUnexpected, http.StatusInternalServerError},
		{"plain_error", errors.New("boom"), apperr.KindUnexpected, http.StatusInternalServerError},
		{"wrapped", fmt.Errorf("ctx: %w", apperr.Conflict("taken")), apperr.KindConflict, http.StatusConflict},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.kind, apperr.KindOf(tc.err))
			assert.Equal(t, tc.status, apperr.StatusOf(tc.err))
		})
	}
}

func Test_Unexpected_KeepsCauseButHidesMessage(t *testing.T) {
	cause := errors.New("connection reset")
	err := apperr.Unexpected(cause)

	assert.Equal(t, "internal server error", err.Error())
	assert.ErrorIs(t, err, cause)
}
