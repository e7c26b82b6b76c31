package dto

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/blueselfcheckout/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		code     string
		expected int
	}{
		{ErrCodeInternal, http.StatusInternalServerError},
		{ErrCodeValidation, http.StatusBadRequest},
		{ErrCodeBadRequest, http.StatusBadRequest},
		{ErrCodeInvalidJSON, http.StatusBadRequest},
		{ErrCodeTooLarge, http.StatusRequestEntityTooLarge},
		{ErrCodeNotFound, http.StatusNotFound},
		{ErrCodeConflict, http.StatusConflict},
		{ErrCodeTransactionFailure, http.StatusInternalServerError},
		{ErrCodeUnavailable, http.StatusServiceUnavailable},
		{"UNKNOWN_CODE", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetHTTPStatus(tt.code))
		})
	}
}

func TestNormalizeErrorCode(t *testing.T) {
	tests := []struct {
		input    string
		expected string
		status   int
	}{
		{shared.CodeValidation, ErrCodeValidation, http.StatusBadRequest},
		{shared.CodeNotFound, ErrCodeNotFound, http.StatusNotFound},
		{shared.CodeConflict, ErrCodeConflict, http.StatusConflict},
		{shared.CodeTransactionFailure, ErrCodeTransactionFailure, http.StatusInternalServerError},
		{ErrCodeNotFound, ErrCodeNotFound, http.StatusNotFound},
		{"CUSTOM_ERROR", "CUSTOM_ERROR", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			code := NormalizeErrorCode(tt.input)
			assert.Equal(t, tt.expected, code)
			assert.Equal(t, tt.status, GetHTTPStatus(code))
		})
	}
}

func TestErrorResponseJSON(t *testing.T) {
	resp := NewErrorResponseWithRequestID(ErrCodeValidation, "invalid slots", "req-1", "SALAD", "SODA")

	data, err := json.Marshal(resp)
	require.NoError(t, err)

	var body map[string]any
	require.NoError(t, json.Unmarshal(data, &body))
	assert.Equal(t, false, body["success"])
	assert.NotContains(t, body, "data")

	errMap := body["error"].(map[string]any)
	assert.Equal(t, ErrCodeValidation, errMap["code"])
	assert.Equal(t, "req-1", errMap["request_id"])
	assert.Equal(t, []any{"SALAD", "SODA"}, errMap["details"])
}

func TestSuccessResponseJSON(t *testing.T) {
	data, err := json.Marshal(NewSuccessResponse(map[string]int{"next_line_number": 3}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":true,"data":{"next_line_number":3}}`, string(data))
}
