package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/blueselfcheckout/backend/internal/domain/shared"
	"github.com/blueselfcheckout/backend/internal/interfaces/http/dto"
	"github.com/blueselfcheckout/backend/internal/interfaces/http/middleware"
	"github.com/blueselfcheckout/backend/tests/testutil"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()
}

func decodeResponse(t *testing.T, body []byte) dto.Response {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(body, &resp))
	return resp
}

func TestBaseHandler_HandleError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		code    string
		message string
		details []string
	}{
		{
			name:    "validation",
			err:     shared.NewValidationError("accompaniment products not found", "SALAD"),
			status:  http.StatusBadRequest,
			code:    dto.ErrCodeValidation,
			message: "accompaniment products not found",
			details: []string{"SALAD"},
		},
		{
			name:    "not found",
			err:     shared.NewNotFoundError("order", 9),
			status:  http.StatusNotFound,
			code:    dto.ErrCodeNotFound,
			message: "order 9 not found",
		},
		{
			name:    "wrapped conflict",
			err:     fmt.Errorf("reconcile lines: %w", shared.NewConflictError("duplicate line", errors.New("unique"))),
			status:  http.StatusConflict,
			code:    dto.ErrCodeConflict,
			message: "duplicate line",
		},
		{
			name:    "transaction failure",
			err:     shared.NewTransactionFailure("commit failed", errors.New("conn reset")),
			status:  http.StatusInternalServerError,
			code:    dto.ErrCodeTransactionFailure,
			message: "commit failed",
		},
		{
			name:    "plain error",
			err:     errors.New("boom"),
			status:  http.StatusInternalServerError,
			code:    dto.ErrCodeInternal,
			message: "An unexpected error occurred",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tc := testutil.NewTestContext(t)
			tc.SetRequestID("req-9")

			h := &BaseHandler{}
			h.HandleError(tc.Context, tt.err)

			assert.Equal(t, tt.status, tc.ResponseCode())
			resp := decodeResponse(t, tc.ResponseBody())
			assert.False(t, resp.Success)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.code, resp.Error.Code)
			assert.Equal(t, tt.message, resp.Error.Message)
			assert.Equal(t, tt.details, resp.Error.Details)
			assert.Equal(t, "req-9", resp.Error.RequestID)
			assert.Equal(t, tt.code, tc.Context.GetString(middleware.ErrorCodeKey))
		})
	}

	t.Run("nil error writes nothing", func(t *testing.T) {
		tc := testutil.NewTestContext(t)
		(&BaseHandler{}).HandleError(tc.Context, nil)
		assert.Empty(t, tc.ResponseBody())
	})
}

func TestBaseHandler_BindError(t *testing.T) {
	type body struct {
		ItemCode string `json:"item_code" binding:"required"`
	}

	run := func(t *testing.T, limit int64, payload string) *httptest.ResponseRecorder {
		t.Helper()
		h := &BaseHandler{}
		router := gin.New()
		router.Use(middleware.RequestID(), middleware.BodyLimit(limit))
		router.POST("/test", func(c *gin.Context) {
			var req body
			if err := c.ShouldBindJSON(&req); err != nil {
				h.BindError(c, err)
				return
			}
			h.Success(c, req)
		})
		req := httptest.NewRequest(http.MethodPost, "/test", strings.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		req.ContentLength = -1
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	t.Run("validation", func(t *testing.T) {
		w := run(t, 1024, `{}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		resp := decodeResponse(t, w.Body.Bytes())
		assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)
		assert.Equal(t, []string{"item_code: This field is required"}, resp.Error.Details)
	})

	t.Run("malformed json", func(t *testing.T) {
		w := run(t, 1024, `{"item_code":`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, dto.ErrCodeInvalidJSON, decodeResponse(t, w.Body.Bytes()).Error.Code)
	})

	t.Run("oversized streaming body", func(t *testing.T) {
		w := run(t, 16, `{"item_code":"`+strings.Repeat("X", 64)+`"}`)
		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
		assert.Equal(t, dto.ErrCodeTooLarge, decodeResponse(t, w.Body.Bytes()).Error.Code)
	})
}

func TestBaseHandlerSuccessResponses(t *testing.T) {
	h := &BaseHandler{}

	tc := testutil.NewTestContext(t)
	h.Created(tc.Context, gin.H{"id": 1})
	assert.Equal(t, http.StatusCreated, tc.ResponseCode())
	testutil.AssertSuccessResponse(t, tc)

	tc = testutil.NewTestContext(t)
	h.NoContent(tc.Context)
	tc.Context.Writer.WriteHeaderNow()
	assert.Equal(t, http.StatusNoContent, tc.ResponseCode())
}

func TestParseID(t *testing.T) {
	for value, want := range map[string]bool{"7": true, "0": false, "-1": false, "abc": false, "": false} {
		tc := testutil.NewTestContext(t)
		tc.SetParam("id", value)
		_, ok := parseID(tc.Context, "id")
		assert.Equal(t, want, ok, value)
	}
}
