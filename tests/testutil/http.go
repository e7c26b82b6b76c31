package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/blueselfcheckout/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// HTTPTestCase describes one call to a single handler and the envelope it
// should produce.
type HTTPTestCase struct {
	Name   string
	Method string
	Path   string
	// Params are set as gin path parameters.
	Params map[string]string
	// Body is sent as-is when it is a string, JSON-encoded otherwise.
	Body           any
	ExpectedStatus int
	// ExpectedCode is the envelope error code; empty expects success.
	ExpectedCode string
	Setup        func(t *testing.T, tc *TestContext)
	Validate     func(t *testing.T, tc *TestContext)
}

// RunHTTPTestCases runs each case as a subtest against handler.
func RunHTTPTestCases(t *testing.T, handler gin.HandlerFunc, cases []HTTPTestCase) {
	t.Helper()

	for _, tc := range cases {
		t.Run(tc.Name, func(t *testing.T) {
			RunHTTPTestCase(t, handler, tc)
		})
	}
}

// RunHTTPTestCase calls handler with a fresh gin context built from tc.
func RunHTTPTestCase(t *testing.T, handler gin.HandlerFunc, tc HTTPTestCase) {
	t.Helper()

	method := tc.Method
	if method == "" {
		method = http.MethodGet
	}
	path := tc.Path
	if path == "" {
		path = "/"
	}

	var body io.Reader
	if tc.Body != nil {
		body = requestBody(t, tc.Body)
	}
	req := httptest.NewRequest(method, path, body)
	if tc.Body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	c, engine := gin.CreateTestContext(w)
	c.Request = req
	for k, v := range tc.Params {
		c.Params = append(c.Params, gin.Param{Key: k, Value: v})
	}

	testCtx := &TestContext{Context: c, Recorder: w, Engine: engine}
	if tc.Setup != nil {
		tc.Setup(t, testCtx)
	}

	handler(c)

	if tc.ExpectedStatus != 0 {
		assert.Equal(t, tc.ExpectedStatus, w.Code, w.Body.String())
	}
	if tc.ExpectedCode != "" {
		AssertErrorResponse(t, testCtx, tc.ExpectedCode)
	} else if tc.ExpectedStatus >= http.StatusOK && tc.ExpectedStatus < http.StatusMultipleChoices && tc.ExpectedStatus != http.StatusNoContent {
		AssertSuccessResponse(t, testCtx)
	}

	if tc.Validate != nil {
		tc.Validate(t, testCtx)
	}
}

func requestBody(t *testing.T, v any) io.Reader {
	if s, ok := v.(string); ok {
		return strings.NewReader(s)
	}
	return ToJSONReader(t, v)
}

// JSONResponse parses the response body as a generic JSON object.
func JSONResponse(t *testing.T, tc *TestContext) map[string]any {
	t.Helper()

	var result map[string]any
	require.NoError(t, json.Unmarshal(tc.ResponseBody(), &result), "Failed to parse JSON response")
	return result
}

// Envelope parses the response body as the API envelope.
func Envelope(t *testing.T, tc *TestContext) dto.Response {
	t.Helper()

	var resp dto.Response
	require.NoError(t, json.Unmarshal(tc.ResponseBody(), &resp), "Failed to parse response envelope")
	return resp
}

// DataAs decodes the data member of a success envelope into T.
func DataAs[T any](t *testing.T, tc *TestContext) T {
	t.Helper()

	var envelope struct {
		Data T `json:"data"`
	}
	require.NoError(t, json.Unmarshal(tc.ResponseBody(), &envelope), "Failed to parse response data")
	return envelope.Data
}

// AssertSuccessResponse asserts the response is a success envelope.
func AssertSuccessResponse(t *testing.T, tc *TestContext) {
	t.Helper()

	resp := Envelope(t, tc)
	assert.True(t, resp.Success, "Expected success to be true")
	assert.Nil(t, resp.Error, "Expected no error")
}

// AssertErrorResponse asserts the response is an error envelope carrying
// expectedCode.
func AssertErrorResponse(t *testing.T, tc *TestContext, expectedCode string) *dto.ErrorInfo {
	t.Helper()

	resp := Envelope(t, tc)
	assert.False(t, resp.Success, "Expected success to be false")
	require.NotNil(t, resp.Error, "Expected error object in response")
	assert.Equal(t, expectedCode, resp.Error.Code, "Unexpected error code")
	return resp.Error
}

// ToJSONReader converts a value to a JSON io.Reader.
func ToJSONReader(t *testing.T, v any) io.Reader {
	t.Helper()

	data, err := json.Marshal(v)
	require.NoError(t, err, "Failed to marshal to JSON")
	return bytes.NewReader(data)
}
