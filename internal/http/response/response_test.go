package response

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func recordResponse(t *testing.T, fn func(c *gin.Context)) Response {
	t.Helper()
	gin.SetMode(gin.TestMode)
	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = httptest.NewRequest("GET", "/", nil)
	fn(c)

	var resp Response
	if err := json.Unmarshal(recorder.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp
}

func TestErrorHelperCodes(t *testing.T) {
	cases := []struct {
		name     string
		fn       func(c *gin.Context)
		wantCode int
	}{
		{name: "bad_request", fn: func(c *gin.Context) { BadRequest(c, "bad") }, wantCode: CodeBadRequest},
		{name: "unauthorized", fn: func(c *gin.Context) { Unauthorized(c, "denied") }, wantCode: CodeUnauthorized},
		{name: "forbidden", fn: func(c *gin.Context) { Forbidden(c, "no access") }, wantCode: CodeForbidden},
		{name: "not_found", fn: func(c *gin.Context) { NotFound(c, "missing") }, wantCode: CodeNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := recordResponse(t, tc.fn)
			if resp.StatusCode != tc.wantCode {
				t.Fatalf("expected status code %d, got %d", tc.wantCode, resp.StatusCode)
			}
		})
	}
}

func TestErrorAttachesRequestID(t *testing.T) {
	resp := recordResponse(t, func(c *gin.Context) {
		c.Set("request_id", "req-123")
		Forbidden(c, "no access")
	})
	data, ok := resp.Data.(map[string]interface{})
	if !ok {
		t.Fatalf("expected data object, got %T", resp.Data)
	}
	if data["request_id"] != "req-123" {
		t.Fatalf("expected request id attached, got %v", data["request_id"])
	}
}
