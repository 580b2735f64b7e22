package router

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestKeyByIPAndJSONField(t *testing.T) {
	gin.SetMode(gin.TestMode)

	// 登录接口按 identifier 限流，邮箱与手机号两种标识
	cases := []struct {
		name  string
		field string
		body  string
		want  string
	}{
		{
			name:  "login_email_identifier",
			field: "identifier",
			body:  `{"identifier":" Khach@Example.com ","password":"x"}`,
			want:  "khach@example.com|1.2.3.4",
		},
		{
			name:  "login_phone_identifier",
			field: "identifier",
			body:  `{"identifier":"0912345678","password":"x"}`,
			want:  "0912345678|1.2.3.4",
		},
		{
			name:  "resend_email_field",
			field: "email",
			body:  `{"email":" Test@Example.com "}`,
			want:  "test@example.com|1.2.3.4",
		},
		{
			name:  "missing_field_falls_back_to_ip",
			field: "identifier",
			body:  `{"password":"x"}`,
			want:  "1.2.3.4",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(tc.body))
			c.Request.Header.Set("Content-Type", "application/json")
			c.Request.RemoteAddr = "1.2.3.4:5678"

			key := KeyByIPAndJSONField(tc.field)(c)
			if key != tc.want {
				t.Fatalf("key want %s got %s", tc.want, key)
			}

			// key 提取后请求体必须原样可读，否则后续绑定失败
			body, err := io.ReadAll(c.Request.Body)
			if err != nil {
				t.Fatalf("read body after key extraction failed: %v", err)
			}
			if string(body) != tc.body {
				t.Fatalf("request body should be restored, got %s", string(body))
			}
		})
	}
}

func TestRateLimitMiddlewareWithoutClient(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(RateLimitMiddleware(nil, RateLimitRule{WindowSeconds: 60, MaxRequests: 1}, KeyByIP))
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status want 200 got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"ok":true`) {
		t.Fatalf("expected handler response body, got %s", w.Body.String())
	}
}

func TestToInt64(t *testing.T) {
	cases := []struct {
		name  string
		input interface{}
		want  int64
		ok    bool
	}{
		{name: "int64", input: int64(10), want: 10, ok: true},
		{name: "int", input: int(11), want: 11, ok: true},
		{name: "uint8", input: uint8(12), want: 12, ok: true},
		{name: "float64", input: float64(13.9), want: 13, ok: true},
		{name: "string", input: "bad", want: 0, ok: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := toInt64(tc.input)
			if ok != tc.ok {
				t.Fatalf("ok want %v got %v", tc.ok, ok)
			}
			if got != tc.want {
				t.Fatalf("value want %d got %d", tc.want, got)
			}
		})
	}
}
