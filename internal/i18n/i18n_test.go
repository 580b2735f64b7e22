package i18n

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestTFallsBackToDefaultLocale(t *testing.T) {
	if got := T(LocaleEN, "error.cart_empty"); got != "Your cart is empty." {
		t.Fatalf("unexpected en message: %s", got)
	}
	if got := T("fr", "error.cart_empty"); got != catalog[LocaleVI]["error.cart_empty"] {
		t.Fatalf("unknown locale should fall back to vi, got: %s", got)
	}
	if got := T(LocaleVI, "error.no_such_key"); got != "error.no_such_key" {
		t.Fatalf("missing key should return the key, got: %s", got)
	}
}

func TestSprintfInsufficientStockMessage(t *testing.T) {
	got := Sprintf(LocaleVI, "error.insufficient_stock", "Dell XPS 13", 2)
	want := "Sản phẩm \"Dell XPS 13\" chỉ còn lại 2 sản phẩm trong kho. Vui lòng giảm số lượng."
	if got != want {
		t.Fatalf("unexpected message:\n got=%s\nwant=%s", got, want)
	}

	en := Sprintf(LocaleEN, "error.insufficient_stock", "Dell XPS 13", 2)
	if en != "Only 2 units of \"Dell XPS 13\" are left in stock. Please lower the quantity." {
		t.Fatalf("unexpected en message: %s", en)
	}
}

func TestResolveLocale(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name     string
		query    string
		header   string
		expected string
	}{
		{"default", "", "", LocaleVI},
		{"query_wins", "lang=en", "vi", LocaleEN},
		{"header_en_us", "", "en-US,en;q=0.9", LocaleEN},
		{"header_vi", "", "vi-VN", LocaleVI},
		{"unsupported", "lang=ja", "ja-JP", LocaleVI},
	}
	for _, tc := range cases {
		req := httptest.NewRequest("GET", "/?"+tc.query, nil)
		if tc.header != "" {
			req.Header.Set("Accept-Language", tc.header)
		}
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = req
		if got := ResolveLocale(c); got != tc.expected {
			t.Fatalf("%s: expected %s, got %s", tc.name, tc.expected, got)
		}
	}
}
