package router

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	handlershared "github.com/duomart-next/internal/http/handlers/shared"

	"github.com/gin-gonic/gin"
)

func newTestContext(method, target, body string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(method, target, strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Request.RemoteAddr = "1.2.3.4:5678"
	return c
}

func TestKeyByIPAndJSONFieldRestoresBody(t *testing.T) {
	c := newTestContext(http.MethodPost, "/api/v1/auth/login", `{"email":" Buyer@Example.com ","password":"x"}`)

	key := KeyByIPAndJSONField("email")(c)
	if key != "buyer@example.com|1.2.3.4" {
		t.Fatalf("key want buyer@example.com|1.2.3.4 got %s", key)
	}
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		t.Fatalf("read body failed: %v", err)
	}
	if !strings.Contains(string(body), "Buyer@Example.com") {
		t.Fatalf("request body should be restored, got %s", body)
	}
}

func TestKeyByIPAndJSONFieldFallsBackToIP(t *testing.T) {
	cases := map[string]string{
		"missing_field": `{"password":"x"}`,
		"non_string":    `{"username":42}`,
		"bad_json":      `{"username":`,
		"empty_body":    ``,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			c := newTestContext(http.MethodPost, "/api/v1/admin/login", body)
			if key := KeyByIPAndJSONField("username")(c); key != "1.2.3.4" {
				t.Fatalf("key want ip fallback got %s", key)
			}
		})
	}
}

func TestKeyByUserOrIP(t *testing.T) {
	c := newTestContext(http.MethodGet, "/api/v1/public/products/1/price", "")
	if key := KeyByUserOrIP(c); key != "ip:1.2.3.4" {
		t.Fatalf("guest key want ip:1.2.3.4 got %s", key)
	}
	c.Set(handlershared.ContextKeyUserID, uint(7))
	if key := KeyByUserOrIP(c); key != "user:7" {
		t.Fatalf("user key want user:7 got %s", key)
	}
}

func TestRateLimitKeyPrefix(t *testing.T) {
	c := newTestContext(http.MethodGet, "/api/v1/public/products/1/price", "")
	if key := rateLimitKey(c, "dm:rate:resolve", func(*gin.Context) string { return " " }); key != "dm:rate:resolve:1.2.3.4" {
		t.Fatalf("blank key should fall back to ip, got %s", key)
	}
	if key := rateLimitKey(c, "", KeyByUserOrIP); key != "ip:1.2.3.4" {
		t.Fatalf("unprefixed key got %s", key)
	}
}

func TestRateLimitMiddlewarePassesWithoutRedis(t *testing.T) {
	gin.SetMode(gin.TestMode)
	for _, rule := range []RateLimitRule{
		{WindowSeconds: 60, MaxRequests: 1},
		{WindowSeconds: 0, MaxRequests: 1, FailOpen: true},
	} {
		r := gin.New()
		r.Use(RateLimitMiddleware(nil, rule, KeyByIP))
		r.GET("/ping", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) })

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
		if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"ok":true`) {
			t.Fatalf("rule %+v should pass through, got %d %s", rule, w.Code, w.Body.String())
		}
		if w.Header().Get("X-RateLimit-Limit") != "" {
			t.Fatalf("no limit headers expected without redis")
		}
	}
}
