package i18n

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestNormalizeLocale(t *testing.T) {
	cases := map[string]string{
		"":        LocaleZhCN,
		"zh-CN":   LocaleZhCN,
		"zh_TW":   LocaleZhTW,
		"zh-HK":   LocaleZhTW,
		"en":      LocaleEnUS,
		"en-GB":   LocaleEnUS,
		"invalid": LocaleZhCN,
	}
	for input, want := range cases {
		if got := NormalizeLocale(input); got != want {
			t.Fatalf("NormalizeLocale(%q) want %s got %s", input, want, got)
		}
	}
}

func TestResolveLocaleFromRequest(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newContext := func(target, acceptLanguage string) *gin.Context {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest("GET", target, nil)
		if acceptLanguage != "" {
			c.Request.Header.Set("Accept-Language", acceptLanguage)
		}
		return c
	}

	if got := ResolveLocale(newContext("/?lang=en-US", "")); got != LocaleEnUS {
		t.Fatalf("query lang want en-US got %s", got)
	}
	if got := ResolveLocale(newContext("/", "zh-TW,zh;q=0.9,en;q=0.8")); got != LocaleZhTW {
		t.Fatalf("accept-language want zh-TW got %s", got)
	}
	if got := ResolveLocale(newContext("/?lang=zh-CN", "en-US")); got != LocaleZhCN {
		t.Fatalf("query lang should win over header, got %s", got)
	}
}

func TestMessagesCoverAllLocales(t *testing.T) {
	for key := range messages[DefaultLocale] {
		for _, locale := range supportedLocales {
			if !Has(locale, key) {
				t.Fatalf("missing %s translation for %s", locale, key)
			}
		}
	}
	if got := T(LocaleEnUS, "no.such.key"); got != "no.such.key" {
		t.Fatalf("unknown key should fall back to key, got %s", got)
	}
}

func TestRenderTraceArgs(t *testing.T) {
	got := Render(LocaleEnUS, "trace.bulk_extra_discount", []string{"2", "120", "882.00"})
	if got != "Bulk extra discount 2% for quantity 120, unit price 882.00" {
		t.Fatalf("unexpected en-US render: %s", got)
	}
	got = Render(LocaleZhCN, "trace.bulk_extra_discount", []string{"2", "120", "882.00"})
	if got != "数量 120 享批量额外优惠 2%，单价 882.00" {
		t.Fatalf("unexpected zh-CN render: %s", got)
	}
	if got := Render(LocaleEnUS, "recommendation.no_competition", nil); got != "No comparable products in this price band" {
		t.Fatalf("unexpected render without args: %s", got)
	}
}
