package response

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestBuildPagination(t *testing.T) {
	cases := []struct {
		total    int64
		pageSize int
		want     int64
	}{
		{total: 0, pageSize: 20, want: 0},
		{total: 20, pageSize: 20, want: 1},
		{total: 21, pageSize: 20, want: 2},
		{total: 5, pageSize: 0, want: 0},
	}
	for _, tc := range cases {
		if got := BuildPagination(1, tc.pageSize, tc.total).TotalPage; got != tc.want {
			t.Fatalf("total=%d size=%d want %d pages got %d", tc.total, tc.pageSize, tc.want, got)
		}
	}
}

func TestErrorWithDataAttachesRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("request_id", "req-9")

	ErrorWithData(c, CodeBadRequest, "invalid", map[string]interface{}{"field": "min_quantity"})

	var resp struct {
		StatusCode int               `json:"status_code"`
		Data       map[string]string `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if resp.StatusCode != CodeBadRequest || resp.Data["request_id"] != "req-9" || resp.Data["field"] != "min_quantity" {
		t.Fatalf("unexpected response: %s", w.Body.String())
	}
}

func TestErrorWithoutRequestIDHasNullData(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Error(c, CodeNotFound, "missing")
	if got := w.Body.String(); got != `{"status_code":404,"msg":"missing","data":null}` {
		t.Fatalf("unexpected body: %s", got)
	}
}
