package ginmw_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/reoring/restcodec/example/petstore"
	_ "github.com/reoring/restcodec/example/petstore/json/reader"
	ginmw "github.com/reoring/restcodec/middleware/gin"
)

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/pets", ginmw.BindJSON[petstore.Pet](nil), func(c *gin.Context) {
		p, ok := ginmw.GetValue[petstore.Pet](c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.String(http.StatusOK, p.Name)
	})
	return r
}

func TestBindJSON(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/pets", strings.NewReader(`{"id":1,"name":"Rex","photoUrls":[]}`))
	rec := httptest.NewRecorder()
	newRouter().ServeHTTP(rec, req)
	if rec.Code != http.StatusOK || rec.Body.String() != "Rex" {
		t.Fatalf("unexpected response %d %q", rec.Code, rec.Body.String())
	}
}

func TestBindJSON_Failures(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/pets", strings.NewReader(`{"id":1,"name":"Rex","photoUrls":[],"id":2}`))
	rec := httptest.NewRecorder()
	newRouter().ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("want 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"message":"Repeated field name: id"`) {
		t.Fatalf("unexpected body %s", rec.Body.String())
	}
}
