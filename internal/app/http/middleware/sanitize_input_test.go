package middleware

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func sanitizeTestRouter(captured *map[string]interface{}) *gin.Engine {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.POST("/echo", SanitizeAndCleanInputMiddleware(), func(c *gin.Context) {
		buf, _ := io.ReadAll(c.Request.Body)
		_ = json.Unmarshal(buf, captured)
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	return r
}

func TestSanitizeStripsMarkupFromStrings(t *testing.T) {
	var captured map[string]interface{}
	r := sanitizeTestRouter(&captured)

	body := `{"title": "<script>alert(1)</script>My Novel", "word_count": 42}`
	req, _ := http.NewRequest(http.MethodPost, "/echo", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "My Novel", captured["title"])
	// non-string fields pass through untouched
	assert.Equal(t, float64(42), captured["word_count"])
}

func TestSanitizeCleansStringArrayElements(t *testing.T) {
	var captured map[string]interface{}
	r := sanitizeTestRouter(&captured)

	body := `{"genres": ["Fantasy", "<b>Horror</b>"]}`
	req, _ := http.NewRequest(http.MethodPost, "/echo", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []interface{}{"Fantasy", "Horror"}, captured["genres"])
}

func TestSanitizeRejectsMalformedJSON(t *testing.T) {
	var captured map[string]interface{}
	r := sanitizeTestRouter(&captured)

	req, _ := http.NewRequest(http.MethodPost, "/echo", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
