package choices

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"storybuilder-app/internal/domain/writing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestGetChoices(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/choices", GetChoices)

	req, _ := http.NewRequest(http.MethodGet, "/choices", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Genres    []string `json:"genres"`
		MBTI      []string `json:"mbti"`
		Enneagram []string `json:"enneagram"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	assert.Equal(t, writing.GenreChoices, body.Genres)
	assert.Equal(t, writing.MBTIChoices, body.MBTI)
	assert.Equal(t, writing.EnneagramChoices, body.Enneagram)
}
