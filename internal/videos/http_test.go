package videos

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupVideosRouter(stub *stubProvider) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterRoutes(r.Group("/videos"), stub)
	return r
}

func TestSearchHandler(t *testing.T) {
	t.Run("renders an empty array when every hit was filtered", func(t *testing.T) {
		r := setupVideosRouter(&stubProvider{page: &SearchPage{}})

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/videos/search?q=chess", nil))

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"videos":[]`)
		assert.NotContains(t, w.Body.String(), `"videos":null`)
	})

	t.Run("missing query returns 400", func(t *testing.T) {
		r := setupVideosRouter(&stubProvider{})

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/videos/search", nil))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("provider failure maps to 502", func(t *testing.T) {
		r := setupVideosRouter(&stubProvider{err: assert.AnError})

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/videos/search?q=chess", nil))
		assert.Equal(t, http.StatusBadGateway, w.Code)
	})
}
