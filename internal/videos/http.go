package videos

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

type HTTPHandler struct {
	provider Provider
}

func RegisterRoutes(rg *gin.RouterGroup, provider Provider) {
	h := &HTTPHandler{provider: provider}

	rg.GET("/search", h.search)
	rg.GET("/:id", h.video)
}

func (h *HTTPHandler) search(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "query required"})
		return
	}

	page, err := h.provider.Search(c.Request.Context(), query, c.Query("page_token"))
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"ok": false, "error": "catalog unavailable"})
		return
	}

	items := page.Videos
	if items == nil {
		items = []Video{}
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":              true,
		"videos":          items,
		"next_page_token": page.NextPageToken,
	})
}

func (h *HTTPHandler) video(c *gin.Context) {
	v, err := h.provider.Video(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrVideoNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "video not found"})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"ok": false, "error": "catalog unavailable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "video": v})
}
