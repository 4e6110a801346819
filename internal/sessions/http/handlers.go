package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nexview/nexview-backend/internal/auth"
	"github.com/nexview/nexview-backend/internal/sessions/domain"
	"github.com/nexview/nexview-backend/internal/sessions/service"
	userdomain "github.com/nexview/nexview-backend/internal/users/domain"
)

type Handler struct {
	svc *service.Service
}

func Register(rg *gin.RouterGroup, svc *service.Service) {
	h := &Handler{svc: svc}

	rg.POST("", h.create)
	rg.GET("", h.list)
	rg.GET("/:id", h.get)
	rg.DELETE("/:id", h.delete)
	rg.POST("/:id/videos", h.engage)
}

type createReq struct {
	ID        string    `json:"id"` // client-generated temporary id
	Title     string    `json:"title"`
	DailyGoal string    `json:"daily_goal"`
	EndsAt    time.Time `json:"ends_at"`
}

func (h *Handler) create(c *gin.Context) {
	var req createReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	session, err := h.svc.Create(c.Request.Context(), auth.UserEmail(c), domain.CreateSessionRequest{
		ClientID:  req.ID,
		Title:     req.Title,
		DailyGoal: req.DailyGoal,
		EndsAt:    req.EndsAt,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"ok": true, "session": session})
}

func (h *Handler) list(c *gin.Context) {
	items, err := h.svc.List(c.Request.Context(), auth.UserEmail(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "sessions": items})
}

func (h *Handler) get(c *gin.Context) {
	session, err := h.svc.Get(c.Request.Context(), auth.UserEmail(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "session": session})
}

func (h *Handler) delete(c *gin.Context) {
	err := h.svc.Delete(c.Request.Context(), auth.UserEmail(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

type engageReq struct {
	VideoID string `json:"video_id"`
	Action  string `json:"action"`
}

func (h *Handler) engage(c *gin.Context) {
	var req engageReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	res, err := h.svc.Engage(c.Request.Context(), auth.UserEmail(c),
		c.Param("id"), req.VideoID, domain.Action(req.Action))
	if err != nil {
		respondError(c, err)
		return
	}

	if !res.Changed {
		c.JSON(http.StatusOK, gin.H{
			"ok":      true,
			"changed": false,
			"message": "video already in history",
			"session": res.Session,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "changed": true, "session": res.Session})
}

func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidSession), errors.Is(err, domain.ErrInvalidAction):
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
	case errors.Is(err, userdomain.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "user not found"})
	case errors.Is(err, domain.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "session not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
	}
}
