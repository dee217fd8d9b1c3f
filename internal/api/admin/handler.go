package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/liliang-cn/agribot/internal/api/render"
	"github.com/liliang-cn/agribot/internal/service"
)

// Handler handles admin API requests
type Handler struct {
	adminService *service.AdminService
}

// NewHandler creates a new admin handler
func NewHandler(adminService *service.AdminService) *Handler {
	return &Handler{adminService: adminService}
}

// RegisterRoutes registers admin routes
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/stats", h.GetStats)
	r.GET("/knowledge", h.Knowledge)
	r.PUT("/connectivity", h.SetConnectivity)
}

type connectivityRequest struct {
	Online *bool `json:"online" binding:"required"`
}

func (h *Handler) GetStats(c *gin.Context) {
	stats, err := h.adminService.GetStats(c.Request.Context())
	if err != nil {
		render.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

func (h *Handler) Knowledge(c *gin.Context) {
	entries := h.adminService.Knowledge(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"entries": entries, "total": len(entries)})
}

// SetConnectivity forces the online flag, e.g. to demo offline mode
func (h *Handler) SetConnectivity(c *gin.Context) {
	var req connectivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		render.BadRequest(c, err)
		return
	}

	online := h.adminService.SetOnline(c.Request.Context(), *req.Online)
	c.JSON(http.StatusOK, gin.H{"online": online})
}
