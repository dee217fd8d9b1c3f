package app

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/liliang-cn/agribot/internal/api/middleware"
	"github.com/liliang-cn/agribot/internal/api/render"
	"github.com/liliang-cn/agribot/internal/api/static"
	"github.com/liliang-cn/agribot/internal/domain"
	"github.com/liliang-cn/agribot/internal/i18n"
)

// Feature handlers

func (h *Handler) ListFeatures(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"features": h.svc.Features.List()})
}

func (h *Handler) RunFeature(c *gin.Context) {
	result, err := h.svc.Features.Run(c.Request.Context(), middleware.SessionID(c), c.Param("id"))
	if err != nil {
		render.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Consultation handlers

// ListSpecialists filters by the lang query parameter, falling back to the
// session language and then English
func (h *Handler) ListSpecialists(c *gin.Context) {
	lang := c.Query("lang")
	if lang == "" {
		if st, err := h.svc.Sessions.State(c.Request.Context(), middleware.SessionID(c)); err == nil {
			lang = st.Language
		}
	}
	if lang == "" {
		lang = i18n.DefaultLanguage
	}
	c.JSON(http.StatusOK, gin.H{"specialists": h.svc.Consultations.ListSpecialists(lang)})
}

func (h *Handler) SubmitConsultation(c *gin.Context) {
	var req domain.SubmitConsultationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		render.BadRequest(c, err)
		return
	}

	id := middleware.SessionID(c)
	st, err := h.svc.Sessions.State(c.Request.Context(), id)
	if err != nil {
		render.Error(c, err)
		return
	}

	consultation, err := h.svc.Consultations.Submit(c.Request.Context(), id, &req)
	if err != nil {
		render.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"consultation": consultation,
		"message":      i18n.T(i18n.KeyConsultSent, st.Language),
		"detail":       i18n.T(i18n.KeyConsultSentSub, st.Language),
	})
}

func (h *Handler) Consultations(c *gin.Context) {
	id := middleware.SessionID(c)
	if _, err := h.svc.Sessions.State(c.Request.Context(), id); err != nil {
		render.Error(c, err)
		return
	}

	list, err := h.svc.Consultations.History(c.Request.Context(), id)
	if err != nil {
		render.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"consultations": list})
}

// Branding handlers

type logoRequest struct {
	Logo string `json:"logo" binding:"required"`
}

// GetLogo serves the custom logo, the bundled one when none is set, or a
// redirect to the placeholder when the stored image is unusable
func (h *Handler) GetLogo(c *gin.Context) {
	logo, err := h.svc.Branding.Logo()
	if err != nil {
		h.logger.Warn("Stored logo is unusable", zap.Error(err))
		c.Redirect(http.StatusFound, h.svc.Branding.PlaceholderURL())
		return
	}
	if logo == nil {
		content, err := static.FS.ReadFile(static.DefaultLogo)
		if err != nil {
			render.Error(c, err)
			return
		}
		c.Data(http.StatusOK, static.DefaultLogoContentType, content)
		return
	}
	c.Data(http.StatusOK, logo.ContentType, logo.Data)
}

func (h *Handler) SetLogo(c *gin.Context) {
	var req logoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		render.BadRequest(c, err)
		return
	}
	if err := h.svc.Branding.SetLogo(req.Logo); err != nil {
		render.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "logo updated"})
}

func (h *Handler) ClearLogo(c *gin.Context) {
	if err := h.svc.Branding.ClearLogo(); err != nil {
		render.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "logo reset"})
}

// Realtime

// ServeWs upgrades the connection for a known session
func (h *Handler) ServeWs(c *gin.Context) {
	id := middleware.SessionID(c)
	if _, err := h.svc.Sessions.State(c.Request.Context(), id); err != nil {
		render.Error(c, err)
		return
	}
	if err := h.svc.Hub.ServeWs(c.Writer, c.Request, id); err != nil {
		h.logger.Warn("WebSocket upgrade failed", zap.String("session_id", id), zap.Error(err))
	}
}
