package app

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/liliang-cn/agribot/internal/api/middleware"
	"github.com/liliang-cn/agribot/internal/api/render"
	"github.com/liliang-cn/agribot/internal/domain"
	"github.com/liliang-cn/agribot/internal/i18n"
	"github.com/liliang-cn/agribot/internal/realtime"
	"github.com/liliang-cn/agribot/internal/service"
)

// Services are the collaborators of the farmer API
type Services struct {
	Sessions      *service.SessionService
	Chat          *service.ChatService
	Market        *service.MarketService
	Speech        *service.SpeechService
	Features      *service.FeatureService
	Consultations *service.ConsultationService
	Branding      *service.BrandingService
	Hub           *realtime.Hub
}

// Handler handles the farmer-facing API
type Handler struct {
	svc    Services
	logger *zap.Logger
}

// NewHandler creates a new handler
func NewHandler(svc Services, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{svc: svc, logger: logger}
}

// RegisterRoutes registers the API routes. Routes that act on a session
// require the session header.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/session", h.Login)
	r.GET("/languages", h.Languages)
	r.GET("/features", h.ListFeatures)
	r.GET("/specialists", h.ListSpecialists)
	r.GET("/branding/logo", h.GetLogo)

	s := r.Group("", middleware.RequireSession())
	{
		s.GET("/session", h.GetSession)
		s.DELETE("/session", h.Logout)
		s.PUT("/session/language", h.SetLanguage)
		s.PUT("/session/view", h.SetView)
		s.PUT("/session/mute", h.SetMuted)

		s.GET("/messages", h.Messages)
		s.POST("/chat", h.Chat)
		s.POST("/market", h.Market)

		s.POST("/messages/:id/speech", h.ToggleSpeech)
		s.GET("/speech", h.SpeechStatus)

		s.POST("/features/:id", h.RunFeature)
		s.POST("/consultations", h.SubmitConsultation)
		s.GET("/consultations", h.Consultations)
	}
}

// RegisterAdminRoutes registers the routes that change what every session
// sees. r must be guarded by the admin key.
func (h *Handler) RegisterAdminRoutes(r *gin.RouterGroup) {
	r.PUT("/branding/logo", h.SetLogo)
	r.DELETE("/branding/logo", h.ClearLogo)
}

// Session handlers

func (h *Handler) Login(c *gin.Context) {
	var req domain.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		render.BadRequest(c, err)
		return
	}

	st, err := h.svc.Sessions.Login(c.Request.Context(), &req)
	if err != nil {
		render.Error(c, err)
		return
	}

	c.Header(middleware.SessionHeader, st.SessionID)
	c.JSON(http.StatusCreated, domain.SessionResponse{State: st})
}

func (h *Handler) GetSession(c *gin.Context) {
	id := middleware.SessionID(c)
	st, err := h.svc.Sessions.State(c.Request.Context(), id)
	if err != nil {
		render.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, domain.SessionResponse{
		State:        st,
		Notification: h.svc.Consultations.Notification(id),
	})
}

func (h *Handler) Logout(c *gin.Context) {
	if err := h.svc.Sessions.Logout(c.Request.Context(), middleware.SessionID(c)); err != nil {
		render.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

func (h *Handler) SetLanguage(c *gin.Context) {
	var req domain.LanguageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		render.BadRequest(c, err)
		return
	}

	st, err := h.svc.Sessions.SetLanguage(c.Request.Context(), middleware.SessionID(c), req.Language)
	if err != nil {
		render.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, domain.SessionResponse{State: st})
}

func (h *Handler) SetView(c *gin.Context) {
	var req domain.ViewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		render.BadRequest(c, err)
		return
	}

	st, err := h.svc.Sessions.SetView(c.Request.Context(), middleware.SessionID(c), req.View)
	if err != nil {
		render.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, domain.SessionResponse{State: st})
}

func (h *Handler) SetMuted(c *gin.Context) {
	var req domain.MuteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		render.BadRequest(c, err)
		return
	}

	st, err := h.svc.Sessions.SetMuted(c.Request.Context(), middleware.SessionID(c), req.Muted)
	if err != nil {
		render.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, domain.SessionResponse{State: st})
}

func (h *Handler) Languages(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"languages": i18n.Languages})
}

// Conversation handlers

func (h *Handler) Messages(c *gin.Context) {
	messages, err := h.svc.Sessions.Messages(c.Request.Context(), middleware.SessionID(c))
	if err != nil {
		render.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": messages})
}

func (h *Handler) Chat(c *gin.Context) {
	var req domain.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		render.BadRequest(c, err)
		return
	}

	resp, err := h.svc.Chat.Send(c.Request.Context(), middleware.SessionID(c), &req)
	if err != nil {
		render.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) Market(c *gin.Context) {
	resp, err := h.svc.Market.Post(c.Request.Context(), middleware.SessionID(c))
	if err != nil {
		render.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Speech handlers

func (h *Handler) ToggleSpeech(c *gin.Context) {
	id := middleware.SessionID(c)
	st, err := h.svc.Sessions.State(c.Request.Context(), id)
	if err != nil {
		render.Error(c, err)
		return
	}

	if _, err := h.svc.Speech.Toggle(c.Request.Context(), id, c.Param("id"), st.Language); err != nil {
		render.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, h.svc.Speech.Status(id))
}

func (h *Handler) SpeechStatus(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Speech.Status(middleware.SessionID(c)))
}
