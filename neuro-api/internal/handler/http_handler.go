package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/weiawesome/neurolab/neuro-api/internal/domain"
	"github.com/weiawesome/neurolab/neuro-api/internal/service"
	"github.com/weiawesome/neurolab/pkg/log"
	"github.com/weiawesome/neurolab/pkg/middleware"
	"github.com/weiawesome/neurolab/pkg/response"
)

// Response messages.
const (
	MsgNoMessage      = "No message provided"
	MsgChatFailed     = "An error occurred while processing the message"
	MsgProfileUpdated = "Profile updated successfully"
	MsgUserCreated    = "User registered successfully"
	MsgEmailTaken     = "Email already registered"
)

// Handler handles HTTP requests for the mock backend.
type Handler struct {
	chat          service.ChatService
	dashboard     service.DashboardService
	profile       service.ProfileService
	account       service.AccountService
	tests         service.TestService
	defaultUserID string
}

// NewHandler creates a new HTTP handler.
func NewHandler(
	chat service.ChatService,
	dashboard service.DashboardService,
	profile service.ProfileService,
	account service.AccountService,
	tests service.TestService,
	defaultUserID string,
) *Handler {
	return &Handler{
		chat:          chat,
		dashboard:     dashboard,
		profile:       profile,
		account:       account,
		tests:         tests,
		defaultUserID: defaultUserID,
	}
}

// RegisterRoutes registers all routes.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", h.Health)

	api := r.Group("/api")
	{
		api.POST("/chat", h.Chat)
		api.GET("/chat/history", h.ChatHistory)
		api.GET("/chat/history/:id", h.ChatDetail)

		api.GET("/analytics", h.Analytics)
		api.GET("/home", h.Home)
		api.GET("/brain/live", h.LiveBrainData)

		api.GET("/tests", h.ListTests)
		api.GET("/tests/:id", h.GetTest)

		api.POST("/signup", h.Signup)

		profile := api.Group("/profile")
		profile.Use(middleware.Actor(h.defaultUserID))
		{
			profile.GET("", h.GetProfile)
			profile.POST("/update", h.UpdateProfile)
		}
	}
}

// Health reports liveness.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Chat answers a chat message.
func (h *Handler) Chat(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.Ctx(ctx)

	var req domain.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		l.Warn().Err(err).Msg("invalid chat request")
		response.BadRequest(c, MsgNoMessage)
		return
	}

	reply, err := h.chat.Reply(ctx, req.Message)
	if err != nil {
		if errors.Is(err, service.ErrEmptyMessage) {
			response.BadRequest(c, MsgNoMessage)
			return
		}
		if ctx.Err() != nil {
			l.Warn().Err(err).Msg("chat request abandoned by client")
			return
		}
		l.Error().Err(err).Msg("chat reply failed")
		response.InternalError(c, MsgChatFailed)
		return
	}

	response.OK(c, reply)
}

// ChatHistory lists stored conversations.
func (h *Handler) ChatHistory(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.Ctx(ctx)

	history, err := h.chat.History(ctx)
	if err != nil {
		l.Error().Err(err).Msg("list chat history failed")
		response.InternalError(c, "failed to load chat history")
		return
	}
	if history == nil {
		history = []domain.ChatHistorySummary{}
	}

	response.OK(c, history)
}

// ChatDetail returns one stored conversation.
func (h *Handler) ChatDetail(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.Ctx(ctx)
	id := c.Param("id")

	detail, err := h.chat.Detail(ctx, id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			response.NotFound(c, "chat not found")
			return
		}
		l.Error().Err(err).Str(log.FieldChatID, id).Msg("get chat failed")
		response.InternalError(c, "failed to load chat")
		return
	}

	response.OK(c, detail)
}

// Analytics returns the analytics snapshot.
func (h *Handler) Analytics(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.Ctx(ctx)

	snapshot, err := h.dashboard.Analytics(ctx)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			response.NotFound(c, "analytics not available")
			return
		}
		if ctx.Err() != nil {
			l.Warn().Err(err).Msg("analytics request abandoned by client")
			return
		}
		l.Error().Err(err).Msg("get analytics failed")
		response.InternalError(c, "failed to load analytics")
		return
	}

	response.OK(c, snapshot)
}

// Home returns the home dashboard.
func (h *Handler) Home(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.Ctx(ctx)

	home, err := h.dashboard.Home(ctx)
	if err != nil {
		l.Error().Err(err).Msg("get home failed")
		response.InternalError(c, "failed to load home data")
		return
	}

	response.OK(c, home)
}

// LiveBrainData returns the live brain series after advancing it.
func (h *Handler) LiveBrainData(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.Ctx(ctx)

	series, err := h.dashboard.LiveBrainData(ctx)
	if err != nil {
		l.Error().Err(err).Msg("get live data failed")
		response.InternalError(c, "failed to load live data")
		return
	}

	response.OK(c, series)
}

// ListTests lists recorded test sessions, filtered by ?q=.
func (h *Handler) ListTests(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.Ctx(ctx)

	results, err := h.tests.List(ctx, c.Query("q"))
	if err != nil {
		l.Error().Err(err).Msg("list tests failed")
		response.InternalError(c, "failed to load tests")
		return
	}
	if results == nil {
		results = []domain.TestResult{}
	}

	response.OK(c, results)
}

// GetTest returns one recorded test session.
func (h *Handler) GetTest(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.Ctx(ctx)
	id := c.Param("id")

	result, err := h.tests.Get(ctx, id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			response.NotFound(c, "test not found")
			return
		}
		l.Error().Err(err).Str("test_id", id).Msg("get test failed")
		response.InternalError(c, "failed to load test")
		return
	}

	response.OK(c, result)
}

// Signup registers a new account.
func (h *Handler) Signup(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.Ctx(ctx)

	var req domain.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		l.Warn().Err(err).Msg("invalid signup request")
		response.BadRequest(c, service.MsgMissingFields)
		return
	}

	user, err := h.account.Signup(ctx, &req)
	if err != nil {
		var vErr *service.ValidationError
		switch {
		case errors.As(err, &vErr):
			response.BadRequest(c, vErr.Message)
		case errors.Is(err, service.ErrEmailExists):
			response.Conflict(c, MsgEmailTaken)
		default:
			l.Error().Err(err).Msg("signup failed")
			response.InternalError(c, "failed to register user")
		}
		return
	}

	response.Created(c, domain.SignupResponse{
		Success: true,
		Message: MsgUserCreated,
		User:    *user,
	})
}

// GetProfile returns the acting user's profile.
func (h *Handler) GetProfile(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.Ctx(ctx)
	userID := middleware.GetUserID(c)

	profile, err := h.profile.GetProfile(ctx, userID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			response.NotFound(c, "profile not found")
			return
		}
		l.Error().Err(err).Str(log.FieldUserID, userID).Msg("get profile failed")
		response.InternalError(c, "failed to load profile")
		return
	}

	response.OK(c, profile)
}

// UpdateProfile updates the acting user's profile.
func (h *Handler) UpdateProfile(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.Ctx(ctx)
	userID := middleware.GetUserID(c)

	var req domain.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		l.Warn().Err(err).Msg("invalid profile update request")
		response.BadRequest(c, err.Error())
		return
	}

	profile, err := h.profile.UpdateProfile(ctx, userID, &req)
	if err != nil {
		var vErr *service.ValidationError
		switch {
		case errors.As(err, &vErr):
			response.BadRequest(c, vErr.Message)
		case errors.Is(err, service.ErrNotFound):
			response.NotFound(c, "profile not found")
		case errors.Is(err, service.ErrEmailExists):
			response.Conflict(c, MsgEmailTaken)
		default:
			l.Error().Err(err).Str(log.FieldUserID, userID).Msg("update profile failed")
			response.InternalError(c, "failed to update profile")
		}
		return
	}

	response.OK(c, domain.UpdateProfileResponse{
		Success: true,
		Message: MsgProfileUpdated,
		Profile: profile,
	})
}
