package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/skylume/user-service/internal/adapters/transport/http/dto"
	"github.com/skylume/user-service/internal/adapters/transport/http/middleware"
	authsvc "github.com/skylume/user-service/internal/app/auth/service"
	profilesvc "github.com/skylume/user-service/internal/app/profile/service"
	customErrors "github.com/skylume/user-service/internal/domain/user/errors"
	"github.com/skylume/user-service/internal/domain/user/token"
)

type Handler struct {
	auth    authsvc.Service
	profile profilesvc.Service
	tokens  token.Issuer
	log     *zap.Logger
}

func NewHandler(auth authsvc.Service, profile profilesvc.Service, tokens token.Issuer, log *zap.Logger) *Handler {
	return &Handler{auth: auth, profile: profile, tokens: tokens, log: log}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", h.register)
		authGroup.POST("/login", h.login)
		authGroup.POST("/refresh", h.refresh)
	}

	requireAuth := middleware.RequireAuth(h.tokens,
		middleware.BearerHeaderExtractor{},
		middleware.CookieExtractor{Name: "access_token"},
	)
	userGroup := r.Group("/user", requireAuth)
	{
		userGroup.POST("/:id/upload-profile-picture", h.uploadProfilePicture(http.StatusCreated))
		userGroup.PUT("/:id/update-profile-picture", h.uploadProfilePicture(http.StatusOK))
		userGroup.GET("/:id/profile-picture", h.getProfilePicture)
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "time": time.Now().Unix()})
	})
}

func (h *Handler) register(c *gin.Context) {
	var body dto.RegisterDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.auth.Register(c.Request.Context(), body)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

func (h *Handler) login(c *gin.Context) {
	var body dto.LoginDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, pair, err := h.auth.Login(c.Request.Context(), body)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.LoginResponse{
		User:         user,
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

func (h *Handler) refresh(c *gin.Context) {
	var body dto.RefreshDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	pair, err := h.auth.Refresh(c.Request.Context(), body)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.TokenPairResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresIn:    int(pair.AccessTTL.Seconds()),
	})
}

func (h *Handler) uploadProfilePicture(successStatus int) gin.HandlerFunc {
	return func(c *gin.Context) {
		ident, ok := middleware.IdentityFrom(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing identity"})
			return
		}

		userID, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
			return
		}

		file, header, err := c.Request.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "provide a profile picture"})
			return
		}
		defer file.Close()

		user, err := h.profile.UploadProfilePicture(c.Request.Context(), ident, userID, header.Filename, header.Size, file)
		if err != nil {
			h.handleError(c, err)
			return
		}
		c.JSON(successStatus, user)
	}
}

func (h *Handler) getProfilePicture(c *gin.Context) {
	ident, ok := middleware.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing identity"})
		return
	}

	userID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	url, err := h.profile.GetProfilePicture(c.Request.Context(), ident, userID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ProfilePictureResponse{URL: url})
}

// handleError maps domain faults to statuses; anything unknown is logged and
// surfaced as a bare 500.
func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case customErrors.IsInvalidArgument(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case customErrors.IsInvalidCredentials(err):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
	case customErrors.IsInvalidToken(err):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
	case customErrors.IsAlreadyExists(err):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case customErrors.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		h.log.Error("unhandled service error", zap.Error(err), zap.String("path", c.Request.URL.Path))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
