package auth

import (
	"context"
	"crypto/subtle"
	"net/http"

	autherrors "github.com/Thomas-Sunil/newhrms/internal/auth/errors"
	"github.com/Thomas-Sunil/newhrms/internal/shared/apperror"
	platform "github.com/Thomas-Sunil/newhrms/internal/shared/request"
	"github.com/Thomas-Sunil/newhrms/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const BootstrapTokenHeader = "X-Bootstrap-Token"

type Handler struct {
	service        Service
	bootstrapToken string
	secureCookies  bool
	logger         *zap.Logger
}

func NewHandler(s Service, bootstrapToken string, secureCookies bool, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("auth.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.handler")
	}
	return &Handler{
		service:        s,
		bootstrapToken: bootstrapToken,
		secureCookies:  secureCookies,
		logger:         l,
	}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("auth request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", err.Error())
		return
	}

	clientType := platform.ResolveClientType(c.GetHeader("X-Client-Type"), c.GetHeader("User-Agent"))

	token, refreshToken, userResp, err := h.service.Login(c.Request.Context(), req.Login, req.Password)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	if platform.IsWebClient(clientType) {
		h.setTokenCookies(c, token, refreshToken)
	}

	response.Success(c, http.StatusOK, gin.H{
		"user":          userResp,
		"access_token":  token,
		"refresh_token": refreshToken,
	}, nil)
}

func (h *Handler) Me(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized", nil)
		return
	}

	userResp, err := h.service.GetMe(c.Request.Context(), userID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, userResp, nil)
}

func (h *Handler) Logout(c *gin.Context) {
	h.clearTokenCookies(c)
	response.Success(c, http.StatusOK, "Logout success.", nil)
}

func (h *Handler) RefreshToken(c *gin.Context) {
	clientType := platform.ResolveClientType(c.GetHeader("X-Client-Type"), c.GetHeader("User-Agent"))
	isWeb := platform.IsWebClient(clientType)

	var refreshToken string
	if isWeb {
		var err error
		refreshToken, err = c.Cookie("refresh_token")
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "NO_REFRESH_TOKEN", "Missing refresh token", nil)
			return
		}
	} else {
		var req struct {
			RefreshToken string `json:"refresh_token" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Refresh token is required", nil)
			return
		}
		refreshToken = req.RefreshToken
	}

	newAccess, newRefresh, userResp, err := h.service.RefreshToken(c.Request.Context(), refreshToken)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	if isWeb {
		h.setTokenCookies(c, newAccess, newRefresh)
	}

	response.Success(c, http.StatusOK, gin.H{
		"user":          userResp,
		"access_token":  newAccess,
		"refresh_token": newRefresh,
	}, nil)
}

// LookupUsername resolves a username to the email used for sign-in.
func (h *Handler) LookupUsername(c *gin.Context) {
	resp, err := h.service.LookupUsername(c.Request.Context(), c.Query("username"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) BootstrapCEO(c *gin.Context) {
	h.bootstrap(c, h.service.BootstrapCEO)
}

func (h *Handler) BootstrapHR(c *gin.Context) {
	h.bootstrap(c, h.service.BootstrapHR)
}

func (h *Handler) bootstrap(c *gin.Context, run func(ctx context.Context, req BootstrapRequest) (BootstrapResponse, error)) {
	if err := h.checkBootstrapToken(c.GetHeader(BootstrapTokenHeader)); err != nil {
		h.writeServiceError(c, err)
		return
	}

	var req BootstrapRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", err.Error())
			return
		}
	}

	resp, err := run(c.Request.Context(), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	status := http.StatusOK
	if resp.Created {
		status = http.StatusCreated
	}
	h.logger.Info("bootstrap completed", zap.String("username", resp.Username), zap.Bool("created", resp.Created))
	response.Success(c, status, resp, nil)
}

func (h *Handler) checkBootstrapToken(got string) error {
	if h.bootstrapToken == "" {
		return autherrors.ErrBootstrapDisabled
	}
	if subtle.ConstantTimeCompare([]byte(got), []byte(h.bootstrapToken)) != 1 {
		return autherrors.ErrBootstrapForbidden
	}
	return nil
}

func (h *Handler) setTokenCookies(c *gin.Context, access, refresh string) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     "access_token",
		Value:    access,
		Path:     "/",
		MaxAge:   int(AccessTokenTTL.Seconds()),
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     "refresh_token",
		Value:    refresh,
		Path:     "/",
		MaxAge:   int(RefreshTokenTTL.Seconds()),
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *Handler) clearTokenCookies(c *gin.Context) {
	for _, name := range []string{"access_token", "refresh_token"} {
		http.SetCookie(c.Writer, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			Secure:   h.secureCookies,
			SameSite: http.SameSiteLaxMode,
		})
	}
}
