package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	authdomain "github.com/mrigajana-makstark/makstarkrepo2/internal/auth/domain"
	"github.com/mrigajana-makstark/makstarkrepo2/internal/observability/logger"
	"go.uber.org/zap"
)

type loginRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	Username    string `json:"username"`
	Role        string `json:"role"`
}

// Login is the JSON credential endpoint used by the dashboard itself.
func (s *Server) Login(c *gin.Context) {
	if !s.limiter.Allow(c.ClientIP()) {
		AbortWithError(c, ErrTooManyRequests)
		return
	}

	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	identifier := strings.TrimSpace(req.Email)
	if identifier == "" {
		identifier = strings.TrimSpace(req.Username)
	}
	if identifier == "" || req.Password == "" {
		AbortWithError(c, newValidationError("email", "required", "Email and password are required"))
		return
	}

	ctx := c.Request.Context()
	logger.FromContext(ctx).Debug("login attempt",
		zap.Any("payload", logger.MaskJSON(map[string]any{
			"email":    req.Email,
			"username": req.Username,
			"password": req.Password,
		})),
	)

	user, err := s.auth.Login(ctx, identifier, req.Password)
	if err != nil {
		s.audit.Record(ctx, nil, "auth.login_failed", "user", nil, map[string]any{
			"identifier": identifier,
		})
		AbortWithError(c, err)
		return
	}

	signed, err := s.issuer.Sign(user.Username, user.Role)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	actor := user.Username
	s.audit.Record(ctx, &actor, "auth.login", "user", &actor, map[string]any{
		"role": user.Role,
	})
	c.JSON(http.StatusOK, loginResponse{
		AccessToken: signed,
		TokenType:   "bearer",
		Username:    user.Username,
		Role:        user.Role,
	})
}

// TokenLogin is the form-encoded variant kept for OAuth2-style tooling.
// It reports bad credentials as a 400 rather than a 401, which is what
// its callers expect.
func (s *Server) TokenLogin(c *gin.Context) {
	if !s.limiter.Allow(c.ClientIP()) {
		AbortWithError(c, ErrTooManyRequests)
		return
	}

	identifier := strings.TrimSpace(c.PostForm("username"))
	password := c.PostForm("password")
	if identifier == "" || password == "" {
		AbortWithError(c, newValidationError("username", "required", "Username and password are required"))
		return
	}

	user, err := s.auth.Login(c.Request.Context(), identifier, password)
	if err != nil {
		if errors.Is(err, authdomain.ErrInvalidCredentials) {
			AbortWithError(c, newValidationError("username", "invalid_credentials", "Incorrect username or password"))
			return
		}
		AbortWithError(c, err)
		return
	}

	signed, err := s.issuer.Sign(user.Username, user.Role)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"access_token": signed, "token_type": "bearer"})
}

// Me resolves the caller's identity from the bearer token. Demo tokens
// short-circuit to a canned admin identity without touching the store.
func (s *Server) Me(c *gin.Context) {
	raw := bearerToken(c)
	if raw == "" {
		AbortWithError(c, ErrUnauthorized)
		return
	}
	if strings.HasPrefix(raw, s.cfg.DemoTokenPrefix) {
		c.JSON(http.StatusOK, gin.H{"username": "admin", "role": "admin", "mode": "demo"})
		return
	}

	claims, err := s.issuer.Verify(raw)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, authdomain.Identity{Username: claims.Subject, Role: claims.Role})
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}
