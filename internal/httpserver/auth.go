package httpserver

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"dsignme/internal/domain"
	accountsvc "dsignme/internal/service/account"
)

type verifyRequest struct {
	Token string `json:"token"`
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type resetPasswordRequest struct {
	Email       string `json:"email"`
	NewPassword string `json:"newPassword"`
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if len(header) > 7 && strings.EqualFold(header[:7], "Bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return ""
}

// requireToken rejects requests without a live provisioned bearer token.
func requireToken(tokens TokenValidator, logger *logrus.Entry) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid token"})
			return
		}
		meta, err := tokens.Validate(c.Request.Context(), token)
		if err != nil {
			if !errors.Is(err, domain.ErrUnauthorized) {
				logger.WithError(err).Error("validate token")
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to validate token"})
				return
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}
		c.Set("token_label", meta.Label)
		c.Set("token_user", meta.UserID)
		c.Next()
	}
}

// verifyToken answers whether a token is live. The token comes from the
// Authorization header or a {"token": ...} body.
func (h *handlers) verifyToken(c *gin.Context) {
	token := bearerToken(c)
	if token == "" {
		var req verifyRequest
		if err := c.ShouldBindJSON(&req); err == nil {
			token = strings.TrimSpace(req.Token)
		}
	}
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"valid": false, "error": "Token is required"})
		return
	}
	if _, err := h.deps.Tokens.Validate(c.Request.Context(), token); err != nil {
		if !errors.Is(err, domain.ErrUnauthorized) {
			h.respondError(c, err, "Token not found", "Failed to verify token")
			return
		}
		c.JSON(http.StatusUnauthorized, gin.H{"valid": false, "error": "Invalid or expired token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"valid": true})
}

func (h *handlers) register(c *gin.Context) {
	if !h.allowRegistration {
		c.JSON(http.StatusForbidden, gin.H{"error": "Registration is disabled"})
		return
	}
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Email and password are required")
		return
	}
	u, err := h.deps.AccountSvc.Register(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			c.JSON(http.StatusConflict, gin.H{"error": "User with this email already exists"})
			return
		}
		h.respondError(c, err, "User not found", "Failed to register user")
		return
	}
	respondData(c, http.StatusCreated, "User created successfully", gin.H{"email": u.Email})
}

func (h *handlers) login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Email and password are required")
		return
	}
	token, err := h.deps.AccountSvc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, accountsvc.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
			return
		}
		h.respondError(c, err, "User not found", "Failed to log in")
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}

// resetPassword changes the password of the user owning the bearer token.
func (h *handlers) resetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "New password is required")
		return
	}
	err := h.deps.AccountSvc.ResetPassword(c.Request.Context(), c.GetString("token_user"), req.Email, req.NewPassword)
	if err != nil {
		if errors.Is(err, accountsvc.ErrForbidden) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Cannot reset password for another user"})
			return
		}
		h.respondError(c, err, "User not found", "Failed to reset password")
		return
	}
	respondMessage(c, "Password reset successfully")
}
