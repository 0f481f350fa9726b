package dashboard

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"dsignme/internal/apiclient"
	"dsignme/internal/authgate"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Token    string `json:"token"`
	Redirect string `json:"redirect"`
}

// login signs in with credentials, or with an API token provisioned on the
// backend, and sets the session cookie.
func (h *handlers) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if req.Redirect == "" {
		req.Redirect = c.Query("redirect")
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	token := strings.TrimSpace(req.Token)
	if token == "" {
		if strings.TrimSpace(req.Email) == "" || req.Password == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Email and password are required"})
			return
		}
		var err error
		token, err = h.client.Login(ctx, strings.TrimSpace(req.Email), req.Password)
		if err != nil {
			status := statusOf(err)
			if status == http.StatusNotFound || status == http.StatusBadRequest {
				status = http.StatusUnauthorized
			}
			c.JSON(status, gin.H{"error": apiclient.FriendlyMessage(err, "Login failed")})
			return
		}
	}

	if !h.gate.Check(ctx, token) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
		return
	}
	h.gate.SetCookie(c, token)
	h.logger.Info("session started")
	c.JSON(http.StatusOK, gin.H{"message": "Login successful", "redirect": authgate.SafeRedirect(req.Redirect)})
}

func (h *handlers) logout(c *gin.Context) {
	h.signOut(c)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out", "redirect": authgate.LoginPath})
}

// signOut forgets everything tied to the request's session cookie.
func (h *handlers) signOut(c *gin.Context) {
	if token, err := c.Cookie(authgate.CookieName); err == nil && token != "" {
		h.store.Drop(token)
		h.gate.Forget(c.Request.Context(), token)
	}
	h.gate.ClearCookie(c)
}
