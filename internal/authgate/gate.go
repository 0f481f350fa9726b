// Package authgate guards admin routes with the session cookie issued at
// login and verified against the content API.
package authgate

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"dsignme/internal/logging"
)

const (
	CookieName = "auth_token"
	// CookieMaxAge matches the lifetime of an issued session token.
	CookieMaxAge = 24 * time.Hour
	DefaultTTL   = 5 * time.Minute

	// VerifyTimeout bounds one call to the Verifier.
	VerifyTimeout = 10 * time.Second

	LoginPath = "/login"
	HomePath  = "/dashboard"

	sessionKey = "authgate.session"
)

// Verifier checks a token with the authority that issued it. A nil error
// with false means the token was rejected.
type Verifier interface {
	Verify(ctx context.Context, token string) (bool, error)
}

// VerifierFunc adapts a function to Verifier.
type VerifierFunc func(ctx context.Context, token string) (bool, error)

func (f VerifierFunc) Verify(ctx context.Context, token string) (bool, error) { return f(ctx, token) }

// Session is the authenticated caller of a request.
type Session struct {
	Token string
}

type Options struct {
	Cache  Cache
	TTL    time.Duration
	Secure bool
	Logger *logrus.Entry
	// OnInvalid runs after a token is rejected and its cookie removed.
	OnInvalid func(token string)
}

type Gate struct {
	verifier  Verifier
	cache     Cache
	ttl       time.Duration
	secure    bool
	logger    *logrus.Entry
	onInvalid func(string)
	group     singleflight.Group
}

func New(v Verifier, opts Options) *Gate {
	if opts.TTL <= 0 {
		opts.TTL = DefaultTTL
	}
	if opts.Cache == nil {
		opts.Cache = NewMemoryCache()
	}
	return &Gate{
		verifier:  v,
		cache:     opts.Cache,
		ttl:       opts.TTL,
		secure:    opts.Secure,
		logger:    logging.OrDiscard(opts.Logger),
		onInvalid: opts.OnInvalid,
	}
}

// Check reports whether token is currently valid. Answers from the verifier
// are cached for the gate TTL; transport failures are not cached and count
// as invalid. Concurrent checks of one token share a single verification,
// which is not cancelled with any one caller's ctx.
func (g *Gate) Check(ctx context.Context, token string) bool {
	if token == "" {
		return false
	}
	if valid, ok := g.cache.Get(ctx, token); ok {
		return valid
	}

	v, err, _ := g.group.Do(token, func() (any, error) {
		vctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), VerifyTimeout)
		defer cancel()
		valid, err := g.verifier.Verify(vctx, token)
		if err != nil {
			return false, err
		}
		g.cache.Set(vctx, token, valid, g.ttl)
		return valid, nil
	})
	if err != nil {
		g.logger.WithError(err).Warn("token verification failed")
		return false
	}
	return v.(bool)
}

// Forget drops any cached answer for token.
func (g *Gate) Forget(ctx context.Context, token string) {
	g.cache.Delete(ctx, token)
}

// Middleware redirects unauthenticated requests to the login page and
// stores the Session of authenticated ones.
func (g *Gate) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(CookieName)
		if err != nil || token == "" {
			c.Redirect(http.StatusFound, LoginURL(c.Request.URL.RequestURI()))
			c.Abort()
			return
		}
		if !g.Check(c.Request.Context(), token) {
			g.ClearCookie(c)
			if g.onInvalid != nil {
				g.onInvalid(token)
			}
			c.Redirect(http.StatusFound, LoginURL(c.Request.URL.RequestURI()))
			c.Abort()
			return
		}
		c.Set(sessionKey, Session{Token: token})
		c.Next()
	}
}

// SessionFrom returns the Session stored by Middleware.
func SessionFrom(c *gin.Context) (Session, bool) {
	v, ok := c.Get(sessionKey)
	if !ok {
		return Session{}, false
	}
	s, ok := v.(Session)
	return s, ok
}

func (g *Gate) SetCookie(c *gin.Context, token string) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(CookieMaxAge.Seconds()),
		HttpOnly: true,
		Secure:   g.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (g *Gate) ClearCookie(c *gin.Context) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   g.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// LoginURL is the login page that returns to path after sign-in.
func LoginURL(path string) string {
	if path == "" {
		return LoginPath
	}
	return LoginPath + "?redirect=" + url.QueryEscape(path)
}

// SafeRedirect returns target when it is a local path under the dashboard,
// and the dashboard home otherwise.
func SafeRedirect(target string) string {
	target = strings.TrimSpace(target)
	if target == "" || strings.Contains(target, `\`) || strings.HasPrefix(target, "//") {
		return HomePath
	}
	u, err := url.Parse(target)
	if err != nil || u.IsAbs() || u.Host != "" {
		return HomePath
	}
	p := u.Path
	if p != HomePath && !strings.HasPrefix(p, HomePath+"/") {
		return HomePath
	}
	if strings.Contains(p, "/../") || strings.HasSuffix(p, "/..") {
		return HomePath
	}
	return target
}
