package dashboard

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"dsignme/internal/apiclient"
	"dsignme/internal/authgate"
	"dsignme/internal/domain"
	"dsignme/internal/listing"
)

const (
	workspaceKey = "dashboard.workspace"
	inboxKey     = "dashboard.inbox"
	readTimeout  = 10 * time.Second
)

// workspace attaches the session's Workspace to the request, together with
// an Inbox collecting the notices this request produces.
func (h *handlers) workspace(c *gin.Context) {
	s, ok := authgate.SessionFrom(c)
	if !ok {
		c.Redirect(http.StatusFound, authgate.LoginURL(c.Request.URL.RequestURI()))
		c.Abort()
		return
	}
	inbox := &listing.Inbox{}
	c.Set(workspaceKey, h.store.Get(s.Token))
	c.Set(inboxKey, inbox)
	c.Request = c.Request.WithContext(listing.WithNotifier(c.Request.Context(), inbox))
	c.Next()
}

func requestContext(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), readTimeout)
}

func workspaceOf(c *gin.Context) *Workspace {
	return c.MustGet(workspaceKey).(*Workspace)
}

func inboxOf(c *gin.Context) *listing.Inbox {
	return c.MustGet(inboxKey).(*listing.Inbox)
}

type listQuery struct {
	Search   string `form:"search"`
	Page     int    `form:"page"`
	Category string `form:"category"`
	Type     string `form:"type"`
	Status   string `form:"status"`
}

// apply sets the controller state described by the query string. Search
// and filters reset the page, so the page is applied last.
func apply[T any](ctrl *listing.Controller[T], q listQuery, filters map[string]string) {
	ctrl.SetSearchQuery(q.Search)
	for name, value := range filters {
		_ = ctrl.SetFilter(name, value)
	}
	if q.Page > 0 {
		ctrl.SetPage(q.Page)
	}
}

// ensureLoaded loads ctrl unless its last load succeeded.
func ensureLoaded(ctx context.Context, ctrl interface {
	Loaded() bool
	Err() error
	Load(context.Context) error
}) error {
	if ctrl.Loaded() && ctrl.Err() == nil {
		return nil
	}
	return ctrl.Load(ctx)
}

func respondView(c *gin.Context, status int, view, data any) {
	body := gin.H{"view": view, "notices": inboxOf(c).Drain()}
	if data != nil {
		body["data"] = data
	}
	c.JSON(status, body)
}

// respondError writes err with the pending notices. A rejected session is
// signed out.
func (h *handlers) respondError(c *gin.Context, err error, fallback string) {
	status := statusOf(err)
	if status == http.StatusUnauthorized {
		h.signOut(c)
		c.JSON(status, gin.H{
			"error":    apiclient.FriendlyMessage(err, fallback),
			"redirect": authgate.LoginURL(c.Request.URL.Path),
			"notices":  []listing.Notice{},
		})
		return
	}
	if status >= http.StatusInternalServerError {
		h.logger.WithError(err).WithField("path", c.FullPath()).Warn(fallback)
	}
	c.JSON(status, gin.H{"error": apiclient.FriendlyMessage(err, fallback), "notices": inboxOf(c).Drain()})
}

func statusOf(err error) int {
	var ferr *apiclient.FormError
	var apiErr *apiclient.Error
	switch {
	case errors.As(err, &ferr):
		return http.StatusBadRequest
	case errors.Is(err, apiclient.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, listing.ErrDialogBusy):
		return http.StatusConflict
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.As(err, &apiErr):
		switch apiErr.Status {
		case http.StatusBadRequest, http.StatusNotFound, http.StatusUnauthorized, http.StatusRequestEntityTooLarge:
			return apiErr.Status
		case http.StatusForbidden:
			return http.StatusUnauthorized
		}
	}
	return http.StatusBadGateway
}

// reject reports a form error as a notice and a 400.
func (h *handlers) reject(c *gin.Context, err error) {
	inboxOf(c).Notify(failureNotice(err, "Invalid input"))
	h.respondError(c, err, "Invalid input")
}

func successNotice(msg string) listing.Notice {
	return listing.Notice{Level: listing.LevelSuccess, Title: "Success", Message: msg}
}

func failureNotice(err error, fallback string) listing.Notice {
	return listing.Notice{Level: listing.LevelError, Title: "Error", Message: apiclient.FriendlyMessage(err, fallback)}
}
