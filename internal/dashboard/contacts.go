package dashboard

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"dsignme/internal/apiclient"
	"dsignme/internal/domain"
)

func (h *handlers) listContacts(c *gin.Context) {
	ws := workspaceOf(c)
	var q listQuery
	_ = c.ShouldBindQuery(&q)

	ctx, cancel := requestContext(c)
	defer cancel()
	if err := ensureLoaded(ctx, ws.Contacts); err != nil && apiclient.IsStatus(err, http.StatusUnauthorized) {
		h.respondError(c, err, "Failed to load contacts.")
		return
	}
	apply(ws.Contacts, q, map[string]string{"status": q.Status})
	respondView(c, http.StatusOK, ws.Contacts.View(), nil)
}

// setContactStatus changes the triage status in this session only; the
// content API has no endpoint for it.
func (h *handlers) setContactStatus(c *gin.Context) {
	ws := workspaceOf(c)
	var req struct {
		Status domain.ContactStatus `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || !req.Status.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
		return
	}
	ok := ws.Contacts.Patch(c.Param("id"), func(ct domain.Contact) domain.Contact {
		ct.Status = req.Status
		return ct
	})
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Contact not found", "notices": inboxOf(c).Drain()})
		return
	}
	inboxOf(c).Notify(successNotice("Contact status updated."))
	updated, _ := ws.Contacts.Find(c.Param("id"))
	respondView(c, http.StatusOK, ws.Contacts.View(), updated)
}
