package httpserver

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	contactsvc "dsignme/internal/service/contact"
)

func (h *handlers) submitContact(c *gin.Context) {
	var in contactsvc.Input
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "Invalid request body")
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), readTimeout)
	defer cancel()
	contact, err := h.deps.ContactSvc.Submit(ctx, in)
	if err != nil {
		h.respondError(c, err, "Contact not found", "Failed to send message")
		return
	}
	respondData(c, http.StatusCreated, "Message sent successfully", contact)
}

func (h *handlers) listContacts(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), readTimeout)
	defer cancel()
	items, err := h.deps.ContactSvc.List(ctx)
	if err != nil {
		h.respondError(c, err, "Contact not found", "Failed to retrieve contacts")
		return
	}
	respondList(c, "Contacts retrieved successfully", items)
}
