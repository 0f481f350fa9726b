package dashboard

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"dsignme/internal/apiclient"
	"dsignme/internal/domain"
)

type categoryRequest struct {
	NameCategory string `json:"nameCategory"`
}

func (h *handlers) listCategories(c *gin.Context) {
	ws := workspaceOf(c)
	var q listQuery
	_ = c.ShouldBindQuery(&q)

	ctx, cancel := requestContext(c)
	defer cancel()
	if err := ensureLoaded(ctx, ws.Categories); err != nil && apiclient.IsStatus(err, http.StatusUnauthorized) {
		h.respondError(c, err, "Failed to load categories.")
		return
	}
	apply(ws.Categories, q, nil)
	respondView(c, http.StatusOK, ws.Categories.View(), nil)
}

func (h *handlers) reloadCategories(c *gin.Context) {
	ws := workspaceOf(c)
	ctx, cancel := requestContext(c)
	defer cancel()
	if err := ws.Categories.Load(ctx); err != nil && apiclient.IsStatus(err, http.StatusUnauthorized) {
		h.respondError(c, err, "Failed to load categories.")
		return
	}
	respondView(c, http.StatusOK, ws.Categories.View(), nil)
}

func (h *handlers) createCategory(c *gin.Context) {
	ws := workspaceOf(c)
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if err := apiclient.Validate(apiclient.CategoryForm{Name: req.NameCategory}); err != nil {
		h.reject(c, err)
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()
	cat, err := ws.Categories.Create(ctx, func(ctx context.Context) (domain.Category, error) {
		return ws.api().CreateCategory(ctx, req.NameCategory)
	})
	if err != nil {
		h.respondError(c, err, "Failed to create category.")
		return
	}
	respondView(c, http.StatusCreated, ws.Categories.View(), cat)
}

func (h *handlers) updateCategory(c *gin.Context) {
	ws := workspaceOf(c)
	id := c.Param("id")
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if err := apiclient.Validate(apiclient.CategoryForm{Name: req.NameCategory}); err != nil {
		h.reject(c, err)
		return
	}
	old, _ := ws.Categories.Find(id)

	ctx, cancel := requestContext(c)
	defer cancel()
	cat, err := ws.Categories.Update(ctx, id, func(ctx context.Context) (domain.Category, error) {
		return ws.api().UpdateCategory(ctx, id, req.NameCategory)
	})
	if err != nil {
		h.respondError(c, err, "Failed to update category.")
		return
	}
	if old.NameCategory != "" && old.NameCategory != cat.NameCategory {
		ws.forgetCategory(ctx, old.NameCategory)
	}
	respondView(c, http.StatusOK, ws.Categories.View(), cat)
}

func (h *handlers) deleteCategory(c *gin.Context) {
	ws := workspaceOf(c)
	id := c.Param("id")
	cat, _ := ws.Categories.Find(id)
	if err := ws.categoryDelete.Request(id); err != nil {
		h.respondError(c, err, "Another delete is in progress.")
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()
	if err := ws.categoryDelete.Confirm(ctx); err != nil {
		h.respondError(c, err, "Failed to delete category.")
		return
	}
	if cat.NameCategory != "" {
		ws.forgetCategory(ctx, cat.NameCategory)
	}
	respondView(c, http.StatusOK, ws.Categories.View(), nil)
}
