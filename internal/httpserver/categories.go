package httpserver

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

type categoryRequest struct {
	NameCategory string `json:"nameCategory"`
}

func (h *handlers) listCategories(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), readTimeout)
	defer cancel()
	items, err := h.deps.CategorySvc.List(ctx)
	if err != nil {
		h.respondError(c, err, "Category not found", "Failed to retrieve categories")
		return
	}
	respondList(c, "Categories retrieved successfully", items)
}

func (h *handlers) createCategory(c *gin.Context) {
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), readTimeout)
	defer cancel()
	cat, err := h.deps.CategorySvc.Create(ctx, req.NameCategory)
	if err != nil {
		h.respondError(c, err, "Category not found", "Failed to create category")
		return
	}
	respondData(c, http.StatusCreated, "Category created successfully", cat)
}

func (h *handlers) updateCategory(c *gin.Context) {
	id := c.Param("id")
	if !validID(c, id, "category") {
		return
	}
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), readTimeout)
	defer cancel()
	cat, err := h.deps.CategorySvc.Update(ctx, id, req.NameCategory)
	if err != nil {
		h.respondError(c, err, "Category not found", "Failed to update category")
		return
	}
	respondData(c, http.StatusOK, "Category updated successfully", cat)
}

func (h *handlers) deleteCategory(c *gin.Context) {
	id := c.Param("id")
	if !validID(c, id, "category") {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), readTimeout)
	defer cancel()
	if err := h.deps.CategorySvc.Delete(ctx, id); err != nil {
		h.respondError(c, err, "Category not found", "Failed to delete category")
		return
	}
	respondMessage(c, "Category deleted successfully")
}
