package httpserver

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	projectsvc "dsignme/internal/service/project"
)

func (h *handlers) listAllProjects(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), readTimeout)
	defer cancel()
	items, err := h.deps.ProjectSvc.ListAll(ctx)
	if err != nil {
		h.respondError(c, err, "Project not found", "Failed to retrieve projects")
		return
	}
	respondList(c, "Projects retrieved successfully", items)
}

func (h *handlers) listProjects(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), readTimeout)
	defer cancel()
	items, err := h.deps.ProjectSvc.ListByCategory(ctx, c.Param("category"))
	if err != nil {
		h.respondError(c, err, "Project not found", "Failed to retrieve projects")
		return
	}
	respondList(c, "Projects retrieved successfully", items)
}

func (h *handlers) createProject(c *gin.Context) {
	var in projectsvc.Input
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "Invalid request body")
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), readTimeout)
	defer cancel()
	p, err := h.deps.ProjectSvc.Create(ctx, c.Param("category"), in)
	if err != nil {
		h.respondError(c, err, "Project not found", "Failed to create project")
		return
	}
	respondData(c, http.StatusCreated, "Project created successfully", p)
}

func (h *handlers) updateProject(c *gin.Context) {
	id := c.Param("id")
	if !validID(c, id, "project") {
		return
	}
	var in projectsvc.Input
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "Invalid request body")
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), readTimeout)
	defer cancel()
	p, err := h.deps.ProjectSvc.Update(ctx, c.Param("category"), id, in)
	if err != nil {
		h.respondError(c, err, "Project not found", "Failed to update project")
		return
	}
	respondData(c, http.StatusOK, "Project updated successfully", p)
}

func (h *handlers) deleteProject(c *gin.Context) {
	id := c.Param("id")
	if !validID(c, id, "project") {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), readTimeout)
	defer cancel()
	if err := h.deps.ProjectSvc.Delete(ctx, c.Param("category"), id); err != nil {
		h.respondError(c, err, "Project not found", "Failed to delete project")
		return
	}
	respondMessage(c, "Project deleted successfully")
}
