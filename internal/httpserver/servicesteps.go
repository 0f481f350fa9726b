package httpserver

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	stepsvc "dsignme/internal/service/servicestep"
)

func (h *handlers) listSteps(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), readTimeout)
	defer cancel()
	items, err := h.deps.StepSvc.List(ctx, c.Param("category"))
	if err != nil {
		h.respondError(c, err, "Service step not found", "Failed to retrieve service steps")
		return
	}
	respondList(c, "Service steps retrieved successfully", items)
}

func (h *handlers) getStep(c *gin.Context) {
	id := c.Param("stepId")
	if !validID(c, id, "service step") {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), readTimeout)
	defer cancel()
	step, err := h.deps.StepSvc.Get(ctx, c.Param("category"), id)
	if err != nil {
		h.respondError(c, err, "Service step not found", "Failed to retrieve service step")
		return
	}
	respondData(c, http.StatusOK, "Service step retrieved successfully", step)
}

func (h *handlers) createStep(c *gin.Context) {
	var in stepsvc.Input
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "Invalid request body")
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), readTimeout)
	defer cancel()
	step, err := h.deps.StepSvc.Create(ctx, c.Param("category"), in)
	if err != nil {
		h.respondError(c, err, "Service step not found", "Failed to create service step")
		return
	}
	respondData(c, http.StatusCreated, "Service step created successfully", step)
}

func (h *handlers) updateStep(c *gin.Context) {
	id := c.Param("stepId")
	if !validID(c, id, "service step") {
		return
	}
	var in stepsvc.Input
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "Invalid request body")
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), readTimeout)
	defer cancel()
	step, err := h.deps.StepSvc.Update(ctx, c.Param("category"), id, in)
	if err != nil {
		h.respondError(c, err, "Service step not found", "Failed to update service step")
		return
	}
	respondData(c, http.StatusOK, "Service step updated successfully", step)
}

func (h *handlers) deleteStep(c *gin.Context) {
	id := c.Param("stepId")
	if !validID(c, id, "service step") {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), readTimeout)
	defer cancel()
	if err := h.deps.StepSvc.Delete(ctx, c.Param("category"), id); err != nil {
		h.respondError(c, err, "Service step not found", "Failed to delete service step")
		return
	}
	respondMessage(c, "Service step deleted successfully")
}
