package dashboard

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"dsignme/internal/apiclient"
	"dsignme/internal/domain"
)

type stepRequest struct {
	Title     string            `json:"title"`
	Subtitles []domain.Subtitle `json:"subtitles"`
}

func (h *handlers) listSteps(c *gin.Context) {
	ws := workspaceOf(c)
	steps := ws.stepsFor(c.Param("category"))
	var q listQuery
	_ = c.ShouldBindQuery(&q)

	ctx, cancel := requestContext(c)
	defer cancel()
	if err := ensureLoaded(ctx, steps.ctrl); err != nil && apiclient.IsStatus(err, http.StatusUnauthorized) {
		h.respondError(c, err, "Failed to load service steps.")
		return
	}
	apply(steps.ctrl, q, nil)
	respondView(c, http.StatusOK, steps.ctrl.View(), nil)
}

// stepForm resolves the URL category to its id, which the backend checks
// against the path.
func (h *handlers) stepForm(ctx context.Context, ws *Workspace, category string, req stepRequest) (apiclient.ServiceStepForm, error) {
	if err := ensureLoaded(ctx, ws.Categories); err != nil {
		return apiclient.ServiceStepForm{}, err
	}
	cat, ok := ws.categoryByName(category)
	if !ok {
		return apiclient.ServiceStepForm{}, &apiclient.FormError{Field: "CategoryID", Message: "Category not found"}
	}
	form := apiclient.ServiceStepForm{CategoryID: cat.ID, Title: req.Title, Subtitles: req.Subtitles}
	return form, apiclient.Validate(form)
}

func (h *handlers) createStep(c *gin.Context) {
	ws := workspaceOf(c)
	category := c.Param("category")
	var req stepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()
	form, err := h.stepForm(ctx, ws, category, req)
	if err != nil {
		h.reject(c, err)
		return
	}
	steps := ws.stepsFor(category)
	s, err := steps.ctrl.Create(ctx, func(ctx context.Context) (domain.ServiceStep, error) {
		return ws.api().CreateServiceStep(ctx, category, form.Input())
	})
	if err != nil {
		h.respondError(c, err, "Failed to create service step.")
		return
	}
	respondView(c, http.StatusCreated, steps.ctrl.View(), s)
}

func (h *handlers) updateStep(c *gin.Context) {
	ws := workspaceOf(c)
	category, id := c.Param("category"), c.Param("id")
	var req stepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()
	form, err := h.stepForm(ctx, ws, category, req)
	if err != nil {
		h.reject(c, err)
		return
	}
	steps := ws.stepsFor(category)
	s, err := steps.ctrl.Update(ctx, id, func(ctx context.Context) (domain.ServiceStep, error) {
		return ws.api().UpdateServiceStep(ctx, category, id, form.Input())
	})
	if err != nil {
		h.respondError(c, err, "Failed to update service step.")
		return
	}
	respondView(c, http.StatusOK, steps.ctrl.View(), s)
}

func (h *handlers) deleteStep(c *gin.Context) {
	ws := workspaceOf(c)
	steps := ws.stepsFor(c.Param("category"))
	if err := steps.delete.Request(c.Param("id")); err != nil {
		h.respondError(c, err, "Another delete is in progress.")
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()
	if err := steps.delete.Confirm(ctx); err != nil {
		h.respondError(c, err, "Failed to delete service step.")
		return
	}
	respondView(c, http.StatusOK, steps.ctrl.View(), nil)
}
