package dashboard

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"dsignme/internal/apiclient"
	"dsignme/internal/domain"
)

type projectRequest struct {
	CategoryID string `json:"categoryId"`
	Title      string `json:"title"`
	Type       string `json:"type"`
	ImageURL   string `json:"imageUrl"`
	VideoURL   string `json:"videoUrl"`
}

func (r projectRequest) form() apiclient.ProjectForm {
	return apiclient.ProjectForm{
		CategoryID: r.CategoryID,
		Title:      r.Title,
		Type:       r.Type,
		ImageURL:   r.ImageURL,
		VideoURL:   r.VideoURL,
	}
}

// loadProjects loads categories first since project views resolve
// category names.
func (h *handlers) loadProjects(ctx context.Context, ws *Workspace, force bool) error {
	if err := ensureLoaded(ctx, ws.Categories); err != nil {
		return err
	}
	if force {
		return ws.Projects.Load(ctx)
	}
	return ensureLoaded(ctx, ws.Projects)
}

func (h *handlers) listProjects(c *gin.Context) {
	h.showProjects(c, false)
}

func (h *handlers) reloadProjects(c *gin.Context) {
	h.showProjects(c, true)
}

func (h *handlers) showProjects(c *gin.Context, force bool) {
	ws := workspaceOf(c)
	var q listQuery
	_ = c.ShouldBindQuery(&q)

	ctx, cancel := requestContext(c)
	defer cancel()
	if err := h.loadProjects(ctx, ws, force); err != nil && apiclient.IsStatus(err, http.StatusUnauthorized) {
		h.respondError(c, err, "Failed to load projects.")
		return
	}
	apply(ws.Projects, q, map[string]string{"category": q.Category, "type": q.Type})
	respondView(c, http.StatusOK, ws.Projects.View(), nil)
}

// projectCategory resolves the category a project request is filed under.
func (h *handlers) projectCategory(ctx context.Context, ws *Workspace, id string) (domain.Category, error) {
	if err := ensureLoaded(ctx, ws.Categories); err != nil {
		return domain.Category{}, err
	}
	cat, ok := ws.Categories.Find(id)
	if !ok {
		return domain.Category{}, &apiclient.FormError{Field: "CategoryID", Message: "Category not found"}
	}
	return cat, nil
}

func (h *handlers) createProject(c *gin.Context) {
	ws := workspaceOf(c)
	var req projectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	form := req.form()
	if err := apiclient.Validate(form); err != nil {
		h.reject(c, err)
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()
	cat, err := h.projectCategory(ctx, ws, req.CategoryID)
	if err != nil {
		h.reject(c, err)
		return
	}
	p, err := ws.Projects.Create(ctx, func(ctx context.Context) (domain.Project, error) {
		return ws.api().CreateProject(ctx, cat.NameCategory, form.Input())
	})
	if err != nil {
		h.respondError(c, err, "Failed to create project.")
		return
	}
	respondView(c, http.StatusCreated, ws.Projects.View(), p)
}

func (h *handlers) updateProject(c *gin.Context) {
	ws := workspaceOf(c)
	id := c.Param("id")
	var req projectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if req.CategoryID == "" {
		if existing, ok := ws.Projects.Find(id); ok {
			req.CategoryID = existing.CategoryID
		}
	}
	form := req.form()
	if err := apiclient.Validate(form); err != nil {
		h.reject(c, err)
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()
	cat, err := h.projectCategory(ctx, ws, req.CategoryID)
	if err != nil {
		h.reject(c, err)
		return
	}
	p, err := ws.Projects.Update(ctx, id, func(ctx context.Context) (domain.Project, error) {
		return ws.api().UpdateProject(ctx, cat.NameCategory, id, form.Input())
	})
	if err != nil {
		h.respondError(c, err, "Failed to update project.")
		return
	}
	respondView(c, http.StatusOK, ws.Projects.View(), p)
}

func (h *handlers) deleteProject(c *gin.Context) {
	ws := workspaceOf(c)
	id := c.Param("id")
	if _, ok := ws.Projects.Find(id); !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Project not found", "notices": inboxOf(c).Drain()})
		return
	}
	if err := ws.projectDelete.Request(id); err != nil {
		h.respondError(c, err, "Another delete is in progress.")
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()
	if err := ws.projectDelete.Confirm(ctx); err != nil {
		h.respondError(c, err, "Failed to delete project.")
		return
	}
	respondView(c, http.StatusOK, ws.Projects.View(), nil)
}

// uploadFile checks the file locally before sending it to the content API.
func (h *handlers) uploadFile(c *gin.Context) {
	ws := workspaceOf(c)
	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file provided"})
		return
	}
	kind := domain.FileKind(c.PostForm("type"))
	form := apiclient.UploadForm{
		Kind:        kind,
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
	}
	if err := apiclient.Validate(form); err != nil {
		h.reject(c, err)
		return
	}
	src, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot read uploaded file"})
		return
	}
	defer src.Close()

	f, err := ws.api().UploadFile(c.Request.Context(), kind, fh.Filename, src)
	if err != nil {
		inboxOf(c).Notify(failureNotice(err, "Failed to upload file."))
		h.respondError(c, err, "Failed to upload file.")
		return
	}
	inboxOf(c).Notify(successNotice("File uploaded successfully."))
	respondView(c, http.StatusOK, nil, f)
}
