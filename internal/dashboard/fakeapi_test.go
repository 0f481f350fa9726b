package dashboard

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"dsignme/internal/domain"
)

// fakeAPI is an in-memory content API speaking the same envelopes as the
// real backend.
type fakeAPI struct {
	mu         sync.Mutex
	tokens     map[string]bool
	categories []domain.Category
	projects   []domain.Project
	steps      map[string][]domain.ServiceStep
	contacts   []domain.Contact
	seq        int
	failNext   int
	verifies   int
	calls      map[string]int
	bearers    map[string]string
}

func newFakeAPI(t *testing.T) (*fakeAPI, *httptest.Server) {
	t.Helper()
	f := &fakeAPI{
		tokens:  map[string]bool{"good": true},
		steps:   map[string][]domain.ServiceStep{},
		calls:   map[string]int{},
		bearers: map[string]string{},
	}
	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/verify", f.verify)
	mux.HandleFunc("POST /auth/login", f.login)
	mux.HandleFunc("GET /projects/categories", f.authed(f.listCategories))
	mux.HandleFunc("POST /projects/categories", f.authed(f.createCategory))
	mux.HandleFunc("PUT /projects/categories/{id}", f.authed(f.updateCategory))
	mux.HandleFunc("DELETE /projects/categories/{id}", f.authed(f.deleteCategory))
	mux.HandleFunc("GET /projects/{$}", f.authed(f.listProjects))
	mux.HandleFunc("POST /projects/files", f.authed(f.upload))
	mux.HandleFunc("POST /projects/{category}", f.authed(f.createProject))
	mux.HandleFunc("PUT /projects/{category}/{id}", f.authed(f.updateProject))
	mux.HandleFunc("DELETE /projects/{category}/{id}", f.authed(f.deleteProject))
	mux.HandleFunc("GET /servicesteps/{category}/service-steps", f.authed(f.listSteps))
	mux.HandleFunc("POST /servicesteps/{category}/service-steps", f.authed(f.createStep))
	mux.HandleFunc("PUT /servicesteps/{category}/service-steps/{id}", f.authed(f.updateStep))
	mux.HandleFunc("GET /contacts", f.authed(f.listContacts))
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return f, srv
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeData(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, map[string]any{"message": "ok", "data": data})
}

func (f *fakeAPI) nextID(prefix string) string {
	f.seq++
	return fmt.Sprintf("%s-%d", prefix, f.seq)
}

func (f *fakeAPI) authed(next func(http.ResponseWriter, *http.Request)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		tok := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		route := r.Pattern
		f.calls[route]++
		f.bearers[route] = tok
		if !f.tokens[tok] {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
			return
		}
		if f.failNext > 0 {
			f.failNext--
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Request failed"})
			return
		}
		next(w, r)
	}
}

// called returns how often the mux pattern route was hit and
// the bearer token of the last hit.
func (f *fakeAPI) called(route string) (int, string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[route], f.bearers[route]
}

func (f *fakeAPI) revoke(token string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.tokens, token)
}

func (f *fakeAPI) verify(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.verifies++
	if f.tokens[strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")] {
		writeJSON(w, http.StatusOK, map[string]bool{"valid": true})
		return
	}
	writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Invalid token"})
}

func (f *fakeAPI) login(w http.ResponseWriter, r *http.Request) {
	var body struct{ Email, Password string }
	_ = json.NewDecoder(r.Body).Decode(&body)
	if body.Password != "secret" {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Invalid credentials"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"token": "good"})
}

func (f *fakeAPI) listCategories(w http.ResponseWriter, _ *http.Request) {
	writeData(w, http.StatusOK, f.categories)
}

func (f *fakeAPI) createCategory(w http.ResponseWriter, r *http.Request) {
	var body struct {
		NameCategory string `json:"nameCategory"`
	}
	_ = json.NewDecoder(r.Body).Decode(&body)
	name := domain.NormalizeCategoryName(body.NameCategory)
	for _, c := range f.categories {
		if strings.EqualFold(c.NameCategory, name) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Category already exists"})
			return
		}
	}
	c := domain.Category{ID: f.nextID("cat"), NameCategory: name, CreatedAt: time.Now()}
	f.categories = append(f.categories, c)
	writeData(w, http.StatusCreated, c)
}

func (f *fakeAPI) updateCategory(w http.ResponseWriter, r *http.Request) {
	var body struct {
		NameCategory string `json:"nameCategory"`
	}
	_ = json.NewDecoder(r.Body).Decode(&body)
	for i, c := range f.categories {
		if c.ID == r.PathValue("id") {
			now := time.Now()
			f.categories[i].NameCategory = domain.NormalizeCategoryName(body.NameCategory)
			f.categories[i].UpdatedAt = &now
			writeData(w, http.StatusOK, f.categories[i])
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"error": "Category not found"})
}

func (f *fakeAPI) deleteCategory(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	for i, c := range f.categories {
		if c.ID == id {
			f.categories = append(f.categories[:i], f.categories[i+1:]...)
			kept := f.projects[:0]
			for _, p := range f.projects {
				if p.CategoryID != id {
					kept = append(kept, p)
				}
			}
			f.projects = kept
			writeJSON(w, http.StatusOK, map[string]string{"message": "Category deleted successfully"})
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"error": "Category not found"})
}

func (f *fakeAPI) categoryBySlug(slug string) (domain.Category, bool) {
	for _, c := range f.categories {
		if domain.CategorySlug(c.NameCategory) == slug {
			return c, true
		}
	}
	return domain.Category{}, false
}

func (f *fakeAPI) listProjects(w http.ResponseWriter, _ *http.Request) {
	writeData(w, http.StatusOK, f.projects)
}

func (f *fakeAPI) createProject(w http.ResponseWriter, r *http.Request) {
	cat, ok := f.categoryBySlug(r.PathValue("category"))
	if !ok {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Category not found"})
		return
	}
	var p domain.Project
	_ = json.NewDecoder(r.Body).Decode(&p)
	p.ID = f.nextID("prj")
	p.CategoryID = cat.ID
	p.Title = strings.TrimSpace(p.Title) + " (saved)"
	p.MediaType = p.Media().Kind
	p.CreatedAt = time.Now()
	f.projects = append(f.projects, p)
	writeData(w, http.StatusCreated, p)
}

func (f *fakeAPI) updateProject(w http.ResponseWriter, r *http.Request) {
	cat, ok := f.categoryBySlug(r.PathValue("category"))
	if !ok {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Category not found"})
		return
	}
	var in domain.Project
	_ = json.NewDecoder(r.Body).Decode(&in)
	for i, p := range f.projects {
		if p.ID != r.PathValue("id") {
			continue
		}
		if p.CategoryID != cat.ID {
			break
		}
		p.Title, p.ImageURL, p.VideoURL = in.Title, in.ImageURL, in.VideoURL
		p.MediaType = p.Media().Kind
		p.UpdatedAt = time.Now()
		f.projects[i] = p
		writeData(w, http.StatusOK, p)
		return
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"error": "Project not found"})
}

func (f *fakeAPI) deleteProject(w http.ResponseWriter, r *http.Request) {
	for i, p := range f.projects {
		if p.ID == r.PathValue("id") {
			f.projects = append(f.projects[:i], f.projects[i+1:]...)
			writeJSON(w, http.StatusOK, map[string]string{"message": "Project deleted successfully"})
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"error": "Project not found"})
}

func (f *fakeAPI) upload(w http.ResponseWriter, r *http.Request) {
	if _, _, err := r.FormFile("file"); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Cannot get file from form"})
		return
	}
	id := f.nextID("file")
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "File uploaded successfully",
		"fileUrl": "http://api/files/" + id,
		"data":    map[string]any{"id": id, "type": r.FormValue("type"), "url": "http://api/files/" + id},
	})
}

func (f *fakeAPI) listSteps(w http.ResponseWriter, r *http.Request) {
	writeData(w, http.StatusOK, f.steps[r.PathValue("category")])
}

func (f *fakeAPI) createStep(w http.ResponseWriter, r *http.Request) {
	cat, ok := f.categoryBySlug(r.PathValue("category"))
	if !ok {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Category not found"})
		return
	}
	var s domain.ServiceStep
	_ = json.NewDecoder(r.Body).Decode(&s)
	if s.CategoryID != cat.ID {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Category ID does not match category name in URL"})
		return
	}
	s.ID = f.nextID("step")
	s.CreatedAt = time.Now()
	key := r.PathValue("category")
	f.steps[key] = append(f.steps[key], s)
	writeData(w, http.StatusCreated, s)
}

func (f *fakeAPI) updateStep(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("category")
	var in domain.ServiceStep
	_ = json.NewDecoder(r.Body).Decode(&in)
	for i, s := range f.steps[key] {
		if s.ID == r.PathValue("id") {
			now := time.Now()
			s.Title, s.Subtitles, s.UpdatedAt = in.Title, in.Subtitles, &now
			f.steps[key][i] = s
			writeData(w, http.StatusOK, s)
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"error": "Service step not found"})
}

func (f *fakeAPI) listContacts(w http.ResponseWriter, _ *http.Request) {
	writeData(w, http.StatusOK, f.contacts)
}
