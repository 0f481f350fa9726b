package dashboard

import (
	"context"
	"strings"
	"sync"
	"time"

	"dsignme/internal/apiclient"
	"dsignme/internal/domain"
	"dsignme/internal/listing"
)

// Workspace is the state of one signed-in session: the cached collections
// and their delete dialogs. Notices travel with each request's context.
type Workspace struct {
	client   *apiclient.Client
	pageSize int

	Categories *listing.Controller[domain.Category]
	Projects   *listing.Controller[domain.Project]
	Contacts   *listing.Controller[domain.Contact]

	categoryDelete *listing.DeleteDialog[domain.Category]
	projectDelete  *listing.DeleteDialog[domain.Project]

	mu       sync.Mutex
	steps    map[string]*stepList
	lastSeen time.Time
}

type stepList struct {
	ctrl   *listing.Controller[domain.ServiceStep]
	delete *listing.DeleteDialog[domain.ServiceStep]
}

func newWorkspace(client *apiclient.Client, pageSize int) *Workspace {
	ws := &Workspace{
		client:   client,
		pageSize: pageSize,
		steps:    make(map[string]*stepList),
	}

	ws.Categories = listing.New(listing.Config[domain.Category]{
		PageSize:   pageSize,
		Key:        func(c domain.Category) string { return c.ID },
		SearchText: func(c domain.Category) []string { return []string{c.NameCategory} },
		Load:       client.ListCategories,
		Messages: listing.Messages{
			LoadFailed:   "Failed to load categories.",
			Created:      "Category created successfully.",
			CreateFailed: "Failed to create category.",
			Updated:      "Category updated successfully.",
			UpdateFailed: "Failed to update category.",
			Deleted:      "Category deleted successfully.",
			DeleteFailed: "Failed to delete category.",
		},
	})
	ws.categoryDelete = listing.NewDeleteDialog(ws.Categories, client.DeleteCategory)

	ws.Projects = listing.New(listing.Config[domain.Project]{
		PageSize: pageSize,
		Key:      func(p domain.Project) string { return p.ID },
		SearchText: func(p domain.Project) []string {
			return []string{p.Title, ws.categoryName(p.CategoryID)}
		},
		Filters: []listing.Filter[domain.Project]{
			{Name: "category", Match: func(p domain.Project, v string) bool {
				return p.CategoryID == v || strings.EqualFold(ws.categoryName(p.CategoryID), v)
			}},
			{Name: "type", Match: func(p domain.Project, v string) bool {
				return string(p.Media().Kind) == v
			}},
		},
		Load:     client.ListProjects,
		Requires: []listing.Dependency{ws.Categories},
		Messages: listing.Messages{
			LoadFailed:   "Failed to load projects.",
			Created:      "Project created successfully.",
			CreateFailed: "Failed to create project.",
			Updated:      "Project updated successfully.",
			UpdateFailed: "Failed to update project.",
			Deleted:      "Project deleted successfully.",
			DeleteFailed: "Failed to delete project.",
		},
	})
	ws.projectDelete = listing.NewDeleteDialog(ws.Projects, func(ctx context.Context, id string) error {
		p, ok := ws.Projects.Find(id)
		if !ok {
			return domain.ErrNotFound
		}
		return client.DeleteProject(ctx, ws.categoryName(p.CategoryID), id)
	})

	ws.Contacts = listing.New(listing.Config[domain.Contact]{
		PageSize: pageSize,
		Key:      func(c domain.Contact) string { return c.ID },
		SearchText: func(c domain.Contact) []string {
			return []string{c.Name, c.Email, c.Message}
		},
		Filters: []listing.Filter[domain.Contact]{
			{Name: "status", Match: func(c domain.Contact, v string) bool {
				return strings.EqualFold(string(c.Status), v)
			}},
		},
		Load: client.ListContacts,
		Messages: listing.Messages{
			LoadFailed: "Failed to load contacts.",
			Updated:    "Contact status updated.",
		},
	})
	return ws
}

// api is the content API client authenticated as this session.
func (ws *Workspace) api() *apiclient.Client {
	return ws.client
}

func (ws *Workspace) categoryName(id string) string {
	c, ok := ws.Categories.Find(id)
	if !ok {
		return ""
	}
	return c.NameCategory
}

// categoryByName finds a loaded category by its normalized name.
func (ws *Workspace) categoryByName(name string) (domain.Category, bool) {
	slug := domain.CategorySlug(domain.NormalizeCategoryName(name))
	for _, c := range ws.Categories.Items() {
		if domain.CategorySlug(c.NameCategory) == slug {
			return c, true
		}
	}
	return domain.Category{}, false
}

// stepsFor returns the service step list of one category, creating it on
// first use.
func (ws *Workspace) stepsFor(category string) *stepList {
	key := domain.CategorySlug(category)
	ws.mu.Lock()
	defer ws.mu.Unlock()
	if l, ok := ws.steps[key]; ok {
		return l
	}
	client := ws.client
	ctrl := listing.New(listing.Config[domain.ServiceStep]{
		PageSize: ws.pageSize,
		Key:      func(s domain.ServiceStep) string { return s.ID },
		SearchText: func(s domain.ServiceStep) []string {
			out := []string{s.Title}
			for _, sub := range s.Subtitles {
				out = append(out, sub.Text)
				out = append(out, sub.Headings...)
			}
			return out
		},
		Load: func(ctx context.Context) ([]domain.ServiceStep, error) {
			return client.ListServiceSteps(ctx, key)
		},
		Messages: listing.Messages{
			LoadFailed:   "Failed to load service steps.",
			Created:      "Service step created successfully.",
			CreateFailed: "Failed to create service step.",
			Updated:      "Service step updated successfully.",
			UpdateFailed: "Failed to update service step.",
			Deleted:      "Service step deleted successfully.",
			DeleteFailed: "Failed to delete service step.",
		},
	})
	l := &stepList{
		ctrl: ctrl,
		delete: listing.NewDeleteDialog(ctrl, func(ctx context.Context, id string) error {
			return client.DeleteServiceStep(ctx, key, id)
		}),
	}
	ws.steps[key] = l
	return l
}

// forgetCategory drops state that a category delete invalidated on the server.
func (ws *Workspace) forgetCategory(ctx context.Context, name string) {
	ws.mu.Lock()
	delete(ws.steps, domain.CategorySlug(name))
	ws.mu.Unlock()
	if ws.Projects.Loaded() {
		_ = ws.Projects.Load(ctx)
	}
}

func (ws *Workspace) touch(now time.Time) {
	ws.mu.Lock()
	ws.lastSeen = now
	ws.mu.Unlock()
}

func (ws *Workspace) idleSince() time.Time {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	return ws.lastSeen
}

// Store keeps one Workspace per session token.
type Store struct {
	client   *apiclient.Client
	pageSize int
	idle     time.Duration
	now      func() time.Time

	mu         sync.Mutex
	workspaces map[string]*Workspace
}

func NewStore(client *apiclient.Client, pageSize int, idle time.Duration) *Store {
	if pageSize <= 0 {
		pageSize = listing.DefaultPageSize
	}
	return &Store{
		client:     client,
		pageSize:   pageSize,
		idle:       idle,
		now:        time.Now,
		workspaces: make(map[string]*Workspace),
	}
}

// Get returns the workspace of token, creating it if needed.
func (s *Store) Get(token string) *Workspace {
	s.mu.Lock()
	ws, ok := s.workspaces[token]
	if !ok {
		ws = newWorkspace(s.client.WithSession(apiclient.StaticToken(token)), s.pageSize)
		s.workspaces[token] = ws
	}
	s.mu.Unlock()
	ws.touch(s.now())
	return ws
}

func (s *Store) Drop(token string) {
	s.mu.Lock()
	delete(s.workspaces, token)
	s.mu.Unlock()
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.workspaces)
}

// Prune drops workspaces idle for longer than the store timeout and returns
// how many were removed.
func (s *Store) Prune() int {
	if s.idle <= 0 {
		return 0
	}
	cutoff := s.now().Add(-s.idle)
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for token, ws := range s.workspaces {
		if ws.idleSince().Before(cutoff) {
			delete(s.workspaces, token)
			n++
		}
	}
	return n
}

// Run prunes idle workspaces until ctx is done.
func (s *Store) Run(ctx context.Context, every time.Duration) {
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			s.Prune()
		}
	}
}
