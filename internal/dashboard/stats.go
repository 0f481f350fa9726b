package dashboard

import (
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"

	"dsignme/internal/apiclient"
	"dsignme/internal/domain"
)

const recentLimit = 5

type stats struct {
	Categories     int                      `json:"categories"`
	Projects       int                      `json:"projects"`
	ProjectsByKind map[domain.MediaKind]int `json:"projectsByKind"`
	Contacts       int                      `json:"contacts"`
	RecentProjects []domain.Project         `json:"recentProjects"`
	RecentContacts []domain.Contact         `json:"recentContacts"`
}

func (h *handlers) stats(c *gin.Context) {
	ws := workspaceOf(c)
	ctx, cancel := requestContext(c)
	defer cancel()

	for _, err := range []error{
		h.loadProjects(ctx, ws, false),
		ensureLoaded(ctx, ws.Contacts),
	} {
		if err != nil && apiclient.IsStatus(err, http.StatusUnauthorized) {
			h.respondError(c, err, "Failed to load dashboard.")
			return
		}
	}
	respondView(c, http.StatusOK, buildStats(ws.Categories.Items(), ws.Projects.Items(), ws.Contacts.Items()), nil)
}

func buildStats(categories []domain.Category, projects []domain.Project, contacts []domain.Contact) stats {
	s := stats{
		Categories: len(categories),
		Projects:   len(projects),
		Contacts:   len(contacts),
		ProjectsByKind: map[domain.MediaKind]int{
			domain.MediaImage:    0,
			domain.MediaVideo:    0,
			domain.MediaVideoURL: 0,
			domain.MediaNone:     0,
		},
	}
	for _, p := range projects {
		s.ProjectsByKind[p.Media().Kind]++
	}

	sort.SliceStable(projects, func(i, j int) bool { return projects[i].CreatedAt.After(projects[j].CreatedAt) })
	s.RecentProjects = projects[:min(recentLimit, len(projects))]
	sort.SliceStable(contacts, func(i, j int) bool { return contacts[i].CreatedAt.After(contacts[j].CreatedAt) })
	s.RecentContacts = contacts[:min(recentLimit, len(contacts))]
	return s
}
