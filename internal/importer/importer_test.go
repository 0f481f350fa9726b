package importer

import (
	"context"
	"strings"
	"testing"

	"dsignme/internal/domain"
	projectsvc "dsignme/internal/service/project"
)

type stubCategories struct {
	existing []string
	created  []string
}

func (s *stubCategories) Resolve(_ context.Context, name string) (*domain.Category, error) {
	n := domain.NormalizeCategoryName(name)
	for _, c := range append(append([]string{}, s.existing...), s.created...) {
		if c == n {
			return &domain.Category{ID: "id-" + c, NameCategory: c}, nil
		}
	}
	return nil, domain.Invalid("Category not found")
}

func (s *stubCategories) Create(_ context.Context, name string) (*domain.Category, error) {
	n := domain.NormalizeCategoryName(name)
	s.created = append(s.created, n)
	return &domain.Category{ID: "id-" + n, NameCategory: n}, nil
}

type createdProject struct {
	category string
	in       projectsvc.Input
}

type stubProjects struct {
	items []createdProject
	fail  string
}

func (s *stubProjects) Create(_ context.Context, category string, in projectsvc.Input) (*domain.Project, error) {
	if s.fail != "" && in.Title == s.fail {
		return nil, domain.Invalid("Image URL is required")
	}
	s.items = append(s.items, createdProject{category: category, in: in})
	return &domain.Project{ID: "p", Title: in.Title}, nil
}

func TestCSVImporter_Run(t *testing.T) {
	csvData := `category,title,type,imageUrl,videoUrl
Logo,Mark,image,https://example.com/a.png,
logo,Wordmark,image,https://example.com/b.png,
Motion,Reel,youtube,,https://youtube.com/watch?v=1
,,,,
Web Design, Landing ,,,`

	cats := &stubCategories{existing: []string{"Logo"}}
	projects := &stubProjects{}
	imp := NewCSVImporter(strings.NewReader(csvData), cats, projects, nil)

	res, err := imp.Run(context.Background())
	if err != nil {
		t.Fatalf("import run: %v", err)
	}
	if res.Projects != 4 {
		t.Fatalf("expected 4 projects imported, got %d", res.Projects)
	}
	if res.Categories != 2 {
		t.Fatalf("expected 2 categories created, got %d (%v)", res.Categories, cats.created)
	}
	if len(cats.created) != 2 || cats.created[0] != "Motion" || cats.created[1] != "Web Design" {
		t.Fatalf("unexpected categories created: %v", cats.created)
	}

	first := projects.items[0]
	if first.category != "Logo" || first.in.Title != "Mark" || first.in.Type != "image" || first.in.ImageURL != "https://example.com/a.png" {
		t.Fatalf("unexpected first project: %+v", first)
	}
	if projects.items[2].in.Type != "youtube" || projects.items[2].in.VideoURL == "" {
		t.Fatalf("expected video url row, got %+v", projects.items[2])
	}
	if projects.items[3].in.Title != "Landing" {
		t.Fatalf("expected trimmed title, got %q", projects.items[3].in.Title)
	}
}

func TestCSVImporter_StopsAtInvalidRow(t *testing.T) {
	csvData := `category,title,type,imageUrl,videoUrl
Logo,Good,none,,
Logo,Broken,image,,
Logo,Never,none,,`

	projects := &stubProjects{fail: "Broken"}
	imp := NewCSVImporter(strings.NewReader(csvData), &stubCategories{existing: []string{"Logo"}}, projects, nil)

	res, err := imp.Run(context.Background())
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(err.Error(), "line 3") {
		t.Fatalf("expected line number in error, got %v", err)
	}
	if res.Projects != 1 || len(projects.items) != 1 {
		t.Fatalf("expected only the first row saved, got %d", res.Projects)
	}
}

func TestCSVImporter_RequiresCategoryColumn(t *testing.T) {
	imp := NewCSVImporter(strings.NewReader("title,type\nX,none\n"), &stubCategories{}, &stubProjects{}, nil)
	if _, err := imp.Run(context.Background()); err == nil {
		t.Fatalf("expected missing column error")
	}
}
