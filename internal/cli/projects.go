package cli

import (
	"context"
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"dsignme/internal/apiclient"
	"dsignme/internal/domain"
	"dsignme/internal/listing"
)

type projectLists struct {
	categories *listing.Controller[domain.Category]
	projects   *listing.Controller[domain.Project]
}

func (p projectLists) categoryName(id string) string {
	c, _ := p.categories.Find(id)
	return c.NameCategory
}

func (a *app) projectLists(c *apiclient.Client) projectLists {
	l := projectLists{categories: a.categories(c)}
	l.projects = listing.New(listing.Config[domain.Project]{
		PageSize: a.settings.PageSize,
		Key:      func(p domain.Project) string { return p.ID },
		SearchText: func(p domain.Project) []string {
			return []string{p.Title, l.categoryName(p.CategoryID)}
		},
		Filters: []listing.Filter[domain.Project]{
			{Name: "category", Match: func(p domain.Project, v string) bool {
				return p.CategoryID == v || strings.EqualFold(l.categoryName(p.CategoryID), v)
			}},
			{Name: "type", Match: func(p domain.Project, v string) bool {
				return string(p.Media().Kind) == v
			}},
		},
		Load:     c.ListProjects,
		Requires: []listing.Dependency{l.categories},
		Notifier: a.successNotices(),
		Messages: listing.Messages{Deleted: "Project deleted."},
	})
	return l
}

func (l projectLists) load(ctx context.Context) error {
	if err := l.categories.Load(ctx); err != nil {
		return err
	}
	return l.projects.Load(ctx)
}

func (a *app) newProjectsCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "projects", Aliases: []string{"project"}, Short: "Browse and delete projects"}

	var lf listFlags
	var category, kind string
	list := &cobra.Command{
		Use:   "list",
		Short: "List projects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			l := a.projectLists(a.client())
			if err := l.load(cmd.Context()); err != nil {
				return err
			}
			l.projects.SetSearchQuery(lf.search)
			if err := l.projects.SetFilter("category", category); err != nil {
				return err
			}
			if err := l.projects.SetFilter("type", kind); err != nil {
				return err
			}
			l.projects.SetPage(lf.page)
			printTable(a.out, l.projects.View(), []string{"ID", "TITLE", "CATEGORY", "MEDIA", "CREATED"}, func(p domain.Project) []string {
				title := p.Title
				if title == "" {
					title = "-"
				}
				return []string{p.ID, title, l.categoryName(p.CategoryID), string(p.Media().Kind), date(p.CreatedAt)}
			})
			return nil
		},
	}
	lf.register(list)
	list.Flags().StringVar(&category, "category", "", "category name or id")
	list.Flags().StringVar(&kind, "type", "", "media kind: image, video, videoUrl or none")

	var yes bool
	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a project and its stored file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := a.client()
			l := a.projectLists(c)
			if err := l.load(cmd.Context()); err != nil {
				return err
			}
			p, ok := l.projects.Find(args[0])
			if !ok {
				return errors.New("project not found")
			}
			category := l.categoryName(p.CategoryID)
			dialog := listing.NewDeleteDialog(l.projects, func(ctx context.Context, id string) error {
				return c.DeleteProject(ctx, category, id)
			})
			return a.confirmDelete(cmd.Context(), dialog, p.ID, "Delete project "+p.ID+"?", yes)
		},
	}
	del.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")

	cmd.AddCommand(list, del)
	return cmd
}
