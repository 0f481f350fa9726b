package cli

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"dsignme/internal/apiclient"
	"dsignme/internal/domain"
	"dsignme/internal/listing"
)

func (a *app) steps(c *apiclient.Client, category string) *listing.Controller[domain.ServiceStep] {
	return listing.New(listing.Config[domain.ServiceStep]{
		PageSize: a.settings.PageSize,
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
			return c.ListServiceSteps(ctx, category)
		},
		Notifier: a.successNotices(),
		Messages: listing.Messages{Created: "Service step created.", Deleted: "Service step deleted."},
	})
}

// parseSubtitle reads "text|heading one,heading two".
func parseSubtitle(s string) domain.Subtitle {
	text, headings, _ := strings.Cut(s, "|")
	sub := domain.Subtitle{Text: strings.TrimSpace(text), Headings: []string{}}
	if headings != "" {
		sub.Headings = strings.Split(headings, ",")
	}
	return sub
}

func (a *app) newStepsCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "steps", Aliases: []string{"servicesteps"}, Short: "Manage service steps of a category"}

	var lf listFlags
	list := &cobra.Command{
		Use:   "list <category>",
		Short: "List service steps",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl := a.steps(a.client(), args[0])
			if err := ctrl.Load(cmd.Context()); err != nil {
				return err
			}
			ctrl.SetSearchQuery(lf.search)
			ctrl.SetPage(lf.page)
			printTable(a.out, ctrl.View(), []string{"ID", "TITLE", "SUBTITLES"}, func(s domain.ServiceStep) []string {
				texts := make([]string, 0, len(s.Subtitles))
				for _, sub := range s.Subtitles {
					texts = append(texts, sub.Text)
				}
				return []string{s.ID, s.Title, strings.Join(texts, "; ")}
			})
			return nil
		},
	}
	lf.register(list)

	var title string
	var subtitles []string
	add := &cobra.Command{
		Use:   "add <category>",
		Short: "Create a service step",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := a.client()
			cats := a.categories(c)
			if err := cats.Load(cmd.Context()); err != nil {
				return err
			}
			var categoryID string
			want := domain.CategorySlug(domain.NormalizeCategoryName(args[0]))
			for _, cat := range cats.Items() {
				if domain.CategorySlug(cat.NameCategory) == want {
					categoryID = cat.ID
				}
			}
			if categoryID == "" {
				return &apiclient.FormError{Field: "CategoryID", Message: "Category not found"}
			}
			form := apiclient.ServiceStepForm{CategoryID: categoryID, Title: title}
			for _, s := range subtitles {
				form.Subtitles = append(form.Subtitles, parseSubtitle(s))
			}
			if err := apiclient.Validate(form); err != nil {
				return err
			}
			_, err := a.steps(c, args[0]).Create(cmd.Context(), func(ctx context.Context) (domain.ServiceStep, error) {
				return c.CreateServiceStep(ctx, args[0], form.Input())
			})
			return err
		},
	}
	add.Flags().StringVar(&title, "title", "", "step title")
	add.Flags().StringArrayVar(&subtitles, "subtitle", nil, `subtitle as "text|heading,heading" (repeatable)`)

	var yes bool
	del := &cobra.Command{
		Use:   "delete <category> <id>",
		Short: "Delete a service step",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := a.client()
			category := args[0]
			dialog := listing.NewDeleteDialog(a.steps(c, category), func(ctx context.Context, id string) error {
				return c.DeleteServiceStep(ctx, category, id)
			})
			return a.confirmDelete(cmd.Context(), dialog, args[1], "Delete service step "+args[1]+"?", yes)
		},
	}
	del.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")

	cmd.AddCommand(list, add, del)
	return cmd
}
