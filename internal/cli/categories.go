package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"dsignme/internal/apiclient"
	"dsignme/internal/domain"
	"dsignme/internal/listing"
)

func (a *app) categories(c *apiclient.Client) *listing.Controller[domain.Category] {
	return listing.New(listing.Config[domain.Category]{
		PageSize:   a.settings.PageSize,
		Key:        func(c domain.Category) string { return c.ID },
		SearchText: func(c domain.Category) []string { return []string{c.NameCategory} },
		Load:       c.ListCategories,
		Notifier:   a.successNotices(),
		Messages: listing.Messages{
			Created: "Category created.",
			Updated: "Category renamed.",
			Deleted: "Category deleted.",
		},
	})
}

func (a *app) newCategoriesCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "categories", Aliases: []string{"category"}, Short: "Manage categories"}

	var lf listFlags
	list := &cobra.Command{
		Use:   "list",
		Short: "List categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctrl := a.categories(a.client())
			if err := ctrl.Load(cmd.Context()); err != nil {
				return err
			}
			ctrl.SetSearchQuery(lf.search)
			ctrl.SetPage(lf.page)
			printTable(a.out, ctrl.View(), []string{"ID", "NAME", "CREATED"}, func(c domain.Category) []string {
				return []string{c.ID, c.NameCategory, date(c.CreatedAt)}
			})
			return nil
		},
	}
	lf.register(list)

	add := &cobra.Command{
		Use:   "add <name>",
		Short: "Create a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := apiclient.Validate(apiclient.CategoryForm{Name: args[0]}); err != nil {
				return err
			}
			c := a.client()
			cat, err := a.categories(c).Create(cmd.Context(), func(ctx context.Context) (domain.Category, error) {
				return c.CreateCategory(ctx, args[0])
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(a.out, cat.ID, cat.NameCategory)
			return nil
		},
	}

	rename := &cobra.Command{
		Use:   "rename <id> <name>",
		Short: "Rename a category",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := apiclient.Validate(apiclient.CategoryForm{Name: args[1]}); err != nil {
				return err
			}
			c := a.client()
			_, err := a.categories(c).Update(cmd.Context(), args[0], func(ctx context.Context) (domain.Category, error) {
				return c.UpdateCategory(ctx, args[0], args[1])
			})
			return err
		},
	}

	var yes bool
	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a category with its projects and service steps",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := a.client()
			ctrl := a.categories(c)
			dialog := listing.NewDeleteDialog(ctrl, c.DeleteCategory)
			return a.confirmDelete(cmd.Context(), dialog, args[0], "Delete category "+args[0]+" and everything filed under it?", yes)
		},
	}
	del.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")

	cmd.AddCommand(list, add, rename, del)
	return cmd
}

// confirmDelete walks the delete dialog: request, ask, then confirm or cancel.
func (a *app) confirmDelete(ctx context.Context, d interface {
	Request(string) error
	Confirm(context.Context) error
	Cancel() error
}, id, question string, yes bool) error {
	if err := d.Request(id); err != nil {
		return err
	}
	if !a.confirm(question, yes) {
		fmt.Fprintln(a.out, "Cancelled.")
		return d.Cancel()
	}
	return d.Confirm(ctx)
}
