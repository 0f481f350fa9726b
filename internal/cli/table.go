package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"dsignme/internal/listing"
)

type listFlags struct {
	search string
	page   int
}

func (f *listFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.search, "search", "", "case-insensitive text filter")
	cmd.Flags().IntVar(&f.page, "page", 1, "page number")
}

// successNotices prints confirmations; failures come back as errors.
func (a *app) successNotices() listing.Notifier {
	return listing.NotifierFunc(func(n listing.Notice) {
		if n.Level == listing.LevelSuccess {
			fmt.Fprintln(a.out, n.Message)
		}
	})
}

func printTable[T any](out io.Writer, v listing.View[T], header []string, row func(T) []string) {
	if v.Error != "" {
		fmt.Fprintln(out, "Error:", v.Error)
		return
	}
	if v.Empty {
		fmt.Fprintln(out, "No results.")
		return
	}
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	for _, it := range v.Items {
		fmt.Fprintln(tw, strings.Join(row(it), "\t"))
	}
	_ = tw.Flush()
	fmt.Fprintf(out, "Page %d of %d (%d of %d shown)\n", v.Page, max(1, v.TotalPages), len(v.Items), v.Filtered)
}

func date(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("2006-01-02")
}
