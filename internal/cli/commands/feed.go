package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/devexp-dev/devexp/internal/cli/client"
	"github.com/devexp-dev/devexp/internal/cli/guard"
	"github.com/devexp-dev/devexp/internal/cli/session"
	"github.com/spf13/cobra"
)

// NewFeedCmd creates the feed command group
func NewFeedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "feed",
		Short: "Developer directory and trending",
	}

	cmd.AddCommand(newFeedDevelopersCmd())
	cmd.AddCommand(newFeedTrendingCmd())

	return cmd
}

func newFeedDevelopersCmd() *cobra.Command {
	var query client.DeveloperQuery

	cmd := &cobra.Command{
		Use:   "developers",
		Short: "Browse the developer directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, apiClient, err := openStoreAndClient()
			if err != nil {
				return err
			}
			return runFeedDevelopers(cmd.Context(), store, apiClient, os.Stdout, query)
		},
	}

	cmd.Flags().IntVar(&query.Page, "page", 0, "Page number (zero-based)")
	cmd.Flags().IntVar(&query.Size, "size", 9, "Page size")
	cmd.Flags().StringVar(&query.Search, "search", "", "Filter by name")
	cmd.Flags().StringVar(&query.ExperienceLevel, "level", "", "Filter by experience level: JUNIOR, PLENO or SENIOR")

	return cmd
}

func runFeedDevelopers(ctx context.Context, store session.Store, apiClient *client.Client, out io.Writer, query client.DeveloperQuery) error {
	if err := requireCapability(guard.Authenticated, store); err != nil {
		return err
	}

	page, err := apiClient.Developers(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to load developers: %w", err)
	}

	if len(page.Content) == 0 {
		fmt.Fprintln(out, "No developers found.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tLEVEL\tGITHUB")
	fmt.Fprintln(w, "──\t────\t─────\t──────")

	for _, dev := range page.Content {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", dev.ID, dev.Name, dev.ExperienceLevel, dev.GitHub)
	}

	w.Flush()

	fmt.Fprintf(out, "\nPage %d of %d\n", page.Number+1, page.TotalPages)

	return nil
}

func newFeedTrendingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "trending",
		Short: "Show trending developers",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, apiClient, err := openStoreAndClient()
			if err != nil {
				return err
			}
			return runFeedTrending(cmd.Context(), store, apiClient, os.Stdout)
		},
	}
}

func runFeedTrending(ctx context.Context, store session.Store, apiClient *client.Client, out io.Writer) error {
	if err := requireCapability(guard.Authenticated, store); err != nil {
		return err
	}

	trending, err := apiClient.Trending(ctx)
	if err != nil {
		return fmt.Errorf("failed to load trending developers: %w", err)
	}

	if len(trending) == 0 {
		fmt.Fprintln(out, "Nothing trending right now.")
		return nil
	}

	for i, dev := range trending {
		fmt.Fprintf(out, "%d. %s (%s)\n", i+1, dev.Name, dev.ExperienceLevel)
	}

	return nil
}
