package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/devexp-dev/devexp/internal/cli/session"
	"github.com/spf13/cobra"
)

// NewLogoutCmd creates the logout command
func NewLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := session.Open()
			if err != nil {
				return fmt.Errorf("failed to open session store: %w", err)
			}
			return runLogout(store, os.Stdout)
		},
	}
}

func runLogout(store session.Store, out io.Writer) error {
	if err := store.Clear(); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	fmt.Fprintln(out, "✓ Logged out.")
	return nil
}
