package commands

import (
	"fmt"

	"github.com/devexp-dev/devexp/internal/cli/userconfig"
	"github.com/spf13/cobra"
)

// NewThemeCmd creates the theme command. The preference is independent
// of the session: logging out keeps it.
func NewThemeCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "theme [light|dark]",
		Short:     "Show or set the UI theme preference",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{userconfig.ThemeLight, userconfig.ThemeDark},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				fmt.Println(userconfig.GetTheme())
				return nil
			}

			if err := userconfig.SetTheme(args[0]); err != nil {
				return err
			}
			fmt.Printf("✓ Theme set to %s.\n", args[0])
			return nil
		},
	}
}
