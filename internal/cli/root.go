package cli

import (
	"fmt"
	"os"

	"github.com/devexp-dev/devexp/internal/cli/commands"
	"github.com/devexp-dev/devexp/internal/logger"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var version = "dev" // Will be set during build

var rootCmd = &cobra.Command{
	Use:   "devexp",
	Short: "DevExp - A social network for developers",
	Long: `DevExp CLI - Share code, find developers, join groups.

Sessions persist across invocations: log in once with 'devexp login' and
the token is attached to every call until logout or expiry.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// A .env in the working directory may hold DEVEXP_API_URL and
		// credentials for CI.
		_ = godotenv.Load()

		logger.Init(os.Getenv("DEVEXP_LOG_LEVEL"), os.Getenv("DEVEXP_LOG_FORMAT"))
	},
}

func init() {
	// Add version command
	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("devexp version %s\n", version)
		},
	})

	// Add all subcommands
	rootCmd.AddCommand(commands.NewLoginCmd())
	rootCmd.AddCommand(commands.NewRegisterCmd())
	rootCmd.AddCommand(commands.NewLogoutCmd())
	rootCmd.AddCommand(commands.NewWhoamiCmd())
	rootCmd.AddCommand(commands.NewVerifyEmailCmd())
	rootCmd.AddCommand(commands.NewResendVerificationCmd())
	rootCmd.AddCommand(commands.NewPostsCmd())
	rootCmd.AddCommand(commands.NewFeedCmd())
	rootCmd.AddCommand(commands.NewGroupsCmd())
	rootCmd.AddCommand(commands.NewProfileCmd())
	rootCmd.AddCommand(commands.NewAdminCmd())
	rootCmd.AddCommand(commands.NewThemeCmd())
}

// Execute runs the root command
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}
