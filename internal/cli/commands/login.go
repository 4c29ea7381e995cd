package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"syscall"

	"github.com/devexp-dev/devexp/internal/cli/client"
	"github.com/devexp-dev/devexp/internal/cli/session"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// NewLoginCmd creates the login command
func NewLoginCmd() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate with the DevExp API",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, apiClient, err := openStoreAndClient()
			if err != nil {
				return err
			}
			return runLogin(cmd.Context(), store, apiClient, os.Stdout, email, password)
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Email address (or set DEVEXP_EMAIL)")
	cmd.Flags().StringVar(&password, "password", "", "Password (or set DEVEXP_PASSWORD, will prompt if not provided)")

	return cmd
}

func runLogin(ctx context.Context, store session.Store, apiClient *client.Client, out io.Writer, email, password string) error {
	// Check for environment variables (useful for CI/CD)
	if email == "" {
		email = os.Getenv("DEVEXP_EMAIL")
	}
	if password == "" {
		password = os.Getenv("DEVEXP_PASSWORD")
	}

	if email == "" {
		return fmt.Errorf("email is required (use --email flag or DEVEXP_EMAIL env var)")
	}

	// Prompt for password if not provided via flag or env var
	if password == "" {
		if term.IsTerminal(int(syscall.Stdin)) {
			fmt.Fprint(out, "Password: ")
			bytePassword, err := term.ReadPassword(int(syscall.Stdin))
			if err != nil {
				return fmt.Errorf("failed to read password: %w", err)
			}
			password = string(bytePassword)
			fmt.Fprintln(out)
		} else {
			return fmt.Errorf("password is required in non-interactive mode (use --password flag or DEVEXP_PASSWORD env var)")
		}
	}

	loginResp, err := apiClient.Login(ctx, email, password)
	if err != nil {
		if client.IsKind(err, client.KindEmailNotVerified) {
			return fmt.Errorf("email not verified. Run 'devexp resend-verification --email %s' to get a new link", email)
		}
		return fmt.Errorf("login failed: %w", err)
	}

	if loginResp.AccessToken == "" {
		return fmt.Errorf("login succeeded but no access token was returned")
	}

	user := loginResp.User
	if user == nil {
		// Older API versions return only the token; fetch the profile
		// with it before the session is considered complete.
		if err := store.Save(loginResp.AccessToken, nil); err != nil {
			return fmt.Errorf("failed to save authentication token: %w", err)
		}
		user, err = apiClient.Me(ctx)
		if err != nil {
			// Leave no half-session behind. A 401 already cleared it.
			if !client.IsKind(err, client.KindUnauthorized) {
				_ = store.Clear()
			}
			return fmt.Errorf("failed to fetch profile after login: %w", err)
		}
	}

	if err := store.Save(loginResp.AccessToken, user); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	fmt.Fprintln(out, "✓ Login successful!")
	fmt.Fprintf(out, "  User: %s (%s)\n", user.Name, user.Email)
	if user.IsAdmin() {
		fmt.Fprintln(out, "  Role: Admin")
	}

	return nil
}
