package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/devexp-dev/devexp/internal/cli/client"
	"github.com/devexp-dev/devexp/internal/cli/guard"
	"github.com/devexp-dev/devexp/internal/cli/session"
	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/cobra"
)

// NewWhoamiCmd creates the whoami command
func NewWhoamiCmd() *cobra.Command {
	var refresh bool

	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged-in user",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, apiClient, err := openStoreAndClient()
			if err != nil {
				return err
			}
			return runWhoami(cmd.Context(), store, apiClient, os.Stdout, refresh)
		},
	}

	cmd.Flags().BoolVar(&refresh, "refresh", false, "Refetch the profile from the API instead of showing the cached snapshot")

	return cmd
}

func runWhoami(ctx context.Context, store session.Store, apiClient *client.Client, out io.Writer, refresh bool) error {
	if err := requireCapability(guard.Authenticated, store); err != nil {
		return err
	}

	sess := store.Current()
	user := sess.User

	if refresh || user == nil {
		fetched, err := apiClient.Me(ctx)
		if err != nil {
			return fmt.Errorf("failed to fetch profile: %w", err)
		}
		if err := store.Save(sess.Token, fetched); err != nil {
			return fmt.Errorf("failed to update session: %w", err)
		}
		user = fetched
	}

	fmt.Fprintf(out, "User:  %s (%s)\n", user.Name, user.Email)
	fmt.Fprintf(out, "ID:    %d\n", user.ID)
	if user.ExperienceLevel != "" {
		fmt.Fprintf(out, "Level: %s\n", user.ExperienceLevel)
	}
	if user.GitHub != "" {
		fmt.Fprintf(out, "GitHub: %s\n", user.GitHub)
	}
	fmt.Fprintf(out, "Roles: %s\n", formatRoles(user.Roles))

	// Display only. The server remains the authority on expiry; a stale
	// token is discovered via 401 on the next call.
	if exp := tokenExpiry(sess.Token); !exp.IsZero() {
		fmt.Fprintf(out, "Token expires: %s\n", exp.Format(time.RFC3339))
	}

	return nil
}

func formatRoles(roles []session.Role) string {
	if len(roles) == 0 {
		return "(none)"
	}
	parts := make([]string, len(roles))
	for i, r := range roles {
		parts[i] = string(r)
	}
	return strings.Join(parts, ", ")
}

// tokenExpiry reads the exp claim without verifying the signature. The
// zero time means the claim is absent or the token is not a JWT.
func tokenExpiry(token string) time.Time {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return time.Time{}
	}
	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}
	}
	return exp.Time
}
