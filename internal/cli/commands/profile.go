package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/devexp-dev/devexp/internal/cli/client"
	"github.com/devexp-dev/devexp/internal/cli/guard"
	"github.com/devexp-dev/devexp/internal/cli/session"
	"github.com/spf13/cobra"
)

// NewProfileCmd creates the profile command group
func NewProfileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "View and edit developer profiles",
	}

	cmd.AddCommand(newProfileShowCmd())
	cmd.AddCommand(newProfileUpdateCmd())

	return cmd
}

func newProfileShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [user-id]",
		Short: "Show a profile (your own by default)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var id int64 = -1
			if len(args) == 1 {
				parsed, err := parseID(args[0])
				if err != nil {
					return err
				}
				id = parsed
			}
			store, apiClient, err := openStoreAndClient()
			if err != nil {
				return err
			}
			return runProfileShow(cmd.Context(), store, apiClient, os.Stdout, id)
		},
	}
}

func runProfileShow(ctx context.Context, store session.Store, apiClient *client.Client, out io.Writer, id int64) error {
	if err := requireCapability(guard.Authenticated, store); err != nil {
		return err
	}

	var user *session.User
	var err error

	if id < 0 {
		user, err = apiClient.Me(ctx)
	} else {
		user, err = apiClient.GetUser(ctx, id)
	}
	if err != nil {
		if client.IsKind(err, client.KindNotFound) {
			return fmt.Errorf("user %d not found", id)
		}
		return fmt.Errorf("failed to load profile: %w", err)
	}

	fmt.Fprintf(out, "%s (%s)\n", user.Name, user.Email)
	fmt.Fprintf(out, "ID:    %d\n", user.ID)
	if user.ExperienceLevel != "" {
		fmt.Fprintf(out, "Level: %s\n", user.ExperienceLevel)
	}
	if user.GitHub != "" {
		fmt.Fprintf(out, "GitHub: https://github.com/%s\n", user.GitHub)
	}
	if user.Bio != "" {
		fmt.Fprintf(out, "Bio:   %s\n", user.Bio)
	}

	return nil
}

func newProfileUpdateCmd() *cobra.Command {
	var update client.UserUpdate

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Edit your own profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, apiClient, err := openStoreAndClient()
			if err != nil {
				return err
			}
			return runProfileUpdate(cmd.Context(), store, apiClient, os.Stdout, update)
		},
	}

	cmd.Flags().StringVar(&update.Name, "name", "", "Display name")
	cmd.Flags().StringVar(&update.Bio, "bio", "", "Short bio")
	cmd.Flags().StringVar(&update.GitHub, "github", "", "GitHub username")
	cmd.Flags().StringVar(&update.Avatar, "avatar", "", "Avatar URL")
	cmd.Flags().StringVar(&update.ExperienceLevel, "level", "", "Experience level: JUNIOR, PLENO or SENIOR")

	return cmd
}

func runProfileUpdate(ctx context.Context, store session.Store, apiClient *client.Client, out io.Writer, update client.UserUpdate) error {
	if err := requireCapability(guard.Authenticated, store); err != nil {
		return err
	}

	if update == (client.UserUpdate{}) {
		return fmt.Errorf("nothing to update: pass at least one of --name, --bio, --github, --avatar, --level")
	}

	self, err := currentUserID(ctx, store, apiClient)
	if err != nil {
		return err
	}

	updated, err := apiClient.UpdateUser(ctx, self, update)
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}

	// Profile edits propagate into the stored snapshot.
	if err := store.Save(store.Current().Token, updated); err != nil {
		return fmt.Errorf("failed to refresh session snapshot: %w", err)
	}

	fmt.Fprintln(out, "✓ Profile updated.")
	return nil
}
