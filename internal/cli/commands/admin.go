package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/devexp-dev/devexp/internal/cli/client"
	"github.com/devexp-dev/devexp/internal/cli/guard"
	"github.com/devexp-dev/devexp/internal/cli/session"
	"github.com/spf13/cobra"
)

// NewAdminCmd creates the admin command group
func NewAdminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Administration panel",
	}

	users := &cobra.Command{
		Use:   "users",
		Short: "Manage user accounts",
	}
	users.AddCommand(newAdminUsersListCmd())
	users.AddCommand(newAdminUsersUpdateCmd())
	users.AddCommand(newAdminUsersDeleteCmd())

	cmd.AddCommand(users)

	return cmd
}

func newAdminUsersListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List all user accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, apiClient, err := openStoreAndClient()
			if err != nil {
				return err
			}
			return runAdminUsersList(cmd.Context(), store, apiClient, os.Stdout)
		},
	}
}

func runAdminUsersList(ctx context.Context, store session.Store, apiClient *client.Client, out io.Writer) error {
	if err := requireCapability(guard.Admin, store); err != nil {
		return err
	}

	users, err := apiClient.AdminListUsers(ctx)
	if err != nil {
		if client.IsKind(err, client.KindForbidden) {
			return fmt.Errorf("the server rejected the request: admin role required")
		}
		return fmt.Errorf("failed to list users: %w", err)
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tEMAIL\tLEVEL\tROLES")
	fmt.Fprintln(w, "──\t────\t─────\t─────\t─────")

	for _, user := range users {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
			user.ID,
			user.Name,
			user.Email,
			user.ExperienceLevel,
			formatRoles(user.Roles),
		)
	}

	w.Flush()

	return nil
}

func newAdminUsersUpdateCmd() *cobra.Command {
	var update client.AdminUserUpdate
	var roles string

	cmd := &cobra.Command{
		Use:   "update <user-id>",
		Short: "Edit any user account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if roles != "" {
				for _, r := range strings.Split(roles, ",") {
					update.Roles = append(update.Roles, session.Role(strings.TrimSpace(r)))
				}
			}
			store, apiClient, err := openStoreAndClient()
			if err != nil {
				return err
			}
			return runAdminUsersUpdate(cmd.Context(), store, apiClient, os.Stdout, id, update)
		},
	}

	cmd.Flags().StringVar(&update.Name, "name", "", "Display name")
	cmd.Flags().StringVar(&update.Email, "email", "", "Email address")
	cmd.Flags().StringVar(&update.ExperienceLevel, "level", "", "Experience level")
	cmd.Flags().StringVar(&roles, "roles", "", "Comma-separated role set, e.g. ROLE_USER,ROLE_ADMIN")

	return cmd
}

func runAdminUsersUpdate(ctx context.Context, store session.Store, apiClient *client.Client, out io.Writer, id int64, update client.AdminUserUpdate) error {
	if err := requireCapability(guard.Admin, store); err != nil {
		return err
	}

	user, err := apiClient.AdminUpdateUser(ctx, id, update)
	if err != nil {
		if client.IsKind(err, client.KindNotFound) {
			return fmt.Errorf("user %d not found", id)
		}
		return fmt.Errorf("failed to update user: %w", err)
	}

	fmt.Fprintf(out, "✓ User %d (%s) updated.\n", user.ID, user.Email)
	return nil
}

func newAdminUsersDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <user-id>",
		Short: "Delete a user account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			store, apiClient, err := openStoreAndClient()
			if err != nil {
				return err
			}
			return runAdminUsersDelete(cmd.Context(), store, apiClient, os.Stdout, id)
		},
	}
}

func runAdminUsersDelete(ctx context.Context, store session.Store, apiClient *client.Client, out io.Writer, id int64) error {
	if err := requireCapability(guard.Admin, store); err != nil {
		return err
	}

	if err := apiClient.AdminDeleteUser(ctx, id); err != nil {
		if client.IsKind(err, client.KindNotFound) {
			return fmt.Errorf("user %d not found", id)
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}

	fmt.Fprintf(out, "✓ User %d deleted.\n", id)
	return nil
}
