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

// NewGroupsCmd creates the groups command group
func NewGroupsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "groups",
		Short: "Browse and manage developer groups",
	}

	cmd.AddCommand(newGroupsListCmd())
	cmd.AddCommand(newGroupsCreateCmd())
	cmd.AddCommand(newGroupsUpdateCmd())
	cmd.AddCommand(newGroupsDeleteCmd())
	cmd.AddCommand(newGroupsJoinCmd())
	cmd.AddCommand(newGroupsLeaveCmd())

	return cmd
}

func newGroupsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List groups",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, apiClient, err := openStoreAndClient()
			if err != nil {
				return err
			}
			return runGroupsList(cmd.Context(), store, apiClient, os.Stdout)
		},
	}
}

func runGroupsList(ctx context.Context, store session.Store, apiClient *client.Client, out io.Writer) error {
	if err := requireCapability(guard.Authenticated, store); err != nil {
		return err
	}

	groups, err := apiClient.ListGroups(ctx)
	if err != nil {
		return fmt.Errorf("failed to list groups: %w", err)
	}

	if len(groups) == 0 {
		fmt.Fprintln(out, "No groups found.")
		fmt.Fprintln(out, "\nCreate one with: devexp groups create --name <name>")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tOWNER\tMEMBERS\tDESCRIPTION")
	fmt.Fprintln(w, "──\t────\t─────\t───────\t───────────")

	for _, group := range groups {
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%s\n",
			group.ID,
			group.Name,
			group.Owner.Name,
			len(group.Members),
			group.Description,
		)
	}

	w.Flush()

	return nil
}

func newGroupsCreateCmd() *cobra.Command {
	var req client.GroupRequest

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a group",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, apiClient, err := openStoreAndClient()
			if err != nil {
				return err
			}
			if err := requireCapability(guard.Authenticated, store); err != nil {
				return err
			}
			group, err := apiClient.CreateGroup(cmd.Context(), req)
			if err != nil {
				return fmt.Errorf("failed to create group: %w", err)
			}
			fmt.Printf("✓ Group '%s' created (ID %d).\n", group.Name, group.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&req.Name, "name", "", "Group name")
	cmd.Flags().StringVar(&req.Description, "description", "", "Group description")
	cmd.MarkFlagRequired("name")

	return cmd
}

func newGroupsUpdateCmd() *cobra.Command {
	var req client.GroupRequest

	cmd := &cobra.Command{
		Use:   "update <group-id>",
		Short: "Update a group's name or description",
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
			if err := requireCapability(guard.Authenticated, store); err != nil {
				return err
			}
			group, err := apiClient.UpdateGroup(cmd.Context(), id, req)
			if err != nil {
				return fmt.Errorf("failed to update group: %w", err)
			}
			fmt.Printf("✓ Group '%s' updated.\n", group.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&req.Name, "name", "", "New group name")
	cmd.Flags().StringVar(&req.Description, "description", "", "New group description")

	return cmd
}

func newGroupsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <group-id>",
		Short: "Delete a group",
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
			if err := requireCapability(guard.Authenticated, store); err != nil {
				return err
			}
			if err := apiClient.DeleteGroup(cmd.Context(), id); err != nil {
				if client.IsKind(err, client.KindNotFound) {
					return fmt.Errorf("group %d not found", id)
				}
				return err
			}
			fmt.Printf("✓ Group %d deleted.\n", id)
			return nil
		},
	}
}

func newGroupsJoinCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "join <group-id>",
		Short: "Join a group",
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
			return runGroupsJoin(cmd.Context(), store, apiClient, os.Stdout, id)
		},
	}
}

func runGroupsJoin(ctx context.Context, store session.Store, apiClient *client.Client, out io.Writer, groupID int64) error {
	if err := requireCapability(guard.Authenticated, store); err != nil {
		return err
	}

	self, err := currentUserID(ctx, store, apiClient)
	if err != nil {
		return err
	}

	if err := apiClient.AddGroupMember(ctx, groupID, self); err != nil {
		return fmt.Errorf("failed to join group: %w", err)
	}

	fmt.Fprintf(out, "✓ Joined group %d.\n", groupID)
	return nil
}

func newGroupsLeaveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "leave <group-id>",
		Short: "Leave a group",
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
			return runGroupsLeave(cmd.Context(), store, apiClient, os.Stdout, id)
		},
	}
}

func runGroupsLeave(ctx context.Context, store session.Store, apiClient *client.Client, out io.Writer, groupID int64) error {
	if err := requireCapability(guard.Authenticated, store); err != nil {
		return err
	}

	self, err := currentUserID(ctx, store, apiClient)
	if err != nil {
		return err
	}

	if err := apiClient.RemoveGroupMember(ctx, groupID, self); err != nil {
		return fmt.Errorf("failed to leave group: %w", err)
	}

	fmt.Fprintf(out, "✓ Left group %d.\n", groupID)
	return nil
}

// currentUserID resolves the requester's own ID, fetching the profile if
// only a token is cached.
func currentUserID(ctx context.Context, store session.Store, apiClient *client.Client) (int64, error) {
	sess := store.Current()
	if sess.User != nil {
		return sess.User.ID, nil
	}

	user, err := apiClient.Me(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to resolve current user: %w", err)
	}
	if err := store.Save(sess.Token, user); err != nil {
		return 0, fmt.Errorf("failed to update session: %w", err)
	}
	return user.ID, nil
}
