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

// NewPostsCmd creates the posts command group
func NewPostsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "posts",
		Short: "Browse and publish posts",
	}

	cmd.AddCommand(newPostsListCmd())
	cmd.AddCommand(newPostsCreateCmd())
	cmd.AddCommand(newPostsDeleteCmd())
	cmd.AddCommand(newPostsLikeCmd())
	cmd.AddCommand(newPostsCommentCmd())

	return cmd
}

func newPostsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List the post feed",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, apiClient, err := openStoreAndClient()
			if err != nil {
				return err
			}
			return runPostsList(cmd.Context(), store, apiClient, os.Stdout)
		},
	}
}

func runPostsList(ctx context.Context, store session.Store, apiClient *client.Client, out io.Writer) error {
	if err := requireCapability(guard.Authenticated, store); err != nil {
		return err
	}

	posts, err := apiClient.ListPosts(ctx)
	if err != nil {
		if client.IsKind(err, client.KindUnauthorized) {
			return fmt.Errorf("session expired. Run 'devexp login' again")
		}
		return err
	}

	if len(posts) == 0 {
		fmt.Fprintln(out, "No posts yet.")
		fmt.Fprintln(out, "\nPublish one with: devexp posts create --content \"...\"")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tAUTHOR\tLIKES\tCOMMENTS\tCONTENT")
	fmt.Fprintln(w, "──\t──────\t─────\t────────\t───────")

	for _, post := range posts {
		content := post.Content
		if len(content) > 60 {
			content = content[:57] + "..."
		}
		if post.Language != "" {
			content = fmt.Sprintf("%s [%s]", content, post.Language)
		}
		fmt.Fprintf(w, "%d\t%s\t%d\t%d\t%s\n",
			post.ID,
			post.Author.Name,
			post.Likes,
			len(post.Comments),
			content,
		)
	}

	w.Flush()

	return nil
}

func newPostsCreateCmd() *cobra.Command {
	var req client.CreatePostRequest

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Publish a post",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, apiClient, err := openStoreAndClient()
			if err != nil {
				return err
			}
			return runPostsCreate(cmd.Context(), store, apiClient, os.Stdout, req)
		},
	}

	cmd.Flags().StringVar(&req.Content, "content", "", "Post text")
	cmd.Flags().StringVar(&req.Code, "code", "", "Code snippet (optional)")
	cmd.Flags().StringVar(&req.Language, "language", "", "Snippet language, e.g. go, javascript (optional)")
	cmd.MarkFlagRequired("content")

	return cmd
}

func runPostsCreate(ctx context.Context, store session.Store, apiClient *client.Client, out io.Writer, req client.CreatePostRequest) error {
	if err := requireCapability(guard.Authenticated, store); err != nil {
		return err
	}

	if req.Code != "" && req.Language == "" {
		return fmt.Errorf("--language is required when --code is set")
	}

	post, err := apiClient.CreatePost(ctx, req)
	if err != nil {
		return fmt.Errorf("failed to publish post: %w", err)
	}

	fmt.Fprintf(out, "✓ Post %d published.\n", post.ID)
	return nil
}

func newPostsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <post-id>",
		Short: "Delete a post",
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
			if err := apiClient.DeletePost(cmd.Context(), id); err != nil {
				if client.IsKind(err, client.KindNotFound) {
					return fmt.Errorf("post %d not found", id)
				}
				return err
			}
			fmt.Printf("✓ Post %d deleted.\n", id)
			return nil
		},
	}
}

func newPostsLikeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "like <post-id>",
		Short: "Like a post",
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
			if err := apiClient.LikePost(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Printf("✓ Liked post %d.\n", id)
			return nil
		},
	}
}

func newPostsCommentCmd() *cobra.Command {
	var content string

	cmd := &cobra.Command{
		Use:   "comment <post-id>",
		Short: "Comment on a post",
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
			if err := apiClient.CommentPost(cmd.Context(), id, content); err != nil {
				return err
			}
			fmt.Printf("✓ Comment added to post %d.\n", id)
			return nil
		},
	}

	cmd.Flags().StringVar(&content, "content", "", "Comment text")
	cmd.MarkFlagRequired("content")

	return cmd
}
