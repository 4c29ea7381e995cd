package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/devexp-dev/devexp/internal/cli/client"
	"github.com/spf13/cobra"
)

// NewVerifyEmailCmd creates the verify-email command
func NewVerifyEmailCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify-email <token>",
		Short: "Confirm an emailed verification token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, apiClient, err := openStoreAndClient()
			if err != nil {
				return err
			}
			return runVerifyEmail(cmd.Context(), apiClient, os.Stdout, args[0])
		},
	}
}

func runVerifyEmail(ctx context.Context, apiClient *client.Client, out io.Writer, token string) error {
	message, err := apiClient.VerifyEmail(ctx, token)
	if err != nil {
		return fmt.Errorf("verification failed: %w", err)
	}

	fmt.Fprintf(out, "✓ %s\n", message)
	fmt.Fprintln(out, "Run 'devexp login' to sign in.")
	return nil
}

// NewResendVerificationCmd creates the resend-verification command
func NewResendVerificationCmd() *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "resend-verification",
		Short: "Request a new verification email",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, apiClient, err := openStoreAndClient()
			if err != nil {
				return err
			}
			return runResendVerification(cmd.Context(), apiClient, os.Stdout, email)
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Email address the account was registered with")
	cmd.MarkFlagRequired("email")

	return cmd
}

func runResendVerification(ctx context.Context, apiClient *client.Client, out io.Writer, email string) error {
	result, err := apiClient.ResendVerification(ctx, email)
	if err != nil {
		return fmt.Errorf("resend failed: %w", err)
	}

	if result.Blocked {
		return fmt.Errorf("account is blocked: %s", result.Message)
	}

	if result.Message != "" {
		fmt.Fprintf(out, "✓ %s\n", result.Message)
	} else {
		fmt.Fprintln(out, "✓ Verification email sent.")
	}

	if result.NextResendDelay > 0 {
		fmt.Fprintf(out, "  Next resend allowed in %d seconds.\n", result.NextResendDelay)
	}

	return nil
}
