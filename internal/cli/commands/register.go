package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"syscall"

	"github.com/devexp-dev/devexp/internal/cli/client"
	"github.com/go-playground/validator/v10"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var experienceLevels = []string{"JUNIOR", "PLENO", "SENIOR"}

// NewRegisterCmd creates the register command
func NewRegisterCmd() *cobra.Command {
	var req client.RegisterRequest

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a DevExp account",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, apiClient, err := openStoreAndClient()
			if err != nil {
				return err
			}
			return runRegister(cmd.Context(), apiClient, os.Stdout, req)
		},
	}

	cmd.Flags().StringVar(&req.Name, "name", "", "Full name")
	cmd.Flags().StringVar(&req.Email, "email", "", "Email address")
	cmd.Flags().StringVar(&req.Password, "password", "", "Password (will prompt if not provided)")
	cmd.Flags().StringVar(&req.GitHub, "github", "", "GitHub username (optional)")
	cmd.Flags().StringVar(&req.ExperienceLevel, "level", "", "Experience level: JUNIOR, PLENO or SENIOR (will prompt if not provided)")

	return cmd
}

func runRegister(ctx context.Context, apiClient *client.Client, out io.Writer, req client.RegisterRequest) error {
	interactive := term.IsTerminal(int(syscall.Stdin))

	if req.Password == "" {
		if !interactive {
			return fmt.Errorf("password is required in non-interactive mode (use --password flag)")
		}
		fmt.Fprint(out, "Password: ")
		bytePassword, err := term.ReadPassword(int(syscall.Stdin))
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}
		req.Password = string(bytePassword)
		fmt.Fprintln(out)
	}

	if req.ExperienceLevel == "" {
		if !interactive {
			return fmt.Errorf("experience level is required in non-interactive mode (use --level flag)")
		}
		level, err := promptExperienceLevel()
		if err != nil {
			return err
		}
		req.ExperienceLevel = level
	}

	if err := validator.New().Struct(req); err != nil {
		if fieldErrs, ok := err.(validator.ValidationErrors); ok && len(fieldErrs) > 0 {
			return fmt.Errorf("invalid registration: field '%s' failed '%s' validation", fieldErrs[0].Field(), fieldErrs[0].Tag())
		}
		return fmt.Errorf("invalid registration: %w", err)
	}

	if err := apiClient.Register(ctx, req); err != nil {
		return fmt.Errorf("registration failed: %w", err)
	}

	fmt.Fprintln(out, "✓ Account created!")
	fmt.Fprintf(out, "  Check %s for a verification link, then run 'devexp login'.\n", req.Email)

	return nil
}

func promptExperienceLevel() (string, error) {
	prompt := promptui.Select{
		Label: "Experience level",
		Items: experienceLevels,
		Size:  len(experienceLevels),
	}

	_, level, err := prompt.Run()
	if err != nil {
		return "", fmt.Errorf("experience level selection cancelled: %w", err)
	}

	return level, nil
}
