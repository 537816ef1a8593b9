package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newIdentityCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "identity",
		Short: "Device identity commands",
	}

	cmd.AddCommand(newIdentityRegisterCmd())
	cmd.AddCommand(newIdentityMeCmd())
	cmd.AddCommand(newIdentityRenameCmd())

	return cmd
}

func newIdentityRegisterCmd() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register this device and pick a username",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"username": name}
			var result Identity

			if err := client.Post("/api/v1/identities", req, &result); err != nil {
				return err
			}

			// The identity id doubles as the device token
			if err := cfg.SaveToken(result.ID); err != nil {
				return fmt.Errorf("failed to save device token: %w", err)
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Username (required)")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newIdentityMeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "me",
		Short: "Show the current identity",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Identity

			if err := client.Get("/api/v1/identities/me", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newIdentityRenameCmd() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "rename",
		Short: "Change the username on this device",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"username": name}
			var result Identity

			if err := client.Patch("/api/v1/identities/me", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New username (required)")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}
