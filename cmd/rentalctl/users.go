package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/carrental/carrental/client"
)

func newUsersCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Manage accounts (admin)",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List all accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, "list users", func(ctx context.Context, c *client.Client) (any, error) {
				return c.ListUsers(ctx)
			})
		},
	})

	var (
		upd      client.UserUpdate
		verified bool
	)
	update := &cobra.Command{
		Use:   "update <user-id>",
		Short: "Change the given fields of an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("verified") {
				upd.IsVerified = client.Bool(verified)
			}
			return a.run(cmd, "update user", func(ctx context.Context, c *client.Client) (any, error) {
				return c.UpdateUser(ctx, args[0], upd)
			})
		},
	}
	update.Flags().StringVar(&upd.Name, "name", "", "Full name")
	update.Flags().StringVar(&upd.Email, "email", "", "Email")
	update.Flags().StringVar(&upd.Phone, "phone", "", "Phone number")
	update.Flags().StringVar(&upd.Role, "role", "", "user or admin")
	update.Flags().BoolVar(&verified, "verified", false, "Mark the email as verified")
	cmd.AddCommand(update)
	return cmd
}
