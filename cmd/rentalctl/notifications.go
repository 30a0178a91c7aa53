package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/carrental/carrental/client"
)

func newNotificationsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notifications",
		Short: "Read and send notifications",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list <user-id>",
		Short: "List the notifications of one user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, "list notifications", func(ctx context.Context, c *client.Client) (any, error) {
				return c.ListNotifications(ctx, args[0])
			})
		},
	})

	var in client.NotificationInput
	create := &cobra.Command{
		Use:   "create",
		Short: "Send a notification to a user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, "create notification", func(ctx context.Context, c *client.Client) (any, error) {
				return c.CreateNotification(ctx, in)
			})
		},
	}
	create.Flags().StringVar(&in.UserID, "user-id", "", "Recipient")
	create.Flags().StringVar(&in.Title, "title", "", "Title")
	create.Flags().StringVar(&in.Message, "message", "", "Body text")
	create.Flags().StringVar(&in.Type, "type", "", "Type, e.g. booking")
	_ = create.MarkFlagRequired("user-id")
	_ = create.MarkFlagRequired("message")
	cmd.AddCommand(create)

	cmd.AddCommand(&cobra.Command{
		Use:   "read <notification-id>",
		Short: "Mark a notification as read",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, "mark notification read", func(ctx context.Context, c *client.Client) (any, error) {
				return c.MarkNotificationRead(ctx, args[0])
			})
		},
	})
	return cmd
}
