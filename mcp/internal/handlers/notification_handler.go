package handlers

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog/log"

	"github.com/carrental/carrental/client"
)

// NotificationHandler exposes inbox tools.
type NotificationHandler struct {
	client *client.Client
}

func NewNotificationHandler(c *client.Client) *NotificationHandler {
	return &NotificationHandler{client: c}
}

func (nh *NotificationHandler) RegisterTools(s *server.MCPServer) error {
	list := mcp.NewTool("list_notifications",
		mcp.WithDescription("List the notifications of one user"),
		mcp.WithString("user_id", mcp.Required(), mcp.Description("User ID")),
		mcp.WithBoolean("unread_only", mcp.Description("Skip notifications already marked read")),
	)
	markRead := mcp.NewTool("mark_notification_read",
		mcp.WithDescription("Mark one notification as read"),
		mcp.WithString("notification_id", mcp.Required(), mcp.Description("Notification ID")),
	)
	s.AddTool(list, nh.handleListNotifications)
	s.AddTool(markRead, nh.handleMarkRead)
	return nil
}

func (nh *NotificationHandler) handleListNotifications(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	userID, err := req.RequireString("user_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	unreadOnly := req.GetBool("unread_only", false)

	notifications, err := nh.client.ListNotifications(ctx, userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("list_notifications failed")
		return mcp.NewToolResultError(fmt.Sprintf("failed to list notifications: %v", err)), nil
	}
	if unreadOnly {
		unread := notifications[:0]
		for _, n := range notifications {
			if !n.Read {
				unread = append(unread, n)
			}
		}
		notifications = unread
	}
	return jsonResult(notifications)
}

func (nh *NotificationHandler) handleMarkRead(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("notification_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	n, err := nh.client.MarkNotificationRead(ctx, id)
	if err != nil {
		log.Error().Err(err).Str("notification_id", id).Msg("mark_notification_read failed")
		return mcp.NewToolResultError(fmt.Sprintf("failed to mark notification read: %v", err)), nil
	}
	return jsonResult(n)
}
