package api

import (
	"context"
	"net/http"

	"github.com/carrental/carrental/client/internal/types"
)

// ListNotifications returns the notifications addressed to a user.
func ListNotifications(ctx context.Context, r *Requester, userID string) ([]types.Notification, error) {
	if err := types.ValidateIDPresent(userID, "userId"); err != nil {
		return nil, err
	}
	return callList[types.Notification](ctx, r, "list notifications", "/notifications/{userId}", Request{
		PathParams: map[string]string{"userId": userID},
	})
}

// CreateNotification sends a notification to a user.
func CreateNotification(ctx context.Context, r *Requester, in types.NotificationInput) (*types.Notification, error) {
	return call[types.Notification](ctx, r, "create notification", "/notifications", Request{
		Method: http.MethodPost,
		Body:   in,
	})
}

// MarkNotificationRead flips the server-side read flag. It sends no body.
func MarkNotificationRead(ctx context.Context, r *Requester, notificationID string) (*types.Notification, error) {
	if err := types.ValidateIDPresent(notificationID, "notificationId"); err != nil {
		return nil, err
	}
	return call[types.Notification](ctx, r, "mark notification read", "/notifications/{id}/read", Request{
		Method:     http.MethodPut,
		PathParams: map[string]string{"id": notificationID},
	})
}
