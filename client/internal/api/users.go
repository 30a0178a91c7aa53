package api

import (
	"context"
	"net/http"

	"github.com/carrental/carrental/client/internal/types"
)

// ListUsers returns every account.
func ListUsers(ctx context.Context, r *Requester) ([]types.User, error) {
	return callList[types.User](ctx, r, "list users", "/users", Request{})
}

// UpdateUser changes the fields set in `in` on an account.
func UpdateUser(ctx context.Context, r *Requester, userID string, in types.UserUpdate) (*types.User, error) {
	if err := types.ValidateIDPresent(userID, "userId"); err != nil {
		return nil, err
	}
	return call[types.User](ctx, r, "update user", "/users/{id}", Request{
		Method:     http.MethodPut,
		Body:       in,
		PathParams: map[string]string{"id": userID},
	})
}
