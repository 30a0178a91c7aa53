package api

import (
	"context"
	"net/http"

	"github.com/carrental/carrental/client/internal/types"
)

// Client-side validation of credentials is intentionally absent; the
// service is the authority on email, password and OTP rules.

// Login exchanges credentials for a session.
func Login(ctx context.Context, r *Requester, req types.LoginRequest) (*types.AuthResponse, error) {
	return call[types.AuthResponse](ctx, r, "login", "/auth/login", Request{
		Method: http.MethodPost,
		Body:   req,
	})
}

// Register creates a new account. An empty role defaults to "user".
func Register(ctx context.Context, r *Requester, req types.RegisterRequest) (*types.AuthResponse, error) {
	if req.Role == "" {
		req.Role = types.RoleUser
	}
	return call[types.AuthResponse](ctx, r, "register", "/auth/register", Request{
		Method: http.MethodPost,
		Body:   req,
	})
}

// VerifyOTP confirms the one-time code sent after registration.
func VerifyOTP(ctx context.Context, r *Requester, req types.VerifyOTPRequest) (*types.AuthResponse, error) {
	return call[types.AuthResponse](ctx, r, "verify otp", "/auth/verify-otp", Request{
		Method: http.MethodPost,
		Body:   req,
	})
}

// ForgotPassword asks the service to send a reset code.
func ForgotPassword(ctx context.Context, r *Requester, req types.ForgotPasswordRequest) (*types.MessageResponse, error) {
	return call[types.MessageResponse](ctx, r, "forgot password", "/auth/forgot-password", Request{
		Method: http.MethodPost,
		Body:   req,
	})
}

// ResetPassword sets a new password using the emailed code.
func ResetPassword(ctx context.Context, r *Requester, req types.ResetPasswordRequest) (*types.MessageResponse, error) {
	return call[types.MessageResponse](ctx, r, "reset password", "/auth/reset-password", Request{
		Method: http.MethodPost,
		Body:   req,
	})
}

// ActivateAdmin promotes the current session's account. It sends no body.
func ActivateAdmin(ctx context.Context, r *Requester) (*types.AuthResponse, error) {
	return call[types.AuthResponse](ctx, r, "activate admin", "/admin/activate", Request{
		Method: http.MethodPost,
	})
}
