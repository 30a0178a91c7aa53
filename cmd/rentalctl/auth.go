package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/carrental/carrental/client"
)

func newAuthCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Register, log in and manage passwords",
	}
	cmd.AddCommand(newLoginCmd(a))
	cmd.AddCommand(newRegisterCmd(a))
	cmd.AddCommand(newVerifyOTPCmd(a))
	cmd.AddCommand(newForgotPasswordCmd(a))
	cmd.AddCommand(newResetPasswordCmd(a))
	cmd.AddCommand(newActivateAdminCmd(a))
	return cmd
}

func newLoginCmd(a *app) *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and print the session token",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, "login", func(ctx context.Context, c *client.Client) (any, error) {
				return c.Login(ctx, email, password)
			})
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().StringVar(&password, "password", "", "Account password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newRegisterCmd(a *app) *cobra.Command {
	var req client.RegisterRequest
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account; an OTP is emailed for verification",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, "register", func(ctx context.Context, c *client.Client) (any, error) {
				return c.Register(ctx, req)
			})
		},
	}
	cmd.Flags().StringVar(&req.Name, "name", "", "Full name")
	cmd.Flags().StringVar(&req.Email, "email", "", "Account email")
	cmd.Flags().StringVar(&req.Password, "password", "", "Account password")
	cmd.Flags().StringVar(&req.Phone, "phone", "", "Phone number (optional)")
	cmd.Flags().StringVar(&req.Role, "role", client.RoleUser, "Account role")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newVerifyOTPCmd(a *app) *cobra.Command {
	var email, otp string
	cmd := &cobra.Command{
		Use:   "verify-otp",
		Short: "Verify the emailed code and print the session token",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, "verify otp", func(ctx context.Context, c *client.Client) (any, error) {
				return c.VerifyOTP(ctx, email, otp)
			})
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().StringVar(&otp, "otp", "", "One-time code")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("otp")
	return cmd
}

func newForgotPasswordCmd(a *app) *cobra.Command {
	var email string
	cmd := &cobra.Command{
		Use:   "forgot-password",
		Short: "Request a password reset code",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, "forgot password", func(ctx context.Context, c *client.Client) (any, error) {
				return c.ForgotPassword(ctx, email)
			})
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "Account email")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func newResetPasswordCmd(a *app) *cobra.Command {
	var email, otp, newPassword string
	cmd := &cobra.Command{
		Use:   "reset-password",
		Short: "Set a new password using the emailed code",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, "reset password", func(ctx context.Context, c *client.Client) (any, error) {
				return c.ResetPassword(ctx, email, otp, newPassword)
			})
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().StringVar(&otp, "otp", "", "One-time code")
	cmd.Flags().StringVar(&newPassword, "new-password", "", "New password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("otp")
	_ = cmd.MarkFlagRequired("new-password")
	return cmd
}

func newActivateAdminCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "activate-admin",
		Short: "Promote the account behind --token to admin",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, "activate admin", func(ctx context.Context, c *client.Client) (any, error) {
				return c.ActivateAdmin(ctx)
			})
		},
	}
}
