package types

import "time"

// ------------------------------
// Request Types
// ------------------------------
//
// Update payloads use omitempty throughout so a PUT carries only the fields
// the caller set. Booleans are pointers for the same reason.

// LoginRequest holds login credentials
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest holds parameters for a new account. Role defaults to
// RoleUser when empty.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone,omitempty"`
	Role     string `json:"role"`
}

// VerifyOTPRequest confirms a one-time code sent to an email address
type VerifyOTPRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

// ForgotPasswordRequest starts the password reset flow
type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// ResetPasswordRequest completes the password reset flow
type ResetPasswordRequest struct {
	Email       string `json:"email"`
	OTP         string `json:"otp"`
	NewPassword string `json:"newPassword"`
}

// CarInput is the body of car create and update calls
type CarInput struct {
	Make         string   `json:"make,omitempty"`
	Model        string   `json:"model,omitempty"`
	Year         int      `json:"year,omitempty"`
	Category     string   `json:"category,omitempty"`
	PricePerDay  float64  `json:"pricePerDay,omitempty"`
	Seats        int      `json:"seats,omitempty"`
	Transmission string   `json:"transmission,omitempty"`
	FuelType     string   `json:"fuelType,omitempty"`
	Location     string   `json:"location,omitempty"`
	ImageURL     string   `json:"imageUrl,omitempty"`
	Features     []string `json:"features,omitempty"`
	Available    *bool    `json:"available,omitempty"`
}

// BookingInput is the body of booking create and update calls
type BookingInput struct {
	CarID           string        `json:"carId,omitempty"`
	UserID          string        `json:"userId,omitempty"`
	StartDate       *time.Time    `json:"startDate,omitempty"`
	EndDate         *time.Time    `json:"endDate,omitempty"`
	PickupLocation  string        `json:"pickupLocation,omitempty"`
	DropoffLocation string        `json:"dropoffLocation,omitempty"`
	TotalPrice      float64       `json:"totalPrice,omitempty"`
	Status          BookingStatus `json:"status,omitempty"`
}

// UserUpdate is the body of the user update call
type UserUpdate struct {
	Name       string `json:"name,omitempty"`
	Email      string `json:"email,omitempty"`
	Phone      string `json:"phone,omitempty"`
	Role       string `json:"role,omitempty"`
	IsVerified *bool  `json:"isVerified,omitempty"`
}

// NotificationInput is the body of the notification create call
type NotificationInput struct {
	UserID  string `json:"userId"`
	Title   string `json:"title,omitempty"`
	Message string `json:"message"`
	Type    string `json:"type,omitempty"`
}

// Bool returns a pointer to b, for the optional flags above.
func Bool(b bool) *bool { return &b }
