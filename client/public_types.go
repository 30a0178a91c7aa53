package client

import "github.com/carrental/carrental/client/internal/types"

// Public type aliases so SDK consumers can import only the client package.
// Requests
type (
	RegisterRequest   = types.RegisterRequest
	CarInput          = types.CarInput
	BookingInput      = types.BookingInput
	UserUpdate        = types.UserUpdate
	NotificationInput = types.NotificationInput

	// Domain entities
	User          = types.User
	Car           = types.Car
	Booking       = types.Booking
	BookingStatus = types.BookingStatus
	Notification  = types.Notification

	// Responses
	AuthResponse    = types.AuthResponse
	MessageResponse = types.MessageResponse
)

const (
	RoleUser  = types.RoleUser
	RoleAdmin = types.RoleAdmin

	BookingPending   = types.BookingPending
	BookingConfirmed = types.BookingConfirmed
	BookingCancelled = types.BookingCancelled
	BookingCompleted = types.BookingCompleted
)

// Bool returns a pointer to b for optional boolean fields.
func Bool(b bool) *bool { return types.Bool(b) }
