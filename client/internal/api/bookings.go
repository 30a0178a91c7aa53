package api

import (
	"context"
	"net/http"

	"github.com/carrental/carrental/client/internal/types"
)

// CreateBooking reserves a car. The service assigns the booking ID.
func CreateBooking(ctx context.Context, r *Requester, in types.BookingInput) (*types.Booking, error) {
	return call[types.Booking](ctx, r, "create booking", "/bookings", Request{
		Method: http.MethodPost,
		Body:   in,
	})
}

// ListBookings returns all bookings visible to the session.
func ListBookings(ctx context.Context, r *Requester) ([]types.Booking, error) {
	return callList[types.Booking](ctx, r, "list bookings", "/bookings", Request{})
}

// ListUserBookings returns the bookings made by one user.
func ListUserBookings(ctx context.Context, r *Requester, userID string) ([]types.Booking, error) {
	if err := types.ValidateIDPresent(userID, "userId"); err != nil {
		return nil, err
	}
	return callList[types.Booking](ctx, r, "list user bookings", "/bookings/user/{userId}", Request{
		PathParams: map[string]string{"userId": userID},
	})
}

// GetBooking retrieves a booking by ID.
func GetBooking(ctx context.Context, r *Requester, bookingID string) (*types.Booking, error) {
	if err := types.ValidateIDPresent(bookingID, "bookingId"); err != nil {
		return nil, err
	}
	return call[types.Booking](ctx, r, "get booking", "/bookings/{id}", Request{
		PathParams: map[string]string{"id": bookingID},
	})
}

// UpdateBooking changes the fields set in `in`, including status transitions.
func UpdateBooking(ctx context.Context, r *Requester, bookingID string, in types.BookingInput) (*types.Booking, error) {
	if err := types.ValidateIDPresent(bookingID, "bookingId"); err != nil {
		return nil, err
	}
	return call[types.Booking](ctx, r, "update booking", "/bookings/{id}", Request{
		Method:     http.MethodPut,
		Body:       in,
		PathParams: map[string]string{"id": bookingID},
	})
}

// DeleteBooking removes a booking.
func DeleteBooking(ctx context.Context, r *Requester, bookingID string) (*types.MessageResponse, error) {
	if err := types.ValidateIDPresent(bookingID, "bookingId"); err != nil {
		return nil, err
	}
	return call[types.MessageResponse](ctx, r, "delete booking", "/bookings/{id}", Request{
		Method:     http.MethodDelete,
		PathParams: map[string]string{"id": bookingID},
	})
}
