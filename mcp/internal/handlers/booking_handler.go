package handlers

import (
	"context"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog/log"

	"github.com/carrental/carrental/client"
)

// BookingHandler exposes reservation tools.
type BookingHandler struct {
	client *client.Client
}

func NewBookingHandler(c *client.Client) *BookingHandler { return &BookingHandler{client: c} }

func (bh *BookingHandler) RegisterTools(s *server.MCPServer) error {
	create := mcp.NewTool("create_booking",
		mcp.WithDescription("Book a car for a user; returns the booking with its id, status and total price"),
		mcp.WithString("car_id", mcp.Required(), mcp.Description("Car ID (see list_cars)")),
		mcp.WithString("user_id", mcp.Required(), mcp.Description("User ID of the renter")),
		mcp.WithString("start_date", mcp.Description("Start date, YYYY-MM-DD or RFC 3339")),
		mcp.WithString("end_date", mcp.Description("End date, YYYY-MM-DD or RFC 3339")),
		mcp.WithString("pickup_location", mcp.Description("Pickup location")),
		mcp.WithString("dropoff_location", mcp.Description("Drop-off location")),
	)
	get := mcp.NewTool("get_booking",
		mcp.WithDescription("Get one booking"),
		mcp.WithString("booking_id", mcp.Required(), mcp.Description("Booking ID")),
	)
	listUser := mcp.NewTool("list_user_bookings",
		mcp.WithDescription("List the bookings of one user"),
		mcp.WithString("user_id", mcp.Required(), mcp.Description("User ID")),
	)
	cancel := mcp.NewTool("cancel_booking",
		mcp.WithDescription("Cancel a booking; the record is kept with status cancelled"),
		mcp.WithString("booking_id", mcp.Required(), mcp.Description("Booking ID")),
	)
	s.AddTool(create, bh.handleCreateBooking)
	s.AddTool(get, bh.handleGetBooking)
	s.AddTool(listUser, bh.handleListUserBookings)
	s.AddTool(cancel, bh.handleCancelBooking)
	return nil
}

func (bh *BookingHandler) handleCreateBooking(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	carID, err := req.RequireString("car_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	userID, err := req.RequireString("user_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	in := client.BookingInput{
		CarID:           carID,
		UserID:          userID,
		PickupLocation:  optionalString(req, "pickup_location"),
		DropoffLocation: optionalString(req, "dropoff_location"),
	}
	if in.StartDate, err = parseDate(optionalString(req, "start_date")); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if in.EndDate, err = parseDate(optionalString(req, "end_date")); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	log.Debug().Str("car_id", carID).Str("user_id", userID).Msg("create_booking invoked")

	start := time.Now()
	b, err := bh.client.CreateBooking(ctx, in)
	elapsed := time.Since(start)
	if err != nil {
		log.Error().Err(err).Dur("elapsed", elapsed).Msg("create_booking failed")
		return mcp.NewToolResultError(fmt.Sprintf("failed to create booking: %v", err)), nil
	}
	return jsonResult(b)
}

func (bh *BookingHandler) handleGetBooking(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	bookingID, err := req.RequireString("booking_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	b, err := bh.client.GetBooking(ctx, bookingID)
	if err != nil {
		log.Error().Err(err).Str("booking_id", bookingID).Msg("get_booking failed")
		return mcp.NewToolResultError(fmt.Sprintf("failed to get booking: %v", err)), nil
	}
	return jsonResult(b)
}

func (bh *BookingHandler) handleListUserBookings(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	userID, err := req.RequireString("user_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	bookings, err := bh.client.ListUserBookings(ctx, userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("list_user_bookings failed")
		return mcp.NewToolResultError(fmt.Sprintf("failed to list bookings: %v", err)), nil
	}
	return jsonResult(bookings)
}

func (bh *BookingHandler) handleCancelBooking(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	bookingID, err := req.RequireString("booking_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	log.Debug().Str("booking_id", bookingID).Msg("cancel_booking invoked")

	b, err := bh.client.UpdateBooking(ctx, bookingID, client.BookingInput{Status: client.BookingCancelled})
	if err != nil {
		log.Error().Err(err).Str("booking_id", bookingID).Msg("cancel_booking failed")
		return mcp.NewToolResultError(fmt.Sprintf("failed to cancel booking: %v", err)), nil
	}
	return jsonResult(b)
}
