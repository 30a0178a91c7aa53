package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/carrental/carrental/client"
)

func newBookingsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bookings",
		Short: "Create and manage reservations",
	}
	cmd.AddCommand(newBookingWriteCmd(a, "create", "Book a car", cobra.NoArgs,
		func(ctx context.Context, c *client.Client, args []string, in client.BookingInput) (any, error) {
			return c.CreateBooking(ctx, in)
		}))
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List every booking (admin)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, "list bookings", func(ctx context.Context, c *client.Client) (any, error) {
				return c.ListBookings(ctx)
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "list-user <user-id>",
		Short: "List the bookings of one user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, "list user bookings", func(ctx context.Context, c *client.Client) (any, error) {
				return c.ListUserBookings(ctx, args[0])
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "get <booking-id>",
		Short: "Show one booking",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, "get booking", func(ctx context.Context, c *client.Client) (any, error) {
				return c.GetBooking(ctx, args[0])
			})
		},
	})
	cmd.AddCommand(newBookingWriteCmd(a, "update <booking-id>", "Change the given fields of a booking", cobra.ExactArgs(1),
		func(ctx context.Context, c *client.Client, args []string, in client.BookingInput) (any, error) {
			return c.UpdateBooking(ctx, args[0], in)
		}))
	cmd.AddCommand(&cobra.Command{
		Use:   "delete <booking-id>",
		Short: "Remove a booking",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, "delete booking", func(ctx context.Context, c *client.Client) (any, error) {
				return c.DeleteBooking(ctx, args[0])
			})
		},
	})
	return cmd
}

func newBookingWriteCmd(a *app, use, short string, argsFn cobra.PositionalArgs,
	call func(context.Context, *client.Client, []string, client.BookingInput) (any, error)) *cobra.Command {
	var (
		in         client.BookingInput
		start, end string
		status     string
	)
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  argsFn,
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if in.StartDate, err = parseDate(start); err != nil {
				return fmt.Errorf("--start: %w", err)
			}
			if in.EndDate, err = parseDate(end); err != nil {
				return fmt.Errorf("--end: %w", err)
			}
			in.Status = client.BookingStatus(status)
			return a.run(cmd, cmd.Name()+" booking", func(ctx context.Context, c *client.Client) (any, error) {
				return call(ctx, c, args, in)
			})
		},
	}
	fs := cmd.Flags()
	fs.StringVar(&in.CarID, "car-id", "", "Car to book")
	fs.StringVar(&in.UserID, "user-id", "", "User the booking belongs to")
	fs.StringVar(&start, "start", "", "Start date (2006-01-02 or RFC 3339)")
	fs.StringVar(&end, "end", "", "End date (2006-01-02 or RFC 3339)")
	fs.StringVar(&in.PickupLocation, "pickup", "", "Pickup location")
	fs.StringVar(&in.DropoffLocation, "dropoff", "", "Drop-off location")
	fs.Float64Var(&in.TotalPrice, "total-price", 0, "Total price; computed by the service when omitted")
	fs.StringVar(&status, "status", "", "pending, confirmed, cancelled or completed")
	return cmd
}

// parseDate accepts a calendar date or an RFC 3339 timestamp. Empty input
// yields nil so the field is omitted.
func parseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("invalid date %q", s)
}
