package main

import (
	"context"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/carrental/carrental/client"
)

// overview is the dashboard summary printed by `rentalctl overview`.
type overview struct {
	Cars             int                          `json:"cars"`
	AvailableCars    int                          `json:"availableCars"`
	Bookings         int                          `json:"bookings"`
	BookingsByStatus map[client.BookingStatus]int `json:"bookingsByStatus"`
	Users            int                          `json:"users"`
	Admins           int                          `json:"admins"`
}

func newOverviewCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "overview",
		Short: "Summarize cars, bookings and users (admin)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, "overview", func(ctx context.Context, c *client.Client) (any, error) {
				return fetchOverview(ctx, c)
			})
		},
	}
}

// fetchOverview issues the three list calls concurrently; the first
// failure cancels the others.
func fetchOverview(ctx context.Context, c *client.Client) (*overview, error) {
	var (
		cars     []client.Car
		bookings []client.Booking
		users    []client.User
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		cars, err = c.ListCars(gctx)
		return err
	})
	g.Go(func() (err error) {
		bookings, err = c.ListBookings(gctx)
		return err
	})
	g.Go(func() (err error) {
		users, err = c.ListUsers(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	ov := &overview{
		Cars:             len(cars),
		Bookings:         len(bookings),
		BookingsByStatus: make(map[client.BookingStatus]int),
		Users:            len(users),
	}
	for _, car := range cars {
		if car.Available {
			ov.AvailableCars++
		}
	}
	for _, b := range bookings {
		ov.BookingsByStatus[b.Status]++
	}
	for _, u := range users {
		if u.Role == client.RoleAdmin {
			ov.Admins++
		}
	}
	return ov, nil
}
