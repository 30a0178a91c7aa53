package main

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/carrental/carrental/client"
)

func newCarsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cars",
		Short: "Browse and manage the fleet",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List all cars",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, "list cars", func(ctx context.Context, c *client.Client) (any, error) {
				return c.ListCars(ctx)
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "get <car-id>",
		Short: "Show one car",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, "get car", func(ctx context.Context, c *client.Client) (any, error) {
				return c.GetCar(ctx, args[0])
			})
		},
	})
	cmd.AddCommand(newCarWriteCmd(a, "create", "Add a car", cobra.NoArgs,
		func(ctx context.Context, c *client.Client, args []string, in client.CarInput) (any, error) {
			return c.CreateCar(ctx, in)
		}))
	cmd.AddCommand(newCarWriteCmd(a, "update <car-id>", "Change the given fields of a car", cobra.ExactArgs(1),
		func(ctx context.Context, c *client.Client, args []string, in client.CarInput) (any, error) {
			return c.UpdateCar(ctx, args[0], in)
		}))
	cmd.AddCommand(&cobra.Command{
		Use:   "delete <car-id>",
		Short: "Remove a car",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, "delete car", func(ctx context.Context, c *client.Client) (any, error) {
				return c.DeleteCar(ctx, args[0])
			})
		},
	})
	return cmd
}

// newCarWriteCmd builds create and update, which share the car field flags.
func newCarWriteCmd(a *app, use, short string, argsFn cobra.PositionalArgs,
	call func(context.Context, *client.Client, []string, client.CarInput) (any, error)) *cobra.Command {
	var (
		in        client.CarInput
		available bool
	)
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  argsFn,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("available") {
				in.Available = client.Bool(available)
			}
			return a.run(cmd, cmd.Name()+" car", func(ctx context.Context, c *client.Client) (any, error) {
				return call(ctx, c, args, in)
			})
		},
	}
	bindCarFlags(cmd.Flags(), &in)
	cmd.Flags().BoolVar(&available, "available", true, "Whether the car can be booked")
	return cmd
}

func bindCarFlags(fs *pflag.FlagSet, in *client.CarInput) {
	fs.StringVar(&in.Make, "make", "", "Manufacturer")
	fs.StringVar(&in.Model, "model", "", "Model name")
	fs.IntVar(&in.Year, "year", 0, "Model year")
	fs.StringVar(&in.Category, "category", "", "Category, e.g. SUV")
	fs.Float64Var(&in.PricePerDay, "price-per-day", 0, "Daily rate")
	fs.IntVar(&in.Seats, "seats", 0, "Number of seats")
	fs.StringVar(&in.Transmission, "transmission", "", "automatic or manual")
	fs.StringVar(&in.FuelType, "fuel-type", "", "Fuel type")
	fs.StringVar(&in.Location, "location", "", "Pickup location")
	fs.StringVar(&in.ImageURL, "image-url", "", "Image URL")
	fs.StringSliceVar(&in.Features, "feature", nil, "Feature (repeatable)")
}
