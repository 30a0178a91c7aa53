package handlers

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog/log"

	"github.com/carrental/carrental/client"
)

// CarHandler exposes read-only fleet tools.
type CarHandler struct {
	client *client.Client
}

func NewCarHandler(c *client.Client) *CarHandler { return &CarHandler{client: c} }

func (ch *CarHandler) RegisterTools(s *server.MCPServer) error {
	list := mcp.NewTool("list_cars",
		mcp.WithDescription("List rentable cars; returns id, make, model, price per day and availability"),
		mcp.WithBoolean("available_only", mcp.Description("Only return cars that can be booked now")),
		mcp.WithString("location", mcp.Description("Only return cars at this pickup location (case-insensitive)")),
	)
	get := mcp.NewTool("get_car",
		mcp.WithDescription("Get the full record of one car"),
		mcp.WithString("car_id", mcp.Required(), mcp.Description("Car ID")),
	)
	s.AddTool(list, ch.handleListCars)
	s.AddTool(get, ch.handleGetCar)
	return nil
}

func (ch *CarHandler) handleListCars(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	availableOnly := req.GetBool("available_only", false)
	location := optionalString(req, "location")

	log.Debug().Bool("available_only", availableOnly).Str("location", location).Msg("list_cars invoked")

	start := time.Now()
	cars, err := ch.client.ListCars(ctx)
	elapsed := time.Since(start)
	if err != nil {
		log.Error().Err(err).Dur("elapsed", elapsed).Msg("list_cars failed")
		return mcp.NewToolResultError(fmt.Sprintf("failed to list cars: %v", err)), nil
	}

	// reduce to the fields needed for picking a car
	type lite struct {
		ID          string  `json:"id"`
		Make        string  `json:"make"`
		Model       string  `json:"model"`
		PricePerDay float64 `json:"pricePerDay"`
		Location    string  `json:"location,omitempty"`
		Available   bool    `json:"available"`
	}
	out := make([]lite, 0, len(cars))
	for _, c := range cars {
		if availableOnly && !c.Available {
			continue
		}
		if location != "" && !strings.EqualFold(c.Location, location) {
			continue
		}
		out = append(out, lite{ID: c.ID, Make: c.Make, Model: c.Model, PricePerDay: c.PricePerDay, Location: c.Location, Available: c.Available})
	}
	return jsonResult(out)
}

func (ch *CarHandler) handleGetCar(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	carID, err := req.RequireString("car_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	log.Debug().Str("car_id", carID).Msg("get_car invoked")

	car, err := ch.client.GetCar(ctx, carID)
	if err != nil {
		log.Error().Err(err).Str("car_id", carID).Msg("get_car failed")
		return mcp.NewToolResultError(fmt.Sprintf("failed to get car: %v", err)), nil
	}
	return jsonResult(car)
}
