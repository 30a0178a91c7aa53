package api

import (
	"context"
	"net/http"

	"github.com/carrental/carrental/client/internal/types"
)

// ListCars returns every car.
func ListCars(ctx context.Context, r *Requester) ([]types.Car, error) {
	return callList[types.Car](ctx, r, "list cars", "/cars", Request{})
}

// GetCar retrieves a car by ID.
func GetCar(ctx context.Context, r *Requester, carID string) (*types.Car, error) {
	if err := types.ValidateIDPresent(carID, "carId"); err != nil {
		return nil, err
	}
	return call[types.Car](ctx, r, "get car", "/cars/{id}", Request{
		PathParams: map[string]string{"id": carID},
	})
}

// CreateCar adds a car to the fleet.
func CreateCar(ctx context.Context, r *Requester, in types.CarInput) (*types.Car, error) {
	return call[types.Car](ctx, r, "create car", "/cars", Request{
		Method: http.MethodPost,
		Body:   in,
	})
}

// UpdateCar replaces the fields set in `in` on an existing car.
func UpdateCar(ctx context.Context, r *Requester, carID string, in types.CarInput) (*types.Car, error) {
	if err := types.ValidateIDPresent(carID, "carId"); err != nil {
		return nil, err
	}
	return call[types.Car](ctx, r, "update car", "/cars/{id}", Request{
		Method:     http.MethodPut,
		Body:       in,
		PathParams: map[string]string{"id": carID},
	})
}

// DeleteCar removes a car.
func DeleteCar(ctx context.Context, r *Requester, carID string) (*types.MessageResponse, error) {
	if err := types.ValidateIDPresent(carID, "carId"); err != nil {
		return nil, err
	}
	return call[types.MessageResponse](ctx, r, "delete car", "/cars/{id}", Request{
		Method:     http.MethodDelete,
		PathParams: map[string]string{"id": carID},
	})
}
