package types

import "time"

// ------------------------------
// Core Domain Entities
// ------------------------------

// Role values understood by the service.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// BookingStatus is the lifecycle state the service reports for a booking.
type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
	BookingCompleted BookingStatus = "completed"
)

// User represents a registered account
type User struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Email      string     `json:"email"`
	Phone      string     `json:"phone,omitempty"`
	Role       string     `json:"role"`
	IsVerified bool       `json:"isVerified"`
	CreatedAt  *time.Time `json:"createdAt,omitempty"`
	UpdatedAt  *time.Time `json:"updatedAt,omitempty"`
}

// Car represents a rentable vehicle
type Car struct {
	ID           string     `json:"id"`
	Make         string     `json:"make"`
	Model        string     `json:"model"`
	Year         int        `json:"year,omitempty"`
	Category     string     `json:"category,omitempty"`
	PricePerDay  float64    `json:"pricePerDay"`
	Seats        int        `json:"seats,omitempty"`
	Transmission string     `json:"transmission,omitempty"`
	FuelType     string     `json:"fuelType,omitempty"`
	Location     string     `json:"location,omitempty"`
	ImageURL     string     `json:"imageUrl,omitempty"`
	Features     []string   `json:"features,omitempty"`
	Available    bool       `json:"available"`
	CreatedAt    *time.Time `json:"createdAt,omitempty"`
	UpdatedAt    *time.Time `json:"updatedAt,omitempty"`
}

// Booking represents a reservation of a car by a user
type Booking struct {
	ID              string        `json:"id"`
	CarID           string        `json:"carId"`
	UserID          string        `json:"userId"`
	StartDate       *time.Time    `json:"startDate,omitempty"`
	EndDate         *time.Time    `json:"endDate,omitempty"`
	PickupLocation  string        `json:"pickupLocation,omitempty"`
	DropoffLocation string        `json:"dropoffLocation,omitempty"`
	TotalPrice      float64       `json:"totalPrice,omitempty"`
	Status          BookingStatus `json:"status,omitempty"`
	CreatedAt       *time.Time    `json:"createdAt,omitempty"`
	UpdatedAt       *time.Time    `json:"updatedAt,omitempty"`
}

// Notification represents an in-app message addressed to one user
type Notification struct {
	ID        string     `json:"id"`
	UserID    string     `json:"userId"`
	Title     string     `json:"title,omitempty"`
	Message   string     `json:"message"`
	Type      string     `json:"type,omitempty"`
	Read      bool       `json:"read"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
}
