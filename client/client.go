package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/carrental/carrental/client/internal/api"
	"github.com/carrental/carrental/client/internal/session"
	"github.com/carrental/carrental/client/internal/types"
)

// DefaultBaseURL is the address of a locally running rental service.
const DefaultBaseURL = "http://localhost:5000/api"

// --------------------------------------------------------------------
// Client core
// --------------------------------------------------------------------

// Client is a typed client for the car-rental REST service. It is safe for
// concurrent use; calls issued concurrently are independent and may
// complete in any order.
//
// Typed calls decode only the fields declared on the result types; use
// Request to get the service's body byte for byte.
type Client struct {
	baseURL string
	http    *http.Client
	req     *api.Requester
	session *session.Store
	logger  zerolog.Logger
	retry   api.RetryPolicy
	debug   bool

	closedOnce uint32 // ensures Close is idempotent
}

// New constructs a Client for the service rooted at baseURL
// (e.g. "https://rentals.example.com/api").
// Additional options can be provided via functional arguments.
func New(baseURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("baseURL cannot be empty")
	}

	c := &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
		session: &session.Store{},
		logger:  log.Logger,
	}

	// Auto-enable debug via env variable without changing code.
	if debugLoggingRequested() {
		opts = append(opts, WithDebugLogging(true))
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	if c.debug {
		c.http.Transport = &debugTransport{base: c.http.Transport, logger: c.logger}
	}
	// Bearer wrapper goes on last so the debug dump shows the header.
	c.http.Transport = &session.Transport{Base: c.http.Transport, Store: c.session}

	c.req = api.NewRequester(api.Config{
		HTTPClient: c.http,
		BaseURL:    c.baseURL,
		Logger:     c.logger.With().Str("component", "carrental-client").Logger(),
		Retry:      c.retry,
		Observer:   metricsObserver{},
	})
	return c, nil
}

// BaseURL returns the service root the client was built for.
func (c *Client) BaseURL() string { return c.baseURL }

// Close releases idle connections. Safe to call multiple times.
func (c *Client) Close() error {
	if !atomic.CompareAndSwapUint32(&c.closedOnce, 0, 1) {
		return nil
	}
	c.http.CloseIdleConnections()
	return nil
}

// --------------------------------------------------------------------
// Auth operations
// --------------------------------------------------------------------

// Login exchanges credentials for a session. A token in the response is
// kept and sent as a bearer token on later calls.
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	resp, err := api.Login(ctx, c.req, types.LoginRequest{Email: email, Password: password})
	if err != nil {
		return nil, err
	}
	c.rememberToken(resp)
	return resp, nil
}

// Register creates an account. Role defaults to "user" and phone is
// omitted when empty.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	return api.Register(ctx, c.req, req)
}

// VerifyOTP confirms the code sent after registration. A token in the
// response starts a session, as with Login.
func (c *Client) VerifyOTP(ctx context.Context, email, otp string) (*AuthResponse, error) {
	resp, err := api.VerifyOTP(ctx, c.req, types.VerifyOTPRequest{Email: email, OTP: otp})
	if err != nil {
		return nil, err
	}
	c.rememberToken(resp)
	return resp, nil
}

// ForgotPassword asks the service to email a reset code.
func (c *Client) ForgotPassword(ctx context.Context, email string) (*MessageResponse, error) {
	return api.ForgotPassword(ctx, c.req, types.ForgotPasswordRequest{Email: email})
}

// ResetPassword sets newPassword using the emailed code.
func (c *Client) ResetPassword(ctx context.Context, email, otp, newPassword string) (*MessageResponse, error) {
	return api.ResetPassword(ctx, c.req, types.ResetPasswordRequest{Email: email, OTP: otp, NewPassword: newPassword})
}

// ActivateAdmin promotes the current session's account to admin.
func (c *Client) ActivateAdmin(ctx context.Context) (*AuthResponse, error) {
	resp, err := api.ActivateAdmin(ctx, c.req)
	if err != nil {
		return nil, err
	}
	c.rememberToken(resp)
	return resp, nil
}

func (c *Client) rememberToken(resp *AuthResponse) {
	if resp != nil && resp.Token != "" {
		c.session.Set(resp.Token)
	}
}

// --------------------------------------------------------------------
// Car operations
// --------------------------------------------------------------------

// ListCars returns every car.
func (c *Client) ListCars(ctx context.Context) ([]Car, error) {
	return api.ListCars(ctx, c.req)
}

// GetCar retrieves a car by ID.
func (c *Client) GetCar(ctx context.Context, carID string) (*Car, error) {
	return api.GetCar(ctx, c.req, carID)
}

// CreateCar adds a car.
func (c *Client) CreateCar(ctx context.Context, in CarInput) (*Car, error) {
	return api.CreateCar(ctx, c.req, in)
}

// UpdateCar changes the fields set in `in`.
func (c *Client) UpdateCar(ctx context.Context, carID string, in CarInput) (*Car, error) {
	return api.UpdateCar(ctx, c.req, carID, in)
}

// DeleteCar removes a car.
func (c *Client) DeleteCar(ctx context.Context, carID string) (*MessageResponse, error) {
	return api.DeleteCar(ctx, c.req, carID)
}

// --------------------------------------------------------------------
// Booking operations
// --------------------------------------------------------------------

// CreateBooking reserves a car and returns the booking with its server-assigned ID.
func (c *Client) CreateBooking(ctx context.Context, in BookingInput) (*Booking, error) {
	return api.CreateBooking(ctx, c.req, in)
}

// ListBookings returns all bookings.
func (c *Client) ListBookings(ctx context.Context) ([]Booking, error) {
	return api.ListBookings(ctx, c.req)
}

// ListUserBookings returns the bookings of one user.
func (c *Client) ListUserBookings(ctx context.Context, userID string) ([]Booking, error) {
	return api.ListUserBookings(ctx, c.req, userID)
}

// GetBooking retrieves a booking by ID.
func (c *Client) GetBooking(ctx context.Context, bookingID string) (*Booking, error) {
	return api.GetBooking(ctx, c.req, bookingID)
}

// UpdateBooking changes the fields set in `in`.
func (c *Client) UpdateBooking(ctx context.Context, bookingID string, in BookingInput) (*Booking, error) {
	return api.UpdateBooking(ctx, c.req, bookingID, in)
}

// DeleteBooking removes a booking.
func (c *Client) DeleteBooking(ctx context.Context, bookingID string) (*MessageResponse, error) {
	return api.DeleteBooking(ctx, c.req, bookingID)
}

// --------------------------------------------------------------------
// User operations
// --------------------------------------------------------------------

// ListUsers returns every account.
func (c *Client) ListUsers(ctx context.Context) ([]User, error) {
	return api.ListUsers(ctx, c.req)
}

// UpdateUser changes the fields set in `in`.
func (c *Client) UpdateUser(ctx context.Context, userID string, in UserUpdate) (*User, error) {
	return api.UpdateUser(ctx, c.req, userID, in)
}

// --------------------------------------------------------------------
// Notification operations
// --------------------------------------------------------------------

// ListNotifications returns the notifications addressed to userID.
func (c *Client) ListNotifications(ctx context.Context, userID string) ([]Notification, error) {
	return api.ListNotifications(ctx, c.req, userID)
}

// CreateNotification sends a notification.
func (c *Client) CreateNotification(ctx context.Context, in NotificationInput) (*Notification, error) {
	return api.CreateNotification(ctx, c.req, in)
}

// MarkNotificationRead flips the read flag of a notification.
func (c *Client) MarkNotificationRead(ctx context.Context, notificationID string) (*Notification, error) {
	return api.MarkNotificationRead(ctx, c.req, notificationID)
}

// --------------------------------------------------------------------
// Generic requests
// --------------------------------------------------------------------

// RequestConfig configures Client.Request.
type RequestConfig struct {
	Method  string            // defaults to GET
	Headers map[string]string // merged over Content-Type: application/json
	Body    any               // JSON-encoded unless already a string, []byte or json.RawMessage
}

// Request calls an arbitrary endpoint relative to the base URL and returns
// the raw body of a successful response.
func (c *Client) Request(ctx context.Context, endpoint string, cfg RequestConfig) (json.RawMessage, error) {
	return c.req.Do(ctx, endpoint, api.Request{
		Method:  cfg.Method,
		Headers: cfg.Headers,
		Body:    cfg.Body,
	})
}
