package client

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carrental/carrental/client/rentaltest"
)

func newTestClient(t *testing.T, srv *rentaltest.Server, opts ...Option) *Client {
	t.Helper()
	opts = append([]Option{WithLogger(zerolog.Nop())}, opts...)
	c, err := New(srv.BaseURL(), opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func seedSession(t *testing.T, srv *rentaltest.Server, email, role string) (*Client, User) {
	t.Helper()
	u, err := srv.SeedUser("Test User", email, "pw", role)
	require.NoError(t, err)
	tok, err := srv.TokenFor(u.ID)
	require.NoError(t, err)
	return newTestClient(t, srv, WithToken(tok)), u
}

func TestAuthFlow_RegisterVerifyLoginSession(t *testing.T) {
	srv := rentaltest.NewServer()
	defer srv.Close()
	c := newTestClient(t, srv)
	ctx := context.Background()

	reg, err := c.Register(ctx, RegisterRequest{Name: "Ada", Email: "ada@example.com", Password: "secret"})
	require.NoError(t, err)
	require.NotNil(t, reg.User)
	assert.Equal(t, RoleUser, reg.User.Role)
	assert.Empty(t, c.Token(), "registration does not start a session")

	otp, ok := srv.OTP("ada@example.com")
	require.True(t, ok)
	verified, err := c.VerifyOTP(ctx, "ada@example.com", otp)
	require.NoError(t, err)
	assert.True(t, verified.User.IsVerified)
	assert.Equal(t, verified.Token, c.Token())

	c.ClearSession()
	_, err = c.Session()
	assert.ErrorIs(t, err, ErrNoSession)

	resp, err := c.Login(ctx, "ada@example.com", "secret")
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)

	info, err := c.Session()
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, info.UserID)
	assert.Equal(t, RoleUser, info.Role)
	assert.False(t, info.Expired(time.Now()))

	// The stored token is sent as bearer: a protected route now succeeds.
	bookings, err := c.ListUserBookings(ctx, reg.User.ID)
	require.NoError(t, err)
	assert.Empty(t, bookings)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	srv := rentaltest.NewServer()
	defer srv.Close()
	_, err := srv.SeedUser("Ada", "a@b.com", "good", "")
	require.NoError(t, err)
	c := newTestClient(t, srv)

	_, err = c.Login(context.Background(), "a@b.com", "bad")
	require.Error(t, err)
	assert.Equal(t, "Invalid credentials", err.Error())
	assert.True(t, IsUnauthorized(err))
	assert.Empty(t, c.Token())
}

func TestPasswordReset(t *testing.T) {
	srv := rentaltest.NewServer()
	defer srv.Close()
	_, err := srv.SeedUser("Ada", "a@b.com", "old", "")
	require.NoError(t, err)
	c := newTestClient(t, srv)
	ctx := context.Background()

	msg, err := c.ForgotPassword(ctx, "a@b.com")
	require.NoError(t, err)
	assert.Equal(t, "OTP sent to your email", msg.Message)

	otp, _ := srv.OTP("a@b.com")
	msg, err = c.ResetPassword(ctx, "a@b.com", otp, "new")
	require.NoError(t, err)
	assert.Equal(t, "Password reset successful", msg.Message)

	_, err = c.Login(ctx, "a@b.com", "new")
	assert.NoError(t, err)
}

func TestActivateAdmin_RefreshesSession(t *testing.T) {
	srv := rentaltest.NewServer()
	defer srv.Close()
	c, _ := seedSession(t, srv, "a@b.com", "")
	ctx := context.Background()

	_, err := c.CreateCar(ctx, CarInput{Make: "VW", Model: "Golf"})
	require.Error(t, err)
	assert.Equal(t, http.StatusForbidden, StatusCode(err))

	resp, err := c.ActivateAdmin(ctx)
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, resp.User.Role)

	info, err := c.Session()
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, info.Role)

	_, err = c.CreateCar(ctx, CarInput{Make: "VW", Model: "Golf"})
	assert.NoError(t, err)
}

func TestCars(t *testing.T) {
	srv := rentaltest.NewServer()
	defer srv.Close()
	c, _ := seedSession(t, srv, "root@b.com", RoleAdmin)
	ctx := context.Background()

	car, err := c.CreateCar(ctx, CarInput{Make: "VW", Model: "Golf", PricePerDay: 40, Features: []string{"ac"}})
	require.NoError(t, err)
	require.NotEmpty(t, car.ID)

	got, err := c.GetCar(ctx, car.ID)
	require.NoError(t, err)
	assert.Equal(t, car.ID, got.ID)
	assert.Equal(t, []string{"ac"}, got.Features)

	updated, err := c.UpdateCar(ctx, car.ID, CarInput{Available: Bool(false)})
	require.NoError(t, err)
	assert.False(t, updated.Available)
	assert.Equal(t, 40.0, updated.PricePerDay)

	cars, err := c.ListCars(ctx)
	require.NoError(t, err)
	assert.Len(t, cars, 1)

	_, err = c.DeleteCar(ctx, car.ID)
	require.NoError(t, err)

	_, err = c.GetCar(ctx, car.ID)
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
	assert.Equal(t, "Car not found", err.Error())
}

func TestBookings(t *testing.T) {
	srv := rentaltest.NewServer()
	defer srv.Close()
	c, u := seedSession(t, srv, "a@b.com", "")
	car := srv.SeedCar(CarInput{Make: "VW", Model: "Golf", PricePerDay: 40})
	ctx := context.Background()

	start := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	end := start.Add(48 * time.Hour)
	b, err := c.CreateBooking(ctx, BookingInput{CarID: car.ID, UserID: u.ID, StartDate: &start, EndDate: &end})
	require.NoError(t, err)
	require.NotEmpty(t, b.ID)
	assert.Equal(t, BookingPending, b.Status)
	assert.Equal(t, 80.0, b.TotalPrice)

	got, err := c.GetBooking(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, car.ID, got.CarID)

	upd, err := c.UpdateBooking(ctx, b.ID, BookingInput{Status: BookingCancelled})
	require.NoError(t, err)
	assert.Equal(t, BookingCancelled, upd.Status)

	mine, err := c.ListUserBookings(ctx, u.ID)
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	_, err = c.ListBookings(ctx)
	assert.Equal(t, http.StatusForbidden, StatusCode(err), "listing all bookings is admin only")

	_, err = c.DeleteBooking(ctx, b.ID)
	require.NoError(t, err)
	_, err = c.GetBooking(ctx, b.ID)
	assert.True(t, IsNotFound(err))
}

func TestUsers(t *testing.T) {
	srv := rentaltest.NewServer()
	defer srv.Close()
	c, admin := seedSession(t, srv, "root@b.com", RoleAdmin)
	other, err := srv.SeedUser("Bob", "bob@b.com", "pw", "")
	require.NoError(t, err)
	ctx := context.Background()

	users, err := c.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, admin.ID, users[0].ID)

	u, err := c.UpdateUser(ctx, other.ID, UserUpdate{Phone: "555-0100", IsVerified: Bool(false)})
	require.NoError(t, err)
	assert.Equal(t, "555-0100", u.Phone)
	assert.False(t, u.IsVerified)
	assert.Equal(t, "Bob", u.Name)
}

func TestNotifications(t *testing.T) {
	srv := rentaltest.NewServer()
	defer srv.Close()
	c, u := seedSession(t, srv, "a@b.com", "")
	ctx := context.Background()

	n, err := c.CreateNotification(ctx, NotificationInput{UserID: u.ID, Title: "Booking", Message: "Confirmed", Type: "booking"})
	require.NoError(t, err)
	assert.False(t, n.Read)

	read, err := c.MarkNotificationRead(ctx, n.ID)
	require.NoError(t, err)
	assert.True(t, read.Read)

	list, err := c.ListNotifications(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.True(t, list[0].Read)
}

func TestMissingIDNeverHitsNetwork(t *testing.T) {
	var calls int
	hc := &http.Client{Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
		calls++
		return okResponse(r)
	})}
	c, err := New("http://example.com/api", WithHTTPClient(hc), WithLogger(zerolog.Nop()))
	require.NoError(t, err)
	ctx := context.Background()

	_, err = c.GetCar(ctx, "")
	assert.ErrorIs(t, err, ErrMissingID)
	_, err = c.DeleteBooking(ctx, "")
	assert.ErrorIs(t, err, ErrMissingID)
	_, err = c.MarkNotificationRead(ctx, "")
	assert.ErrorIs(t, err, ErrMissingID)
	assert.Zero(t, calls)
}

func TestRequest_NonJSONBodyRejected(t *testing.T) {
	hc := &http.Client{Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
		return &http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(strings.NewReader("<html>ok</html>")),
			Header:     http.Header{"Content-Type": []string{"text/html"}},
		}, nil
	})}
	c, err := New("http://example.com/api", WithHTTPClient(hc), WithLogger(zerolog.Nop()))
	require.NoError(t, err)

	raw, err := c.Request(context.Background(), "/cars", RequestConfig{})
	assert.Nil(t, raw)
	var invalid *InvalidResponseError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, http.StatusOK, invalid.StatusCode)
}

func TestRequest_Generic(t *testing.T) {
	srv := rentaltest.NewServer()
	defer srv.Close()
	srv.SeedCar(CarInput{Make: "VW", Model: "Golf"})
	c := newTestClient(t, srv)

	raw, err := c.Request(context.Background(), "/cars", RequestConfig{})
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"model":"Golf"`)

	_, err = c.Request(context.Background(), "/auth/login", RequestConfig{
		Method: http.MethodPost,
		Body:   `{"email":"nobody@b.com","password":"x"}`,
	})
	require.Error(t, err)
	apiErr, ok := AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, "Invalid credentials", apiErr.Message)
}

func TestTransportFailure(t *testing.T) {
	srv := rentaltest.NewServer()
	url := srv.BaseURL()
	srv.Close()

	c, err := New(url, WithLogger(zerolog.Nop()))
	require.NoError(t, err)
	_, err = c.ListCars(context.Background())
	require.Error(t, err)
	assert.True(t, IsTransportError(err))
	_, isAPI := AsAPIError(err)
	assert.False(t, isAPI)
}

func TestRetry_RecoversFromTransientFailure(t *testing.T) {
	srv := rentaltest.NewServer()
	defer srv.Close()
	srv.SeedCar(CarInput{Make: "VW", Model: "Golf"})
	ctx := context.Background()

	plain := newTestClient(t, srv)
	srv.FailNext(1, http.StatusServiceUnavailable, "maintenance")
	_, err := plain.ListCars(ctx)
	require.Error(t, err)
	assert.Equal(t, "maintenance", err.Error(), "no retry by default")

	retrying := newTestClient(t, srv, WithRetry(3, time.Millisecond, 5*time.Millisecond))
	srv.FailNext(2, http.StatusServiceUnavailable, "maintenance")
	cars, err := retrying.ListCars(ctx)
	require.NoError(t, err)
	assert.Len(t, cars, 1)
}

func TestContextCancelled(t *testing.T) {
	srv := rentaltest.NewServer()
	defer srv.Close()
	c := newTestClient(t, srv)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.ListCars(ctx)
	require.Error(t, err)
	assert.True(t, IsTransportError(err))
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestConcurrentCalls(t *testing.T) {
	srv := rentaltest.NewServer()
	defer srv.Close()
	car := srv.SeedCar(CarInput{Make: "VW", Model: "Golf"})
	c := newTestClient(t, srv)

	errs := make(chan error, 16)
	for i := 0; i < cap(errs); i++ {
		go func() {
			_, err := c.GetCar(context.Background(), car.ID)
			errs <- err
		}()
	}
	for i := 0; i < cap(errs); i++ {
		assert.NoError(t, <-errs)
	}
}
