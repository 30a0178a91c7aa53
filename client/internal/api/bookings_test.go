package api

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/carrental/carrental/client/internal/types"
)

func TestCreateBooking_ExactBody(t *testing.T) {
	t.Parallel()
	srv, got := stubServer(t, http.StatusCreated, `{"id":"b1","carId":"42","userId":"7","status":"pending"}`)

	b, err := CreateBooking(context.Background(), newTestRequester(srv), types.BookingInput{CarID: "42", UserID: "7"})
	if err != nil {
		t.Fatalf("CreateBooking error: %v", err)
	}
	if got.Method != http.MethodPost || got.Path != "/api/bookings" {
		t.Fatalf("unexpected request: %s %s", got.Method, got.Path)
	}
	if string(got.Body) != `{"carId":"42","userId":"7"}` {
		t.Fatalf("unexpected body: %s", got.Body)
	}
	if b.ID != "b1" || b.Status != types.BookingPending {
		t.Fatalf("unexpected booking: %+v", b)
	}
}

func TestCreateBooking_Dates(t *testing.T) {
	t.Parallel()
	srv, got := stubServer(t, http.StatusCreated, `{"id":"b2"}`)
	start := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	end := start.Add(72 * time.Hour)
	_, err := CreateBooking(context.Background(), newTestRequester(srv), types.BookingInput{CarID: "1", UserID: "2", StartDate: &start, EndDate: &end})
	if err != nil {
		t.Fatalf("CreateBooking error: %v", err)
	}
	want := `{"carId":"1","userId":"2","startDate":"2026-03-01T10:00:00Z","endDate":"2026-03-04T10:00:00Z"}`
	if string(got.Body) != want {
		t.Fatalf("unexpected body: %s", got.Body)
	}
}

func TestBookings_Paths(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	srv, got := jsonServer(t, http.StatusOK, []types.Booking{{ID: "b1"}})
	r := newTestRequester(srv)

	if list, err := ListBookings(ctx, r); err != nil || len(list) != 1 || got.Path != "/api/bookings" {
		t.Fatalf("ListBookings unexpected: %v %v %s", list, err, got.Path)
	}
	if list, err := ListUserBookings(ctx, r, "7"); err != nil || len(list) != 1 || got.Path != "/api/bookings/user/7" {
		t.Fatalf("ListUserBookings unexpected: %v %v %s", list, err, got.Path)
	}

	one, gotOne := jsonServer(t, http.StatusOK, types.Booking{ID: "b1"})
	r = newTestRequester(one)
	if b, err := GetBooking(ctx, r, "b1"); err != nil || b.ID != "b1" || gotOne.Method != http.MethodGet || gotOne.Path != "/api/bookings/b1" {
		t.Fatalf("GetBooking unexpected: %v %v %s %s", b, err, gotOne.Method, gotOne.Path)
	}
	if _, err := UpdateBooking(ctx, r, "b1", types.BookingInput{Status: types.BookingCancelled}); err != nil {
		t.Fatalf("UpdateBooking error: %v", err)
	}
	if gotOne.Method != http.MethodPut || gotOne.Path != "/api/bookings/b1" || string(gotOne.Body) != `{"status":"cancelled"}` {
		t.Fatalf("UpdateBooking request: %s %s %s", gotOne.Method, gotOne.Path, gotOne.Body)
	}
	if _, err := DeleteBooking(ctx, r, "b1"); err != nil {
		t.Fatalf("DeleteBooking error: %v", err)
	}
	if gotOne.Method != http.MethodDelete || gotOne.Path != "/api/bookings/b1" {
		t.Fatalf("DeleteBooking request: %s %s", gotOne.Method, gotOne.Path)
	}
}

func TestBookings_Non2xx(t *testing.T) {
	t.Parallel()
	srv, _ := stubServer(t, http.StatusConflict, `{"message":"Car is not available for the selected dates"}`)
	_, err := CreateBooking(context.Background(), newTestRequester(srv), types.BookingInput{CarID: "1"})
	if err == nil || err.Error() != "Car is not available for the selected dates" {
		t.Fatalf("unexpected error: %v", err)
	}
}
