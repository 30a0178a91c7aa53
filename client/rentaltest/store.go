package rentaltest

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/carrental/carrental/client/internal/types"
)

type account struct {
	user types.User
	hash []byte
}

// store keeps every record in memory. All access goes through mu.
type store struct {
	mu            sync.Mutex
	accounts      map[string]*account // by id
	byEmail       map[string]string   // lower-cased email -> id
	otps          map[string]string   // lower-cased email -> code
	cars          map[string]types.Car
	bookings      map[string]types.Booking
	notifications map[string]types.Notification
}

func newStore() *store {
	return &store{
		accounts:      make(map[string]*account),
		byEmail:       make(map[string]string),
		otps:          make(map[string]string),
		cars:          make(map[string]types.Car),
		bookings:      make(map[string]types.Booking),
		notifications: make(map[string]types.Notification),
	}
}

func newID() string { return uuid.NewString() }

var (
	clockMu sync.Mutex
	lastNow time.Time
)

// now returns strictly increasing timestamps so listings keep insertion order.
func now() *time.Time {
	clockMu.Lock()
	defer clockMu.Unlock()
	t := time.Now().UTC().Truncate(time.Millisecond)
	if !t.After(lastNow) {
		t = lastNow.Add(time.Millisecond)
	}
	lastNow = t
	return &t
}

func emailKey(email string) string { return strings.ToLower(strings.TrimSpace(email)) }

// accountByEmail must be called with mu held.
func (st *store) accountByEmail(email string) (*account, bool) {
	id, ok := st.byEmail[emailKey(email)]
	if !ok {
		return nil, false
	}
	a, ok := st.accounts[id]
	return a, ok
}

// sortedValues returns map values ordered by creation time, then id.
func sortedValues[T any](m map[string]T, created func(T) *time.Time, id func(T) string) []T {
	out := make([]T, 0, len(m))
	for _, v := range m {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool {
		ci, cj := created(out[i]), created(out[j])
		if ci != nil && cj != nil && !ci.Equal(*cj) {
			return ci.Before(*cj)
		}
		return id(out[i]) < id(out[j])
	})
	return out
}

func (st *store) listCars() []types.Car {
	st.mu.Lock()
	defer st.mu.Unlock()
	return sortedValues(st.cars,
		func(c types.Car) *time.Time { return c.CreatedAt },
		func(c types.Car) string { return c.ID })
}

func (st *store) listBookings(match func(types.Booking) bool) []types.Booking {
	st.mu.Lock()
	defer st.mu.Unlock()
	all := sortedValues(st.bookings,
		func(b types.Booking) *time.Time { return b.CreatedAt },
		func(b types.Booking) string { return b.ID })
	out := make([]types.Booking, 0, len(all))
	for _, b := range all {
		if match == nil || match(b) {
			out = append(out, b)
		}
	}
	return out
}

func (st *store) listUsers() []types.User {
	st.mu.Lock()
	defer st.mu.Unlock()
	accts := sortedValues(st.accounts,
		func(a *account) *time.Time { return a.user.CreatedAt },
		func(a *account) string { return a.user.ID })
	out := make([]types.User, 0, len(accts))
	for _, a := range accts {
		out = append(out, a.user)
	}
	return out
}

func (st *store) listNotifications(userID string) []types.Notification {
	st.mu.Lock()
	defer st.mu.Unlock()
	all := sortedValues(st.notifications,
		func(n types.Notification) *time.Time { return n.CreatedAt },
		func(n types.Notification) string { return n.ID })
	out := make([]types.Notification, 0, len(all))
	for _, n := range all {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out
}

func applyCar(c *types.Car, in types.CarInput) {
	if in.Make != "" {
		c.Make = in.Make
	}
	if in.Model != "" {
		c.Model = in.Model
	}
	if in.Year != 0 {
		c.Year = in.Year
	}
	if in.Category != "" {
		c.Category = in.Category
	}
	if in.PricePerDay != 0 {
		c.PricePerDay = in.PricePerDay
	}
	if in.Seats != 0 {
		c.Seats = in.Seats
	}
	if in.Transmission != "" {
		c.Transmission = in.Transmission
	}
	if in.FuelType != "" {
		c.FuelType = in.FuelType
	}
	if in.Location != "" {
		c.Location = in.Location
	}
	if in.ImageURL != "" {
		c.ImageURL = in.ImageURL
	}
	if in.Features != nil {
		c.Features = append([]string(nil), in.Features...)
	}
	if in.Available != nil {
		c.Available = *in.Available
	}
}

func applyBooking(b *types.Booking, in types.BookingInput) {
	if in.CarID != "" {
		b.CarID = in.CarID
	}
	if in.UserID != "" {
		b.UserID = in.UserID
	}
	if in.StartDate != nil {
		b.StartDate = in.StartDate
	}
	if in.EndDate != nil {
		b.EndDate = in.EndDate
	}
	if in.PickupLocation != "" {
		b.PickupLocation = in.PickupLocation
	}
	if in.DropoffLocation != "" {
		b.DropoffLocation = in.DropoffLocation
	}
	if in.TotalPrice != 0 {
		b.TotalPrice = in.TotalPrice
	}
	if in.Status != "" {
		b.Status = in.Status
	}
}

// priceFor charges whole days, with a one day minimum.
func priceFor(c types.Car, start, end *time.Time) float64 {
	if start == nil || end == nil || !end.After(*start) {
		return 0
	}
	days := int(end.Sub(*start).Hours() / 24)
	if end.Sub(*start) > time.Duration(days)*24*time.Hour {
		days++
	}
	if days < 1 {
		days = 1
	}
	return float64(days) * c.PricePerDay
}
