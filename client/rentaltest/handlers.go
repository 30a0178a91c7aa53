package rentaltest

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/carrental/carrental/client/internal/types"
)

// --------------------------------------------------------------------
// Cars
// --------------------------------------------------------------------

func (s *Server) listCars(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.store.listCars())
}

func (s *Server) getCar(w http.ResponseWriter, r *http.Request) {
	s.store.mu.Lock()
	c, ok := s.store.cars[mux.Vars(r)["id"]]
	s.store.mu.Unlock()
	if !ok {
		s.writeError(w, http.StatusNotFound, "Car not found")
		return
	}
	s.writeJSON(w, http.StatusOK, c)
}

func (s *Server) createCar(w http.ResponseWriter, r *http.Request) {
	var in types.CarInput
	if !s.decode(w, r, &in) {
		return
	}
	if in.Make == "" || in.Model == "" {
		s.writeError(w, http.StatusBadRequest, "Make and model are required")
		return
	}
	c := s.SeedCar(in)
	s.writeJSON(w, http.StatusCreated, c)
}

func (s *Server) updateCar(w http.ResponseWriter, r *http.Request) {
	var in types.CarInput
	if !s.decode(w, r, &in) {
		return
	}
	id := mux.Vars(r)["id"]
	s.store.mu.Lock()
	c, ok := s.store.cars[id]
	if ok {
		applyCar(&c, in)
		c.UpdatedAt = now()
		s.store.cars[id] = c
	}
	s.store.mu.Unlock()
	if !ok {
		s.writeError(w, http.StatusNotFound, "Car not found")
		return
	}
	s.writeJSON(w, http.StatusOK, c)
}

func (s *Server) deleteCar(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	s.store.mu.Lock()
	_, ok := s.store.cars[id]
	delete(s.store.cars, id)
	s.store.mu.Unlock()
	if !ok {
		s.writeError(w, http.StatusNotFound, "Car not found")
		return
	}
	s.writeMessage(w, "Car removed")
}

// SeedCar stores a car directly and returns it. Cars are available unless
// in.Available says otherwise.
func (s *Server) SeedCar(in types.CarInput) types.Car {
	c := types.Car{ID: newID(), Available: true, CreatedAt: now()}
	applyCar(&c, in)
	s.store.mu.Lock()
	s.store.cars[c.ID] = c
	s.store.mu.Unlock()
	return c
}

// --------------------------------------------------------------------
// Bookings
// --------------------------------------------------------------------

func (s *Server) createBooking(w http.ResponseWriter, r *http.Request) {
	var in types.BookingInput
	if !s.decode(w, r, &in) {
		return
	}
	if in.CarID == "" {
		s.writeError(w, http.StatusBadRequest, "Car is required")
		return
	}
	if in.UserID == "" {
		in.UserID = currentUser(r).ID
	}

	s.store.mu.Lock()
	car, ok := s.store.cars[in.CarID]
	if !ok {
		s.store.mu.Unlock()
		s.writeError(w, http.StatusNotFound, "Car not found")
		return
	}
	if !car.Available {
		s.store.mu.Unlock()
		s.writeError(w, http.StatusBadRequest, "Car is not available")
		return
	}
	b := types.Booking{ID: newID(), Status: types.BookingPending, CreatedAt: now()}
	applyBooking(&b, in)
	if b.TotalPrice == 0 {
		b.TotalPrice = priceFor(car, b.StartDate, b.EndDate)
	}
	s.store.bookings[b.ID] = b
	s.store.mu.Unlock()

	s.writeJSON(w, http.StatusCreated, b)
}

func (s *Server) listBookings(w http.ResponseWriter, r *http.Request) {
	if currentUser(r).Role != types.RoleAdmin {
		s.writeError(w, http.StatusForbidden, "Admin access required")
		return
	}
	s.writeJSON(w, http.StatusOK, s.store.listBookings(nil))
}

func (s *Server) listUserBookings(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]
	if !canActFor(currentUser(r), userID) {
		s.writeError(w, http.StatusForbidden, "Not authorized to view these bookings")
		return
	}
	s.writeJSON(w, http.StatusOK, s.store.listBookings(func(b types.Booking) bool {
		return b.UserID == userID
	}))
}

func (s *Server) getBooking(w http.ResponseWriter, r *http.Request) {
	s.store.mu.Lock()
	b, ok := s.store.bookings[mux.Vars(r)["id"]]
	s.store.mu.Unlock()
	if !ok || !canActFor(currentUser(r), b.UserID) {
		s.writeError(w, http.StatusNotFound, "Booking not found")
		return
	}
	s.writeJSON(w, http.StatusOK, b)
}

func (s *Server) updateBooking(w http.ResponseWriter, r *http.Request) {
	var in types.BookingInput
	if !s.decode(w, r, &in) {
		return
	}
	id := mux.Vars(r)["id"]
	user := currentUser(r)
	s.store.mu.Lock()
	b, ok := s.store.bookings[id]
	ok = ok && canActFor(user, b.UserID)
	if ok {
		applyBooking(&b, in)
		b.UpdatedAt = now()
		s.store.bookings[id] = b
	}
	s.store.mu.Unlock()
	if !ok {
		s.writeError(w, http.StatusNotFound, "Booking not found")
		return
	}
	s.writeJSON(w, http.StatusOK, b)
}

func (s *Server) deleteBooking(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	user := currentUser(r)
	s.store.mu.Lock()
	b, ok := s.store.bookings[id]
	ok = ok && canActFor(user, b.UserID)
	if ok {
		delete(s.store.bookings, id)
	}
	s.store.mu.Unlock()
	if !ok {
		s.writeError(w, http.StatusNotFound, "Booking not found")
		return
	}
	s.writeMessage(w, "Booking removed")
}

// canActFor reports whether u may touch records owned by ownerID.
func canActFor(u types.User, ownerID string) bool {
	return u.Role == types.RoleAdmin || u.ID == ownerID
}

// --------------------------------------------------------------------
// Users
// --------------------------------------------------------------------

func (s *Server) listUsers(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.store.listUsers())
}

func (s *Server) updateUser(w http.ResponseWriter, r *http.Request) {
	var in types.UserUpdate
	if !s.decode(w, r, &in) {
		return
	}
	id := mux.Vars(r)["id"]
	s.store.mu.Lock()
	acct, ok := s.store.accounts[id]
	if ok && in.Email != "" && emailKey(in.Email) != emailKey(acct.user.Email) {
		if _, taken := s.store.accountByEmail(in.Email); taken {
			s.store.mu.Unlock()
			s.writeError(w, http.StatusBadRequest, "Email already in use")
			return
		}
		delete(s.store.byEmail, emailKey(acct.user.Email))
		s.store.byEmail[emailKey(in.Email)] = id
		acct.user.Email = in.Email
	}
	var u types.User
	if ok {
		if in.Name != "" {
			acct.user.Name = in.Name
		}
		if in.Phone != "" {
			acct.user.Phone = in.Phone
		}
		if in.Role != "" {
			acct.user.Role = in.Role
		}
		if in.IsVerified != nil {
			acct.user.IsVerified = *in.IsVerified
		}
		acct.user.UpdatedAt = now()
		u = acct.user
	}
	s.store.mu.Unlock()
	if !ok {
		s.writeError(w, http.StatusNotFound, "User not found")
		return
	}
	s.writeJSON(w, http.StatusOK, u)
}

// --------------------------------------------------------------------
// Notifications
// --------------------------------------------------------------------

func (s *Server) createNotification(w http.ResponseWriter, r *http.Request) {
	var in types.NotificationInput
	if !s.decode(w, r, &in) {
		return
	}
	if in.UserID == "" || in.Message == "" {
		s.writeError(w, http.StatusBadRequest, "User and message are required")
		return
	}
	n := types.Notification{
		ID:        newID(),
		UserID:    in.UserID,
		Title:     in.Title,
		Message:   in.Message,
		Type:      in.Type,
		CreatedAt: now(),
	}
	s.store.mu.Lock()
	s.store.notifications[n.ID] = n
	s.store.mu.Unlock()
	s.writeJSON(w, http.StatusCreated, n)
}

func (s *Server) listNotifications(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]
	if !canActFor(currentUser(r), userID) {
		s.writeError(w, http.StatusForbidden, "Not authorized to view these notifications")
		return
	}
	s.writeJSON(w, http.StatusOK, s.store.listNotifications(userID))
}

func (s *Server) markNotificationRead(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	user := currentUser(r)
	s.store.mu.Lock()
	n, ok := s.store.notifications[id]
	ok = ok && canActFor(user, n.UserID)
	if ok {
		n.Read = true
		s.store.notifications[id] = n
	}
	s.store.mu.Unlock()
	if !ok {
		s.writeError(w, http.StatusNotFound, "Notification not found")
		return
	}
	s.writeJSON(w, http.StatusOK, n)
}
