package rentaltest

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"net/http"
	"strings"
	"time"

	"github.com/go-openapi/strfmt"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/carrental/carrental/client/internal/session"
	"github.com/carrental/carrental/client/internal/types"
)

// TokenTTL is the lifetime of issued tokens.
const TokenTTL = 24 * time.Hour

type ctxKey struct{}

func randomSecret() []byte {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		panic(fmt.Sprintf("rentaltest: read random secret: %v", err))
	}
	return b
}

func newOTP() string {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		panic(fmt.Sprintf("rentaltest: generate otp: %v", err))
	}
	return fmt.Sprintf("%06d", n.Int64())
}

func (s *Server) issueToken(u types.User) (string, error) {
	issued := time.Now()
	claims := session.Claims{
		ID:    u.ID,
		Email: u.Email,
		Role:  u.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID,
			IssuedAt:  jwt.NewNumericDate(issued),
			ExpiresAt: jwt.NewNumericDate(issued.Add(TokenTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func (s *Server) parseToken(raw string) (*session.Claims, error) {
	var claims session.Claims
	_, err := jwt.ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	return &claims, nil
}

// currentUser returns the account attached by requireUser.
func currentUser(r *http.Request) types.User {
	u, _ := r.Context().Value(ctxKey{}).(types.User)
	return u
}

// requireUser rejects requests without a valid bearer token for a known account.
func (s *Server) requireUser(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || raw == "" {
			s.writeError(w, http.StatusUnauthorized, "Not authorized, no token")
			return
		}
		claims, err := s.parseToken(raw)
		if err != nil {
			s.writeError(w, http.StatusUnauthorized, "Not authorized, token failed")
			return
		}
		s.store.mu.Lock()
		acct, found := s.store.accounts[claims.ID]
		var u types.User
		if found {
			u = acct.user
		}
		s.store.mu.Unlock()
		if !found {
			s.writeError(w, http.StatusUnauthorized, "Not authorized, user not found")
			return
		}
		next(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, u)))
	}
}

// requireAdmin is requireUser plus a role check against the stored account.
func (s *Server) requireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return s.requireUser(func(w http.ResponseWriter, r *http.Request) {
		if currentUser(r).Role != types.RoleAdmin {
			s.writeError(w, http.StatusForbidden, "Admin access required")
			return
		}
		next(w, r)
	})
}

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	var req types.RegisterRequest
	if !s.decode(w, r, &req) {
		return
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		s.writeError(w, http.StatusBadRequest, "Name, email and password are required")
		return
	}
	if !strfmt.IsEmail(req.Email) {
		s.writeError(w, http.StatusBadRequest, "Invalid email address")
		return
	}
	if req.Role == "" {
		req.Role = types.RoleUser
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.MinCost)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid password")
		return
	}

	s.store.mu.Lock()
	if _, exists := s.store.accountByEmail(req.Email); exists {
		s.store.mu.Unlock()
		s.writeError(w, http.StatusBadRequest, "User already exists")
		return
	}
	u := types.User{
		ID:        newID(),
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Role:      req.Role,
		CreatedAt: now(),
	}
	s.store.accounts[u.ID] = &account{user: u, hash: hash}
	s.store.byEmail[emailKey(u.Email)] = u.ID
	s.store.otps[emailKey(u.Email)] = newOTP()
	s.store.mu.Unlock()

	s.writeJSON(w, http.StatusCreated, types.AuthResponse{
		Message: "Registration successful. Please verify the OTP sent to your email.",
		User:    &u,
	})
}

// consumeOTP checks and deletes the pending code for email. mu must be held.
func (st *store) consumeOTP(email, otp string) bool {
	want, ok := st.otps[emailKey(email)]
	if !ok || otp == "" || want != otp {
		return false
	}
	delete(st.otps, emailKey(email))
	return true
}

func (s *Server) verifyOTP(w http.ResponseWriter, r *http.Request) {
	var req types.VerifyOTPRequest
	if !s.decode(w, r, &req) {
		return
	}
	s.store.mu.Lock()
	acct, ok := s.store.accountByEmail(req.Email)
	if !ok {
		s.store.mu.Unlock()
		s.writeError(w, http.StatusNotFound, "User not found")
		return
	}
	if !s.store.consumeOTP(req.Email, req.OTP) {
		s.store.mu.Unlock()
		s.writeError(w, http.StatusBadRequest, "Invalid or expired OTP")
		return
	}
	acct.user.IsVerified = true
	acct.user.UpdatedAt = now()
	u := acct.user
	s.store.mu.Unlock()

	s.respondWithSession(w, "Email verified successfully", u)
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req types.LoginRequest
	if !s.decode(w, r, &req) {
		return
	}
	s.store.mu.Lock()
	acct, ok := s.store.accountByEmail(req.Email)
	var (
		u    types.User
		hash []byte
	)
	if ok {
		u, hash = acct.user, acct.hash
	}
	s.store.mu.Unlock()

	if !ok || bcrypt.CompareHashAndPassword(hash, []byte(req.Password)) != nil {
		s.writeError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	if !u.IsVerified {
		s.writeError(w, http.StatusForbidden, "Please verify your email first")
		return
	}
	s.respondWithSession(w, "Login successful", u)
}

func (s *Server) forgotPassword(w http.ResponseWriter, r *http.Request) {
	var req types.ForgotPasswordRequest
	if !s.decode(w, r, &req) {
		return
	}
	s.store.mu.Lock()
	_, ok := s.store.accountByEmail(req.Email)
	if ok {
		s.store.otps[emailKey(req.Email)] = newOTP()
	}
	s.store.mu.Unlock()
	if !ok {
		s.writeError(w, http.StatusNotFound, "User not found")
		return
	}
	s.writeMessage(w, "OTP sent to your email")
}

func (s *Server) resetPassword(w http.ResponseWriter, r *http.Request) {
	var req types.ResetPasswordRequest
	if !s.decode(w, r, &req) {
		return
	}
	if req.NewPassword == "" {
		s.writeError(w, http.StatusBadRequest, "New password is required")
		return
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.MinCost)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid password")
		return
	}
	s.store.mu.Lock()
	acct, ok := s.store.accountByEmail(req.Email)
	if !ok || !s.store.consumeOTP(req.Email, req.OTP) {
		s.store.mu.Unlock()
		s.writeError(w, http.StatusBadRequest, "Invalid or expired OTP")
		return
	}
	acct.hash = hash
	acct.user.UpdatedAt = now()
	s.store.mu.Unlock()
	s.writeMessage(w, "Password reset successful")
}

func (s *Server) activateAdmin(w http.ResponseWriter, r *http.Request) {
	id := currentUser(r).ID
	s.store.mu.Lock()
	acct, ok := s.store.accounts[id]
	var u types.User
	if ok {
		acct.user.Role = types.RoleAdmin
		acct.user.UpdatedAt = now()
		u = acct.user
	}
	s.store.mu.Unlock()
	if !ok {
		s.writeError(w, http.StatusNotFound, "User not found")
		return
	}
	s.respondWithSession(w, "Admin access activated", u)
}

func (s *Server) respondWithSession(w http.ResponseWriter, message string, u types.User) {
	token, err := s.issueToken(u)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to sign token")
		s.writeError(w, http.StatusInternalServerError, "Failed to issue token")
		return
	}
	s.writeJSON(w, http.StatusOK, types.AuthResponse{Message: message, Token: token, User: &u})
}

// --------------------------------------------------------------------
// Test helpers
// --------------------------------------------------------------------

// OTP returns the pending one-time code for email, as if read from the inbox.
func (s *Server) OTP(email string) (string, bool) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	code, ok := s.store.otps[emailKey(email)]
	return code, ok
}

// SeedUser creates a verified account directly and returns it.
func (s *Server) SeedUser(name, email, password, role string) (types.User, error) {
	if role == "" {
		role = types.RoleUser
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		return types.User{}, fmt.Errorf("hash password: %w", err)
	}
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	if _, exists := s.store.accountByEmail(email); exists {
		return types.User{}, fmt.Errorf("user %q already exists", email)
	}
	u := types.User{
		ID:         newID(),
		Name:       name,
		Email:      email,
		Role:       role,
		IsVerified: true,
		CreatedAt:  now(),
	}
	s.store.accounts[u.ID] = &account{user: u, hash: hash}
	s.store.byEmail[emailKey(email)] = u.ID
	return u, nil
}

// TokenFor signs a bearer token for an existing account.
func (s *Server) TokenFor(userID string) (string, error) {
	s.store.mu.Lock()
	acct, ok := s.store.accounts[userID]
	var u types.User
	if ok {
		u = acct.user
	}
	s.store.mu.Unlock()
	if !ok {
		return "", fmt.Errorf("unknown user %q", userID)
	}
	return s.issueToken(u)
}
