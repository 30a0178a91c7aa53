package types

// ------------------------------
// Response Types
// ------------------------------

// AuthResponse is returned by the auth endpoints. Token and User are only
// present on calls that establish a session (login, OTP verification).
type AuthResponse struct {
	Message string `json:"message,omitempty"`
	Token   string `json:"token,omitempty"`
	User    *User  `json:"user,omitempty"`
}

// MessageResponse is the acknowledgement body of calls that return no record
type MessageResponse struct {
	Message string `json:"message,omitempty"`
}
