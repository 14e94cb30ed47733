// Package models defines the storefront client's wire and view types.
package models

// UserProfile is the authenticated customer as returned by the auth service.
type UserProfile struct {
	ID    int64  `json:"id,omitempty"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// DisplayName is the name to greet the user with, falling back to the email.
func (u UserProfile) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	return u.Email
}

// Credentials are what the login form collects.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterPayload is the sign-up form. The response is treated as an
// authenticated session right away.
type RegisterPayload struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone,omitempty"`
}

// AuthResult is the body of a successful login or registration.
type AuthResult struct {
	Token string      `json:"token"`
	User  UserProfile `json:"user"`
}
