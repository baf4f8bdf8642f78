package models

import "time"

// Admin is the authenticated principal returned by /auth/me and /auth/admin-me.
type Admin struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	LastLogin time.Time `json:"lastLogin,omitempty"`
}

// LoginResponse is the data of a /auth/login reply. Exactly one of User and
// VerificationToken is set: the first for a direct login, the second when a
// one-time code must be verified.
type LoginResponse struct {
	User              *Admin `json:"user,omitempty"`
	RequiresOTP       bool   `json:"requiresOtp,omitempty"`
	VerificationToken string `json:"verificationToken,omitempty"`
}

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type OTPRequest struct {
	OTP string `json:"otp"`
}
