// Package common holds constants shared by the API client, the services and
// the console.
package common

// Auth endpoints, relative to the configured API base URL.
const (
	LoginPath     = "/auth/login"
	VerifyOTPPath = "/auth/verify-otp"
	RefreshPath   = "/auth/refresh-token"
	LogoutPath    = "/auth/logout"
	MePath        = "/auth/me"
	AdminMePath   = "/auth/admin-me"
)

// Console locations the client may navigate to.
const (
	LoginLocation     = "/login"
	DashboardLocation = "/dashboard"
)

// RequestIDHeaderName is set on every outbound request so client and server
// logs can be correlated.
const RequestIDHeaderName = "X-Request-ID"
