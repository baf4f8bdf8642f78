// Package services contains application services for the admin console.
// This file defines the authentication service: login with an optional
// one-time code step, logout, session restore on start-up and the route
// guard used by protected commands.
package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/examprep-admin/internal/client/cache"
	"github.com/dmitrijs2005/examprep-admin/internal/client/client"
	"github.com/dmitrijs2005/examprep-admin/internal/client/models"
	"github.com/dmitrijs2005/examprep-admin/internal/common"
	"github.com/dmitrijs2005/examprep-admin/internal/logging"
)

// ErrNotLoggedIn is returned by RestoreSession when no earlier login was
// recorded locally.
var ErrNotLoggedIn = errors.New("not logged in")

// LoginResult is the outcome of the first login step. When ChallengeRequired
// is set the caller must finish with VerifyOTP using VerificationToken.
type LoginResult struct {
	Admin             *models.Admin
	ChallengeRequired bool
	VerificationToken string
}

// AuthService defines authentication operations for the console.
//
// Contract:
//   - Login: submit credentials; on direct success record the session marker.
//   - VerifyOTP: finish a challenged login; records the marker on success.
//   - Logout: end the server session; the marker is cleared regardless.
//   - RestoreSession: validate a remembered session at start-up.
//   - Me: fetch the current principal.
//   - IsAuthenticated: the local route guard, no network call.
//   - RememberedEmail: the email recorded with the marker, "" without one.
type AuthService interface {
	Login(ctx context.Context, email string, password []byte) (*LoginResult, error)
	VerifyOTP(ctx context.Context, verificationToken, otp string) (*models.Admin, error)
	Logout(ctx context.Context) error
	RestoreSession(ctx context.Context) (*models.Admin, error)
	Me(ctx context.Context) (*models.Admin, error)
	IsAuthenticated(ctx context.Context) bool
	RememberedEmail(ctx context.Context) string
}

type authService struct {
	client  client.Client
	session client.SessionStore
	cache   *cache.QueryCache
	log     logging.Logger
}

// NewAuthService constructs an AuthService. qc may be nil.
func NewAuthService(c client.Client, session client.SessionStore, qc *cache.QueryCache, log logging.Logger) AuthService {
	if log == nil {
		log = logging.Nop{}
	}
	return &authService{client: c, session: session, cache: qc, log: log.With("component", "auth")}
}

func (a *authService) Login(ctx context.Context, email string, password []byte) (*LoginResult, error) {
	creds := models.Credentials{Email: email, Password: string(password)}
	resp, err := a.client.Do(ctx, http.MethodPost, common.LoginPath, creds)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	var data models.LoginResponse
	if err := resp.DecodeData(&data); err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	if data.RequiresOTP || data.VerificationToken != "" {
		a.log.Info(ctx, "login requires one-time code", "email", email)
		return &LoginResult{ChallengeRequired: true, VerificationToken: data.VerificationToken}, nil
	}

	admin, err := a.establish(ctx, email, data.User)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Admin: admin}, nil
}

func (a *authService) VerifyOTP(ctx context.Context, verificationToken, otp string) (*models.Admin, error) {
	if verificationToken == "" {
		return nil, fmt.Errorf("verify otp: %w", client.ErrBadRequest)
	}
	resp, err := a.client.Do(ctx, http.MethodPost, common.VerifyOTPPath,
		models.OTPRequest{OTP: otp}, client.WithBearer(verificationToken))
	if err != nil {
		return nil, fmt.Errorf("verify otp: %w", err)
	}

	var data models.LoginResponse
	if err := resp.DecodeData(&data); err != nil {
		return nil, fmt.Errorf("verify otp: %w", err)
	}
	return a.establish(ctx, "", data.User)
}

// establish records the marker after a successful login step. The email
// falls back to the one typed in when the backend did not echo the user.
func (a *authService) establish(ctx context.Context, email string, admin *models.Admin) (*models.Admin, error) {
	if admin == nil {
		admin = &models.Admin{Email: email}
	}
	if admin.Email == "" {
		admin.Email = email
	}
	if err := a.session.SetSession(ctx, admin.Email); err != nil {
		return nil, fmt.Errorf("save session marker: %w", err)
	}
	if a.cache != nil {
		a.cache.Clear()
	}
	a.log.Info(ctx, "logged in", "email", admin.Email)
	return admin, nil
}

func (a *authService) Logout(ctx context.Context) error {
	if _, err := a.client.Do(ctx, http.MethodPost, common.LogoutPath, nil); err != nil {
		a.log.Warn(ctx, "server logout failed, clearing local session anyway", "err", err)
	}
	if a.cache != nil {
		a.cache.Clear()
	}
	if err := a.session.ClearSession(ctx); err != nil {
		return fmt.Errorf("clear session marker: %w", err)
	}
	return nil
}

func (a *authService) RestoreSession(ctx context.Context) (*models.Admin, error) {
	ok, err := a.session.HasSession(ctx)
	if err != nil {
		return nil, fmt.Errorf("read session marker: %w", err)
	}
	if !ok {
		return nil, ErrNotLoggedIn
	}

	admin, err := a.fetchAdmin(ctx, common.AdminMePath)
	if err == nil {
		return admin, nil
	}
	// A refresh failure already cleared the marker. A plain 401 here comes
	// from the replay, so the remembered session is unusable too.
	if errors.Is(err, client.ErrUnauthorized) && !errors.Is(err, client.ErrSessionExpired) {
		if cerr := a.session.ClearSession(ctx); cerr != nil {
			a.log.Error(ctx, "clear session marker", "err", cerr)
		}
	}
	return nil, fmt.Errorf("restore session: %w", err)
}

func (a *authService) Me(ctx context.Context) (*models.Admin, error) {
	return a.fetchAdmin(ctx, common.MePath)
}

func (a *authService) fetchAdmin(ctx context.Context, path string) (*models.Admin, error) {
	resp, err := a.client.Do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	var admin models.Admin
	if err := resp.DecodeData(&admin); err != nil {
		return nil, err
	}
	return &admin, nil
}

func (a *authService) IsAuthenticated(ctx context.Context) bool {
	ok, err := a.session.HasSession(ctx)
	if err != nil {
		a.log.Warn(ctx, "session marker unreadable", "err", err)
		return false
	}
	return ok
}

func (a *authService) RememberedEmail(ctx context.Context) string {
	email, err := a.session.Email(ctx)
	if err != nil {
		a.log.Warn(ctx, "remembered email unreadable", "err", err)
		return ""
	}
	return email
}
