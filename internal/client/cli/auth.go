package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/examprep-admin/internal/common"
)

// Login prompts for credentials and authenticates. When the backend asks for
// a one-time code it is prompted for and verified before the console moves
// to the dashboard. The password is wiped before returning.
//
// An empty email answer falls back to the admin of a remembered session.
func (a *App) Login(ctx context.Context) error {
	remembered := a.auth.RememberedEmail(ctx)
	prompt := "Enter email"
	if remembered != "" {
		prompt = fmt.Sprintf("Enter email [%s]", remembered)
	}
	email, err := getSimpleText(a.reader, prompt, a.out)
	if err != nil {
		return err
	}
	if email == "" {
		email = remembered
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	res, err := a.auth.Login(ctx, email, password)
	if err != nil {
		a.log.Info(ctx, "login unsuccessful", "email", email, "err", err)
		return err
	}

	admin := res.Admin
	if res.ChallengeRequired {
		otp, err := getSimpleText(a.reader, "Enter the one-time code sent to your email", a.out)
		if err != nil {
			return err
		}
		if admin, err = a.auth.VerifyOTP(ctx, res.VerificationToken, otp); err != nil {
			return err
		}
	}

	a.admin = admin
	a.router.Go(common.DashboardLocation)
	printlnFn("Login successful")
	return nil
}

// Logout ends the session. Local state is cleared even if the server call
// fails.
func (a *App) Logout(ctx context.Context) error {
	err := a.auth.Logout(ctx)
	a.admin = nil
	a.router.Go(common.LoginLocation)
	if err != nil {
		return err
	}
	printlnFn("Logged out")
	return nil
}

func (a *App) WhoAmI(ctx context.Context) error {
	admin, err := a.auth.Me(ctx)
	if err != nil {
		return err
	}
	a.admin = admin
	fmt.Fprintf(a.out, "%s <%s> role=%s id=%s\n", admin.Name, admin.Email, admin.Role, admin.ID)
	return nil
}
