package cli

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/careercoach/internal/client/client"
	"github.com/dmitrijs2005/careercoach/internal/shared"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// restoreSession picks the start view from the stored token.
func (a *App) restoreSession(ctx context.Context) {
	user, err := a.authService.GetSession(ctx)
	if err != nil {
		a.log.Warn(ctx, "session restore failed", "error", err)
		a.printf("Could not restore your session: %s\n", userMessage(err))
	}
	if user == nil {
		a.setView(ViewLanding)
		a.println("Type 'login' to sign in or 'register' to create an account.")
		return
	}
	a.enterDashboard(user)
}

// Login prompts for credentials and signs in. On failure the server's
// message is returned as is and the app stays on the landing view.
func (a *App) Login(_ context.Context, _ []string) error {
	ctx := a.setView(ViewLogin)

	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		a.setView(ViewLanding)
		return err
	}
	password, err := getPassword(a.reader, "Enter password", a.out)
	if err != nil {
		a.setView(ViewLanding)
		return err
	}
	defer shared.WipeByteArray(password)

	user, err := a.authService.Login(ctx, email, password)
	if err != nil {
		a.setView(ViewLanding)
		return err
	}

	a.log.Info(ctx, "login successful")
	a.enterDashboard(user)
	return nil
}

func (a *App) ForgotPassword(_ context.Context, _ []string) error {
	ctx := a.setView(ViewForgotPassword)
	defer a.setView(ViewLanding)

	email, err := getSimpleText(a.reader, "Enter the email you registered with", a.out)
	if err != nil {
		return err
	}
	if err := a.authService.ForgotPassword(ctx, email); err != nil {
		return err
	}
	a.println("If an account exists for that email, a reset link is on its way.")
	return nil
}

// Logout clears the stored token and returns to the landing view.
func (a *App) Logout(ctx context.Context, _ []string) error {
	err := a.authService.Logout(ctx)
	a.setView(ViewLanding)
	if err != nil {
		return err
	}
	a.println("Logged out.")
	return nil
}

// handleError prints err for the user. An authentication error on a
// signed-in view means the session is gone: the user is sent back to the
// landing view to log in again.
func (a *App) handleError(ctx context.Context, err error) {
	if client.IsCanceled(err) {
		return
	}

	switch a.view {
	case ViewDashboard, ViewInterview:
		if errors.Is(err, client.ErrUnauthorized) {
			a.log.Info(ctx, "session expired", "error", err)
			_ = a.authService.Logout(ctx)
			a.setView(ViewLanding)
			a.println("Your session has expired. Please log in again.")
			return
		}
	case ViewLanding, ViewOnboarding, ViewLogin, ViewForgotPassword:
	}

	a.printf("Error: %s\n", userMessage(err))
}
