// Package services contains the application services of the careercoach
// client. This file defines the authentication service: login, register,
// session restore, logout and the unauthenticated helpers used by the
// onboarding wizard.
package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/dmitrijs2005/careercoach/internal/client/client"
	"github.com/dmitrijs2005/careercoach/internal/client/models"
	"github.com/dmitrijs2005/careercoach/internal/client/tokenstore"
	"github.com/dmitrijs2005/careercoach/internal/logging"
)

// SessionState is the lifecycle of the client session.
type SessionState string

const (
	StateAnonymous     SessionState = "anonymous"
	StateRestoring     SessionState = "restoring"
	StateAuthenticated SessionState = "authenticated"
)

// AuthService defines authentication operations for the client.
//
// Contract:
//   - Login: exchange credentials for a token, store it, fetch the user.
//   - Register: create the account and sign the new user in.
//   - GetSession: restore a session from the stored token; (nil, nil) means
//     there is no session. Any failure clears the stored token.
//   - CurrentUser: refetch the signed-in user.
//   - Logout: forget token and user.
//   - ForgotPassword, ParseResume: anonymous helpers.
type AuthService interface {
	Login(ctx context.Context, email string, password []byte) (*models.User, error)
	Register(ctx context.Context, req *models.RegistrationRequest) (*models.User, error)
	GetSession(ctx context.Context) (*models.User, error)
	CurrentUser(ctx context.Context) (*models.User, error)
	Logout(ctx context.Context) error
	ForgotPassword(ctx context.Context, email string) error
	ParseResume(ctx context.Context, fileName string, r io.Reader) (*models.ResumeExtraction, error)
	State() SessionState
	User() *models.User
}

type authService struct {
	client client.Client
	tokens tokenstore.Store
	log    logging.Logger
	now    func() time.Time

	mu    sync.Mutex
	state SessionState
	user  *models.User
}

// NewAuthService constructs an AuthService over the API client and token store.
func NewAuthService(c client.Client, tokens tokenstore.Store, log logging.Logger) AuthService {
	return &authService{
		client: c,
		tokens: tokens,
		log:    log.With("component", "auth"),
		now:    time.Now,
		state:  StateAnonymous,
	}
}

func (a *authService) State() SessionState {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

func (a *authService) User() *models.User {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.user
}

func (a *authService) set(state SessionState, user *models.User) {
	a.mu.Lock()
	a.state, a.user = state, user
	a.mu.Unlock()
}

// Login authenticates, writes the token exactly once and loads the user.
// If the user cannot be loaded the token is removed again.
func (a *authService) Login(ctx context.Context, email string, password []byte) (*models.User, error) {
	tok, err := a.client.Login(ctx, email, string(password))
	if err != nil {
		return nil, fmt.Errorf("login error: %w", err)
	}

	if err := a.tokens.Set(ctx, tok.AccessToken); err != nil {
		return nil, fmt.Errorf("token saving error: %w", err)
	}

	user, err := a.client.CurrentUser(ctx)
	if err != nil {
		a.clearToken(ctx)
		a.set(StateAnonymous, nil)
		return nil, fmt.Errorf("current user error: %w", err)
	}

	a.set(StateAuthenticated, user)
	a.log.Info(ctx, "logged in", "user", user.Email)
	return user, nil
}

// Register creates the account. When the backend does not hand back a token
// the new credentials are used to log in right away.
func (a *authService) Register(ctx context.Context, req *models.RegistrationRequest) (*models.User, error) {
	resp, err := a.client.Register(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("register error: %w", err)
	}

	if resp.AccessToken == "" {
		return a.Login(ctx, req.Email, []byte(req.Password))
	}

	if err := a.tokens.Set(ctx, resp.AccessToken); err != nil {
		return nil, fmt.Errorf("token saving error: %w", err)
	}

	user := resp.User
	if user == nil {
		user, err = a.client.CurrentUser(ctx)
		if err != nil {
			a.clearToken(ctx)
			a.set(StateAnonymous, nil)
			return nil, fmt.Errorf("current user error: %w", err)
		}
	}

	a.set(StateAuthenticated, user)
	a.log.Info(ctx, "registered", "user", user.Email)
	return user, nil
}

// GetSession restores the session from the stored token. A token that is
// expired, rejected, or that cannot be checked is cleared so the next start
// does not repeat a request that is bound to fail. There is no retry.
func (a *authService) GetSession(ctx context.Context) (*models.User, error) {
	a.set(StateRestoring, nil)

	token, err := a.tokens.Get(ctx)
	if err != nil {
		a.set(StateAnonymous, nil)
		return nil, fmt.Errorf("token reading error: %w", err)
	}
	if token == "" {
		a.set(StateAnonymous, nil)
		return nil, nil
	}

	if tokenstore.Expired(token, a.now()) {
		a.log.Info(ctx, "stored token expired")
		a.clearToken(ctx)
		a.set(StateAnonymous, nil)
		return nil, nil
	}

	user, err := a.client.CurrentUser(ctx)
	if err != nil {
		a.clearToken(ctx)
		a.set(StateAnonymous, nil)
		if errors.Is(err, client.ErrUnauthorized) {
			a.log.Info(ctx, "stored token rejected", "error", err)
			return nil, nil
		}
		return nil, fmt.Errorf("session restore error: %w", err)
	}

	a.set(StateAuthenticated, user)
	return user, nil
}

func (a *authService) CurrentUser(ctx context.Context) (*models.User, error) {
	user, err := a.client.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	a.set(StateAuthenticated, user)
	return user, nil
}

// Logout clears the token and the cached user. The in-memory session is
// dropped even if the token could not be removed from storage.
func (a *authService) Logout(ctx context.Context) error {
	a.set(StateAnonymous, nil)
	if err := a.tokens.Clear(ctx); err != nil {
		return fmt.Errorf("token clearing error: %w", err)
	}
	return nil
}

func (a *authService) ForgotPassword(ctx context.Context, email string) error {
	return a.client.ForgotPassword(ctx, email)
}

func (a *authService) ParseResume(ctx context.Context, fileName string, r io.Reader) (*models.ResumeExtraction, error) {
	return a.client.ParseResume(ctx, fileName, r)
}

func (a *authService) clearToken(ctx context.Context) {
	if err := a.tokens.Clear(ctx); err != nil {
		a.log.Error(ctx, "token clearing failed", "error", err)
	}
}
