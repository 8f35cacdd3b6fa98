package services

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/careercoach/internal/client/client"
	"github.com/dmitrijs2005/careercoach/internal/client/models"
	"github.com/dmitrijs2005/careercoach/internal/client/repositories/localstorage"
	"github.com/dmitrijs2005/careercoach/internal/client/tokenstore"
	"github.com/dmitrijs2005/careercoach/internal/logging"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---- fakes ----

type fakeClient struct {
	LoginRet *models.TokenResponse
	LoginErr error

	CurrentUserRet *models.User
	CurrentUserErr error

	RegisterRet *models.RegistrationResponse
	RegisterErr error

	ForgotErr error

	ParseRet *models.ResumeExtraction
	ParseErr error

	LastLoginEmail    string
	LastLoginPassword string
	LastRegister      *models.RegistrationRequest
	LastForgotEmail   string
	LastParseFile     string
	LastParseBody     string
	CurrentUserCalls  int
}

func (f *fakeClient) Login(ctx context.Context, email, password string) (*models.TokenResponse, error) {
	f.LastLoginEmail, f.LastLoginPassword = email, password
	return f.LoginRet, f.LoginErr
}

func (f *fakeClient) CurrentUser(ctx context.Context) (*models.User, error) {
	f.CurrentUserCalls++
	return f.CurrentUserRet, f.CurrentUserErr
}

func (f *fakeClient) Register(ctx context.Context, req *models.RegistrationRequest) (*models.RegistrationResponse, error) {
	f.LastRegister = req
	return f.RegisterRet, f.RegisterErr
}

func (f *fakeClient) ForgotPassword(ctx context.Context, email string) error {
	f.LastForgotEmail = email
	return f.ForgotErr
}

func (f *fakeClient) ParseResume(ctx context.Context, fileName string, r io.Reader) (*models.ResumeExtraction, error) {
	f.LastParseFile = fileName
	b, _ := io.ReadAll(r)
	f.LastParseBody = string(b)
	return f.ParseRet, f.ParseErr
}

type memTokens struct {
	token    string
	sets     int
	clears   int
	GetErr   error
	ClearErr error
}

func (m *memTokens) Get(ctx context.Context) (string, error) { return m.token, m.GetErr }

func (m *memTokens) Set(ctx context.Context, token string) error {
	m.sets++
	m.token = token
	return nil
}

func (m *memTokens) Clear(ctx context.Context) error {
	m.clears++
	if m.ClearErr != nil {
		return m.ClearErr
	}
	m.token = ""
	return nil
}

func newTestAuth(c client.Client, tokens tokenstore.Store) *authService {
	return NewAuthService(c, tokens, logging.Discard()).(*authService)
}

func signed(t *testing.T, exp time.Time) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "u1",
		ExpiresAt: jwt.NewNumericDate(exp),
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return tok
}

var alice = &models.User{ID: "u1", Email: "alice@example.com", FullName: "Alice"}

// ---- Login ----

func TestLogin_Success_WritesTokenOnce(t *testing.T) {
	fc := &fakeClient{LoginRet: &models.TokenResponse{AccessToken: "tok"}, CurrentUserRet: alice}
	tokens := &memTokens{}
	a := newTestAuth(fc, tokens)

	u, err := a.Login(context.Background(), "alice@example.com", []byte("s3cretpass"))
	require.NoError(t, err)

	assert.Equal(t, alice, u)
	assert.Equal(t, "tok", tokens.token)
	assert.Equal(t, 1, tokens.sets)
	assert.Equal(t, 0, tokens.clears)
	assert.Equal(t, "alice@example.com", fc.LastLoginEmail)
	assert.Equal(t, "s3cretpass", fc.LastLoginPassword)
	assert.Equal(t, StateAuthenticated, a.State())
	assert.Equal(t, alice, a.User())
}

func TestLogin_BackendRejects(t *testing.T) {
	rejected := &client.Error{Kind: client.KindUnauthorized, Message: "Incorrect email or password", Status: 401}
	fc := &fakeClient{LoginErr: rejected}
	tokens := &memTokens{}
	a := newTestAuth(fc, tokens)

	_, err := a.Login(context.Background(), "alice@example.com", []byte("wrong"))
	require.Error(t, err)
	assert.ErrorIs(t, err, client.ErrUnauthorized)
	assert.Equal(t, "Incorrect email or password", client.AsError(err).Message)
	assert.Equal(t, 0, tokens.sets)
	assert.Equal(t, StateAnonymous, a.State())
}

func TestLogin_MeFails_ClearsToken(t *testing.T) {
	fc := &fakeClient{
		LoginRet:       &models.TokenResponse{AccessToken: "tok"},
		CurrentUserErr: &client.Error{Kind: client.KindServer, Message: "boom", Status: 500},
	}
	tokens := &memTokens{}
	a := newTestAuth(fc, tokens)

	_, err := a.Login(context.Background(), "alice@example.com", []byte("s3cretpass"))
	require.Error(t, err)
	assert.Equal(t, "", tokens.token)
	assert.Equal(t, 1, tokens.clears)
	assert.Nil(t, a.User())
}

// ---- Register ----

func TestRegister_WithToken(t *testing.T) {
	fc := &fakeClient{RegisterRet: &models.RegistrationResponse{AccessToken: "reg-tok", User: alice}}
	tokens := &memTokens{}
	a := newTestAuth(fc, tokens)

	req := &models.RegistrationRequest{Email: "alice@example.com", Password: "s3cretpass"}
	u, err := a.Register(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, alice, u)
	assert.Same(t, req, fc.LastRegister)
	assert.Equal(t, "reg-tok", tokens.token)
	assert.Equal(t, 0, fc.CurrentUserCalls)
	assert.Equal(t, StateAuthenticated, a.State())
}

func TestRegister_TokenWithoutUser_FetchesMe(t *testing.T) {
	fc := &fakeClient{RegisterRet: &models.RegistrationResponse{AccessToken: "reg-tok"}, CurrentUserRet: alice}
	a := newTestAuth(fc, &memTokens{})

	u, err := a.Register(context.Background(), &models.RegistrationRequest{Email: "alice@example.com"})
	require.NoError(t, err)
	assert.Equal(t, alice, u)
	assert.Equal(t, 1, fc.CurrentUserCalls)
}

func TestRegister_NoToken_LogsIn(t *testing.T) {
	fc := &fakeClient{
		RegisterRet:    &models.RegistrationResponse{User: alice},
		LoginRet:       &models.TokenResponse{AccessToken: "login-tok"},
		CurrentUserRet: alice,
	}
	tokens := &memTokens{}
	a := newTestAuth(fc, tokens)

	_, err := a.Register(context.Background(), &models.RegistrationRequest{Email: "alice@example.com", Password: "s3cretpass"})
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", fc.LastLoginEmail)
	assert.Equal(t, "s3cretpass", fc.LastLoginPassword)
	assert.Equal(t, "login-tok", tokens.token)
	assert.Equal(t, 1, tokens.sets)
}

func TestRegister_Error(t *testing.T) {
	fc := &fakeClient{RegisterErr: &client.Error{Kind: client.KindValidation, Message: "email: already registered"}}
	tokens := &memTokens{}
	a := newTestAuth(fc, tokens)

	_, err := a.Register(context.Background(), &models.RegistrationRequest{})
	require.Error(t, err)
	assert.ErrorIs(t, err, client.ErrValidation)
	assert.Equal(t, 0, tokens.sets)
}

// ---- GetSession ----

func TestGetSession_NoToken(t *testing.T) {
	fc := &fakeClient{}
	a := newTestAuth(fc, &memTokens{})

	u, err := a.GetSession(context.Background())
	require.NoError(t, err)
	assert.Nil(t, u)
	assert.Equal(t, 0, fc.CurrentUserCalls)
	assert.Equal(t, StateAnonymous, a.State())
}

func TestGetSession_Valid(t *testing.T) {
	fc := &fakeClient{CurrentUserRet: alice}
	tokens := &memTokens{token: "opaque"}
	a := newTestAuth(fc, tokens)

	u, err := a.GetSession(context.Background())
	require.NoError(t, err)
	assert.Equal(t, alice, u)
	assert.Equal(t, "opaque", tokens.token)
	assert.Equal(t, StateAuthenticated, a.State())
}

func TestGetSession_Rejected_ClearsToken(t *testing.T) {
	fc := &fakeClient{CurrentUserErr: &client.Error{Kind: client.KindUnauthorized, Message: client.MsgUnauthorized, Status: 401}}
	tokens := &memTokens{token: "stale"}
	a := newTestAuth(fc, tokens)

	u, err := a.GetSession(context.Background())
	require.NoError(t, err)
	assert.Nil(t, u)
	assert.Equal(t, "", tokens.token)
	assert.Equal(t, 1, tokens.clears)
	assert.Equal(t, StateAnonymous, a.State())
}

func TestGetSession_ServerError_ClearsTokenAndReports(t *testing.T) {
	fc := &fakeClient{CurrentUserErr: &client.Error{Kind: client.KindNetwork, Message: client.MsgNetwork}}
	tokens := &memTokens{token: "tok"}
	a := newTestAuth(fc, tokens)

	u, err := a.GetSession(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, client.ErrUnavailable)
	assert.Nil(t, u)
	assert.Equal(t, "", tokens.token)
}

func TestGetSession_ExpiredToken_SkipsRoundTrip(t *testing.T) {
	fc := &fakeClient{CurrentUserRet: alice}
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	tokens := &memTokens{token: signed(t, now.Add(-time.Minute))}
	a := newTestAuth(fc, tokens)
	a.now = func() time.Time { return now }

	u, err := a.GetSession(context.Background())
	require.NoError(t, err)
	assert.Nil(t, u)
	assert.Equal(t, 0, fc.CurrentUserCalls)
	assert.Equal(t, "", tokens.token)
}

func TestGetSession_UnexpiredJWT(t *testing.T) {
	fc := &fakeClient{CurrentUserRet: alice}
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	tokens := &memTokens{token: signed(t, now.Add(time.Hour))}
	a := newTestAuth(fc, tokens)
	a.now = func() time.Time { return now }

	u, err := a.GetSession(context.Background())
	require.NoError(t, err)
	assert.Equal(t, alice, u)
	assert.Equal(t, 1, fc.CurrentUserCalls)
}

func TestGetSession_TokenReadError(t *testing.T) {
	a := newTestAuth(&fakeClient{}, &memTokens{GetErr: errors.New("disk")})

	_, err := a.GetSession(context.Background())
	require.Error(t, err)
	assert.Equal(t, StateAnonymous, a.State())
}

// A rejected token must not survive a restart: a second restore against the
// real store must not reach the backend at all.
func TestGetSession_Rejected_SQLiteStore(t *testing.T) {
	ctx := context.Background()
	db, err := localstorage.Open(ctx, filepath.Join(t.TempDir(), "client.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	store := tokenstore.New(db)
	require.NoError(t, store.Set(ctx, "stale"))

	fc := &fakeClient{CurrentUserErr: &client.Error{Kind: client.KindUnauthorized, Status: 401}}
	a := newTestAuth(fc, store)

	u, err := a.GetSession(ctx)
	require.NoError(t, err)
	assert.Nil(t, u)

	tok, err := store.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "", tok)

	u, err = a.GetSession(ctx)
	require.NoError(t, err)
	assert.Nil(t, u)
	assert.Equal(t, 1, fc.CurrentUserCalls)
}

// ---- Logout and helpers ----

func TestLogout(t *testing.T) {
	fc := &fakeClient{LoginRet: &models.TokenResponse{AccessToken: "tok"}, CurrentUserRet: alice}
	tokens := &memTokens{}
	a := newTestAuth(fc, tokens)
	_, err := a.Login(context.Background(), "alice@example.com", []byte("s3cretpass"))
	require.NoError(t, err)

	require.NoError(t, a.Logout(context.Background()))
	assert.Equal(t, "", tokens.token)
	assert.Nil(t, a.User())
	assert.Equal(t, StateAnonymous, a.State())
}

func TestLogout_ClearError_StillDropsSession(t *testing.T) {
	tokens := &memTokens{token: "tok", ClearErr: errors.New("disk")}
	a := newTestAuth(&fakeClient{}, tokens)
	a.set(StateAuthenticated, alice)

	err := a.Logout(context.Background())
	require.Error(t, err)
	assert.Nil(t, a.User())
	assert.Equal(t, StateAnonymous, a.State())
}

func TestForgotPassword(t *testing.T) {
	fc := &fakeClient{}
	a := newTestAuth(fc, &memTokens{})

	require.NoError(t, a.ForgotPassword(context.Background(), "alice@example.com"))
	assert.Equal(t, "alice@example.com", fc.LastForgotEmail)
}

func TestParseResume(t *testing.T) {
	fc := &fakeClient{ParseRet: &models.ResumeExtraction{FullName: "Alice"}}
	a := newTestAuth(fc, &memTokens{})

	ex, err := a.ParseResume(context.Background(), "cv.pdf", strings.NewReader("%PDF"))
	require.NoError(t, err)
	assert.Equal(t, "Alice", ex.FullName)
	assert.Equal(t, "cv.pdf", fc.LastParseFile)
	assert.Equal(t, "%PDF", fc.LastParseBody)
}
