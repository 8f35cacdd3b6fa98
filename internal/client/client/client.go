package client

import (
	"context"
	"io"
	"net/http"

	"github.com/dmitrijs2005/careercoach/internal/client/models"
)

// Client is the authentication surface of the backend API.
type Client interface {
	Login(ctx context.Context, email, password string) (*models.TokenResponse, error)
	CurrentUser(ctx context.Context) (*models.User, error)
	Register(ctx context.Context, req *models.RegistrationRequest) (*models.RegistrationResponse, error)
	ForgotPassword(ctx context.Context, email string) error
	ParseResume(ctx context.Context, fileName string, r io.Reader) (*models.ResumeExtraction, error)
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (*models.TokenResponse, error) {
	res := Fetch[models.TokenResponse](ctx, c, &Request{
		Method:    http.MethodPost,
		Endpoint:  "/auth/login",
		Body:      models.LoginRequest{Email: email, Password: password},
		Anonymous: true,
	})
	if !res.OK() {
		return nil, res.Err()
	}
	if res.Data.AccessToken == "" {
		return nil, &Error{Kind: KindParse, Message: MsgParse, Status: http.StatusOK}
	}
	return &res.Data, nil
}

func (c *HTTPClient) CurrentUser(ctx context.Context) (*models.User, error) {
	res := Fetch[models.User](ctx, c, &Request{Method: http.MethodGet, Endpoint: "/auth/me"})
	if !res.OK() {
		return nil, res.Err()
	}
	return &res.Data, nil
}

func (c *HTTPClient) Register(ctx context.Context, req *models.RegistrationRequest) (*models.RegistrationResponse, error) {
	res := Fetch[models.RegistrationResponse](ctx, c, &Request{
		Method:    http.MethodPost,
		Endpoint:  "/auth/register",
		Body:      req,
		Anonymous: true,
	})
	if !res.OK() {
		return nil, res.Err()
	}
	return &res.Data, nil
}

func (c *HTTPClient) ForgotPassword(ctx context.Context, email string) error {
	return c.Do(ctx, &Request{
		Method:    http.MethodPost,
		Endpoint:  "/auth/forgot-password",
		Body:      models.ForgotPasswordRequest{Email: email},
		Anonymous: true,
	}, nil)
}

// ParseResume uploads a resume for structured extraction. It runs before the
// account exists, so it is sent without a token.
func (c *HTTPClient) ParseResume(ctx context.Context, fileName string, r io.Reader) (*models.ResumeExtraction, error) {
	res := Fetch[models.ResumeExtraction](ctx, c, &Request{
		Method:    http.MethodPost,
		Endpoint:  "/resume/parse",
		Multipart: &Multipart{FieldName: "file", FileName: fileName, File: r},
		Anonymous: true,
	})
	if !res.OK() {
		return nil, res.Err()
	}
	return &res.Data, nil
}
