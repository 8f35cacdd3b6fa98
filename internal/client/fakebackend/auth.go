package fakebackend

import (
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/careercoach/internal/client/models"
	"github.com/google/uuid"
)

type accountKey struct{}

func withAccount(ctx context.Context, acc *account) context.Context {
	return context.WithValue(ctx, accountKey{}, acc)
}

func accountFrom(r *http.Request) *account {
	acc, _ := r.Context().Value(accountKey{}).(*account)
	return acc
}

func (b *Backend) login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := readJSON(r, &req); err != nil {
		badRequest(w, "Invalid request body")
		return
	}

	b.mu.Lock()
	b.LoginCalls++
	acc, ok := b.accounts[strings.ToLower(req.Email)]
	if !ok || acc.password != req.Password {
		b.mu.Unlock()
		writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "Incorrect email or password"})
		return
	}
	tok := uuid.NewString()
	b.tokens[tok] = strings.ToLower(req.Email)
	b.mu.Unlock()

	writeJSON(w, http.StatusOK, models.TokenResponse{AccessToken: tok, TokenType: "bearer"})
}

func (b *Backend) register(w http.ResponseWriter, r *http.Request) {
	var req models.RegistrationRequest
	if err := readJSON(r, &req); err != nil {
		badRequest(w, "Invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"detail": []map[string]any{
			{"loc": []string{"body", "email"}, "msg": "field required", "type": "value_error.missing"},
		}})
		return
	}

	key := strings.ToLower(req.Email)
	b.mu.Lock()
	defer b.mu.Unlock()
	b.Registrations = append(b.Registrations, req)
	if _, exists := b.accounts[key]; exists {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "Email already registered"})
		return
	}

	u := models.User{
		ID:            uuid.NewString(),
		Email:         req.Email,
		Username:      req.Username,
		FullName:      req.FullName,
		Location:      req.Location,
		CurrentStatus: req.CurrentStatus,
		TargetRole:    req.TargetRole,
		Timeline:      req.Timeline,
		Vision:        req.Vision,
		Skills:        req.Skills,
		Education:     req.Education,
		Experience:    req.Experience,
		Projects:      req.Projects,
	}
	b.accounts[key] = &account{user: u, password: req.Password}
	tok := uuid.NewString()
	b.tokens[tok] = key

	writeJSON(w, http.StatusCreated, models.RegistrationResponse{AccessToken: tok, User: &u})
}

func (b *Backend) forgotPassword(w http.ResponseWriter, r *http.Request) {
	var req models.ForgotPasswordRequest
	if err := readJSON(r, &req); err != nil {
		badRequest(w, "Invalid request body")
		return
	}
	b.mu.Lock()
	b.ForgotEmails = append(b.ForgotEmails, req.Email)
	b.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]string{"message": "If the account exists, a reset link was sent"})
}

func (b *Backend) parseResume(w http.ResponseWriter, r *http.Request) {
	f, _, err := r.FormFile("file")
	if err != nil {
		badRequest(w, "No file uploaded")
		return
	}
	defer f.Close()
	_, _ = io.Copy(io.Discard, f)

	b.mu.Lock()
	ex := b.Extraction
	b.mu.Unlock()
	if ex == nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"detail": "Could not parse resume"})
		return
	}
	writeJSON(w, http.StatusOK, ex)
}

func (b *Backend) me(w http.ResponseWriter, r *http.Request) {
	acc := accountFrom(r)
	b.mu.Lock()
	u := acc.user
	b.mu.Unlock()
	writeJSON(w, http.StatusOK, u)
}

func (b *Backend) updateMe(w http.ResponseWriter, r *http.Request) {
	var upd models.ProfileUpdate
	if err := readJSON(r, &upd); err != nil {
		badRequest(w, "Invalid request body")
		return
	}
	acc := accountFrom(r)

	b.mu.Lock()
	set := func(dst *string, v *string) {
		if v != nil {
			*dst = *v
		}
	}
	set(&acc.user.FullName, upd.FullName)
	set(&acc.user.Location, upd.Location)
	set(&acc.user.TargetRole, upd.TargetRole)
	set(&acc.user.Timeline, upd.Timeline)
	set(&acc.user.Vision, upd.Vision)
	if upd.Skills != nil {
		acc.user.Skills = upd.Skills
	}
	u := acc.user
	b.mu.Unlock()

	writeJSON(w, http.StatusOK, u)
}
