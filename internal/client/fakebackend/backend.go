// Package fakebackend is an in-process stand-in for the careercoach API used
// by tests: JSON routes on a chi router plus the agent status WebSocket.
package fakebackend

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/careercoach/internal/client/models"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const WSPath = "/api/v1/agent/ws"

type account struct {
	user     models.User
	password string
}

// WSBehavior controls what the status socket does with the next connections.
type WSBehavior struct {
	// RejectStatus, when set, fails the handshake with this HTTP status.
	RejectStatus int
	// Frames are sent right after the upgrade.
	Frames []string
	// CloseCode, when set, closes the socket with this code after Frames.
	CloseCode int
	// Drop closes the TCP connection without a close frame (1006 on the client).
	Drop bool
}

type Backend struct {
	mu       sync.Mutex
	accounts map[string]*account
	tokens   map[string]string
	ws       WSBehavior

	Summary    models.Summary
	Roadmap    models.Roadmap
	Jobs       []models.JobOpportunity
	Hackathons []models.Hackathon
	Resume     models.ResumeAnalysis
	Journal    []models.JournalEntry
	Interviews []models.Interview
	Campaigns  []models.Campaign
	Recipients map[string][]models.Recipient
	Extraction *models.ResumeExtraction

	// Counters for assertions.
	LoginCalls     int
	ForgotEmails   []string
	Registrations  []models.RegistrationRequest
	WSConnects     int
	WSPings        int
	LastWSToken    string
	AnswersByQuest map[string]string

	upgrader websocket.Upgrader
	server   *httptest.Server
}

func New() *Backend {
	return &Backend{
		accounts:       map[string]*account{},
		tokens:         map[string]string{},
		Recipients:     map[string][]models.Recipient{},
		AnswersByQuest: map[string]string{},
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// AddUser registers an account that can log in with password.
func (b *Backend) AddUser(u models.User, password string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	b.accounts[strings.ToLower(u.Email)] = &account{user: u, password: password}
}

// IssueToken returns a token that is valid for the account with email.
func (b *Backend) IssueToken(email string) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	tok := uuid.NewString()
	b.tokens[tok] = strings.ToLower(email)
	return tok
}

func (b *Backend) RevokeAll() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.tokens = map[string]string{}
}

func (b *Backend) SetWSBehavior(ws WSBehavior) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.ws = ws
}

// Stats returns the counters under lock.
func (b *Backend) Stats() (logins, wsConnects, wsPings int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.LoginCalls, b.WSConnects, b.WSPings
}

// Start serves the backend on a loopback httptest server.
func (b *Backend) Start() *httptest.Server {
	b.server = httptest.NewServer(b.Router())
	return b.server
}

func (b *Backend) Close() {
	if b.server != nil {
		b.server.CloseClientConnections()
		b.server.Close()
	}
}

func (b *Backend) Router() http.Handler {
	r := chi.NewRouter()

	r.Post("/auth/login", b.login)
	r.Post("/auth/register", b.register)
	r.Post("/auth/forgot-password", b.forgotPassword)
	r.Post("/resume/parse", b.parseResume)
	r.Get(WSPath, b.serveWS)

	r.Group(func(r chi.Router) {
		r.Use(b.requireToken)

		r.Get("/auth/me", b.me)
		r.Get("/users/me", b.me)
		r.Put("/users/me", b.updateMe)
		r.Get("/summary", b.summary)
		r.Get("/roadmap", b.roadmap)
		r.Patch("/roadmap/milestones/{id}", b.updateMilestone)
		r.Post("/roadmap/regenerate", b.roadmap)
		r.Get("/opportunities/jobs", b.jobs)
		r.Get("/opportunities/hackathons", b.hackathons)
		r.Post("/opportunities/jobs/{id}/save", b.saveJob)
		r.Get("/resume/analysis", b.resumeAnalysis)
		r.Post("/resume/upload", b.resumeUpload)
		r.Get("/journal", b.listJournal)
		r.Post("/journal", b.createJournal)
		r.Get("/interviews", b.listInterviews)
		r.Post("/interviews", b.startInterview)
		r.Get("/interviews/{id}", b.getInterview)
		r.Post("/interviews/{id}/answers", b.answer)
		r.Post("/interviews/{id}/finish", b.finishInterview)
		r.Get("/campaigns", b.listCampaigns)
		r.Post("/campaigns", b.createCampaign)
		r.Get("/campaigns/{id}/recipients", b.listRecipients)
		r.Post("/campaigns/{id}/recipients", b.addRecipient)
		r.Post("/campaigns/{id}/send", b.sendCampaign)
	})

	return r
}

func (b *Backend) requireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tok := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		acc := b.accountByToken(tok)
		if acc == nil {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "Could not validate credentials"})
			return
		}
		next.ServeHTTP(w, r.WithContext(withAccount(r.Context(), acc)))
	})
}

func (b *Backend) accountByToken(tok string) *account {
	b.mu.Lock()
	defer b.mu.Unlock()
	if tok == "" {
		return nil
	}
	email, ok := b.tokens[tok]
	if !ok {
		return nil
	}
	return b.accounts[email]
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func readJSON(r *http.Request, v any) error {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return err
	}
	return json.Unmarshal(body, v)
}

func badRequest(w http.ResponseWriter, detail string) {
	writeJSON(w, http.StatusBadRequest, map[string]string{"detail": detail})
}

func now() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}
