package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"sync"

	"github.com/dmitrijs2005/careercoach/internal/client/client"
	"github.com/dmitrijs2005/careercoach/internal/client/config"
	"github.com/dmitrijs2005/careercoach/internal/client/models"
	"github.com/dmitrijs2005/careercoach/internal/client/realtime"
	"github.com/dmitrijs2005/careercoach/internal/client/repositories/localstorage"
	"github.com/dmitrijs2005/careercoach/internal/client/services"
	"github.com/dmitrijs2005/careercoach/internal/client/tokenstore"
	"github.com/dmitrijs2005/careercoach/internal/filex"
	"github.com/dmitrijs2005/careercoach/internal/logging"
)

// liveChannel is the part of realtime.Channel the dashboard uses.
type liveChannel interface {
	Start(ctx context.Context)
	Close()
	Connected() bool
}

type App struct {
	config      *config.Config
	log         logging.Logger
	db          *sql.DB
	tokens      tokenstore.Store
	authService services.AuthService
	dashboard   *services.Dashboard
	newChannel  func(realtime.Handlers) (liveChannel, error)

	reader *bufio.Reader
	out    io.Writer

	root       context.Context
	view       View
	viewCtx    context.Context
	cancelView context.CancelFunc
	channel    liveChannel
	interview  *interviewSession

	agentsMu sync.Mutex
	agents   map[string]models.AgentStatus
	rtState  string
}

// NewApp opens local storage, migrates legacy token keys and wires the API
// client, services and realtime channel factory.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger, in io.Reader, out io.Writer) (*App, error) {
	if _, err := filex.EnsureParentDir(c.StoragePath); err != nil {
		return nil, err
	}

	db, err := localstorage.Open(ctx, c.StoragePath)
	if err != nil {
		log.Error(ctx, "error initializing local storage", "error", err)
		return nil, err
	}

	tokens := tokenstore.New(db)
	moved, err := tokens.MigrateLegacy(ctx)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	if moved {
		log.Info(ctx, "token moved from legacy storage key")
	}

	apiClient, err := client.NewHTTPClient(c.BaseURL, tokens, log)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	a := &App{
		config:      c,
		log:         log,
		db:          db,
		tokens:      tokens,
		authService: services.NewAuthService(apiClient, tokens, log),
		dashboard:   services.NewDashboard(apiClient, log),
		reader:      bufio.NewReader(in),
		out:         &syncWriter{w: out},
	}
	a.newChannel = func(h realtime.Handlers) (liveChannel, error) {
		ch, err := realtime.New(realtime.Options{
			BaseURL:        c.BaseURL,
			Path:           c.RealtimePath,
			Tokens:         tokens,
			ReconnectDelay: c.ReconnectDelay,
			Logger:         log,
			Handlers:       h,
		})
		if err != nil {
			return nil, err
		}
		return ch, nil
	}
	return a, nil
}

// Run restores the session and runs the REPL until the user exits or input
// ends.
func (a *App) Run(ctx context.Context) {
	defer a.Close()
	a.root = ctx

	a.println("Welcome to careercoach (type 'help' for commands)")
	a.restoreSession(ctx)

	runREPL(a, a.reader, a.out)
}

// Close leaves the current view and releases local storage.
func (a *App) Close() {
	if a.cancelView != nil {
		a.cancelView()
	}
	a.stopRealtime()
	if a.db != nil {
		_ = a.db.Close()
	}
}

// setView switches views. The previous view's context is cancelled so its
// in-flight requests and the realtime channel stop; the returned context
// belongs to the new view.
func (a *App) setView(v View) context.Context {
	if a.cancelView != nil {
		a.cancelView()
	}
	if v != ViewDashboard {
		a.stopRealtime()
	}
	if v != ViewInterview {
		a.interview = nil
	}

	root := a.root
	if root == nil {
		root = context.Background()
	}
	a.viewCtx, a.cancelView = context.WithCancel(root)
	if a.view != v {
		a.log.Debug(a.viewCtx, "view changed", "from", a.view, "to", v)
	}
	a.view = v
	return a.viewCtx
}

func (a *App) context() context.Context {
	if a.viewCtx == nil {
		return a.setView(a.view)
	}
	return a.viewCtx
}

func (a *App) prompt() string {
	switch a.view {
	case ViewDashboard:
		return fmt.Sprintf("careercoach (%s)", a.authService.User().DisplayName())
	case ViewInterview:
		return "interview"
	case ViewLanding, ViewOnboarding, ViewLogin, ViewForgotPassword:
		return "careercoach"
	default:
		return "careercoach"
	}
}

// commands is the single dispatch point from view to command table.
func (a *App) commands() []command {
	switch a.view {
	case ViewDashboard:
		return a.dashboardCommands()
	case ViewInterview:
		return a.interviewCommands()
	case ViewLanding, ViewOnboarding, ViewLogin, ViewForgotPassword:
		return a.landingCommands()
	default:
		return a.landingCommands()
	}
}

func (a *App) freeText(ctx context.Context, line string) (bool, error) {
	switch a.view {
	case ViewInterview:
		return true, a.answer(ctx, line)
	case ViewLanding, ViewOnboarding, ViewLogin, ViewForgotPassword, ViewDashboard:
		return false, nil
	default:
		return false, nil
	}
}

func (a *App) landingCommands() []command {
	return []command{
		{name: "login", usage: "sign in", run: a.Login},
		{name: "register", usage: "create an account", run: a.Register},
		{name: "forgot", usage: "send a password reset link", run: a.ForgotPassword},
	}
}

// enterDashboard shows the dashboard for user and opens the realtime channel.
func (a *App) enterDashboard(user *models.User) context.Context {
	ctx := a.setView(ViewDashboard)
	a.printf("Welcome, %s!\n", user.DisplayName())
	a.startRealtime(ctx)
	if err := a.Summary(ctx, nil); err != nil {
		a.handleError(ctx, err)
	}
	return ctx
}

func (a *App) startRealtime(ctx context.Context) {
	if a.newChannel == nil {
		return
	}
	a.stopRealtime()

	ch, err := a.newChannel(realtime.Handlers{
		OnAgentStatus:  a.onAgentStatus,
		OnNotification: a.onNotification,
		OnServerError: func(msg string) {
			a.printf("\n[live] error: %s\n", msg)
		},
		OnAuthFailed: func() {
			a.setRealtimeState("authentication failed")
			a.printf("\n[live] authentication failed, live updates are off\n")
		},
	})
	if err != nil {
		a.log.Warn(ctx, "realtime channel unavailable", "error", err)
		return
	}
	a.setRealtimeState("")
	a.channel = ch
	ch.Start(ctx)
}

func (a *App) stopRealtime() {
	if a.channel != nil {
		a.channel.Close()
		a.channel = nil
	}
}

func (a *App) onAgentStatus(s models.AgentStatus) {
	a.agentsMu.Lock()
	if a.agents == nil {
		a.agents = map[string]models.AgentStatus{}
	}
	a.agents[s.Agent] = s
	a.agentsMu.Unlock()

	msg := fmt.Sprintf("\n[live] %s: %s", s.Agent, s.Status)
	if s.Message != "" {
		msg += " - " + s.Message
	}
	a.println(msg)
}

func (a *App) onNotification(n models.Notification) {
	if n.Body != "" {
		a.printf("\n[notification] %s: %s\n", n.Title, n.Body)
		return
	}
	a.printf("\n[notification] %s\n", n.Title)
}

func (a *App) setRealtimeState(s string) {
	a.agentsMu.Lock()
	a.rtState = s
	a.agentsMu.Unlock()
}
