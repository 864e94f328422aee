package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/mindgym/internal/config"
	"github.com/vovakirdan/mindgym/internal/core"
	"github.com/vovakirdan/mindgym/internal/session"
	"github.com/vovakirdan/mindgym/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.mindgym/host_key.
	HostKeyPath string

	// DBPath is the path to the history database.
	DBPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// Settings are the initial menu settings for every connection.
	Settings config.Settings

	// Seed fixes the game randomness; 0 seeds from the clock.
	Seed int64

	// Logger receives server lifecycle events. A prefixed stderr logger
	// is used when nil.
	Logger *log.Logger
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		DBPath:      "~/.mindgym/history.db",
		IdleTimeout: 30 * time.Minute,
		Settings:    config.DefaultSettings(),
	}
}

// SSHServer wraps a Wish SSH server serving training sessions.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	store  *storage.Store
	logger *log.Logger
}

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "mindgym-ssh",
		})
	}

	// Open storage
	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		logger.Warn("could not open history database", "error", err)
		// Continue without storage
	}

	srv := &SSHServer{
		config: cfg,
		store:  store,
		logger: logger,
	}

	// Resolve host key path
	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return nil, fmt.Errorf("tui: cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".mindgym", "host_key")
	}

	// Ensure host key directory exists
	hostKeyDir := filepath.Dir(hostKeyPath)
	if mkdirErr := os.MkdirAll(hostKeyDir, 0o700); mkdirErr != nil {
		return nil, fmt.Errorf("tui: cannot create host key directory: %w", mkdirErr)
	}

	opts := []ssh.Option{
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	}

	server, err := wish.NewServer(opts...)
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, fmt.Errorf("tui: cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler creates a Bubble Tea program for each SSH session.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	model := NewSessionModel(s.store, s.config.Settings, s.config.Seed, pty.Window.Width, pty.Window.Height).
		withLogger(s.logger.With("user", sshSession.User()))

	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
	}
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		s.logger.Info("connection opened",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)
		s.logger.Info("connection closed",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until shutdown.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	// Setup signal handling for graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			s.logger.Error("server error", "error", err)
		}
	}()

	<-done
	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if s.store != nil {
		s.store.Close()
	}

	return s.server.Shutdown(ctx)
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}

// screen is the active part of a SessionModel.
type screen int

const (
	screenMenu screen = iota
	screenPlay
	screenHistory
)

// SessionModel manages the full flow of a connection:
// menu -> session -> menu, with the history screen reachable from the menu.
type SessionModel struct {
	store  *storage.Store
	logger *log.Logger
	seed   int64
	width  int
	height int

	screen   screen
	menu     MenuModel
	play     Model
	history  HistoryModel
	last     *session.Result
	quitting bool
}

// NewSessionModel creates a new session flow starting at the menu.
func NewSessionModel(store *storage.Store, settings config.Settings, seed int64, width, height int) SessionModel {
	return SessionModel{
		store:  store,
		logger: log.New(os.Stderr),
		seed:   seed,
		width:  width,
		height: height,
		menu:   NewMenuModel(settings, width, height),
	}
}

func (m SessionModel) withLogger(l *log.Logger) SessionModel {
	m.logger = l
	return m
}

// Init initializes the flow.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the active screen.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = wsm.Width
		m.height = wsm.Height
	}

	switch m.screen {
	case screenPlay:
		return m.updatePlay(msg)
	case screenHistory:
		return m.updateHistory(msg)
	}
	return m.updateMenu(msg)
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.menu.Update(msg)
	if menuModel, ok := next.(MenuModel); ok {
		m.menu = menuModel
	}

	switch {
	case m.menu.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.menu.WantsStart():
		sess := session.New(m.menu.Settings(), core.NewRand(m.seed), time.Now(), session.WithLogger(m.logger))
		opts := []ModelOption{WithModelLogger(m.logger)}
		if m.store != nil {
			opts = append(opts, WithSaver(m.store))
		}
		m.play = NewModel(sess, opts...)
		m.screen = screenPlay
		m.logger.Debug("session started", "session", sess.ID, "games", sess.Settings.EnabledGames())
		return m, tea.Batch(m.play.Init(), m.resize())

	case m.menu.WantsHistory():
		var store HistoryStore
		if m.store != nil {
			store = m.store
		}
		m.history = NewHistoryModel(store, m.width, m.height)
		m.screen = screenHistory
		return m, m.history.Init()
	}

	return m, cmd
}

// updatePlay handles updates while a session runs. A finished session
// returns to the menu instead of ending the connection.
func (m SessionModel) updatePlay(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.play.Update(msg)
	if playModel, ok := next.(Model); ok {
		m.play = playModel
	}

	if m.play.IsQuitting() {
		m.last = m.play.Result()
		m.backToMenu()
		return m, nil
	}
	return m, cmd
}

// updateHistory handles updates on the history screen.
func (m SessionModel) updateHistory(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.history.Update(msg)
	if historyModel, ok := next.(HistoryModel); ok {
		m.history = historyModel
	}

	switch {
	case m.history.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.history.IsGoingBack():
		m.backToMenu()
		return m, nil
	}
	return m, cmd
}

func (m *SessionModel) backToMenu() {
	m.menu = NewMenuModel(m.menu.Settings(), m.width, m.height)
	m.screen = screenMenu
}

// resize replays the terminal size to a freshly created screen.
func (m SessionModel) resize() tea.Cmd {
	w, h := m.width, m.height
	return func() tea.Msg {
		return tea.WindowSizeMsg{Width: w, Height: h}
	}
}

// View renders the active screen.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenPlay:
		return m.play.View()
	case screenHistory:
		return m.history.View()
	}

	view := m.menu.View()
	if m.last != nil {
		view = titleStyle.Render(centerText("last session: "+Summary(*m.last), m.width)) + "\n" + view
	}
	return view
}
