// Copyright (c) 2025 N3T Software
// SPDX-License-Identifier: MIT

// Command n3t is the terminal front-end for the N3T inventory system:
// an authenticated shell around the catalog, stock movement, supplier,
// and reporting screens, with the assistant chat panel docked alongside.
package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/n3t-labs/n3t-tui/internal/api"
	"github.com/n3t-labs/n3t-tui/internal/config"
	"github.com/n3t-labs/n3t-tui/internal/logger"
	"github.com/n3t-labs/n3t-tui/internal/state"
	"github.com/n3t-labs/n3t-tui/internal/telemetry"
	"github.com/n3t-labs/n3t-tui/internal/ui/chat"
	"github.com/n3t-labs/n3t-tui/internal/ui/components"
	"github.com/n3t-labs/n3t-tui/internal/ui/screens"
	"github.com/n3t-labs/n3t-tui/internal/ui/styles"
)

// =============================================================================
// SHELL MESSAGES
// =============================================================================

// configReloadedMsg arrives from the config file watcher.
type configReloadedMsg struct {
	cfg *config.Config
}

// logoutDoneMsg reports the backend half of a logout. The local session
// is already cleared by then; the error is advisory only.
type logoutDoneMsg struct {
	err error
}

// =============================================================================
// SHELL MODEL
// =============================================================================

// appModel is the root Bubble Tea model: it owns the route, the mounted
// screen, the chrome, and the chat panel.
type appModel struct {
	theme   *styles.Theme
	client  *api.Client
	session *state.SessionStore
	prefs   *state.PrefStore
	deps    screens.Deps

	route  screens.Route
	screen screens.Screen

	// returnTo remembers where a signed-out user was headed, so the
	// login screen can finish the trip.
	returnTo    screens.Route
	hasReturnTo bool

	sidebar   *components.Sidebar
	header    *components.Header
	statusBar *components.StatusBar
	chat      *chat.Widget
	chatOpen  bool
	collapsed bool

	width  int
	height int
}

const chatPanelWidth = 42

func newAppModel(theme *styles.Theme, client *api.Client, session *state.SessionStore,
	prefs *state.PrefStore, activity *telemetry.Store, cfg *config.Config) *appModel {

	uiPrefs := prefs.Get()
	m := &appModel{
		theme:   theme,
		client:  client,
		session: session,
		prefs:   prefs,
		deps: screens.Deps{
			Theme:             theme,
			Client:            client,
			Activity:          activity,
			LowStockThreshold: cfg.UI.LowStockThreshold,
		},
		sidebar:   components.NewSidebar(theme),
		header:    components.NewHeader(theme),
		statusBar: components.NewStatusBar(theme),
		chat:      chat.New(theme, client, cfg.Chat.SystemInstruction),
		chatOpen:  uiPrefs.ChatOpen,
		collapsed: uiPrefs.SidebarCollapsed,
	}
	return m
}

// Init mounts the landing screen. The guard inside navigate sends a
// signed-out user to login with the dashboard queued as the return stop.
func (m *appModel) Init() tea.Cmd {
	return m.navigate(screens.RouteDashboard)
}

// navigate applies the route guard, rebuilds the destination screen, and
// returns its init command.
func (m *appModel) navigate(to screens.Route) tea.Cmd {
	if to.Protected() && !m.session.IsAuthenticated() {
		m.returnTo = to
		m.hasReturnTo = true
		to = screens.RouteLogin
	} else if !to.Protected() && m.session.IsAuthenticated() {
		// Auth screens are pointless while signed in.
		to = screens.RouteDashboard
	}

	m.route = to
	m.screen = screens.New(to, m.deps)
	m.layout()
	logger.L().Debug("navigated", zap.String("screen", to.Title()))
	return m.screen.Init()
}

// =============================================================================
// UPDATE
// =============================================================================

func (m *appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.theme.SetSize(msg.Width, msg.Height)
		m.layout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case screens.NavigateMsg:
		return m, m.navigate(msg.To)

	case screens.AuthSuccessMsg:
		return m, m.handleAuthSuccess(msg)

	case chat.ReplyMsg:
		// Replies land even while the panel is closed.
		var cmd tea.Cmd
		m.chat, cmd = m.chat.Update(msg)
		return m, cmd

	case logoutDoneMsg:
		if msg.err != nil {
			logger.L().Warn("backend logout failed", zap.Error(msg.err))
		}
		return m, nil

	case configReloadedMsg:
		m.deps.LowStockThreshold = msg.cfg.UI.LowStockThreshold
		m.chat.SetSystemInstruction(msg.cfg.Chat.SystemInstruction)
		return m, nil
	}

	// Everything else (fetch results, spinner ticks) belongs to the
	// mounted screen.
	var cmd tea.Cmd
	m.screen, cmd = m.screen.Update(msg)
	return m, cmd
}

func (m *appModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "ctrl+b":
		if m.route.Protected() {
			collapsed, err := m.prefs.ToggleSidebar()
			if err != nil {
				logger.L().Warn("failed to persist sidebar pref", zap.Error(err))
			}
			m.collapsed = collapsed
			m.layout()
		}
		return m, nil

	case "ctrl+g":
		if _, err := m.prefs.ToggleDarkMode(); err != nil {
			logger.L().Warn("failed to persist theme pref", zap.Error(err))
		}
		return m, nil

	case "ctrl+j":
		if m.route.Protected() {
			open, err := m.prefs.ToggleChat()
			if err != nil {
				logger.L().Warn("failed to persist chat pref", zap.Error(err))
			}
			m.chatOpen = open
			m.layout()
		}
		return m, nil

	case "ctrl+o":
		if m.session.IsAuthenticated() {
			return m, m.logout()
		}
		return m, nil

	case "ctrl+p", "ctrl+n":
		if m.route.Protected() {
			return m, m.cycleScreen(msg.String() == "ctrl+n")
		}
		return m, nil
	}

	// With the panel open, typing goes to the chat.
	if m.chatOpen && m.route.Protected() {
		var cmd tea.Cmd
		m.chat, cmd = m.chat.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.screen, cmd = m.screen.Update(msg)
	return m, cmd
}

// handleAuthSuccess stores the session and resumes the interrupted trip.
func (m *appModel) handleAuthSuccess(msg screens.AuthSuccessMsg) tea.Cmd {
	if err := m.session.Login(msg.User, msg.Token); err != nil {
		logger.L().Warn("failed to persist session", zap.Error(err))
	}
	logger.L().Info("signed in", zap.String("user", msg.User.Email))

	dest := screens.RouteDashboard
	if m.hasReturnTo {
		dest = m.returnTo
		m.hasReturnTo = false
	}
	return m.navigate(dest)
}

// logout clears the local session immediately and tells the backend in
// the background. A backend failure never blocks signing out.
func (m *appModel) logout() tea.Cmd {
	if err := m.session.Logout(); err != nil {
		logger.L().Warn("failed to persist logout", zap.Error(err))
	}
	logger.L().Info("signed out")

	client := m.client
	backend := func() tea.Msg {
		return logoutDoneMsg{err: client.Logout(context.Background())}
	}
	return tea.Batch(backend, m.navigate(screens.RouteLogin))
}

// cycleScreen moves to the previous or next protected screen.
func (m *appModel) cycleScreen(forward bool) tea.Cmd {
	idx := 0
	for i, r := range screens.ProtectedRoutes {
		if r == m.route {
			idx = i
			break
		}
	}
	n := len(screens.ProtectedRoutes)
	if forward {
		idx = (idx + 1) % n
	} else {
		idx = (idx - 1 + n) % n
	}
	return m.navigate(screens.ProtectedRoutes[idx])
}

// layout pushes the current dimensions into the mounted screen and chat.
func (m *appModel) layout() {
	if m.width == 0 || m.screen == nil {
		return
	}
	contentW, contentH := m.contentSize()
	m.screen.SetSize(contentW, contentH)
	m.chat.SetSize(chatPanelWidth, contentH)
}

func (m *appModel) contentSize() (int, int) {
	w := m.width
	h := m.height - 2 // header and status bar
	if !m.route.Protected() {
		return w, h
	}
	if m.theme.GetLayoutMode() != styles.LayoutNarrow {
		w -= m.sidebar.Width(m.sidebarCollapsed())
	}
	if m.chatOpen {
		w -= chatPanelWidth
	}
	if w < 20 {
		w = 20
	}
	return w, h
}

// sidebarCollapsed folds the persisted preference with the layout mode:
// tight terminals collapse regardless of preference.
func (m *appModel) sidebarCollapsed() bool {
	return m.collapsed || m.theme.GetLayoutMode() == styles.LayoutNormal
}

// =============================================================================
// VIEW
// =============================================================================

func (m *appModel) View() string {
	if m.screen == nil || m.width == 0 {
		return ""
	}

	// Auth screens own the whole terminal.
	if !m.route.Protected() {
		return m.screen.View()
	}

	_, contentH := m.contentSize()

	columns := []string{}
	if m.theme.GetLayoutMode() != styles.LayoutNarrow {
		columns = append(columns, m.sidebar.View(m.route, m.sidebarCollapsed(), contentH))
	}
	columns = append(columns, lipgloss.NewStyle().Height(contentH).Render(m.screen.View()))
	if m.chatOpen {
		columns = append(columns, m.chat.View())
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.header.View(m.route.Title(), m.session.User(), m.width),
		lipgloss.JoinHorizontal(lipgloss.Top, columns...),
		m.statusBar.View(m.hints(), m.width),
	)
}

func (m *appModel) hints() []components.Hint {
	return []components.Hint{
		{Key: "^b", Desc: "sidebar"},
		{Key: "^j", Desc: "chat"},
		{Key: "^g", Desc: "theme"},
		{Key: "^n/^p", Desc: "screens"},
		{Key: "^o", Desc: "sign out"},
		{Key: "^c", Desc: "quit"},
	}
}

// =============================================================================
// STARTUP
// =============================================================================

func main() {
	// A .env in the working directory is a developer convenience; its
	// absence is the normal case.
	_ = godotenv.Load()

	cfg := config.Global()
	if err := config.EnsureConfigDir(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if logPath, err := cfg.LogPath(); err == nil {
		if err := logger.Init(logPath, cfg.Log.Level); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		}
	}
	defer logger.Sync()

	dir, err := config.ConfigDir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	session := state.OpenSession(dir)
	prefs := state.OpenPrefs(dir)

	activity, err := telemetry.Open(dir)
	if err != nil {
		logger.L().Warn("activity log disabled", zap.Error(err))
		activity = nil
	} else {
		defer activity.Close()
	}

	client := api.NewClient(cfg.API.BaseURL).WithTimeout(cfg.API.Timeout())
	if activity != nil {
		client = client.WithObserver(activity)
	}
	client.SetToken(session.Token())

	theme := styles.NewTheme()
	if prefs.Loaded() {
		theme.SetDarkMode(prefs.Get().DarkMode)
	}
	prefs.OnDarkModeChange = theme.SetDarkMode

	model := newAppModel(theme, client, session, prefs, activity, cfg)
	program := tea.NewProgram(model, tea.WithAltScreen())

	watcher, err := config.NewWatcher(func(cfg *config.Config) {
		program.Send(configReloadedMsg{cfg: cfg})
	})
	if err == nil {
		if err := watcher.Watch(context.Background()); err != nil {
			logger.L().Warn("config watcher disabled", zap.Error(err))
		}
		defer watcher.Close()
	}

	if _, err := program.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
