package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/cloudflix/flixctl/internal/models"
	"github.com/cloudflix/flixctl/internal/services"
	"github.com/cloudflix/flixctl/internal/session"
)

// ViewState enumerates the screens of the TUI.
type ViewState int

const (
	LoadingView ViewState = iota
	LoginView
	LibraryView
	HistoryView
	DetailView
)

// String returns the route name used for guard checks and redirects.
func (v ViewState) String() string {
	switch v {
	case LoginView:
		return "/login"
	case LibraryView:
		return "/library"
	case HistoryView:
		return "/history"
	case DetailView:
		return "/video"
	default:
		return "/"
	}
}

const (
	loginFieldEmail = iota
	loginFieldPassword
	loginFieldCount
)

// Messages emitted by commands.
type (
	sessionCheckedMsg struct{ decision session.Decision }

	loginResultMsg struct {
		session *models.Session
		err     error
	}

	videosLoadedMsg struct {
		page *models.Page[models.Video]
		err  error
	}

	historyLoadedMsg struct {
		page *models.Page[models.HistoryEntry]
		err  error
	}

	streamURLMsg struct {
		stream *models.StreamURL
		err    error
	}
)

// Model is the top level bubbletea model. View transitions follow the
// session guard: while the context is settling a spinner renders, an
// anonymous viewer lands on the login form, and an expired session mid
// fetch bounces back to login with the interrupted view remembered.
type Model struct {
	state    ViewState
	returnTo ViewState

	sess    *session.Context
	guard   *session.Guard
	videos  *services.VideoService
	history *services.HistoryService
	logger  *log.Logger

	keys    keyMap
	spinner spinner.Model
	inputs  []textinput.Model
	focused int

	library list.Model
	watched list.Model

	selected *models.Video
	stream   *models.StreamURL

	width  int
	height int

	status  string
	lastErr error
}

// New constructs the TUI model. The guard owns access decisions; the model
// only translates them into view transitions.
func New(sess *session.Context, guard *session.Guard, videos *services.VideoService, history *services.HistoryService, logger *log.Logger) *Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.ok

	inputs := make([]textinput.Model, loginFieldCount)
	email := textinput.New()
	email.Placeholder = "email"
	email.CharLimit = 128
	email.Focus()
	inputs[loginFieldEmail] = email

	password := textinput.New()
	password.Placeholder = "password"
	password.CharLimit = 128
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'
	inputs[loginFieldPassword] = password

	return &Model{
		state:    LoadingView,
		returnTo: LibraryView,
		sess:     sess,
		guard:    guard,
		videos:   videos,
		history:  history,
		logger:   logger,
		keys:     newKeyMap(),
		spinner:  sp,
		inputs:   inputs,
		library:  newListModel("Library", 0, 0),
		watched:  newListModel("Watch History", 0, 0),
	}
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.checkSession(LibraryView))
}

// checkSession asks the guard where the viewer may go.
func (m *Model) checkSession(target ViewState) tea.Cmd {
	return func() tea.Msg {
		return sessionCheckedMsg{decision: m.guard.Check(target.String())}
	}
}

func (m *Model) loginCmd(email, password string) tea.Cmd {
	return func() tea.Msg {
		s, err := m.sess.Login(context.Background(), email, password)
		return loginResultMsg{session: s, err: err}
	}
}

func (m *Model) fetchVideos() tea.Cmd {
	return func() tea.Msg {
		page, err := m.videos.List(context.Background(), 0, 50, "")
		return videosLoadedMsg{page: page, err: err}
	}
}

func (m *Model) fetchHistory() tea.Cmd {
	return func() tea.Msg {
		page, err := m.history.UserHistory(context.Background(), 0, 50)
		return historyLoadedMsg{page: page, err: err}
	}
}

func (m *Model) fetchStreamURL(videoID int64) tea.Cmd {
	return func() tea.Msg {
		stream, err := m.videos.StreamURL(context.Background(), videoID)
		return streamURLMsg{stream: stream, err: err}
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.library.SetSize(msg.Width-4, msg.Height-6)
		m.watched.SetSize(msg.Width-4, msg.Height-6)
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case sessionCheckedMsg:
		return m.handleDecision(msg.decision)
	case loginResultMsg:
		return m.handleLoginResult(msg)
	case videosLoadedMsg:
		return m.handleVideosLoaded(msg)
	case historyLoadedMsg:
		return m.handleHistoryLoaded(msg)
	case streamURLMsg:
		return m.handleStreamURL(msg)
	}
	return m, nil
}

func (m *Model) handleDecision(d session.Decision) (tea.Model, tea.Cmd) {
	switch d.Kind {
	case session.DecisionLoading:
		m.state = LoadingView
		return m, nil
	case session.DecisionRedirect:
		m.returnTo = viewForRoute(d.From)
		m.state = LoginView
		m.focused = loginFieldEmail
		m.inputs[loginFieldEmail].Focus()
		m.inputs[loginFieldPassword].Blur()
		return m, textinput.Blink
	default:
		return m.enter(viewForRoute(d.From))
	}
}

func viewForRoute(route string) ViewState {
	switch route {
	case "/history":
		return HistoryView
	case "/video":
		return DetailView
	default:
		return LibraryView
	}
}

// enter transitions into an allowed view and kicks off its data fetch.
func (m *Model) enter(view ViewState) (tea.Model, tea.Cmd) {
	m.state = view
	m.lastErr = nil
	switch view {
	case HistoryView:
		m.status = "loading watch history..."
		return m, m.fetchHistory()
	default:
		m.status = "loading library..."
		return m, m.fetchVideos()
	}
}

func (m *Model) handleLoginResult(msg loginResultMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.lastErr = msg.err
		return m, nil
	}
	m.logger.Info("signed in", "email", msg.session.Email)
	m.inputs[loginFieldPassword].SetValue("")
	return m.enter(m.returnTo)
}

func (m *Model) handleVideosLoaded(msg videosLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		return m.handleFetchError(msg.err)
	}
	m.status = fmt.Sprintf("%d videos", msg.page.TotalElements)
	return m, m.library.SetItems(videoItems(msg.page.Content))
}

func (m *Model) handleHistoryLoaded(msg historyLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		return m.handleFetchError(msg.err)
	}
	m.status = fmt.Sprintf("%d entries", msg.page.TotalElements)
	return m, m.watched.SetItems(historyItems(msg.page.Content))
}

func (m *Model) handleStreamURL(msg streamURLMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		return m.handleFetchError(msg.err)
	}
	m.stream = msg.stream
	return m, nil
}

// handleFetchError re-consults the guard so an invalidated session routes
// back to the login form with the interrupted view preserved.
func (m *Model) handleFetchError(err error) (tea.Model, tea.Cmd) {
	m.lastErr = err
	return m, m.checkSession(m.state)
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.state {
	case LoginView:
		return m.handleLoginKey(msg)
	case LibraryView:
		return m.handleLibraryKey(msg)
	case HistoryView:
		return m.handleHistoryKey(msg)
	case DetailView:
		return m.handleDetailKey(msg)
	default:
		if msg.String() == "q" {
			return m, tea.Quit
		}
		return m, nil
	}
}

func (m *Model) handleLoginKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return m, tea.Quit
	case "tab", "shift+tab", "up", "down":
		m.inputs[m.focused].Blur()
		if msg.String() == "shift+tab" || msg.String() == "up" {
			m.focused--
		} else {
			m.focused++
		}
		if m.focused < 0 {
			m.focused = loginFieldCount - 1
		}
		m.focused %= loginFieldCount
		return m, m.inputs[m.focused].Focus()
	case "enter":
		email := strings.TrimSpace(m.inputs[loginFieldEmail].Value())
		password := m.inputs[loginFieldPassword].Value()
		m.status = "signing in..."
		m.lastErr = nil
		return m, m.loginCmd(email, password)
	}

	var cmd tea.Cmd
	m.inputs[m.focused], cmd = m.inputs[m.focused].Update(msg)
	return m, cmd
}

func (m *Model) handleLibraryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.library.FilterState() != list.Filtering {
		switch {
		case msg.String() == "q":
			return m, tea.Quit
		case msg.String() == "tab":
			return m, m.checkSession(HistoryView)
		case msg.String() == "r":
			return m.enter(LibraryView)
		case msg.String() == "ctrl+l":
			return m.logout()
		case msg.String() == "enter":
			if item, ok := m.library.SelectedItem().(videoItem); ok {
				m.selected = &item.video
				m.stream = nil
				m.state = DetailView
				return m, m.fetchStreamURL(item.video.ID)
			}
		}
	}

	var cmd tea.Cmd
	m.library, cmd = m.library.Update(msg)
	return m, cmd
}

func (m *Model) handleHistoryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.watched.FilterState() != list.Filtering {
		switch msg.String() {
		case "q":
			return m, tea.Quit
		case "tab", "esc":
			return m, m.checkSession(LibraryView)
		case "r":
			return m.enter(HistoryView)
		case "ctrl+l":
			return m.logout()
		}
	}

	var cmd tea.Cmd
	m.watched, cmd = m.watched.Update(msg)
	return m, cmd
}

func (m *Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "esc", "enter":
		m.selected = nil
		m.stream = nil
		m.state = LibraryView
		return m, nil
	}
	return m, nil
}

func (m *Model) logout() (tea.Model, tea.Cmd) {
	if err := m.sess.Logout(); err != nil {
		m.lastErr = err
		return m, nil
	}
	m.status = ""
	return m, m.checkSession(LibraryView)
}

func (m *Model) View() string {
	switch m.state {
	case LoadingView:
		return fmt.Sprintf("\n  %s checking session...\n", m.spinner.View())
	case LoginView:
		return m.loginView()
	case LibraryView:
		return m.listView(m.library)
	case HistoryView:
		return m.listView(m.watched)
	case DetailView:
		return m.detailView()
	default:
		return ""
	}
}

func (m *Model) loginView() string {
	var b strings.Builder
	b.WriteString(styles.title.Render("CloudFlix") + "\n\n")
	b.WriteString("  " + m.inputs[loginFieldEmail].View() + "\n")
	b.WriteString("  " + m.inputs[loginFieldPassword].View() + "\n\n")
	if m.lastErr != nil {
		b.WriteString("  " + styles.err.Render(m.lastErr.Error()) + "\n\n")
	}
	b.WriteString("  " + styles.help.Render("enter sign in · tab next field · esc quit") + "\n")
	return b.String()
}

func (m *Model) listView(l list.Model) string {
	var b strings.Builder
	b.WriteString(l.View())
	b.WriteString("\n")
	if m.lastErr != nil {
		b.WriteString(styles.err.Render(m.lastErr.Error()) + "\n")
	} else if m.status != "" {
		b.WriteString(styles.help.Render(m.status) + "\n")
	}
	b.WriteString(styles.help.Render("tab switch · enter select · r refresh · ctrl+l logout · q quit"))
	return b.String()
}

func (m *Model) detailView() string {
	if m.selected == nil {
		return ""
	}
	v := m.selected
	var b strings.Builder
	b.WriteString(styles.title.Render(v.Title) + "\n")
	if v.Genre != "" {
		b.WriteString(fmt.Sprintf("  Genre:    %s\n", v.Genre))
	}
	b.WriteString(fmt.Sprintf("  Runtime:  %s\n", formatRuntime(v.DurationSeconds)))
	if len(v.Tags) > 0 {
		b.WriteString(fmt.Sprintf("  Tags:     %s\n", strings.Join(v.Tags, ", ")))
	}
	if v.Description != "" {
		wrapped := lipgloss.NewStyle().Width(max(20, m.width-4)).Render(v.Description)
		b.WriteString("\n" + wrapped + "\n")
	}
	if m.stream != nil {
		b.WriteString("\n  " + styles.ok.Render("Stream: "+m.stream.URL) + "\n")
	} else if m.lastErr != nil {
		b.WriteString("\n  " + styles.err.Render(m.lastErr.Error()) + "\n")
	} else {
		b.WriteString("\n  " + m.spinner.View() + " fetching stream url...\n")
	}
	b.WriteString("\n" + styles.help.Render("esc back · q quit"))
	return b.String()
}
