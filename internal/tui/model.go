package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	apierrors "github.com/rafael/dmterm/internal/errors"
	"github.com/rafael/dmterm/internal/logger"
	"github.com/rafael/dmterm/internal/models"
	"github.com/rafael/dmterm/internal/render"
)

// Animation tick message
type animationTickMsg time.Time

// Message types for the TUI
type (
	// narrativeMsg is a successful reply to a player turn
	narrativeMsg struct {
		output *models.TurnOutput
	}
	// initialDoneMsg is the result of the scene-setting request
	initialDoneMsg struct {
		output *models.TurnOutput
		err    error
	}
	// resetDoneMsg is the result of the campaign reset request
	resetDoneMsg struct {
		err error
	}
	errMsg struct {
		err error
	}
)

// SessionInterface defines the campaign session operations needed by the TUI
type SessionInterface interface {
	SendMessage(input string) (*models.TurnOutput, error)
	SendInitial() (*models.TurnOutput, error)
	Reset() (*models.ResetOutput, error)
	Campaign() string
	Turns() int
}

// In-chat slash commands
const (
	cmdReset = "/reset"
	cmdTheme = "/theme"
)

// resetStatusText is the transient message shown while a reset is in flight
const resetStatusText = "Resetting campaign... the old world fades away."

// chatMessage represents a message in the conversation log
type chatMessage struct {
	role    string // "user" or "assistant"
	content string
}

// Model represents the TUI state. The conversation lives only in memory for
// the session; the server owns campaign persistence.
type Model struct {
	session SessionInterface

	// UI components
	viewport viewport.Model
	textarea textarea.Model
	spinner  spinner.Model

	// State
	messages        []chatMessage
	loading         bool // guards at-most-one-in-flight; submissions while set are dropped
	confirmingReset bool
	ready           bool
	animationFrame  int
	lastErr         error

	// Dimensions
	width  int
	height int
}

// NewModel creates the chat TUI model. The conversation starts empty and the
// scene-setting request is issued from Init.
func NewModel(session SessionInterface) Model {
	// The config-selected theme may have been set after package init.
	UpdateTheme()

	ta := textarea.New()
	ta.Placeholder = "What do you do?"
	ta.CharLimit = 4000
	ta.ShowLineNumbers = false
	ta.SetHeight(2)
	ta.Focus()

	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ta.FocusedStyle.Base = lipgloss.NewStyle().Foreground(colorText)
	ta.FocusedStyle.Placeholder = lipgloss.NewStyle().Foreground(colorTextDim)
	ta.BlurredStyle = ta.FocusedStyle

	s := spinner.New()
	s.Spinner = spinner.Points
	s.Style = loadingStyle

	return Model{
		session:  session,
		textarea: ta,
		spinner:  s,
		messages: []chatMessage{},
		loading:  true, // the initial request starts immediately
	}
}

// Init initializes the model and issues the scene-setting request
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textarea.Blink,
		m.spinner.Tick,
		animationTick(),
		m.sendInitial(),
	)
}

// animationTick returns a command that sends animation tick messages
func animationTick() tea.Cmd {
	return tea.Tick(time.Millisecond*80, func(t time.Time) tea.Msg {
		return animationTickMsg(t)
	})
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	if m.confirmingReset {
		return m.updateResetConfirm(msg)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.handleResize(msg)

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "esc":
			return m, tea.Quit

		case "enter":
			return m.handleSubmit()
		}

	case initialDoneMsg:
		m.loading = false
		if msg.err != nil {
			m.lastErr = msg.err
			m.messages = []chatMessage{errorChatMessage(msg.err)}
		} else {
			m.lastErr = nil
			m.messages = []chatMessage{toChatMessage(models.AssistantMessage(msg.output.Text()))}
		}
		m.updateViewport()
		m.viewport.GotoBottom()

	case narrativeMsg:
		m.loading = false
		m.lastErr = nil
		m.messages = append(m.messages, toChatMessage(models.AssistantMessage(msg.output.Text())))
		m.updateViewport()
		m.viewport.GotoBottom()

	case resetDoneMsg:
		if msg.err != nil {
			// Keep the transient status message, surface the failure, return
			// to idle without re-initializing.
			m.loading = false
			m.lastErr = msg.err
			m.messages = append(m.messages, errorChatMessage(msg.err))
			m.updateViewport()
			m.viewport.GotoBottom()
		} else {
			// Fresh campaign: clear everything and fetch a new opening scene.
			m.messages = []chatMessage{}
			m.lastErr = nil
			m.loading = true
			m.updateViewport()
			return m, tea.Batch(m.sendInitial(), m.spinner.Tick, animationTick())
		}

	case errMsg:
		m.loading = false
		m.lastErr = msg.err
		m.messages = append(m.messages, errorChatMessage(msg.err))
		m.updateViewport()
		m.viewport.GotoBottom()

	case spinner.TickMsg:
		if m.loading {
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}

	case animationTickMsg:
		if m.loading {
			m.animationFrame++
			cmds = append(cmds, animationTick())
		}
	}

	// Only pass key events to the textarea, and never while a request is in
	// flight: rejected submissions are dropped but pending input is kept.
	if !m.loading {
		if _, ok := msg.(tea.KeyMsg); ok {
			m.textarea, cmd = m.textarea.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// handleResize recalculates layout for the new terminal dimensions
func (m *Model) handleResize(msg tea.WindowSizeMsg) {
	m.width = msg.Width
	m.height = msg.Height

	headerHeight := 4
	inputHeight := 6
	statusHeight := 1
	padding := 2

	vpHeight := m.height - headerHeight - inputHeight - statusHeight - padding
	if vpHeight < 5 {
		vpHeight = 5
	}

	contentWidth := m.width - 4

	if !m.ready {
		m.viewport = viewport.New(contentWidth, vpHeight)
		m.textarea.SetWidth(contentWidth - 4)
		m.ready = true
	} else {
		m.viewport.Width = contentWidth
		m.viewport.Height = vpHeight
		m.textarea.SetWidth(contentWidth - 4)
	}
	m.updateViewport()
}

// handleSubmit processes the enter key: slash commands, meta-commands, and
// ordinary player turns. Empty input and in-flight requests are no-ops.
func (m Model) handleSubmit() (tea.Model, tea.Cmd) {
	input := strings.TrimSpace(m.textarea.Value())
	if input == "" || m.loading {
		return m, nil
	}

	switch input {
	case "exit", "quit", "/exit", "/quit":
		return m, tea.Quit

	case cmdReset:
		m.textarea.Reset()
		m.confirmingReset = true
		return m, nil

	case cmdTheme:
		m.textarea.Reset()
		m.toggleTheme()
		return m, nil
	}

	// Meta-commands go to the server as plain content but are not echoed as
	// player turns.
	if !models.IsMetaCommand(input) {
		m.messages = append(m.messages, toChatMessage(models.UserMessage(input)))
	}

	m.textarea.Reset()
	m.loading = true
	m.lastErr = nil
	m.animationFrame = 0
	m.updateViewport()
	m.viewport.GotoBottom()

	return m, tea.Batch(
		m.sendMessage(input),
		m.spinner.Tick,
		animationTick(),
	)
}

// toggleTheme flips between the dark and light palettes. Presentation only;
// the conversation is untouched.
func (m *Model) toggleTheme() {
	theme := render.ToggleTUITheme()
	logger.Debug("theme toggled", "theme", theme.Name)
	UpdateTheme()

	m.textarea.FocusedStyle.Base = lipgloss.NewStyle().Foreground(colorText)
	m.textarea.FocusedStyle.Placeholder = lipgloss.NewStyle().Foreground(colorTextDim)
	m.textarea.BlurredStyle = m.textarea.FocusedStyle
	m.spinner.Style = loadingStyle

	m.updateViewport()
}

// updateResetConfirm handles events while the reset confirmation is shown.
// Resizes still apply; other non-key messages are ignored.
func (m Model) updateResetConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		if sizeMsg, isResize := msg.(tea.WindowSizeMsg); isResize {
			m.handleResize(sizeMsg)
		}
		return m, nil
	}

	switch keyMsg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "y", "Y":
		m.confirmingReset = false
		m.loading = true
		m.lastErr = nil
		m.animationFrame = 0
		m.messages = []chatMessage{toChatMessage(models.AssistantMessage(resetStatusText))}
		m.updateViewport()
		return m, tea.Batch(m.sendReset(), m.spinner.Tick, animationTick())

	default:
		// Anything but an explicit yes cancels; the conversation is unchanged.
		m.confirmingReset = false
		return m, nil
	}
}

// View renders the TUI
func (m Model) View() string {
	if !m.ready {
		return loadingStyle.Render("  Entering the dungeon...")
	}

	var sections []string
	contentWidth := m.width - 4

	// Header
	headerParts := []string{
		titleStyle.Render("⚔ Dungeon Master"),
		hintStyle.Render("  •  "),
		subtitleStyle.Render("campaign: " + m.session.Campaign()),
	}
	headerContent := lipgloss.JoinHorizontal(lipgloss.Center, headerParts...)
	header := headerStyle.Width(contentWidth).Render(headerContent)
	sections = append(sections, header)

	// Messages area
	var messagesContent string
	if len(m.messages) == 0 && !m.loading {
		messagesContent = m.renderWelcome()
	} else {
		messagesContent = m.viewport.View()
	}

	messagesPanel := messagesAreaStyle.
		Width(contentWidth).
		Height(m.viewport.Height).
		Render(messagesContent)
	sections = append(sections, messagesPanel)

	// Input area
	var inputContent string
	switch {
	case m.confirmingReset:
		inputContent = confirmStyle.Render("⚠ Reset the campaign and lose all progress? ") +
			statusKeyStyle.Render("y") + statusDescStyle.Render(" confirm  ") +
			statusKeyStyle.Render("n") + statusDescStyle.Render(" cancel")
	case m.loading:
		inputContent = m.renderLoadingAnimation()
	default:
		inputContent = lipgloss.JoinVertical(
			lipgloss.Left,
			inputLabelStyle.Render("You"),
			m.textarea.View(),
		)
	}

	inputPanel := inputPanelStyle.Width(contentWidth).Render(inputContent)
	sections = append(sections, inputPanel)

	// Status bar
	sections = append(sections, m.renderStatusBar(contentWidth))

	// Hint line for the latest failure; the failure itself is already in the log
	if m.lastErr != nil {
		sections = append(sections, m.renderErrorHint())
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderWelcome renders the empty-conversation screen
func (m Model) renderWelcome() string {
	width := m.viewport.Width - 4
	height := m.viewport.Height

	icon := welcomeIconStyle.Width(width).Render("⚔")
	title := welcomeTitleStyle.Width(width).Render("Your adventure awaits")
	subtitle := welcomeStyle.Width(width).Render("Describe your action below to begin")

	content := lipgloss.JoinVertical(
		lipgloss.Center,
		"",
		icon,
		"",
		title,
		"",
		subtitle,
		"",
	)

	contentHeight := lipgloss.Height(content)
	topPadding := (height - contentHeight) / 2
	if topPadding < 0 {
		topPadding = 0
	}

	return strings.Repeat("\n", topPadding) + content
}

// renderLoadingAnimation renders the animated loading indicator
func (m Model) renderLoadingAnimation() string {
	chars := []string{"⣾", "⣽", "⣻", "⢿", "⡿", "⣟", "⣯", "⣷"}
	barChars := []string{"█", "█", "█", "█", "█", "█", "▓", "▒", "░"}

	frame := m.animationFrame

	spinIdx := frame % len(chars)
	spinColor := gradientColors[frame%len(gradientColors)]
	spin := lipgloss.NewStyle().Foreground(spinColor).Bold(true).Render(chars[spinIdx])

	barWidth := 20
	var bar strings.Builder
	for i := 0; i < barWidth; i++ {
		colorIdx := (i + frame) % len(gradientColors)
		charIdx := (i + frame/2) % len(barChars)

		style := lipgloss.NewStyle().Foreground(gradientColors[colorIdx])
		bar.WriteString(style.Render(barChars[charIdx]))
	}

	var dots strings.Builder
	numDots := (frame / 3) % 4
	for i := 0; i < 3; i++ {
		if i < numDots {
			dotColor := gradientColors[(frame+i)%len(gradientColors)]
			dots.WriteString(lipgloss.NewStyle().Foreground(dotColor).Render("●"))
		} else {
			dots.WriteString(lipgloss.NewStyle().Foreground(colorTextMute).Render("○"))
		}
	}

	text := lipgloss.NewStyle().Foreground(colorText).Render(" The Dungeon Master ponders ")

	return fmt.Sprintf("%s %s %s %s", spin, bar.String(), text, dots.String())
}

// renderStatusBar renders the bottom status bar with shortcuts
func (m Model) renderStatusBar(width int) string {
	shortcuts := []struct {
		key  string
		desc string
	}{
		{"Enter", "Send"},
		{"/reset", "New campaign"},
		{"/theme", "Dark/light"},
		{"Esc", "Quit"},
	}

	var items []string
	for _, s := range shortcuts {
		item := lipgloss.JoinHorizontal(
			lipgloss.Center,
			statusKeyStyle.Render(s.key),
			statusDescStyle.Render(" "+s.desc),
		)
		items = append(items, item)
	}

	bar := lipgloss.JoinHorizontal(lipgloss.Center, strings.Join(items, "  │  "))
	return statusBarStyle.Width(width).Align(lipgloss.Center).Render(bar)
}

// renderErrorHint renders a short hint line for the latest failure
func (m Model) renderErrorHint() string {
	hint := ""
	switch {
	case apierrors.IsTimeoutError(m.lastErr):
		hint = "The server took too long. Try again"
	case apierrors.IsNetworkError(m.lastErr):
		hint = "Check that the Dungeon Master server is running"
	case apierrors.IsServerError(m.lastErr):
		hint = "The server hit an internal error. Check its logs"
	}

	if hint == "" {
		return ""
	}
	return errorStyle.PaddingLeft(2).Render("✗ ") + hintStyle.Render(hint)
}

// sendMessage creates a command that sends a player turn
func (m Model) sendMessage(input string) tea.Cmd {
	return func() tea.Msg {
		output, err := m.session.SendMessage(input)
		if err != nil {
			return errMsg{err: err}
		}
		return narrativeMsg{output: output}
	}
}

// sendInitial creates a command that requests the opening scene
func (m Model) sendInitial() tea.Cmd {
	return func() tea.Msg {
		output, err := m.session.SendInitial()
		return initialDoneMsg{output: output, err: err}
	}
}

// sendReset creates a command that resets the campaign
func (m Model) sendReset() tea.Cmd {
	return func() tea.Msg {
		_, err := m.session.Reset()
		return resetDoneMsg{err: err}
	}
}

// errorChatMessage converts a request failure into a conversation entry.
// HTTP and transport failures collapse into one human-readable line.
func errorChatMessage(err error) chatMessage {
	detail := "request failed"
	switch {
	case apierrors.GetHTTPStatus(err) > 0:
		detail = fmt.Sprintf("request failed (HTTP %d): %v", apierrors.GetHTTPStatus(err), err)
	case apierrors.IsTimeoutError(err):
		detail = "request timed out"
	case apierrors.IsNetworkError(err):
		detail = fmt.Sprintf("cannot reach the Dungeon Master server: %v", err)
	case err != nil:
		detail = err.Error()
	}

	return toChatMessage(models.ErrorMessage(detail))
}

// toChatMessage converts a protocol message into a display log entry
func toChatMessage(msg models.Message) chatMessage {
	return chatMessage{role: msg.Role, content: msg.Content}
}

// updateViewport refreshes the viewport content with styled messages
func (m *Model) updateViewport() {
	if !m.ready {
		return
	}

	var content strings.Builder
	bubbleWidth := m.viewport.Width - 6

	for i, msg := range m.messages {
		if i > 0 {
			content.WriteString("\n")
		}

		if msg.role == models.RoleUser {
			label := userLabelStyle.Render("⬤ You")
			bubble := userBubbleStyle.Width(bubbleWidth).Render(msg.content)
			content.WriteString(label + "\n" + bubble)
		} else {
			label := dmLabelStyle.Render("⚔ Dungeon Master")

			rendered, err := render.MarkdownWithWidth(msg.content, bubbleWidth-4)
			if err != nil {
				rendered = msg.content
			}
			rendered = strings.TrimRight(rendered, "\n")

			bubble := dmBubbleStyle.Width(bubbleWidth).Render(rendered)
			content.WriteString(label + "\n" + bubble)
		}
		content.WriteString("\n")
	}

	m.viewport.SetContent(content.String())
}

// Messages returns a copy of the conversation log in display order
func (m Model) Messages() []models.Message {
	out := make([]models.Message, len(m.messages))
	for i, msg := range m.messages {
		out[i] = models.Message{Role: msg.role, Content: msg.content}
	}
	return out
}

// Loading reports whether a request is in flight
func (m Model) Loading() bool {
	return m.loading
}

// Run starts the chat TUI
func Run(session SessionInterface) error {
	m := NewModel(session)

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
