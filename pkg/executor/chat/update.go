package chat

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/loomhq/loom/pkg/types"
)

// Init starts the cursor blink and spinner tickers.
func (m *model) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, m.spinner.Tick)
}

// Update handles all state updates for the chat model.
func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.shouldQuit {
		return m, tea.Quit
	}

	var (
		tiCmd      tea.Cmd
		vpCmd      tea.Cmd
		spinnerCmd tea.Cmd
	)

	m.spinner, spinnerCmd = m.spinner.Update(msg)
	m.textarea, tiCmd = m.textarea.Update(msg)
	m.viewport, vpCmd = m.viewport.Update(msg)

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowResize(msg)

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			if m.agentBusy {
				// First Ctrl+C cancels the in-flight turn
				m.channels.Input <- types.NewCancelInput()
				return m, tea.Batch(tiCmd, vpCmd, spinnerCmd)
			}
			m.quit()
			return m, tea.Quit

		case tea.KeyEsc:
			m.quit()
			return m, tea.Quit

		case tea.KeyEnter:
			return m.handleSubmit(tiCmd, vpCmd, spinnerCmd)
		}

	case *types.AgentEvent:
		m.handleAgentEvent(msg)
		return m, tea.Batch(tiCmd, vpCmd, spinnerCmd)
	}

	return m, tea.Batch(tiCmd, vpCmd, spinnerCmd)
}

// handleSubmit sends the current textarea content to the agent.
func (m *model) handleSubmit(cmds ...tea.Cmd) (tea.Model, tea.Cmd) {
	input := strings.TrimSpace(m.textarea.Value())
	if input == "" || m.agentBusy {
		return m, tea.Batch(cmds...)
	}

	if input == "exit" || input == "quit" {
		m.quit()
		return m, tea.Quit
	}

	m.content.WriteString(userStyle.Render("You: ") + input + "\n\n")
	m.viewport.SetContent(m.content.String())
	m.viewport.GotoBottom()
	m.textarea.Reset()

	m.channels.Input <- types.NewUserInput(input)

	return m, tea.Batch(cmds...)
}

// handleWindowResize recalculates component dimensions.
func (m *model) handleWindowResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height

	headerHeight := 4 // header + tips
	inputHeight := 3  // bordered textarea
	statusHeight := 1

	vpHeight := m.height - headerHeight - inputHeight - statusHeight
	if vpHeight < 1 {
		vpHeight = 1
	}

	if !m.ready {
		m.viewport = newViewport(m.width, vpHeight)
		m.ready = true
	} else {
		m.viewport.Width = m.width
		m.viewport.Height = vpHeight
	}
	m.textarea.SetWidth(m.width - 6)

	m.viewport.SetContent(m.content.String())
	m.viewport.GotoBottom()
	return m, nil
}

// quit shuts the agent down before the program exits.
func (m *model) quit() {
	m.shouldQuit = true

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = m.agent.Shutdown(ctx)
}
