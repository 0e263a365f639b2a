package chat

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/loomhq/loom/pkg/agent"
	"github.com/loomhq/loom/pkg/types"
)

// model holds the state of the chat interface.
type model struct {
	// Bubble Tea components
	viewport viewport.Model
	textarea textarea.Model
	spinner  spinner.Model

	// Agent integration
	agent    agent.Agent
	channels *types.AgentChannels

	// Content buffers
	content        *strings.Builder
	thinkingBuffer *strings.Builder
	messageBuffer  *strings.Builder

	// Agent state
	isThinking bool
	agentBusy  bool

	// Window dimensions
	width  int
	height int
	ready  bool

	hasMessageContentStarted bool

	// Cumulative token usage across the session
	totalPromptTokens     int
	totalCompletionTokens int
	totalTokens           int

	shouldQuit bool
}

func initialModel() model {
	ta := textarea.New()
	ta.Placeholder = "Ask Loom to learn from posts or draft a new one..."
	ta.Focus()
	ta.Prompt = ""
	ta.CharLimit = 0
	ta.SetHeight(1)
	ta.ShowLineNumbers = false

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = thinkingStyle

	return model{
		textarea:       ta,
		spinner:        sp,
		content:        &strings.Builder{},
		thinkingBuffer: &strings.Builder{},
		messageBuffer:  &strings.Builder{},
	}
}

func newViewport(width, height int) viewport.Model {
	vp := viewport.New(width, height)
	vp.SetContent("")
	return vp
}
