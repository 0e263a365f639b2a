// Package chat provides an interactive terminal chat executor for Loom
// agents, built on Bubble Tea.
//
// The package is split across a few files:
// - executor.go: executor implementation and program lifecycle
// - model.go: core model structure and state
// - update.go: Bubble Tea Update function and key handling
// - view.go: Bubble Tea View function and rendering
// - events.go: agent event processing
// - styles.go: color scheme and styling
package chat

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/loomhq/loom/pkg/agent"
)

// Executor runs a full-screen chat session against a Loom agent.
type Executor struct {
	agent   agent.Agent
	program *tea.Program
}

// NewExecutor creates a new chat executor for the given agent.
func NewExecutor(agent agent.Agent) *Executor {
	return &Executor{agent: agent}
}

// Run starts the chat executor and blocks until the user exits.
func (e *Executor) Run(ctx context.Context) error {
	if err := e.agent.Start(ctx); err != nil {
		return fmt.Errorf("failed to start agent: %w", err)
	}

	m := initialModel()
	m.agent = e.agent
	m.channels = e.agent.GetChannels()

	e.program = tea.NewProgram(
		&m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	go func() {
		// Forward agent events into the Bubble Tea message loop
		for event := range m.channels.Event {
			e.program.Send(event)
		}
	}()

	if _, err := e.program.Run(); err != nil {
		return fmt.Errorf("failed to run chat program: %w", err)
	}

	return nil
}
