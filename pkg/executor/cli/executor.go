// Package cli provides a plain terminal executor for Loom agents.
//
// It supports two modes: an interactive conversation loop (Run) and a
// one-shot mode (RunOnce) used by commands like `loom learn` and
// `loom create` that send a single prompt and exit when the turn ends.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/loomhq/loom/pkg/agent"
	"github.com/loomhq/loom/pkg/types"
)

// Executor renders agent events to a terminal and feeds it user input.
type Executor struct {
	agent  agent.Agent
	reader *bufio.Reader
	writer io.Writer

	showThinking bool

	messageStartPrinted bool
}

// ExecutorOption is a function that configures an Executor.
type ExecutorOption func(*Executor)

// WithShowThinking enables/disables displaying the agent's thinking process.
func WithShowThinking(show bool) ExecutorOption {
	return func(e *Executor) {
		e.showThinking = show
	}
}

// WithWriter sets a custom output writer (default is os.Stdout).
func WithWriter(w io.Writer) ExecutorOption {
	return func(e *Executor) {
		e.writer = w
	}
}

// NewExecutor creates a new CLI executor for the given agent.
func NewExecutor(agent agent.Agent, opts ...ExecutorOption) *Executor {
	e := &Executor{
		agent:        agent,
		reader:       bufio.NewReader(os.Stdin),
		writer:       os.Stdout,
		showThinking: false,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Run starts the executor and begins the conversation loop.
// Returns when the user exits or an error occurs.
func (e *Executor) Run(ctx context.Context) error {
	if err := e.agent.Start(ctx); err != nil {
		return fmt.Errorf("failed to start agent: %w", err)
	}

	channels := e.agent.GetChannels()

	eventsDone := make(chan struct{})
	turnEnd := make(chan struct{}, 1)
	go e.handleEvents(channels.Event, eventsDone, turnEnd)

	fmt.Fprintln(e.writer, "Loom")
	fmt.Fprintln(e.writer, "Type your message and press Enter. Type 'exit' or 'quit' to end the conversation.")
	fmt.Fprintln(e.writer)

	for {
		select {
		case <-ctx.Done():
			e.shutdown()
			<-eventsDone
			return ctx.Err()
		default:
		}

		fmt.Fprint(e.writer, "> ")
		input, err := e.reader.ReadString('\n')
		if err != nil {
			if err == io.EOF {
				e.shutdown()
				<-eventsDone
				return nil
			}
			return fmt.Errorf("failed to read input: %w", err)
		}

		input = strings.TrimSpace(input)

		if input == "exit" || input == "quit" {
			e.shutdown()
			<-eventsDone
			return nil
		}

		if input == "" {
			continue
		}

		channels.Input <- types.NewUserInput(input)

		<-turnEnd
	}
}

// RunOnce starts the agent, sends a single prompt, waits for the turn to
// complete, and shuts the agent down. Used for one-shot commands.
func (e *Executor) RunOnce(ctx context.Context, prompt string) error {
	if err := e.agent.Start(ctx); err != nil {
		return fmt.Errorf("failed to start agent: %w", err)
	}

	channels := e.agent.GetChannels()

	eventsDone := make(chan struct{})
	turnEnd := make(chan struct{}, 1)
	go e.handleEvents(channels.Event, eventsDone, turnEnd)

	channels.Input <- types.NewUserInput(prompt)

	select {
	case <-turnEnd:
	case <-ctx.Done():
		e.shutdown()
		<-eventsDone
		return ctx.Err()
	}

	e.shutdown()
	<-eventsDone
	return nil
}

// handleEvents processes events from the agent and renders them to the terminal.
func (e *Executor) handleEvents(events <-chan *types.AgentEvent, done chan struct{}, turnEnd chan struct{}) {
	defer close(done)

	for event := range events {
		e.handleEvent(event, turnEnd)
	}
}

// handleEvent processes a single event based on its type
func (e *Executor) handleEvent(event *types.AgentEvent, turnEnd chan struct{}) {
	switch event.Type {
	case types.EventTypeThinkingStart:
		e.handleThinkingStart()
	case types.EventTypeThinkingContent:
		e.handleThinkingContent(event.Content)
	case types.EventTypeThinkingEnd:
		e.handleThinkingEnd()
	case types.EventTypeToolCall:
		e.handleToolCall(event.ToolName)
	case types.EventTypeToolResult:
		e.handleToolResult(event.ToolOutput)
	case types.EventTypeToolResultError:
		e.handleToolResultError(event.ToolName, event.Error)
	case types.EventTypeMessageStart:
		e.handleMessageStart()
	case types.EventTypeMessageContent:
		e.handleMessageContent(event.Content)
	case types.EventTypeMessageEnd:
		e.handleMessageEnd()
	case types.EventTypeError:
		e.handleError(event.Error)
	case types.EventTypeUpdateBusy:
		// Could show a spinner here in the future
	case types.EventTypeTurnEnd:
		e.handleTurnEnd(turnEnd)
	}
}

func (e *Executor) handleThinkingStart() {
	if e.showThinking {
		fmt.Fprintln(e.writer, "\n[Thinking...]")
	}
}

func (e *Executor) handleThinkingContent(content string) {
	if e.showThinking {
		fmt.Fprint(e.writer, content)
	}
}

func (e *Executor) handleThinkingEnd() {
	if e.showThinking {
		fmt.Fprintln(e.writer, "\n[Done thinking]")
	}
}

func (e *Executor) handleToolCall(toolName string) {
	fmt.Fprintf(e.writer, "\n🔧 %s\n", toolName)
}

func (e *Executor) handleToolResult(toolOutput interface{}) {
	if result, ok := toolOutput.(string); ok {
		fmt.Fprintf(e.writer, "%s\n", result)
	} else {
		fmt.Fprintf(e.writer, "%v\n", toolOutput)
	}
}

func (e *Executor) handleToolResultError(toolName string, err error) {
	fmt.Fprintf(e.writer, "❌ Tool Error (%s): %v\n", toolName, err)
}

func (e *Executor) handleMessageStart() {
	e.messageStartPrinted = false
}

func (e *Executor) handleMessageContent(content string) {
	if content != "" && !e.messageStartPrinted {
		fmt.Fprintln(e.writer)
		e.messageStartPrinted = true
	}
	fmt.Fprint(e.writer, content)
}

func (e *Executor) handleMessageEnd() {
	fmt.Fprintln(e.writer)
}

func (e *Executor) handleError(err error) {
	fmt.Fprintf(e.writer, "\n❌ Error: %v\n", err)
}

func (e *Executor) handleTurnEnd(turnEnd chan struct{}) {
	select {
	case turnEnd <- struct{}{}:
	default:
	}
}

// shutdown gracefully shuts down the agent. A fresh context is used so
// teardown still gets its grace period when the run context was canceled.
func (e *Executor) shutdown() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := e.agent.Shutdown(shutdownCtx); err != nil {
		fmt.Fprintf(e.writer, "Warning: shutdown error: %v\n", err)
	}
}
