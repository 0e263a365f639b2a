package agent

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/loomhq/loom/pkg/llm"
	"github.com/loomhq/loom/pkg/types"
)

// stubProvider replays canned responses, one per StreamCompletion call.
type stubProvider struct {
	responses []string
	calls     int
}

func (p *stubProvider) StreamCompletion(ctx context.Context, messages []*types.Message) (<-chan *llm.StreamChunk, error) {
	var response string
	if p.calls < len(p.responses) {
		response = p.responses[p.calls]
	}
	p.calls++

	ch := make(chan *llm.StreamChunk, 4)
	go func() {
		defer close(ch)
		ch <- &llm.StreamChunk{Role: "assistant", Content: response, Type: llm.ContentTypeMessage}
		ch <- &llm.StreamChunk{Finished: true}
	}()
	return ch, nil
}

func (p *stubProvider) Complete(ctx context.Context, messages []*types.Message) (*types.Message, error) {
	return types.NewAssistantMessage(""), nil
}

func (p *stubProvider) GetModelInfo() *types.ModelInfo {
	return &types.ModelInfo{Provider: "stub", Name: "stub-model", MaxTokens: 1000}
}

func (p *stubProvider) GetModel() string   { return "stub-model" }
func (p *stubProvider) GetBaseURL() string { return "" }
func (p *stubProvider) GetAPIKey() string  { return "" }

// collectTurn drains events until a turn_end event or the timeout.
func collectTurn(t *testing.T, events <-chan *types.AgentEvent) []*types.AgentEvent {
	t.Helper()

	var collected []*types.AgentEvent
	deadline := time.After(5 * time.Second)
	for {
		select {
		case event := <-events:
			collected = append(collected, event)
			if event.Type == types.EventTypeTurnEnd {
				return collected
			}
		case <-deadline:
			t.Fatalf("timed out waiting for turn end; got %d events", len(collected))
		}
	}
}

func eventTypes(events []*types.AgentEvent) map[types.AgentEventType]int {
	counts := make(map[types.AgentEventType]int)
	for _, e := range events {
		counts[e.Type]++
	}
	return counts
}

func TestAgentTurnWithLoopBreakingTool(t *testing.T) {
	provider := &stubProvider{responses: []string{
		"<tool><tool_name>converse</tool_name><arguments><message>hello there</message></arguments></tool>",
	}}

	ag := NewDefaultAgent(provider)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := ag.Start(ctx); err != nil {
		t.Fatalf("failed to start agent: %v", err)
	}

	channels := ag.GetChannels()
	channels.Input <- types.NewUserInput("hi")

	events := collectTurn(t, channels.Event)
	counts := eventTypes(events)

	if counts[types.EventTypeToolCall] != 1 {
		t.Errorf("expected one tool call event, got %d", counts[types.EventTypeToolCall])
	}
	if counts[types.EventTypeToolResult] != 1 {
		t.Errorf("expected one tool result event, got %d", counts[types.EventTypeToolResult])
	}
	for _, e := range events {
		if e.Type == types.EventTypeToolResult {
			if out, ok := e.ToolOutput.(string); !ok || out != "hello there" {
				t.Errorf("unexpected tool output: %v", e.ToolOutput)
			}
		}
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer shutdownCancel()
	if err := ag.Shutdown(shutdownCtx); err != nil {
		t.Fatalf("shutdown failed: %v", err)
	}
}

func TestAgentRecoversFromUnknownTool(t *testing.T) {
	provider := &stubProvider{responses: []string{
		"<tool><tool_name>no_such_tool</tool_name><arguments></arguments></tool>",
		"<tool><tool_name>task_completion</tool_name><arguments><result>done</result></arguments></tool>",
	}}

	ag := NewDefaultAgent(provider)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := ag.Start(ctx); err != nil {
		t.Fatalf("failed to start agent: %v", err)
	}

	channels := ag.GetChannels()
	channels.Input <- types.NewUserInput("do something")

	events := collectTurn(t, channels.Event)
	counts := eventTypes(events)

	// First iteration errors on the unknown tool, second completes.
	if counts[types.EventTypeError] == 0 {
		t.Error("expected an error event for the unknown tool")
	}
	if counts[types.EventTypeToolResult] != 1 {
		t.Errorf("expected the recovery iteration to finish with one tool result, got %d", counts[types.EventTypeToolResult])
	}
	if provider.calls != 2 {
		t.Errorf("expected 2 provider calls, got %d", provider.calls)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer shutdownCancel()
	if err := ag.Shutdown(shutdownCtx); err != nil {
		t.Fatalf("shutdown failed: %v", err)
	}
}

func TestAgentCircuitBreakerOnRepeatedMissingToolCalls(t *testing.T) {
	responses := make([]string, consecutiveErrorLimit+1)
	for i := range responses {
		responses[i] = "just chatting, no tool call here"
	}
	provider := &stubProvider{responses: responses}

	ag := NewDefaultAgent(provider)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := ag.Start(ctx); err != nil {
		t.Fatalf("failed to start agent: %v", err)
	}

	channels := ag.GetChannels()
	channels.Input <- types.NewUserInput("hi")

	events := collectTurn(t, channels.Event)
	counts := eventTypes(events)

	if counts[types.EventTypeNoToolCall] != consecutiveErrorLimit {
		t.Errorf("expected %d no-tool-call events, got %d", consecutiveErrorLimit, counts[types.EventTypeNoToolCall])
	}
	if provider.calls != consecutiveErrorLimit {
		t.Errorf("circuit breaker should stop after %d calls, got %d", consecutiveErrorLimit, provider.calls)
	}

	foundBreaker := false
	for _, e := range events {
		if e.Type == types.EventTypeError && e.Error != nil && strings.Contains(e.Error.Error(), "circuit breaker") {
			foundBreaker = true
		}
	}
	if !foundBreaker {
		t.Error("expected a circuit breaker error event")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer shutdownCancel()
	if err := ag.Shutdown(shutdownCtx); err != nil {
		t.Fatalf("shutdown failed: %v", err)
	}
}

func TestRegisterToolProtectsBuiltIns(t *testing.T) {
	ag := NewDefaultAgent(&stubProvider{})

	if err := ag.RegisterTool(nil); err == nil {
		t.Error("expected error for nil tool")
	}

	builtin := ag.GetTool("converse")
	if builtin == nil {
		t.Fatal("converse should be registered by default")
	}
	if err := ag.RegisterTool(builtin); err == nil {
		t.Error("expected error when overriding a built-in tool")
	}

	if got := len(ag.GetTools()); got != 2 {
		t.Errorf("expected 2 built-in tools, got %d", got)
	}
}
