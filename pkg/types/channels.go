package types

// AgentChannels bundles the channels an executor uses to talk to a running
// agent. Input carries user input into the agent, Event carries agent events
// out, Shutdown requests a stop, and Done signals the agent has fully exited.
type AgentChannels struct {
	Input    chan *Input
	Event    chan *AgentEvent
	Shutdown chan struct{}
	Done     chan struct{}
}

// NewAgentChannels creates a channel bundle with the given event buffer size.
// Input is buffered by one so a queued submission never blocks the caller.
func NewAgentChannels(eventBufferSize int) *AgentChannels {
	if eventBufferSize <= 0 {
		eventBufferSize = 100
	}
	return &AgentChannels{
		Input:    make(chan *Input, 1),
		Event:    make(chan *AgentEvent, eventBufferSize),
		Shutdown: make(chan struct{}),
		Done:     make(chan struct{}),
	}
}

// Close shuts the outbound channels. Executors ranging over Event observe
// the close and exit; Done tells Shutdown callers the loop has fully
// stopped. Only the agent's event loop may call this.
func (c *AgentChannels) Close() {
	close(c.Event)
	close(c.Done)
}
