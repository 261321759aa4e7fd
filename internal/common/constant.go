package common

const (
	// AgentIDHeaderName is the gRPC metadata key identifying the calling agent.
	AgentIDHeaderName = "agent-id"
	// AgentKeyHeaderName carries the agent's shared key.
	AgentKeyHeaderName = "agent-key"

	// DefaultAgentID is the agent accepted when none is configured.
	DefaultAgentID = "pulse-agent"
)
