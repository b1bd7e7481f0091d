package domain

// Role identifies the author of a conversation message
type Role string

const (
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
	RoleTool      Role = "tool"
	RoleUser      Role = "user"
)

// FinishReason is why the model ended its turn
type FinishReason string

const (
	FinishReasonLength    FinishReason = "length"
	FinishReasonOther     FinishReason = "other"
	FinishReasonStop      FinishReason = "stop"
	FinishReasonToolCalls FinishReason = "tool_calls"
)

// Message is one entry of the conversation with the model service
type Message struct {
	Content    string
	Role       Role
	ToolCallID string
	ToolCalls  []ToolCall
}

// ToolCall is a structured tool invocation requested by the model
type ToolCall struct {
	Arguments string
	ID        string
	Name      string
}

// ToolDefinition describes a tool to the model service; Parameters is a JSON schema
type ToolDefinition struct {
	Description string
	Name        string
	Parameters  map[string]any
}

// CompletionRequest is one chat request
type CompletionRequest struct {
	Messages []Message
	Model    string
	Tools    []ToolDefinition
}

// Completion is the model's reply to a CompletionRequest
type Completion struct {
	FinishReason FinishReason
	Message      Message
}
