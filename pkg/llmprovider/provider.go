package llmprovider

import "context"

// Provider is one LLM backend. Implementations must be safe for concurrent use.
type Provider interface {
	GenerateContent(ctx context.Context, req *Request) (*Response, error)
	Name() string
	Model() string
}

// Names accepted in config.
const (
	ProviderOpenAI   = "openai"
	ProviderDeepSeek = "deepseek"
	ProviderGemini   = "gemini"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleTool      = "tool"
)

// Request is the provider-neutral form of a chat turn with tools.
type Request struct {
	SystemInstruction *Message
	Messages          []Message
	Tools             []Tool
	Temperature       float64
	MaxTokens         int
}

type Response struct {
	Content      Message
	ProviderName string
	ModelName    string
	Usage        *Usage
}

type Message struct {
	Role  string
	Parts []Part
}

// Part carries exactly one of text, a call or a call result.
type Part struct {
	Text             string
	FunctionCall     *FunctionCall
	FunctionResponse *FunctionResponse
}

// Tool declares a callable function; Parameters is a JSON Schema object.
type Tool struct {
	Name        string
	Description string
	Parameters  map[string]interface{}
}

// FunctionCall.ID pairs a call with its FunctionResponse on providers that
// require it (OpenAI).
type FunctionCall struct {
	ID   string
	Name string
	Args map[string]interface{}
}

type FunctionResponse struct {
	ID       string
	Name     string
	Response interface{}
}

type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
