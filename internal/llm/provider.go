package llm

import "context"

// Provider is the single network boundary of the system: one synchronous
// text-generation call against the upstream service.
type Provider interface {
	Generate(ctx context.Context, req GenerateRequest) (string, error)
}

// GenerateRequest carries the composed instruction plus the model-specific
// behavioral parameters selected by the dispatcher.
type GenerateRequest struct {
	Model             string
	Prompt            string
	SystemInstruction string
	Temperature       float32
	TopP              float32
	// ReasoningEffort, when set, requests the extended-reasoning variant of
	// the model instead of sampling parameters.
	ReasoningEffort string
	// APIKeyOverride is the user-supplied credential; when empty the ambient
	// environment credential is used.
	APIKeyOverride string
}
