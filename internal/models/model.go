package models

// ModelConfig describes one selectable model persona. Selecting one fixes
// both the upstream model string and the request-parameter profile applied by
// the dispatcher.
type ModelConfig struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	ModelName   string `json:"modelName"`
	IsPro       bool   `json:"isPro,omitempty"`
}

// Model persona ids.
const (
	ModelGemini   = "gemini"
	ModelCopilot  = "copilot"
	ModelDeepSeek = "deepseek"
)

// AIModels is the fixed, non-persisted model catalog. All personas currently
// ride on the same upstream model and differ only in request parameters.
var AIModels = []ModelConfig{
	{
		ID:          ModelGemini,
		Name:        "Gemini",
		Description: "سریع و استاندارد (Flash 2.5)",
		ModelName:   "gemini-2.5-flash",
	},
	{
		ID:          ModelCopilot,
		Name:        "Copilot",
		Description: "خلاق و مکالمه‌محور (Creative)",
		ModelName:   "gemini-2.5-flash",
	},
	{
		ID:          ModelDeepSeek,
		Name:        "DeepSeek",
		Description: "استدلال عمیق (Thinking)",
		ModelName:   "gemini-2.5-flash",
		IsPro:       true,
	},
}

// ModelByID returns the catalog entry for id, defaulting to the first entry
// for unknown ids so a stale UI selection still dispatches.
func ModelByID(id string) ModelConfig {
	for _, m := range AIModels {
		if m.ID == id {
			return m
		}
	}
	return AIModels[0]
}
