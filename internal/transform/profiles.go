package transform

import "github.com/kimiagar/backend/internal/models"

// baseSystemInstruction is shared by every profile and fixes the assistant's
// persona and output-language rules.
const baseSystemInstruction = `You are a highly intelligent Persian (Farsi) language assistant.
Your goal is to process text accurately, maintaining the nuances of the Persian language and culture.
Always respond in the requested language. If the task is to fix grammar or formalize, keep the output in Persian.
If the task is translation, translate accurately.
Ensure the output is clean, formatted correctly, and ready for use.`

const copilotPersona = "\nAdopt a helpful, creative, and friendly tone similar to a creative co-pilot."

type profile struct {
	system          string
	temperature     float32
	topP            float32
	reasoningEffort string
}

// profileFor maps a model persona to its request parameters. The deep
// reasoning persona trades sampling parameters for a fixed reasoning budget;
// the creative persona raises randomness and extends the system instruction.
func profileFor(modelID string) profile {
	switch modelID {
	case models.ModelDeepSeek:
		return profile{
			system:          baseSystemInstruction,
			reasoningEffort: "medium",
		}
	case models.ModelCopilot:
		return profile{
			system:      baseSystemInstruction + copilotPersona,
			temperature: 0.9,
			topP:        0.95,
		}
	default:
		return profile{
			system:      baseSystemInstruction,
			temperature: 0.7,
		}
	}
}
