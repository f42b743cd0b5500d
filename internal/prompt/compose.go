// Package prompt builds the final instruction string sent upstream. It is
// pure: no I/O, no randomness, identical inputs produce identical output.
package prompt

import (
	"errors"
	"strings"

	"github.com/kimiagar/backend/internal/models"
)

// Placeholder tokens recognized in spell templates.
const (
	TextToken   = "{{text}}"
	PromptToken = "{{prompt}}"
)

// ErrInstructionRequired is returned when the free-form spell is invoked
// without an instruction. This is a terminal validation failure, not a
// provider error; it must never reach the network.
var ErrInstructionRequired = errors.New("instruction required for free-form spell")

// Compose renders spell.PromptTemplate against the input text and, for the
// free-form spell, the user's ad hoc instruction.
//
// Only the first occurrence of each token is substituted, matching the
// behavior existing templates were authored against. A template with no
// {{text}} token gets the input appended after a blank line instead of
// failing, so hand-written templates stay usable.
func Compose(text string, spell models.Spell, instruction string) (string, error) {
	final := spell.PromptTemplate

	if spell.ID == models.FreeFormSpellID {
		if instruction == "" {
			return "", ErrInstructionRequired
		}
		final = strings.Replace(final, PromptToken, instruction, 1)
	}

	if strings.Contains(final, TextToken) {
		final = strings.Replace(final, TextToken, text, 1)
	} else {
		final = final + "\n\n" + text
	}

	return final, nil
}
