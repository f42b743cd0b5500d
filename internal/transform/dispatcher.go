// Package transform orchestrates one end-to-end transformation: input
// guards, credential gating, prompt composition, the single upstream call,
// outcome classification, and the history write.
package transform

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/kimiagar/backend/internal/credential"
	"github.com/kimiagar/backend/internal/history"
	"github.com/kimiagar/backend/internal/llm"
	"github.com/kimiagar/backend/internal/models"
	"github.com/kimiagar/backend/internal/prompt"
	"github.com/kimiagar/backend/internal/spell"
)

type Status string

const (
	StatusSucceeded       Status = "succeeded"
	StatusFailed          Status = "failed"
	StatusNeedsCredential Status = "needs_credential"
	StatusCredentialError Status = "credential_error"
)

// Pre-dispatch validation errors; these never reach the provider.
var (
	ErrEmptyInput   = errors.New("input text is empty")
	ErrUnknownSpell = errors.New("unknown spell")
)

// User-facing messages that are part of the classification contract with the
// existing UI; do not reword without migrating the UI match logic.
const (
	msgEnterAPIKey       = "لطفاً کلید API خود را وارد کنید."
	msgInstructionNeeded = "Please provide a custom prompt."
	msgNoOutput          = "No output generated."
)

type Request struct {
	Text         string `json:"text"`
	SpellID      string `json:"spell_id"`
	CustomPrompt string `json:"custom_prompt,omitempty"`
	ModelID      string `json:"model_id,omitempty"`
}

type Result struct {
	Status Status `json:"status"`
	Output string `json:"output"`
	// Record is set only on success, after it has been appended to the
	// ledger.
	Record *models.TransformationRecord `json:"record,omitempty"`
}

type Dispatcher struct {
	spells   *spell.Store
	creds    *credential.Holder
	ledger   *history.Ledger
	provider llm.Provider
	timeout  time.Duration
	busy     atomic.Bool

	newID func() string
	now   func() time.Time
}

func NewDispatcher(spells *spell.Store, creds *credential.Holder, ledger *history.Ledger, provider llm.Provider, timeout time.Duration) *Dispatcher {
	return &Dispatcher{
		spells:   spells,
		creds:    creds,
		ledger:   ledger,
		provider: provider,
		timeout:  timeout,
		newID:    uuid.NewString,
		now:      time.Now,
	}
}

// Busy reports whether a transformation is in flight. It is advisory: the
// dispatcher does not serialize callers itself, the caller decides whether to
// block re-entry.
func (d *Dispatcher) Busy() bool {
	return d.busy.Load()
}

// Run executes one transformation. Validation problems return an error
// before any state change; everything past the guards comes back as a Result
// and leaves the dispatcher idle again.
func (d *Dispatcher) Run(ctx context.Context, req Request) (*Result, error) {
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return nil, ErrEmptyInput
	}

	sp, ok := d.resolveSpell(req.SpellID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSpell, req.SpellID)
	}

	if !d.creds.MayDispatch() {
		return &Result{Status: StatusNeedsCredential, Output: msgEnterAPIKey}, nil
	}

	d.busy.Store(true)
	defer d.busy.Store(false)

	final, err := prompt.Compose(text, sp, strings.TrimSpace(req.CustomPrompt))
	if err != nil {
		// Surfaced as visible output, not as a transport failure; no
		// network call is made.
		return &Result{Status: StatusFailed, Output: msgInstructionNeeded}, nil
	}

	model := models.ModelByID(req.ModelID)
	prof := profileFor(model.ID)

	callCtx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	raw, err := d.provider.Generate(callCtx, llm.GenerateRequest{
		Model:             model.ModelName,
		Prompt:            final,
		SystemInstruction: prof.system,
		Temperature:       prof.temperature,
		TopP:              prof.topP,
		ReasoningEffort:   prof.reasoningEffort,
		APIKeyOverride:    d.creds.Get(),
	})
	if err != nil {
		// Shaped so the substring classification below keeps matching the
		// signatures existing clients rely on.
		raw = "Error: " + err.Error()
	}
	if raw == "" {
		raw = msgNoOutput
	}

	return d.classify(ctx, raw, text, sp, model), nil
}

// classify buckets the provider's textual result. This is substring matching
// on purpose: the upstream call reports problems as text, and the match
// phrases are user-visible contract. If the provider interface ever grows
// structured error kinds, switch on those here instead.
func (d *Dispatcher) classify(ctx context.Context, raw, text string, sp models.Spell, model models.ModelConfig) *Result {
	switch {
	case strings.Contains(raw, "API_KEY missing") || strings.Contains(raw, "کلید API یافت نشد"):
		d.creds.ClearAmbient()
		return &Result{Status: StatusNeedsCredential, Output: msgEnterAPIKey}

	case strings.Contains(raw, "API Key") || strings.Contains(raw, "API_KEY"):
		return &Result{Status: StatusCredentialError, Output: raw}

	case raw == msgNoOutput || strings.HasPrefix(raw, "Error:") || strings.HasPrefix(raw, "خطا:"):
		slog.Warn("transformation failed", "spell", sp.ID, "model", model.ID, "output", raw)
		return &Result{Status: StatusFailed, Output: raw}

	default:
		rec := models.TransformationRecord{
			ID:          d.newID(),
			Original:    text,
			Transformed: raw,
			Mode:        fmt.Sprintf("%s (%s)", sp.Title, model.Name),
			Timestamp:   d.now().UnixMilli(),
		}
		d.ledger.Append(ctx, rec)
		return &Result{Status: StatusSucceeded, Output: raw, Record: &rec}
	}
}

func (d *Dispatcher) resolveSpell(id string) (models.Spell, bool) {
	if id == "" {
		return d.spells.Active(), true
	}
	return d.spells.Get(id)
}
