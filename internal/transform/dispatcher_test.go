package transform

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kimiagar/backend/internal/credential"
	"github.com/kimiagar/backend/internal/history"
	"github.com/kimiagar/backend/internal/llm"
	"github.com/kimiagar/backend/internal/models"
	"github.com/kimiagar/backend/internal/spell"
	"github.com/kimiagar/backend/internal/storage"
)

type fakeProvider struct {
	reply   string
	err     error
	lastReq llm.GenerateRequest
	calls   int
}

func (f *fakeProvider) Generate(_ context.Context, req llm.GenerateRequest) (string, error) {
	f.calls++
	f.lastReq = req
	return f.reply, f.err
}

type fixture struct {
	dispatcher *Dispatcher
	provider   *fakeProvider
	ledger     *history.Ledger
	creds      *credential.Holder
}

func newFixture(t *testing.T, provider *fakeProvider, withKey bool) *fixture {
	t.Helper()
	ctx := context.Background()
	kv := storage.NewMemoryKV()

	creds := credential.NewHolder(ctx, kv, func() bool { return false }, false)
	if withKey {
		creds.Set(ctx, "user-key")
	}

	ledger := history.NewLedger(ctx, kv)
	spells := spell.NewStore(ctx, kv)
	d := NewDispatcher(spells, creds, ledger, provider, 5*time.Second)
	return &fixture{dispatcher: d, provider: provider, ledger: ledger, creds: creds}
}

func TestRunRejectsEmptyInput(t *testing.T) {
	f := newFixture(t, &fakeProvider{}, true)

	_, err := f.dispatcher.Run(context.Background(), Request{Text: "   \n "})
	assert.ErrorIs(t, err, ErrEmptyInput)
	assert.Zero(t, f.provider.calls)
	assert.Zero(t, f.ledger.Len())
}

func TestRunRejectsUnknownSpell(t *testing.T) {
	f := newFixture(t, &fakeProvider{}, true)

	_, err := f.dispatcher.Run(context.Background(), Request{Text: "hi", SpellID: "NOPE"})
	assert.ErrorIs(t, err, ErrUnknownSpell)
	assert.Zero(t, f.provider.calls)
}

func TestRunShortCircuitsWithoutCredential(t *testing.T) {
	f := newFixture(t, &fakeProvider{}, false)

	res, err := f.dispatcher.Run(context.Background(), Request{Text: "hi", SpellID: models.SpellSummarize})
	require.NoError(t, err)
	assert.Equal(t, StatusNeedsCredential, res.Status)
	assert.Zero(t, f.provider.calls, "no network call without a credential")
	assert.Zero(t, f.ledger.Len())
}

func TestRunFreeFormWithoutInstruction(t *testing.T) {
	f := newFixture(t, &fakeProvider{}, true)

	res, err := f.dispatcher.Run(context.Background(), Request{Text: "hi", SpellID: models.FreeFormSpellID})
	require.NoError(t, err)
	assert.Equal(t, StatusFailed, res.Status)
	assert.Equal(t, "Please provide a custom prompt.", res.Output)
	assert.Zero(t, f.provider.calls, "validation failures never reach the provider")
}

func TestRunSuccessWritesHistory(t *testing.T) {
	provider := &fakeProvider{reply: "متن خلاصه‌شده"}
	f := newFixture(t, provider, true)

	res, err := f.dispatcher.Run(context.Background(), Request{
		Text:    "a long text",
		SpellID: models.SpellSummarize,
		ModelID: models.ModelGemini,
	})
	require.NoError(t, err)
	assert.Equal(t, StatusSucceeded, res.Status)
	assert.Equal(t, "متن خلاصه‌شده", res.Output)

	require.Equal(t, 1, f.ledger.Len())
	rec := f.ledger.All()[0]
	assert.Equal(t, "a long text", rec.Original)
	assert.Equal(t, "متن خلاصه‌شده", rec.Transformed)
	assert.Equal(t, "خلاصه‌سازی (Gemini)", rec.Mode)
	assert.NotEmpty(t, rec.ID)
}

func TestRunComposesPromptAndPassesOverride(t *testing.T) {
	provider := &fakeProvider{reply: "ok"}
	f := newFixture(t, provider, true)

	_, err := f.dispatcher.Run(context.Background(), Request{
		Text:    "hello",
		SpellID: models.SpellTranslateEN,
	})
	require.NoError(t, err)
	assert.Contains(t, provider.lastReq.Prompt, "hello")
	assert.Equal(t, "user-key", provider.lastReq.APIKeyOverride)
	assert.Equal(t, "gemini-2.5-flash", provider.lastReq.Model)
}

func TestRunProfiles(t *testing.T) {
	tests := []struct {
		modelID     string
		wantTemp    float32
		wantTopP    float32
		wantEffort  string
		wantPersona bool
	}{
		{modelID: models.ModelGemini, wantTemp: 0.7},
		{modelID: models.ModelCopilot, wantTemp: 0.9, wantTopP: 0.95, wantPersona: true},
		{modelID: models.ModelDeepSeek, wantEffort: "medium"},
	}

	for _, tt := range tests {
		t.Run(tt.modelID, func(t *testing.T) {
			provider := &fakeProvider{reply: "ok"}
			f := newFixture(t, provider, true)

			_, err := f.dispatcher.Run(context.Background(), Request{
				Text:    "hi",
				SpellID: models.SpellSummarize,
				ModelID: tt.modelID,
			})
			require.NoError(t, err)

			req := provider.lastReq
			assert.Equal(t, tt.wantTemp, req.Temperature)
			assert.Equal(t, tt.wantTopP, req.TopP)
			assert.Equal(t, tt.wantEffort, req.ReasoningEffort)
			assert.NotEmpty(t, req.SystemInstruction)
			if tt.wantPersona {
				assert.Contains(t, req.SystemInstruction, "creative co-pilot")
			} else {
				assert.NotContains(t, req.SystemInstruction, "creative co-pilot")
			}
		})
	}
}

func TestRunClassifiesMissingKey(t *testing.T) {
	provider := &fakeProvider{err: llm.ErrMissingAPIKey}
	f := newFixture(t, provider, true)

	res, err := f.dispatcher.Run(context.Background(), Request{Text: "hi", SpellID: models.SpellSummarize})
	require.NoError(t, err)
	assert.Equal(t, StatusNeedsCredential, res.Status)
	assert.Zero(t, f.ledger.Len())
	assert.False(t, f.creds.HasAmbient(), "a missing-key report clears the ambient flag")
}

func TestRunClassifiesCredentialError(t *testing.T) {
	provider := &fakeProvider{err: errors.New("invalid API Key provided")}
	f := newFixture(t, provider, true)

	res, err := f.dispatcher.Run(context.Background(), Request{Text: "hi", SpellID: models.SpellSummarize})
	require.NoError(t, err)
	assert.Equal(t, StatusCredentialError, res.Status)
	assert.Contains(t, res.Output, "invalid API Key")
	assert.Zero(t, f.ledger.Len())
}

func TestRunClassifiesGenericFailure(t *testing.T) {
	provider := &fakeProvider{err: errors.New("quota exceeded")}
	f := newFixture(t, provider, true)

	res, err := f.dispatcher.Run(context.Background(), Request{Text: "hi", SpellID: models.SpellSummarize})
	require.NoError(t, err)
	assert.Equal(t, StatusFailed, res.Status)
	assert.Equal(t, "Error: quota exceeded", res.Output)
	assert.Zero(t, f.ledger.Len(), "failures are never recorded")
}

func TestRunClassifiesEmptyReply(t *testing.T) {
	provider := &fakeProvider{reply: ""}
	f := newFixture(t, provider, true)

	res, err := f.dispatcher.Run(context.Background(), Request{Text: "hi", SpellID: models.SpellSummarize})
	require.NoError(t, err)
	assert.Equal(t, StatusFailed, res.Status)
	assert.Equal(t, "No output generated.", res.Output)
	assert.Zero(t, f.ledger.Len())
}

func TestDispatcherReturnsToIdle(t *testing.T) {
	f := newFixture(t, &fakeProvider{reply: "ok"}, true)

	_, err := f.dispatcher.Run(context.Background(), Request{Text: "hi", SpellID: models.SpellSummarize})
	require.NoError(t, err)
	assert.False(t, f.dispatcher.Busy())
}
