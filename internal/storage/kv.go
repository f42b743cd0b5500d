package storage

import "context"

// KV is the durable key-value port the core components persist through.
// Values are opaque strings (the stores serialize their full set as JSON on
// every mutation).
type KV interface {
	// Get returns the stored value and whether the key exists. A missing key
	// is not an error.
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, keys ...string) error
}

// Storage keys. These match the legacy web client's localStorage keys so
// migrated data loads unchanged.
const (
	KeySpells     = "alchemy_spells"
	KeyHistory    = "alchemy_history"
	KeyCredential = "user_gemini_api_key"

	// ExportKeyPrefix namespaces parked history export artifacts.
	ExportKeyPrefix = "alchemy_export:"
)
