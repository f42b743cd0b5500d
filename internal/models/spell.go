package models

// Spell is a named, reusable transformation template. The JSON shape matches
// the legacy web client's localStorage format so an exported spell set
// round-trips.
type Spell struct {
	ID             string `json:"id"`
	Title          string `json:"title"`
	Description    string `json:"description"`
	IconName       string `json:"iconName"`
	PromptTemplate string `json:"promptTemplate"`
	IsCustom       bool   `json:"isCustom,omitempty"`
}

// FreeFormSpellID is the reserved id of the spell whose instruction is
// supplied by the user at invocation time via the {{prompt}} placeholder.
const FreeFormSpellID = "CUSTOM"

// Built-in spell ids.
const (
	SpellSummarize   = "SUMMARIZE"
	SpellFormalize   = "FORMALIZE"
	SpellGrammar     = "GRAMMAR"
	SpellTranslateFA = "TRANSLATE_FA"
	SpellTranslateEN = "TRANSLATE_EN"
	SpellPoetry      = "POETRY"
)

// DefaultIconName is what unknown icon names resolve to.
const DefaultIconName = "Sparkles"

var iconRegistry = map[string]bool{
	"FileText":      true,
	"Languages":     true,
	"ScrollText":    true,
	"PenTool":       true,
	"Feather":       true,
	"Wand2":         true,
	"Zap":           true,
	"BookOpen":      true,
	"Ghost":         true,
	"MessageCircle": true,
	"Briefcase":     true,
	"Sparkles":      true,
}

// ResolveIcon maps an icon name into the fixed registry, falling back to the
// default icon for anything the UI would not recognize.
func ResolveIcon(name string) string {
	if iconRegistry[name] {
		return name
	}
	return DefaultIconName
}

// IconNames lists the registry in no particular order.
func IconNames() []string {
	names := make([]string, 0, len(iconRegistry))
	for n := range iconRegistry {
		names = append(names, n)
	}
	return names
}
