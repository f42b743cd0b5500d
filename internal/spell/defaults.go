package spell

import "github.com/kimiagar/backend/internal/models"

// DefaultSpells returns the built-in template set seeded on first run or when
// the persisted set fails to parse.
func DefaultSpells() []models.Spell {
	return []models.Spell{
		{
			ID:             models.SpellSummarize,
			Title:          "خلاصه‌سازی",
			Description:    "متن را کوتاه و چکیده کنید",
			IconName:       "FileText",
			PromptTemplate: "Summarize the following text in Persian (Farsi). Keep the summary concise but informative:\n\n{{text}}",
		},
		{
			ID:             models.SpellFormalize,
			Title:          "رسمی‌سازی",
			Description:    "تبدیل متن به زبان اداری و رسمی",
			IconName:       "ScrollText",
			PromptTemplate: "Rewrite the following Persian text to be formal, polite, and professional (Official/Edari tone):\n\n{{text}}",
		},
		{
			ID:             models.SpellGrammar,
			Title:          "ویراستاری",
			Description:    "اصلاح غلط‌های املایی و نگارشی",
			IconName:       "PenTool",
			PromptTemplate: "Correct any grammatical errors and improve the fluency of the following Persian text without changing its meaning:\n\n{{text}}",
		},
		{
			ID:             models.SpellTranslateFA,
			Title:          "ترجمه به فارسی",
			Description:    "متن انگلیسی را به فارسی برگردانید",
			IconName:       "Languages",
			PromptTemplate: "Translate the following text to Persian (Farsi):\n\n{{text}}",
		},
		{
			ID:             models.SpellTranslateEN,
			Title:          "ترجمه به انگلیسی",
			Description:    "متن فارسی را به انگلیسی برگردانید",
			IconName:       "Languages",
			PromptTemplate: "Translate the following Persian text to English:\n\n{{text}}",
		},
		{
			ID:             models.SpellPoetry,
			Title:          "شعرگونه",
			Description:    "تبدیل مفهوم متن به شعر",
			IconName:       "Feather",
			PromptTemplate: "Turn the concepts in the following text into a short Persian poem (Sher-e-Farsi) in the style of classical poets if suitable, or modern poetry:\n\n{{text}}",
		},
		{
			ID:             models.FreeFormSpellID,
			Title:          "جادوی آزاد",
			Description:    "دستور دلخواه خود را بنویسید",
			IconName:       "Wand2",
			PromptTemplate: "{{prompt}}:\n\n{{text}}",
		},
	}
}
