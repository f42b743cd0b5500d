package history

import (
	"fmt"
	"strings"

	"github.com/kimiagar/backend/internal/models"
)

// Export renders records into a single human-readable text blob for bulk
// download, in the given order. The layout (Persian section labels, dashed
// delimiters) matches the files users already have from earlier exports,
// except the header timestamp: earlier exports rendered it in the fa-IR
// locale (Persian calendar and digits), here it is plain Gregorian. The blob
// is not meant to be re-parsed.
func Export(records []models.TransformationRecord) string {
	parts := make([]string, 0, len(records))
	for _, rec := range records {
		parts = append(parts, fmt.Sprintf(
			"--- تاریخ: %s ---\n"+
				"نوع عملیات: %s\n\n"+
				"[ورودی]:\n%s\n\n"+
				"[خروجی]:\n%s\n"+
				"----------------------------------------\n",
			rec.Time().Format("2006/01/02 15:04:05"),
			rec.Mode,
			rec.Original,
			rec.Transformed,
		))
	}
	return strings.Join(parts, "\n")
}
