package domain

import "strings"

// FieldNameFromLabel derives the machine key for a field from its label:
// lowercase, every run of non-alphanumeric characters collapsed to a single
// underscore, leading and trailing underscores stripped. "Budget (USD)"
// becomes "budget_usd". The name freezes at field creation; later label edits
// never re-derive it, so stored record keys stay valid.
func FieldNameFromLabel(label string) string {
	lower := strings.ToLower(strings.TrimSpace(label))

	var b strings.Builder
	b.Grow(len(lower))
	pendingSep := false
	for _, r := range lower {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingSep && b.Len() > 0 {
				b.WriteByte('_')
			}
			pendingSep = false
			b.WriteRune(r)
			continue
		}
		pendingSep = true
	}
	return b.String()
}
