package summarizer

import (
	"strings"
)

// parseActionItems extracts bullet lines from model output. A line
// counts as an action item when, after trimming, it starts with "-" or
// the bullet character. The marker and surrounding whitespace are
// stripped; anything else on the line is preserved verbatim.
func parseActionItems(output string) []string {
	var items []string
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		var item string
		switch {
		case strings.HasPrefix(line, "-"):
			item = strings.TrimSpace(strings.TrimPrefix(line, "-"))
		case strings.HasPrefix(line, "•"):
			item = strings.TrimSpace(strings.TrimPrefix(line, "•"))
		default:
			continue
		}
		if item != "" {
			items = append(items, item)
		}
	}
	return items
}

// dedupeActionItems removes duplicates by case-insensitive comparison
// of the trimmed item text. The first occurrence wins and original
// casing is preserved; order follows first appearance.
func dedupeActionItems(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	deduped := make([]string, 0, len(items))
	for _, item := range items {
		key := strings.ToLower(strings.TrimSpace(item))
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		deduped = append(deduped, item)
	}
	return deduped
}
