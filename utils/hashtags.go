package utils

import "strings"

// ExtractHashtags returns the distinct hashtags in content, lowercased and
// without the leading '#', in order of first appearance.
func ExtractHashtags(content string) []string {
	var tags []string
	seen := make(map[string]bool)

	for _, word := range strings.Fields(content) {
		if !strings.HasPrefix(word, "#") || len(word) < 2 {
			continue
		}
		tag := strings.ToLower(strings.TrimLeft(word, "#"))
		// Strip trailing punctuation like "#golang," or "#golang!"
		tag = strings.TrimRightFunc(tag, func(r rune) bool {
			return !isTagRune(r)
		})
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		tags = append(tags, tag)
	}
	return tags
}

func isTagRune(r rune) bool {
	return r == '_' ||
		(r >= '0' && r <= '9') ||
		(r >= 'a' && r <= 'z') ||
		(r >= 'A' && r <= 'Z')
}
