package analysis

import "strings"

// Match returns the vocabulary skills and titles found in text as literal,
// case-insensitive substrings. Order follows the vocabularies, not the text.
func Match(text string) ([]string, []string) {
	lower := strings.ToLower(text)
	return contained(lower, skills[:]), contained(lower, titles[:])
}

func contained(text string, vocabulary []string) []string {
	found := make([]string, 0, len(vocabulary))
	for _, term := range vocabulary {
		if strings.Contains(text, term) {
			found = append(found, term)
		}
	}
	return found
}
