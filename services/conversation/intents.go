package conversation

import "strings"

var (
	affirmatives = toSet("oui", "yes", "ok", "okay", "d'accord", "dac", "vas y", "vas-y", "c'est bon", "parfait", "go", "montre", "montre-moi")
	negatives    = toSet("non", "no", "bof", "nope", "pas vraiment")
	resets       = toSet("reset", "recommencer", "annuler", "restart", "cancel")
)

func toSet(words ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

// normalize lowercases, trims and drops trailing punctuation so "Oui !" reads as "oui".
func normalize(text string) string {
	s := strings.ToLower(strings.TrimSpace(text))
	s = strings.ReplaceAll(s, "’", "'")
	return strings.TrimRight(s, "!.? ")
}

func isAffirmative(msg string) bool {
	_, ok := affirmatives[msg]
	return ok
}

func isNegative(msg string) bool {
	_, ok := negatives[msg]
	return ok
}

func isReset(msg string) bool {
	_, ok := resets[msg]
	return ok
}
