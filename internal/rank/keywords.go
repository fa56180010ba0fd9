package rank

import "strings"

// DefaultKeywords is the permissive medical vocabulary for the interactive
// flow. Accented and plain spellings are both listed on purpose: this
// scorer matches against lowercased text without stripping diacritics, so
// both forms occur in the wild.
var DefaultKeywords = []string{
	"médico", "medico", "medicina", "plantão", "plantao",
	"clínico", "clinico", "psiquiatra", "pediatra", "saúde", "hospitalar",
}

// KeywordScorer counts keyword occurrences. Any hit is a match; the count
// is the sort key on the panel. It is deliberately looser than DoctorScorer
// and the two must not be conflated.
type KeywordScorer struct {
	Terms []string // DefaultKeywords when empty
}

func (s KeywordScorer) Score(text string) (bool, int) {
	terms := s.Terms
	if len(terms) == 0 {
		terms = DefaultKeywords
	}

	t := strings.ToLower(text)
	score := 0
	for _, kw := range terms {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw == "" {
			continue
		}
		score += strings.Count(t, kw)
	}
	return score > 0, score
}
