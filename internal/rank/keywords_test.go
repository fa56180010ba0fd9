package rank

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeywordScorer_CountsOccurrences(t *testing.T) {
	match, score := KeywordScorer{}.Score("Plantão médico em unidade hospitalar")
	assert.True(t, match)
	// plantão + médico + hospitalar, each in accented form only
	assert.Equal(t, 3, score)
}

func TestKeywordScorer_MatchingIsLiteral(t *testing.T) {
	// No diacritic folding here: "plantão" only matches the accented term.
	_, accented := KeywordScorer{Terms: []string{"plantão"}}.Score("plantão noturno")
	_, plain := KeywordScorer{Terms: []string{"plantao"}}.Score("plantão noturno")
	assert.Equal(t, 1, accented)
	assert.Equal(t, 0, plain)
}

func TestKeywordScorer_CaseInsensitive(t *testing.T) {
	match, score := KeywordScorer{Terms: []string{"médico"}}.Score("MÉDICO plantonista, médico revisor")
	assert.True(t, match)
	assert.Equal(t, 2, score)
}

func TestKeywordScorer_NoHit(t *testing.T) {
	match, score := KeywordScorer{}.Score("Aquisição de gêneros alimentícios")
	assert.False(t, match)
	assert.Zero(t, score)
}

func TestKeywordScorer_BlankTermsIgnored(t *testing.T) {
	match, score := KeywordScorer{Terms: []string{"  ", "", "médico"}}.Score("médico")
	assert.True(t, match)
	assert.Equal(t, 1, score)
}
