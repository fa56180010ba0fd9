package pncp

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestBodyDetail_PrefersMessageFields(t *testing.T) {
	assert.Equal(t, "Data Inicial maior que a Data Final",
		bodyDetail([]byte(`{"message":"Data Inicial maior que a Data Final"}`)))
	assert.Equal(t, "parâmetro inválido", bodyDetail([]byte(`{"erro":"parâmetro inválido"}`)))
	// non-string message values fall through to the excerpt
	assert.Equal(t, `{"message": 42}`, bodyDetail([]byte(`{"message": 42}`)))
}

func TestBodyDetail_ExcerptCollapsesWhitespace(t *testing.T) {
	assert.Equal(t, "serviço indisponível", bodyDetail([]byte("serviço \n\n indisponível")))
}

func TestBodyDetail_ExcerptEndsOnRuneBoundary(t *testing.T) {
	// long accented text whose 200-byte mark lands inside a rune
	long := strings.Repeat("requisição inválida ", 30)
	detail := bodyDetail([]byte(long))

	assert.LessOrEqual(t, len(detail), 200)
	assert.True(t, utf8.ValidString(detail), "excerpt must not end mid-rune")

	// the byte at offset 200 is the tail of a 2-byte rune here
	detail = bodyDetail([]byte("a" + strings.Repeat("ç", 150)))
	assert.True(t, utf8.ValidString(detail))
	assert.Equal(t, 199, len(detail))
}
