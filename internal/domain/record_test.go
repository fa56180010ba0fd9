package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecord_PickSkipsEmptyAndNil(t *testing.T) {
	r := Record{"a": "", "b": nil, "c": "x"}
	assert.Equal(t, "x", r.Pick("a", "b", "c"))
	assert.Equal(t, "", r.Pick("a", "b"))
	assert.Equal(t, "", r.Pick("missing"))

	// whitespace-only counts as absent
	r = Record{"a": "   ", "b": "y"}
	assert.Equal(t, "y", r.Pick("a", "b"))

	// numbers stringify without decimal noise
	r = Record{"anoCompra": float64(2025)}
	assert.Equal(t, "2025", r.Pick("anoCompra"))
}

func TestRecord_NestedFallback(t *testing.T) {
	r := Record{
		"orgaoEntidade": map[string]any{"uf": "GO"},
	}
	assert.Equal(t, "GO", r.UF())

	// top-level wins over nested
	r["uf"] = "SP"
	assert.Equal(t, "SP", r.UF())

	r = Record{"unidadeOrgao": map[string]any{"municipioNome": "Anápolis"}}
	assert.Equal(t, "Anápolis", r.Municipality())
}

func TestRecord_MunicipalityPlaceholder(t *testing.T) {
	assert.Equal(t, "Município não informado", Record{}.Municipality())
}

func TestRecord_OrganFallsBackToRazaoSocial(t *testing.T) {
	r := Record{"orgaoEntidade": map[string]any{"razaoSocial": "Prefeitura de Goiânia"}}
	assert.Equal(t, "Prefeitura de Goiânia", r.Organ())
	assert.Equal(t, "Órgão não informado", Record{}.Organ())
}

func TestRecord_CNPJDigitsOnly(t *testing.T) {
	r := Record{"orgaoEntidade": map[string]any{"cnpj": "12.345.678/0001-90"}}
	assert.Equal(t, "12345678000190", r.CNPJ())
}

func TestRecord_IdentityKey(t *testing.T) {
	r := Record{"idCompra": "abc-123", "anoCompra": "2025"}
	assert.Equal(t, "abc-123", r.IdentityKey("GO", "6"))

	r = Record{
		"anoCompra":    float64(2025),
		"numeroCompra": "77",
		"objetoCompra": "credenciamento de médicos",
	}
	key := r.IdentityKey("GO", "6")
	assert.Equal(t, "2025-77-GO-6-credenciamento de médicos", key)

	// same record seen under another modality is another key
	assert.NotEqual(t, key, r.IdentityKey("GO", "8"))
}

func TestRecord_DocumentTypeAndRelevance(t *testing.T) {
	r := Record{}
	r.SetDocumentType(DocAta)
	assert.Equal(t, DocAta, r.DocumentType())

	r.SetRelevance(7)
	assert.Equal(t, 7, r.Relevance())

	// a JSON round-trip turns the score into a float64
	r["relevanceScore"] = float64(7)
	assert.Equal(t, 7, r.Relevance())

	assert.Zero(t, Record{}.Relevance())
}

func TestRecord_OfficialURLCanonical(t *testing.T) {
	r := Record{
		"orgaoEntidade": map[string]any{"cnpj": "12.345.678/0001-90"},
		"anoCompra":     float64(2025),
		"numeroCompra":  "42",
	}
	r.SetDocumentType(DocEdital)
	assert.Equal(t, "https://pncp.gov.br/app/editais/12345678000190/2025/42", r.OfficialURL())

	r.SetDocumentType(DocContrato)
	r["anoContrato"] = "2025"
	r["numeroContrato"] = "9"
	assert.Equal(t, "https://pncp.gov.br/app/contratos/12345678000190/2025/9", r.OfficialURL())
}

func TestRecord_OfficialURLSchemeRepair(t *testing.T) {
	assert.Equal(t, "https://example.gov.br/l", Record{"linkSistemaOrigem": "https://example.gov.br/l"}.OfficialURL())
	assert.Equal(t, "https://example.gov.br/l", Record{"linkSistemaOrigem": "//example.gov.br/l"}.OfficialURL())
	assert.Equal(t, "https://pncp.gov.br/compras/1", Record{"linkSistemaOrigem": "/compras/1"}.OfficialURL())
	assert.Equal(t, "https://example.gov.br/l", Record{"linkSistemaOrigem": "example.gov.br/l"}.OfficialURL())
	assert.Equal(t, "", Record{}.OfficialURL())
}

func TestValidUF(t *testing.T) {
	assert.True(t, ValidUF("GO"))
	assert.True(t, ValidUF("DF"))
	assert.False(t, ValidUF("XX"))
	assert.False(t, ValidUF(""))
	assert.Len(t, AllUFs, 27)
}
