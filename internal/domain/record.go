package domain

import (
	"fmt"
	"strings"

	"medvagas-engine/internal/ptext"
)

// DocumentType tags which PNCP source a record came from.
type DocumentType string

const (
	DocEdital   DocumentType = "edital"
	DocAta      DocumentType = "ata"
	DocContrato DocumentType = "contrato"
)

// Keys the pipeline writes into a record after fetch. They are not part of
// the PNCP payload contract.
const (
	keyDocumentType = "tipoDocumento"
	keyRelevance    = "relevanceScore"
)

// Record is one PNCP item. The consulta endpoints return heterogeneous
// shapes, so records stay a sparse field map and readers go through the
// Pick chain instead of struct fields.
type Record map[string]any

// Pick returns the first candidate key whose value is present, non-nil and
// non-empty after trimming. "" means no candidate matched.
func (r Record) Pick(keys ...string) string {
	for _, k := range keys {
		v, ok := r[k]
		if !ok || v == nil {
			continue
		}
		s := strings.TrimSpace(ptext.Stringify(v))
		if s != "" {
			return s
		}
	}
	return ""
}

// PickNested is Pick with a one-level fallback into named sub-objects
// (orgaoEntidade / unidadeOrgao carry UF, municipality and CNPJ on several
// endpoints).
func (r Record) PickNested(nested []string, keys ...string) string {
	if v := r.Pick(keys...); v != "" {
		return v
	}
	for _, n := range nested {
		sub, ok := r[n].(map[string]any)
		if !ok {
			continue
		}
		if v := Record(sub).Pick(keys...); v != "" {
			return v
		}
	}
	return ""
}

var organNests = []string{"orgaoEntidade", "unidadeOrgao"}

// UF resolves the two-letter state code, if any.
func (r Record) UF() string {
	return r.PickNested(organNests, "uf", "siglaUf", "ufSigla")
}

// Municipality resolves the municipality name; records without one group
// under a fixed placeholder so they still render.
func (r Record) Municipality() string {
	m := r.PickNested(organNests, "municipioNome", "municipio", "nomeMunicipio")
	if m == "" {
		return "Município não informado"
	}
	return m
}

// Subject is the free-text description of the tender/record/contract, the
// sole input to relevance scoring.
func (r Record) Subject() string {
	return r.Pick("objetoCompra", "objeto", "descricaoObjeto", "objetoAta", "objetoContrato", "objetoContratacao")
}

// Status is the raw lifecycle text (open/closed/cancelled...), "" when the
// endpoint doesn't carry one.
func (r Record) Status() string {
	return r.Pick(
		"situacaoCompraNome", "situacaoCompra", "situacao",
		"status", "statusCompra", "faseCompra",
		"situacaoEdital", "situacaoContratacao", "descricaoSituacao",
	)
}

// Organ is the display name of the contracting body.
func (r Record) Organ() string {
	o := r.Pick("orgaoNome", "orgaoEntidadeRazaoSocial", "nomeRazaoSocial", "nomeOrgao")
	if o != "" {
		return o
	}
	if sub, ok := r["orgaoEntidade"].(map[string]any); ok {
		if o := Record(sub).Pick("razaoSocial", "nome"); o != "" {
			return o
		}
	}
	return "Órgão não informado"
}

// CNPJ returns the organ CNPJ as bare digits.
func (r Record) CNPJ() string {
	return ptext.OnlyDigits(r.PickNested([]string{"orgaoEntidade"}, "cnpj", "numeroInscricaoCnpj", "cnpjOrgao"))
}

// PublishedAt resolves the best-known publication/signature date field.
func (r Record) PublishedAt() string {
	return r.Pick("dataPublicacaoPncp", "dataPublicacao", "dataAssinatura", "dataInclusao", "dataVigenciaInicial", "dataInicioVigencia")
}

func (r Record) SetDocumentType(t DocumentType) { r[keyDocumentType] = string(t) }

func (r Record) DocumentType() DocumentType {
	return DocumentType(r.Pick(keyDocumentType))
}

func (r Record) SetRelevance(score int) { r[keyRelevance] = score }

func (r Record) Relevance() int {
	switch v := r[keyRelevance].(type) {
	case int:
		return v
	case float64:
		return int(v)
	}
	return 0
}

// IdentityKey is the dedup key: the explicit id when present, otherwise a
// synthetic year+number+uf+modality+subject key. Two records with the same
// key are the same procurement seen twice.
func (r Record) IdentityKey(uf, modality string) string {
	if id := r.Pick("idCompra", "id", "compraId"); id != "" {
		return id
	}
	year := r.Pick("anoCompra", "anoAta", "anoContrato", "ano")
	number := r.Pick("numeroCompra", "numeroAta", "numeroContrato", "numero")
	return fmt.Sprintf("%s-%s-%s-%s-%s", year, number, uf, modality, r.Subject())
}

// OfficialURL builds the canonical pncp.gov.br/app link for the record when
// the CNPJ + year + number triple is complete, falling back to whatever link
// the source system published (with scheme repair). "" when neither works.
func (r Record) OfficialURL() string {
	cnpj := r.CNPJ()
	if len(cnpj) == 14 {
		switch r.DocumentType() {
		case DocEdital:
			if y, n := r.Pick("anoCompra"), r.Pick("numeroCompra"); y != "" && n != "" {
				return fmt.Sprintf("https://pncp.gov.br/app/editais/%s/%s/%s", cnpj, y, n)
			}
		case DocAta:
			if y, n := r.Pick("anoAta"), r.Pick("numeroAta"); y != "" && n != "" {
				return fmt.Sprintf("https://pncp.gov.br/app/atas/%s/%s/%s", cnpj, y, n)
			}
		case DocContrato:
			if y, n := r.Pick("anoContrato"), r.Pick("numeroContrato"); y != "" && n != "" {
				return fmt.Sprintf("https://pncp.gov.br/app/contratos/%s/%s/%s", cnpj, y, n)
			}
		}
	}

	raw := r.Pick("linkSistemaOrigem", "link", "url")
	switch {
	case raw == "":
		return ""
	case strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://"):
		return raw
	case strings.HasPrefix(raw, "//"):
		return "https:" + raw
	case strings.HasPrefix(raw, "/"):
		return "https://pncp.gov.br" + raw
	default:
		return "https://" + raw
	}
}
