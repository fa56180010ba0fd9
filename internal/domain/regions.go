package domain

// State is one browsable Brazilian state.
type State struct {
	Name string `json:"nome"`
	UF   string `json:"sigla"`
}

// Regions maps each macro-region to its states, in the order the panel
// presents them.
var Regions = map[string][]State{
	"Centro-Oeste": {
		{Name: "Goiás", UF: "GO"},
		{Name: "Mato Grosso", UF: "MT"},
		{Name: "Mato Grosso do Sul", UF: "MS"},
		{Name: "Distrito Federal", UF: "DF"},
	},
	"Sul": {
		{Name: "Paraná", UF: "PR"},
		{Name: "Santa Catarina", UF: "SC"},
		{Name: "Rio Grande do Sul", UF: "RS"},
	},
	"Sudeste": {
		{Name: "São Paulo", UF: "SP"},
		{Name: "Minas Gerais", UF: "MG"},
		{Name: "Rio de Janeiro", UF: "RJ"},
		{Name: "Espírito Santo", UF: "ES"},
	},
	"Nordeste": {
		{Name: "Bahia", UF: "BA"}, {Name: "Pernambuco", UF: "PE"}, {Name: "Ceará", UF: "CE"},
		{Name: "Maranhão", UF: "MA"}, {Name: "Paraíba", UF: "PB"}, {Name: "Rio Grande do Norte", UF: "RN"},
		{Name: "Alagoas", UF: "AL"}, {Name: "Piauí", UF: "PI"}, {Name: "Sergipe", UF: "SE"},
	},
	"Norte": {
		{Name: "Amazonas", UF: "AM"}, {Name: "Pará", UF: "PA"}, {Name: "Acre", UF: "AC"},
		{Name: "Roraima", UF: "RR"}, {Name: "Rondônia", UF: "RO"}, {Name: "Amapá", UF: "AP"},
		{Name: "Tocantins", UF: "TO"},
	},
}

// AllUFs lists every state code, the iteration order of the snapshot grid.
var AllUFs = []string{
	"AC", "AL", "AP", "AM", "BA", "CE", "DF", "ES", "GO", "MA", "MT", "MS", "MG",
	"PA", "PB", "PR", "PE", "PI", "RJ", "RN", "RS", "RO", "RR", "SC", "SP", "SE", "TO",
}

// ValidUF reports whether uf is a known state code.
func ValidUF(uf string) bool {
	for _, u := range AllUFs {
		if u == uf {
			return true
		}
	}
	return false
}
