package search

import (
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"medvagas-engine/internal/domain"
)

// Grouped is the terminal output of one aggregation: matched records keyed
// by municipality, with CityNames in pt-BR collation order.
type Grouped struct {
	Cities    map[string][]domain.Record `json:"cities"`
	CityNames []string                   `json:"cityNames"`
	Matched   int                        `json:"matched"`
	Truncated bool                       `json:"truncated"`
}

func newGrouped() *Grouped {
	return &Grouped{Cities: map[string][]domain.Record{}}
}

func (g *Grouped) add(r domain.Record) {
	city := r.Municipality()
	g.Cities[city] = append(g.Cities[city], r)
	g.Matched++
}

// sortCities rebuilds CityNames. Byte order would put "Águas Lindas" after
// "Zortéa"; the pt-BR collator keeps the drill-down list sane.
func (g *Grouped) sortCities() {
	names := make([]string, 0, len(g.Cities))
	for city := range g.Cities {
		names = append(names, city)
	}
	collate.New(language.BrazilianPortuguese).SortStrings(names)
	g.CityNames = names
}
