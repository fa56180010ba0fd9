package search

import (
	"strings"

	"medvagas-engine/internal/domain"
	"medvagas-engine/internal/ptext"
	"medvagas-engine/internal/rank"
)

// Prefixes of lifecycle phases that mean the opportunity is no longer
// actionable (encerrada, finalizada, cancelada, revogada, anulada,
// fracassada, deserta, suspensa, concluída, homologada, adjudicada).
var closedStatusPrefixes = []string{
	"encerr", "finaliz", "cancel", "revog", "anul",
	"fracass", "desert", "suspens", "conclu", "homolog", "adjud",
}

const (
	reasonLocation = "location"
	reasonNoText   = "no_subject"
	reasonNoMatch  = "no_match"
	reasonClosed   = "closed"
)

// shouldKeep runs the filter chain for one record: UF, subject presence,
// relevance, open status — in that order. It returns the relevance score so
// the caller doesn't score twice.
func shouldKeep(r domain.Record, uf string, scorer rank.Scorer) (score int, keep bool, reason string) {
	// Editais arrive pre-filtered by the uf param; atas/contratos don't.
	// A record with a resolvable UF that differs is someone else's state.
	if found := r.UF(); found != "" && found != uf {
		return 0, false, reasonLocation
	}

	subject := r.Subject()
	if subject == "" {
		return 0, false, reasonNoText
	}

	match, score := scorer.Score(subject)
	if !match {
		return score, false, reasonNoMatch
	}

	if !IsOpen(r) {
		return score, false, reasonClosed
	}

	return score, true, ""
}

// IsOpen reports whether the record's lifecycle text still reads as an open
// opportunity. Records without any status field default to open.
func IsOpen(r domain.Record) bool {
	st := ptext.Normalize(r.Status())
	if st == "" {
		return true
	}
	for _, p := range closedStatusPrefixes {
		if strings.Contains(st, p) {
			return false
		}
	}
	return true
}
