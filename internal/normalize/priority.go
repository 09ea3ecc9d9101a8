package normalize

import (
	"github.com/vbastos/deskparse/pkg/models"
)

// Priority defaults applied when a raw value matches no tier keyword.
// Centralized here so the fallback is documented and testable instead of
// being encoded at each call site.
const (
	// DefaultIncidentPriority is assigned to incidents whose raw priority
	// is empty or unrecognized.
	DefaultIncidentPriority = models.PriorityP3

	// DefaultRequestPriority is assigned to requests whose raw priority is
	// empty or unrecognized.
	DefaultRequestPriority = models.PriorityMedium
)

// MatchIncidentPriority classifies a raw priority string into P1..P4 and
// reports whether a tier keyword actually matched. Matching is substring
// containment over the folded value because source strings vary widely
// ("1 - Critical", "P1", "Alta", "2 - Alto").
//
// The bare digit keywords intentionally match anywhere in the string,
// mirroring the dashboards this replaces; see the matching-strictness note
// in DESIGN.md.
func MatchIncidentPriority(raw string) (models.Priority, bool) {
	s := fold(raw)
	if s == "" {
		return DefaultIncidentPriority, false
	}

	switch {
	case containsAny(s, "p1", "critic", "urgent", "1"):
		return models.PriorityP1, true
	case containsAny(s, "p2", "alta", "alto", "high", "2"):
		return models.PriorityP2, true
	case containsAny(s, "p3", "moderado", "moderate", "medi", "3"):
		return models.PriorityP3, true
	case containsAny(s, "p4", "baixa", "baixo", "low", "planejamento", "planning", "4", "5"):
		return models.PriorityP4, true
	default:
		return DefaultIncidentPriority, false
	}
}

// ClassifyIncidentPriority is the total form of MatchIncidentPriority:
// unrecognized input resolves to the default tier, never an error.
func ClassifyIncidentPriority(raw string) models.Priority {
	p, _ := MatchIncidentPriority(raw)
	return p
}

// MatchRequestPriority classifies a raw priority string into
// HIGH/MEDIUM/LOW and reports whether a keyword matched.
func MatchRequestPriority(raw string) (models.Priority, bool) {
	s := fold(raw)
	if s == "" {
		return DefaultRequestPriority, false
	}

	switch {
	case containsAny(s, "critic", "urgent", "alta", "alto", "high", "1", "2"):
		return models.PriorityHigh, true
	case containsAny(s, "medi", "moderado", "moderate", "3"):
		return models.PriorityMedium, true
	case containsAny(s, "baixa", "baixo", "low", "4", "5"):
		return models.PriorityLow, true
	default:
		return DefaultRequestPriority, false
	}
}

// ClassifyRequestPriority is the total form of MatchRequestPriority.
func ClassifyRequestPriority(raw string) models.Priority {
	p, _ := MatchRequestPriority(raw)
	return p
}

// MatchPriority dispatches on the record kind.
func MatchPriority(raw string, kind models.RecordKind) (models.Priority, bool) {
	if kind == models.KindRequests {
		return MatchRequestPriority(raw)
	}
	return MatchIncidentPriority(raw)
}
