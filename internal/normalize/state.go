package normalize

import (
	"strings"

	"github.com/vbastos/deskparse/pkg/models"
)

// DefaultState is assigned when a raw lifecycle value matches no known
// keyword set and the caller opted out of strict matching.
const DefaultState = models.StateOpen

// stateKeywords pairs each lifecycle state with its keyword set, most
// specific first. Order matters: "closed complete" must be tested before
// bare "closed" or every terminal state would collapse into one, and
// "cancel" must come before "closed" so "closed skipped - cancelled"
// variants land on the skipped state.
var stateKeywords = []struct {
	state    models.State
	keywords []string
}{
	{models.StateClosedComplete, []string{"closed complete", "resolvido", "resolved", "encerrado com exito", "concluido"}},
	{models.StateClosedIncomplete, []string{"closed incomplete", "nao resolvido", "unresolved", "encerrado sem exito"}},
	{models.StateClosedSkipped, []string{"closed skipped", "cancel", "skipped", "ignorado"}},
	{models.StateClosedComplete, []string{"closed", "fechado", "encerrado"}},
	{models.StateOnHold, []string{"on hold", "pending", "pendente", "aguardando", "em espera"}},
	{models.StateInProgress, []string{"in progress", "work in progress", "em andamento", "em atendimento", "active"}},
	{models.StateAssigned, []string{"assigned", "atribuido", "designado"}},
	{models.StateOpen, []string{"open", "new", "aberto", "novo", "registrado", "registered"}},
}

// MatchState classifies a raw lifecycle value and reports whether any
// keyword matched. Matching is case- and accent-insensitive substring
// containment; underscores are treated as spaces so already-normalized
// values round-trip unchanged.
func MatchState(raw string) (models.State, bool) {
	s := strings.ReplaceAll(fold(raw), "_", " ")
	if s == "" {
		return DefaultState, false
	}

	for _, entry := range stateKeywords {
		if containsAny(s, entry.keywords...) {
			return entry.state, true
		}
	}

	return DefaultState, false
}

// ClassifyState is the total form of MatchState: unrecognized input
// resolves to DefaultState.
func ClassifyState(raw string) models.State {
	state, _ := MatchState(raw)
	return state
}
