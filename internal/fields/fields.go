// Package fields maps arbitrary spreadsheet headers to the canonical
// field set. Source systems export the same data under different header
// vocabularies (English and Portuguese, spaced and snake_cased), so every
// canonical field carries an ordered list of acceptable spellings.
package fields

import (
	"strings"

	"github.com/vbastos/deskparse/pkg/models"
)

// Field names a canonical column of the ingested record set.
type Field string

const (
	FieldNumber           Field = "number"
	FieldOpened           Field = "opened"
	FieldShortDescription Field = "short_description"
	FieldDescription      Field = "description"
	FieldPriority         Field = "priority"
	FieldState            Field = "state"
	FieldAssignmentGroup  Field = "assignment_group"
	FieldAssignedTo       Field = "assigned_to"
	FieldRequestedFor     Field = "requested_for"
	FieldUpdated          Field = "updated"
	FieldNotes            Field = "notes"
)

// FieldAll addresses a whole row in validation errors, used when a row is
// structurally empty and no single column can be blamed.
const FieldAll = "all"

// Aliases lists the acceptable header spellings per canonical field, most
// specific first. Lookup tries exact matches before case-insensitive ones,
// in declared order, so specific aliases win over generic fallbacks.
//
// No spelling may appear under two fields; TestAliasesDoNotOverlap pins
// that invariant.
var Aliases = map[Field][]string{
	FieldNumber: {
		"Number", "Número", "Numero", "Chamado", "Ticket", "number",
	},
	FieldOpened: {
		"Opened", "Opened at", "Aberto", "Abertura", "Data de abertura",
		"Created", "Criado", "opened_at", "sys_created_on",
	},
	FieldShortDescription: {
		"Short description", "Descrição resumida", "Descricao resumida",
		"Resumo", "short_description",
	},
	FieldDescription: {
		"Description", "Descrição", "Descricao", "description",
	},
	FieldPriority: {
		"Priority", "Prioridade", "priority",
	},
	FieldState: {
		"State", "Estado", "Status", "Situação", "Situacao", "state",
	},
	FieldAssignmentGroup: {
		"Assignment group", "Grupo de atribuição", "Grupo de atribuicao",
		"Grupo", "assignment_group",
	},
	FieldAssignedTo: {
		"Assigned to", "Atribuído a", "Atribuido a", "Responsável",
		"Responsavel", "assigned_to",
	},
	FieldRequestedFor: {
		"Requested for", "Solicitado para", "Solicitante", "requested_for",
	},
	FieldUpdated: {
		"Updated", "Last updated", "Atualizado", "Última atualização",
		"Ultima atualizacao", "sys_updated_on",
	},
	FieldNotes: {
		"Work notes", "Notas de trabalho", "Anotações", "Anotacoes",
		"Additional comments", "Comentários adicionais", "work_notes",
	},
}

// requiredByKind lists the fields whose absence drops a row (or, when the
// column is missing from the header entirely, aborts the run).
var requiredByKind = map[models.RecordKind][]Field{
	models.KindIncidents: {
		FieldNumber, FieldOpened, FieldShortDescription, FieldState,
	},
	models.KindRequests: {
		FieldNumber, FieldOpened, FieldShortDescription, FieldState,
		FieldRequestedFor,
	},
}

// Required returns the required field set for a record kind.
func Required(kind models.RecordKind) []Field {
	return requiredByKind[kind]
}

// All lists every canonical field in a stable order.
func All() []Field {
	return []Field{
		FieldNumber, FieldOpened, FieldShortDescription, FieldDescription,
		FieldPriority, FieldState, FieldAssignmentGroup, FieldAssignedTo,
		FieldRequestedFor, FieldUpdated, FieldNotes,
	}
}

// Resolve returns the first non-blank value for the canonical field in a
// raw row. It tries an exact key match against each alias in declared
// order, then a case-insensitive pass, and returns "" when no alias
// matches or every match is blank. It never fails.
func Resolve(row map[string]string, field Field) string {
	aliases := Aliases[field]

	for _, alias := range aliases {
		if value, ok := row[alias]; ok {
			if trimmed := strings.TrimSpace(value); trimmed != "" {
				return trimmed
			}
		}
	}

	for _, alias := range aliases {
		for key, value := range row {
			if strings.EqualFold(key, alias) {
				if trimmed := strings.TrimSpace(value); trimmed != "" {
					return trimmed
				}
			}
		}
	}

	return ""
}

// HasColumn reports whether any header matches an alias of the canonical
// field, case-insensitively. The orchestrator uses it to fail fast before
// any row work when a required column is missing outright.
func HasColumn(headers []string, field Field) bool {
	for _, alias := range Aliases[field] {
		for _, header := range headers {
			if strings.EqualFold(strings.TrimSpace(header), alias) {
				return true
			}
		}
	}
	return false
}

// MissingColumns returns the required fields of the kind that have no
// alias match anywhere in the header row.
func MissingColumns(headers []string, kind models.RecordKind) []Field {
	var missing []Field
	for _, field := range Required(kind) {
		if !HasColumn(headers, field) {
			missing = append(missing, field)
		}
	}
	return missing
}
