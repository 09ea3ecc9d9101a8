package fields

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vbastos/deskparse/pkg/models"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name     string
		row      map[string]string
		field    Field
		expected string
	}{
		{
			name:     "Exact English header",
			row:      map[string]string{"Number": "INC0001"},
			field:    FieldNumber,
			expected: "INC0001",
		},
		{
			name:     "Exact Portuguese header",
			row:      map[string]string{"Prioridade": "1 - Crítico"},
			field:    FieldPriority,
			expected: "1 - Crítico",
		},
		{
			name:     "Case-insensitive match",
			row:      map[string]string{"NUMBER": "INC0002"},
			field:    FieldNumber,
			expected: "INC0002",
		},
		{
			name:     "Earlier alias wins over later",
			row:      map[string]string{"Opened": "01/02/2025", "sys_created_on": "2020-01-01"},
			field:    FieldOpened,
			expected: "01/02/2025",
		},
		{
			name:     "Whitespace-only value treated as missing",
			row:      map[string]string{"Number": "   ", "number": "INC0003"},
			field:    FieldNumber,
			expected: "INC0003",
		},
		{
			name:     "Value is trimmed",
			row:      map[string]string{"State": "  Closed  "},
			field:    FieldState,
			expected: "Closed",
		},
		{
			name:     "No alias present",
			row:      map[string]string{"Unrelated": "x"},
			field:    FieldNumber,
			expected: "",
		},
		{
			name:     "Empty row",
			row:      map[string]string{},
			field:    FieldNumber,
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Resolve(tt.row, tt.field))
		})
	}
}

// Resolution must not depend on unrelated keys in the row.
func TestResolveIgnoresExtraKeys(t *testing.T) {
	base := map[string]string{"Prioridade": "Alta"}
	noisy := map[string]string{
		"Prioridade": "Alta",
		"Coluna A":   "ruído",
		"Coluna B":   "42",
		"priority2":  "ignored",
	}

	assert.Equal(t, Resolve(base, FieldPriority), Resolve(noisy, FieldPriority))
}

// No header spelling may be an alias for two different canonical fields.
// A violation here is a design defect in the alias table, not a runtime
// condition.
func TestAliasesDoNotOverlap(t *testing.T) {
	seen := make(map[string]Field)
	for field, aliases := range Aliases {
		for _, alias := range aliases {
			key := strings.ToLower(alias)
			if owner, ok := seen[key]; ok {
				t.Errorf("alias %q declared for both %q and %q", alias, owner, field)
				continue
			}
			seen[key] = field
		}
	}
}

func TestHasColumn(t *testing.T) {
	headers := []string{"Número", "Aberto", "Descrição resumida", "Estado"}

	assert.True(t, HasColumn(headers, FieldNumber))
	assert.True(t, HasColumn(headers, FieldOpened))
	assert.True(t, HasColumn(headers, FieldState))
	assert.False(t, HasColumn(headers, FieldPriority))
	assert.False(t, HasColumn(nil, FieldNumber))
}

func TestMissingColumns(t *testing.T) {
	tests := []struct {
		name    string
		headers []string
		kind    models.RecordKind
		missing []Field
	}{
		{
			name:    "Complete incident header",
			headers: []string{"Number", "Opened", "Short description", "State", "Priority"},
			kind:    models.KindIncidents,
			missing: nil,
		},
		{
			name:    "Missing number column",
			headers: []string{"Opened", "Short description", "State"},
			kind:    models.KindIncidents,
			missing: []Field{FieldNumber},
		},
		{
			name:    "Requests also require requested-for",
			headers: []string{"Number", "Opened", "Short description", "State"},
			kind:    models.KindRequests,
			missing: []Field{FieldRequestedFor},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.missing, MissingColumns(tt.headers, tt.kind))
		})
	}
}

func TestRequiredCoversBothKinds(t *testing.T) {
	assert.NotEmpty(t, Required(models.KindIncidents))
	assert.NotEmpty(t, Required(models.KindRequests))
}
