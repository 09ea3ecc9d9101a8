package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vbastos/deskparse/pkg/models"
)

func TestLoadConfigDefaults(t *testing.T) {
	config, err := LoadConfig("")
	require.NoError(t, err)
	require.NotNil(t, config)

	assert.Equal(t, "06:00", config.Shifts.Morning.Start)
	assert.Equal(t, "22:00", config.Shifts.Night.Start)
	assert.Equal(t, 4*time.Hour, config.IncidentSLA[models.PriorityP1])
	assert.Equal(t, 5*24*time.Hour, config.RequestSLA[models.PriorityMedium])
}

func TestLoadConfigFromFile(t *testing.T) {
	content := `
shifts:
  morning:
    start: "07:00"
    end: "15:00"
  afternoon:
    start: "15:00"
    end: "23:00"
  night:
    start: "23:00"
    end: "07:00"
sla:
  incidents:
    p1_hours: 2
  requests:
    high_days: 1
`
	path := filepath.Join(t.TempDir(), "deskparse.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	config, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "07:00", config.Shifts.Morning.Start)
	assert.Equal(t, 2*time.Hour, config.IncidentSLA[models.PriorityP1])
	// Unset keys keep their defaults.
	assert.Equal(t, 8*time.Hour, config.IncidentSLA[models.PriorityP2])
	assert.Equal(t, 24*time.Hour, config.RequestSLA[models.PriorityHigh])
	assert.Equal(t, 5*24*time.Hour, config.RequestSLA[models.PriorityMedium])
}

// An edit that breaks the shift tiling invariant is rejected whole; no
// partially-applied configuration is ever returned.
func TestLoadConfigRejectsBrokenShiftEdit(t *testing.T) {
	content := `
shifts:
  morning:
    start: "06:00"
    end: "12:00"
`
	path := filepath.Join(t.TempDir(), "deskparse.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	config, err := LoadConfig(path)
	assert.Error(t, err)
	assert.Nil(t, config)
	assert.Contains(t, err.Error(), "shift")
}

func TestLoadConfigRejectsNonPositiveThreshold(t *testing.T) {
	content := `
sla:
  incidents:
    p2_hours: 0
`
	path := filepath.Join(t.TempDir(), "deskparse.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	config, err := LoadConfig(path)
	assert.Error(t, err)
	assert.Nil(t, config)
}

func TestLoadConfigMissingFile(t *testing.T) {
	config, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
	assert.Nil(t, config)
}

func TestSLAFor(t *testing.T) {
	config, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, config.IncidentSLA, config.SLAFor(models.KindIncidents))
	assert.Equal(t, config.RequestSLA, config.SLAFor(models.KindRequests))
}
