package sla

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vbastos/deskparse/pkg/models"
)

func TestEvaluateOpenRequestWithinBudget(t *testing.T) {
	// A MEDIUM request (5-day budget) opened 3 days ago: ~60% consumed,
	// 2 days remaining, still normal.
	now := time.Date(2025, 3, 29, 12, 0, 0, 0, time.Local)
	opened := now.Add(-3 * 24 * time.Hour)
	threshold := DefaultRequestThresholds()[models.PriorityMedium]

	result := Evaluate(threshold, opened, nil, now)

	assert.InDelta(t, 60.0, result.PercentConsumed, 0.01)
	assert.Equal(t, StatusNormal, result.Status)
	assert.Equal(t, 2*24*time.Hour, result.Remaining)
	assert.Equal(t, 3*24*time.Hour, result.Elapsed)
}

func TestEvaluateOpenRequestBreached(t *testing.T) {
	// A HIGH request (3-day budget) opened 8 days ago: critical, percent
	// capped at 100, remaining floored at zero.
	now := time.Date(2025, 3, 29, 12, 0, 0, 0, time.Local)
	opened := now.Add(-8 * 24 * time.Hour)
	threshold := DefaultRequestThresholds()[models.PriorityHigh]

	result := Evaluate(threshold, opened, nil, now)

	assert.Equal(t, StatusCritical, result.Status)
	assert.Equal(t, 100.0, result.PercentConsumed)
	assert.Equal(t, time.Duration(0), result.Remaining)
}

func TestEvaluateStatusBands(t *testing.T) {
	threshold := 10 * time.Hour
	opened := time.Date(2025, 3, 29, 0, 0, 0, 0, time.Local)

	tests := []struct {
		name     string
		elapsed  time.Duration
		expected Status
	}{
		{"Fresh record", 1 * time.Hour, StatusNormal},
		{"Just under warning band", 7*time.Hour + 29*time.Minute, StatusNormal},
		{"Warning band starts at 75 percent", 7*time.Hour + 30*time.Minute, StatusWarning},
		{"Just under breach", 9*time.Hour + 59*time.Minute, StatusWarning},
		{"Breach at exactly 100 percent", 10 * time.Hour, StatusCritical},
		{"Far past breach", 50 * time.Hour, StatusCritical},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Evaluate(threshold, opened, nil, opened.Add(tt.elapsed))
			assert.Equal(t, tt.expected, result.Status)
		})
	}
}

// Percent consumed is exactly 100 at opened+threshold and never exceeds it.
func TestEvaluateExactBreachInstant(t *testing.T) {
	threshold := 4 * time.Hour
	opened := time.Date(2025, 3, 29, 8, 0, 0, 0, time.Local)

	result := Evaluate(threshold, opened, nil, opened.Add(threshold))
	assert.Equal(t, 100.0, result.PercentConsumed)
	assert.Equal(t, StatusCritical, result.Status)
}

// For a fixed priority and opened instant, consumption is non-decreasing
// as the evaluation instant advances.
func TestEvaluateMonotonic(t *testing.T) {
	threshold := DefaultIncidentThresholds()[models.PriorityP2]
	opened := time.Date(2025, 3, 29, 8, 0, 0, 0, time.Local)

	last := -1.0
	for step := 0; step <= 48; step++ {
		now := opened.Add(time.Duration(step) * 30 * time.Minute)
		result := Evaluate(threshold, opened, nil, now)
		require.GreaterOrEqual(t, result.PercentConsumed, last, "step %d", step)
		last = result.PercentConsumed
	}
}

func TestEvaluateClosedRecordUsesClosedInstant(t *testing.T) {
	threshold := 8 * time.Hour
	opened := time.Date(2025, 3, 29, 8, 0, 0, 0, time.Local)
	closed := opened.Add(2 * time.Hour)

	// Evaluated long after closure, the record is still judged by when it
	// closed.
	now := opened.Add(100 * time.Hour)
	result := Evaluate(threshold, opened, &closed, now)

	assert.Equal(t, 2*time.Hour, result.Elapsed)
	assert.Equal(t, StatusNormal, result.Status)
	assert.InDelta(t, 25.0, result.PercentConsumed, 0.01)
}

func TestEvaluateNeutralResults(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name      string
		threshold time.Duration
		opened    time.Time
	}{
		{"Zero opened instant", 4 * time.Hour, time.Time{}},
		{"Zero threshold", 0, now.Add(-time.Hour)},
		{"Negative threshold", -time.Hour, now.Add(-time.Hour)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Evaluate(tt.threshold, tt.opened, nil, now)
			assert.Equal(t, Result{Status: StatusNormal}, result)
		})
	}
}

func TestEvaluateRecord(t *testing.T) {
	now := time.Date(2025, 3, 29, 12, 0, 0, 0, time.Local)
	thresholds := DefaultIncidentThresholds()

	t.Run("Closed record measured against last update", func(t *testing.T) {
		record := models.CanonicalRecord{
			Priority: models.PriorityP1,
			State:    models.StateClosedComplete,
			Opened:   now.Add(-10 * time.Hour),
			Updated:  now.Add(-9 * time.Hour),
		}
		result := EvaluateRecord(record, thresholds, now)
		assert.Equal(t, time.Hour, result.Elapsed)
		assert.Equal(t, StatusNormal, result.Status)
	})

	t.Run("Open record measured against now", func(t *testing.T) {
		record := models.CanonicalRecord{
			Priority: models.PriorityP1,
			State:    models.StateInProgress,
			Opened:   now.Add(-10 * time.Hour),
			Updated:  now.Add(-9 * time.Hour),
		}
		result := EvaluateRecord(record, thresholds, now)
		assert.Equal(t, 10*time.Hour, result.Elapsed)
		assert.Equal(t, StatusCritical, result.Status)
	})

	t.Run("Unknown priority yields neutral result", func(t *testing.T) {
		record := models.CanonicalRecord{
			Priority: models.PriorityHigh, // request tier against incident table
			Opened:   now.Add(-time.Hour),
		}
		result := EvaluateRecord(record, thresholds, now)
		assert.Equal(t, Result{Status: StatusNormal}, result)
	})
}

func TestThresholdsValidate(t *testing.T) {
	valid := DefaultRequestThresholds()
	assert.NoError(t, valid.Validate(models.PriorityHigh, models.PriorityMedium, models.PriorityLow))

	missing := Thresholds{models.PriorityHigh: 3 * 24 * time.Hour}
	assert.Error(t, missing.Validate(models.PriorityHigh, models.PriorityMedium))

	negative := Thresholds{models.PriorityHigh: -time.Hour}
	assert.Error(t, negative.Validate(models.PriorityHigh))
}
