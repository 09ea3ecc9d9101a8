// Package sla evaluates elapsed time against priority-indexed duration
// budgets. One evaluation shape serves both live monitoring ("still open,
// how much runway left") and historical compliance ("was it closed within
// budget"): the closed instant is optional and the current time is taken
// when it is absent.
package sla

import (
	"fmt"
	"time"

	"github.com/vbastos/deskparse/pkg/models"
)

// Status is the three-level budget condition of a record.
type Status string

const (
	// StatusNormal means less than 75% of the budget is consumed.
	StatusNormal Status = "normal"
	// StatusWarning means 75% to just under 100% is consumed.
	StatusWarning Status = "warning"
	// StatusCritical means the budget is fully consumed or breached.
	StatusCritical Status = "critical"
)

// warningPercent is the consumption level at which a record leaves
// StatusNormal.
const warningPercent = 75.0

// Thresholds maps each normalized priority to its allowed duration.
// Incidents budget in hours, requests in days; both reduce to
// time.Duration here so the evaluator stays unit-agnostic.
type Thresholds map[models.Priority]time.Duration

// DefaultIncidentThresholds returns the hour-based incident budgets.
func DefaultIncidentThresholds() Thresholds {
	return Thresholds{
		models.PriorityP1: 4 * time.Hour,
		models.PriorityP2: 8 * time.Hour,
		models.PriorityP3: 24 * time.Hour,
		models.PriorityP4: 48 * time.Hour,
	}
}

// DefaultRequestThresholds returns the day-based request budgets.
func DefaultRequestThresholds() Thresholds {
	return Thresholds{
		models.PriorityHigh:   3 * 24 * time.Hour,
		models.PriorityMedium: 5 * 24 * time.Hour,
		models.PriorityLow:    10 * 24 * time.Hour,
	}
}

// Validate rejects threshold tables with missing or non-positive budgets
// for the given priorities. Operator edits are validated before being
// applied, never partially.
func (t Thresholds) Validate(priorities ...models.Priority) error {
	for _, p := range priorities {
		budget, ok := t[p]
		if !ok {
			return fmt.Errorf("no sla threshold configured for priority %s", p)
		}
		if budget <= 0 {
			return fmt.Errorf("sla threshold for priority %s must be positive, got %s", p, budget)
		}
	}
	return nil
}

// Result is the outcome of one SLA evaluation.
type Result struct {
	// Elapsed is the time between the opened instant and the evaluation
	// instant (closed time, or now for open records).
	Elapsed time.Duration

	// Threshold is the allowed budget for the record's priority.
	Threshold time.Duration

	// PercentConsumed is Elapsed/Threshold as a percentage, capped at 100.
	PercentConsumed float64

	// Remaining is the unconsumed budget, floored at zero.
	Remaining time.Duration

	// Status is the three-level condition derived from PercentConsumed.
	Status Status
}

// Evaluate computes budget consumption for a record. closed is nil for
// records still open, in which case now is the evaluation instant. A zero
// opened instant or a non-positive threshold yields the neutral zero
// Result; evaluation never fails.
func Evaluate(threshold time.Duration, opened time.Time, closed *time.Time, now time.Time) Result {
	if opened.IsZero() || threshold <= 0 {
		return Result{Status: StatusNormal}
	}

	at := now
	if closed != nil && !closed.IsZero() {
		at = *closed
	}

	elapsed := at.Sub(opened)
	if elapsed < 0 {
		elapsed = 0
	}

	percent := float64(elapsed) / float64(threshold) * 100
	status := StatusNormal
	switch {
	case percent >= 100:
		status = StatusCritical
	case percent >= warningPercent:
		status = StatusWarning
	}
	if percent > 100 {
		percent = 100
	}

	remaining := threshold - elapsed
	if remaining < 0 {
		remaining = 0
	}

	return Result{
		Elapsed:         elapsed,
		Threshold:       threshold,
		PercentConsumed: percent,
		Remaining:       remaining,
		Status:          status,
	}
}

// EvaluateRecord looks up the record's threshold and evaluates it. Records
// in a terminal state are measured against their last-updated instant when
// one is present; open records are measured against now.
func EvaluateRecord(record models.CanonicalRecord, thresholds Thresholds, now time.Time) Result {
	threshold := thresholds[record.Priority]

	var closed *time.Time
	if record.State.Closed() && !record.Updated.IsZero() {
		closed = &record.Updated
	}

	return Evaluate(threshold, record.Opened, closed, now)
}
