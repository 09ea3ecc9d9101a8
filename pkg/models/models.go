// Package models defines data structures shared across the application.
package models

import (
	"time"
)

// RecordKind distinguishes the two supported spreadsheet exports.
type RecordKind string

const (
	// KindIncidents is an incident export (P1..P4 priorities, hour-based SLAs).
	KindIncidents RecordKind = "incidents"

	// KindRequests is a service-request export (HIGH/MEDIUM/LOW priorities, day-based SLAs).
	KindRequests RecordKind = "requests"
)

// Valid reports whether the kind is one of the supported record kinds.
func (k RecordKind) Valid() bool {
	return k == KindIncidents || k == KindRequests
}

// Priority is a normalized priority tier. Incidents use P1..P4,
// requests use HIGH/MEDIUM/LOW.
type Priority string

const (
	PriorityP1 Priority = "P1"
	PriorityP2 Priority = "P2"
	PriorityP3 Priority = "P3"
	PriorityP4 Priority = "P4"

	PriorityHigh   Priority = "HIGH"
	PriorityMedium Priority = "MEDIUM"
	PriorityLow    Priority = "LOW"
)

// State is a normalized lifecycle state shared by both record kinds.
type State string

const (
	StateOpen             State = "open"
	StateAssigned         State = "assigned"
	StateInProgress       State = "in_progress"
	StateOnHold           State = "on_hold"
	StateClosedComplete   State = "closed_complete"
	StateClosedIncomplete State = "closed_incomplete"
	StateClosedSkipped    State = "closed_skipped"
)

// Closed reports whether the state is terminal.
func (s State) Closed() bool {
	return s == StateClosedComplete || s == StateClosedIncomplete || s == StateClosedSkipped
}

// Shift is one of the three time-of-day windows a record's opened
// instant falls into.
type Shift string

const (
	ShiftMorning   Shift = "morning"
	ShiftAfternoon Shift = "afternoon"
	ShiftNight     Shift = "night"
)

// CanonicalRecord is the validated output unit of ingestion. Every field
// has already been resolved, parsed, and classified; optional string
// fields may be empty but are never absent.
type CanonicalRecord struct {
	// Number is the source system identifier (e.g. "INC0012345").
	Number string

	// Opened is the instant the record was opened.
	Opened time.Time

	// ShortDescription is the one-line summary.
	ShortDescription string

	// Description is the full body text, possibly empty.
	Description string

	// Priority is the normalized priority tier for the record's kind.
	Priority Priority

	// State is the normalized lifecycle state.
	State State

	// AssignmentGroup is the owning group, canonicalized to a short code
	// when the raw name is known, passed through otherwise.
	AssignmentGroup string

	// AssignedTo is the individual assignee, possibly empty.
	AssignedTo string

	// RequestedFor is the person the record was raised for. Required for
	// requests, usually empty for incidents.
	RequestedFor string

	// Updated is the last-updated instant, zero when the source omits it.
	Updated time.Time

	// Notes holds free-text work notes, possibly empty.
	Notes string
}

// ValidationError reports a single per-row ingestion violation. It is a
// reporting artifact only and never blocks other rows in the same sheet.
type ValidationError struct {
	// Row is the 1-based spreadsheet row number, counting the header row,
	// so the first data row is row 2.
	Row int

	// Field is the canonical field name the violation concerns, or "all"
	// for a structurally empty row.
	Field string

	// Value is the offending raw value, possibly empty.
	Value string

	// Reason is a human-readable explanation.
	Reason string
}
