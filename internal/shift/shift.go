// Package shift classifies instants into the three operational shift
// windows. The windows are operator-editable configuration; the tiling
// invariant (full 24h coverage, no gaps, no overlaps) is enforced when a
// configuration is validated, not on every classification.
package shift

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/vbastos/deskparse/pkg/models"
)

// DefaultShift is returned for instants that could not be parsed upstream
// (the zero time). Classification never fails.
const DefaultShift = models.ShiftMorning

const minutesPerDay = 24 * 60

// Window is a time-of-day interval in "HH:mm" bounds, start inclusive,
// end exclusive. A window whose start is at or after its end wraps
// midnight.
type Window struct {
	Start string `mapstructure:"start"`
	End   string `mapstructure:"end"`
}

// Config holds the three shift windows.
type Config struct {
	Morning   Window `mapstructure:"morning"`
	Afternoon Window `mapstructure:"afternoon"`
	Night     Window `mapstructure:"night"`
}

// DefaultConfig returns the conventional shift layout: morning
// 06:00-14:00, afternoon 14:00-22:00, night 22:00-06:00.
func DefaultConfig() Config {
	return Config{
		Morning:   Window{Start: "06:00", End: "14:00"},
		Afternoon: Window{Start: "14:00", End: "22:00"},
		Night:     Window{Start: "22:00", End: "06:00"},
	}
}

// parseClock converts an "HH:mm" bound to minutes since midnight.
func parseClock(s string) (int, error) {
	parts := strings.SplitN(strings.TrimSpace(s), ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid time %q: expected HH:mm", s)
	}

	hours, err := strconv.Atoi(parts[0])
	if err != nil || hours < 0 || hours > 23 {
		return 0, fmt.Errorf("invalid hour in %q", s)
	}

	minutes, err := strconv.Atoi(parts[1])
	if err != nil || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("invalid minute in %q", s)
	}

	return hours*60 + minutes, nil
}

// bounds returns the window's start and end in minutes since midnight.
func (w Window) bounds() (int, int, error) {
	start, err := parseClock(w.Start)
	if err != nil {
		return 0, 0, err
	}
	end, err := parseClock(w.End)
	if err != nil {
		return 0, 0, err
	}
	return start, end, nil
}

// contains reports whether the minute-of-day falls inside the window,
// honouring the midnight wrap when start >= end.
func contains(start, end, minute int) bool {
	if start < end {
		return minute >= start && minute < end
	}
	return minute >= start || minute < end
}

// Validate enforces the tiling invariant: the three windows must cover
// every minute of the 24-hour cycle exactly once. A configuration that
// covers 24h through overlap is rejected the same as one with a gap.
// Proposed operator edits run through Validate before being applied;
// failures reject the whole edit.
func (c Config) Validate() error {
	windows := []struct {
		name   string
		window Window
	}{
		{"morning", c.Morning},
		{"afternoon", c.Afternoon},
		{"night", c.Night},
	}

	type span struct {
		name       string
		start, end int
	}
	spans := make([]span, 0, len(windows))
	for _, w := range windows {
		start, end, err := w.window.bounds()
		if err != nil {
			return fmt.Errorf("%s window: %w", w.name, err)
		}
		if start == end {
			return fmt.Errorf("%s window covers the whole day or nothing (%s-%s)", w.name, w.window.Start, w.window.End)
		}
		spans = append(spans, span{w.name, start, end})
	}

	for minute := 0; minute < minutesPerDay; minute++ {
		owners := 0
		for _, s := range spans {
			if contains(s.start, s.end, minute) {
				owners++
			}
		}
		if owners == 0 {
			return fmt.Errorf("shift windows leave %02d:%02d uncovered", minute/60, minute%60)
		}
		if owners > 1 {
			return fmt.Errorf("shift windows overlap at %02d:%02d", minute/60, minute%60)
		}
	}

	return nil
}

// Classify maps an instant to its shift window using only the time-of-day
// component. The zero instant (an unparseable date upstream) classifies as
// DefaultShift. Classify assumes the configuration already passed
// Validate.
func (c Config) Classify(t time.Time) models.Shift {
	if t.IsZero() {
		return DefaultShift
	}

	minute := t.Hour()*60 + t.Minute()

	if start, end, err := c.Morning.bounds(); err == nil && contains(start, end, minute) {
		return models.ShiftMorning
	}
	if start, end, err := c.Afternoon.bounds(); err == nil && contains(start, end, minute) {
		return models.ShiftAfternoon
	}
	if start, end, err := c.Night.bounds(); err == nil && contains(start, end, minute) {
		return models.ShiftNight
	}

	return DefaultShift
}
