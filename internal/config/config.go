// Package config provides centralized configuration management for the
// application. Shift windows and SLA thresholds are the two operator
// editable surfaces; both are validated as a whole before a configuration
// is returned, so an invalid edit is rejected rather than partially
// applied.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/vbastos/deskparse/internal/shift"
	"github.com/vbastos/deskparse/internal/sla"
	"github.com/vbastos/deskparse/pkg/models"
)

// Config holds all configuration parameters for the application.
type Config struct {
	// Shifts is the validated shift window table.
	Shifts shift.Config

	// IncidentSLA maps incident priorities to hour-based budgets.
	IncidentSLA sla.Thresholds

	// RequestSLA maps request priorities to day-based budgets.
	RequestSLA sla.Thresholds
}

// LoadConfig builds the configuration from defaults, an optional YAML
// config file, and environment variable overrides, then validates it.
// configFile may be empty, in which case only defaults and environment
// apply.
func LoadConfig(configFile string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("DESKPARSE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	config := &Config{
		Shifts: shift.Config{
			Morning: shift.Window{
				Start: v.GetString("shifts.morning.start"),
				End:   v.GetString("shifts.morning.end"),
			},
			Afternoon: shift.Window{
				Start: v.GetString("shifts.afternoon.start"),
				End:   v.GetString("shifts.afternoon.end"),
			},
			Night: shift.Window{
				Start: v.GetString("shifts.night.start"),
				End:   v.GetString("shifts.night.end"),
			},
		},
		IncidentSLA: sla.Thresholds{
			models.PriorityP1: hours(v.GetFloat64("sla.incidents.p1_hours")),
			models.PriorityP2: hours(v.GetFloat64("sla.incidents.p2_hours")),
			models.PriorityP3: hours(v.GetFloat64("sla.incidents.p3_hours")),
			models.PriorityP4: hours(v.GetFloat64("sla.incidents.p4_hours")),
		},
		RequestSLA: sla.Thresholds{
			models.PriorityHigh:   days(v.GetFloat64("sla.requests.high_days")),
			models.PriorityMedium: days(v.GetFloat64("sla.requests.medium_days")),
			models.PriorityLow:    days(v.GetFloat64("sla.requests.low_days")),
		},
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// setDefaults registers the built-in shift layout and SLA budgets.
func setDefaults(v *viper.Viper) {
	shifts := shift.DefaultConfig()
	v.SetDefault("shifts.morning.start", shifts.Morning.Start)
	v.SetDefault("shifts.morning.end", shifts.Morning.End)
	v.SetDefault("shifts.afternoon.start", shifts.Afternoon.Start)
	v.SetDefault("shifts.afternoon.end", shifts.Afternoon.End)
	v.SetDefault("shifts.night.start", shifts.Night.Start)
	v.SetDefault("shifts.night.end", shifts.Night.End)

	incidents := sla.DefaultIncidentThresholds()
	v.SetDefault("sla.incidents.p1_hours", incidents[models.PriorityP1].Hours())
	v.SetDefault("sla.incidents.p2_hours", incidents[models.PriorityP2].Hours())
	v.SetDefault("sla.incidents.p3_hours", incidents[models.PriorityP3].Hours())
	v.SetDefault("sla.incidents.p4_hours", incidents[models.PriorityP4].Hours())

	requests := sla.DefaultRequestThresholds()
	v.SetDefault("sla.requests.high_days", requests[models.PriorityHigh].Hours()/24)
	v.SetDefault("sla.requests.medium_days", requests[models.PriorityMedium].Hours()/24)
	v.SetDefault("sla.requests.low_days", requests[models.PriorityLow].Hours()/24)
}

// Validate checks the whole configuration: shift tiling and SLA budgets.
func (c *Config) Validate() error {
	if err := c.Shifts.Validate(); err != nil {
		return fmt.Errorf("invalid shift configuration: %w", err)
	}

	if err := c.IncidentSLA.Validate(
		models.PriorityP1, models.PriorityP2, models.PriorityP3, models.PriorityP4,
	); err != nil {
		return fmt.Errorf("invalid incident sla configuration: %w", err)
	}

	if err := c.RequestSLA.Validate(
		models.PriorityHigh, models.PriorityMedium, models.PriorityLow,
	); err != nil {
		return fmt.Errorf("invalid request sla configuration: %w", err)
	}

	return nil
}

// SLAFor returns the threshold table for the record kind.
func (c *Config) SLAFor(kind models.RecordKind) sla.Thresholds {
	if kind == models.KindRequests {
		return c.RequestSLA
	}
	return c.IncidentSLA
}

func hours(h float64) time.Duration {
	return time.Duration(h * float64(time.Hour))
}

func days(d float64) time.Duration {
	return time.Duration(d * 24 * float64(time.Hour))
}
