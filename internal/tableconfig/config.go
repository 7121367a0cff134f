// Package tableconfig loads table settings (blinds, stacks, seating, seed)
// from an HCL file.
package tableconfig

import (
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/holdem-core/internal/holdem"
)

// Config is the root of a table configuration file:
//
//	table "main" {
//	  seed                   = 1
//	  initial_stack          = 1000
//	  small_blind            = 5
//	  big_blind              = 10
//	  max_seats              = 6
//	  action_timeout_seconds = 30
//	}
type Config struct {
	Table TableSettings `hcl:"table,block"`
}

// TableSettings mirrors the fields a table operator can tune without
// recompiling. ActionTimeoutSeconds is read by the CLI as its per-action
// deadline; MaxSeats is only range-checked by Validate. Neither is read by
// internal/holdem or the table actor.
type TableSettings struct {
	Name                 string `hcl:"name,label"`
	Seed                 int64  `hcl:"seed,optional"`
	InitialStack         int    `hcl:"initial_stack,optional"`
	SmallBlind           int    `hcl:"small_blind,optional"`
	BigBlind             int    `hcl:"big_blind,optional"`
	MaxSeats             int    `hcl:"max_seats,optional"`
	ActionTimeoutSeconds int    `hcl:"action_timeout_seconds,optional"`
}

// Default returns a ready-to-use configuration for local experimentation.
func Default() *Config {
	return &Config{
		Table: TableSettings{
			Name:                 "main",
			Seed:                 1,
			InitialStack:         1000,
			SmallBlind:           5,
			BigBlind:             10,
			MaxSeats:             6,
			ActionTimeoutSeconds: 30,
		},
	}
}

// Load reads an HCL table configuration from filename. A missing file is not
// an error: it yields Default().
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("tableconfig: parse %s: %s", filename, diags.Error())
	}

	var cfg Config
	diags = gohcl.DecodeBody(file.Body, nil, &cfg)
	if diags.HasErrors() {
		return nil, fmt.Errorf("tableconfig: decode %s: %s", filename, diags.Error())
	}

	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	d := Default()
	if c.Table.Name == "" {
		c.Table.Name = d.Table.Name
	}
	if c.Table.InitialStack == 0 {
		c.Table.InitialStack = d.Table.InitialStack
	}
	if c.Table.SmallBlind == 0 {
		c.Table.SmallBlind = d.Table.SmallBlind
	}
	if c.Table.BigBlind == 0 {
		c.Table.BigBlind = 2 * c.Table.SmallBlind
	}
	if c.Table.MaxSeats == 0 {
		c.Table.MaxSeats = d.Table.MaxSeats
	}
	if c.Table.ActionTimeoutSeconds == 0 {
		c.Table.ActionTimeoutSeconds = d.Table.ActionTimeoutSeconds
	}
}

// Validate rejects configurations that internal/holdem or the table actor
// could not seat or run.
func (c *Config) Validate() error {
	if c.Table.SmallBlind <= 0 {
		return fmt.Errorf("tableconfig: small blind must be positive")
	}
	if c.Table.BigBlind <= c.Table.SmallBlind {
		return fmt.Errorf("tableconfig: big blind must be greater than small blind")
	}
	if c.Table.InitialStack <= 0 {
		return fmt.Errorf("tableconfig: initial stack must be positive")
	}
	if c.Table.MaxSeats < 2 || c.Table.MaxSeats > 6 {
		return fmt.Errorf("tableconfig: max seats must be between 2 and 6")
	}
	if c.Table.ActionTimeoutSeconds <= 0 {
		return fmt.Errorf("tableconfig: action timeout must be positive")
	}
	return nil
}

// ActionTimeout is the configured per-action deadline as a time.Duration.
func (c *Config) ActionTimeout() time.Duration {
	return time.Duration(c.Table.ActionTimeoutSeconds) * time.Second
}

// ToOptions converts the table settings into the holdem.Options a new hand
// is created with.
func (c *Config) ToOptions() holdem.Options {
	return holdem.Options{
		Seed:         c.Table.Seed,
		InitialStack: c.Table.InitialStack,
		SmallBlind:   c.Table.SmallBlind,
		BigBlind:     c.Table.BigBlind,
	}
}
