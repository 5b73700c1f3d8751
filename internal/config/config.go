// Package config loads the casino's HCL configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/minicasino/internal/bonus"
	"github.com/lox/minicasino/internal/wager"
)

// DefaultStartingChips is the balance a new session starts with.
const DefaultStartingChips int64 = 1000

// Config represents the complete casino configuration
type Config struct {
	Casino *CasinoSettings `hcl:"casino,block"`
	Bonus  *BonusSettings  `hcl:"bonus,block"`
	Tables []TableConfig   `hcl:"table,block"`
}

// CasinoSettings contains session-level configuration
type CasinoSettings struct {
	StartingChips int64  `hcl:"starting_chips,optional"`
	Seed          int64  `hcl:"seed,optional"`
	LogLevel      string `hcl:"log_level,optional"`
}

// BonusSettings configures the daily bonus
type BonusSettings struct {
	Amount   int64  `hcl:"amount,optional"`
	Cooldown string `hcl:"cooldown,optional"`
}

// TableConfig defines betting limits for one game
type TableConfig struct {
	Game   string `hcl:"game,label"`
	MinBet int64  `hcl:"min_bet,optional"`
	MaxBet int64  `hcl:"max_bet,optional"`
}

// Default returns the configuration used when no file is present
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads configuration from an HCL file. A missing file yields the defaults.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var cfg Config
	diags = gohcl.DecodeBody(file.Body, nil, &cfg)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Casino == nil {
		c.Casino = &CasinoSettings{}
	}
	if c.Casino.StartingChips == 0 {
		c.Casino.StartingChips = DefaultStartingChips
	}
	if c.Casino.LogLevel == "" {
		c.Casino.LogLevel = "info"
	}

	if c.Bonus == nil {
		c.Bonus = &BonusSettings{}
	}
	if c.Bonus.Amount == 0 {
		c.Bonus.Amount = bonus.DefaultAmount
	}
	if c.Bonus.Cooldown == "" {
		c.Bonus.Cooldown = bonus.DefaultCooldown.String()
	}

	for i := range c.Tables {
		if c.Tables[i].MinBet == 0 {
			c.Tables[i].MinBet = 1
		}
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Casino.StartingChips <= 0 {
		return fmt.Errorf("starting chips must be positive: %d", c.Casino.StartingChips)
	}
	if _, err := log.ParseLevel(c.Casino.LogLevel); err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.Casino.LogLevel, err)
	}

	if c.Bonus.Amount <= 0 {
		return fmt.Errorf("bonus amount must be positive: %d", c.Bonus.Amount)
	}
	cooldown, err := time.ParseDuration(c.Bonus.Cooldown)
	if err != nil {
		return fmt.Errorf("invalid bonus cooldown %q: %w", c.Bonus.Cooldown, err)
	}
	if cooldown <= 0 {
		return fmt.Errorf("bonus cooldown must be positive: %s", cooldown)
	}

	seen := make(map[wager.Game]bool)
	for _, table := range c.Tables {
		game, err := wager.ParseGame(table.Game)
		if err != nil {
			return fmt.Errorf("table %s: %w", table.Game, err)
		}
		if seen[game] {
			return fmt.Errorf("table %s: configured more than once", table.Game)
		}
		seen[game] = true
		if table.MinBet <= 0 {
			return fmt.Errorf("table %s: min bet must be positive", table.Game)
		}
		if table.MaxBet != 0 && table.MaxBet < table.MinBet {
			return fmt.Errorf("table %s: max bet must not be less than min bet", table.Game)
		}
	}
	return nil
}

// BonusCooldown returns the parsed cooldown; call Validate first.
func (c *Config) BonusCooldown() time.Duration {
	d, err := time.ParseDuration(c.Bonus.Cooldown)
	if err != nil {
		return bonus.DefaultCooldown
	}
	return d
}

// Limits returns the betting limits for each configured game. MaxBet zero
// means no upper limit.
func (c *Config) Limits() map[wager.Game]wager.Limits {
	limits := make(map[wager.Game]wager.Limits, len(c.Tables))
	for _, table := range c.Tables {
		game, err := wager.ParseGame(table.Game)
		if err != nil {
			continue
		}
		limits[game] = wager.Limits{Min: table.MinBet, Max: table.MaxBet}
	}
	return limits
}
