package game

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// AnteTarget selects which players post antes at hand init (spec §6:
// "ante_target ∈ {all, bb-only, button-only}").
type AnteTarget int

// Ante targets.
const (
	AnteNone AnteTarget = iota
	AnteAll
	AnteBBOnly
	AnteButtonOnly
)

// GameConfig configures a Game's blinds, antes, and betting structure
// (spec §6: "Configuration"). Decoded from HCL with gohcl, following the
// same shape as the standalone server's table configuration.
type GameConfig struct {
	SmallBlind     int    `hcl:"small_blind,optional"`
	BigBlind       int    `hcl:"big_blind,optional"`
	SmallBet       int    `hcl:"small_bet,optional"`
	BigBet         int    `hcl:"big_bet,optional"`
	MinBet         int    `hcl:"min_bet,optional"`
	AnteAmt        int    `hcl:"ante_amt,optional"`
	AnteTargetName string `hcl:"ante_target,optional"`
}

// IsFixedLimit reports whether the config describes a fixed-limit game
// (spec §6: "is_fixed_limit ⇔ small_bet>0 ∨ big_bet>0").
func (c *GameConfig) IsFixedLimit() bool {
	return c.SmallBet > 0 || c.BigBet > 0
}

// AnteTarget parses AnteTargetName, defaulting to AnteNone.
func (c *GameConfig) AnteTarget() AnteTarget {
	switch c.AnteTargetName {
	case "all":
		return AnteAll
	case "bb-only":
		return AnteBBOnly
	case "button-only":
		return AnteButtonOnly
	default:
		return AnteNone
	}
}

// applyDefaults fills zero-valued fields from big_blind, matching spec §6's
// "NL heads-up uses big_blind, small_blind=big_blind/2, min_bet=big_blind".
func (c *GameConfig) applyDefaults() {
	if c.BigBlind == 0 {
		c.BigBlind = 2
	}
	if c.SmallBlind == 0 {
		c.SmallBlind = c.BigBlind / 2
	}
	if c.MinBet == 0 {
		c.MinBet = c.BigBlind
	}
}

// DefaultNoLimitConfig returns heads-up no-limit defaults per spec §6.
func DefaultNoLimitConfig() *GameConfig {
	c := &GameConfig{}
	c.applyDefaults()
	return c
}

// DefaultFixedLimitConfig returns a conservative fixed-limit configuration:
// small_bet preflop/flop, big_bet (double) turn/river.
func DefaultFixedLimitConfig() *GameConfig {
	c := &GameConfig{SmallBet: 2, BigBet: 4}
	c.applyDefaults()
	return c
}

// LoadGameConfig loads a GameConfig from an HCL file, falling back to
// no-limit defaults when the file does not exist.
func LoadGameConfig(filename string) (*GameConfig, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return DefaultNoLimitConfig(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("game: failed to parse HCL file %s: %s", filename, diags.Error())
	}

	cfg := &GameConfig{}
	diags = gohcl.DecodeBody(file.Body, nil, cfg)
	if diags.HasErrors() {
		return nil, fmt.Errorf("game: failed to decode HCL: %s", diags.Error())
	}
	cfg.applyDefaults()
	return cfg, nil
}

// Validate checks the configuration is internally consistent.
func (c *GameConfig) Validate() error {
	if c.SmallBlind <= 0 {
		return fmt.Errorf("game: small blind must be positive")
	}
	if c.BigBlind <= c.SmallBlind {
		return fmt.Errorf("game: big blind must be greater than small blind")
	}
	if c.AnteAmt < 0 {
		return fmt.Errorf("game: ante amount cannot be negative")
	}
	if c.IsFixedLimit() && (c.SmallBet <= 0 || c.BigBet <= 0) {
		return fmt.Errorf("game: fixed-limit games require both small_bet and big_bet")
	}
	return nil
}
