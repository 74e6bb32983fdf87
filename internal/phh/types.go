// Package phh implements the PHH (poker hand history) TOML-ish text
// interchange format over internal/game's History, including the
// engine-specific typed parse errors spec §7.2 requires (spec §6: "PHH
// history format").
package phh

import "fmt"

// HandHistory is the on-disk TOML shape of one PHH hand (spec §6).
type HandHistory struct {
	Variant           string   `toml:"variant"`
	Antes             []int    `toml:"antes"`
	BlindsOrStraddles []int    `toml:"blinds_or_straddles"`
	SmallBet          int      `toml:"small_bet,omitempty"`
	BigBet            int      `toml:"big_bet,omitempty"`
	MinBet            int      `toml:"min_bet"`
	StartingStacks    []int    `toml:"starting_stacks"`
	Seats             []int    `toml:"seats,omitempty"`
	HandID            string   `toml:"hand"`
	Actions           []string `toml:"actions"`
}

// Supported variant codes (spec §6: `variant` ∈ {"NT", "FT"}).
const (
	VariantNoLimit    = "NT"
	VariantFixedLimit = "FT"
)

// ParseError is the typed error for a malformed PHH document (spec §7.2:
// "Parse error (in the PHH adapter): unsupported variant, malformed action
// string, nonzero antes with min_bet>0 when that combination is not
// meaningful -> typed parse error; history object is not partially
// populated").
type ParseError struct {
	Reason string
}

func (e *ParseError) Error() string { return "phh: " + e.Reason }

func parseErrorf(format string, args ...any) error {
	return &ParseError{Reason: fmt.Sprintf(format, args...)}
}
