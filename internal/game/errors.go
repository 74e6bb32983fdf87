package game

import "fmt"

// InvalidMoveError is returned by AcceptMove for a caller bug: negative
// amount, raise under last_raise, over-pushing chips, or raising when no
// raises remain in a fixed-limit game (spec §7.1). No state is mutated
// before this error is returned.
type InvalidMoveError struct {
	Player int
	Move   Move
	Reason string
}

func (e *InvalidMoveError) Error() string {
	return fmt.Sprintf("game: invalid move by player %d (%s): %s", e.Player, e.Move.Action, e.Reason)
}

func invalidMove(player int, move Move, reason string) error {
	return &InvalidMoveError{Player: player, Move: move, Reason: reason}
}
