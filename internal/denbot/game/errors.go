package game

import "fmt"

var (
	ErrInsufficientPlayers = fmt.Errorf("insufficient players")
	ErrTooManyPlayers      = fmt.Errorf("too many players")
	ErrWrongPhase          = fmt.Errorf("wrong phase")
	ErrIllegalTarget       = fmt.Errorf("illegal target")
	ErrUnknownActor        = fmt.Errorf("unknown actor")
	ErrInternal            = fmt.Errorf("internal game error")
)
