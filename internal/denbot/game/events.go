package game

import "time"

// Event is one typed outcome message for the renderer. Events for a game are
// delivered in exactly the order the resolver produced them.
type Event interface {
	event()
}

// PhaseEntered is emitted on every phase transition, including repeats.
type PhaseEntered struct {
	Phase    Phase
	Round    int
	Deadline time.Time
}

// RoleAssigned is private to the player. Wolves receives the pack roster.
type RoleAssigned struct {
	UserID int64
	Role   Role
	Wolves []int64
}

type WolfKill struct {
	Victim int64
}

type FoxStolen struct {
	FoxID  int64
	Target int64
}

type FoxStarved struct {
	FoxID  int64
	Target int64
}

// FoxEmpty means the steal fizzled: dead target or no supplies left.
type FoxEmpty struct {
	FoxID  int64
	Target int64
}

// FoxBlocked means the target was under beaver protection this round.
type FoxBlocked struct {
	FoxID  int64
	Target int64
}

type BeaverRestored struct {
	BeaverID int64
	Target   int64
	Amount   int
}

type BeaverNothingToRestore struct {
	BeaverID int64
	Target   int64
}

type BeaverEmpty struct {
	BeaverID int64
	Target   int64
}

// MoleEmpty means the mole visited a dead player's den.
type MoleEmpty struct {
	MoleID int64
	Target int64
}

// MoleReport is private to the mole. Away means the target acted this night
// and only a vague hint is revealed instead of the exact role.
type MoleReport struct {
	MoleID int64
	Target int64
	Role   Role
	Away   bool
}

type Exiled struct {
	UserID int64
	Role   Role
}

type NoExile struct{}

type GameOver struct {
	Winner Team
	Reason EndReason
}

func (PhaseEntered) event()           {}
func (RoleAssigned) event()           {}
func (WolfKill) event()               {}
func (FoxStolen) event()              {}
func (FoxStarved) event()             {}
func (FoxEmpty) event()               {}
func (FoxBlocked) event()             {}
func (BeaverRestored) event()         {}
func (BeaverNothingToRestore) event() {}
func (BeaverEmpty) event()            {}
func (MoleEmpty) event()              {}
func (MoleReport) event()             {}
func (Exiled) event()                 {}
func (NoExile) event()                {}
func (GameOver) event()               {}

// EndReason tells the renderer why the game finished.
type EndReason string

const (
	ReasonPredatorParity EndReason = "predator_parity"
	ReasonWolvesDead     EndReason = "wolves_dead"
	ReasonFewSurvivors   EndReason = "few_survivors"
	ReasonTimeLimit      EndReason = "time_limit"
	ReasonRoundLimit     EndReason = "round_limit"
	ReasonLastPair       EndReason = "last_pair"
	ReasonAdminStop      EndReason = "admin_stop"
	ReasonInternal       EndReason = "internal_error"
)
