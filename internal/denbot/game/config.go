package game

import "time"

type Config struct {
	NightDuration  time.Duration
	DayDuration    time.Duration
	VotingDuration time.Duration

	MinPlayers     int
	MinPlayersTest int
	MaxPlayers     int

	MaxSupplies int

	// role distribution shares of the player count, each clamped to >= 1
	WolfShare   float64
	FoxShare    float64
	MoleShare   float64
	BeaverShare float64

	// auto-termination thresholds
	MaxRounds       int
	MaxGameDuration time.Duration
}

func DefaultConfig() Config {
	return Config{
		NightDuration:   60 * time.Second,
		DayDuration:     300 * time.Second,
		VotingDuration:  120 * time.Second,
		MinPlayers:      6,
		MinPlayersTest:  3,
		MaxPlayers:      12,
		MaxSupplies:     2,
		WolfShare:       0.25,
		FoxShare:        0.15,
		MoleShare:       0.15,
		BeaverShare:     0.10,
		MaxRounds:       20,
		MaxGameDuration: 2 * time.Hour,
	}
}
