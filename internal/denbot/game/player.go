package game

func NewPlayer(userID int64, firstName string, maxSupplies int) *Player {
	return &Player{
		UserID:    userID,
		FirstName: firstName,
		Alive:     true,
		Supplies:  maxSupplies,
	}
}

// Player is a plain per-participant record. It carries no back-reference to
// the game, the controller owns the aggregation.
type Player struct {
	UserID    int64  `json:"userID"`
	FirstName string `json:"firstName"`

	Role  Role `json:"role"`
	Team  Team `json:"team"`
	Alive bool `json:"alive"`

	// food stocks the fox steals from
	Supplies        int `json:"supplies"`
	StolenSupplies  int `json:"stolenSupplies"`
	FoxStealCount   int `json:"foxStealCount"`
	LastActionRound int `json:"lastActionRound"`

	// round-scoped, set by the beaver step, read by fox legality
	BeaverProtected bool `json:"beaverProtected"`
}
