package game

// Team is the faction a role fights for.
type Team uint8

const (
	TeamPredators Team = iota + 1
	TeamHerbivores
)

func (t Team) String() string {
	switch t {
	case TeamPredators:
		return "predators"
	case TeamHerbivores:
		return "herbivores"
	default:
		return "unknown"
	}
}

// Role is the night identity of a player. Team assignment is fixed per role.
type Role uint8

const (
	RoleWolf Role = iota + 1
	RoleFox
	RoleHare
	RoleMole
	RoleBeaver
)

func (r Role) String() string {
	switch r {
	case RoleWolf:
		return "wolf"
	case RoleFox:
		return "fox"
	case RoleHare:
		return "hare"
	case RoleMole:
		return "mole"
	case RoleBeaver:
		return "beaver"
	default:
		return "unknown"
	}
}

func (r Role) TeamOf() Team {
	switch r {
	case RoleWolf, RoleFox:
		return TeamPredators
	default:
		return TeamHerbivores
	}
}

// HasNightAction reports whether the role gets an action menu at night.
func (r Role) HasNightAction() bool {
	switch r {
	case RoleWolf, RoleFox, RoleMole, RoleBeaver:
		return true
	default:
		return false
	}
}
