package game

import (
	"math/rand"
	"sort"
)

// roleCounts computes the role distribution for n players. Shares are
// floored and clamped to at least one of each power role, hares fill the
// remainder and clamp to zero when the fixed roles already exceed n.
func roleCounts(cfg Config, n int, testMode bool) map[Role]int {
	if testMode && n == cfg.MinPlayersTest {
		return map[Role]int{
			RoleWolf: 1,
			RoleFox:  1,
			RoleHare: 1,
		}
	}

	counts := map[Role]int{
		RoleWolf:   atLeastOne(int(float64(n) * cfg.WolfShare)),
		RoleFox:    atLeastOne(int(float64(n) * cfg.FoxShare)),
		RoleMole:   atLeastOne(int(float64(n) * cfg.MoleShare)),
		RoleBeaver: atLeastOne(int(float64(n) * cfg.BeaverShare)),
	}

	fixed := counts[RoleWolf] + counts[RoleFox] + counts[RoleMole] + counts[RoleBeaver]
	if hares := n - fixed; hares > 0 {
		counts[RoleHare] = hares
	}

	return counts
}

func atLeastOne(n int) int {
	if n < 1 {
		return 1
	}
	return n
}

// assignRoles shuffles the player list with the game's seedable source and
// assigns roles by position. Legal only with a valid player count.
func (g *Game) assignRoles(cfg Config, rnd *rand.Rand) error {
	n := len(g.Players)

	min := cfg.MinPlayers
	if g.TestMode {
		min = cfg.MinPlayersTest
	}

	if n < min {
		return ErrInsufficientPlayers
	}

	if n > cfg.MaxPlayers {
		return ErrTooManyPlayers
	}

	players := make([]*Player, 0, n)
	for _, p := range g.Players {
		players = append(players, p)
	}

	// map iteration order is random but not seedable, sort before shuffling
	// so a fixed seed reproduces the assignment
	sort.Slice(players, func(i, j int) bool {
		return players[i].UserID < players[j].UserID
	})
	rnd.Shuffle(len(players), func(i, j int) {
		players[i], players[j] = players[j], players[i]
	})

	roles := make([]Role, 0, n)
	counts := roleCounts(cfg, n, g.TestMode)
	for _, role := range []Role{RoleWolf, RoleFox, RoleMole, RoleBeaver, RoleHare} {
		for i := 0; i < counts[role] && len(roles) < n; i++ {
			roles = append(roles, role)
		}
	}

	for i, p := range players {
		p.Role = roles[i]
		p.Team = roles[i].TeamOf()
	}

	return nil
}
