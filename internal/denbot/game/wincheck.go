package game

import "time"

// winCheck is a pure function of the game state. The first condition that
// fires in priority order decides: predator parity, wolves extinct, then the
// auto-termination thresholds.
func (g *Game) winCheck(cfg Config, now time.Time) (Team, EndReason, bool) {
	wolves := g.AliveWolves()
	others := g.AliveCount() - wolves

	if wolves >= others && wolves > 0 {
		return TeamPredators, ReasonPredatorParity, true
	}

	if wolves == 0 {
		return TeamHerbivores, ReasonWolvesDead, true
	}

	if g.AliveCount() < 3 {
		predators := g.AliveByTeam(TeamPredators)
		herbivores := g.AliveByTeam(TeamHerbivores)
		if predators > herbivores {
			return TeamPredators, ReasonFewSurvivors, true
		}
		return TeamHerbivores, ReasonFewSurvivors, true
	}

	if !g.StartedAt.IsZero() && now.Sub(g.StartedAt) > cfg.MaxGameDuration {
		return TeamHerbivores, ReasonTimeLimit, true
	}

	if g.Round > cfg.MaxRounds {
		return TeamHerbivores, ReasonRoundLimit, true
	}

	if g.AliveByTeam(TeamPredators) == 1 && g.AliveByTeam(TeamHerbivores) == 1 {
		return TeamHerbivores, ReasonLastPair, true
	}

	return 0, "", false
}
