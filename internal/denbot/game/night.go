package game

import (
	"math/rand"
	"sort"
)

// resolveNight applies the four pending buffers in the fixed order wolves,
// fox, beaver, mole and returns the outcome events in resolution order. The
// wolves go first so later steps see their kill, the beaver follows the fox
// to act on up-to-date stolen supplies, the mole observes the final state.
// The buffers are cleared before returning.
func (g *Game) resolveNight(cfg Config, rnd *rand.Rand) []Event {
	var events []Event

	events = append(events, g.wolvesStep(rnd)...)
	events = append(events, g.foxStep()...)
	protected := map[int64]bool{}
	events = append(events, g.beaverStep(cfg, protected)...)
	events = append(events, g.moleStep()...)

	// bookkeeping: actors that acted tonight leave their den, protection
	// from the previous round expires, fresh protection survives into the
	// next night's legality checks
	for _, buffer := range []map[int64]int64{g.WolfTargets, g.FoxTargets, g.BeaverTargets, g.MoleTargets} {
		for actorID, targetID := range buffer {
			if targetID == SkipTarget {
				continue
			}
			if actor, ok := g.Players[actorID]; ok {
				actor.LastActionRound = g.Round
			}
		}
	}

	for id, p := range g.Players {
		p.BeaverProtected = protected[id]
	}

	g.clearNightBuffers()

	return events
}

// wolvesStep kills the target with strictly the most wolf votes, breaking
// ties uniformly. Round 1 is the quiet night: no kill.
func (g *Game) wolvesStep(rnd *rand.Rand) []Event {
	if g.Round == 1 {
		return nil
	}

	tally := map[int64]int{}
	for wolfID, targetID := range g.WolfTargets {
		wolf, ok := g.Players[wolfID]
		if !ok || !wolf.Alive || targetID == SkipTarget {
			continue
		}
		tally[targetID]++
	}

	if len(tally) == 0 {
		return nil
	}

	var top []int64
	var max int
	for targetID, votes := range tally {
		switch {
		case votes > max:
			max = votes
			top = []int64{targetID}
		case votes == max:
			top = append(top, targetID)
		}
	}

	sort.Slice(top, func(i, j int) bool { return top[i] < top[j] })
	victimID := top[rnd.Intn(len(top))]

	victim, ok := g.Players[victimID]
	if !ok || !victim.Alive {
		return nil
	}

	victim.Alive = false
	return []Event{WolfKill{Victim: victimID}}
}

func (g *Game) foxStep() []Event {
	var events []Event

	for _, foxID := range sortedActors(g.FoxTargets) {
		targetID := g.FoxTargets[foxID]
		fox, ok := g.Players[foxID]
		if !ok || !fox.Alive || targetID == SkipTarget {
			continue
		}

		target, ok := g.Players[targetID]
		switch {
		case !ok || !target.Alive || target.Supplies == 0:
			// the wolves may have got there first tonight
			events = append(events, FoxEmpty{FoxID: foxID, Target: targetID})
		case target.Role == RoleBeaver || target.BeaverProtected:
			events = append(events, FoxBlocked{FoxID: foxID, Target: targetID})
		default:
			target.Supplies--
			target.StolenSupplies++
			target.FoxStealCount++
			if target.Supplies == 0 {
				target.Alive = false
				events = append(events, FoxStarved{FoxID: foxID, Target: targetID})
			} else {
				events = append(events, FoxStolen{FoxID: foxID, Target: targetID})
			}
		}
	}

	return events
}

// beaverStep restores stolen supplies up to the storage cap and marks the
// target protected. The beaver runs after the fox on purpose: it undoes a
// steal it has observed, it never preempts one the same night.
func (g *Game) beaverStep(cfg Config, protected map[int64]bool) []Event {
	var events []Event

	for _, beaverID := range sortedActors(g.BeaverTargets) {
		targetID := g.BeaverTargets[beaverID]
		beaver, ok := g.Players[beaverID]
		if !ok || !beaver.Alive || targetID == SkipTarget {
			continue
		}

		target, ok := g.Players[targetID]
		switch {
		case !ok || !target.Alive:
			events = append(events, BeaverEmpty{BeaverID: beaverID, Target: targetID})
		case target.StolenSupplies == 0:
			events = append(events, BeaverNothingToRestore{BeaverID: beaverID, Target: targetID})
		default:
			amount := target.StolenSupplies
			if room := cfg.MaxSupplies - target.Supplies; amount > room {
				amount = room
			}
			target.Supplies += amount
			target.StolenSupplies -= amount
			protected[targetID] = true
			events = append(events, BeaverRestored{BeaverID: beaverID, Target: targetID, Amount: amount})
		}
	}

	return events
}

// moleStep is information only. A target that acted tonight is away from its
// den and only a hint is revealed, a target at home reveals its exact role.
func (g *Game) moleStep() []Event {
	var events []Event

	for _, moleID := range sortedActors(g.MoleTargets) {
		targetID := g.MoleTargets[moleID]
		mole, ok := g.Players[moleID]
		if !ok || !mole.Alive || targetID == SkipTarget {
			continue
		}

		target, ok := g.Players[targetID]
		if !ok || !target.Alive {
			events = append(events, MoleEmpty{MoleID: moleID, Target: targetID})
			continue
		}

		away := g.actedTonight(targetID)
		events = append(events, MoleReport{
			MoleID: moleID,
			Target: targetID,
			Role:   target.Role,
			Away:   away,
		})
	}

	return events
}

// actedTonight reports whether the player has a non-skip entry in tonight's
// buffers. LastActionRound is not yet updated when the mole step runs.
func (g *Game) actedTonight(userID int64) bool {
	for _, buffer := range []map[int64]int64{g.WolfTargets, g.FoxTargets, g.BeaverTargets, g.MoleTargets} {
		if targetID, ok := buffer[userID]; ok && targetID != SkipTarget {
			return true
		}
	}
	return false
}

// sortedActors fixes the per-step iteration order so event order is
// deterministic for a given seed.
func sortedActors(buffer map[int64]int64) []int64 {
	actors := make([]int64, 0, len(buffer))
	for id := range buffer {
		actors = append(actors, id)
	}
	sort.Slice(actors, func(i, j int) bool { return actors[i] < actors[j] })
	return actors
}
