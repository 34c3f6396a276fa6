package game

// tallyVotes counts the pending votes and exiles the player with strictly
// the most of them. A tie, or skip winning, exiles no one. The vote buffer
// is cleared before returning.
func (g *Game) tallyVotes() []Event {
	tally := map[int64]int{}
	var skips int

	for voterID, targetID := range g.Votes {
		voter, ok := g.Players[voterID]
		if !ok || !voter.Alive {
			continue
		}
		if targetID == SkipTarget {
			skips++
			continue
		}
		tally[targetID]++
	}

	g.Votes = map[int64]int64{}

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

	if max == 0 || len(top) != 1 || skips >= max {
		return []Event{NoExile{}}
	}

	exiled, ok := g.Players[top[0]]
	if !ok || !exiled.Alive {
		return []Event{NoExile{}}
	}

	exiled.Alive = false
	return []Event{Exiled{UserID: exiled.UserID, Role: exiled.Role}}
}
