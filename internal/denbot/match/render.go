package match

import (
	"fmt"

	"github.com/den-games/denbot/internal/denbot/game"
	"github.com/den-games/denbot/internal/denbot/resource"
	"github.com/den-games/denbot/internal/strpool"
)

func (r *Session) renderWolfPack(wolves []int64, self int64) string {
	buf := strpool.Get()
	defer func() {
		buf.Reset()
		strpool.Put(buf)
	}()

	for _, id := range wolves {
		if id == self {
			continue
		}
		buf.WriteString(resource.IconWolf)
		buf.WriteString(" ")
		buf.WriteString(r.playerName(id))
		buf.WriteString("\n")
	}

	return buf.String()
}

func (r *Session) renderGameOver(ev game.GameOver) string {
	buf := strpool.Get()
	defer func() {
		buf.Reset()
		strpool.Put(buf)
	}()

	switch ev.Reason {
	case game.ReasonTimeLimit:
		buf.WriteString(resource.TextReasonTimeLimit)
		buf.WriteString("\n\n")
	case game.ReasonRoundLimit:
		buf.WriteString(resource.TextReasonRoundLimit)
		buf.WriteString("\n\n")
	case game.ReasonLastPair:
		buf.WriteString(resource.TextReasonLastPair)
		buf.WriteString("\n\n")
	case game.ReasonFewSurvivors:
		buf.WriteString(resource.TextReasonFewSurvivors)
		buf.WriteString("\n\n")
	}

	if ev.Winner == game.TeamPredators {
		buf.WriteString(resource.TextPredatorsWonMsg)
	} else {
		buf.WriteString(resource.TextHerbivoresWonMsg)
	}

	buf.WriteString(resource.TextGameOverRoles)
	for _, p := range r.ctrl.Snapshot().Players {
		role := p.Role.String()
		_, _ = fmt.Fprintf(buf, "%s %s - %s", resource.RoleIcon(role), p.FirstName, resource.RoleName(role))
		if !p.Alive {
			buf.WriteString(" ")
			buf.WriteString(resource.IconGrave)
		}
		buf.WriteString("\n")
	}

	return buf.String()
}
