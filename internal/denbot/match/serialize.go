package match

import "github.com/den-games/denbot/internal/database/gamestate/model"

// ToState freezes the session for the state store. Everything the game needs
// lives in the engine snapshot, the session adds its chat metadata.
func (r *Session) ToState() model.State {
	return model.State{
		Snapshot:   r.ctrl.Snapshot(),
		AuthorID:   r.Config.AuthorID,
		AuthorName: r.Config.AuthorName,
		CreatedAt:  r.CreatedAt,
	}
}
