package match

import (
	"testing"

	"github.com/den-games/denbot/internal/denbot/game"
	"github.com/stretchr/testify/require"
)

func TestRenderRejectsUnknownEvent(t *testing.T) {
	t.Parallel()

	s := NewSession(Config{ChatID: 1, GameConfig: game.DefaultConfig()})

	require.Error(t, s.render(nil), "an event the renderer does not know must abort the game")
	require.NoError(t, s.render(game.NoExile{}))
}
