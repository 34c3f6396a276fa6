package resource

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseQueryData(t *testing.T) {
	t.Parallel()

	prefix, targetID, ok := ParseQueryData(NightQueryData(42))
	require.True(t, ok)
	require.Equal(t, NightQueryPrefix, prefix)
	require.EqualValues(t, 42, targetID)

	prefix, targetID, ok = ParseQueryData(VoteQueryData(0))
	require.True(t, ok)
	require.Equal(t, VoteQueryPrefix, prefix)
	require.EqualValues(t, 0, targetID)

	for _, data := range []string{"", "night", "night:", "night:abc", "unknown:1", "vote:1:2"} {
		_, _, ok := ParseQueryData(data)
		require.False(t, ok, "data %q", data)
	}
}

func TestNightKeyboardAlwaysOffersSkip(t *testing.T) {
	t.Parallel()

	markup := NightKeyboard([]TargetButton{{ID: 1, Name: "a"}, {ID: 2, Name: "b"}})
	require.Len(t, markup.InlineKeyboard, 3)

	last := markup.InlineKeyboard[len(markup.InlineKeyboard)-1]
	require.Len(t, last, 1)
	require.Equal(t, NightQueryData(0), *last[0].CallbackData)

	markup = VoteKeyboard(nil)
	require.Len(t, markup.InlineKeyboard, 1)
	require.Equal(t, VoteQueryData(0), *markup.InlineKeyboard[0][0].CallbackData)
}
