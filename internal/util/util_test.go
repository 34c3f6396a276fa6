package util

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNoun(t *testing.T) {
	t.Parallel()

	cases := map[int]string{
		1:   "зверь",
		2:   "зверя",
		4:   "зверя",
		5:   "зверей",
		11:  "зверей",
		14:  "зверей",
		21:  "зверь",
		22:  "зверя",
		100: "зверей",
	}

	for n, want := range cases {
		require.Equal(t, want, Noun(n, "зверь", "зверя", "зверей"), "n=%d", n)
	}
}
