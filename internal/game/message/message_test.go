package message_test

import (
	"testing"

	"github.com/cory-johannsen/dungeon/internal/game/message"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLog_StacksConsecutiveDuplicates(t *testing.T) {
	l := message.NewLog()
	l.Add("That way is blocked.", message.Impossible)
	l.Add("That way is blocked.", message.Impossible)
	l.Add("You picked up the Dagger!", message.White)
	l.Add("That way is blocked.", message.Impossible)

	require.Equal(t, 3, l.Len())
	assert.Equal(t, "That way is blocked. (x2)", l.Messages[0].FullText())
	assert.Equal(t, "That way is blocked.", l.Messages[2].FullText())
}

func TestLog_Last(t *testing.T) {
	l := message.NewLog()
	for _, s := range []string{"a", "b", "c"} {
		l.Add(s, message.White)
	}
	last := l.Last(2)
	require.Len(t, last, 2)
	assert.Equal(t, "b", last[0].Text)
	assert.Equal(t, "c", last[1].Text)
	assert.Len(t, l.Last(10), 3)
	assert.Nil(t, l.Last(0))
}

func TestWrap(t *testing.T) {
	lines := message.Wrap("the quick brown fox jumps", 10)
	assert.Equal(t, []string{"the quick", "brown fox", "jumps"}, lines)
	assert.Equal(t, []string{"a", "b"}, message.Wrap("a\nb", 10))
}
