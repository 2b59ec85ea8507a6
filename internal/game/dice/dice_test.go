package dice_test

import (
	"testing"

	"github.com/cory-johannsen/dungeon/internal/game/dice"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gopkg.in/yaml.v3"
	"pgregory.net/rapid"
)

func TestNewRange_SwapsInvertedBounds(t *testing.T) {
	r := dice.NewRange(5, 2)
	assert.Equal(t, dice.Range{Lo: 2, Hi: 5}, r)
}

func TestRange_String(t *testing.T) {
	assert.Equal(t, "3", dice.Fixed(3).String())
	assert.Equal(t, "10-15", dice.NewRange(10, 15).String())
}

func TestRange_Arithmetic(t *testing.T) {
	r := dice.NewRange(2, 3)
	assert.Equal(t, dice.NewRange(5, 6), r.AddInt(3))
	assert.Equal(t, dice.NewRange(3, 7), r.Add(dice.NewRange(1, 4)))
	assert.Equal(t, dice.NewRange(3, 4), r.Scale(1.5))
	assert.Panics(t, func() { r.Scale(0.5) })
}

func TestRange_Compare(t *testing.T) {
	assert.Equal(t, 0, dice.NewRange(1, 2).Compare(dice.NewRange(1, 2)))
	assert.Equal(t, -1, dice.NewRange(1, 2).Compare(dice.NewRange(1, 3)))
	assert.Equal(t, 1, dice.NewRange(2, 2).Compare(dice.NewRange(1, 9)))
	assert.True(t, dice.Range{}.IsZero())
	assert.False(t, dice.Fixed(1).IsZero())
}

func TestParseRange(t *testing.T) {
	cases := []struct {
		in   string
		want dice.Range
	}{
		{"4", dice.Fixed(4)},
		{"3-4", dice.NewRange(3, 4)},
		{"10-30", dice.NewRange(10, 30)},
		{"-1", dice.Fixed(-1)},
		{"-3--1", dice.NewRange(-3, -1)},
		{"9-2", dice.NewRange(2, 9)},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := dice.ParseRange(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
	_, err := dice.ParseRange("x-y")
	assert.Error(t, err)
	_, err = dice.ParseRange("")
	assert.Error(t, err)
}

func TestRange_YAML(t *testing.T) {
	var doc struct {
		A dice.Range `yaml:"a"`
		B dice.Range `yaml:"b"`
	}
	require.NoError(t, yaml.Unmarshal([]byte("a: 3\nb: 10-15\n"), &doc))
	assert.Equal(t, dice.Fixed(3), doc.A)
	assert.Equal(t, dice.NewRange(10, 15), doc.B)

	out, err := yaml.Marshal(doc)
	require.NoError(t, err)
	assert.Contains(t, string(out), "b: 10-15")
}

func TestRange_SampleWithinBounds_Property(t *testing.T) {
	src := dice.NewSeededSource(7)
	rapid.Check(t, func(rt *rapid.T) {
		a := rapid.IntRange(-50, 50).Draw(rt, "a")
		b := rapid.IntRange(-50, 50).Draw(rt, "b")
		r := dice.NewRange(a, b)
		v := r.Sample(src)
		assert.GreaterOrEqual(rt, v, r.Lo)
		assert.LessOrEqual(rt, v, r.Hi)
	})
}

func TestSeededSource_Deterministic(t *testing.T) {
	a := dice.NewSeededSource(42)
	b := dice.NewSeededSource(42)
	for i := 0; i < 50; i++ {
		assert.Equal(t, a.Intn(1000), b.Intn(1000))
	}
	assert.Panics(t, func() { a.Intn(0) })
}

func TestCryptoSource_Bounds(t *testing.T) {
	src := dice.NewCryptoSource()
	for i := 0; i < 100; i++ {
		v := src.Intn(6)
		assert.GreaterOrEqual(t, v, 0)
		assert.Less(t, v, 6)
	}
	assert.Panics(t, func() { src.Intn(-1) })
}

func TestChance_Extremes(t *testing.T) {
	src := dice.NewSeededSource(1)
	for i := 0; i < 20; i++ {
		assert.False(t, dice.Chance(src, 0))
		assert.True(t, dice.Chance(src, 1))
	}
}

func TestWeightedIndex(t *testing.T) {
	src := dice.NewSeededSource(3)
	assert.Equal(t, -1, dice.WeightedIndex(src, []int{0, 0}))
	for i := 0; i < 50; i++ {
		assert.Equal(t, 1, dice.WeightedIndex(src, []int{0, 5, -2}))
	}
}

func TestRandInt_Property(t *testing.T) {
	src := dice.NewSeededSource(11)
	rapid.Check(t, func(rt *rapid.T) {
		lo := rapid.IntRange(-10, 10).Draw(rt, "lo")
		hi := rapid.IntRange(lo, lo+20).Draw(rt, "hi")
		v := dice.RandInt(src, lo, hi)
		assert.GreaterOrEqual(rt, v, lo)
		assert.LessOrEqual(rt, v, hi)
	})
}

func TestLoggedSource_LogsDraws(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	src := dice.NewLoggedSource(dice.NewSeededSource(5), zap.New(core))

	v := dice.NewRange(1, 6).Sample(src)
	assert.GreaterOrEqual(t, v, 1)
	assert.LessOrEqual(t, v, 6)

	entries := logs.FilterMessage("random draw").All()
	require.Len(t, entries, 1)
	assert.Equal(t, int64(6), entries[0].ContextMap()["n"])
	assert.Equal(t, int64(v-1), entries[0].ContextMap()["result"])
}
