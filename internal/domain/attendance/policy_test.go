package attendance

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecordAttended(t *testing.T) {
	next, rewarded := RecordAttended(4)
	assert.Equal(t, 0, next)
	assert.True(t, rewarded)
	assert.Equal(t, RightsRegular, RightsFor(next))

	next, rewarded = RecordAttended(1)
	assert.Equal(t, 2, next)
	assert.False(t, rewarded)

	next, _ = RecordAttended(-3)
	assert.Equal(t, -2, next)
}

func TestRecordMissed(t *testing.T) {
	assert.Equal(t, 0, RecordMissed(3), "positive balance is forfeited")
	assert.Equal(t, -1, RecordMissed(0))

	next := RecordMissed(-2)
	assert.Equal(t, -3, next)
	assert.Equal(t, RightsSuspended, RightsFor(next))

	assert.Equal(t, -3, RecordMissed(-3), "floor holds")
	assert.Equal(t, RightsSuspended, RightsFor(RecordMissed(-3)))
}

func TestRightsFor(t *testing.T) {
	assert.Equal(t, RightsSuspended, RightsFor(-3))
	assert.Equal(t, RightsRegular, RightsFor(-2))
	assert.Equal(t, RightsRegular, RightsFor(5))
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Validate(-3))
	assert.NoError(t, Validate(5))
	assert.ErrorIs(t, Validate(-4), ErrOutOfRange)
	assert.ErrorIs(t, Validate(6), ErrOutOfRange)
}

func TestCounterStaysInBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	a := 0
	for i := 0; i < 10000; i++ {
		if rng.Intn(2) == 0 {
			a, _ = RecordAttended(a)
		} else {
			a = RecordMissed(a)
		}
		assert.GreaterOrEqual(t, a, Min)
		assert.LessOrEqual(t, a, Max)
		assert.Less(t, a, RewardThreshold, "threshold always resets")
	}
}
