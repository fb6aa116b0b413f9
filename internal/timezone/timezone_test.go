package timezone

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocationFallsBack(t *testing.T) {
	assert.Equal(t, "UTC", Location("UTC").String())
	assert.Equal(t, Location(DefaultTimezone).String(), Location("Mars/Olympus").String())
	assert.False(t, IsValid(""))
}

func TestParseDate(t *testing.T) {
	day, err := ParseDate("2026-03-10", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), day)

	_, err = ParseDate("10/03/2026", time.UTC)
	assert.Error(t, err)

	_, err = ParseDate("2026-02-30", time.UTC)
	assert.Error(t, err)
}

func TestAt(t *testing.T) {
	ts, err := At("2026-03-10", "10:40", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 10, 10, 40, 0, 0, time.UTC), ts)
}
