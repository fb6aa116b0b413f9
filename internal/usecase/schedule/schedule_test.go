package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/schedule"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/infra/repository"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/testutil"
)

var (
	now      = time.Date(2026, 3, 9, 12, 0, 0, 0, time.UTC)
	defaults = domain.Defaults{StartTime: "09:00", EndTime: "18:20", Step: 40, TTL: 60 * 24 * time.Hour}
)

func fixedClock() time.Time { return now }

func assertCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, code), "want %s, got %v", code, err)
}

func TestSetAndGetWorkingHours(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewWorkingHoursGormRepository(testutil.NewDB(t))

	set := NewSetWorkingHours(repo, nil, defaults, "UTC")
	set.now = fixedClock
	get := NewGetWorkingHours(repo, "UTC")

	_, err := get.Execute(ctx, "2026-03-10")
	assertCode(t, err, httperr.CodeWorkingHoursNotFound)

	wh, err := set.Execute(ctx, SetWorkingHoursInput{
		Date:       "2026-03-10",
		StartTime:  "10:00",
		EndTime:    "16:00",
		BreakStart: "12:00",
		BreakEnd:   "13:00",
	})
	require.NoError(t, err)
	assert.Equal(t, now.Add(defaults.TTL), wh.ExpiresAt)

	got, err := get.Execute(ctx, "2026-03-10")
	require.NoError(t, err)
	assert.Equal(t, "10:00", got.StartTime)
	assert.Equal(t, "13:00", got.BreakEnd)

	// a second call updates the same row
	_, err = set.Execute(ctx, SetWorkingHoursInput{Date: "2026-03-10", StartTime: "08:00", EndTime: "12:00"})
	require.NoError(t, err)
	got, err = get.Execute(ctx, "2026-03-10")
	require.NoError(t, err)
	assert.Equal(t, wh.ID, got.ID)
	assert.Equal(t, "08:00", got.StartTime)
	assert.Empty(t, got.BreakStart)

	t.Run("validation", func(t *testing.T) {
		cases := []SetWorkingHoursInput{
			{Date: "2026-03-32", StartTime: "09:00", EndTime: "18:00"},
			{Date: "2026-03-10", StartTime: "18:00", EndTime: "09:00"},
			{Date: "2026-03-10", StartTime: "09:00", EndTime: "18:00", BreakStart: "12:00"},
			{Date: "2026-03-10", StartTime: "09:00", EndTime: "18:00", BreakStart: "08:00", BreakEnd: "10:00"},
			{Date: "2026-03-10", StartTime: "9h", EndTime: "18:00"},
		}
		for _, in := range cases {
			_, err := set.Execute(ctx, in)
			assertCode(t, err, httperr.CodeInvalidFormat)
		}

		_, err := get.Execute(ctx, "tomorrow")
		assertCode(t, err, httperr.CodeInvalidFormat)
	})
}

func TestBlockAndUnblockSlot(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewWorkingHoursGormRepository(testutil.NewDB(t))

	block := NewBlockSlot(repo, nil, defaults, "UTC")
	block.now = fixedClock
	unblock := NewUnblockSlot(repo, nil, defaults, "UTC")
	unblock.now = fixedClock

	_, err := unblock.Execute(ctx, BlockSlotInput{Date: "2026-03-10", TimeSlot: "09:40"})
	assertCode(t, err, httperr.CodeBlockNotFound)

	// blocking creates the date with default hours
	wh, err := block.Execute(ctx, BlockSlotInput{Date: "2026-03-10", TimeSlot: "09:40"})
	require.NoError(t, err)
	assert.Equal(t, "09:00", wh.StartTime)
	require.Len(t, wh.BlockedSlots, 1)
	assert.Nil(t, wh.BlockedSlots[0].BlockedBy)

	wh, err = block.Execute(ctx, BlockSlotInput{Date: "2026-03-10", TimeSlot: "09:40"})
	require.NoError(t, err)
	assert.Len(t, wh.BlockedSlots, 1)

	_, err = block.Execute(ctx, BlockSlotInput{Date: "2026-03-10", TimeSlot: "09:50"})
	assertCode(t, err, httperr.CodeInvalidSlot)

	wh, err = unblock.Execute(ctx, BlockSlotInput{Date: "2026-03-10", TimeSlot: "09:40"})
	require.NoError(t, err)
	assert.Empty(t, wh.BlockedSlots)

	_, err = unblock.Execute(ctx, BlockSlotInput{Date: "2026-03-10", TimeSlot: "09:40"})
	assertCode(t, err, httperr.CodeBlockNotFound)
}

func TestUnblockKeepsAppointmentBlocks(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	repo := repository.NewWorkingHoursGormRepository(db)

	owner := uint(7)
	wh := defaults.NewWorkingHours("2026-03-10", now)
	wh.BlockedSlots = append(wh.BlockedSlots, models.BlockedSlot{TimeSlot: "11:00", BlockedBy: &owner, Date: "2026-03-10"})
	require.NoError(t, db.Create(wh).Error)

	_, err := NewUnblockSlot(repo, nil, defaults, "UTC").Execute(ctx, BlockSlotInput{Date: "2026-03-10", TimeSlot: "11:00"})
	assertCode(t, err, httperr.CodeBlockNotFound)

	got, err := repo.GetWorkingHours(ctx, "2026-03-10")
	require.NoError(t, err)
	assert.Len(t, got.BlockedSlots, 1)
}
