package user

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/user"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/infra/cache"
	"github.com/BruksfildServices01/barber-booking/internal/infra/repository"
	"github.com/BruksfildServices01/barber-booking/internal/testutil"
)

func TestUpdateAttendance(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	users := cache.NewMemoryUserCache(time.Minute)
	uc := NewUpdateAttendance(repository.NewUserGormRepository(db), users, nil, zerolog.Nop())

	u := testutil.CreateUser(t, db, "ana@example.com", 0)
	require.NoError(t, users.Put(ctx, domain.VerifiedFrom(u)))

	t.Run("suspends at the floor and invalidates the cache", func(t *testing.T) {
		got, err := uc.Execute(ctx, UpdateAttendanceInput{UserID: u.ID, Attendance: -3})
		require.NoError(t, err)
		assert.Equal(t, -3, got.Attendance)
		assert.True(t, got.IsSuspended())

		cached, err := users.Get(ctx, u.ID)
		require.NoError(t, err)
		assert.Nil(t, cached)
	})

	t.Run("lifting restores regular rights", func(t *testing.T) {
		got, err := uc.Execute(ctx, UpdateAttendanceInput{UserID: u.ID, Attendance: 5})
		require.NoError(t, err)
		assert.Equal(t, "regular", got.Rights)
	})

	t.Run("rejections", func(t *testing.T) {
		for _, v := range []int{-4, 6} {
			_, err := uc.Execute(ctx, UpdateAttendanceInput{UserID: u.ID, Attendance: v})
			assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidAttendance), "value %d", v)
		}

		_, err := uc.Execute(ctx, UpdateAttendanceInput{UserID: 999, Attendance: 0})
		assert.True(t, httperr.IsBusiness(err, httperr.CodeUserNotFound))
	})
}
