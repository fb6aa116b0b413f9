package audit_test

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/testutil"
)

func TestDispatcherPersistsEvents(t *testing.T) {
	db := testutil.NewDB(t)
	d := audit.NewDispatcher(audit.New(db), zerolog.Nop())

	userID, apID := uint(3), uint(9)
	d.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "appointment_booked",
		Entity:   "appointment",
		EntityID: &apID,
		Metadata: map[string]any{"time_slot": "10:20"},
	})
	d.Close()

	var logs []models.AuditLog
	require.NoError(t, db.Find(&logs).Error)
	require.Len(t, logs, 1)
	assert.Equal(t, "appointment_booked", logs[0].Action)
	assert.Equal(t, apID, *logs[0].EntityID)
	assert.JSONEq(t, `{"time_slot":"10:20"}`, logs[0].Metadata)
}

func TestNilDispatcherIgnoresEvents(t *testing.T) {
	var d *audit.Dispatcher
	assert.NotPanics(t, func() { d.Dispatch(audit.Event{Action: "noop"}) })
}
