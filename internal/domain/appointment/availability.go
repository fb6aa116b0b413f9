package appointment

import (
	"slices"

	"github.com/BruksfildServices01/barber-booking/internal/domain/schedule"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// AvailabilityInput is everything the engine needs for one date.
// WorkingHours may be nil when the date has no stored document.
type AvailabilityInput struct {
	BaseSlots    []string
	Confirmed    []models.Appointment
	WorkingHours *models.WorkingHours
	Step         int
}

// ComputeAvailable derives the bookable slots of a day. Pending bookings
// are ignored; only confirmed ones occupy slots. The result is sorted and
// free of duplicates.
func ComputeAvailable(in AvailabilityInput) []string {
	available := make(map[string]struct{}, len(in.BaseSlots))
	for _, s := range in.BaseSlots {
		available[s] = struct{}{}
	}

	// double services first, then single ones
	for i := range in.Confirmed {
		ap := &in.Confirmed[i]
		if !isConfirmed(ap) || !ServiceType(ap.Type).IsDouble() {
			continue
		}
		for _, s := range Occupied(ap, in.Step) {
			delete(available, s)
		}
	}
	for i := range in.Confirmed {
		ap := &in.Confirmed[i]
		if !isConfirmed(ap) || ServiceType(ap.Type).IsDouble() {
			continue
		}
		delete(available, ap.TimeSlot)
	}

	for _, s := range schedule.OpenCustomSlots(in.WorkingHours) {
		available[s] = struct{}{}
	}

	if in.WorkingHours != nil {
		for _, b := range in.WorkingHours.BlockedSlots {
			delete(available, b.TimeSlot)
		}
	}

	out := make([]string, 0, len(available))
	for s := range available {
		out = append(out, s)
	}
	// zero-padded HH:MM sorts lexically in time order
	slices.Sort(out)
	return out
}

func isConfirmed(ap *models.Appointment) bool {
	return Status(ap.Status) == StatusConfirmed
}

// BookingRequest is a validated booking attempt.
type BookingRequest struct {
	TimeSlot string
	Type     ServiceType
}

// CheckBookable validates a request against the day's current state.
// Cadence slots accept any service; open custom slots are 30 minutes and
// accept only Beard. Hair and Beard needs the following cadence slot too.
func CheckBookable(req BookingRequest, in AvailabilityInput) error {
	onCadence := slices.Contains(in.BaseSlots, req.TimeSlot)
	custom := schedule.HasOpenCustomSlot(in.WorkingHours, req.TimeSlot)

	switch {
	case !onCadence && !custom:
		return httperr.ErrBusiness(httperr.CodeInvalidSlot)
	case !onCadence && req.Type != TypeBeard:
		return httperr.ErrBusiness(httperr.CodeInvalidSlot)
	}

	if schedule.IsBlocked(in.WorkingHours, req.TimeSlot) {
		return httperr.ErrBusiness(httperr.CodeSlotUnavailable)
	}

	occupied := occupiedSlots(in.Confirmed, in.Step)
	if _, taken := occupied[req.TimeSlot]; taken {
		return httperr.ErrBusiness(httperr.CodeSlotConflict)
	}

	if !req.Type.IsDouble() {
		return nil
	}

	probe := models.Appointment{TimeSlot: req.TimeSlot, Type: string(req.Type)}
	pair := Occupied(&probe, in.Step)
	if len(pair) != 2 || !onCadence || !slices.Contains(in.BaseSlots, pair[1]) {
		return httperr.ErrBusiness(httperr.CodeInvalidSlot)
	}
	if schedule.IsBlocked(in.WorkingHours, pair[1]) {
		return httperr.ErrBusiness(httperr.CodeSlotUnavailable)
	}
	if _, taken := occupied[pair[1]]; taken {
		return httperr.ErrBusiness(httperr.CodeSlotConflict)
	}
	return nil
}

func occupiedSlots(confirmed []models.Appointment, step int) map[string]struct{} {
	out := make(map[string]struct{})
	for i := range confirmed {
		ap := &confirmed[i]
		if !isConfirmed(ap) {
			continue
		}
		for _, s := range Occupied(ap, step) {
			out[s] = struct{}{}
		}
	}
	return out
}
