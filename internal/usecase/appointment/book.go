package appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/domain/slot"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/metrics"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/notify"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

const (
	tokenAlphabet = "0123456789abcdef"
	tokenLength   = 48
)

// ======================================================
// INPUT
// ======================================================

type BookInput struct {
	UserID   uint
	Date     string
	TimeSlot string
	Type     string
}

// ======================================================
// USE CASE
// ======================================================

type BookAppointment struct {
	repo     domain.Repository
	notifier notify.Notifier
	audit    *audit.Dispatcher
	settings Settings
	log      zerolog.Logger

	now      func() time.Time
	newToken func() (string, error)
}

func NewBookAppointment(
	repo domain.Repository,
	notifier notify.Notifier,
	audit *audit.Dispatcher,
	settings Settings,
	log zerolog.Logger,
) *BookAppointment {
	return &BookAppointment{
		repo:     repo,
		notifier: notifier,
		audit:    audit,
		settings: settings,
		log:      log.With().Str("component", "booking").Logger(),
		now:      settings.clock(),
		newToken: func() (string, error) {
			return gonanoid.Generate(tokenAlphabet, tokenLength)
		},
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *BookAppointment) Execute(
	ctx context.Context,
	in BookInput,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// Input
	// --------------------------------------------------
	serviceType, err := domain.ParseServiceType(in.Type)
	if err != nil {
		return nil, err
	}

	loc := uc.settings.location()
	if _, err := validateDate(in.Date, loc); err != nil {
		return nil, err
	}
	if _, err := slot.MinutesSinceMidnight(in.TimeSlot); err != nil {
		return nil, err
	}

	start, err := timezone.At(in.Date, in.TimeSlot, loc)
	if err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidFormat)
	}

	now := uc.now()
	if start.Before(now) {
		return nil, httperr.ErrBusiness(httperr.CodeSlotInPast)
	}

	// --------------------------------------------------
	// Customer
	// --------------------------------------------------
	user, err := uc.repo.GetUser(ctx, in.UserID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, httperr.ErrBusiness(httperr.CodeUserNotFound)
	}
	if err != nil {
		return nil, err
	}
	if user.IsSuspended() {
		return nil, httperr.ErrBusiness(httperr.CodeForbidden)
	}

	// --------------------------------------------------
	// Slot
	// --------------------------------------------------
	day, err := loadDay(ctx, uc.repo, uc.settings, in.Date)
	if err != nil {
		return nil, err
	}

	req := domain.BookingRequest{TimeSlot: in.TimeSlot, Type: serviceType}
	if err := domain.CheckBookable(req, day); err != nil {
		if httperr.IsBusiness(err, httperr.CodeSlotConflict) {
			metrics.IncSlotConflict()
		}
		return nil, err
	}

	// a missing price is quoted as zero
	var price float64
	if p, err := uc.repo.GetPrice(ctx, string(serviceType)); err == nil {
		price = p.Price
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("get price: %w", err)
	}

	// --------------------------------------------------
	// Pending booking
	// --------------------------------------------------
	token, err := uc.newToken()
	if err != nil {
		return nil, fmt.Errorf("generate confirmation token: %w", err)
	}

	ap := domain.NewPending(user.ID, serviceType, in.Date, in.TimeSlot, token, now, uc.settings.PendingTTL)
	if err := uc.repo.CreateAppointment(ctx, ap); err != nil {
		return nil, fmt.Errorf("create appointment: %w", err)
	}

	// --------------------------------------------------
	// Confirmation email
	// --------------------------------------------------
	msg := notify.Confirmation{
		Email:    user.Email,
		Name:     user.FullName(),
		Date:     ap.Date,
		TimeSlot: ap.TimeSlot,
		Type:     ap.Type,
		Price:    price,
		Link:     uc.settings.confirmationLink(token),
	}
	if err := uc.notifier.SendConfirmation(ctx, msg); err != nil {
		if delErr := uc.repo.DeleteAppointment(ctx, ap.ID); delErr != nil {
			uc.log.Error().Err(delErr).Uint("appointment_id", ap.ID).Msg("remove unconfirmable booking")
		}
		return nil, err
	}

	metrics.IncBookingRequested(ap.Type)

	uc.audit.Dispatch(audit.Event{
		UserID:   &user.ID,
		Action:   "appointment_booked",
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]string{"date": ap.Date, "time_slot": ap.TimeSlot, "type": ap.Type},
	})

	return ap, nil
}
