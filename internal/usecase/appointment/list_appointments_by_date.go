package appointment

import (
	"context"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/dto"
)

// ListAppointmentsByDate is the admin view of a day, customer data included.
type ListAppointmentsByDate struct {
	repo     domain.Repository
	settings Settings
}

func NewListAppointmentsByDate(
	repo domain.Repository,
	settings Settings,
) *ListAppointmentsByDate {
	return &ListAppointmentsByDate{
		repo:     repo,
		settings: settings,
	}
}

func (uc *ListAppointmentsByDate) Execute(
	ctx context.Context,
	date string,
) ([]dto.AppointmentListDTO, error) {

	if _, err := validateDate(date, uc.settings.location()); err != nil {
		return nil, err
	}

	appointments, err := uc.repo.ListAppointmentsByDate(ctx, date)
	if err != nil {
		return nil, err
	}

	out := make([]dto.AppointmentListDTO, 0, len(appointments))
	for _, ap := range appointments {
		out = append(out, dto.FromAppointment(ap, true))
	}

	return out, nil
}
