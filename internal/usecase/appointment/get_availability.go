package appointment

import (
	"context"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/dto"
)

type GetAvailabilityInput struct {
	Date     string
	ViewerID uint
	Admin    bool
}

type GetAvailability struct {
	repo     domain.Repository
	settings Settings
}

func NewGetAvailability(
	repo domain.Repository,
	settings Settings,
) *GetAvailability {
	return &GetAvailability{
		repo:     repo,
		settings: settings,
	}
}

// Execute returns the bookable slots of a date together with the
// appointments the viewer may see: their own, or all of them for admins.
func (uc *GetAvailability) Execute(
	ctx context.Context,
	in GetAvailabilityInput,
) (*dto.DaySchedule, error) {

	if _, err := validateDate(in.Date, uc.settings.location()); err != nil {
		return nil, err
	}

	day, err := loadDay(ctx, uc.repo, uc.settings, in.Date)
	if err != nil {
		return nil, err
	}

	apps, err := uc.repo.ListAppointmentsByDate(ctx, in.Date)
	if err != nil {
		return nil, err
	}

	visible := make([]dto.AppointmentListDTO, 0, len(apps))
	for _, ap := range apps {
		if !in.Admin && ap.UserID != in.ViewerID {
			continue
		}
		visible = append(visible, dto.FromAppointment(ap, in.Admin))
	}

	return &dto.DaySchedule{
		Date:         in.Date,
		Slots:        domain.ComputeAvailable(day),
		Appointments: visible,
	}, nil
}
