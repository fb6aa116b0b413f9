package appointment

import (
	"context"
	"fmt"
	"time"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/metrics"
)

type SweepResult struct {
	Pending      int   `json:"pending"`
	Confirmed    int   `json:"confirmed"`
	WorkingHours int64 `json:"working_hours"`
}

// SweepExpired applies the expiry contract: pending bookings past their
// TTL, confirmed bookings a day after their date and stale working
// hours documents are removed.
type SweepExpired struct {
	repo     domain.Repository
	settings Settings

	now func() time.Time
}

func NewSweepExpired(
	repo domain.Repository,
	settings Settings,
) *SweepExpired {
	return &SweepExpired{
		repo:     repo,
		settings: settings,
		now:      settings.clock(),
	}
}

func (uc *SweepExpired) Execute(ctx context.Context) (SweepResult, error) {
	var res SweepResult
	now := uc.now()

	expired, err := uc.repo.ListExpired(ctx, now)
	if err != nil {
		return res, fmt.Errorf("list expired: %w", err)
	}

	for i := range expired {
		ap := &expired[i]
		err := uc.repo.Transaction(ctx, func(tx domain.Repository) error {
			return removeAppointment(ctx, tx, uc.settings, ap, now)
		})
		if err != nil {
			return res, fmt.Errorf("remove appointment %d: %w", ap.ID, err)
		}

		if domain.Status(ap.Status) == domain.StatusConfirmed {
			res.Confirmed++
		} else {
			res.Pending++
		}
	}

	res.WorkingHours, err = uc.repo.DeleteExpiredWorkingHours(ctx, now)
	if err != nil {
		return res, fmt.Errorf("delete expired working hours: %w", err)
	}

	metrics.AddSwept(string(domain.StatusPending), res.Pending)
	metrics.AddSwept(string(domain.StatusConfirmed), res.Confirmed)

	return res, nil
}
