package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

func (r *AppointmentGormRepository) Transaction(
	ctx context.Context,
	fn func(tx domain.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&AppointmentGormRepository{db: tx})
	})
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}
	return err
}

// --------------------------------------------------
// Working hours
// --------------------------------------------------

func (r *AppointmentGormRepository) GetWorkingHours(
	ctx context.Context,
	date string,
) (*models.WorkingHours, error) {
	wh, err := findWorkingHours(r.db.WithContext(ctx), date)
	if err != nil {
		return nil, notFound(err)
	}
	return wh, nil
}

func (r *AppointmentGormRepository) LockWorkingHours(
	ctx context.Context,
	date string,
	fallback *models.WorkingHours,
) (*models.WorkingHours, error) {
	wh, err := lockWorkingHours(r.db.WithContext(ctx), date, fallback)
	if err != nil {
		return nil, notFound(err)
	}
	return wh, nil
}

func (r *AppointmentGormRepository) SaveWorkingHours(
	ctx context.Context,
	wh *models.WorkingHours,
) error {
	return r.db.WithContext(ctx).Save(wh).Error
}

func (r *AppointmentGormRepository) DeleteExpiredWorkingHours(
	ctx context.Context,
	now time.Time,
) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("expires_at < ?", now).
		Delete(&models.WorkingHours{})
	return res.RowsAffected, res.Error
}

// --------------------------------------------------
// Appointment
// --------------------------------------------------

func (r *AppointmentGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Create(ap).Error
}

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {
	var ap models.Appointment
	if err := r.db.WithContext(ctx).First(&ap, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) GetAppointmentByToken(
	ctx context.Context,
	token string,
) (*models.Appointment, error) {
	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Where("confirmation_hex = ?", token).
		First(&ap).Error; err != nil {
		return nil, notFound(err)
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Omit("User").Save(ap).Error
}

func (r *AppointmentGormRepository) DeleteAppointment(
	ctx context.Context,
	id uint,
) error {
	return r.db.WithContext(ctx).Delete(&models.Appointment{}, id).Error
}

func (r *AppointmentGormRepository) ListAppointmentsByDate(
	ctx context.Context,
	date string,
) ([]models.Appointment, error) {
	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("date = ?", date).
		Order("time_slot ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *AppointmentGormRepository) ListConfirmedByDate(
	ctx context.Context,
	date string,
) ([]models.Appointment, error) {
	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Where("date = ? AND status = ?", date, string(domain.StatusConfirmed)).
		Order("time_slot ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *AppointmentGormRepository) ListExpired(
	ctx context.Context,
	now time.Time,
) ([]models.Appointment, error) {
	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Where("expires_at < ?", now).
		Order("id ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

// --------------------------------------------------
// Slot claims
// --------------------------------------------------

func (r *AppointmentGormRepository) ClaimSlots(
	ctx context.Context,
	appointmentID uint,
	date string,
	slots []string,
) error {
	claims := make([]models.SlotClaim, 0, len(slots))
	for _, s := range slots {
		claims = append(claims, models.SlotClaim{
			Date:          date,
			TimeSlot:      s,
			AppointmentID: appointmentID,
		})
	}
	return r.db.WithContext(ctx).Create(&claims).Error
}

func (r *AppointmentGormRepository) ReleaseClaims(
	ctx context.Context,
	appointmentID uint,
) error {
	return r.db.WithContext(ctx).
		Where("appointment_id = ?", appointmentID).
		Delete(&models.SlotClaim{}).Error
}

// --------------------------------------------------
// User / Price
// --------------------------------------------------

func (r *AppointmentGormRepository) GetUser(
	ctx context.Context,
	id uint,
) (*models.User, error) {
	var u models.User
	if err := r.db.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}

func (r *AppointmentGormRepository) SaveUser(
	ctx context.Context,
	u *models.User,
) error {
	return r.db.WithContext(ctx).Save(u).Error
}

func (r *AppointmentGormRepository) GetPrice(
	ctx context.Context,
	serviceType string,
) (*models.Price, error) {
	var p models.Price
	if err := r.db.WithContext(ctx).
		Where("type = ?", serviceType).
		First(&p).Error; err != nil {
		return nil, notFound(err)
	}
	return &p, nil
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
