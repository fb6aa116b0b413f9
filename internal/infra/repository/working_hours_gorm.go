package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/barber-booking/internal/domain/schedule"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type WorkingHoursGormRepository struct {
	db *gorm.DB
}

func NewWorkingHoursGormRepository(db *gorm.DB) *WorkingHoursGormRepository {
	return &WorkingHoursGormRepository{db: db}
}

func (r *WorkingHoursGormRepository) Transaction(
	ctx context.Context,
	fn func(tx schedule.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&WorkingHoursGormRepository{db: tx})
	})
}

func (r *WorkingHoursGormRepository) GetWorkingHours(
	ctx context.Context,
	date string,
) (*models.WorkingHours, error) {
	wh, err := findWorkingHours(r.db.WithContext(ctx), date)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, schedule.ErrNotFound
	}
	return wh, err
}

func (r *WorkingHoursGormRepository) LockWorkingHours(
	ctx context.Context,
	date string,
	fallback *models.WorkingHours,
) (*models.WorkingHours, error) {
	wh, err := lockWorkingHours(r.db.WithContext(ctx), date, fallback)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, schedule.ErrNotFound
	}
	return wh, err
}

func (r *WorkingHoursGormRepository) SaveWorkingHours(
	ctx context.Context,
	wh *models.WorkingHours,
) error {
	return r.db.WithContext(ctx).Save(wh).Error
}

// --------------------------------------------------
// Shared helpers
// --------------------------------------------------

func findWorkingHours(db *gorm.DB, date string) (*models.WorkingHours, error) {
	var wh models.WorkingHours
	if err := db.Where("date = ?", date).First(&wh).Error; err != nil {
		return nil, err
	}
	return &wh, nil
}

// lockWorkingHours makes sure the date has a row, then takes the row lock
// that serializes every writer of that date.
func lockWorkingHours(db *gorm.DB, date string, fallback *models.WorkingHours) (*models.WorkingHours, error) {
	if fallback != nil {
		seed := *fallback
		seed.ID = 0
		seed.Date = date
		if err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "date"}},
			DoNothing: true,
		}).Create(&seed).Error; err != nil {
			return nil, err
		}
	}

	var wh models.WorkingHours
	if err := db.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("date = ?", date).
		First(&wh).Error; err != nil {
		return nil, err
	}
	return &wh, nil
}

// Compile-time check
var _ schedule.Repository = (*WorkingHoursGormRepository)(nil)
