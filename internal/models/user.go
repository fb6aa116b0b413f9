package models

import (
	"time"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/domain/attendance"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Firstname    string `gorm:"size:100;not null" json:"firstname"`
	Lastname     string `gorm:"size:100" json:"lastname"`
	Email        string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	Role         string `gorm:"size:20;default:'user'" json:"role"`

	Attendance int    `gorm:"not null" json:"attendance"`
	Rights     string `gorm:"size:20;default:'regular'" json:"rights"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeSave keeps Rights derived from Attendance on every create and update.
func (u *User) BeforeSave(tx *gorm.DB) error {
	u.Rights = string(attendance.RightsFor(u.Attendance))
	return nil
}

func (u *User) IsSuspended() bool {
	return u.Rights == string(attendance.RightsSuspended)
}

func (u *User) FullName() string {
	if u.Lastname == "" {
		return u.Firstname
	}
	return u.Firstname + " " + u.Lastname
}
