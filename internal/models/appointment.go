package models

import "time"

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID uint  `gorm:"index;not null" json:"user_id"`
	User   *User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user,omitempty"`

	Type     string `gorm:"size:20;not null" json:"type"`
	Date     string `gorm:"size:10;index;not null" json:"date"`
	TimeSlot string `gorm:"size:5;not null" json:"time_slot"`
	Status   string `gorm:"size:20;default:'pending';index" json:"status"`

	// only set while pending
	ConfirmationHex *string `gorm:"size:64;uniqueIndex" json:"-"`

	BookedAt  time.Time `json:"booked_at"`
	ExpiresAt time.Time `gorm:"index" json:"expires_at"`

	AttendanceRecorded bool `gorm:"default:false" json:"attendance_recorded"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SlotClaim marks one (date, slot) pair as taken by a confirmed appointment.
type SlotClaim struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	Date          string `gorm:"size:10;not null;uniqueIndex:idx_slot_claims_date_slot" json:"date"`
	TimeSlot      string `gorm:"size:5;not null;uniqueIndex:idx_slot_claims_date_slot" json:"time_slot"`
	AppointmentID uint   `gorm:"index;not null" json:"appointment_id"`

	CreatedAt time.Time `json:"created_at"`
}
