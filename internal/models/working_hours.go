package models

import "time"

// WorkingHours is the per-date schedule aggregate. The custom slot lists
// are provisional bookkeeping owned by the appointments that created them.
type WorkingHours struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Date string `gorm:"size:10;uniqueIndex;not null" json:"date"`

	StartTime  string `gorm:"size:5;not null" json:"start_time"`
	EndTime    string `gorm:"size:5;not null" json:"end_time"`
	BreakStart string `gorm:"size:5" json:"break_start"`
	BreakEnd   string `gorm:"size:5" json:"break_end"`

	ShiftedSlots      []ShiftedSlot      `gorm:"type:text;serializer:json" json:"shifted_slots"`
	IntermediateSlots []IntermediateSlot `gorm:"type:text;serializer:json" json:"intermediate_slots"`
	BlockedSlots      []BlockedSlot      `gorm:"type:text;serializer:json" json:"blocked_slots"`

	ExpiresAt time.Time `gorm:"index" json:"expires_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ShiftedSlot struct {
	OriginalTime              string `json:"original_time"`
	ShiftedTime               string `json:"shifted_time"`
	CreatedDueToAppointmentID uint   `json:"created_due_to_appointment_id"`
	IsBooked                  bool   `json:"is_booked"`
	BookedAppointmentID       *uint  `json:"booked_appointment_id,omitempty"`
}

type IntermediateSlot struct {
	SlotTime                  string `json:"slot_time"`
	CreatedDueToAppointmentID uint   `json:"created_due_to_appointment_id"`
	IsBooked                  bool   `json:"is_booked"`
	BookedAppointmentID       *uint  `json:"booked_appointment_id,omitempty"`
}

// BlockedSlot with a nil BlockedBy was withheld manually by an admin.
type BlockedSlot struct {
	TimeSlot  string `json:"time_slot"`
	BlockedBy *uint  `json:"blocked_by,omitempty"`
	Date      string `json:"date"`
}
