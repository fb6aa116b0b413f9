package appointment

import (
	"github.com/BruksfildServices01/barber-booking/internal/domain/schedule"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
)

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
)

// ===============================
// Service Types
// ===============================

type ServiceType string

const (
	TypeHair         ServiceType = "Hair"
	TypeBeard        ServiceType = "Beard"
	TypeHairAndBeard ServiceType = "Hair and Beard"
)

// HairAndBeardOverrun is how far a Hair and Beard service runs into the
// second cadence slot it consumes.
const HairAndBeardOverrun = 10

func ParseServiceType(s string) (ServiceType, error) {
	switch ServiceType(s) {
	case TypeHair, TypeBeard, TypeHairAndBeard:
		return ServiceType(s), nil
	}
	return "", httperr.ErrBusiness(httperr.CodeInvalidFormat)
}

// DurationMinutes is the chair time of the service.
func (t ServiceType) DurationMinutes() int {
	switch t {
	case TypeBeard:
		return schedule.CustomSlotMinutes
	case TypeHairAndBeard:
		return 50
	}
	return 40
}

func (t ServiceType) IsDouble() bool {
	return t == TypeHairAndBeard
}
