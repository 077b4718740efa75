package services

import "errors"

// Common service errors
var (
	ErrNotFound            = errors.New("record not found")
	ErrInvalidPassword     = errors.New("invalid password")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrInvalidState        = errors.New("invalid state transition")
	ErrDuplicate           = errors.New("duplicate record")
	ErrInvalidFrequency    = errors.New("unknown payment frequency")
	ErrInvalidPeriod       = errors.New("contract end date must be after start date")
	ErrInvalidRent         = errors.New("rent amount must be greater than zero")
	ErrScheduleIncomplete  = errors.New("installment schedule is incomplete")
	ErrHasContracts        = errors.New("record has linked contracts")
	ErrPropertyUnavailable = errors.New("property is not available for rent")
)
