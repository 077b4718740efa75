package services

import (
	"context"
	"time"

	"github.com/monazzem/amlak-api/internal/models"
)

// ScheduleService handles installment schedule generation
type ScheduleService struct{}

// NewScheduleService creates a new schedule service
func NewScheduleService() *ScheduleService {
	return &ScheduleService{}
}

// GenerateSchedule derives the full installment set for a contract. The
// result depends only on the contract fields, so regenerating for the same
// contract always yields the same schedule.
//
// Installments fall due at the start of each billing period: the first on
// the contract start date, each next one a cadence step later, stopping
// before the end date. A short trailing period gets no prorated installment.
func (s *ScheduleService) GenerateSchedule(ctx context.Context, contract *models.Contract) ([]models.Installment, error) {
	step := contract.Step()
	if step == 0 {
		return nil, ErrInvalidFrequency
	}
	if contract.RentAmount <= 0 {
		return nil, ErrInvalidRent
	}

	start := models.DateOnly(contract.StartDate)
	end := models.DateOnly(contract.EndDate)
	if models.DurationMonths(start, end) <= 0 {
		return nil, ErrInvalidPeriod
	}

	amount := contract.InstallmentAmount()

	var installments []models.Installment
	for current := start; current.Before(end); current = AddCalendarMonths(current, step) {
		installments = append(installments, models.Installment{
			ContractID: contract.ID,
			DueDate:    current,
			Amount:     amount,
			Status:     models.InstallmentStatusPending,
		})
	}

	return installments, nil
}

// AddCalendarMonths advances a date by whole calendar months, clamping the
// day to the length of the target month. Unlike time.AddDate, Jan 31 plus
// three months lands on Apr 30, not May 1.
func AddCalendarMonths(t time.Time, months int) time.Time {
	year := t.Year()
	month := int(t.Month()) - 1 + months
	year += month / 12
	month = month % 12
	if month < 0 {
		month += 12
		year--
	}

	day := t.Day()
	if last := daysInMonth(year, time.Month(month+1)); day > last {
		day = last
	}

	return time.Date(year, time.Month(month+1), day, 0, 0, 0, 0, t.Location())
}

// daysInMonth returns the number of days in the given month. Day 0 of the
// following month normalizes to the last day of this one.
func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
