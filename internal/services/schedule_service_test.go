package services

import (
	"context"
	"testing"
	"time"

	"github.com/monazzem/amlak-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestGenerateSchedule_Monthly(t *testing.T) {
	svc := NewScheduleService()

	contract := &models.Contract{
		ID:           1,
		StartDate:    date(2026, time.January, 1),
		EndDate:      date(2026, time.April, 1),
		RentAmount:   1000,
		PayFrequency: models.PayFrequencyMonthly,
	}

	installments, err := svc.GenerateSchedule(context.Background(), contract)
	require.NoError(t, err)
	require.Len(t, installments, 3)

	assert.Equal(t, date(2026, time.January, 1), installments[0].DueDate)
	assert.Equal(t, date(2026, time.February, 1), installments[1].DueDate)
	assert.Equal(t, date(2026, time.March, 1), installments[2].DueDate)

	var total float64
	for _, inst := range installments {
		assert.Equal(t, 1000.0, inst.Amount)
		assert.Equal(t, models.InstallmentStatusPending, inst.Status)
		assert.Equal(t, uint(1), inst.ContractID)
		total += inst.Amount
	}
	assert.Equal(t, 3000.0, total)
}

func TestGenerateSchedule_QuarterlyClampsDayOfMonth(t *testing.T) {
	svc := NewScheduleService()

	contract := &models.Contract{
		ID:           2,
		StartDate:    date(2026, time.January, 31),
		EndDate:      date(2026, time.May, 1),
		RentAmount:   500,
		PayFrequency: models.PayFrequencyQuarterly,
	}

	installments, err := svc.GenerateSchedule(context.Background(), contract)
	require.NoError(t, err)
	require.Len(t, installments, 2)

	assert.Equal(t, date(2026, time.January, 31), installments[0].DueDate)
	// Apr 31 does not exist, so the second due date clamps to Apr 30
	assert.Equal(t, date(2026, time.April, 30), installments[1].DueDate)

	assert.Equal(t, 1500.0, installments[0].Amount)
	assert.Equal(t, 1500.0, installments[1].Amount)
}

func TestGenerateSchedule_Yearly(t *testing.T) {
	svc := NewScheduleService()

	contract := &models.Contract{
		StartDate:    date(2026, time.March, 15),
		EndDate:      date(2029, time.March, 15),
		RentAmount:   200,
		PayFrequency: models.PayFrequencyYearly,
	}

	installments, err := svc.GenerateSchedule(context.Background(), contract)
	require.NoError(t, err)
	require.Len(t, installments, 3)

	assert.Equal(t, date(2026, time.March, 15), installments[0].DueDate)
	assert.Equal(t, date(2027, time.March, 15), installments[1].DueDate)
	assert.Equal(t, date(2028, time.March, 15), installments[2].DueDate)
	for _, inst := range installments {
		assert.Equal(t, 2400.0, inst.Amount)
	}
}

func TestGenerateSchedule_UnbilledTail(t *testing.T) {
	svc := NewScheduleService()

	// 4-month term on a quarterly cadence: only one full period fits, the
	// trailing month is never billed.
	contract := &models.Contract{
		StartDate:    date(2026, time.January, 1),
		EndDate:      date(2026, time.April, 1),
		RentAmount:   1000,
		PayFrequency: models.PayFrequencyQuarterly,
	}

	installments, err := svc.GenerateSchedule(context.Background(), contract)
	require.NoError(t, err)
	require.Len(t, installments, 1)
	assert.Equal(t, date(2026, time.January, 1), installments[0].DueDate)
	assert.Equal(t, 3000.0, installments[0].Amount)
}

func TestGenerateSchedule_DueDatesStrictlyBeforeEnd(t *testing.T) {
	svc := NewScheduleService()

	contract := &models.Contract{
		StartDate:    date(2025, time.June, 10),
		EndDate:      date(2027, time.June, 10),
		RentAmount:   750,
		PayFrequency: models.PayFrequencyMonthly,
	}

	installments, err := svc.GenerateSchedule(context.Background(), contract)
	require.NoError(t, err)
	require.Len(t, installments, 24)

	assert.Equal(t, contract.StartDate, installments[0].DueDate)
	for i, inst := range installments {
		assert.True(t, inst.DueDate.Before(contract.EndDate), "due date %v must precede end date", inst.DueDate)
		if i > 0 {
			assert.True(t, installments[i-1].DueDate.Before(inst.DueDate), "due dates must be strictly increasing")
		}
	}
}

func TestGenerateSchedule_Deterministic(t *testing.T) {
	svc := NewScheduleService()

	contract := &models.Contract{
		StartDate:    date(2026, time.January, 31),
		EndDate:      date(2027, time.January, 31),
		RentAmount:   850,
		PayFrequency: models.PayFrequencyMonthly,
	}

	first, err := svc.GenerateSchedule(context.Background(), contract)
	require.NoError(t, err)
	second, err := svc.GenerateSchedule(context.Background(), contract)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestGenerateSchedule_Validation(t *testing.T) {
	svc := NewScheduleService()

	tests := []struct {
		name     string
		contract *models.Contract
		wantErr  error
	}{
		{
			name: "unknown frequency",
			contract: &models.Contract{
				StartDate:    date(2026, time.January, 1),
				EndDate:      date(2027, time.January, 1),
				RentAmount:   1000,
				PayFrequency: "weekly",
			},
			wantErr: ErrInvalidFrequency,
		},
		{
			name: "end before start",
			contract: &models.Contract{
				StartDate:    date(2026, time.June, 1),
				EndDate:      date(2026, time.January, 1),
				RentAmount:   1000,
				PayFrequency: models.PayFrequencyMonthly,
			},
			wantErr: ErrInvalidPeriod,
		},
		{
			name: "end equals start",
			contract: &models.Contract{
				StartDate:    date(2026, time.January, 1),
				EndDate:      date(2026, time.January, 1),
				RentAmount:   1000,
				PayFrequency: models.PayFrequencyMonthly,
			},
			wantErr: ErrInvalidPeriod,
		},
		{
			name: "zero rent",
			contract: &models.Contract{
				StartDate:    date(2026, time.January, 1),
				EndDate:      date(2027, time.January, 1),
				RentAmount:   0,
				PayFrequency: models.PayFrequencyMonthly,
			},
			wantErr: ErrInvalidRent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.GenerateSchedule(context.Background(), tt.contract)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestAddCalendarMonths(t *testing.T) {
	tests := []struct {
		name   string
		in     time.Time
		months int
		want   time.Time
	}{
		{"simple advance", date(2026, time.January, 15), 1, date(2026, time.February, 15)},
		{"year rollover", date(2026, time.November, 1), 3, date(2027, time.February, 1)},
		{"clamp to shorter month", date(2026, time.January, 31), 1, date(2026, time.February, 28)},
		{"clamp leap february", date(2028, time.January, 31), 1, date(2028, time.February, 29)},
		{"clamp quarterly", date(2026, time.January, 31), 3, date(2026, time.April, 30)},
		{"full year keeps day", date(2026, time.February, 28), 12, date(2027, time.February, 28)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AddCalendarMonths(tt.in, tt.months))
		})
	}
}
