package models

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestSumInstallments(t *testing.T) {
	installments := []Installment{
		{Amount: 1000, Status: InstallmentStatusPaid},
		{Amount: 1000, Status: InstallmentStatusPending},
		{Amount: 500, Status: InstallmentStatusPending},
	}

	assert.Equal(t, 2500.0, SumInstallments(installments, ""))
	assert.Equal(t, 1000.0, SumInstallments(installments, InstallmentStatusPaid))
	assert.Equal(t, 1500.0, SumInstallments(installments, InstallmentStatusPending))
	assert.Equal(t, 0.0, SumInstallments(nil, ""))
}

func TestSumInstallments_NonFiniteAmountsCountAsZero(t *testing.T) {
	installments := []Installment{
		{Amount: math.NaN(), Status: InstallmentStatusPending},
		{Amount: math.Inf(1), Status: InstallmentStatusPending},
		{Amount: 300, Status: InstallmentStatusPending},
	}

	assert.Equal(t, 300.0, SumInstallments(installments, ""))
}

func TestRemainingAmount_Invariant(t *testing.T) {
	sets := [][]Installment{
		nil,
		{},
		{{Amount: 1000, Status: InstallmentStatusPaid}},
		{{Amount: 1000, Status: InstallmentStatusPending}},
		{
			{Amount: 1000, Status: InstallmentStatusPaid},
			{Amount: 750, Status: InstallmentStatusPending},
			{Amount: 250.50, Status: InstallmentStatusPending},
		},
	}

	for _, set := range sets {
		remaining := RemainingAmount(set)
		assert.Equal(t, SumInstallments(set, "")-SumInstallments(set, InstallmentStatusPaid), remaining)
		assert.Equal(t, SumInstallments(set, InstallmentStatusPending), remaining)
	}
}

func TestNextPending(t *testing.T) {
	installments := []Installment{
		{ID: 1, DueDate: day(2026, time.March, 1), Status: InstallmentStatusPaid, Amount: 100},
		{ID: 2, DueDate: day(2026, time.May, 1), Status: InstallmentStatusPending, Amount: 100},
		{ID: 3, DueDate: day(2026, time.April, 1), Status: InstallmentStatusPending, Amount: 100},
	}

	next := NextPending(installments)
	require.NotNil(t, next)
	assert.Equal(t, uint(3), next.ID)
}

func TestNextPending_TieBreaksBySliceOrder(t *testing.T) {
	installments := []Installment{
		{ID: 7, DueDate: day(2026, time.April, 1), Status: InstallmentStatusPending},
		{ID: 8, DueDate: day(2026, time.April, 1), Status: InstallmentStatusPending},
	}

	for i := 0; i < 3; i++ {
		next := NextPending(installments)
		require.NotNil(t, next)
		assert.Equal(t, uint(7), next.ID)
	}
}

func TestNextPending_AllPaid(t *testing.T) {
	installments := []Installment{
		{DueDate: day(2026, time.March, 1), Status: InstallmentStatusPaid},
	}
	assert.Nil(t, NextPending(installments))
	assert.Nil(t, NextPending(nil))
}

func TestInstallmentIsLate(t *testing.T) {
	asOf := day(2026, time.June, 15)

	pastPending := Installment{DueDate: day(2026, time.June, 1), Status: InstallmentStatusPending}
	assert.True(t, pastPending.IsLate(asOf))

	dueToday := Installment{DueDate: day(2026, time.June, 15), Status: InstallmentStatusPending}
	assert.False(t, dueToday.IsLate(asOf))

	future := Installment{DueDate: day(2026, time.July, 1), Status: InstallmentStatusPending}
	assert.False(t, future.IsLate(asOf))

	// A paid installment is never late, no matter how far past its due date
	paidLate := Installment{DueDate: day(2020, time.January, 1), Status: InstallmentStatusPaid}
	assert.False(t, paidLate.IsLate(asOf))
}

func TestInstallmentDisplayStatus(t *testing.T) {
	asOf := day(2026, time.June, 15)

	overdue := Installment{DueDate: day(2026, time.May, 1), Status: InstallmentStatusPending}
	assert.Equal(t, DisplayStatusLate, overdue.DisplayStatus(asOf))

	current := Installment{DueDate: day(2026, time.July, 1), Status: InstallmentStatusPending}
	assert.Equal(t, InstallmentStatusPending, current.DisplayStatus(asOf))

	paid := Installment{DueDate: day(2026, time.May, 1), Status: InstallmentStatusPaid}
	assert.Equal(t, InstallmentStatusPaid, paid.DisplayStatus(asOf))
}

func TestProjectLedger(t *testing.T) {
	asOf := day(2026, time.June, 15)
	installments := []Installment{
		{ID: 1, DueDate: day(2026, time.April, 1), Amount: 1000, Status: InstallmentStatusPaid},
		{ID: 2, DueDate: day(2026, time.May, 1), Amount: 1000, Status: InstallmentStatusPending},
		{ID: 3, DueDate: day(2026, time.July, 1), Amount: 1000, Status: InstallmentStatusPending},
	}

	view := ProjectLedger(installments, asOf)

	assert.Equal(t, 3000.0, view.Total)
	assert.Equal(t, 1000.0, view.PaidTotal)
	assert.Equal(t, 2000.0, view.Remaining)
	assert.Equal(t, 3, view.Count)
	assert.Equal(t, 1, view.PaidCount)
	assert.Equal(t, 1, view.LateCount)
	assert.Equal(t, 1000.0, view.LateTotal)
	assert.Equal(t, "2026-05-01", view.NextDueDate)
	assert.Equal(t, 1000.0, view.NextDueAmount)
}

func TestProjectLedger_Empty(t *testing.T) {
	view := ProjectLedger(nil, time.Now())

	assert.Equal(t, 0.0, view.Total)
	assert.Equal(t, 0.0, view.Remaining)
	assert.Equal(t, 0, view.Count)
	assert.Empty(t, view.NextDueDate)
}

func TestProjectLedger_AllPaidDrivesRemainingToZero(t *testing.T) {
	installments := []Installment{
		{DueDate: day(2026, time.January, 1), Amount: 1500, Status: InstallmentStatusPending},
		{DueDate: day(2026, time.April, 30), Amount: 1500, Status: InstallmentStatusPending},
	}

	for i := range installments {
		installments[i].Status = InstallmentStatusPaid
	}

	view := ProjectLedger(installments, time.Now())
	assert.Equal(t, 0.0, view.Remaining)
	assert.Equal(t, view.Total, view.PaidTotal)
	assert.Nil(t, NextPending(installments))
}
