package models

import (
	"math"
	"time"
)

// LedgerView is the read-only financial projection of an installment set.
// It is recomputed on every read and never persisted, so totals cannot
// drift between the contract, payment and report views.
type LedgerView struct {
	Total     float64 `json:"total"`
	PaidTotal float64 `json:"paid_total"`
	Remaining float64 `json:"remaining"`
	LateTotal float64 `json:"late_total"`
	LateCount int     `json:"late_count"`
	Count     int     `json:"count"`
	PaidCount int     `json:"paid_count"`

	NextDueDate   string  `json:"next_due_date,omitempty"`
	NextDueAmount float64 `json:"next_due_amount,omitempty"`
}

// safeAmount treats non-finite amounts as 0 so projections never blow up on
// malformed data.
func safeAmount(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// SumInstallments sums installment amounts, optionally filtered to a single
// status. An empty filter sums everything.
func SumInstallments(installments []Installment, statusFilter string) float64 {
	var total float64
	for i := range installments {
		if statusFilter != "" && installments[i].Status != statusFilter {
			continue
		}
		total += safeAmount(installments[i].Amount)
	}
	return total
}

// RemainingAmount returns the unpaid portion of an installment set:
// total minus paid total.
func RemainingAmount(installments []Installment) float64 {
	return SumInstallments(installments, "") - SumInstallments(installments, InstallmentStatusPaid)
}

// NextPending returns the pending installment with the earliest due date, or
// nil when everything is paid. Ties are broken by slice order, so repeated
// calls on the same input pick the same installment.
func NextPending(installments []Installment) *Installment {
	var next *Installment
	for i := range installments {
		inst := &installments[i]
		if inst.Status != InstallmentStatusPending {
			continue
		}
		if next == nil || DateOnly(inst.DueDate).Before(DateOnly(next.DueDate)) {
			next = inst
		}
	}
	return next
}

// ProjectLedger computes the full ledger view of an installment set as of a
// given moment. Lateness is derived here, never read from storage.
func ProjectLedger(installments []Installment, asOf time.Time) LedgerView {
	view := LedgerView{
		Total:     SumInstallments(installments, ""),
		PaidTotal: SumInstallments(installments, InstallmentStatusPaid),
		Count:     len(installments),
	}
	view.Remaining = view.Total - view.PaidTotal

	for i := range installments {
		inst := &installments[i]
		if inst.IsPaid() {
			view.PaidCount++
		}
		if inst.IsLate(asOf) {
			view.LateCount++
			view.LateTotal += safeAmount(inst.Amount)
		}
	}

	if next := NextPending(installments); next != nil {
		view.NextDueDate = next.DueDate.Format(DateLayout)
		view.NextDueAmount = next.Amount
	}

	return view
}
