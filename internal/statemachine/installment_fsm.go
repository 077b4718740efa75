package statemachine

import (
	"context"
	"fmt"

	"github.com/looplab/fsm"
	"github.com/monazzem/amlak-api/internal/models"
)

// InstallmentFSM wraps an installment with its state machine
type InstallmentFSM struct {
	installment *models.Installment
	fsm         *fsm.FSM
}

// NewInstallmentFSM creates a new installment state machine
func NewInstallmentFSM(installment *models.Installment) *InstallmentFSM {
	ifsm := &InstallmentFSM{
		installment: installment,
	}

	ifsm.fsm = fsm.NewFSM(
		installment.Status,
		fsm.Events{
			// pending → paid, the only transition. "late" is derived
			// from the due date and never stored.
			{Name: "mark_paid", Src: []string{models.InstallmentStatusPending}, Dst: models.InstallmentStatusPaid},
		},
		fsm.Callbacks{},
	)

	return ifsm
}

// MarkPaid transitions the installment to paid state
func (i *InstallmentFSM) MarkPaid(ctx context.Context) error {
	if !i.installment.MayMarkPaid() {
		return fmt.Errorf("installment cannot be marked paid in current state: %s", i.installment.Status)
	}

	if err := i.fsm.Event(ctx, "mark_paid"); err != nil {
		return fmt.Errorf("failed to mark installment paid: %w", err)
	}

	i.installment.Status = i.fsm.Current()
	return nil
}

// Current returns the current state
func (i *InstallmentFSM) Current() string {
	return i.fsm.Current()
}

// Can checks if a transition is possible
func (i *InstallmentFSM) Can(event string) bool {
	return i.fsm.Can(event)
}
