package estimates

import (
	"context"
	"strings"
	"sync"

	"managrr/internal/domain/entities"

	log "github.com/sirupsen/logrus"
)

// DialogStep is where the reviewer is in the approval flow.
type DialogStep int

const (
	StepUnselected DialogStep = iota
	StepApproving
	StepRejecting
)

func (s DialogStep) String() string {
	switch s {
	case StepApproving:
		return "approving"
	case StepRejecting:
		return "rejecting"
	default:
		return "unselected"
	}
}

type (
	ApproveFunc func(ctx context.Context, estimateID string, setAsActive bool) error
	RejectFunc  func(ctx context.Context, estimateID string, reason string) error
)

type ApprovalDialogConfig struct {
	Estimate          entities.Estimate
	HasActiveEstimate bool
	OnApprove         ApproveFunc
	OnReject          RejectFunc
	OnClose           func()
}

// ApprovalDialog lets a house owner approve or reject one pending estimate.
// It never closes itself; the host removes it after a successful callback.
type ApprovalDialog struct {
	mu                sync.Mutex
	estimate          entities.Estimate
	hasActiveEstimate bool
	onApprove         ApproveFunc
	onReject          RejectFunc
	onClose           func()

	step        DialogStep
	setAsActive bool
	reason      string
	loading     bool
	err         string
}

func NewApprovalDialog(cfg ApprovalDialogConfig) *ApprovalDialog {
	return &ApprovalDialog{
		estimate:          cfg.Estimate,
		hasActiveEstimate: cfg.HasActiveEstimate,
		onApprove:         cfg.OnApprove,
		onReject:          cfg.OnReject,
		onClose:           cfg.OnClose,
		step:              StepUnselected,
		setAsActive:       true,
	}
}

func (d *ApprovalDialog) Estimate() entities.Estimate {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.estimate
}

func (d *ApprovalDialog) Step() DialogStep {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.step
}

func (d *ApprovalDialog) HasActiveEstimate() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.hasActiveEstimate
}

func (d *ApprovalDialog) IsSetAsActive() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.setAsActive
}

func (d *ApprovalDialog) Reason() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.reason
}

func (d *ApprovalDialog) Loading() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.loading
}

// Error is the inline message, empty when there is none.
func (d *ApprovalDialog) Error() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.err
}

func (d *ApprovalDialog) ChooseApprove() {
	d.choose(StepApproving)
}

func (d *ApprovalDialog) ChooseReject() {
	d.choose(StepRejecting)
}

func (d *ApprovalDialog) choose(step DialogStep) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.step != StepUnselected || d.loading {
		return
	}
	d.step = step
	d.err = ""
}

// Back returns to the approve/reject choice. Ignored while a call is running.
func (d *ApprovalDialog) Back() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.loading {
		return
	}
	d.step = StepUnselected
	d.err = ""
}

// Cancel closes the dialog through the host. Only offered before a choice.
func (d *ApprovalDialog) Cancel() {
	d.mu.Lock()
	if d.step != StepUnselected || d.loading {
		d.mu.Unlock()
		return
	}
	onClose := d.onClose
	d.mu.Unlock()

	if onClose != nil {
		onClose()
	}
}

func (d *ApprovalDialog) SetAsActive(v bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.loading {
		return
	}
	d.setAsActive = v
}

func (d *ApprovalDialog) ToggleSetAsActive() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.loading {
		return
	}
	d.setAsActive = !d.setAsActive
}

func (d *ApprovalDialog) SetReason(reason string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.loading {
		return
	}
	d.reason = reason
}

// Confirm runs the chosen action. The returned error is the one shown inline.
func (d *ApprovalDialog) Confirm(ctx context.Context) error {
	d.mu.Lock()
	if d.loading {
		d.mu.Unlock()
		return ErrConfirmInFlight
	}

	step := d.step
	id := d.estimate.ID
	setAsActive := d.setAsActive
	reason := d.reason

	switch step {
	case StepUnselected:
		d.mu.Unlock()
		return nil
	case StepRejecting:
		if strings.TrimSpace(reason) == "" {
			d.err = msgReasonMissing
			d.mu.Unlock()
			return &ViewError{Message: msgReasonMissing}
		}
	}

	d.loading = true
	d.err = ""
	onApprove, onReject := d.onApprove, d.onReject
	d.mu.Unlock()

	var (
		err      error
		fallback string
	)
	if step == StepApproving {
		fallback = msgApproveFailed
		log.WithFields(log.Fields{"estimate_id": id, "set_as_active": setAsActive}).Debug("[estimate][dialog] approve confirm")
		err = onApprove(ctx, id, setAsActive)
	} else {
		fallback = msgRejectFailed
		log.WithField("estimate_id", id).Debug("[estimate][dialog] reject confirm")
		err = onReject(ctx, id, reason)
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.loading = false
	if err != nil {
		d.err = displayMessage(err, fallback)
		return &ViewError{Message: d.err, Err: err}
	}
	return nil
}

// View renders the dialog.
func (d *ApprovalDialog) View() string {
	d.mu.Lock()
	defer d.mu.Unlock()

	var b strings.Builder
	b.WriteString(titleStyle.Render("Review Estimate") + "\n\n")
	if d.err != "" {
		b.WriteString(errorStyle.Render(d.err) + "\n\n")
	}

	b.WriteString(mutedStyle.Render("Amount") + "\n")
	b.WriteString(amountStyle.Render(FormatCurrency(d.estimate.Amount)) + "\n")
	b.WriteString(mutedStyle.Render("Description") + "\n")
	b.WriteString(d.estimate.Description + "\n\n")

	switch d.step {
	case StepUnselected:
		b.WriteString(keyHint("a", "Approve Estimate") + "\n")
		b.WriteString(keyHint("x", "Reject Estimate") + "\n")
		b.WriteString(keyHint("esc", "Cancel"))
	case StepApproving:
		if d.hasActiveEstimate {
			b.WriteString(warningStyle.Render("There is already an active estimate. Do you want to replace it with this one?") + "\n\n")
		}
		box := "[ ]"
		if d.setAsActive {
			box = "[x]"
		}
		b.WriteString(box + " Set as active estimate " + mutedStyle.Render("(space)") + "\n\n")
		b.WriteString(d.footer("Confirm Approval", "Approving..."))
	case StepRejecting:
		b.WriteString("Reason for Rejection *\n")
		if d.reason == "" {
			b.WriteString(mutedStyle.Render("Please provide a reason for rejecting this estimate...") + "\n\n")
		} else {
			b.WriteString(d.reason + "\n\n")
		}
		b.WriteString(d.footer("Confirm Rejection", "Rejecting..."))
	}

	return dialogStyle.Render(b.String())
}

func (d *ApprovalDialog) footer(confirm, busy string) string {
	if d.loading {
		return disabledStyle.Render("[esc] Back") + "  " + disabledStyle.Render(busy)
	}
	return keyHint("esc", "Back") + "  " + keyHint("enter", confirm)
}
