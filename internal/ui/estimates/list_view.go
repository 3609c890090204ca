// Package estimates holds the view state of a contract's estimates section:
// the list, the approval dialog and the add-estimate dialog.
//
// Every type here is safe for concurrent use. Handlers block on the network
// and are meant to run off the render loop; Render/View read a consistent
// snapshot under the same lock.
package estimates

import (
	"context"
	"strings"
	"sync"

	"managrr/internal/domain/entities"
	"managrr/internal/usecase/interfaces"

	reflowtrunc "github.com/muesli/reflow/truncate"
	log "github.com/sirupsen/logrus"
)

const defaultWidth = 80

type ListViewConfig struct {
	Client   interfaces.IEstimateClient
	Contract entities.Contract
	UserType entities.UserType
	// OnEstimateUpdated fires once after every successful create, approve or
	// reject, once the list has been re-fetched.
	OnEstimateUpdated func()
}

type ListView struct {
	mu        sync.Mutex
	client    interfaces.IEstimateClient
	contract  entities.Contract
	userType  entities.UserType
	onUpdated func()

	estimates []entities.Estimate
	loading   bool
	err       string

	addDialog *AddEstimateDialog
	reviewing *entities.Estimate
	approval  *ApprovalDialog

	width int
}

func NewListView(cfg ListViewConfig) *ListView {
	return &ListView{
		client:    cfg.Client,
		contract:  cfg.Contract,
		userType:  cfg.UserType,
		onUpdated: cfg.OnEstimateUpdated,
		estimates: []entities.Estimate{},
		loading:   true,
		width:     defaultWidth,
	}
}

// SetContract switches to a contract and re-fetches its estimates. A contract
// without an ID is stored but not fetched.
func (v *ListView) SetContract(ctx context.Context, contract entities.Contract) {
	v.mu.Lock()
	v.contract = contract
	v.mu.Unlock()

	if contract.ID == "" {
		return
	}
	v.Refresh(ctx)
}

// Refresh re-fetches the list. On failure the list is treated as empty and
// the list-level error is set.
func (v *ListView) Refresh(ctx context.Context) {
	v.mu.Lock()
	contractID := v.contract.ID
	v.loading = true
	v.err = ""
	v.mu.Unlock()

	list, err := v.client.ListEstimatesForContract(ctx, contractID)

	v.mu.Lock()
	defer v.mu.Unlock()
	v.loading = false
	if err != nil {
		verr := normalizeError(err, msgLoadFailed)
		log.WithField("contract_id", contractID).WithError(err).Warn("[estimate][list] fetch failed")
		v.err = verr.Message
		v.estimates = []entities.Estimate{}
		return
	}
	if list == nil {
		list = []entities.Estimate{}
	}
	v.estimates = list
}

func (v *ListView) Contract() entities.Contract {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.contract
}

func (v *ListView) UserType() entities.UserType {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.userType
}

// Estimates returns a copy of the list in backend order.
func (v *ListView) Estimates() []entities.Estimate {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]entities.Estimate(nil), v.estimates...)
}

func (v *ListView) Loading() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.loading
}

// Error is the list-level error, empty when there is none.
func (v *ListView) Error() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.err
}

// ActiveEstimate is the first estimate flagged active. The backend keeps at
// most one; if it ever sends more, the first one wins.
func (v *ListView) ActiveEstimate() (entities.Estimate, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.activeLocked()
}

func (v *ListView) activeLocked() (entities.Estimate, bool) {
	for _, e := range v.estimates {
		if e.IsActive {
			return e, true
		}
	}
	return entities.Estimate{}, false
}

func (v *ListView) CanSubmit() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.userType == entities.UserTypeContractor
}

func (v *ListView) CanReview(e entities.Estimate) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.canReviewLocked(e)
}

func (v *ListView) canReviewLocked(e entities.Estimate) bool {
	return v.userType == entities.UserTypeHouseOwner && e.Status == entities.EstimateStatusPending
}

// OpenAddDialog shows the add dialog. Only contractors may submit.
func (v *ListView) OpenAddDialog() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.userType != entities.UserTypeContractor {
		return false
	}
	if v.addDialog == nil {
		v.addDialog = NewAddEstimateDialog(AddEstimateDialogConfig{
			ContractID: v.contract.ID,
			OnSubmit:   v.AddEstimate,
			OnClose:    v.CloseAddDialog,
		})
	}
	return true
}

func (v *ListView) CloseAddDialog() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.addDialog = nil
}

func (v *ListView) AddDialog() *AddEstimateDialog {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.addDialog
}

// Review opens the approval dialog for e. Only house owners may review, and
// only pending estimates.
func (v *ListView) Review(e entities.Estimate) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	if !v.canReviewLocked(e) {
		return false
	}

	active, ok := v.activeLocked()
	reviewing := e
	v.reviewing = &reviewing
	v.approval = NewApprovalDialog(ApprovalDialogConfig{
		Estimate:          e,
		HasActiveEstimate: ok && active.ID != e.ID,
		OnApprove:         v.ApproveEstimate,
		OnReject:          v.RejectEstimate,
		OnClose:           v.CloseReview,
	})
	return true
}

func (v *ListView) CloseReview() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.reviewing = nil
	v.approval = nil
}

// Reviewing is the estimate under review, if any.
func (v *ListView) Reviewing() (entities.Estimate, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.reviewing == nil {
		return entities.Estimate{}, false
	}
	return *v.reviewing, true
}

func (v *ListView) ApprovalDialog() *ApprovalDialog {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.approval
}

// AddEstimate creates an estimate. On success the add dialog closes, the list
// is re-fetched and OnEstimateUpdated fires. Failures never touch the
// list-level error.
func (v *ListView) AddEstimate(ctx context.Context, in entities.NewEstimateInput) error {
	if _, err := v.client.CreateEstimate(ctx, in); err != nil {
		log.WithField("contract_id", in.ContractID).WithError(err).Warn("[estimate][list] create failed")
		return normalizeError(err, msgCreateFailed)
	}
	v.CloseAddDialog()
	v.afterMutation(ctx)
	return nil
}

func (v *ListView) ApproveEstimate(ctx context.Context, estimateID string, setAsActive bool) error {
	if _, err := v.client.ApproveEstimate(ctx, estimateID, setAsActive); err != nil {
		log.WithField("estimate_id", estimateID).WithError(err).Warn("[estimate][list] approve failed")
		return normalizeError(err, msgApproveFailed)
	}
	v.CloseReview()
	v.afterMutation(ctx)
	return nil
}

func (v *ListView) RejectEstimate(ctx context.Context, estimateID string, reason string) error {
	if _, err := v.client.RejectEstimate(ctx, estimateID, reason); err != nil {
		log.WithField("estimate_id", estimateID).WithError(err).Warn("[estimate][list] reject failed")
		return normalizeError(err, msgRejectFailed)
	}
	v.CloseReview()
	v.afterMutation(ctx)
	return nil
}

func (v *ListView) afterMutation(ctx context.Context) {
	v.Refresh(ctx)

	v.mu.Lock()
	cb := v.onUpdated
	v.mu.Unlock()
	if cb != nil {
		cb()
	}
}

// SetWidth bounds the width long descriptions are truncated to.
func (v *ListView) SetWidth(w int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if w > 0 {
		v.width = w
	}
}

// Render draws the current state without a row cursor.
func (v *ListView) Render() string {
	return v.View(-1)
}

// View draws the current state with the row at cursor highlighted.
func (v *ListView) View(cursor int) string {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.loading {
		return mutedStyle.Render("Loading estimates...")
	}

	var b strings.Builder
	header := titleStyle.Render("Estimates")
	if v.userType == entities.UserTypeContractor {
		header += "  " + keyHint("n", "Submit Estimate")
	}
	b.WriteString(header + "\n\n")

	if v.err != "" {
		b.WriteString(errorStyle.Render(v.err) + "\n\n")
	}

	active, hasActive := v.activeLocked()
	if hasActive {
		banner := approvedStyle.Render("Active Estimate") + "  " + activeBadge.Render("ACTIVE") + "\n" +
			amountStyle.Render(FormatCurrency(active.Amount))
		b.WriteString(bannerStyle.Render(banner) + "\n\n")
	}

	if len(v.estimates) == 0 {
		b.WriteString(mutedStyle.Render("No estimates submitted yet") + "\n")
	}

	activeShown := false
	for i, e := range v.estimates {
		badge := ""
		if hasActive && !activeShown && e.ID == active.ID && e.IsActive {
			badge = activeBadge.Render("ACTIVE")
			activeShown = true
		}
		b.WriteString(v.renderRowLocked(e, i == cursor, badge))
		b.WriteString("\n")
	}

	if v.addDialog != nil {
		b.WriteString("\n" + v.addDialog.View() + "\n")
	}
	if v.approval != nil {
		b.WriteString("\n" + v.approval.View() + "\n")
	}
	return b.String()
}

func (v *ListView) renderRowLocked(e entities.Estimate, selected bool, activeBadgeText string) string {
	prefix := "  "
	if selected {
		prefix = cursorStyle.Render("▸ ")
	}

	var b strings.Builder
	line := prefix + amountStyle.Render(FormatCurrency(e.Amount)) + " " + statusBadge(e.Status)
	if activeBadgeText != "" {
		line += " " + activeBadgeText
	}
	if v.canReviewLocked(e) {
		line += "  " + keyHint("r", "Review")
	}
	b.WriteString(line + "\n")

	descWidth := v.width - 4
	if descWidth < 10 {
		descWidth = 10
	}
	b.WriteString("    " + reflowtrunc.StringWithTail(e.Description, uint(descWidth), "…") + "\n")
	b.WriteString("    " + mutedStyle.Render("Submitted on "+FormatDate(e.SubmittedAt)) + "\n")

	if e.Status == entities.EstimateStatusApproved && e.ApprovedAt != nil {
		b.WriteString("    " + approvedStyle.Render("Approved on "+FormatDate(*e.ApprovedAt)) + "\n")
	}
	if e.Status == entities.EstimateStatusRejected && e.RejectedAt != nil {
		b.WriteString("    " + errorStyle.Render("Rejected on "+FormatDate(*e.RejectedAt)) + "\n")
		if e.RejectionReason != nil && *e.RejectionReason != "" {
			b.WriteString("    " + errorStyle.Render("Reason: "+*e.RejectionReason) + "\n")
		}
	}
	return b.String()
}
