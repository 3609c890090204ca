package estimates

import (
	"context"
	"errors"
	"math"
	"strconv"
	"strings"
	"sync"

	"managrr/internal/domain/entities"

	"github.com/go-playground/validator/v10"
	log "github.com/sirupsen/logrus"
)

const (
	msgInvalidAmount      = "Please enter a valid amount"
	msgMissingDescription = "Please enter a description"
)

// AddField is the input that receives typed text.
type AddField int

const (
	FieldAmount AddField = iota
	FieldDescription
)

type SubmitFunc func(ctx context.Context, in entities.NewEstimateInput) error

type AddEstimateDialogConfig struct {
	ContractID string
	OnSubmit   SubmitFunc
	OnClose    func()
}

type estimateForm struct {
	Amount      float64 `validate:"gte=0"`
	Description string  `validate:"required"`
}

var formValidator = validator.New()

// AddEstimateDialog collects a new estimate from a contractor.
type AddEstimateDialog struct {
	mu         sync.Mutex
	contractID string
	onSubmit   SubmitFunc
	onClose    func()

	amount      string
	description string
	focus       AddField
	loading     bool
	err         string
}

func NewAddEstimateDialog(cfg AddEstimateDialogConfig) *AddEstimateDialog {
	return &AddEstimateDialog{
		contractID: cfg.ContractID,
		onSubmit:   cfg.OnSubmit,
		onClose:    cfg.OnClose,
		focus:      FieldAmount,
	}
}

func (d *AddEstimateDialog) Amount() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.amount
}

func (d *AddEstimateDialog) Description() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.description
}

func (d *AddEstimateDialog) Focus() AddField {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.focus
}

func (d *AddEstimateDialog) Loading() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.loading
}

func (d *AddEstimateDialog) Error() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.err
}

func (d *AddEstimateDialog) SetAmount(v string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.loading {
		d.amount = v
	}
}

func (d *AddEstimateDialog) SetDescription(v string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.loading {
		d.description = v
	}
}

func (d *AddEstimateDialog) FocusNext() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.focus == FieldAmount {
		d.focus = FieldDescription
	} else {
		d.focus = FieldAmount
	}
}

// Insert appends text to the focused field.
func (d *AddEstimateDialog) Insert(text string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.loading {
		return
	}
	if d.focus == FieldAmount {
		d.amount += text
	} else {
		d.description += text
	}
}

// Backspace removes the last rune of the focused field.
func (d *AddEstimateDialog) Backspace() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.loading {
		return
	}
	if d.focus == FieldAmount {
		d.amount = dropLastRune(d.amount)
	} else {
		d.description = dropLastRune(d.description)
	}
}

func (d *AddEstimateDialog) Cancel() {
	d.mu.Lock()
	if d.loading {
		d.mu.Unlock()
		return
	}
	onClose := d.onClose
	d.mu.Unlock()

	if onClose != nil {
		onClose()
	}
}

// Submit validates the form and hands it to the host. Invalid input never
// reaches the network.
func (d *AddEstimateDialog) Submit(ctx context.Context) error {
	d.mu.Lock()
	if d.loading {
		d.mu.Unlock()
		return ErrSubmitInFlight
	}

	form, msg := parseEstimateForm(d.amount, d.description)
	if msg != "" {
		d.err = msg
		d.mu.Unlock()
		return &ViewError{Message: msg}
	}

	in := entities.NewEstimateInput{
		ContractID:  d.contractID,
		Amount:      form.Amount,
		Description: form.Description,
	}
	d.loading = true
	d.err = ""
	onSubmit := d.onSubmit
	d.mu.Unlock()

	log.WithField("contract_id", in.ContractID).Debug("[estimate][add] submit")
	err := onSubmit(ctx, in)

	d.mu.Lock()
	defer d.mu.Unlock()
	d.loading = false
	if err != nil {
		d.err = displayMessage(err, msgCreateFailed)
		return &ViewError{Message: d.err, Err: err}
	}
	return nil
}

// parseEstimateForm returns the validated form, or the message to show.
func parseEstimateForm(amountText, description string) (estimateForm, string) {
	cleaned := strings.NewReplacer("$", "", ",", "").Replace(strings.TrimSpace(amountText))
	amount, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsInf(amount, 0) {
		return estimateForm{}, msgInvalidAmount
	}

	form := estimateForm{Amount: amount, Description: strings.TrimSpace(description)}
	if err := formValidator.Struct(form); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 && verrs[0].Field() == "Description" {
			return estimateForm{}, msgMissingDescription
		}
		return estimateForm{}, msgInvalidAmount
	}
	return form, ""
}

func (d *AddEstimateDialog) View() string {
	d.mu.Lock()
	defer d.mu.Unlock()

	var b strings.Builder
	b.WriteString(titleStyle.Render("Submit Estimate") + "\n\n")
	if d.err != "" {
		b.WriteString(errorStyle.Render(d.err) + "\n\n")
	}

	b.WriteString(fieldLine("Amount ($)", d.amount, d.focus == FieldAmount) + "\n")
	b.WriteString(fieldLine("Description", d.description, d.focus == FieldDescription) + "\n\n")

	if d.loading {
		b.WriteString(disabledStyle.Render("[esc] Cancel") + "  " + disabledStyle.Render("Submitting..."))
	} else {
		b.WriteString(keyHint("tab", "Next field") + "  " + keyHint("esc", "Cancel") + "  " + keyHint("enter", "Submit Estimate"))
	}
	return dialogStyle.Render(b.String())
}

func fieldLine(label, value string, focused bool) string {
	prefix := "  "
	if focused {
		prefix = cursorStyle.Render("▸ ")
	}
	return prefix + mutedStyle.Render(label+": ") + value
}

func dropLastRune(s string) string {
	r := []rune(s)
	if len(r) == 0 {
		return s
	}
	return string(r[:len(r)-1])
}
