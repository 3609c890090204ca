package estimates

import (
	"context"
	"errors"
	"testing"

	"managrr/internal/domain/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEstimateForm(t *testing.T) {
	cases := []struct {
		name, amount, desc string
		want               float64
		msg                string
	}{
		{name: "plain", amount: "100", desc: "Paint", want: 100},
		{name: "grouped with symbol", amount: " $1,234.50 ", desc: "Paint", want: 1234.5},
		{name: "zero is allowed", amount: "0", desc: "Inspection", want: 0},
		{name: "empty amount", amount: "", desc: "Paint", msg: msgInvalidAmount},
		{name: "letters", amount: "ten", desc: "Paint", msg: msgInvalidAmount},
		{name: "negative", amount: "-1", desc: "Paint", msg: msgInvalidAmount},
		{name: "not a number", amount: "NaN", desc: "Paint", msg: msgInvalidAmount},
		{name: "infinite", amount: "Inf", desc: "Paint", msg: msgInvalidAmount},
		{name: "blank description", amount: "5", desc: "  ", msg: msgMissingDescription},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			form, msg := parseEstimateForm(tc.amount, tc.desc)
			assert.Equal(t, tc.msg, msg)
			if tc.msg == "" {
				assert.Equal(t, tc.want, form.Amount)
			}
		})
	}
}

func TestAddEstimateDialog_Editing(t *testing.T) {
	d := NewAddEstimateDialog(AddEstimateDialogConfig{ContractID: "c-1"})
	assert.Equal(t, FieldAmount, d.Focus())

	d.Insert("12")
	d.Backspace()
	d.Insert("5")
	d.FocusNext()
	d.Insert("Fence é")
	d.Backspace()

	assert.Equal(t, "15", d.Amount())
	assert.Equal(t, "Fence ", d.Description())
	assert.Equal(t, FieldDescription, d.Focus())
	assert.Contains(t, d.View(), "Submit Estimate")
}

func TestAddEstimateDialog_Submit(t *testing.T) {
	t.Run("invalid input never calls submit", func(t *testing.T) {
		called := false
		d := NewAddEstimateDialog(AddEstimateDialogConfig{
			ContractID: "c-1",
			OnSubmit:   func(context.Context, entities.NewEstimateInput) error { called = true; return nil },
		})
		d.SetAmount("abc")

		require.Error(t, d.Submit(context.Background()))
		assert.False(t, called)
		assert.Equal(t, msgInvalidAmount, d.Error())
	})

	t.Run("trimmed description is submitted", func(t *testing.T) {
		var got entities.NewEstimateInput
		d := NewAddEstimateDialog(AddEstimateDialogConfig{
			ContractID: "c-1",
			OnSubmit: func(_ context.Context, in entities.NewEstimateInput) error {
				got = in
				return nil
			},
		})
		d.SetAmount("250")
		d.SetDescription("  Gutter cleaning  ")

		require.NoError(t, d.Submit(context.Background()))
		assert.Equal(t, entities.NewEstimateInput{ContractID: "c-1", Amount: 250, Description: "Gutter cleaning"}, got)
		assert.False(t, d.Loading())
	})

	t.Run("failure falls back when the message is empty", func(t *testing.T) {
		d := NewAddEstimateDialog(AddEstimateDialogConfig{
			ContractID: "c-1",
			OnSubmit:   func(context.Context, entities.NewEstimateInput) error { return errors.New("") },
		})
		d.SetAmount("1")
		d.SetDescription("x")

		require.Error(t, d.Submit(context.Background()))
		assert.Equal(t, "Failed to create estimate", d.Error())
	})

	t.Run("cancel closes through the host", func(t *testing.T) {
		closed := 0
		d := NewAddEstimateDialog(AddEstimateDialogConfig{OnClose: func() { closed++ }})
		d.Cancel()
		assert.Equal(t, 1, closed)
	})
}
