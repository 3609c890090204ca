package estimates

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"managrr/internal/domain/entities"
	"managrr/internal/infrastructure/httpclient"
	mock_interfaces "managrr/internal/usecase/interfaces/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var submitted = time.Date(2024, 5, 10, 15, 0, 0, 0, time.UTC)

func estimate(id string, status entities.EstimateStatus, active bool) entities.Estimate {
	return entities.Estimate{
		ID:          id,
		ContractID:  "c-1",
		Amount:      1234.5,
		Description: "Estimate " + id,
		Status:      status,
		IsActive:    active,
		SubmittedAt: submitted,
	}
}

func serverError(status int, msg string) error {
	return &httpclient.ResponseError{Method: http.MethodPost, Path: "/estimates", StatusCode: status, Message: msg}
}

func newLoadedView(t *testing.T, userType entities.UserType, list []entities.Estimate) (*ListView, *mock_interfaces.MockIEstimateClient, *int) {
	t.Helper()
	ctrl := gomock.NewController(t)
	client := mock_interfaces.NewMockIEstimateClient(ctrl)
	updates := 0
	v := NewListView(ListViewConfig{
		Client:            client,
		UserType:          userType,
		OnEstimateUpdated: func() { updates++ },
	})
	client.EXPECT().ListEstimatesForContract(gomock.Any(), "c-1").Return(list, nil)
	v.SetContract(context.Background(), entities.Contract{ID: "c-1"})
	return v, client, &updates
}

func TestListView_InitialState(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mock_interfaces.NewMockIEstimateClient(ctrl)
	v := NewListView(ListViewConfig{Client: client, UserType: entities.UserTypeContractor})

	assert.True(t, v.Loading())
	assert.Equal(t, "Loading estimates...", v.Render())

	// No contract id: nothing is fetched.
	v.SetContract(context.Background(), entities.Contract{})
	assert.True(t, v.Loading())
}

func TestListView_Refresh(t *testing.T) {
	t.Run("success replaces the list in backend order", func(t *testing.T) {
		v, client, _ := newLoadedView(t, entities.UserTypeHouseOwner, []entities.Estimate{estimate("a", entities.EstimateStatusPending, false)})
		require.Len(t, v.Estimates(), 1)

		client.EXPECT().ListEstimatesForContract(gomock.Any(), "c-1").Return([]entities.Estimate{
			estimate("z", entities.EstimateStatusPending, false),
			estimate("b", entities.EstimateStatusApproved, false),
		}, nil)
		v.Refresh(context.Background())

		got := v.Estimates()
		require.Len(t, got, 2)
		assert.Equal(t, "z", got[0].ID)
		assert.False(t, v.Loading())
		assert.Empty(t, v.Error())
	})

	t.Run("nil list is empty", func(t *testing.T) {
		v, _, _ := newLoadedView(t, entities.UserTypeHouseOwner, nil)
		assert.NotNil(t, v.Estimates())
		assert.Contains(t, v.Render(), "No estimates submitted yet")
	})

	t.Run("failure shows the server message and empties the list", func(t *testing.T) {
		v, client, _ := newLoadedView(t, entities.UserTypeHouseOwner, []entities.Estimate{estimate("a", entities.EstimateStatusPending, false)})

		client.EXPECT().ListEstimatesForContract(gomock.Any(), "c-1").Return(nil, serverError(http.StatusForbidden, "Access denied"))
		v.Refresh(context.Background())

		assert.Equal(t, "Access denied", v.Error())
		assert.Empty(t, v.Estimates())
		assert.False(t, v.Loading())
		out := v.Render()
		assert.Contains(t, out, "Access denied")
		assert.Contains(t, out, "No estimates submitted yet")
	})

	t.Run("failure without a server message falls back", func(t *testing.T) {
		v, client, _ := newLoadedView(t, entities.UserTypeHouseOwner, nil)

		client.EXPECT().ListEstimatesForContract(gomock.Any(), "c-1").Return(nil, errors.New("dial tcp: refused"))
		v.Refresh(context.Background())
		assert.Equal(t, "Failed to load estimates", v.Error())
	})

	t.Run("a new attempt clears the previous error", func(t *testing.T) {
		v, client, _ := newLoadedView(t, entities.UserTypeHouseOwner, nil)
		client.EXPECT().ListEstimatesForContract(gomock.Any(), "c-1").Return(nil, errors.New("boom"))
		v.Refresh(context.Background())
		require.NotEmpty(t, v.Error())

		client.EXPECT().ListEstimatesForContract(gomock.Any(), "c-1").Return([]entities.Estimate{}, nil)
		v.Refresh(context.Background())
		assert.Empty(t, v.Error())
	})
}

func TestListView_ActiveEstimate(t *testing.T) {
	t.Run("first active wins and only one badge is drawn", func(t *testing.T) {
		v, _, _ := newLoadedView(t, entities.UserTypeHouseOwner, []entities.Estimate{
			estimate("a", entities.EstimateStatusApproved, false),
			estimate("b", entities.EstimateStatusApproved, true),
			estimate("c", entities.EstimateStatusApproved, true),
		})

		active, ok := v.ActiveEstimate()
		require.True(t, ok)
		assert.Equal(t, "b", active.ID)

		out := v.Render()
		assert.Contains(t, out, "Active Estimate")
		// One badge in the banner, one on the row.
		assert.Equal(t, 2, strings.Count(out, "ACTIVE"))
	})

	t.Run("no active estimate", func(t *testing.T) {
		v, _, _ := newLoadedView(t, entities.UserTypeHouseOwner, []entities.Estimate{estimate("a", entities.EstimateStatusPending, false)})
		_, ok := v.ActiveEstimate()
		assert.False(t, ok)
		out := v.Render()
		assert.NotContains(t, out, "ACTIVE")
		assert.NotContains(t, out, "Active Estimate")
	})
}

func TestListView_Capabilities(t *testing.T) {
	pending := estimate("p", entities.EstimateStatusPending, false)
	approved := estimate("a", entities.EstimateStatusApproved, false)
	rejected := estimate("r", entities.EstimateStatusRejected, false)

	t.Run("contractor can submit but never review", func(t *testing.T) {
		v, _, _ := newLoadedView(t, entities.UserTypeContractor, []entities.Estimate{pending})
		assert.True(t, v.CanSubmit())
		assert.False(t, v.CanReview(pending))
		assert.False(t, v.Review(pending))

		out := v.Render()
		assert.Contains(t, out, "Submit Estimate")
		assert.NotContains(t, out, "Review")
	})

	t.Run("house owner reviews pending only", func(t *testing.T) {
		v, _, _ := newLoadedView(t, entities.UserTypeHouseOwner, []entities.Estimate{pending})
		assert.False(t, v.CanSubmit())
		assert.False(t, v.OpenAddDialog())
		assert.True(t, v.CanReview(pending))
		assert.False(t, v.CanReview(approved))
		assert.False(t, v.CanReview(rejected))

		out := v.Render()
		assert.NotContains(t, out, "Submit Estimate")
		assert.Contains(t, out, "Review")
	})

	t.Run("finalized rows have no review action", func(t *testing.T) {
		v, _, _ := newLoadedView(t, entities.UserTypeHouseOwner, []entities.Estimate{approved, rejected})
		assert.NotContains(t, v.Render(), "Review")
	})
}

func TestListView_RenderRows(t *testing.T) {
	approvedAt := submitted.Add(24 * time.Hour)
	rejectedAt := submitted.Add(48 * time.Hour)
	reason := "Too expensive"

	a := estimate("a", entities.EstimateStatusApproved, false)
	a.ApprovedAt = &approvedAt
	r := estimate("r", entities.EstimateStatusRejected, false)
	r.RejectedAt = &rejectedAt
	r.RejectionReason = &reason
	u := estimate("u", entities.EstimateStatus("on_hold"), false)

	v, _, _ := newLoadedView(t, entities.UserTypeHouseOwner, []entities.Estimate{a, r, u})
	out := v.Render()

	assert.Contains(t, out, "$1,234.50")
	assert.Contains(t, out, "Submitted on "+FormatDate(submitted))
	assert.Contains(t, out, "Approved on "+FormatDate(approvedAt))
	assert.Contains(t, out, "Rejected on "+FormatDate(rejectedAt))
	assert.Contains(t, out, "Reason: Too expensive")
	assert.Contains(t, out, "[on_hold]")
}

func TestListView_Review(t *testing.T) {
	active := estimate("act", entities.EstimateStatusApproved, true)
	pending := estimate("p", entities.EstimateStatusPending, false)

	v, _, _ := newLoadedView(t, entities.UserTypeHouseOwner, []entities.Estimate{active, pending})
	require.True(t, v.Review(pending))

	got, ok := v.Reviewing()
	require.True(t, ok)
	assert.Equal(t, "p", got.ID)

	d := v.ApprovalDialog()
	require.NotNil(t, d)
	assert.True(t, d.HasActiveEstimate())
	assert.Equal(t, StepUnselected, d.Step())
	assert.Contains(t, v.Render(), "Review Estimate")

	d.Cancel()
	_, ok = v.Reviewing()
	assert.False(t, ok)
	assert.Nil(t, v.ApprovalDialog())
}

func TestListView_ApproveFlow(t *testing.T) {
	pending := estimate("p", entities.EstimateStatusPending, false)

	t.Run("success refetches once and fires the callback once", func(t *testing.T) {
		v, client, updates := newLoadedView(t, entities.UserTypeHouseOwner, []entities.Estimate{pending})
		require.True(t, v.Review(pending))
		d := v.ApprovalDialog()
		d.ChooseApprove()
		require.True(t, d.IsSetAsActive())

		approved := estimate("p", entities.EstimateStatusApproved, true)
		gomock.InOrder(
			client.EXPECT().ApproveEstimate(gomock.Any(), "p", true).Return(approved, nil).Times(1),
			client.EXPECT().ListEstimatesForContract(gomock.Any(), "c-1").Return([]entities.Estimate{approved}, nil).Times(1),
		)

		require.NoError(t, d.Confirm(context.Background()))
		assert.Equal(t, 1, *updates)
		assert.Nil(t, v.ApprovalDialog())
		active, ok := v.ActiveEstimate()
		require.True(t, ok)
		assert.Equal(t, "p", active.ID)
	})

	t.Run("failure keeps the dialog open with the server message", func(t *testing.T) {
		v, client, updates := newLoadedView(t, entities.UserTypeHouseOwner, []entities.Estimate{pending})
		require.True(t, v.Review(pending))
		d := v.ApprovalDialog()
		d.ChooseApprove()
		d.ToggleSetAsActive()

		client.EXPECT().ApproveEstimate(gomock.Any(), "p", false).Return(entities.Estimate{}, serverError(http.StatusConflict, "Estimate already finalized"))

		err := d.Confirm(context.Background())
		require.Error(t, err)
		assert.Equal(t, "Estimate already finalized", d.Error())
		assert.False(t, d.Loading())
		assert.Same(t, d, v.ApprovalDialog())
		assert.Empty(t, v.Error())
		assert.Equal(t, 0, *updates)

		out := v.Render()
		assert.Contains(t, out, "Estimate already finalized")
		assert.Contains(t, out, "Confirm Approval")
	})

	t.Run("failure without a server message uses the fallback", func(t *testing.T) {
		v, client, _ := newLoadedView(t, entities.UserTypeHouseOwner, []entities.Estimate{pending})
		require.True(t, v.Review(pending))
		d := v.ApprovalDialog()
		d.ChooseApprove()

		client.EXPECT().ApproveEstimate(gomock.Any(), "p", true).Return(entities.Estimate{}, errors.New("timeout"))

		require.Error(t, d.Confirm(context.Background()))
		assert.Equal(t, "Failed to approve estimate", d.Error())
	})
}

func TestListView_RejectFlow(t *testing.T) {
	pending := estimate("p", entities.EstimateStatusPending, false)

	t.Run("blank reason never calls the client", func(t *testing.T) {
		v, _, updates := newLoadedView(t, entities.UserTypeHouseOwner, []entities.Estimate{pending})
		require.True(t, v.Review(pending))
		d := v.ApprovalDialog()
		d.ChooseReject()
		d.SetReason("   \n\t")

		require.Error(t, d.Confirm(context.Background()))
		assert.Equal(t, "Please provide a reason for rejection", d.Error())
		assert.Equal(t, 0, *updates)
	})

	t.Run("reason is forwarded verbatim", func(t *testing.T) {
		v, client, updates := newLoadedView(t, entities.UserTypeHouseOwner, []entities.Estimate{pending})
		require.True(t, v.Review(pending))
		d := v.ApprovalDialog()
		d.ChooseReject()
		d.SetReason("  Too expensive ")

		rejected := estimate("p", entities.EstimateStatusRejected, false)
		client.EXPECT().RejectEstimate(gomock.Any(), "p", "  Too expensive ").Return(rejected, nil)
		client.EXPECT().ListEstimatesForContract(gomock.Any(), "c-1").Return([]entities.Estimate{rejected}, nil)

		require.NoError(t, d.Confirm(context.Background()))
		assert.Equal(t, 1, *updates)
		assert.Nil(t, v.ApprovalDialog())
	})

	t.Run("failure uses the fallback", func(t *testing.T) {
		v, client, _ := newLoadedView(t, entities.UserTypeHouseOwner, []entities.Estimate{pending})
		require.True(t, v.Review(pending))
		d := v.ApprovalDialog()
		d.ChooseReject()
		d.SetReason("no")

		client.EXPECT().RejectEstimate(gomock.Any(), "p", "no").Return(entities.Estimate{}, serverError(http.StatusInternalServerError, ""))

		require.Error(t, d.Confirm(context.Background()))
		assert.Equal(t, "Failed to reject estimate", d.Error())
	})
}

func TestListView_AddFlow(t *testing.T) {
	t.Run("success closes the dialog and refetches", func(t *testing.T) {
		v, client, updates := newLoadedView(t, entities.UserTypeContractor, nil)
		require.True(t, v.OpenAddDialog())
		d := v.AddDialog()
		require.NotNil(t, d)
		d.SetAmount("$1,500")
		d.SetDescription("Deck repair")

		created := estimate("n", entities.EstimateStatusPending, false)
		client.EXPECT().CreateEstimate(gomock.Any(), entities.NewEstimateInput{ContractID: "c-1", Amount: 1500, Description: "Deck repair"}).Return(created, nil)
		client.EXPECT().ListEstimatesForContract(gomock.Any(), "c-1").Return([]entities.Estimate{created}, nil)

		require.NoError(t, d.Submit(context.Background()))
		assert.Nil(t, v.AddDialog())
		assert.Equal(t, 1, *updates)
		assert.Len(t, v.Estimates(), 1)
	})

	t.Run("server failure stays inline", func(t *testing.T) {
		v, client, updates := newLoadedView(t, entities.UserTypeContractor, nil)
		require.True(t, v.OpenAddDialog())
		d := v.AddDialog()
		d.SetAmount("10")
		d.SetDescription("x")

		client.EXPECT().CreateEstimate(gomock.Any(), gomock.Any()).Return(entities.Estimate{}, serverError(http.StatusForbidden, "Only the contractor can submit estimates"))

		require.Error(t, d.Submit(context.Background()))
		assert.Equal(t, "Only the contractor can submit estimates", d.Error())
		assert.Same(t, d, v.AddDialog())
		assert.Empty(t, v.Error())
		assert.Equal(t, 0, *updates)
	})
}
