package repository

import (
	"context"
	"errors"
	"slices"
	"strings"
	"testing"
	"time"

	"managrr/internal/domain/entities"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDynamo struct {
	items      map[string]map[string]types.AttributeValue
	pageSize   int
	queries    int
	transacted *dynamodb.TransactWriteItemsInput
	txErr      error
	updateErr  error
}

func newFakeDynamo(t *testing.T, estimates ...entities.Estimate) *fakeDynamo {
	t.Helper()
	f := &fakeDynamo{items: map[string]map[string]types.AttributeValue{}, pageSize: 1}
	for _, e := range estimates {
		av, err := attributevalue.MarshalMap(toEstimateItem(e))
		require.NoError(t, err)
		f.items[e.ID] = av
	}
	return f
}

func keyOf(k map[string]types.AttributeValue) string {
	return k["id"].(*types.AttributeValueMemberS).Value
}

func (f *fakeDynamo) PutItem(_ context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	f.items[keyOf(in.Item)] = in.Item
	return &dynamodb.PutItemOutput{}, nil
}

func (f *fakeDynamo) GetItem(_ context.Context, in *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	return &dynamodb.GetItemOutput{Item: f.items[keyOf(in.Key)]}, nil
}

func (f *fakeDynamo) UpdateItem(_ context.Context, in *dynamodb.UpdateItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	item := f.items[keyOf(in.Key)]
	item["status"] = in.ExpressionAttributeValues[":rejected"]
	item["rejection_reason"] = in.ExpressionAttributeValues[":reason"]
	item["rejected_at"] = in.ExpressionAttributeValues[":ts"]
	item["is_active"] = in.ExpressionAttributeValues[":inactive"]
	return &dynamodb.UpdateItemOutput{Attributes: item}, nil
}

// Query serves the contract index one item per page so pagination is exercised.
func (f *fakeDynamo) Query(_ context.Context, in *dynamodb.QueryInput, _ ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	f.queries++
	contractID := in.ExpressionAttributeValues[":contract_id"].(*types.AttributeValueMemberS).Value
	var matching []map[string]types.AttributeValue
	for _, it := range f.items {
		if it["contract_id"].(*types.AttributeValueMemberS).Value == contractID {
			matching = append(matching, it)
		}
	}
	slices.SortFunc(matching, func(a, b map[string]types.AttributeValue) int {
		return strings.Compare(keyOf(a), keyOf(b))
	})

	start := 0
	if in.ExclusiveStartKey != nil {
		for i, it := range matching {
			if keyOf(it) == keyOf(in.ExclusiveStartKey) {
				start = i + 1
			}
		}
	}
	end := min(start+f.pageSize, len(matching))
	out := &dynamodb.QueryOutput{Items: matching[start:end]}
	if end < len(matching) {
		out.LastEvaluatedKey = map[string]types.AttributeValue{"id": matching[end-1]["id"]}
	}
	return out, nil
}

func (f *fakeDynamo) TransactWriteItems(_ context.Context, in *dynamodb.TransactWriteItemsInput, _ ...func(*dynamodb.Options)) (*dynamodb.TransactWriteItemsOutput, error) {
	f.transacted = in
	if f.txErr != nil {
		return nil, f.txErr
	}
	for _, w := range in.TransactItems {
		item := f.items[keyOf(w.Update.Key)]
		if v, ok := w.Update.ExpressionAttributeValues[":approved"]; ok {
			item["status"] = v
			item["approved_at"] = w.Update.ExpressionAttributeValues[":ts"]
			item["is_active"] = w.Update.ExpressionAttributeValues[":active"]
			continue
		}
		item["is_active"] = w.Update.ExpressionAttributeValues[":inactive"]
	}
	return &dynamodb.TransactWriteItemsOutput{}, nil
}

func TestEstimateDynamoRepository_ItemRoundTrip(t *testing.T) {
	at := time.Date(2024, 2, 3, 4, 5, 6, 0, time.UTC)
	reason := "over budget"
	e := entities.Estimate{
		ID:              "e-1",
		ContractID:      "c-1",
		Amount:          1234.5,
		Description:     "Kitchen",
		Status:          entities.EstimateStatusRejected,
		SubmittedAt:     at,
		RejectedAt:      &at,
		RejectionReason: &reason,
		CreatedAt:       at,
		UpdatedAt:       at,
	}

	got := fromEstimateItem(toEstimateItem(e))
	assert.Equal(t, e.Amount, got.Amount)
	assert.Nil(t, got.ApprovedAt)
	require.NotNil(t, got.RejectedAt)
	assert.True(t, got.RejectedAt.Equal(at))
	assert.Equal(t, reason, *got.RejectionReason)
}

func TestEstimateDynamoRepository_ListByContractID(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	fake := newFakeDynamo(t,
		pendingEstimate("a", "c-1", base),
		pendingEstimate("b", "c-1", base.Add(time.Minute)),
		pendingEstimate("c", "c-1", base.Add(2*time.Minute)),
		pendingEstimate("z", "c-9", base),
	)
	repo := NewEstimateDynamoRepository(fake, "estimates")

	list, err := repo.ListByContractID(context.Background(), "c-1")
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []string{"c", "b", "a"}, []string{list[0].ID, list[1].ID, list[2].ID})
	assert.Equal(t, 3, fake.queries)
}

func TestEstimateDynamoRepository_Approve(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	prev := pendingEstimate("prev", "c-1", base)
	prev.Status = entities.EstimateStatusApproved
	prev.IsActive = true

	t.Run("set as active writes both estimates in one transaction", func(t *testing.T) {
		fake := newFakeDynamo(t, prev, pendingEstimate("next", "c-1", base))
		repo := NewEstimateDynamoRepository(fake, "estimates")

		got, err := repo.Approve(context.Background(), "next", base.Add(time.Hour), true)
		require.NoError(t, err)
		assert.Equal(t, entities.EstimateStatusApproved, got.Status)
		assert.True(t, got.IsActive)
		require.NotNil(t, fake.transacted)
		assert.Len(t, fake.transacted.TransactItems, 2)
		assert.Equal(t, "#status = :pending", aws.ToString(fake.transacted.TransactItems[0].Update.ConditionExpression))

		demoted, _ := repo.GetByID(context.Background(), "prev")
		assert.False(t, demoted.IsActive)
	})

	t.Run("cancelled transaction reads as not pending", func(t *testing.T) {
		fake := newFakeDynamo(t, pendingEstimate("next", "c-1", base))
		fake.txErr = &types.TransactionCanceledException{Message: aws.String("ConditionalCheckFailed")}
		repo := NewEstimateDynamoRepository(fake, "estimates")

		got, err := repo.Approve(context.Background(), "next", base, false)
		require.NoError(t, err)
		assert.Empty(t, got.ID)
	})

	t.Run("already finalized skips the write", func(t *testing.T) {
		fake := newFakeDynamo(t, prev)
		repo := NewEstimateDynamoRepository(fake, "estimates")

		got, err := repo.Approve(context.Background(), "prev", base, true)
		require.NoError(t, err)
		assert.Empty(t, got.ID)
		assert.Nil(t, fake.transacted)
	})
}

func TestEstimateDynamoRepository_Reject(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("success", func(t *testing.T) {
		fake := newFakeDynamo(t, pendingEstimate("e", "c-1", base))
		repo := NewEstimateDynamoRepository(fake, "estimates")

		got, err := repo.Reject(context.Background(), "e", base, "no")
		require.NoError(t, err)
		assert.Equal(t, entities.EstimateStatusRejected, got.Status)
		require.NotNil(t, got.RejectionReason)
		assert.Equal(t, "no", *got.RejectionReason)
	})

	t.Run("conditional check failure", func(t *testing.T) {
		fake := newFakeDynamo(t, pendingEstimate("e", "c-1", base))
		fake.updateErr = &types.ConditionalCheckFailedException{Message: aws.String("nope")}
		repo := NewEstimateDynamoRepository(fake, "estimates")

		got, err := repo.Reject(context.Background(), "e", base, "no")
		require.NoError(t, err)
		assert.Empty(t, got.ID)
	})

	t.Run("other errors surface", func(t *testing.T) {
		fake := newFakeDynamo(t, pendingEstimate("e", "c-1", base))
		fake.updateErr = errors.New("throttled")
		repo := NewEstimateDynamoRepository(fake, "estimates")

		_, err := repo.Reject(context.Background(), "e", base, "no")
		assert.EqualError(t, err, "throttled")
	})
}
