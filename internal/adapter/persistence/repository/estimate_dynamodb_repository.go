package repository

import (
	"context"
	"errors"
	"strconv"
	"time"

	"managrr/internal/domain/entities"
	"managrr/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	log "github.com/sirupsen/logrus"
)

const (
	defaultEstimatesTableName = "estimates"
	estimatesContractIDIndex  = "contract_id-index"
)

// DynamoAPI is the subset of *dynamodb.Client the estimate repository uses.
type DynamoAPI interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	TransactWriteItems(ctx context.Context, params *dynamodb.TransactWriteItemsInput, optFns ...func(*dynamodb.Options)) (*dynamodb.TransactWriteItemsOutput, error)
}

type estimateItem struct {
	ID              string `dynamodbav:"id"`
	ContractID      string `dynamodbav:"contract_id"`
	Amount          string `dynamodbav:"amount"`
	Description     string `dynamodbav:"description"`
	Status          string `dynamodbav:"status"`
	IsActive        bool   `dynamodbav:"is_active"`
	SubmittedAt     string `dynamodbav:"submitted_at"`
	ApprovedAt      string `dynamodbav:"approved_at,omitempty"`
	RejectedAt      string `dynamodbav:"rejected_at,omitempty"`
	RejectionReason string `dynamodbav:"rejection_reason,omitempty"`
	CreatedAt       string `dynamodbav:"created_at"`
	UpdatedAt       string `dynamodbav:"updated_at"`
}

// EstimateDynamoRepository persists Estimate entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI contract_id-index: PK contract_id (string)
//
// Approving with setAsActive clears is_active on the contract's other
// estimates in the same transaction as the status change.

type EstimateDynamoRepository struct {
	ddb       DynamoAPI
	tableName string
}

var _ interfaces.IEstimateRepository = (*EstimateDynamoRepository)(nil)

func NewEstimateDynamoRepository(ddb DynamoAPI, tableName string) *EstimateDynamoRepository {
	if tableName == "" {
		tableName = getenvDefault("ESTIMATES_TABLE", defaultEstimatesTableName)
	}
	return &EstimateDynamoRepository{
		ddb:       ddb,
		tableName: tableName,
	}
}

func (r *EstimateDynamoRepository) Create(ctx context.Context, e entities.Estimate) (entities.Estimate, error) {
	av, err := attributevalue.MarshalMap(toEstimateItem(e))
	if err != nil {
		return entities.Estimate{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	if err != nil {
		return entities.Estimate{}, err
	}
	return e, nil
}

func (r *EstimateDynamoRepository) GetByID(ctx context.Context, id string) (entities.Estimate, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.tableName),
		Key:            estimateKey(id),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Estimate{}, err
	}
	if len(out.Item) == 0 {
		return entities.Estimate{}, nil
	}

	var it estimateItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Estimate{}, err
	}
	return fromEstimateItem(it), nil
}

func (r *EstimateDynamoRepository) ListByContractID(ctx context.Context, contractID string) ([]entities.Estimate, error) {
	p := dynamodb.NewQueryPaginator(r.ddb, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(estimatesContractIDIndex),
		KeyConditionExpression: aws.String("#contract_id = :contract_id"),
		ExpressionAttributeNames: map[string]string{
			"#contract_id": "contract_id",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":contract_id": &types.AttributeValueMemberS{Value: contractID},
		},
	})

	out := make([]entities.Estimate, 0)
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		var items []estimateItem
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &items); err != nil {
			return nil, err
		}
		for _, it := range items {
			out = append(out, fromEstimateItem(it))
		}
	}
	sortNewestFirst(out)
	return out, nil
}

func (r *EstimateDynamoRepository) Approve(ctx context.Context, id string, approvedAt time.Time, setAsActive bool) (entities.Estimate, error) {
	current, err := r.GetByID(ctx, id)
	if err != nil {
		return entities.Estimate{}, err
	}
	if current.ID == "" || current.Status != entities.EstimateStatusPending {
		return entities.Estimate{}, nil
	}

	ts := approvedAt.UTC().Format(time.RFC3339Nano)
	writes := []types.TransactWriteItem{{
		Update: &types.Update{
			TableName:           aws.String(r.tableName),
			Key:                 estimateKey(id),
			ConditionExpression: aws.String("#status = :pending"),
			UpdateExpression:    aws.String("SET #status = :approved, #approved_at = :ts, #is_active = :active, #updated_at = :ts"),
			ExpressionAttributeNames: map[string]string{
				"#status":      "status",
				"#approved_at": "approved_at",
				"#is_active":   "is_active",
				"#updated_at":  "updated_at",
			},
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":pending":  &types.AttributeValueMemberS{Value: string(entities.EstimateStatusPending)},
				":approved": &types.AttributeValueMemberS{Value: string(entities.EstimateStatusApproved)},
				":ts":       &types.AttributeValueMemberS{Value: ts},
				":active":   &types.AttributeValueMemberBOOL{Value: setAsActive},
			},
		},
	}}

	if setAsActive {
		siblings, err := r.ListByContractID(ctx, current.ContractID)
		if err != nil {
			return entities.Estimate{}, err
		}
		for _, s := range siblings {
			if s.ID == id || !s.IsActive {
				continue
			}
			writes = append(writes, types.TransactWriteItem{
				Update: &types.Update{
					TableName:        aws.String(r.tableName),
					Key:              estimateKey(s.ID),
					UpdateExpression: aws.String("SET #is_active = :inactive, #updated_at = :ts"),
					ExpressionAttributeNames: map[string]string{
						"#is_active":  "is_active",
						"#updated_at": "updated_at",
					},
					ExpressionAttributeValues: map[string]types.AttributeValue{
						":inactive": &types.AttributeValueMemberBOOL{Value: false},
						":ts":       &types.AttributeValueMemberS{Value: ts},
					},
				},
			})
		}
	}

	_, err = r.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{TransactItems: writes})
	if err != nil {
		var tce *types.TransactionCanceledException
		if errors.As(err, &tce) {
			log.WithField("estimate_id", id).Warn("[estimate][dynamodb] approve transaction cancelled")
			return entities.Estimate{}, nil
		}
		return entities.Estimate{}, err
	}
	return r.GetByID(ctx, id)
}

func (r *EstimateDynamoRepository) Reject(ctx context.Context, id string, rejectedAt time.Time, reason string) (entities.Estimate, error) {
	ts := rejectedAt.UTC().Format(time.RFC3339Nano)
	return r.update(ctx, id, func() (string, map[string]types.AttributeValue, map[string]string) {
		expr := "SET #status = :rejected, #rejected_at = :ts, #reason = :reason, #is_active = :inactive, #updated_at = :ts"
		vals := map[string]types.AttributeValue{
			":rejected": &types.AttributeValueMemberS{Value: string(entities.EstimateStatusRejected)},
			":ts":       &types.AttributeValueMemberS{Value: ts},
			":reason":   &types.AttributeValueMemberS{Value: reason},
			":inactive": &types.AttributeValueMemberBOOL{Value: false},
		}
		names := map[string]string{
			"#rejected_at": "rejected_at",
			"#reason":      "rejection_reason",
			"#is_active":   "is_active",
			"#updated_at":  "updated_at",
		}
		return expr, vals, names
	})
}

// update applies a conditional write to a pending estimate.
func (r *EstimateDynamoRepository) update(
	ctx context.Context,
	id string,
	build func() (updateExpr string, values map[string]types.AttributeValue, names map[string]string),
) (entities.Estimate, error) {
	updateExpr, values, names := build()
	values[":pending"] = &types.AttributeValueMemberS{Value: string(entities.EstimateStatusPending)}

	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       estimateKey(id),
		ConditionExpression:       aws.String("attribute_exists(#id) AND #status = :pending"),
		UpdateExpression:          aws.String(updateExpr),
		ExpressionAttributeValues: values,
		ExpressionAttributeNames:  mergeNames(names, map[string]string{"#id": "id", "#status": "status"}),
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return entities.Estimate{}, nil
		}
		return entities.Estimate{}, err
	}
	if len(out.Attributes) == 0 {
		return entities.Estimate{}, nil
	}
	var it estimateItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil {
		return entities.Estimate{}, err
	}
	return fromEstimateItem(it), nil
}

func estimateKey(id string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"id": &types.AttributeValueMemberS{Value: id},
	}
}

func toEstimateItem(e entities.Estimate) estimateItem {
	it := estimateItem{
		ID:          e.ID,
		ContractID:  e.ContractID,
		Amount:      floatToString(e.Amount),
		Description: e.Description,
		Status:      string(e.Status),
		IsActive:    e.IsActive,
		SubmittedAt: formatTime(e.SubmittedAt),
		CreatedAt:   formatTime(e.CreatedAt),
		UpdatedAt:   formatTime(e.UpdatedAt),
	}
	if e.ApprovedAt != nil {
		it.ApprovedAt = formatTime(*e.ApprovedAt)
	}
	if e.RejectedAt != nil {
		it.RejectedAt = formatTime(*e.RejectedAt)
	}
	if e.RejectionReason != nil {
		it.RejectionReason = *e.RejectionReason
	}
	return it
}

func fromEstimateItem(it estimateItem) entities.Estimate {
	amount, _ := strconv.ParseFloat(it.Amount, 64)
	e := entities.Estimate{
		ID:          it.ID,
		ContractID:  it.ContractID,
		Amount:      amount,
		Description: it.Description,
		Status:      entities.EstimateStatus(it.Status),
		IsActive:    it.IsActive,
		SubmittedAt: parseTime(it.SubmittedAt),
		CreatedAt:   parseTime(it.CreatedAt),
		UpdatedAt:   parseTime(it.UpdatedAt),
	}
	if it.ApprovedAt != "" {
		t := parseTime(it.ApprovedAt)
		e.ApprovedAt = &t
	}
	if it.RejectedAt != "" {
		t := parseTime(it.RejectedAt)
		e.RejectedAt = &t
	}
	if it.RejectionReason != "" {
		reason := it.RejectionReason
		e.RejectionReason = &reason
	}
	return e
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) time.Time {
	t, _ := time.Parse(time.RFC3339Nano, s)
	return t
}

func floatToString(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func mergeNames(a, b map[string]string) map[string]string {
	if len(a) == 0 {
		return b
	}
	if len(b) == 0 {
		return a
	}
	out := make(map[string]string, len(a)+len(b))
	for k, v := range a {
		out[k] = v
	}
	for k, v := range b {
		out[k] = v
	}
	return out
}
