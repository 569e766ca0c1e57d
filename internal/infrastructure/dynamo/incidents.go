package dynamo

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/event-ops-api/internal/domain"
)

// IncidentRepo provides typed DynamoDB operations for the incidents table.
type IncidentRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewIncidentRepo(client *dynamodb.Client, tableName string) *IncidentRepo {
	return &IncidentRepo{client: client, tableName: tableName}
}

func (r *IncidentRepo) Put(ctx context.Context, inc *domain.Incident) error {
	item, err := attributevalue.MarshalMap(inc)
	if err != nil {
		return fmt.Errorf("marshal incident: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

func (r *IncidentRepo) Get(ctx context.Context, incidentID string) (*domain.Incident, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("incident_id", incidentID),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("incident not found: %w", domain.ErrNotFound)
	}
	var inc domain.Incident
	if err := attributevalue.UnmarshalMap(out.Item, &inc); err != nil {
		return nil, err
	}
	return &inc, nil
}

// Scan returns all incidents, newest first. Incident IDs are ULIDs, so
// sorting by ID equals sorting by creation time.
func (r *IncidentRepo) Scan(ctx context.Context) ([]domain.Incident, error) {
	out, err := r.client.Scan(ctx, &dynamodb.ScanInput{
		TableName: aws.String(r.tableName),
	})
	if err != nil {
		return nil, err
	}
	var incidents []domain.Incident
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &incidents); err != nil {
		return nil, err
	}
	sort.Slice(incidents, func(i, j int) bool { return incidents[i].IncidentID > incidents[j].IncidentID })
	return incidents, nil
}

func (r *IncidentRepo) Update(ctx context.Context, incidentID string, updates map[string]interface{}) error {
	updates[fieldUpdatedAt] = time.Now().UTC().Format(time.RFC3339)
	ue, err := buildUpdateExpr(updates)
	if err != nil {
		return err
	}
	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       strKey("incident_id", incidentID),
		UpdateExpression:          aws.String(ue.Expr),
		ExpressionAttributeNames:  ue.Names,
		ExpressionAttributeValues: ue.Values,
	})
	return err
}
