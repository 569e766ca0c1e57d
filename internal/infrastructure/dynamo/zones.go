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

// ZoneRepo provides typed DynamoDB operations for the zones table.
type ZoneRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewZoneRepo(client *dynamodb.Client, tableName string) *ZoneRepo {
	return &ZoneRepo{client: client, tableName: tableName}
}

func (r *ZoneRepo) Put(ctx context.Context, z *domain.Zone) error {
	item, err := attributevalue.MarshalMap(z)
	if err != nil {
		return fmt.Errorf("marshal zone: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

func (r *ZoneRepo) Get(ctx context.Context, zoneID string) (*domain.Zone, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("zone_id", zoneID),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("zone not found: %w", domain.ErrNotFound)
	}
	var z domain.Zone
	if err := attributevalue.UnmarshalMap(out.Item, &z); err != nil {
		return nil, err
	}
	return &z, nil
}

// Scan returns all zones sorted by name. The zone count is small and
// bounded by the venue layout, so a full scan is fine here.
func (r *ZoneRepo) Scan(ctx context.Context) ([]domain.Zone, error) {
	out, err := r.client.Scan(ctx, &dynamodb.ScanInput{
		TableName: aws.String(r.tableName),
	})
	if err != nil {
		return nil, err
	}
	var zones []domain.Zone
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &zones); err != nil {
		return nil, err
	}
	sort.Slice(zones, func(i, j int) bool { return zones[i].Name < zones[j].Name })
	return zones, nil
}

func (r *ZoneRepo) Update(ctx context.Context, zoneID string, updates map[string]interface{}) error {
	updates[fieldUpdatedAt] = time.Now().UTC().Format(time.RFC3339)
	ue, err := buildUpdateExpr(updates)
	if err != nil {
		return err
	}
	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       strKey("zone_id", zoneID),
		UpdateExpression:          aws.String(ue.Expr),
		ExpressionAttributeNames:  ue.Names,
		ExpressionAttributeValues: ue.Values,
	})
	return err
}
