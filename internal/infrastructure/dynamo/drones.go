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

// DroneRepo provides typed DynamoDB operations for the drones table.
type DroneRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewDroneRepo(client *dynamodb.Client, tableName string) *DroneRepo {
	return &DroneRepo{client: client, tableName: tableName}
}

func (r *DroneRepo) Put(ctx context.Context, d *domain.Drone) error {
	item, err := attributevalue.MarshalMap(d)
	if err != nil {
		return fmt.Errorf("marshal drone: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

func (r *DroneRepo) Get(ctx context.Context, droneID string) (*domain.Drone, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("drone_id", droneID),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("drone not found: %w", domain.ErrNotFound)
	}
	var d domain.Drone
	if err := attributevalue.UnmarshalMap(out.Item, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *DroneRepo) Scan(ctx context.Context) ([]domain.Drone, error) {
	out, err := r.client.Scan(ctx, &dynamodb.ScanInput{
		TableName: aws.String(r.tableName),
	})
	if err != nil {
		return nil, err
	}
	var drones []domain.Drone
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &drones); err != nil {
		return nil, err
	}
	sort.Slice(drones, func(i, j int) bool { return drones[i].DroneID < drones[j].DroneID })
	return drones, nil
}

func (r *DroneRepo) Update(ctx context.Context, droneID string, updates map[string]interface{}) error {
	updates[fieldUpdatedAt] = time.Now().UTC().Format(time.RFC3339)
	ue, err := buildUpdateExpr(updates)
	if err != nil {
		return err
	}
	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       strKey("drone_id", droneID),
		UpdateExpression:          aws.String(ue.Expr),
		ExpressionAttributeNames:  ue.Names,
		ExpressionAttributeValues: ue.Values,
	})
	return err
}
