package domain

import "time"

// Drone statuses.
const (
	DroneDeployed  = "deployed"
	DroneCharging  = "charging"
	DroneReturning = "returning"
	DroneOffline   = "offline"
)

// Drone is one surveillance unit.
type Drone struct {
	DroneID   string    `json:"id" dynamodbav:"drone_id"`
	Status    string    `json:"status" dynamodbav:"status"`
	Battery   int       `json:"battery" dynamodbav:"battery"` // percent, 0-100
	Location  string    `json:"location" dynamodbav:"location"`
	UpdatedAt time.Time `json:"updated" dynamodbav:"updated_at"`
}

type DroneTelemetryRequest struct {
	Status   *string `json:"status" validate:"omitempty,oneof=deployed charging returning offline"`
	Battery  *int    `json:"battery" validate:"omitempty,min=0,max=100"`
	Location *string `json:"location"`
}
