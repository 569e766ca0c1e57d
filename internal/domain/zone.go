package domain

import "time"

// Zone statuses.
const (
	ZoneStatusNormal = "normal"
	ZoneStatusBusy   = "busy"
	ZoneStatusAlert  = "alert"
	ZoneStatusClosed = "closed"
)

// Crowd density levels.
const (
	DensityLow      = "low"
	DensityMedium   = "medium"
	DensityHigh     = "high"
	DensityCritical = "critical"
)

type CameraFeed struct {
	FeedID string `json:"id" dynamodbav:"feed_id"`
	Name   string `json:"name" dynamodbav:"name"`
	URL    string `json:"url" dynamodbav:"url"`
}

// Zone is one monitored venue area.
type Zone struct {
	ZoneID       string       `json:"id" dynamodbav:"zone_id"`
	Name         string       `json:"name" dynamodbav:"name"`
	Occupancy    int          `json:"occupancy" dynamodbav:"occupancy"`
	Capacity     int          `json:"capacity" dynamodbav:"capacity"`
	WaitTimeMin  int          `json:"wait_time_minutes" dynamodbav:"wait_time_minutes"`
	Status       string       `json:"status" dynamodbav:"status"`
	CrowdDensity string       `json:"crowd_density" dynamodbav:"crowd_density"`
	CameraFeeds  []CameraFeed `json:"camera_feeds" dynamodbav:"camera_feeds"`
	UpdatedAt    time.Time    `json:"updated" dynamodbav:"updated_at"`
}

// ZoneTelemetryRequest updates the live readings for a zone.
type ZoneTelemetryRequest struct {
	Occupancy    *int    `json:"occupancy" validate:"omitempty,min=0"`
	WaitTimeMin  *int    `json:"wait_time_minutes" validate:"omitempty,min=0"`
	Status       *string `json:"status" validate:"omitempty,oneof=normal busy alert closed"`
	CrowdDensity *string `json:"crowd_density" validate:"omitempty,oneof=low medium high critical"`
}
