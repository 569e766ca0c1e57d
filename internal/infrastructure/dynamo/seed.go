package dynamo

import (
	"context"
	"log/slog"
	"time"

	"github.com/event-ops-api/internal/domain"
)

// SeedZones loads the venue layout into an empty zones table. Runs on
// startup after Bootstrap; does nothing once any zone exists, so operator
// edits survive restarts.
func SeedZones(ctx context.Context, repo *ZoneRepo) {
	existing, err := repo.Scan(ctx)
	if err != nil {
		slog.Warn("zone seed skipped, scan failed", "err", err)
		return
	}
	if len(existing) > 0 {
		return
	}
	now := time.Now().UTC()
	defaults := []domain.Zone{
		{
			ZoneID: "zone-a", Name: "Zone A: Main Entrance",
			Occupancy: 250, Capacity: 500, WaitTimeMin: 15,
			Status: domain.ZoneStatusBusy, CrowdDensity: domain.DensityHigh,
			CameraFeeds: []domain.CameraFeed{
				{FeedID: "cam-a1", Name: "Gate 1", URL: ""},
				{FeedID: "cam-a2", Name: "Corridor A", URL: ""},
			},
			UpdatedAt: now,
		},
		{
			ZoneID: "zone-b", Name: "Zone B: Stage Area",
			Occupancy: 850, Capacity: 1000, WaitTimeMin: 5,
			Status: domain.ZoneStatusNormal, CrowdDensity: domain.DensityHigh,
			CameraFeeds: []domain.CameraFeed{
				{FeedID: "cam-b1", Name: "Stage Left", URL: ""},
				{FeedID: "cam-b2", Name: "Stage Right", URL: ""},
			},
			UpdatedAt: now,
		},
		{
			ZoneID: "zone-c", Name: "Zone C: Food Court",
			Occupancy: 450, Capacity: 600, WaitTimeMin: 25,
			Status: domain.ZoneStatusAlert, CrowdDensity: domain.DensityCritical,
			CameraFeeds: []domain.CameraFeed{
				{FeedID: "cam-c1", Name: "Vendor Alley", URL: ""},
				{FeedID: "cam-c2", Name: "Seating Area", URL: ""},
			},
			UpdatedAt: now,
		},
		{
			ZoneID: "zone-d", Name: "Zone D: Exhibition Hall",
			Occupancy: 120, Capacity: 800, WaitTimeMin: 2,
			Status: domain.ZoneStatusNormal, CrowdDensity: domain.DensityLow,
			CameraFeeds: []domain.CameraFeed{
				{FeedID: "cam-d1", Name: "Hall Entrance", URL: ""},
				{FeedID: "cam-d2", Name: "Exhibit 4", URL: ""},
			},
			UpdatedAt: now,
		},
	}
	for i := range defaults {
		if err := repo.Put(ctx, &defaults[i]); err != nil {
			slog.Warn("could not seed zone", "zone_id", defaults[i].ZoneID, "err", err)
		}
	}
	slog.Info("seeded zones", "count", len(defaults))
}
